package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the attendance policy. The engine never hardcodes
// these: timezone, late cutoff and the half-day threshold all come from here.
type AttendanceConfig struct {
	Timezone          string // IANA name, e.g. Asia/Phnom_Penh
	LateCutoff        string // HH:MM local wall-clock time
	HalfDayBelowHours float64
	SweepHour         int // local hour at which the absence sweep runs
}

func Load() (*Config, error) {
	// A missing .env is fine in deployed environments; env vars take over.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrms"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy
	halfDayBelow, err := strconv.ParseFloat(getEnv("ATTENDANCE_HALF_DAY_BELOW_HOURS", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HALF_DAY_BELOW_HOURS: %w", err)
	}

	sweepHour, err := strconv.Atoi(getEnv("ABSENCE_SWEEP_HOUR", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENCE_SWEEP_HOUR: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:          getEnv("ORG_TIMEZONE", "Asia/Phnom_Penh"),
		LateCutoff:        getEnv("ATTENDANCE_LATE_CUTOFF", "09:00"),
		HalfDayBelowHours: halfDayBelow,
		SweepHour:         sweepHour,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.Attendance.Timezone); err != nil {
		return fmt.Errorf("invalid ORG_TIMEZONE %q: %w", c.Attendance.Timezone, err)
	}
	if _, err := time.Parse("15:04", c.Attendance.LateCutoff); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_LATE_CUTOFF %q: %w", c.Attendance.LateCutoff, err)
	}
	if c.Attendance.HalfDayBelowHours <= 0 || c.Attendance.HalfDayBelowHours >= 24 {
		return fmt.Errorf("ATTENDANCE_HALF_DAY_BELOW_HOURS must be between 0 and 24")
	}
	if c.Attendance.SweepHour < 0 || c.Attendance.SweepHour > 23 {
		return fmt.Errorf("ABSENCE_SWEEP_HOUR must be between 0 and 23")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
