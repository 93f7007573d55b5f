package auth

import (
	"context"
	"fmt"

	"github.com/angkorhr/hrms-backend-go/internal/domain/auth"
	"github.com/angkorhr/hrms-backend-go/internal/domain/employee"
	"github.com/angkorhr/hrms-backend-go/internal/domain/user"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/jwt"
	"github.com/angkorhr/hrms-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	employees employee.Repository
	jwt.Service
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, employeeRepository employee.Repository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		employees:      employeeRepository,
		Service:        jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		// Not-found collapses into invalid credentials so login never leaks
		// which emails exist.
		if err == user.ErrUserNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var tokenResponse auth.TokenResponse
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return tokenResponse, nil
}

// RegisterUser implements auth.AuthService.
func (a *AuthServiceImpl) RegisterUser(ctx context.Context, req auth.RegisterUserRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if _, err := a.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return "", user.ErrEmailExists
	} else if err != user.ErrUserNotFound {
		return "", fmt.Errorf("failed to check email: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	var createdID string
	err = postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		created, err := a.UserRepository.Create(txCtx, user.User{
			Email:        req.Email,
			PasswordHash: string(passwordHash),
			Role:         user.Role(req.Role),
			IsActive:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		createdID = created.ID

		if req.EmployeeID != "" {
			if err := a.employees.LinkUser(txCtx, req.EmployeeID, created.ID); err != nil {
				return fmt.Errorf("failed to link employee: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return createdID, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if a.Service.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	token, err := jwtauth.VerifyToken(a.Service.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, user.ErrUserInactive
	}

	var response auth.AccessTokenResponse
	response.AccessToken, response.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	return response, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(_ context.Context, accessToken string) error {
	if accessToken == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(accessToken)
	return nil
}
