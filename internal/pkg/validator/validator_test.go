package validator

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidUUID_AcceptsGeneratedIDs(t *testing.T) {
	// App-side IDs are generated as v7, the only version the validator accepts.
	for i := 0; i < 5; i++ {
		id, err := googleuuid.NewV7()
		if err != nil {
			t.Fatalf("NewV7() error: %v", err)
		}
		if !IsValidUUID(id.String()) {
			t.Errorf("IsValidUUID(%q) = false, want true", id.String())
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-06-03"); !ok {
		t.Errorf("IsValidDate(2024-06-03) = false, want true")
	}
	for _, s := range []string{"2024-13-01", "03-06-2024", "2024/06/03", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00"}
	invalid := []string{"2024-01-15 10:30:00", "2024-01-15", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	if !IsValidEmployeeCode("EMP-0042") {
		t.Errorf("IsValidEmployeeCode(EMP-0042) = false, want true")
	}
	for _, s := range []string{"EMP-42", "emp-0042", "0042", "EMP-00421"} {
		if IsValidEmployeeCode(s) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", s)
		}
	}
}

func TestCoordinates(t *testing.T) {
	if !IsValidLatitude(11.5564) || !IsValidLongitude(104.9282) {
		t.Errorf("Phnom Penh coordinates should be valid")
	}
	if IsValidLatitude(-90.5) || IsValidLatitude(91) {
		t.Errorf("latitude outside [-90, 90] should be invalid")
	}
	if IsValidLongitude(-181) || IsValidLongitude(180.1) {
		t.Errorf("longitude outside [-180, 180] should be invalid")
	}
}
