package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
)

func TestConfigurationError_IsAndAs(t *testing.T) {
	t.Parallel()

	cause := errors.New("no such host")
	err := fmt.Errorf("register: %w",
		domain.NewConfigurationError("registration.host", "unresolvable host", cause))

	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("errors.Is(err, ErrConfiguration) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}

	var cerr *domain.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatal("errors.As(*ConfigurationError) = false, want true")
	}
	if cerr.Field != "registration.host" {
		t.Errorf("Field = %q, want %q", cerr.Field, "registration.host")
	}
}

func TestConfigurationError_MessageNamesField(t *testing.T) {
	t.Parallel()

	err := domain.NewConfigurationError("registration.name", "must not be empty", nil)
	want := "configuration error: registration.name: must not be empty"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transport", fmt.Errorf("pass: %w", domain.ErrTransport), true},
		{"not found", fmt.Errorf("pass: %w", domain.ErrNotFound), true},
		{"configuration", domain.NewConfigurationError("f", "r", domain.ErrTransport), false},
		{"unknown", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHealthStatus_String(t *testing.T) {
	t.Parallel()

	if got := domain.Up().String(); got != "UP" {
		t.Errorf("Up().String() = %q, want UP", got)
	}
	if got := domain.Down("disk full").String(); got != "DOWN(disk full)" {
		t.Errorf("Down().String() = %q, want DOWN(disk full)", got)
	}
	if domain.Down("").HasDescription() {
		t.Error("Down(\"\").HasDescription() = true, want false")
	}
}
