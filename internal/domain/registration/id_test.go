package registration_test

import (
	"testing"

	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
)

func TestDefaultIDGenerator(t *testing.T) {
	t.Parallel()

	env := registration.Environment{InstanceUUID: "5f0c"}

	tests := []struct {
		name string
		inst registration.Instance
		want string
	}{
		{"explicit id", registration.Instance{Name: "orders", ID: "orders-1", Port: 8080}, "orders-1"},
		{"name and port", registration.Instance{Name: "orders", Port: 8080}, "orders:8080"},
		{"no port uses uuid", registration.Instance{Name: "orders"}, "orders:5f0c"},
		{"lower-cased", registration.Instance{Name: "Orders", Port: 80}, "orders:80"},
		{"invalid runes hyphenated", registration.Instance{Name: "orders", ID: "Orders 1/a"}, "orders-1-a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := registration.DefaultIDGenerator(env, tt.inst); got != tt.want {
				t.Errorf("DefaultIDGenerator() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultIDGenerator_StableForEnvironment(t *testing.T) {
	t.Parallel()

	env := registration.NewEnvironment("test")
	inst := registration.Instance{Name: "orders"}

	first := registration.DefaultIDGenerator(env, inst)
	second := registration.DefaultIDGenerator(env, inst)
	if first != second {
		t.Errorf("DefaultIDGenerator() not stable: %q vs %q", first, second)
	}

	other := registration.NewEnvironment("test")
	if registration.DefaultIDGenerator(other, inst) == first {
		t.Error("DefaultIDGenerator() produced the same ID for two environments")
	}
}

func TestCheckID(t *testing.T) {
	t.Parallel()

	if got := registration.CheckID("", "orders-1"); got != "service:orders-1" {
		t.Errorf("CheckID() = %q, want service:orders-1", got)
	}
	if got := registration.CheckID("custom", "orders-1"); got != "custom" {
		t.Errorf("CheckID() = %q, want custom", got)
	}
}
