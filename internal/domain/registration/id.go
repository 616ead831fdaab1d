package registration

import (
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Environment is the process-wide context an ID is generated in. It is
// created once at startup so IDs stay stable for the process lifetime.
type Environment struct {
	Profile  string
	Hostname string

	// InstanceUUID disambiguates instances that have neither an explicit ID
	// nor a port.
	InstanceUUID string
}

// NewEnvironment captures the current host and a fresh instance UUID.
func NewEnvironment(profile string) Environment {
	host, _ := os.Hostname()
	return Environment{
		Profile:      profile,
		Hostname:     host,
		InstanceUUID: uuid.NewString(),
	}
}

// IDGenerator produces the registry-facing instance ID. It must be
// deterministic for a given environment and instance, because register,
// pulsate, deregister and self-heal all address the registration by it.
type IDGenerator func(env Environment, inst Instance) string

// DefaultIDGenerator returns the explicit instance ID when set, otherwise
// "name:port", otherwise "name:<instance uuid>". The result is lower-cased
// and any rune outside [a-z0-9:_.-] is replaced by '-'.
func DefaultIDGenerator(env Environment, inst Instance) string {
	var id string
	switch {
	case inst.ID != "":
		id = inst.ID
	case inst.Port > 0:
		id = inst.Name + ":" + strconv.Itoa(inst.Port)
	default:
		id = inst.Name + ":" + env.InstanceUUID
	}
	return sanitizeID(id)
}

func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ':', r == '_', r == '.', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, id)
}

// CheckIDPrefix is prepended to the service ID to address its TTL check.
const CheckIDPrefix = "service:"

// CheckID returns the check ID for serviceID, honoring an explicit override.
func CheckID(explicit, serviceID string) string {
	if explicit != "" {
		return explicit
	}
	return CheckIDPrefix + serviceID
}
