package domain

// HealthState is the normalized liveness of an instance.
type HealthState string

const (
	StateUp   HealthState = "UP"
	StateDown HealthState = "DOWN"
)

// String implements fmt.Stringer.
func (s HealthState) String() string {
	return string(s)
}

// HealthStatus is a single authoritative UP or DOWN value with an optional
// diagnostic description. The zero value is not meaningful; use Up or Down.
type HealthStatus struct {
	State       HealthState
	Description string
}

// Up is the healthy status.
func Up() HealthStatus {
	return HealthStatus{State: StateUp}
}

// Down returns an unhealthy status carrying description (may be empty).
func Down(description string) HealthStatus {
	return HealthStatus{State: StateDown, Description: description}
}

// IsUp reports whether the status is UP.
func (s HealthStatus) IsUp() bool {
	return s.State == StateUp
}

// HasDescription reports whether a diagnostic description is present.
func (s HealthStatus) HasDescription() bool {
	return s.Description != ""
}

func (s HealthStatus) String() string {
	if s.Description == "" {
		return s.State.String()
	}
	return s.State.String() + "(" + s.Description + ")"
}
