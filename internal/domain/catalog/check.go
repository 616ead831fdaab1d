package catalog

import "strings"

// CheckStatus is the registry-reported state of a single health check.
type CheckStatus string

const (
	CheckPassing  CheckStatus = "passing"
	CheckWarning  CheckStatus = "warning"
	CheckCritical CheckStatus = "critical"
)

// ParseCheckStatus normalizes a registry status string. Matching is case
// insensitive. The second return value is false for unknown statuses.
func ParseCheckStatus(s string) (CheckStatus, bool) {
	switch st := CheckStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case CheckPassing, CheckWarning, CheckCritical:
		return st, true
	default:
		return "", false
	}
}

// IsValid returns true if the status is one of the defined constants.
func (s CheckStatus) IsValid() bool {
	_, ok := ParseCheckStatus(string(s))
	return ok
}

// String implements fmt.Stringer.
func (s CheckStatus) String() string {
	return string(s)
}

// CheckResult is one health check the registry reports for a service
// instance. Ordering among checks is registry-defined.
type CheckResult struct {
	ID     string
	Name   string
	Notes  string
	Output string
	Status CheckStatus
}
