package catalog

import "github.com/jsamuelsen11/consul-registrar/internal/domain"

// Aggregate reduces a check list to one status. The first critical check in
// list order makes the result DOWN, carrying that check's notes as the
// description. Warnings never affect the result. An empty list is UP.
func Aggregate(checks []CheckResult) domain.HealthStatus {
	for _, c := range checks {
		if c.Status == CheckCritical {
			return domain.Down(c.Notes)
		}
	}
	return domain.Up()
}
