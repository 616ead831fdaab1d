package consul

import (
	"strings"

	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
)

// ToRegistrationDTO converts a descriptor to Consul's registration body.
// Check intervals are rendered in whole seconds and the deregister timeout
// in whole minutes.
func ToRegistrationDTO(d *registration.Descriptor) ServiceRegistrationDTO {
	return ServiceRegistrationDTO{
		ID:      d.ID,
		Name:    d.Name,
		Tags:    d.Tags,
		Address: d.Address,
		Port:    d.Port,
		Meta:    d.Meta,
		Check:   toCheckDTO(d.Check),
	}
}

func toCheckDTO(c *registration.CheckDescriptor) *ServiceCheckDTO {
	if c == nil {
		return nil
	}

	dto := &ServiceCheckDTO{
		CheckID: c.ID,
		Notes:   c.Notes,
		Status:  c.Status.String(),
	}
	if c.DeregisterCriticalServiceAfter > 0 {
		dto.DeregisterCriticalServiceAfter = registration.FormatMinutes(c.DeregisterCriticalServiceAfter)
	}

	switch {
	case c.IsTTL():
		dto.TTL = registration.FormatSeconds(c.TTL.TTL)
	case c.IsHTTP():
		dto.HTTP = c.HTTP.URL
		dto.Method = c.HTTP.Method
		dto.Header = c.HTTP.Header
		dto.Interval = registration.FormatSeconds(c.HTTP.Interval)
		dto.TLSSkipVerify = c.HTTP.TLSSkipVerify
	}
	return dto
}

// ToServiceIDs returns the IDs in a GET /v1/agent/services response.
func ToServiceIDs(services map[string]AgentServiceDTO) []string {
	ids := make([]string, 0, len(services))
	for key, svc := range services {
		if svc.ID != "" {
			ids = append(ids, svc.ID)
			continue
		}
		ids = append(ids, key)
	}
	return ids
}

// ToDomainEntries converts a health query response to catalog entries.
func ToDomainEntries(dtos []HealthEntryDTO) []catalog.Entry {
	entries := make([]catalog.Entry, len(dtos))
	for i, dto := range dtos {
		entries[i] = ToDomainEntry(dto)
	}
	return entries
}

// ToDomainEntry converts one health entry. Node.ID falls back to the node
// name when Consul reports no node UUID.
func ToDomainEntry(dto HealthEntryDTO) catalog.Entry {
	nodeID := dto.Node.ID
	if nodeID == "" {
		nodeID = dto.Node.Node
	}

	checks := make([]catalog.CheckResult, len(dto.Checks))
	for i, c := range dto.Checks {
		checks[i] = catalog.CheckResult{
			ID:     c.CheckID,
			Name:   c.Name,
			Notes:  c.Notes,
			Output: c.Output,
			Status: toCheckStatus(c.Status),
		}
	}

	return catalog.Entry{
		Node: catalog.Node{
			ID:              nodeID,
			Address:         dto.Node.Address,
			Datacenter:      dto.Node.Datacenter,
			TaggedAddresses: dto.Node.TaggedAddresses,
			Meta:            dto.Node.Meta,
		},
		Service: catalog.Service{
			Name:    dto.Service.Service,
			ID:      dto.Service.ID,
			Address: dto.Service.Address,
			Port:    dto.Service.Port,
			Tags:    dto.Service.Tags,
			Meta:    dto.Service.Meta,
		},
		Checks: checks,
	}
}

// toCheckStatus keeps unknown statuses (e.g. "maintenance") lower-cased
// rather than dropping them; only "critical" affects aggregation.
func toCheckStatus(s string) catalog.CheckStatus {
	if st, ok := catalog.ParseCheckStatus(s); ok {
		return st
	}
	return catalog.CheckStatus(strings.ToLower(strings.TrimSpace(s)))
}
