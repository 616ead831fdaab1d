package consulapi

import (
	"github.com/hashicorp/consul/api"

	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
)

func toRegistration(d *registration.Descriptor) *api.AgentServiceRegistration {
	return &api.AgentServiceRegistration{
		ID:      d.ID,
		Name:    d.Name,
		Tags:    d.Tags,
		Port:    d.Port,
		Address: d.Address,
		Meta:    d.Meta,
		Check:   toCheck(d.Check),
	}
}

func toCheck(c *registration.CheckDescriptor) *api.AgentServiceCheck {
	if c == nil {
		return nil
	}

	check := &api.AgentServiceCheck{
		CheckID: c.ID,
		Notes:   c.Notes,
		Status:  c.Status.String(),
	}
	if c.DeregisterCriticalServiceAfter > 0 {
		check.DeregisterCriticalServiceAfter = registration.FormatMinutes(c.DeregisterCriticalServiceAfter)
	}

	switch {
	case c.IsTTL():
		check.TTL = registration.FormatSeconds(c.TTL.TTL)
	case c.IsHTTP():
		check.HTTP = c.HTTP.URL
		check.Method = c.HTTP.Method
		check.Header = c.HTTP.Header
		check.Interval = registration.FormatSeconds(c.HTTP.Interval)
		if c.HTTP.TLSSkipVerify != nil {
			check.TLSSkipVerify = *c.HTTP.TLSSkipVerify
		}
	}
	return check
}

func toEntry(e *api.ServiceEntry) catalog.Entry {
	var node catalog.Node
	if e.Node != nil {
		node = catalog.Node{
			ID:              e.Node.ID,
			Address:         e.Node.Address,
			Datacenter:      e.Node.Datacenter,
			TaggedAddresses: e.Node.TaggedAddresses,
			Meta:            e.Node.Meta,
		}
		if node.ID == "" {
			node.ID = e.Node.Node
		}
	}

	checks := make([]catalog.CheckResult, 0, len(e.Checks))
	for _, c := range e.Checks {
		if c == nil {
			continue
		}
		status, ok := catalog.ParseCheckStatus(c.Status)
		if !ok {
			status = catalog.CheckStatus(c.Status)
		}
		checks = append(checks, catalog.CheckResult{
			ID:     c.CheckID,
			Name:   c.Name,
			Notes:  c.Notes,
			Output: c.Output,
			Status: status,
		})
	}

	return catalog.Entry{
		Node: node,
		Service: catalog.Service{
			Name:    e.Service.Service,
			ID:      e.Service.ID,
			Address: e.Service.Address,
			Port:    e.Service.Port,
			Tags:    e.Service.Tags,
			Meta:    e.Service.Meta,
		},
		Checks: checks,
	}
}
