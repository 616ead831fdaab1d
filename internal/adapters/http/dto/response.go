// Package dto provides HTTP response data transfer objects and RFC 9457
// Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// HealthResponse is the body of GET /health. Checks maps each dependency to
// "ok" or its failure message.
type HealthResponse struct {
	Status      string            `json:"status"`
	Description string            `json:"description,omitempty"`
	Checks      map[string]string `json:"checks,omitempty"`
}

// ToHealthResponse converts an aggregate status and per-dependency results.
func ToHealthResponse(status domain.HealthStatus, results map[string]error) HealthResponse {
	resp := HealthResponse{
		Status:      status.State.String(),
		Description: status.Description,
	}
	if len(results) > 0 {
		resp.Checks = make(map[string]string, len(results))
		for name, err := range results {
			if err != nil {
				resp.Checks[name] = err.Error()
			} else {
				resp.Checks[name] = "ok"
			}
		}
	}
	return resp
}

// RegistrationResponse is the body of GET /registration.
type RegistrationResponse struct {
	ServiceID  string `json:"service_id"`
	CheckID    string `json:"check_id,omitempty"`
	State      string `json:"state"`
	Registered bool   `json:"registered"`
}

// ToRegistrationResponse converts a registration snapshot.
func ToRegistrationResponse(s ports.RegistrationSnapshot) RegistrationResponse {
	return RegistrationResponse{
		ServiceID:  s.ServiceID,
		CheckID:    s.CheckID,
		State:      s.State,
		Registered: s.Registered,
	}
}

// CheckResponse is one registry check inside an InstanceResponse.
type CheckResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
}

// InstanceResponse is one discovered instance of a service.
type InstanceResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	URI         string            `json:"uri"`
	Status      string            `json:"status"`
	Description string            `json:"description,omitempty"`
	Node        string            `json:"node"`
	Datacenter  string            `json:"datacenter,omitempty"`
	Metadata    map[string]string `json:"metadata"`
	Checks      []CheckResponse   `json:"checks"`
}

// ToInstanceResponse converts a health view.
func ToInstanceResponse(v *catalog.ServiceHealthView) InstanceResponse {
	status := v.Status()
	node := v.Node()

	checks := v.Checks()
	out := make([]CheckResponse, len(checks))
	for i, c := range checks {
		out[i] = CheckResponse{
			ID:     c.ID,
			Name:   c.Name,
			Status: c.Status.String(),
			Output: c.Output,
		}
	}

	return InstanceResponse{
		ID:          v.ID(),
		Name:        v.Name(),
		URI:         v.URI().String(),
		Status:      status.State.String(),
		Description: status.Description,
		Node:        node.ID,
		Datacenter:  node.Datacenter,
		Metadata:    v.Metadata().Map(),
		Checks:      out,
	}
}

// DiscoveryResponse is the body of GET /discovery/{service}.
type DiscoveryResponse struct {
	Service   string             `json:"service"`
	Instances []InstanceResponse `json:"instances"`
	Count     int                `json:"count"`
}

// ToDiscoveryResponse converts the views found for service.
func ToDiscoveryResponse(service string, views []*catalog.ServiceHealthView) DiscoveryResponse {
	items := make([]InstanceResponse, len(views))
	for i, v := range views {
		items[i] = ToInstanceResponse(v)
	}
	return DiscoveryResponse{
		Service:   service,
		Instances: items,
		Count:     len(items),
	}
}
