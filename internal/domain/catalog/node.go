package catalog

import "maps"

// Node describes the registry node that hosts a service instance.
type Node struct {
	ID              string
	Address         string
	Datacenter      string
	TaggedAddresses map[string]string
	Meta            map[string]string
}

// Service is a registered service entry as reported by the registry.
// Port 0 means no port is registered, so derived URIs carry no port suffix.
type Service struct {
	Name    string
	ID      string
	Address string
	Port    int
	Tags    []string
	Meta    map[string]string
}

// InstanceID returns the explicit instance ID, falling back to the service
// name when the registry reports none.
func (s Service) InstanceID() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}

// Entry is one raw health query result: a node, a service, and the checks
// reported for that service instance.
type Entry struct {
	Node    Node
	Service Service
	Checks  []CheckResult
}

// clone returns a deep copy so a view never aliases caller-owned slices or
// maps.
func (e Entry) clone() Entry {
	out := Entry{
		Node: Node{
			ID:              e.Node.ID,
			Address:         e.Node.Address,
			Datacenter:      e.Node.Datacenter,
			TaggedAddresses: maps.Clone(e.Node.TaggedAddresses),
			Meta:            maps.Clone(e.Node.Meta),
		},
		Service: Service{
			Name:    e.Service.Name,
			ID:      e.Service.ID,
			Address: e.Service.Address,
			Port:    e.Service.Port,
			Tags:    append([]string(nil), e.Service.Tags...),
			Meta:    maps.Clone(e.Service.Meta),
		},
		Checks: append([]CheckResult(nil), e.Checks...),
	}
	return out
}
