package consul

// ServiceRegistrationDTO matches the body of PUT /v1/agent/service/register.
type ServiceRegistrationDTO struct {
	ID      string            `json:"ID,omitempty"`
	Name    string            `json:"Name"`
	Tags    []string          `json:"Tags,omitempty"`
	Address string            `json:"Address,omitempty"`
	Port    int               `json:"Port,omitempty"`
	Meta    map[string]string `json:"Meta,omitempty"`
	Check   *ServiceCheckDTO  `json:"Check,omitempty"`
}

// ServiceCheckDTO matches the agent's AgentServiceCheck schema. Durations
// are Consul duration strings ("10s", "30m").
type ServiceCheckDTO struct {
	CheckID                        string              `json:"CheckID,omitempty"`
	Notes                          string              `json:"Notes,omitempty"`
	Status                         string              `json:"Status,omitempty"`
	TTL                            string              `json:"TTL,omitempty"`
	HTTP                           string              `json:"HTTP,omitempty"`
	Method                         string              `json:"Method,omitempty"`
	Header                         map[string][]string `json:"Header,omitempty"`
	Interval                       string              `json:"Interval,omitempty"`
	TLSSkipVerify                  *bool               `json:"TLSSkipVerify,omitempty"`
	DeregisterCriticalServiceAfter string              `json:"DeregisterCriticalServiceAfter,omitempty"`
}

// AgentServiceDTO is one value of the GET /v1/agent/services map and the
// Service field of a health entry.
type AgentServiceDTO struct {
	ID      string            `json:"ID"`
	Service string            `json:"Service"`
	Tags    []string          `json:"Tags"`
	Address string            `json:"Address"`
	Port    int               `json:"Port"`
	Meta    map[string]string `json:"Meta"`
}

// NodeDTO matches the Node field of a health entry.
type NodeDTO struct {
	ID              string            `json:"ID"`
	Node            string            `json:"Node"`
	Address         string            `json:"Address"`
	Datacenter      string            `json:"Datacenter"`
	TaggedAddresses map[string]string `json:"TaggedAddresses"`
	Meta            map[string]string `json:"Meta"`
}

// HealthCheckDTO matches one element of a health entry's Checks array.
type HealthCheckDTO struct {
	CheckID     string `json:"CheckID"`
	Name        string `json:"Name"`
	Status      string `json:"Status"`
	Notes       string `json:"Notes"`
	Output      string `json:"Output"`
	ServiceID   string `json:"ServiceID"`
	ServiceName string `json:"ServiceName"`
}

// HealthEntryDTO matches one element of GET /v1/health/service/{name}.
type HealthEntryDTO struct {
	Node    NodeDTO          `json:"Node"`
	Service AgentServiceDTO  `json:"Service"`
	Checks  []HealthCheckDTO `json:"Checks"`
}
