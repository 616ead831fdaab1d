package registration

import (
	"maps"
	"slices"
	"time"

	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
)

// Descriptor is the complete registration payload for one instance.
type Descriptor struct {
	Name    string
	ID      string
	Address string
	Port    int // 0 when unset
	Tags    []string
	Meta    map[string]string
	Check   *CheckDescriptor // nil when checks are disabled
}

// CheckKind discriminates CheckDescriptor variants.
type CheckKind int

const (
	// CheckKindTTL is a check the instance keeps alive itself via pass/fail.
	CheckKindTTL CheckKind = iota + 1
	// CheckKindHTTP is a check the registry polls on its own schedule.
	CheckKindHTTP
)

func (k CheckKind) String() string {
	switch k {
	case CheckKindTTL:
		return "ttl"
	case CheckKindHTTP:
		return "http"
	default:
		return "unknown"
	}
}

// CheckDescriptor is a tagged union: exactly one of TTL or HTTP is set,
// matching Kind.
type CheckDescriptor struct {
	Kind  CheckKind
	ID    string
	Notes string

	// DeregisterCriticalServiceAfter is zero when unset.
	DeregisterCriticalServiceAfter time.Duration

	Status catalog.CheckStatus

	TTL  *TTLCheck
	HTTP *HTTPCheck
}

// TTLCheck expires unless the instance reports within TTL.
type TTLCheck struct {
	TTL time.Duration
}

// HTTPCheck is polled by the registry at Interval.
type HTTPCheck struct {
	Interval      time.Duration
	URL           string
	Method        string
	Header        map[string][]string
	TLSSkipVerify *bool
}

// IsTTL reports whether d is a TTL check.
func (d *CheckDescriptor) IsTTL() bool {
	return d != nil && d.Kind == CheckKindTTL && d.TTL != nil
}

// IsHTTP reports whether d is an HTTP check.
func (d *CheckDescriptor) IsHTTP() bool {
	return d != nil && d.Kind == CheckKindHTTP && d.HTTP != nil
}

// Settings holds the registry-facing attributes that are configured rather
// than derived from the instance.
type Settings struct {
	Tags []string
	Meta map[string]string
}

// BuildTags returns the configured tags followed by group=, zone= and one
// key=value tag per instance metadata entry.
func BuildTags(base []string, inst Instance) []string {
	tags := slices.Clone(base)
	if inst.Group != "" {
		tags = append(tags, "group="+inst.Group)
	}
	if inst.Zone != "" {
		tags = append(tags, "zone="+inst.Zone)
	}
	return append(tags, inst.MetadataTags()...)
}

// NewDescriptor assembles a fresh descriptor. Slices and maps are copied so
// the result never aliases the inputs.
func NewDescriptor(inst Instance, id, address string, settings Settings, check *CheckDescriptor) *Descriptor {
	return &Descriptor{
		Name:    inst.Name,
		ID:      id,
		Address: address,
		Port:    inst.Port,
		Tags:    BuildTags(settings.Tags, inst),
		Meta:    maps.Clone(settings.Meta),
		Check:   check,
	}
}
