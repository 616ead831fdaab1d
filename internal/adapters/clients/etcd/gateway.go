// Package etcd implements the registry gateway on an etcd v3 cluster.
//
// Each instance is stored as a JSON record under {prefix}/{name}/{id}. A TTL
// check maps onto an etcd lease: Pass and Fail refresh the lease, and an
// instance that stops reporting disappears when the lease expires. Instances
// without a TTL check are written without a lease and live until
// deregistered.
package etcd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"go.etcd.io/etcd/api/v3/v3rpc/rpctypes"
	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/jsamuelsen11/consul-registrar/internal/domain"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/catalog"
	"github.com/jsamuelsen11/consul-registrar/internal/domain/registration"
	"github.com/jsamuelsen11/consul-registrar/internal/platform/config"
	"github.com/jsamuelsen11/consul-registrar/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.RegistryGateway = (*Gateway)(nil)
	_ ports.HealthReader    = (*Gateway)(nil)
	_ ports.HealthChecker   = (*Gateway)(nil)
)

// record is the value stored for one instance.
type record struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Address string            `json:"address,omitempty"`
	Port    int               `json:"port,omitempty"`
	Tags    []string          `json:"tags,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
	Node    string            `json:"node"`
	Check   *checkRecord      `json:"check,omitempty"`
}

type checkRecord struct {
	ID     string `json:"id"`
	Notes  string `json:"notes,omitempty"`
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
}

// lease tracks a registration this gateway wrote.
type lease struct {
	key    string
	id     clientv3.LeaseID // 0 when the record has no lease
	record record
}

// Gateway adapts an etcd client to [ports.RegistryGateway] and
// [ports.HealthReader].
type Gateway struct {
	kv       clientv3.KV
	lease    clientv3.Lease
	status   func(ctx context.Context) error
	prefix   string
	leaseTTL time.Duration
	node     string
	logger   *slog.Logger

	mu        sync.Mutex
	byCheck   map[string]*lease
	byService map[string]*lease
}

// Dial connects to the cluster in cfg. node identifies this host in stored
// records and scopes ListServiceIDs to registrations made from it.
func Dial(cfg config.EtcdConfig, node string, logger *slog.Logger) (*Gateway, *clientv3.Client, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating etcd client: %w", err)
	}

	status := func(ctx context.Context) error {
		_, err := client.Status(ctx, cfg.Endpoints[0])
		return err
	}
	return newGateway(client, client, status, cfg, node, logger), client, nil
}

func newGateway(
	kv clientv3.KV,
	ls clientv3.Lease,
	status func(context.Context) error,
	cfg config.EtcdConfig,
	node string,
	logger *slog.Logger,
) *Gateway {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gateway{
		kv:       kv,
		lease:    ls,
		status:   status,
		prefix:   strings.TrimSuffix(cfg.Prefix, "/"),
		leaseTTL: cfg.LeaseTTL,
		node:     node,
		logger:   logger,
		byCheck:   make(map[string]*lease),
		byService: make(map[string]*lease),
	}
}

// Register writes the instance record, under a fresh lease when d carries a
// TTL check.
func (g *Gateway) Register(ctx context.Context, d *registration.Descriptor) error {
	rec := record{
		ID:      d.ID,
		Name:    d.Name,
		Address: d.Address,
		Port:    d.Port,
		Tags:    d.Tags,
		Meta:    d.Meta,
		Node:    g.node,
	}
	if d.Check != nil {
		status := d.Check.Status
		if status == "" {
			status = catalog.CheckCritical
		}
		rec.Check = &checkRecord{ID: d.Check.ID, Notes: d.Check.Notes, Status: status.String()}
	}

	l := &lease{key: path.Join(g.prefix, d.Name, d.ID), record: rec}

	if d.Check.IsTTL() {
		ttl := d.Check.TTL.TTL
		if g.leaseTTL > 0 {
			ttl = g.leaseTTL
		}
		grant, err := g.lease.Grant(ctx, max(int64(ttl/time.Second), 1))
		if err != nil {
			return translate("grant lease for "+d.ID, err)
		}
		l.id = grant.ID
	}

	if err := g.put(ctx, l); err != nil {
		return err
	}

	g.mu.Lock()
	if old, ok := g.byService[d.ID]; ok && old.record.Check != nil {
		delete(g.byCheck, old.record.Check.ID)
	}
	g.byService[d.ID] = l
	if rec.Check != nil {
		g.byCheck[rec.Check.ID] = l
	}
	g.mu.Unlock()

	g.logger.DebugContext(ctx, "etcd record written",
		slog.String("key", l.key),
		slog.Int64("lease_id", int64(l.id)),
	)
	return nil
}

// Deregister deletes the service record and revokes its lease.
func (g *Gateway) Deregister(ctx context.Context, serviceID string) error {
	g.mu.Lock()
	l, ok := g.byService[serviceID]
	if ok {
		delete(g.byService, serviceID)
		if l.record.Check != nil {
			delete(g.byCheck, l.record.Check.ID)
		}
	}
	g.mu.Unlock()

	if !ok {
		return fmt.Errorf("etcd: service %q: %w", serviceID, domain.ErrNotFound)
	}

	if _, err := g.kv.Delete(ctx, l.key); err != nil {
		return translate("delete "+l.key, err)
	}
	if l.id != 0 {
		if _, err := g.lease.Revoke(ctx, l.id); err != nil && !errors.Is(err, rpctypes.ErrLeaseNotFound) {
			return translate("revoke lease for "+serviceID, err)
		}
	}
	return nil
}

// Pass refreshes the check's lease and marks it passing.
func (g *Gateway) Pass(ctx context.Context, checkID string) error {
	return g.update(ctx, checkID, catalog.CheckPassing, "")
}

// Fail refreshes the check's lease and marks it critical with note.
func (g *Gateway) Fail(ctx context.Context, checkID, note string) error {
	return g.update(ctx, checkID, catalog.CheckCritical, note)
}

func (g *Gateway) update(ctx context.Context, checkID string, status catalog.CheckStatus, output string) error {
	g.mu.Lock()
	l, ok := g.byCheck[checkID]
	var snapshot lease
	if ok {
		snapshot = *l
		c := *l.record.Check
		snapshot.record.Check = &c
	}
	g.mu.Unlock()

	if !ok {
		return fmt.Errorf("etcd: check %q: %w", checkID, domain.ErrNotFound)
	}

	if snapshot.id != 0 {
		if _, err := g.lease.KeepAliveOnce(ctx, snapshot.id); err != nil {
			return translate("keep alive "+checkID, err)
		}
	}

	check := snapshot.record.Check
	if check.Status == status.String() && check.Output == output {
		return nil
	}
	check.Status = status.String()
	check.Output = output
	if err := g.put(ctx, &snapshot); err != nil {
		return err
	}

	g.mu.Lock()
	if cur, ok := g.byCheck[checkID]; ok && cur.id == snapshot.id {
		cur.record.Check = check
	}
	g.mu.Unlock()
	return nil
}

func (g *Gateway) put(ctx context.Context, l *lease) error {
	data, err := json.Marshal(l.record)
	if err != nil {
		return fmt.Errorf("marshaling etcd record %s: %w", l.key, err)
	}

	var opts []clientv3.OpOption
	if l.id != 0 {
		opts = append(opts, clientv3.WithLease(l.id))
	}
	if _, err := g.kv.Put(ctx, l.key, string(data), opts...); err != nil {
		return translate("put "+l.key, err)
	}
	return nil
}

// ListServiceIDs returns the IDs of every live record written from this
// node. Records whose lease expired are gone, which is what self-heal
// looks for.
func (g *Gateway) ListServiceIDs(ctx context.Context) ([]string, error) {
	records, err := g.list(ctx, g.prefix+"/")
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Node == g.node {
			ids = append(ids, rec.ID)
		}
	}
	return ids, nil
}

// HealthService returns one entry per live record of name.
func (g *Gateway) HealthService(ctx context.Context, name string, passingOnly bool) ([]catalog.Entry, error) {
	records, err := g.list(ctx, path.Join(g.prefix, name)+"/")
	if err != nil {
		return nil, err
	}

	entries := make([]catalog.Entry, 0, len(records))
	for _, rec := range records {
		entry := toEntry(rec)
		if passingOnly && !allPassing(entry.Checks) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (g *Gateway) list(ctx context.Context, prefix string) ([]record, error) {
	resp, err := g.kv.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, translate("get "+prefix, err)
	}

	records := make([]record, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var rec record
		if err := json.Unmarshal(kv.Value, &rec); err != nil {
			g.logger.WarnContext(ctx, "skipping malformed etcd record",
				slog.String("key", string(kv.Key)),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func toEntry(rec record) catalog.Entry {
	var checks []catalog.CheckResult
	if rec.Check != nil {
		status, ok := catalog.ParseCheckStatus(rec.Check.Status)
		if !ok {
			status = catalog.CheckCritical
		}
		checks = append(checks, catalog.CheckResult{
			ID:     rec.Check.ID,
			Name:   "Service '" + rec.Name + "' check",
			Notes:  rec.Check.Notes,
			Output: rec.Check.Output,
			Status: status,
		})
	}

	return catalog.Entry{
		Node: catalog.Node{ID: rec.Node, Address: rec.Address},
		Service: catalog.Service{
			Name:    rec.Name,
			ID:      rec.ID,
			Address: rec.Address,
			Port:    rec.Port,
			Tags:    rec.Tags,
			Meta:    rec.Meta,
		},
		Checks: checks,
	}
}

func allPassing(checks []catalog.CheckResult) bool {
	for _, c := range checks {
		if c.Status != catalog.CheckPassing {
			return false
		}
	}
	return true
}

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry].
func (g *Gateway) Name() string {
	return "etcd"
}

// HealthCheck asks the first endpoint for its status.
func (g *Gateway) HealthCheck(ctx context.Context) error {
	if g.status == nil {
		return nil
	}
	if err := g.status(ctx); err != nil {
		return fmt.Errorf("etcd: %w", err)
	}
	return nil
}

// translate maps an expired or unknown lease to ErrNotFound so the
// coordinator self-heals; everything else is a transport failure.
func translate(op string, err error) error {
	if errors.Is(err, rpctypes.ErrLeaseNotFound) {
		return fmt.Errorf("etcd: %s: %w", op, domain.ErrNotFound)
	}
	return fmt.Errorf("etcd: %s: %w: %w", op, domain.ErrTransport, err)
}
