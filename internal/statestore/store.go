// Package statestore defines the key-value state-store contract the
// reconciliation engine persists through, and the key-naming scheme that
// partitions it by tenant.
package statestore

import "context"

// Store is a tenant-agnostic key-value store: string keys, string values.
// Implementations need only last-writer-wins semantics per key — the
// engine never depends on transactions across keys.
type Store interface {
	// Get returns the value for key, and ok=false if absent. A transient
	// read failure should be surfaced as an error; callers treat it
	// identically to absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// List returns up to a batch of keys under prefix, continuing from
	// cursor (""  for the first call). next is "" once complete is true.
	List(ctx context.Context, prefix, cursor string) (keys []string, next string, complete bool, err error)
}

// Keys builds the tenant-prefixed key scheme from §6: every key for
// tenant T is "T:<kind>:<id>".
type Keys struct {
	Tenant string
}

func (k Keys) Event(eventKey string) string {
	return k.Tenant + ":event:" + eventKey
}

func (k Keys) SnapshotKeys() string {
	return k.Tenant + ":snapshot:keys"
}

func (k Keys) SnapshotLatest() string {
	return k.Tenant + ":snapshot:latest"
}

func (k Keys) SnapshotUpstreamHash() string {
	return k.Tenant + ":snapshot:upstream_hash"
}

func (k Keys) Prefix() string {
	return k.Tenant + ":"
}

// TenantConfigKey is not tenant-prefixed: it is the registry entry itself,
// keyed "tenant:<tenant>".
func TenantConfigKey(tenant string) string {
	return "tenant:" + tenant
}
