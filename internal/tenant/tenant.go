// Package tenant implements the tenant registration/config persistence
// collaborator from §1 and §6: a key-value mapping from tenant-id to
// source URL and default timezone, backed by the same statestore.Store
// the reconciliation engine uses for event state.
package tenant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/calproxy/calproxy/internal/statestore"
)

// Config is the persisted tenant record.
type Config struct {
	SourceURL string `json:"sourceUrl"`
	CreatedAt int64  `json:"createdAt"`
	Timezone  string `json:"timezone,omitempty"`
}

type Registry struct {
	store statestore.Store
}

func NewRegistry(store statestore.Store) *Registry {
	return &Registry{store: store}
}

func (r *Registry) Register(ctx context.Context, tenantID string, cfg Config) error {
	b, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("tenant: marshal config: %w", err)
	}
	return r.store.Put(ctx, statestore.TenantConfigKey(tenantID), string(b))
}

func (r *Registry) Get(ctx context.Context, tenantID string) (Config, bool, error) {
	raw, ok, err := r.store.Get(ctx, statestore.TenantConfigKey(tenantID))
	if err != nil || !ok {
		return Config{}, false, err
	}
	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return Config{}, false, fmt.Errorf("tenant: unmarshal config: %w", err)
	}
	return cfg, true, nil
}

// Teardown deletes the tenant-config key and iterates the tenant prefix,
// deleting every key it owns.
func (r *Registry) Teardown(ctx context.Context, tenantID string) error {
	if err := r.store.Delete(ctx, statestore.TenantConfigKey(tenantID)); err != nil {
		return fmt.Errorf("tenant: delete config: %w", err)
	}

	prefix := statestore.Keys{Tenant: tenantID}.Prefix()
	cursor := ""
	for {
		keys, next, complete, err := r.store.List(ctx, prefix, cursor)
		if err != nil {
			return fmt.Errorf("tenant: list keys: %w", err)
		}
		for _, k := range keys {
			if err := r.store.Delete(ctx, k); err != nil {
				return fmt.Errorf("tenant: delete key %s: %w", k, err)
			}
		}
		if complete {
			return nil
		}
		cursor = next
	}
}
