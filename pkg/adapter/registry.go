package adapter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlclause/pkg/core"
	"github.com/leapstack-labs/sqlclause/pkg/dialect"
)

// Factory builds an unconnected adapter. A nil logger means discard.
type Factory func(*slog.Logger) Adapter

type registration struct {
	factory Factory
	// canonical is the dialect name the entry was registered for; aliases share it.
	canonical string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]registration)
)

// Register adds an adapter factory under name. Names are case-insensitive.
func Register(name string, factory func(*slog.Logger) Adapter) {
	key := strings.ToLower(name)
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[key] = registration{factory: factory, canonical: key}
}

// RegisterDialect adds factory under the dialect's name and every one of its aliases,
// so any target type the dialect registry accepts resolves to the same adapter.
// Called by adapter implementations in their init() functions.
func RegisterDialect(d *dialect.Dialect, factory Factory) {
	canonical := strings.ToLower(d.Name)
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[canonical] = registration{factory: factory, canonical: canonical}
	for _, alias := range d.Aliases {
		registry[strings.ToLower(alias)] = registration{factory: factory, canonical: canonical}
	}
}

// Get retrieves an adapter factory by name or alias.
func Get(name string) (func(*slog.Logger) Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return r.factory, true
}

// Canonical resolves a registered name or alias to the name its adapter was
// registered for, e.g. "MariaDB" to "mysql".
func Canonical(name string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[strings.ToLower(name)]
	return r.canonical, ok
}

// NewAdapter creates a new adapter instance based on config type.
// The logger parameter is passed to the adapter constructor (nil uses discard logger).
func NewAdapter(cfg core.AdapterConfig, logger *slog.Logger) (Adapter, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("adapter type not specified")
	}

	factory, ok := Get(cfg.Type)
	if !ok {
		return nil, &UnknownAdapterError{
			Type:      cfg.Type,
			Available: ListAdapters(),
		}
	}
	return factory(logger), nil
}

// ListAdapters returns every registered name and alias (sorted).
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if an adapter type is registered.
func IsRegistered(name string) bool {
	_, ok := Get(name)
	return ok
}

// UnknownAdapterError is returned when an unknown adapter type is requested.
type UnknownAdapterError struct {
	Type      string
	Available []string
}

func (e *UnknownAdapterError) Error() string {
	msg := fmt.Sprintf("unknown adapter type %q (available: %s)", e.Type, strings.Join(e.Available, ", "))
	if d, ok := dialect.Get(e.Type); ok {
		// The dialect exists but its adapter package was never imported.
		return msg + fmt.Sprintf("\nHint: dialect %s has no registered adapter", d.Name)
	}
	return msg + "\nHint: Check your target.type in sqlclause.yaml"
}
