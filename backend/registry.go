package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Backend name constants.
const (
	// NameSoftware is the pure Go backend that renders into memory.
	NameSoftware = "software"
	// NameSDL is the go-sdl2 backend (build tag "sdl").
	NameSDL = "sdl"
	// NameEbiten is the ebiten backend (build tag "ebiten").
	NameEbiten = "ebiten"
)

// Factory opens a backend for the given window configuration.
type Factory func(cfg Config) (Backend, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// Native windows first, in-memory rendering as the fallback.
	priority = []string{NameSDL, NameEbiten, NameSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of the registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Open opens the backend registered under name.
func Open(name string, cfg Config) (Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotAvailable, name)
	}
	b, err := factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("backend: open %s: %w", name, err)
	}
	return b, nil
}

// OpenDefault opens the best available backend based on priority.
// Priority order: sdl > ebiten > software, then any other registered
// backend in name order.
func OpenDefault(cfg Config) (Backend, error) {
	registryMu.RLock()
	var order []string
	for _, name := range priority {
		if _, ok := factories[name]; ok {
			order = append(order, name)
		}
	}
	rest := make([]string, 0, len(factories))
	for name := range factories {
		if !isPriority(name) {
			rest = append(rest, name)
		}
	}
	registryMu.RUnlock()

	sort.Strings(rest)
	order = append(order, rest...)
	if len(order) == 0 {
		return nil, ErrNotAvailable
	}

	// Fall through to the next backend when one fails to open,
	// e.g. sdl without a display.
	var errs []error
	for _, name := range order {
		b, err := Open(name, cfg)
		if err == nil {
			return b, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func isPriority(name string) bool {
	for _, p := range priority {
		if p == name {
			return true
		}
	}
	return false
}
