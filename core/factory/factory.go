package factory

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

var (
	// ErrUnknownType is returned by Create for a type with no factory.
	ErrUnknownType = errors.New("unknown module type")
	// ErrDuplicate is returned by Register when the name is taken.
	ErrDuplicate = errors.New("module type already registered")
)

// ModuleConfig names a module type and carries its raw settings, as read
// from the `sinks` list of the configuration file.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory builds a T from the raw settings of a ModuleConfig.
type Factory[T any] func(map[string]any) (T, error)

// Registry maps module type names to factories. It is safe for concurrent
// use; registration normally happens in init functions.
type Registry[T any] struct {
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register adds f under name.
func (r *Registry[T]) Register(name string, f Factory[T]) error {
	if name == "" || f == nil {
		return fmt.Errorf("register %q: name and factory are required", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.factories[name] = f
	return nil
}

// MustRegister is Register for init functions; it panics on error.
func (r *Registry[T]) MustRegister(name string, f Factory[T]) {
	if err := r.Register(name, f); err != nil {
		panic(err)
	}
}

// Create builds the module described by cfg. Factory errors are prefixed
// with the module type.
func (r *Registry[T]) Create(cfg ModuleConfig) (T, error) {
	r.mu.RLock()
	f, ok := r.factories[cfg.Type]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w %q (known: %v)", ErrUnknownType, cfg.Type, r.Names())
	}
	v, err := f(cfg.Conf)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", cfg.Type, err)
	}
	return v, nil
}

// Names returns the registered type names, sorted.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Decode fills out from data using json tags. Strings are converted to the
// target kind since env overrides only produce strings, and durations accept
// "5s" style values. Keys that match no field are an error, so a misspelled
// setting is reported instead of silently ignored.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("decode module config: %w", err)
	}
	return nil
}
