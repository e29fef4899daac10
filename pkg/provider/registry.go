package provider

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
)

// Config contains the ordered providers the registry consults.
type Config struct {
	// Providers are tried in order during auto-detection. Empty means
	// DefaultProviders.
	Providers []Provider
	// Logger receives debug events about detection. Nil discards them.
	Logger *slog.Logger
}

// Result is the outcome of a successful parse.
type Result struct {
	// Provider is the name of the provider that produced Records.
	Provider string
	Records  []otp.Record
}

// Registry dispatches export data to providers. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	logger    *slog.Logger
}

// DefaultProviders returns the built-in providers in detection order. Ente
// precedes Google because Ente's plain-text export is also a list of
// otpauth lines, and its trashed entries must not be imported.
func DefaultProviders() []Provider {
	return []Provider{
		NewEnte(),
		NewGoogleAuth(),
		NewTwoFAS(),
		NewBitwarden(),
		NewLastPass(),
		NewAuthy(),
		NewMicrosoft(),
	}
}

// NewRegistry builds a Registry from the supplied configuration.
func NewRegistry(cfg Config) (*Registry, error) {
	providers := cfg.Providers
	if len(providers) == 0 {
		providers = DefaultProviders()
	}

	r := &Registry{logger: cfg.Logger}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}

	seen := map[string]struct{}{}
	for i, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("%w: provider at index %d is nil", ErrInvalidConfig, i)
		}
		if _, ok := seen[p.Name()]; ok {
			return nil, fmt.Errorf("%w: duplicate provider name %q", ErrInvalidConfig, p.Name())
		}
		seen[p.Name()] = struct{}{}
		r.providers = append(r.providers, p)
	}
	return r, nil
}

// Register adds a provider at the end of the detection order. A provider
// with an already registered name replaces the old one in place.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return fmt.Errorf("%w: nil provider", ErrInvalidConfig)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.providers {
		if existing.Name() == p.Name() {
			r.providers[i] = p
			return nil
		}
	}
	r.providers = append(r.providers, p)
	return nil
}

// Provider returns the provider registered under name.
func (r *Registry) Provider(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.providers {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Providers returns the registered providers in detection order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]Provider(nil), r.providers...)
}

// ParseAuto classifies data once and hands it to each provider in order.
// The first provider whose CanParse accepts the data and whose Parse
// succeeds wins. A Parse failure is treated as a false positive and the
// next provider is tried, except ErrUnsupportedExportFormat and
// ErrTrashedOnly which are returned at once. When nothing succeeds the
// error is a *DetectionError.
func (r *Registry) ParseAuto(data []byte) (*Result, error) {
	in := NewInput(data)
	providers := r.Providers()

	var attempts []Attempt
	for _, p := range providers {
		if !p.CanParse(in) {
			continue
		}
		records, err := parse(p, in)
		if err == nil {
			r.logger.Debug("import format detected",
				slog.String("provider", p.Name()),
				slog.Int("records", len(records)))
			return &Result{Provider: p.Name(), Records: records}, nil
		}
		if terminal(err) {
			r.logger.Debug("import stopped",
				slog.String("provider", p.Name()),
				slog.String("error", err.Error()))
			return nil, err
		}
		r.logger.Debug("provider rejected data",
			slog.String("provider", p.Name()),
			slog.String("error", err.Error()))
		attempts = append(attempts, Attempt{Provider: p.Name(), Err: err})
	}

	return nil, &DetectionError{Attempts: attempts}
}

// ParseWith parses data with the named provider, skipping detection. Parse
// errors are returned unchanged.
func (r *Registry) ParseWith(name string, data []byte) (*Result, error) {
	p, ok := r.Provider(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProviderNotFound, name)
	}

	records, err := parse(p, NewInput(data))
	if err != nil {
		return nil, err
	}
	return &Result{Provider: p.Name(), Records: records}, nil
}

// parse runs p and turns an empty successful parse into ErrEmptyResult.
func parse(p Provider, in Input) ([]otp.Record, error) {
	records, err := p.Parse(in)
	if err == nil && len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", p.Name(), ErrEmptyResult)
	}
	return records, err
}

// terminal reports errors that identify the format with certainty.
func terminal(err error) bool {
	return errors.Is(err, ErrUnsupportedExportFormat) || errors.Is(err, ErrTrashedOnly)
}
