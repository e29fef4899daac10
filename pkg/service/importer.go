package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jeremyhahn/go-otpimport/pkg/otp"
	"github.com/jeremyhahn/go-otpimport/pkg/provider"
)

var (
	// ErrNoData indicates an import request without data.
	ErrNoData = errors.New("service: no import data")
	// ErrInvalidRecord indicates the parsed export contained a record that
	// cannot be stored. Nothing from the export is imported.
	ErrInvalidRecord = errors.New("service: export contains invalid records")
	// ErrNilImporter indicates a nil importer was used.
	ErrNilImporter = errors.New("service: importer is nil")
)

// Config configures an Importer.
type Config struct {
	// Registry parses export data. Nil uses a registry with the default providers.
	Registry *provider.Registry
	// Converter builds services from records.
	Converter Converter
	// Logger receives debug events. Nil discards them.
	Logger *slog.Logger
}

// Importer turns export files into services ready to persist.
type Importer struct {
	registry  *provider.Registry
	converter Converter
	logger    *slog.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg Config) (*Importer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reg := cfg.Registry
	if reg == nil {
		var err error
		reg, err = provider.NewRegistry(provider.Config{Logger: logger})
		if err != nil {
			return nil, err
		}
	}

	return &Importer{registry: reg, converter: cfg.Converter, logger: logger}, nil
}

// Request describes one import.
type Request struct {
	// Data is the raw export file content.
	Data []byte
	// Provider names the source app. Empty means auto-detect.
	Provider string
	// Existing are the services already stored; duplicates of them are
	// skipped and new positions follow theirs.
	Existing []Service
}

// Result is the outcome of an import.
type Result struct {
	// Provider is the name of the provider that parsed the data.
	Provider string
	// Services are the new services, in export order.
	Services []Service
	// Skipped counts records that duplicated an existing or earlier service.
	Skipped int
}

// Import parses req.Data and converts every record. The import is all or
// nothing: if parsing fails or any record is invalid, no services are
// returned.
func (i *Importer) Import(ctx context.Context, req Request) (*Result, error) {
	if i == nil || i.registry == nil {
		return nil, ErrNilImporter
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(req.Data) == 0 {
		return nil, ErrNoData
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		parsed *provider.Result
		err    error
	)
	if req.Provider != "" {
		parsed, err = i.registry.ParseWith(req.Provider, req.Data)
	} else {
		parsed, err = i.registry.ParseAuto(req.Data)
	}
	if err != nil {
		return nil, err
	}

	if err := validateAll(parsed.Records); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Provider: parsed.Provider}
	seen := append([]Service(nil), req.Existing...)
	next := NextPosition(req.Existing)
	for _, r := range parsed.Records {
		s := i.converter.Convert(r, next)
		if IsDuplicate(seen, s) {
			res.Skipped++
			continue
		}
		seen = append(seen, s)
		res.Services = append(res.Services, s)
		next++
	}

	i.logger.Debug("import complete",
		slog.String("provider", res.Provider),
		slog.Int("imported", len(res.Services)),
		slog.Int("skipped", res.Skipped))
	return res, nil
}

func validateAll(records []otp.Record) error {
	var errs []error
	for n, r := range records {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("record %d (%s): %w", n, r.Label, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidRecord, errors.Join(errs...))
}
