// Package source reads the park catalog and visit log from a directory, an
// HTTP origin or an S3 bucket.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

// File names inside a source.
const (
	CatalogFile = "parks.json"
	VisitsFile  = "visits.json"
)

var (
	// ErrNotFound is returned when a source has no object with the given name.
	ErrNotFound = errors.New("not found")
	// ErrCatalogUnavailable wraps any failure to read or parse the catalog.
	ErrCatalogUnavailable = errors.New("park catalog unavailable")
)

// Source opens named data files.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// New picks a driver from the location: s3://bucket/prefix, http(s)://host/path,
// or a filesystem directory (optionally prefixed with file://).
func New(ctx context.Context, location string) (Source, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, fmt.Errorf("data source is required")
	case strings.HasPrefix(location, "s3://"):
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(location, "s3://"), "/")
		return NewS3(ctx, S3Config{Bucket: bucket, Prefix: prefix})
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTP(location)
	default:
		return NewDir(strings.TrimPrefix(location, "file://")), nil
	}
}

// ReadFile reads a whole named file from src.
func ReadFile(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			slog.Warn("closing source file", "source", src.String(), "name", name, "error", cerr)
		}
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Dataset is one load of both data files.
type Dataset struct {
	Parks  []park.Park
	Visits []visit.Record

	// VisitsErr records why the visit log was treated as empty, if it was.
	VisitsErr error
}

// Load reads the catalog and the visit log concurrently. A catalog failure
// is returned wrapped in ErrCatalogUnavailable. A visit log failure is
// logged and the load continues with no visits.
func Load(ctx context.Context, src Source) (*Dataset, error) {
	ds := &Dataset{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := ReadFile(gctx, src, CatalogFile)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
		}
		cat, err := park.DecodeCatalog(data)
		if err != nil {
			return fmt.Errorf("%w: parsing %s: %w", ErrCatalogUnavailable, CatalogFile, err)
		}
		ds.Parks = cat.Parks
		return nil
	})

	g.Go(func() error {
		records, err := loadVisits(gctx, src)
		if err != nil {
			slog.Warn("visit log unavailable, continuing without visits",
				"source", src.String(), "error", err)
			ds.VisitsErr = err
			return nil
		}
		ds.Visits = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

func loadVisits(ctx context.Context, src Source) ([]visit.Record, error) {
	data, err := ReadFile(ctx, src, VisitsFile)
	if err != nil {
		return nil, err
	}
	log, err := visit.DecodeLog(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", VisitsFile, err)
	}
	return log.Visits, nil
}
