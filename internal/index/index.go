// Package index maintains the visit log built from per-park visit files.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironicbadger/ktz-usa-stamps/internal/lenient"
)

// contentKeys are the fields that make a per-park file worth indexing.
var contentKeys = []string{
	"visited", "visit_date", "visit_note", "rating", "review", "notes",
	"highlights", "facts", "stamps", "photos", "nps_url", "hero_image", "visits",
}

// HasContent reports whether a per-park file records anything beyond the
// blank template written by Seed.
func HasContent(o lenient.Object) bool {
	for _, key := range contentKeys {
		if o.Truthy(key) {
			return true
		}
	}
	return false
}

// Collect reads every *.json file in dir in name order and returns the
// records that have a unit code and content. A missing directory yields no
// records. Unreadable or malformed files are logged and skipped.
func Collect(dir string) ([]lenient.Object, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("no visits directory", "dir", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading visits directory: %w", err)
	}

	var records []lenient.Object
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("skipping visit file", "path", path, "error", err)
			continue
		}
		o, err := lenient.Parse(data)
		if err != nil {
			slog.Warn("skipping visit file", "path", path, "error", err)
			continue
		}
		if o.String("unit_code") == "" {
			continue
		}
		if HasContent(o) {
			records = append(records, o)
		}
	}
	return records, nil
}

// Encode renders records as a visit log document.
func Encode(records []lenient.Object) ([]byte, error) {
	if records == nil {
		records = []lenient.Object{}
	}
	data, err := json.MarshalIndent(map[string]any{"visits": records}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding visit log: %w", err)
	}
	return append(data, '\n'), nil
}

// Build collects the per-park files in dir and writes the visit log to
// output. It returns the number of records written.
func Build(dir, output string) (int, error) {
	records, err := Collect(dir)
	if err != nil {
		return 0, err
	}
	data, err := Encode(records)
	if err != nil {
		return 0, err
	}
	if err := WriteFile(output, data); err != nil {
		return 0, err
	}
	return len(records), nil
}

// WriteFile writes data to path through a temporary file in the same
// directory, creating the directory if needed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
