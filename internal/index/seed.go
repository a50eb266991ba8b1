package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

// blankVisit is the template written for parks without a visit file.
type blankVisit struct {
	UnitCode   string        `json:"unit_code"`
	ParkName   string        `json:"park_name"`
	Visited    bool          `json:"visited"`
	VisitDate  string        `json:"visit_date"`
	VisitNote  string        `json:"visit_note"`
	Rating     *float64      `json:"rating"`
	Review     string        `json:"review"`
	Notes      string        `json:"notes"`
	Highlights []string      `json:"highlights"`
	Facts      []visit.Fact  `json:"facts"`
	Stamps     []visit.Stamp `json:"stamps"`
	Photos     []visit.Photo `json:"photos"`
	NPSURL     string        `json:"nps_url"`
}

// FileName returns the per-park visit file name for a unit code.
func FileName(unitCode string) string {
	return strings.ToLower(strings.TrimSpace(unitCode)) + ".json"
}

// Seed writes a blank visit file into dir for every park that has a unit
// code and no file yet. Existing files are never touched. It returns the
// number of files created.
func Seed(parks []park.Park, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("creating visits directory: %w", err)
	}

	created := 0
	for i := range parks {
		p := &parks[i]
		code := strings.TrimSpace(p.UnitCode)
		if code == "" {
			continue
		}

		data, err := json.MarshalIndent(blankVisit{
			UnitCode:   code,
			ParkName:   p.Name,
			Highlights: []string{},
			Facts:      []visit.Fact{},
			Stamps:     []visit.Stamp{},
			Photos:     []visit.Photo{},
		}, "", "  ")
		if err != nil {
			return created, fmt.Errorf("encoding %s: %w", code, err)
		}

		ok, err := createExclusive(filepath.Join(dir, FileName(code)), append(data, '\n'))
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

func createExclusive(path string, data []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}
	return true, nil
}
