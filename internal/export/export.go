// Package export writes the merged passport into a SQLite snapshot.
package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ironicbadger/ktz-usa-stamps/internal/db"
	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/visit"
)

// Summary counts the rows written by a snapshot.
type Summary struct {
	Parks   int `json:"parks"`
	Visited int `json:"visited"`
	Entries int `json:"entries"`
	Stamps  int `json:"stamps"`
}

// Repository stores snapshots in an open database.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a snapshot repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const insertParkSQL = `INSERT INTO parks
	(park_id, unit_code, name, type, region, states, lat, lng, nps_url, hero_url,
	 visited, visit_date, rating, stamp_count, photo_count, raw_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertEntrySQL = `INSERT INTO visit_entries
	(park_row, seq, visit_date, visit_note, rating, review, notes, blog_url, blog_snippet)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertStampSQL = `INSERT INTO stamps (entry_id, image, caption, date, featured) VALUES (?, ?, ?, ?, ?)`

// Replace swaps the stored snapshot for parks in one transaction.
func (r *Repository) Replace(ctx context.Context, parks []*passport.EnrichedPark) (sum Summary, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				slog.Warn("rolling back snapshot", "error", rbErr)
			}
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM parks`); err != nil {
		return Summary{}, fmt.Errorf("clearing parks: %w", err)
	}

	for _, p := range parks {
		if err := insertPark(ctx, tx, p, &sum); err != nil {
			return Summary{}, fmt.Errorf("inserting %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("committing snapshot: %w", err)
	}
	return sum, nil
}

func insertPark(ctx context.Context, tx *sql.Tx, p *passport.EnrichedPark, sum *Summary) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding park: %w", err)
	}

	var heroURL string
	if h := p.Hero(); h != nil {
		heroURL = h.URL
	}

	res, err := tx.ExecContext(ctx, insertParkSQL,
		p.ID, p.UnitCode, p.Name, p.Type, p.Region, strings.Join(p.States, ","),
		nullFloat(p.Lat), nullFloat(p.Lng), p.OfficialURL(), heroURL,
		p.Visited, p.VisitDate, ratingValue(p.Rating), len(p.Stamps), len(p.Photos),
		string(raw),
	)
	if err != nil {
		return err
	}
	parkRow, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting insert id: %w", err)
	}

	sum.Parks++
	if p.Visited {
		sum.Visited++
	}

	for seq, e := range p.Entries {
		res, err := tx.ExecContext(ctx, insertEntrySQL,
			parkRow, seq, e.VisitDate, e.VisitNote, ratingValue(e.Rating),
			e.Review, e.Notes, e.BlogURL, e.BlogSnippet,
		)
		if err != nil {
			return fmt.Errorf("entry %d: %w", seq, err)
		}
		entryID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting entry id: %w", err)
		}
		sum.Entries++

		for _, s := range e.Stamps {
			if s.Image == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, insertStampSQL, entryID, s.Image, s.Caption, s.Date, s.Featured); err != nil {
				return fmt.Errorf("stamp %q: %w", s.Image, err)
			}
			sum.Stamps++
		}
	}
	return nil
}

// Visited returns the ids of visited parks in snapshot order.
func (r *Repository) Visited(ctx context.Context) (ids []string, err error) {
	rows, err := r.db.QueryContext(ctx, `SELECT park_id FROM parks WHERE visited = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying visited parks: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning park id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Snapshot opens the database at path, replaces its contents with parks and
// closes it.
func Snapshot(ctx context.Context, path string, parks []*passport.EnrichedPark) (sum Summary, err error) {
	d, err := db.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer func() {
		if cerr := d.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing database: %w", cerr)
		}
	}()

	return NewRepository(d).Replace(ctx, parks)
}

func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}

func ratingValue(r visit.Rating) sql.NullFloat64 {
	return nullFloat(float64(r))
}
