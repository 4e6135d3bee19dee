package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("protocol not found")

// ErrAmbiguous is returned when a hash prefix matches more than one record.
var ErrAmbiguous = errors.New("protocol reference is ambiguous")

// minPrefix is the shortest hash prefix Get accepts.
const minPrefix = 8

// Record is a stored protocol.
type Record struct {
	Seq      int64           `json:"seq"`
	ID       string          `json:"id"`
	Hash     string          `json:"hash"`
	Name     string          `json:"name"`
	Kind     string          `json:"kind"`
	Params   json.RawMessage `json:"params"`
	Body     string          `json:"body,omitempty"`
	Commands int             `json:"commands"`
	MaxDepth int             `json:"max_depth"`
}

const recordColumns = `seq, id, hash, name, kind, params, body, commands, max_depth`

// Get returns the record whose ID equals ref or whose hash starts with ref.
// Hash prefixes must be at least 8 characters long.
func (s *Store) Get(ctx context.Context, ref string) (Record, error) {
	rec, err := s.getBy(ctx, "id", ref)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return rec, err
	}
	if len(ref) < minPrefix {
		return Record{}, fmt.Errorf("get protocol %s: %w", ref, ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM protocols
		WHERE substr(hash, 1, ?) = ?
		ORDER BY seq ASC
		LIMIT 2
	`, len(ref), ref)
	if err != nil {
		return Record{}, fmt.Errorf("get protocol: %w", err)
	}
	defer rows.Close()

	var found []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return Record{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return Record{}, fmt.Errorf("iterate protocols: %w", err)
	}

	switch len(found) {
	case 0:
		return Record{}, fmt.Errorf("get protocol %s: %w", ref, ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return Record{}, fmt.Errorf("get protocol %s: %w", ref, ErrAmbiguous)
	}
}

// List returns all records in insertion order. Bodies are omitted.
// Returns an empty slice (not nil) if the library is empty.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM protocols
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query protocols: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		r.Body = ""
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate protocols: %w", err)
	}
	return records, nil
}

// getBy returns the single record whose column equals value. column is
// always a constant chosen by this package.
func (s *Store) getBy(ctx context.Context, column, value string) (Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM protocols
		WHERE `+column+` = ?
	`, value)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("get protocol %s: %w", value, ErrNotFound)
	}
	return rec, err
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r      Record
		params string
	)
	err := sc.Scan(&r.Seq, &r.ID, &r.Hash, &r.Name, &r.Kind, &params, &r.Body, &r.Commands, &r.MaxDepth)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan protocol: %w", err)
	}
	r.Params = json.RawMessage(params)
	return r, nil
}
