package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/scancmdr/internal/protocol"
)

// Save stores a compiled protocol and returns its record. created is false
// when a protocol with the same text was already stored; the existing record
// is returned unchanged in that case.
//
// params is stored as JSON for later inspection. The name is trimmed and
// NFC normalized.
func (s *Store) Save(ctx context.Context, name, kind string, params any, body string) (rec Record, created bool, err error) {
	l, err := protocol.Parse(strings.NewReader(body))
	if err != nil {
		return Record{}, false, fmt.Errorf("save protocol: %w", err)
	}
	cmds := l.Commands()

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return Record{}, false, fmt.Errorf("save protocol: marshal params: %w", err)
	}

	hash := ProtocolHash(body)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO protocols
		(id, hash, name, kind, params, body, commands, max_depth)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		s.ids.Generate(),
		hash,
		norm.NFC.String(strings.TrimSpace(name)),
		kind,
		string(paramsJSON),
		body,
		len(cmds),
		protocol.MaxDepth(cmds),
	)
	if err != nil {
		return Record{}, false, fmt.Errorf("save protocol: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return Record{}, false, fmt.Errorf("save protocol: %w", err)
	}

	rec, err = s.getBy(ctx, "hash", hash)
	if err != nil {
		return Record{}, false, fmt.Errorf("save protocol: %w", err)
	}
	return rec, n == 1, nil
}

// Delete removes the record with the given ID. Deleting a missing record
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM protocols WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete protocol: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete protocol: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete protocol %s: %w", id, ErrNotFound)
	}
	return nil
}
