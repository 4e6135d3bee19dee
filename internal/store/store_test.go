package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scancmdr/internal/testutil"
)

const spotBody = "C\n" +
	"AV,0,4,26600\n" +
	"AV,0,3,-19400\n" +
	"AS,0,9,1\n" +
	"AV,40000,7,4\n" +
	"AV,60000,7,0\n" +
	"AE,200050,9,1\n"

const gridBody = "C\n" +
	"AS,0,9,1\n" +
	"AS,10,9,2\n" +
	"AS,10,9,2\n" +
	"AV,10,7,4\n" +
	"AE,210,9,2\n" +
	"AE,410,9,2\n" +
	"AE,460,9,1\n"

// createTestStore opens a fresh store with sequential IDs.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(testutil.NewSequentialIDGenerator("proto")))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := createTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("synchronous", "1"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.db")

	s1, err := Open(path)
	require.NoError(t, err)
	_, _, err = s1.Save(context.Background(), "spot", "spot", map[string]int{"reps": 1}, spotBody)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	recs, err := s2.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	rec, created, err := s.Save(ctx, "  scenario ", "spot", map[string]any{"reps": 1}, spotBody)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "proto-0001", rec.ID)
	assert.Equal(t, "scenario", rec.Name)
	assert.Equal(t, "spot", rec.Kind)
	assert.Equal(t, ProtocolHash(spotBody), rec.Hash)
	assert.Equal(t, 6, rec.Commands)
	assert.Equal(t, 1, rec.MaxDepth)
	assert.Equal(t, spotBody, rec.Body)
	assert.JSONEq(t, `{"reps":1}`, string(rec.Params))

	byID, err := s.Get(ctx, "proto-0001")
	require.NoError(t, err)
	assert.Equal(t, rec, byID)

	byHash, err := s.Get(ctx, rec.Hash[:12])
	require.NoError(t, err)
	assert.Equal(t, rec, byHash)
}

func TestSaveIsIdempotentByContent(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	first, created, err := s.Save(ctx, "a", "spot", nil, spotBody)
	require.NoError(t, err)
	require.True(t, created)

	again, created, err := s.Save(ctx, "renamed", "spot", nil, spotBody)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, again)

	second, created, err := s.Save(ctx, "grid", "grid", nil, gridBody)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "proto-0003", second.ID, "the ignored insert still consumed an ID")
	assert.Equal(t, 3, second.MaxDepth)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "a", recs[0].Name)
	assert.Equal(t, "grid", recs[1].Name)
	assert.Empty(t, recs[0].Body)
}

func TestSaveNormalizesName(t *testing.T) {
	s := createTestStore(t)

	// "e" followed by a combining acute accent composes to U+00E9.
	rec, _, err := s.Save(context.Background(), "cafe\u0301", "spot", nil, spotBody)
	require.NoError(t, err)
	assert.Equal(t, "caf\u00e9", rec.Name)
}

func TestSaveRejectsMalformedBody(t *testing.T) {
	_, _, err := createTestStore(t).Save(context.Background(), "bad", "spot", nil, "C\nnot a command\n")
	assert.Error(t, err)
}

func TestGetErrors(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, "0123456789abcdef")
	assert.ErrorIs(t, err, ErrNotFound)

	rec, _, err := s.Save(ctx, "spot", "spot", nil, spotBody)
	require.NoError(t, err)

	_, err = s.Get(ctx, rec.Hash[:4])
	assert.ErrorIs(t, err, ErrNotFound, "short prefixes are not resolved")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	rec, _, err := s.Save(ctx, "spot", "spot", nil, spotBody)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, rec.ID))
	assert.ErrorIs(t, s.Delete(ctx, rec.ID), ErrNotFound)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NotNil(t, recs)
}

func TestProtocolHashIsDomainSeparated(t *testing.T) {
	assert.Len(t, ProtocolHash(spotBody), 64)
	assert.NotEqual(t, ProtocolHash(spotBody), hashWithDomain("other/v1", []byte(spotBody)))
	assert.Equal(t, ProtocolHash(spotBody), ProtocolHash(spotBody))
}

func TestUUIDv7Generator(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestRecordJSON(t *testing.T) {
	rec := Record{ID: "x", Params: json.RawMessage(`{"a":1}`)}
	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"params":{"a":1}`)
}
