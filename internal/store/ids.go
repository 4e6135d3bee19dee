package store

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// DomainProtocol prefixes protocol hashes. The version suffix allows the
// hashing scheme to change without colliding with old records.
const DomainProtocol = "scancmdr/protocol/v1"

// IDGenerator produces record IDs.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 record IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails.
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProtocolHash returns the content address of a protocol's wire text.
func ProtocolHash(body string) string {
	return hashWithDomain(DomainProtocol, []byte(body))
}
