// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
)

// Fixed keys of the two persisted collections.
const (
	ComplaintsKey     = "campuscare_complaints"
	EscalationLogsKey = "campuscare_escalation_logs"
)

// ErrAccountNotFound is returned by a CredentialDirectory for unknown account IDs.
var ErrAccountNotFound = errors.New("account not found")

// KVStore defines the secondary port for whole-collection persistence.
// Each key holds an opaque blob that is always read and written in full.
type KVStore interface {
	// Load returns the value stored under key. found is false when the key was never saved.
	Load(ctx context.Context, key string) (value []byte, found bool, err error)

	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error

	// Close releases the underlying connection.
	Close() error
}

// CredentialDirectory defines the secondary port for account lookup.
// The application never sees plaintext passwords stored anywhere.
type CredentialDirectory interface {
	// Lookup retrieves an account by its ID.
	Lookup(ctx context.Context, accountID string) (*AccountRecord, error)

	// Upsert creates or replaces an account.
	Upsert(ctx context.Context, account *AccountRecord) error
}

// AccountRecord represents an account as stored in the credential directory.
type AccountRecord struct {
	ID           string
	Name         string
	Role         string
	Department   string // Empty string means null (Admin)
	PasswordHash string // bcrypt
	CreatedAt    string
	UpdatedAt    string
}
