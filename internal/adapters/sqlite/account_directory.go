package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/campuscare/internal/ports/secondary"
)

// AccountDirectory implements secondary.CredentialDirectory with SQLite.
type AccountDirectory struct {
	db *sql.DB
}

// NewAccountDirectory creates a new SQLite account directory.
func NewAccountDirectory(db *sql.DB) *AccountDirectory {
	return &AccountDirectory{db: db}
}

// Lookup retrieves an account by its ID.
func (r *AccountDirectory) Lookup(ctx context.Context, accountID string) (*secondary.AccountRecord, error) {
	var (
		dept      sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.AccountRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, role, department, password_hash, created_at, updated_at FROM accounts WHERE id = ?",
		accountID,
	).Scan(&record.ID, &record.Name, &record.Role, &dept, &record.PasswordHash, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", secondary.ErrAccountNotFound, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	record.Department = dept.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Upsert creates an account or replaces every field but its creation time.
func (r *AccountDirectory) Upsert(ctx context.Context, account *secondary.AccountRecord) error {
	var dept sql.NullString
	if account.Department != "" {
		dept = sql.NullString{String: account.Department, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, role, department, password_hash) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			department = excluded.department,
			password_hash = excluded.password_hash,
			updated_at = CURRENT_TIMESTAMP`,
		account.ID, account.Name, account.Role, dept, account.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return nil
}

// Ensure AccountDirectory implements the interface
var _ secondary.CredentialDirectory = (*AccountDirectory)(nil)
