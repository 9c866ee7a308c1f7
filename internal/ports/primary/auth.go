package primary

import (
	"context"

	"github.com/example/campuscare/internal/core/complaint"
)

// AuthService defines the primary port for signing in.
type AuthService interface {
	// Login checks credentials against the account directory and issues a session token.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Resume restores the session carried by a previously issued token.
	Resume(ctx context.Context, token string) (*complaint.Session, error)

	// RegisterAccount creates or replaces an account.
	RegisterAccount(ctx context.Context, req RegisterAccountRequest) error
}

// LoginRequest contains the credentials typed at the sign-in prompt.
type LoginRequest struct {
	AccountID string
	Role      string
	Password  string
}

// LoginResponse contains the established session and its token.
type LoginResponse struct {
	Session complaint.Session
	Token   string
}

// RegisterAccountRequest contains parameters for creating an account.
type RegisterAccountRequest struct {
	AccountID  string
	Name       string
	Role       string
	Department string // Empty for Admin
	Password   string
}
