package secondary

import (
	"errors"

	"github.com/example/campuscare/internal/core/complaint"
)

// ErrInvalidToken is returned when a session token is malformed, forged or expired.
var ErrInvalidToken = errors.New("invalid session token")

// SessionTokens defines the secondary port for carrying a login between CLI invocations.
type SessionTokens interface {
	// Issue encodes a session into a signed token.
	Issue(session complaint.Session) (string, error)

	// Parse verifies a token and returns the session it carries.
	Parse(token string) (*complaint.Session, error)
}

// ErrNoSession is returned when nobody is signed in.
var ErrNoSession = errors.New("not logged in")

// SessionStore defines the secondary port for keeping the current token between invocations.
type SessionStore interface {
	// Load returns the saved token, or ErrNoSession.
	Load() (string, error)

	// Save replaces the saved token.
	Save(token string) error

	// Clear removes the saved token. Clearing an empty store is not an error.
	Clear() error
}
