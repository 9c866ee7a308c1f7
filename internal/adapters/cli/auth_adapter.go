package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/primary"
	"github.com/example/campuscare/internal/ports/secondary"
)

// AuthAdapter translates login commands to AuthService calls and keeps the
// issued token in a SessionStore between invocations.
type AuthAdapter struct {
	service primary.AuthService
	store   secondary.SessionStore
	out     io.Writer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(service primary.AuthService, store secondary.SessionStore, out io.Writer) *AuthAdapter {
	return &AuthAdapter{
		service: service,
		store:   store,
		out:     out,
	}
}

// Login authenticates and remembers the session.
func (a *AuthAdapter) Login(ctx context.Context, req primary.LoginRequest) error {
	resp, err := a.service.Login(ctx, req)
	if err != nil {
		return err
	}
	if err := a.store.Save(resp.Token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(a.out, "%s Signed in as %s (%s)\n", color.New(color.FgGreen).Sprint("✓"), resp.Session.Name, describeSession(resp.Session))
	return nil
}

// Logout forgets the current session.
func (a *AuthAdapter) Logout() error {
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Fprintln(a.out, "✓ Signed out")
	return nil
}

// Current returns the session of whoever is signed in.
func (a *AuthAdapter) Current(ctx context.Context) (complaint.Session, error) {
	token, err := a.store.Load()
	if err != nil {
		return complaint.Session{}, err
	}
	session, err := a.service.Resume(ctx, token)
	if err != nil {
		if errors.Is(err, secondary.ErrInvalidToken) {
			return complaint.Session{}, fmt.Errorf("%w: run 'campuscare login' again", secondary.ErrNoSession)
		}
		return complaint.Session{}, err
	}
	return *session, nil
}

// WhoAmI prints the signed-in identity.
func (a *AuthAdapter) WhoAmI(ctx context.Context) error {
	session, err := a.Current(ctx)
	if err != nil {
		if errors.Is(err, secondary.ErrNoSession) {
			fmt.Fprintln(a.out, "Not signed in")
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "%s\t%s\n", session.ID, session.Name)
	fmt.Fprintf(a.out, "Role:\t%s\n", describeSession(session))
	return nil
}

// RegisterAccount creates or replaces an account.
func (a *AuthAdapter) RegisterAccount(ctx context.Context, req primary.RegisterAccountRequest) error {
	if err := a.service.RegisterAccount(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Registered %s account %s\n", req.Role, req.AccountID)
	return nil
}

func describeSession(s complaint.Session) string {
	if s.Department == "" {
		return string(s.Role)
	}
	return fmt.Sprintf("%s, %s", s.Role, s.Department)
}
