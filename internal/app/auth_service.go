package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/primary"
	"github.com/example/campuscare/internal/ports/secondary"
)

// ErrInvalidCredentials is returned for any failed sign-in. It does not say which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DemoPassword is the shared password of the demo accounts.
const DemoPassword = "password"

// DemoAccounts are seeded by `campuscare init --demo`.
var DemoAccounts = []primary.RegisterAccountRequest{
	{AccountID: "20232476", Name: "VENKATRAM R", Role: "STUDENT", Department: "CSE", Password: DemoPassword},
	{AccountID: "20230001", Name: "Aarav Sharma", Role: "STUDENT", Department: "ECE", Password: DemoPassword},
	{AccountID: "4321", Name: "Sujeetha", Role: "STAFF", Department: "CSE", Password: DemoPassword},
	{AccountID: "1234", Name: "Dr.S.SIVAKUMAR", Role: "HOD", Department: "CSE", Password: DemoPassword},
	{AccountID: "123", Name: "Principal Office", Role: "ADMIN", Password: DemoPassword},
}

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	directory secondary.CredentialDirectory
	tokens    secondary.SessionTokens
	hashCost  int
	now       func() time.Time
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(directory secondary.CredentialDirectory, tokens secondary.SessionTokens) *AuthServiceImpl {
	return &AuthServiceImpl{
		directory: directory,
		tokens:    tokens,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// Login verifies the account, its role and its password.
func (s *AuthServiceImpl) Login(ctx context.Context, req primary.LoginRequest) (*primary.LoginResponse, error) {
	role, err := complaint.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	record, err := s.directory.Lookup(ctx, strings.TrimSpace(req.AccountID))
	if err != nil {
		if errors.Is(err, secondary.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if record.Role != string(role) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := complaint.Session{
		ID:         record.ID,
		Name:       record.Name,
		Role:       role,
		Department: complaint.Department(record.Department),
	}
	token, err := s.tokens.Issue(session)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &primary.LoginResponse{Session: session, Token: token}, nil
}

// Resume restores a session from its token.
func (s *AuthServiceImpl) Resume(ctx context.Context, token string) (*complaint.Session, error) {
	return s.tokens.Parse(token)
}

// RegisterAccount validates and stores an account with a bcrypt password hash.
func (s *AuthServiceImpl) RegisterAccount(ctx context.Context, req primary.RegisterAccountRequest) error {
	role, err := complaint.ParseRole(req.Role)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(req.AccountID)
	name := strings.TrimSpace(req.Name)
	if id == "" || name == "" {
		return fmt.Errorf("%w: account ID and name are mandatory", complaint.ErrValidation)
	}
	if req.Password == "" {
		return fmt.Errorf("%w: password is mandatory", complaint.ErrValidation)
	}

	var dept complaint.Department
	switch role {
	case complaint.RoleAdmin:
		if strings.TrimSpace(req.Department) != "" {
			return fmt.Errorf("%w: admin accounts have no department", complaint.ErrValidation)
		}
	default:
		if dept, err = complaint.ParseDepartment(req.Department); err != nil {
			return err
		}
	}
	if role == complaint.RoleStudent {
		if !complaint.ValidStudentID(id) {
			return fmt.Errorf("%w: student ID must be exactly 8 digits", complaint.ErrValidation)
		}
		if !dept.IsAcademic() {
			return fmt.Errorf("%w: %q is not a student department", complaint.ErrValidation, dept)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC().Format(time.RFC3339)
	record := &secondary.AccountRecord{
		ID:           id,
		Name:         name,
		Role:         string(role),
		Department:   string(dept),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.directory.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

// SeedDemoAccounts registers every demo account.
func (s *AuthServiceImpl) SeedDemoAccounts(ctx context.Context) error {
	for _, req := range DemoAccounts {
		if err := s.RegisterAccount(ctx, req); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", req.AccountID, err)
		}
	}
	return nil
}

// Ensure AuthServiceImpl implements the interface
var _ primary.AuthService = (*AuthServiceImpl)(nil)
