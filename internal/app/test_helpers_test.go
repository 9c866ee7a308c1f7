package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/example/campuscare/internal/core/classify"
	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.KVStore             = (*mockKVStore)(nil)
	_ secondary.Classifier          = (*mockRemoteClassifier)(nil)
	_ secondary.CredentialDirectory = (*mockCredentialDirectory)(nil)
	_ secondary.SessionTokens       = (*mockSessionTokens)(nil)
)

// mockKVStore implements secondary.KVStore for testing.
type mockKVStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	saves   map[string]int
	loadErr error
	saveErr error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{
		values: make(map[string][]byte),
		saves:  make(map[string]int),
	}
}

func (m *mockKVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockKVStore) Save(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[key]++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *mockKVStore) Close() error {
	return nil
}

// mockRemoteClassifier implements secondary.Classifier for testing.
type mockRemoteClassifier struct {
	suggestion *secondary.ClassifierSuggestion
	err        error
	delay      time.Duration
	calls      int
}

func (m *mockRemoteClassifier) Classify(ctx context.Context, title, description string) (*secondary.ClassifierSuggestion, error) {
	m.calls++
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.suggestion, m.err
}

// mockCredentialDirectory implements secondary.CredentialDirectory for testing.
type mockCredentialDirectory struct {
	accounts  map[string]*secondary.AccountRecord
	lookupErr error
	upsertErr error
}

func newMockCredentialDirectory() *mockCredentialDirectory {
	return &mockCredentialDirectory{accounts: make(map[string]*secondary.AccountRecord)}
}

func (m *mockCredentialDirectory) Lookup(ctx context.Context, accountID string) (*secondary.AccountRecord, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	if a, ok := m.accounts[accountID]; ok {
		return a, nil
	}
	return nil, secondary.ErrAccountNotFound
}

func (m *mockCredentialDirectory) Upsert(ctx context.Context, account *secondary.AccountRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.accounts[account.ID] = account
	return nil
}

// mockSessionTokens encodes the session ID as the token.
type mockSessionTokens struct {
	sessions map[string]complaint.Session
	issueErr error
}

func newMockSessionTokens() *mockSessionTokens {
	return &mockSessionTokens{sessions: make(map[string]complaint.Session)}
}

func (m *mockSessionTokens) Issue(session complaint.Session) (string, error) {
	if m.issueErr != nil {
		return "", m.issueErr
	}
	token := "token-" + session.ID
	m.sessions[token] = session
	return token, nil
}

func (m *mockSessionTokens) Parse(token string) (*complaint.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, secondary.ErrInvalidToken
	}
	return &s, nil
}

// fixedClassifier returns the same result for every complaint.
type fixedClassifier struct {
	result classify.Result
}

func (f fixedClassifier) Classify(ctx context.Context, title, description string) classify.Result {
	return f.result
}

var errBoom = errors.New("boom")

var (
	studentSession = complaint.Session{ID: "20232476", Name: "VENKATRAM R", Role: complaint.RoleStudent, Department: complaint.DepartmentCSE}
	otherStudent   = complaint.Session{ID: "20230001", Name: "Aarav Sharma", Role: complaint.RoleStudent, Department: complaint.DepartmentECE}
	staffSession   = complaint.Session{ID: "4321", Name: "Sujeetha", Role: complaint.RoleStaff, Department: complaint.DepartmentCSE}
	hodSession     = complaint.Session{ID: "1234", Name: "Dr.S.SIVAKUMAR", Role: complaint.RoleHOD, Department: complaint.DepartmentCSE}
	adminSession   = complaint.Session{ID: "123", Name: "Principal Office", Role: complaint.RoleAdmin}
)
