package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/campuscare/internal/core/complaint"
	"github.com/example/campuscare/internal/ports/secondary"
)

var (
	// ErrComplaintNotFound is returned when no complaint has the requested ID.
	ErrComplaintNotFound = errors.New("complaint not found")
	// ErrVersionConflict is returned when an update was computed from a stale copy.
	ErrVersionConflict = errors.New("complaint was modified concurrently")
	// ErrDuplicateComplaint is returned when a complaint ID is already taken.
	ErrDuplicateComplaint = errors.New("complaint already exists")
)

// ComplaintStore keeps every complaint and escalation log in memory and writes
// each affected collection back to the KV store after every mutation.
// Complaints are never deleted.
type ComplaintStore struct {
	mu         sync.RWMutex
	kv         secondary.KVStore
	logger     *zap.Logger
	complaints []complaint.Complaint // creation order
	logs       []complaint.EscalationLog
	index      map[string]int

	complaintSeq int
	logSeq       int
	suffix       func() string
}

// NewComplaintStore creates a store and loads both collections once.
// A collection that cannot be loaded or decoded starts empty; the failure is only logged.
func NewComplaintStore(ctx context.Context, kv secondary.KVStore, logger *zap.Logger) *ComplaintStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ComplaintStore{
		kv:     kv,
		logger: logger,
		index:  make(map[string]int),
		suffix: randomSuffix,
	}

	s.complaints = loadCollection[complaint.Complaint](ctx, kv, logger, secondary.ComplaintsKey)
	s.logs = loadCollection[complaint.EscalationLog](ctx, kv, logger, secondary.EscalationLogsKey)

	for i, c := range s.complaints {
		s.index[c.ID] = i
		if seq := complaint.ParseComplaintSequence(c.ID); seq > s.complaintSeq {
			s.complaintSeq = seq
		}
	}
	for _, l := range s.logs {
		if seq := complaint.ParseLogSequence(l.ID); seq > s.logSeq {
			s.logSeq = seq
		}
	}

	logger.Debug("complaint store loaded",
		zap.Int("complaints", len(s.complaints)),
		zap.Int("escalation_logs", len(s.logs)))
	return s
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func loadCollection[T any](ctx context.Context, kv secondary.KVStore, logger *zap.Logger, key string) []T {
	raw, found, err := kv.Load(ctx, key)
	if err != nil {
		logger.Warn("failed to load collection", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !found || len(raw) == 0 {
		return nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("failed to decode collection", zap.String("key", key), zap.Error(err))
		return nil
	}
	return items
}

// NextComplaintID allocates a fresh complaint ID.
func (s *ComplaintStore) NextComplaintID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complaintSeq++
	return complaint.GenerateComplaintID(s.complaintSeq, s.suffix())
}

// NextLogID allocates a fresh escalation log ID.
func (s *ComplaintStore) NextLogID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logSeq++
	return complaint.GenerateLogID(s.logSeq, s.suffix())
}

// Create adds a new complaint.
func (s *ComplaintStore) Create(ctx context.Context, c complaint.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[c.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateComplaint, c.ID)
	}
	if c.Version == 0 {
		c.Version = 1
	}
	s.index[c.ID] = len(s.complaints)
	s.complaints = append(s.complaints, c.Clone())
	s.persistComplaints(ctx)
	return nil
}

// Update replaces the stored complaint with the same ID and returns the stored copy.
// c.Version must equal the stored version; the stored version is then incremented.
func (s *ComplaintStore) Update(ctx context.Context, c complaint.Complaint) (complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.replaceLocked(c)
	if err != nil {
		return complaint.Complaint{}, err
	}
	s.persistComplaints(ctx)
	return stored, nil
}

// Escalate stores the promoted complaint and appends its audit entry in one step.
func (s *ComplaintStore) Escalate(ctx context.Context, c complaint.Complaint, log complaint.EscalationLog) (complaint.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.replaceLocked(c)
	if err != nil {
		return complaint.Complaint{}, err
	}
	s.logs = append(s.logs, log)
	s.persistComplaints(ctx)
	s.persistLogs(ctx)
	return stored, nil
}

func (s *ComplaintStore) replaceLocked(c complaint.Complaint) (complaint.Complaint, error) {
	i, ok := s.index[c.ID]
	if !ok {
		return complaint.Complaint{}, fmt.Errorf("%w: %s", ErrComplaintNotFound, c.ID)
	}
	current := s.complaints[i]
	if c.Version != current.Version {
		return complaint.Complaint{}, fmt.Errorf("%w: %s has version %d, update was based on %d",
			ErrVersionConflict, c.ID, current.Version, c.Version)
	}
	next := c.Clone()
	next.Version = current.Version + 1
	s.complaints[i] = next
	return next.Clone(), nil
}

// AppendLog appends an escalation log entry.
func (s *ComplaintStore) AppendLog(ctx context.Context, log complaint.EscalationLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	s.persistLogs(ctx)
}

// All returns copies of every complaint, newest first.
func (s *ComplaintStore) All() []complaint.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]complaint.Complaint, 0, len(s.complaints))
	for i := len(s.complaints) - 1; i >= 0; i-- {
		out = append(out, s.complaints[i].Clone())
	}
	return out
}

// ByID returns a copy of one complaint.
func (s *ComplaintStore) ByID(id string) (complaint.Complaint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return complaint.Complaint{}, false
	}
	return s.complaints[i].Clone(), true
}

// Logs returns the escalation history of one complaint, oldest first.
func (s *ComplaintStore) Logs(complaintID string) []complaint.EscalationLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []complaint.EscalationLog
	for _, l := range s.logs {
		if l.ComplaintID == complaintID {
			out = append(out, l)
		}
	}
	return out
}

// LatestLog returns the most recently appended log of one complaint.
func (s *ComplaintStore) LatestLog(complaintID string) (complaint.EscalationLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.logs) - 1; i >= 0; i-- {
		if s.logs[i].ComplaintID == complaintID {
			return s.logs[i], true
		}
	}
	return complaint.EscalationLog{}, false
}

// AllLogs returns every escalation log, oldest first.
func (s *ComplaintStore) AllLogs() []complaint.EscalationLog {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]complaint.EscalationLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *ComplaintStore) persistComplaints(ctx context.Context) {
	s.persist(ctx, secondary.ComplaintsKey, s.complaints)
}

func (s *ComplaintStore) persistLogs(ctx context.Context) {
	s.persist(ctx, secondary.EscalationLogsKey, s.logs)
}

// persist must be called with s.mu held. Failures leave memory authoritative.
func (s *ComplaintStore) persist(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("failed to encode collection", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Save(ctx, key, raw); err != nil {
		s.logger.Warn("failed to save collection", zap.String("key", key), zap.Error(err))
	}
}
