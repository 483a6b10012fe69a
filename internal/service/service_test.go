package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"leave-api/internal/database"
	"leave-api/internal/logger"
	"leave-api/internal/model"
	"leave-api/internal/repository"
	"leave-api/internal/token"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store  *database.FileStore
	tokens *token.Manager
	auth   AuthService
	leaves LeaveService
	audit  AuditService
	stats  StatisticsService
	hub    *recordingHub
	rec    *countingRecorder
}

type recordingHub struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHub) BroadcastEvent(eventType string, _ any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, eventType)
}

func (h *recordingHub) Events() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

type countingRecorder struct {
	mu       sync.Mutex
	applied  map[string]int
	statuses map[string]int
}

func (r *countingRecorder) LeaveApplied(typeName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied[typeName]++
}

func (r *countingRecorder) LeaveStatusChanged(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[status]++
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := database.NewFileStore(filepath.Join(t.TempDir(), "mock_db.json"), logger.Discard())
	tx := repository.NewTransactionManager(store)
	d := repository.NewDispatcher(tx, logger.Discard())
	users := repository.NewUserRepository(d)
	leaves := repository.NewLeaveRepository(d)
	audit := repository.NewAuditRepository(d)
	tokens := token.NewManager([]byte("test-secret"), time.Hour)
	hub := &recordingHub{}
	rec := &countingRecorder{applied: map[string]int{}, statuses: map[string]int{}}

	return &fixture{
		store:  store,
		tokens: tokens,
		auth:   NewAuthService(users, audit, tx, tokens, bcrypt.MinCost),
		leaves: NewLeaveService(leaves, users, audit, tx, hub, rec),
		audit:  NewAuditService(audit, users, tx),
		stats:  NewStatisticsService(users, leaves, tx),
		hub:    hub,
		rec:    rec,
	}
}

// register creates a user and returns the identity a verified token would carry
func (f *fixture) register(t *testing.T, email, role string) model.Identity {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret123",
		Role:      role,
	})
	require.NoError(t, err)
	return model.Identity{UserID: res.UserID, Email: email, Role: model.RoleClaim(res.Role)}
}

func strPtr(s string) *string { return &s }
