package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"leave-api/internal/config"
	"leave-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := NewConnection(config.DriverSQLite, filepath.Join(t.TempDir(), "leave.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewGormStore(db)
}

func TestGormStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestGormStore(t)

	t.Run("Should load an empty document from fresh tables", func(t *testing.T) {
		doc, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, doc.Users)
		assert.Empty(t, doc.LeaveRequests)
		assert.Zero(t, doc.Sequences.Users)
	})

	t.Run("Should persist and update rows", func(t *testing.T) {
		doc, err := store.Load(ctx)
		require.NoError(t, err)

		doc.Users = append(doc.Users, model.User{UserID: doc.NextUserID(), FirstName: "Grace", LastName: "Hopper", Email: "grace@x.io", PasswordHash: "h", RoleID: 2})
		doc.LeaveRequests = append(doc.LeaveRequests, model.LeaveRequest{
			RequestID: doc.NextLeaveRequestID(), UserID: 1, TypeID: 2,
			StartDate: "2024-02-01", EndDate: "2024-02-02", TotalDays: 2,
			Status: model.LeaveStatusPending, CreatedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		})
		actor := 1
		doc.AuditLogs = append(doc.AuditLogs, model.AuditLog{
			ID: uuid.New(), UserID: &actor, Action: model.ActionApplyLeave, EntityID: "1",
			Details: `{"totalDays":2}`, CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, store.Save(ctx, doc))

		manager := 1
		comments := "enjoy"
		doc.LeaveRequests[0].Status = model.LeaveStatusApproved
		doc.LeaveRequests[0].ManagerID = &manager
		doc.LeaveRequests[0].Comments = &comments
		require.NoError(t, store.Save(ctx, doc))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, loaded.Users, 1)
		assert.Equal(t, "grace@x.io", loaded.Users[0].Email)
		require.Len(t, loaded.LeaveRequests, 1)
		assert.Equal(t, model.LeaveStatusApproved, loaded.LeaveRequests[0].Status)
		require.NotNil(t, loaded.LeaveRequests[0].ManagerID)
		assert.Equal(t, 1, *loaded.LeaveRequests[0].ManagerID)
		assert.Equal(t, "enjoy", *loaded.LeaveRequests[0].Comments)
		require.Len(t, loaded.AuditLogs, 1)
		assert.Equal(t, doc.AuditLogs[0].ID, loaded.AuditLogs[0].ID)
		assert.Equal(t, model.Sequences{Users: 1, LeaveRequests: 1}, loaded.Sequences)
	})
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := NewConnection("oracle", "dsn")
	require.Error(t, err)
}

func TestNewStore(t *testing.T) {
	t.Run("Should build a file store", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverFile, DBFile: filepath.Join(t.TempDir(), "db.json")}
		store, err := NewStore(cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &FileStore{}, store)
	})

	t.Run("Should build a relational store", func(t *testing.T) {
		cfg := &config.Config{StoreDriver: config.DriverSQLite, DBDSN: filepath.Join(t.TempDir(), "db.sqlite")}
		store, err := NewStore(cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &GormStore{}, store)
	})
}
