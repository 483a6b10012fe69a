package repository

import (
	"context"
	"testing"

	"leave-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	d, _ := newTestDispatcher(t)
	repo := NewUserRepository(d)
	ctx := context.Background()

	user := &model.User{FirstName: "Ada", Email: "ada@x.io", PasswordHash: "h", RoleID: 2}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, 1, user.UserID)

	_, err := repo.GetByEmail(ctx, "nobody@x.io")
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := repo.GetByIDWithRole(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, found.RoleName)

	_, err = repo.GetByIDWithRole(ctx, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByEmailWithRole(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)

	role, err := repo.FindRoleByName(ctx, "EMPLOYEE")
	require.NoError(t, err)
	assert.Equal(t, 3, role.ID)
}

func TestLeaveRepository(t *testing.T) {
	d, _ := newTestDispatcher(t)
	repo := NewLeaveRepository(d)
	ctx := context.Background()

	req := &model.LeaveRequest{UserID: 1, TypeID: 1, StartDate: "2024-01-01", EndDate: "2024-01-01", TotalDays: 1, Status: model.LeaveStatusPending}
	require.NoError(t, repo.Create(ctx, req))
	assert.Equal(t, 1, req.RequestID)

	_, err := repo.FindByID(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)

	affected, err := repo.UpdateStatus(ctx, 1, model.LeaveStatusCancelled, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.LeaveStatusCancelled, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}
