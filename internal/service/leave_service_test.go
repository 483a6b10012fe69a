package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"testing"

	"leave-api/internal/apperror"
	"leave-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("Should persist a pending request with an inclusive day count", func(t *testing.T) {
		f := newFixture(t)
		emp := f.register(t, "emp@x.io", "")

		res, err := f.leaves.Apply(ctx, emp, ApplyLeaveRequest{TypeID: 1, StartDate: "2024-03-01", EndDate: "2024-03-05", Reason: strPtr("trip")})
		require.NoError(t, err)
		assert.Equal(t, "Leave application submitted successfully", res.Message)
		assert.Equal(t, 1, res.RequestID)
		assert.Equal(t, 5, res.TotalDays)

		history, err := f.leaves.MyHistory(ctx, emp)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, model.LeaveStatusPending, history[0].Status)
		assert.Equal(t, "Annual", history[0].TypeName)
		assert.Equal(t, "trip", *history[0].Reason)
		assert.Nil(t, history[0].ManagerID)
	})

	t.Run("Should count a single day", func(t *testing.T) {
		f := newFixture(t)
		emp := f.register(t, "emp@x.io", "")
		res, err := f.leaves.Apply(ctx, emp, ApplyLeaveRequest{TypeID: 2, StartDate: "2024-03-01", EndDate: "2024-03-01"})
		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalDays)
	})

	t.Run("Should reject an end date before the start date", func(t *testing.T) {
		f := newFixture(t)
		emp := f.register(t, "emp@x.io", "")
		_, err := f.leaves.Apply(ctx, emp, ApplyLeaveRequest{TypeID: 1, StartDate: "2024-03-05", EndDate: "2024-03-03"})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		assert.Equal(t, "End date must be after start date", err.Error())
	})

	t.Run("Should require type and both dates", func(t *testing.T) {
		f := newFixture(t)
		emp := f.register(t, "emp@x.io", "")
		cases := []ApplyLeaveRequest{
			{StartDate: "2024-03-01", EndDate: "2024-03-02"},
			{TypeID: 1, EndDate: "2024-03-02"},
			{TypeID: 1, StartDate: "2024-03-01"},
		}
		for _, req := range cases {
			_, err := f.leaves.Apply(ctx, emp, req)
			require.Error(t, err)
			assert.Equal(t, "Type ID, Start Date, and End Date are required", err.Error())
		}
	})

	t.Run("Should reject unparseable dates", func(t *testing.T) {
		f := newFixture(t)
		emp := f.register(t, "emp@x.io", "")
		_, err := f.leaves.Apply(ctx, emp, ApplyLeaveRequest{TypeID: 1, StartDate: "March 1st", EndDate: "2024-03-02"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Should reject a requester that no longer exists", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.leaves.Apply(ctx, model.Identity{UserID: 99, Role: model.ClaimEmployee}, ApplyLeaveRequest{TypeID: 1, StartDate: "2024-03-01", EndDate: "2024-03-01"})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		all, err := f.leaves.AllHistory(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Should accept the type id as a string", func(t *testing.T) {
		f := newFixture(t)
		emp := f.register(t, "emp@x.io", "")
		var req ApplyLeaveRequest
		require.NoError(t, json.Unmarshal([]byte(`{"typeId":"3","startDate":"2024-03-01","endDate":"2024-03-02"}`), &req))

		_, err := f.leaves.Apply(ctx, emp, req)
		require.NoError(t, err)
		history, err := f.leaves.MyHistory(ctx, emp)
		require.NoError(t, err)
		assert.Equal(t, 3, history[0].TypeID)
		assert.Equal(t, "Personal", history[0].TypeName)
	})

	t.Run("Should broadcast, record and audit the application", func(t *testing.T) {
		f := newFixture(t)
		emp := f.register(t, "emp@x.io", "")
		_, err := f.leaves.Apply(ctx, emp, ApplyLeaveRequest{TypeID: 9, StartDate: "2024-03-01", EndDate: "2024-03-01"})
		require.NoError(t, err)

		assert.Equal(t, []string{EventLeaveApplied}, f.hub.Events())
		assert.Equal(t, 1, f.rec.applied[model.DefaultLeaveTypeName])

		logs, total, err := f.audit.GetAuditLogs(ctx, 1, 10)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		actions := []string{logs[0].Action, logs[1].Action}
		assert.Contains(t, actions, model.ActionApplyLeave)
	})
}

func TestLeaveService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, model.Identity, model.Identity, int) {
		f := newFixture(t)
		emp := f.register(t, "emp@x.io", "")
		mgr := f.register(t, "mgr@x.io", "Manager")
		res, err := f.leaves.Apply(ctx, emp, ApplyLeaveRequest{TypeID: 1, StartDate: "2024-03-01", EndDate: "2024-03-02"})
		require.NoError(t, err)
		return f, emp, mgr, res.RequestID
	}

	t.Run("Should record the decision, manager and comments", func(t *testing.T) {
		f, emp, mgr, id := setup(t)

		res, err := f.leaves.UpdateStatus(ctx, mgr, id, UpdateStatusRequest{Status: model.LeaveStatusApproved, Comments: strPtr("enjoy")})
		require.NoError(t, err)
		assert.Equal(t, "Leave request approved successfully", res.Message)
		assert.Equal(t, id, res.RequestID)
		assert.Equal(t, model.LeaveStatusApproved, res.Status)

		history, err := f.leaves.MyHistory(ctx, emp)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, model.LeaveStatusApproved, history[0].Status)
		require.NotNil(t, history[0].ManagerID)
		assert.Equal(t, mgr.UserID, *history[0].ManagerID)
		assert.Equal(t, "enjoy", *history[0].Comments)
		assert.Equal(t, []string{EventLeaveApplied, EventLeaveStatusChanged}, f.hub.Events())
		assert.Equal(t, 1, f.rec.statuses[model.LeaveStatusApproved])
	})

	t.Run("Should overwrite an earlier decision", func(t *testing.T) {
		f, emp, mgr, id := setup(t)
		_, err := f.leaves.UpdateStatus(ctx, mgr, id, UpdateStatusRequest{Status: model.LeaveStatusApproved})
		require.NoError(t, err)
		_, err = f.leaves.UpdateStatus(ctx, mgr, id, UpdateStatusRequest{Status: model.LeaveStatusCancelled})
		require.NoError(t, err)

		history, err := f.leaves.MyHistory(ctx, emp)
		require.NoError(t, err)
		assert.Equal(t, model.LeaveStatusCancelled, history[0].Status)
	})

	t.Run("Should reject statuses outside the decision set", func(t *testing.T) {
		f, _, mgr, id := setup(t)
		for _, status := range []string{"", "Pending", "approved", "Done"} {
			_, err := f.leaves.UpdateStatus(ctx, mgr, id, UpdateStatusRequest{Status: status})
			require.Error(t, err)
			assert.Equal(t, "Invalid status. Must be Approved, Rejected, or Cancelled", err.Error())
		}
	})

	t.Run("Should report unknown requests as not found", func(t *testing.T) {
		f, _, mgr, _ := setup(t)
		_, err := f.leaves.UpdateStatus(ctx, mgr, 404, UpdateStatusRequest{Status: model.LeaveStatusRejected})
		require.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		assert.Equal(t, "Leave request not found", err.Error())
	})

	t.Run("Should enforce an expected status when given", func(t *testing.T) {
		f, emp, mgr, id := setup(t)
		_, err := f.leaves.UpdateStatus(ctx, mgr, id, UpdateStatusRequest{Status: model.LeaveStatusRejected, ExpectedStatus: model.LeaveStatusPending})
		require.NoError(t, err)

		_, err = f.leaves.UpdateStatus(ctx, mgr, id, UpdateStatusRequest{Status: model.LeaveStatusApproved, ExpectedStatus: model.LeaveStatusPending})
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

		history, err := f.leaves.MyHistory(ctx, emp)
		require.NoError(t, err)
		assert.Equal(t, model.LeaveStatusRejected, history[0].Status)
	})
}

func TestLeaveService_Listings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "alice@x.io", "")
	bob := f.register(t, "bob@x.io", "")
	mgr := f.register(t, "mgr@x.io", "Manager")

	first, err := f.leaves.Apply(ctx, alice, ApplyLeaveRequest{TypeID: 1, StartDate: "2024-03-01", EndDate: "2024-03-02"})
	require.NoError(t, err)
	second, err := f.leaves.Apply(ctx, bob, ApplyLeaveRequest{TypeID: 2, StartDate: "2024-04-01", EndDate: "2024-04-01"})
	require.NoError(t, err)
	third, err := f.leaves.Apply(ctx, alice, ApplyLeaveRequest{TypeID: 3, StartDate: "2024-05-01", EndDate: "2024-05-03"})
	require.NoError(t, err)
	_, err = f.leaves.UpdateStatus(ctx, mgr, second.RequestID, UpdateStatusRequest{Status: model.LeaveStatusApproved})
	require.NoError(t, err)

	t.Run("Should list only the caller's requests, newest first", func(t *testing.T) {
		history, err := f.leaves.MyHistory(ctx, alice)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, third.RequestID, history[0].RequestID)
		assert.Equal(t, first.RequestID, history[1].RequestID)
	})

	t.Run("Should list every request with the requester's details", func(t *testing.T) {
		all, err := f.leaves.AllHistory(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, third.RequestID, all[0].RequestID)
		assert.Equal(t, "alice@x.io", all[0].Email)
		assert.Equal(t, "Test", all[0].FirstName)
	})

	t.Run("Should return an empty history for users without requests", func(t *testing.T) {
		history, err := f.leaves.MyHistory(ctx, mgr)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("Should make the full listing the sum of every user's history", func(t *testing.T) {
		all, err := f.leaves.AllHistory(ctx)
		require.NoError(t, err)
		total := 0
		for _, id := range []model.Identity{alice, bob, mgr} {
			history, err := f.leaves.MyHistory(ctx, id)
			require.NoError(t, err)
			total += len(history)
		}
		assert.Equal(t, len(all), total)
	})

	t.Run("Should return identical rows on repeated reads", func(t *testing.T) {
		a, err := f.leaves.MyHistory(ctx, alice)
		require.NoError(t, err)
		b, err := f.leaves.MyHistory(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Should queue only pending requests", func(t *testing.T) {
		pending, err := f.leaves.Pending(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		for _, l := range pending {
			assert.Equal(t, model.LeaveStatusPending, l.Status)
		}
	})
}

func TestLeaveService_ConcurrentApply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const n = 12
	identities := make([]model.Identity, n)
	for i := range identities {
		identities[i] = f.register(t, fmt.Sprintf("user%d@x.io", i), "")
	}

	var wg sync.WaitGroup
	ids := make(chan int, n)
	for _, id := range identities {
		wg.Add(1)
		go func(id model.Identity) {
			defer wg.Done()
			res, err := f.leaves.Apply(ctx, id, ApplyLeaveRequest{TypeID: 1, StartDate: "2024-06-03", EndDate: "2024-06-07"})
			assert.NoError(t, err)
			if err == nil {
				ids <- res.RequestID
			}
		}(id)
	}
	wg.Wait()
	close(ids)

	got := make([]int, 0, n)
	for id := range ids {
		got = append(got, id)
	}
	sort.Ints(got)
	want := make([]int, n)
	for i := range want {
		want[i] = i + 1
	}
	assert.Equal(t, want, got)

	all, err := f.leaves.AllHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}
