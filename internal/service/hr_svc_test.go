package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pharmacy_erp/internal/api/dto"
	"pharmacy_erp/internal/model"
)

func (f fixture) employee(t *testing.T, userID *int64, firstName string) *model.Employee {
	t.Helper()
	emp, err := NewHRService(f.store).CreateEmployee(context.Background(), f.pharmacy.ID, &dto.EmployeeRequest{
		UserID: userID, FirstName: firstName, LastName: "Bernard", ContractType: model.ContractCDI,
		HireDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), MonthlySalary: 210000,
	})
	require.NoError(t, err)
	return emp
}

func TestHRService_ClockInOut(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	svc := NewHRService(f.store)

	self := f.employee(t, &f.cashier.ID, "Claire")
	other := f.employee(t, nil, "Luc")
	cashier := Clocker{UserID: f.cashier.ID, MemberRole: model.MemberCashier}
	manager := Clocker{UserID: f.manager.ID, MemberRole: model.MemberManager}

	in := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	att, err := svc.ClockIn(ctx, f.pharmacy.ID, cashier, &dto.ClockRequest{EmployeeID: self.ID, At: &in})
	require.NoError(t, err)
	assert.Nil(t, att.ClockOut)

	_, err = svc.ClockIn(ctx, f.pharmacy.ID, cashier, &dto.ClockRequest{EmployeeID: self.ID})
	assert.True(t, errors.Is(err, ErrAlreadyClockedIn))
	assert.True(t, errors.Is(err, ErrInvalidState))

	_, err = svc.ClockIn(ctx, f.pharmacy.ID, cashier, &dto.ClockRequest{EmployeeID: other.ID})
	assert.True(t, errors.Is(err, ErrClockOthers), "非店长不能替他人打卡")
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = svc.ClockIn(ctx, f.pharmacy.ID, manager, &dto.ClockRequest{EmployeeID: other.ID, At: &in})
	require.NoError(t, err, "店长可代打卡")

	_, err = svc.ClockOut(ctx, f.pharmacy.ID, cashier, &dto.ClockRequest{EmployeeID: other.ID})
	assert.True(t, errors.Is(err, ErrClockOthers))

	out := in.Add(8 * time.Hour)
	att, err = svc.ClockOut(ctx, f.pharmacy.ID, cashier, &dto.ClockRequest{EmployeeID: self.ID, At: &out, Note: "fermeture"})
	require.NoError(t, err)
	assert.Equal(t, 480, att.WorkedMinutes)
	assert.Equal(t, "fermeture", att.Note)

	_, err = svc.ClockOut(ctx, f.pharmacy.ID, cashier, &dto.ClockRequest{EmployeeID: self.ID})
	assert.True(t, errors.Is(err, ErrNotClockedIn))

	// 下班后可再次上班
	again := out.Add(time.Hour)
	_, err = svc.ClockIn(ctx, f.pharmacy.ID, cashier, &dto.ClockRequest{EmployeeID: self.ID, At: &again})
	assert.NoError(t, err)
}

func TestHRService_ClockInactiveEmployee(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	svc := NewHRService(f.store)

	emp := f.employee(t, nil, "Marc")
	inactive := false
	_, err := svc.UpdateEmployee(ctx, f.pharmacy.ID, emp.ID, &dto.EmployeeRequest{
		FirstName: emp.FirstName, LastName: emp.LastName, ContractType: emp.ContractType,
		HireDate: emp.HireDate, Active: &inactive,
	})
	require.NoError(t, err)

	manager := Clocker{UserID: f.manager.ID, MemberRole: model.MemberOwner}
	_, err = svc.ClockIn(ctx, f.pharmacy.ID, manager, &dto.ClockRequest{EmployeeID: emp.ID})
	assert.True(t, errors.Is(err, ErrEmployeeInactive))

	_, err = svc.ClockIn(ctx, f.pharmacy.ID, manager, &dto.ClockRequest{EmployeeID: 9999})
	assert.True(t, errors.Is(err, ErrEmployeeNotFound))
}

func TestHRService_LeaveReview(t *testing.T) {
	f := seedFixture(t)
	ctx := context.Background()
	svc := NewHRService(f.store)
	emp := f.employee(t, &f.cashier.ID, "Claire")

	start := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	leave, err := svc.CreateLeave(ctx, f.pharmacy.ID, &dto.LeaveRequestCreate{
		EmployeeID: emp.ID, Type: model.LeavePaid, StartDate: start, EndDate: start.AddDate(0, 0, 4),
	})
	require.NoError(t, err)
	assert.Equal(t, model.LeaveStatusPending, leave.Status)
	assert.Equal(t, 5, leave.Days)

	_, err = svc.CreateLeave(ctx, f.pharmacy.ID, &dto.LeaveRequestCreate{
		EmployeeID: emp.ID, Type: model.LeaveSick, StartDate: start.AddDate(0, 0, 3), EndDate: start.AddDate(0, 0, 7),
	})
	assert.True(t, errors.Is(err, ErrLeaveOverlap))

	reviewed, err := svc.ReviewLeave(ctx, f.pharmacy.ID, f.manager.ID, leave.ID, &dto.LeaveReviewRequest{Approve: true, Comment: "ok"})
	require.NoError(t, err)
	assert.Equal(t, model.LeaveStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewerID)
	assert.Equal(t, f.manager.ID, *reviewed.ReviewerID)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, 5, reviewed.Days, "审批时天数不变")

	_, err = svc.ReviewLeave(ctx, f.pharmacy.ID, f.manager.ID, leave.ID, &dto.LeaveReviewRequest{Approve: false})
	assert.True(t, errors.Is(err, ErrLeaveNotPending), "已审批的请假不能再审")
	_, err = svc.CancelLeave(ctx, f.pharmacy.ID, leave.ID)
	assert.True(t, errors.Is(err, ErrLeaveNotPending))

	later := time.Date(2026, 12, 21, 0, 0, 0, 0, time.UTC)
	second, err := svc.CreateLeave(ctx, f.pharmacy.ID, &dto.LeaveRequestCreate{
		EmployeeID: emp.ID, Type: model.LeaveUnpaid, StartDate: later, EndDate: later.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	cancelled, err := svc.CancelLeave(ctx, f.pharmacy.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, model.LeaveStatusCancelled, cancelled.Status)

	_, err = svc.ReviewLeave(ctx, f.pharmacy.ID, f.manager.ID, second.ID, &dto.LeaveReviewRequest{Approve: true})
	assert.True(t, errors.Is(err, ErrLeaveNotPending), "已撤销的请假不能审批")

	_, err = svc.ReviewLeave(ctx, f.pharmacy.ID, f.manager.ID, 9999, &dto.LeaveReviewRequest{Approve: true})
	assert.True(t, errors.Is(err, ErrLeaveNotFound))
}
