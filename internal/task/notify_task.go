package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pharmacy_erp/internal/service"
)

// ==================== 预约提醒 ====================

// ReminderSender 预约提醒
type ReminderSender interface {
	SendReminders(ctx context.Context, within time.Duration) (int, error)
}

// ReminderTask 提醒 within 内开始且未提醒过的预约
type ReminderTask struct {
	crm    ReminderSender
	within time.Duration
	log    *zap.Logger
}

func NewReminderTask(crm ReminderSender, hoursAhead int, log *zap.Logger) *ReminderTask {
	if hoursAhead <= 0 {
		hoursAhead = 24
	}
	return &ReminderTask{crm: crm, within: time.Duration(hoursAhead) * time.Hour, log: log}
}

func (t *ReminderTask) Name() string { return "reminders" }

func (t *ReminderTask) Run(ctx context.Context) error {
	n, err := t.crm.SendReminders(ctx, t.within)
	if err != nil {
		return err
	}
	if n > 0 {
		t.log.Info("预约提醒已生成", zap.Int("count", n))
	}
	return nil
}

// ==================== 通知投递 ====================

// Dispatcher 待投递通知
type Dispatcher interface {
	Dispatch(ctx context.Context) (*service.DispatchResult, error)
}

// DispatchTask 投递一批待发送通知（推送、短信、Webhook）
type DispatchTask struct {
	notify Dispatcher
	log    *zap.Logger
}

func NewDispatchTask(notify Dispatcher, log *zap.Logger) *DispatchTask {
	return &DispatchTask{notify: notify, log: log}
}

func (t *DispatchTask) Name() string { return "dispatch" }

func (t *DispatchTask) Run(ctx context.Context) error {
	res, err := t.notify.Dispatch(ctx)
	if err != nil {
		return err
	}
	if res.Sent+res.Failed > 0 {
		t.log.Info("通知投递",
			zap.Int64("sent", res.Sent),
			zap.Int64("failed", res.Failed),
			zap.Int64("skipped", res.Skipped),
		)
	}
	return nil
}
