package task

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"pharmacy_erp/internal/config"
)

// ==================== TaskManager 周期任务管理器 ====================

// Job 周期任务
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobStatus 任务最近一次执行情况
type JobStatus struct {
	Name     string        `json:"name"`
	Spec     string        `json:"spec"`
	Next     time.Time     `json:"next"`
	LastRun  time.Time     `json:"last_run"`
	Duration time.Duration `json:"duration"`
	LastErr  string        `json:"last_error,omitempty"`
	Runs     int64         `json:"runs"`
}

// TaskManager 统一调度所有周期任务，同名任务不会并发执行
type TaskManager struct {
	cron    *cron.Cron
	log     *zap.Logger
	timeout time.Duration

	mu      sync.Mutex
	jobs    map[string]Job
	specs   map[string]string
	entries map[string]cron.EntryID
	status  map[string]*JobStatus
	running map[string]bool
}

// NewTaskManager 创建任务管理器，cron 表达式支持秒级
func NewTaskManager(log *zap.Logger, timeout time.Duration) *TaskManager {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	log = log.Named("task")
	cl := cron.PrintfLogger(zap.NewStdLog(log))
	return &TaskManager{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cl))),
		log:     log,
		timeout: timeout,
		jobs:    make(map[string]Job),
		specs:   make(map[string]string),
		entries: make(map[string]cron.EntryID),
		status:  make(map[string]*JobStatus),
		running: make(map[string]bool),
	}
}

// Register 按 cron 表达式注册任务，spec 为空时只允许手动触发
func (tm *TaskManager) Register(spec string, job Job) error {
	name := job.Name()

	tm.mu.Lock()
	defer tm.mu.Unlock()
	if _, exists := tm.jobs[name]; exists {
		return fmt.Errorf("任务 %s 重复注册", name)
	}
	if spec != "" {
		id, err := tm.cron.AddFunc(spec, func() { _ = tm.execute(context.Background(), name) })
		if err != nil {
			return fmt.Errorf("任务 %s 的 cron 表达式无效: %w", name, err)
		}
		tm.entries[name] = id
	}
	tm.jobs[name] = job
	tm.specs[name] = spec
	tm.status[name] = &JobStatus{Name: name, Spec: spec}
	return nil
}

// ==================== 生命周期管理 ====================

// Start 启动调度
func (tm *TaskManager) Start() {
	tm.cron.Start()
	tm.log.Info("周期任务已启动", zap.Int("jobs", len(tm.jobs)))
}

// Stop 停止调度并等待执行中的任务结束
func (tm *TaskManager) Stop(ctx context.Context) {
	stopped := tm.cron.Stop()
	select {
	case <-stopped.Done():
		tm.log.Info("周期任务已停止")
	case <-ctx.Done():
		tm.log.Warn("等待周期任务结束超时")
	}
}

// ==================== 执行 ====================

// RunNow 立即执行一次
func (tm *TaskManager) RunNow(ctx context.Context, name string) error {
	return tm.execute(ctx, name)
}

func (tm *TaskManager) execute(ctx context.Context, name string) error {
	tm.mu.Lock()
	job, ok := tm.jobs[name]
	if !ok {
		tm.mu.Unlock()
		return ErrTaskNotFound
	}
	if tm.running[name] {
		tm.mu.Unlock()
		tm.log.Debug("任务仍在执行，跳过本轮", zap.String("job", name))
		return ErrTaskRunning
	}
	tm.running[name] = true
	tm.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, tm.timeout)
	defer cancel()

	start := time.Now()
	err := job.Run(ctx)
	elapsed := time.Since(start)

	tm.mu.Lock()
	tm.running[name] = false
	st := tm.status[name]
	st.LastRun = start
	st.Duration = elapsed
	st.Runs++
	st.LastErr = ""
	if err != nil {
		st.LastErr = err.Error()
	}
	tm.mu.Unlock()

	if err != nil {
		tm.log.Error("任务执行失败", zap.String("job", name), zap.Duration("elapsed", elapsed), zap.Error(err))
		return err
	}
	tm.log.Debug("任务执行完成", zap.String("job", name), zap.Duration("elapsed", elapsed))
	return nil
}

// ==================== 状态查询 ====================

// Status 所有任务的执行情况
func (tm *TaskManager) Status() []JobStatus {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	list := make([]JobStatus, 0, len(tm.status))
	for name, st := range tm.status {
		s := *st
		if id, ok := tm.entries[name]; ok {
			s.Next = tm.cron.Entry(id).Next
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskNotFound TaskError = "task not found"
	ErrTaskRunning  TaskError = "task is already running"
)

// ==================== 装配 ====================

// Deps 周期任务依赖，PartitionMaintainer 为 nil 时跳过分区维护
type Deps struct {
	Stock         ExpiryStock
	Prescriptions PrescriptionExpirer
	Reminders     ReminderSender
	Notify        interface {
		Dispatcher
		NotificationCleaner
	}
	Carts        CartCleaner
	Partitions   PartitionMaintainer
	FutureMonths int
}

// Setup 按配置注册全部周期任务
func Setup(log *zap.Logger, cfg config.TasksConfig, deps Deps) (*TaskManager, error) {
	tm := NewTaskManager(log, 0)
	jobs := []struct {
		spec string
		job  Job
	}{
		{cfg.ExpirySpec, NewExpiryTask(deps.Stock, deps.Prescriptions, cfg.ExpiryDays, tm.log)},
		{cfg.ReminderSpec, NewReminderTask(deps.Reminders, cfg.ReminderHoursAhead, tm.log)},
		{cfg.DispatchSpec, NewDispatchTask(deps.Notify, tm.log)},
		{cfg.PartitionSpec, NewMaintenanceTask(deps.Partitions, deps.Notify, deps.FutureMonths, tm.log)},
		{cfg.CartCleanupSpec, NewCartCleanupTask(deps.Carts, tm.log)},
	}
	for _, j := range jobs {
		if err := tm.Register(j.spec, j.job); err != nil {
			return nil, err
		}
	}
	return tm, nil
}
