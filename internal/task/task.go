// Package task implements the automation task dispatcher: a registry of
// named system operations executed under a uniform task envelope, plus
// persisted automation rules and a live system overview.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"

	"github.com/aide-sh/aide/internal/constants"
	"github.com/aide-sh/aide/internal/storage"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Known task types.
const (
	TypeSystemCleanup    = "system_cleanup"
	TypeFileOrganization = "file_organization"
	TypeNetworkDiag      = "network_diagnostics"
	TypePerformanceOpt   = "performance_optimization"
	TypeAutomatedBackup  = "automated_backup"
	TypeSmartScheduling  = "smart_scheduling"
	TypeResourceMonitor  = "resource_monitoring"
	TypeSecurityScan     = "security_scan"
)

// Types lists every known task type in a stable order.
func Types() []string {
	return []string{
		TypeSystemCleanup,
		TypeFileOrganization,
		TypeNetworkDiag,
		TypePerformanceOpt,
		TypeAutomatedBackup,
		TypeSmartScheduling,
		TypeResourceMonitor,
		TypeSecurityScan,
	}
}

// Task is the envelope wrapping one operation execution. The result map
// carries operation-specific keys; the presence of an "error" key marks
// the task failed.
type Task struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Params      map[string]any `json:"params"`
	Status      Status         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt time.Time      `json:"completed_at,omitzero"`
	Result      map[string]any `json:"result"`
}

// Dispatcher executes tasks and tracks them in an active-task table that
// remains observable while operations run. Safe for concurrent use.
type Dispatcher struct {
	mu     sync.Mutex
	active map[string]Task
	rules  map[string]Rule
	docs   storage.DocumentStore
	logger *slog.Logger

	nowFunc func() time.Time
	sleep   func(time.Duration)
}

// NewDispatcher creates a Dispatcher, loading automation rules from docs
// and seeding defaults when none are stored.
func NewDispatcher(docs storage.DocumentStore, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		active:  make(map[string]Task),
		docs:    docs,
		logger:  logger,
		nowFunc: time.Now,
		sleep:   time.Sleep,
	}
	d.loadRules()
	return d
}

// Execute runs a task synchronously and returns its final envelope. The
// task is registered pending before the operation starts, so concurrent
// observers see it in flight. A panicking operation is reported as a
// failed task rather than crashing the assistant.
func (d *Dispatcher) Execute(taskType string, params map[string]any) Task {
	now := d.nowFunc()

	d.mu.Lock()
	id := fmt.Sprintf("%s_%d", taskType, now.Unix())
	for n := 1; ; n++ {
		if _, exists := d.active[id]; !exists {
			break
		}
		id = fmt.Sprintf("%s_%d_%d", taskType, now.Unix(), n)
	}
	t := Task{
		ID:        id,
		Type:      taskType,
		Params:    params,
		Status:    StatusPending,
		CreatedAt: now,
	}
	d.active[id] = t
	d.mu.Unlock()

	d.logger.Debug("executing task", "id", id, "type", taskType)
	result := d.run(taskType, params)

	t.Result = result
	t.CompletedAt = d.nowFunc()
	if _, failed := result["error"]; failed {
		t.Status = StatusFailed
		d.logger.Warn("task failed", "id", id, "error", result["error"])
	} else {
		t.Status = StatusCompleted
	}

	d.mu.Lock()
	d.active[id] = t
	d.evictFinishedLocked()
	d.mu.Unlock()
	return t
}

// evictFinishedLocked bounds the task table: once more than
// constants.MaxFinishedTasks completed or failed envelopes accumulate, the
// oldest finished ones are dropped. Pending tasks are never evicted.
func (d *Dispatcher) evictFinishedLocked() {
	var finished []Task
	for _, t := range d.active {
		if t.Status != StatusPending {
			finished = append(finished, t)
		}
	}
	if len(finished) <= constants.MaxFinishedTasks {
		return
	}
	sort.Slice(finished, func(i, j int) bool {
		return finished[i].CompletedAt.Before(finished[j].CompletedAt)
	})
	for _, t := range finished[:len(finished)-constants.MaxFinishedTasks] {
		delete(d.active, t.ID)
	}
}

// run dispatches to the operation for taskType, converting panics into an
// error result.
func (d *Dispatcher) run(taskType string, params map[string]any) (result map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			result = map[string]any{"error": fmt.Sprintf("task panicked: %v", r)}
		}
	}()

	switch taskType {
	case TypeSystemCleanup:
		return d.systemCleanup(params)
	case TypeFileOrganization:
		return d.organizeFiles(params)
	case TypeNetworkDiag:
		return d.networkDiagnostics(params)
	case TypePerformanceOpt:
		return d.optimizePerformance(params)
	case TypeAutomatedBackup:
		return d.automatedBackup(params)
	case TypeSmartScheduling:
		return d.smartScheduling(params)
	case TypeResourceMonitor:
		return d.resourceMonitoring(params)
	case TypeSecurityScan:
		return d.securityScan(params)
	default:
		return map[string]any{"error": fmt.Sprintf("Unknown task type: %s", taskType)}
	}
}

// Schedule runs a task after a delay. Cancelling ctx before the delay
// elapses drops the task without executing it.
func (d *Dispatcher) Schedule(ctx context.Context, taskType string, delay time.Duration, params map[string]any) {
	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(delay):
			d.Execute(taskType, params)
		}
	}()
}

// Get returns a task from the active table by id.
func (d *Dispatcher) Get(id string) (Task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.active[id]
	return t, ok
}

// ActiveCount reports how many tasks the table holds, any status.
func (d *Dispatcher) ActiveCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active)
}

// SystemOverview reports a point-in-time snapshot of host resources.
// Probes that fail on this host are omitted rather than failing the whole
// overview.
func (d *Dispatcher) SystemOverview() map[string]any {
	overview := map[string]any{
		"active_tasks": d.ActiveCount(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		counts, _ := cpu.Counts(true)
		overview["cpu"] = map[string]any{
			"percent": percents[0],
			"count":   counts,
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		overview["memory"] = map[string]any{
			"total":        vm.Total,
			"available":    vm.Available,
			"used_percent": vm.UsedPercent,
		}
	}
	if du, err := disk.Usage("/"); err == nil {
		overview["disk"] = map[string]any{
			"total":        du.Total,
			"free":         du.Free,
			"used_percent": du.UsedPercent,
		}
	}
	if counters, err := gnet.IOCounters(false); err == nil && len(counters) > 0 {
		overview["network"] = map[string]any{
			"bytes_sent":       counters[0].BytesSent,
			"bytes_received":   counters[0].BytesRecv,
			"packets_sent":     counters[0].PacketsSent,
			"packets_received": counters[0].PacketsRecv,
		}
	}
	if bootSec, err := host.BootTime(); err == nil {
		overview["boot_time"] = time.Unix(int64(bootSec), 0).Format(time.RFC3339)
	}
	return overview
}
