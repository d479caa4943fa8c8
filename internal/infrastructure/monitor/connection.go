package monitor

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Probe reports nil when the component it checks is reachable.
type Probe func(ctx context.Context) error

type Monitor struct {
	probes   map[string]Probe
	timeout  time.Duration
	interval time.Duration

	mu      sync.RWMutex
	status  Status
	checked bool

	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a monitor that re-runs its probes every interval once started.
func New(interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		probes:   make(map[string]Probe),
		timeout:  3 * time.Second,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}

	schedule := fmt.Sprintf("@every %ds", maxInt(1, int(interval.Seconds())))
	_, _ = m.cron.AddFunc(schedule, func() {
		m.Refresh(context.Background())
	})
	return m
}

// Register adds a named probe. Registering the same name twice replaces it.
func (m *Monitor) Register(name string, probe Probe) {
	if probe == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probes[name] = probe
}

// Start runs the probes once and then on the cron schedule.
func (m *Monitor) Start() {
	m.Refresh(context.Background())
	m.cron.Start()
}

// Stop halts the schedule, waiting for a running refresh or ctx.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

// IsOnline reports whether every probe passed on the last check. Before the
// first check the monitor assumes everything is reachable.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.checked {
		return true
	}
	return m.status.Online
}

// GetStatus returns a copy of the last status.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := Status{
		Online:     m.status.Online,
		LastCheck:  m.status.LastCheck,
		Components: make(map[string]ComponentStatus, len(m.status.Components)),
	}
	for name, c := range m.status.Components {
		out.Components[name] = c
	}
	return out
}

// ReportFailure marks a component offline until the next successful probe.
func (m *Monitor) ReportFailure(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.Components == nil {
		m.status.Components = make(map[string]ComponentStatus)
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	m.status.Components[name] = ComponentStatus{Online: false, Error: msg}
	m.status.Online = false
	m.checked = true
}

// Refresh evaluates every probe now and stores the result.
func (m *Monitor) Refresh(ctx context.Context) Status {
	m.mu.RLock()
	names := make([]string, 0, len(m.probes))
	for name := range m.probes {
		names = append(names, name)
	}
	probes := make(map[string]Probe, len(m.probes))
	for name, p := range m.probes {
		probes[name] = p
	}
	m.mu.RUnlock()
	sort.Strings(names)

	status := Status{
		Online:     true,
		Components: make(map[string]ComponentStatus, len(names)),
		LastCheck:  time.Now(),
	}
	for _, name := range names {
		probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := probes[name](probeCtx)
		cancel()

		cs := ComponentStatus{Online: err == nil}
		if err != nil {
			cs.Error = err.Error()
			status.Online = false
			m.logger.Warn("component offline", zap.String("component", name), zap.Error(err))
		}
		status.Components[name] = cs
	}

	m.mu.Lock()
	m.status = status
	m.checked = true
	m.mu.Unlock()

	return m.GetStatus()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
