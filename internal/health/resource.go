package health

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ResourceMonitor watches the crawler process's host CPU/memory and raises
// an alert through the same Handler the structural checkers use once usage
// crosses a warning or critical threshold. Unlike the three DOM-facing
// checkers this isn't one of §4.11's named components — it's the ambient
// "is the crawler itself healthy" signal a long-running sweeper needs
// alongside them.
type ResourceMonitor struct {
	alerts *Handler

	CPUWarningPercent  float64
	CPUCriticalPercent float64
	MemWarningPercent  float64
	MemCriticalPercent float64
}

// NewResourceMonitor builds a monitor with the given thresholds; a zero
// threshold disables that check (Sample skips comparisons against it).
func NewResourceMonitor(alerts *Handler, cpuWarning, cpuCritical, memWarning, memCritical float64) *ResourceMonitor {
	return &ResourceMonitor{
		alerts:             alerts,
		CPUWarningPercent:  cpuWarning,
		CPUCriticalPercent: cpuCritical,
		MemWarningPercent:  memWarning,
		MemCriticalPercent: memCritical,
	}
}

// Sample takes one CPU/memory reading and raises an alert if either crosses
// its configured threshold. CPU sampling blocks for interval to compute a
// percentage over that window; callers on a ticker should pass an interval
// shorter than their tick period.
func (m *ResourceMonitor) Sample(ctx context.Context, interval time.Duration) error {
	cpuPercents, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return err
	}
	if len(cpuPercents) > 0 {
		m.checkThreshold("cpu", cpuPercents[0], m.CPUWarningPercent, m.CPUCriticalPercent)
	}

	vmem, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return err
	}
	m.checkThreshold("memory", vmem.UsedPercent, m.MemWarningPercent, m.MemCriticalPercent)
	return nil
}

func (m *ResourceMonitor) checkThreshold(kind string, value, warning, critical float64) {
	ctx := map[string]interface{}{"percent": value}
	switch {
	case critical > 0 && value >= critical:
		m.alerts.raise(SeverityCritical, "resource_"+kind, kind+" usage critical", ctx)
	case warning > 0 && value >= warning:
		m.alerts.raise(SeverityWarning, "resource_"+kind, kind+" usage elevated", ctx)
	}
}

// Run samples on interval until ctx is cancelled, the background loop
// cmd/server and cmd/sweeper drive this on alongside their main work.
func (m *ResourceMonitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sampleCtx, cancel := context.WithTimeout(ctx, interval)
			_ = m.Sample(sampleCtx, interval/2)
			cancel()
		}
	}
}
