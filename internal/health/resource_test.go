package health

import "testing"

func TestResourceMonitorCheckThresholdCritical(t *testing.T) {
	sink := &recordingSink{}
	m := NewResourceMonitor(NewHandler(sink), 70, 90, 80, 95)

	m.checkThreshold("cpu", 95, m.CPUWarningPercent, m.CPUCriticalPercent)

	if len(sink.alerts) != 1 || sink.alerts[0].Severity != SeverityCritical {
		t.Fatalf("expected one critical alert, got %+v", sink.alerts)
	}
}

func TestResourceMonitorCheckThresholdWarning(t *testing.T) {
	sink := &recordingSink{}
	m := NewResourceMonitor(NewHandler(sink), 70, 90, 80, 95)

	m.checkThreshold("memory", 85, m.MemWarningPercent, m.MemCriticalPercent)

	if len(sink.alerts) != 1 || sink.alerts[0].Severity != SeverityWarning {
		t.Fatalf("expected one warning alert, got %+v", sink.alerts)
	}
}

func TestResourceMonitorCheckThresholdHealthyRaisesNothing(t *testing.T) {
	sink := &recordingSink{}
	m := NewResourceMonitor(NewHandler(sink), 70, 90, 80, 95)

	m.checkThreshold("cpu", 30, m.CPUWarningPercent, m.CPUCriticalPercent)

	if len(sink.alerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", sink.alerts)
	}
}

func TestResourceMonitorZeroThresholdDisablesCheck(t *testing.T) {
	sink := &recordingSink{}
	m := NewResourceMonitor(NewHandler(sink), 0, 0, 80, 95)

	m.checkThreshold("cpu", 99, m.CPUWarningPercent, m.CPUCriticalPercent)

	if len(sink.alerts) != 0 {
		t.Fatalf("zero threshold should disable the check, got %+v", sink.alerts)
	}
}
