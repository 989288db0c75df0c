package health

import (
	"testing"

	"github.com/google/uuid"
)

type recordingSink struct {
	alerts []Alert
}

func (s *recordingSink) Emit(a Alert) {
	s.alerts = append(s.alerts, a)
}

func TestSelectorCheckerHealthRule(t *testing.T) {
	htmlBody := `<html><body>
		<div class="row"><span class="name">Glenfiddich 12</span></div>
		<div class="row"><span class="name">Glenlivet 18</span></div>
	</body></html>`

	tests := []struct {
		name       string
		specs      []SelectorSpec
		wantHealthy bool
	}{
		{
			"majority of selectors match",
			[]SelectorSpec{
				{Name: "row", Selector: ".row"},
				{Name: "name", Selector: ".name"},
				{Name: "missing", Selector: ".does-not-exist"},
			},
			true,
		},
		{
			"majority of selectors miss",
			[]SelectorSpec{
				{Name: "missing1", Selector: ".nope1"},
				{Name: "missing2", Selector: ".nope2"},
				{Name: "row", Selector: ".row"},
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			checker := NewSelectorChecker(1, NewHandler(sink))
			report, err := checker.Check("test-source", htmlBody, tt.specs)
			if err != nil {
				t.Fatalf("Check() error = %v", err)
			}
			if report.Healthy != tt.wantHealthy {
				t.Errorf("Healthy = %v, want %v", report.Healthy, tt.wantHealthy)
			}
			if !tt.wantHealthy && len(sink.alerts) == 0 {
				t.Error("expected a warning alert for an unhealthy source")
			}
		})
	}
}

func TestFingerprinterIgnoresValuesAndText(t *testing.T) {
	a := `<div class="row price"><span>$42.00</span></div>`
	b := `<div class="row price"><span>$99.99</span></div>`

	fa, err := Compute(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := Compute(b)
	if err != nil {
		t.Fatal(err)
	}
	if fa != fb {
		t.Error("fingerprints should match when only text content differs")
	}
}

func TestFingerprinterDetectsClassChange(t *testing.T) {
	a := `<div class="row price"></div>`
	b := `<div class="row-v2 price"></div>`

	fa, _ := Compute(a)
	fb, _ := Compute(b)
	if fa == fb {
		t.Error("fingerprints should differ when class names change")
	}
}

func TestFingerprinterCheckAndUpdateRaisesOnMismatch(t *testing.T) {
	sink := &recordingSink{}
	fp := NewFingerprinter(NewHandler(sink))

	oldFP, _, err := fp.CheckAndUpdate("test-source", "", `<div class="a"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	if len(sink.alerts) != 0 {
		t.Error("first observation should never raise")
	}

	_, changed, err := fp.CheckAndUpdate("test-source", oldFP, `<div class="b"></div>`)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("expected changed=true for a differing fingerprint")
	}
	if len(sink.alerts) != 1 || sink.alerts[0].Severity != SeverityCritical {
		t.Error("expected exactly one critical alert")
	}
}

func TestYieldMonitorAbortsAfterConsecutiveLowPages(t *testing.T) {
	sink := &recordingSink{}
	monitor := NewYieldMonitor(10, 3, NewHandler(sink))
	crawlJobID := uuid.New()

	if monitor.RecordPage(crawlJobID, 2) {
		t.Fatal("should not abort on first low page")
	}
	if monitor.RecordPage(crawlJobID, 1) {
		t.Fatal("should not abort on second low page")
	}
	if !monitor.RecordPage(crawlJobID, 0) {
		t.Fatal("should abort on third consecutive low page")
	}
}

func TestYieldMonitorHealthyPageResetsStreak(t *testing.T) {
	sink := &recordingSink{}
	monitor := NewYieldMonitor(10, 3, NewHandler(sink))
	crawlJobID := uuid.New()

	monitor.RecordPage(crawlJobID, 1)
	monitor.RecordPage(crawlJobID, 1)
	if monitor.RecordPage(crawlJobID, 20) {
		t.Fatal("healthy page should not abort")
	}
	if monitor.RecordPage(crawlJobID, 1) {
		t.Fatal("streak should have reset after the healthy page")
	}
}
