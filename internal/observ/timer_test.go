package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()

	idx := timer.Begin("analyze")
	timer.End(idx, "3 rounds")
	idx = timer.Begin("eliminate")
	timer.End(idx, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("report has %d phases, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "analyze" || report.Phases[0].Note != "3 rounds" {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}
	var sum float64
	for _, p := range report.Phases {
		if p.DurationMS < 0 {
			t.Fatalf("negative duration in %+v", p)
		}
		sum += p.DurationMS
	}
	if diff := report.TotalMS - sum; diff > 1e-6 || diff < -1e-6 {
		t.Fatalf("total = %v, phases sum to %v", report.TotalMS, sum)
	}
}

func TestTimerSummary(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("analyze")
	timer.End(idx, "2 rounds")

	out := timer.Summary()
	for _, want := range []string{"timings:", "analyze", "// 2 rounds", "total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTimerEndIgnoresBadIndex(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(3, "")
	if report := timer.Report(); len(report.Phases) != 0 {
		t.Fatalf("report not empty: %+v", report)
	}
}
