package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestPerfProfilerSlowestStepsOrdering(t *testing.T) {
	p := NewPerfProfiler()
	p.RecordStep("phaseA", 0, 1*time.Millisecond)
	p.RecordStep("phaseA", 1, 9*time.Millisecond)
	p.RecordStep("phaseB", 0, 5*time.Millisecond)

	slowest := p.SlowestSteps(1)
	if len(slowest) != 1 {
		t.Fatalf("expected 1 result, got %d", len(slowest))
	}
	if got := slowest[0]; !strings.HasPrefix(got, "phaseA step 1:") {
		t.Fatalf("expected phaseA step 1 (9ms avg) to rank slowest, got %q", got)
	}
}

func TestPerfProfilerResetClears(t *testing.T) {
	p := NewPerfProfiler()
	p.RecordStep("phaseA", 0, time.Millisecond)
	p.Reset()
	if len(p.SlowestSteps(0)) != 0 {
		t.Fatal("expected no recorded steps after Reset")
	}
}
