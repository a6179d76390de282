package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeBackend is a simple in-memory Backend implementation for tests.
type fakeBackend struct {
	mu sync.Mutex

	callsCounters   []counterCall
	callsHistograms []histCall
	gauges          map[string]float64
	flushCount      int
}

type counterCall struct {
	name   string
	delta  float64
	labels Labels
}

type histCall struct {
	name   string
	value  float64
	labels Labels
}

func (f *fakeBackend) IncCounter(name string, delta float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsCounters = append(f.callsCounters, counterCall{name, delta, labels})
}

func (f *fakeBackend) ObserveHistogram(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callsHistograms = append(f.callsHistograms, histCall{name, value, labels})
}

func (f *fakeBackend) SetGauge(name string, value float64, labels Labels) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gauges == nil {
		f.gauges = map[string]float64{}
	}
	f.gauges[name+"/"+labels["job"]] = value
}

func (f *fakeBackend) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCount++
	return nil
}

func installFake(t *testing.T) *fakeBackend {
	t.Helper()
	orig := current()
	t.Cleanup(func() { SetBackend(orig) })
	fb := &fakeBackend{}
	SetBackend(fb)
	return fb
}

func TestRecordStep_SuccessAndFailure(t *testing.T) {
	fb := installFake(t)

	RecordStep("jobA", "load", nil, 2*time.Second)
	RecordStep("jobB", "write", errors.New("boom"), 1500*time.Millisecond)

	if len(fb.callsCounters) != 2 {
		t.Fatalf("expected 2 counter calls, got %d", len(fb.callsCounters))
	}
	if len(fb.callsHistograms) != 2 {
		t.Fatalf("expected 2 histogram calls, got %d", len(fb.callsHistograms))
	}

	cc0 := fb.callsCounters[0]
	if cc0.name != StepTotal || cc0.delta != 1 {
		t.Fatalf("counter[0] = %#v; want name=%s, delta=1", cc0, StepTotal)
	}
	if cc0.labels["job"] != "jobA" || cc0.labels["step"] != "load" || cc0.labels["status"] != "success" {
		t.Fatalf("counter[0].labels = %v; want jobA/load/success", cc0.labels)
	}

	h0 := fb.callsHistograms[0]
	if h0.name != StepDuration {
		t.Fatalf("hist[0].name=%q; want %s", h0.name, StepDuration)
	}
	if h0.value < 2.0-0.001 || h0.value > 2.0+0.001 {
		t.Fatalf("hist[0].value=%v; want ~2.0", h0.value)
	}

	cc1 := fb.callsCounters[1]
	if cc1.labels["status"] != "failure" || cc1.labels["step"] != "write" {
		t.Fatalf("counter[1].labels = %v; want write/failure", cc1.labels)
	}
	if h1 := fb.callsHistograms[1]; h1.value < 1.5-0.001 || h1.value > 1.5+0.001 {
		t.Fatalf("hist[1].value=%v; want ~1.5", h1.value)
	}
}

func TestRecordRowAndSuccess(t *testing.T) {
	fb := installFake(t)

	RecordRow("jobX", "loaded", 3)
	RecordRow("jobX", "loaded", 0) // ignored
	RecordRow("jobX", "inserted", 3)
	RecordSuccess("jobX", time.Unix(1700000000, 0))

	if len(fb.callsCounters) != 2 {
		t.Fatalf("expected 2 counter calls, got %d", len(fb.callsCounters))
	}
	c0 := fb.callsCounters[0]
	if c0.name != RowsTotal || c0.delta != 3 || c0.labels["kind"] != "loaded" {
		t.Fatalf("counter[0] = %#v; want %s loaded 3", c0, RowsTotal)
	}
	if c1 := fb.callsCounters[1]; c1.labels["kind"] != "inserted" {
		t.Fatalf("counter[1].labels = %v; want kind=inserted", c1.labels)
	}
	if got := fb.gauges[LastSuccessSeconds+"/jobX"]; got != 1700000000 {
		t.Fatalf("last success gauge = %v, want 1700000000", got)
	}
}

func TestSetBackendAndFlush(t *testing.T) {
	fb := installFake(t)

	if current() != fb {
		t.Fatal("SetBackend did not replace global backend")
	}
	if err := Flush(); err != nil {
		t.Fatalf("Flush returned error: %v", err)
	}
	if fb.flushCount != 1 {
		t.Fatalf("expected flushCount=1, got %d", fb.flushCount)
	}

	// SetBackend(nil) should not nil out the backend.
	SetBackend(nil)
	if current() != fb {
		t.Fatal("SetBackend(nil) should not change backend")
	}
}
