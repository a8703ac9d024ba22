package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestNoOpTracer(t *testing.T) {
	tr := NoOpTracer{}
	ctx := context.Background()

	got, end := tr.StartSpan(ctx, SpanSimulate)
	if got != ctx {
		t.Error("NoOpTracer should return the context unchanged")
	}
	end(nil) // must not panic
}

func TestRecordingTracer(t *testing.T) {
	tr := NewRecordingTracer()
	ctx := context.Background()

	_, end := tr.StartSpan(ctx, SpanSimulate, WithAttributes(map[string]interface{}{
		"photons": 100,
	}))
	end(nil)

	_, end = tr.StartSpan(ctx, SpanSift)
	end(errors.New("sift failed"))

	spans := tr.Spans()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}

	if spans[0].Name != SpanSimulate {
		t.Errorf("spans[0].Name = %q, want %q", spans[0].Name, SpanSimulate)
	}
	if spans[0].Attributes["photons"] != 100 {
		t.Errorf("spans[0] attribute photons = %v", spans[0].Attributes["photons"])
	}
	if spans[0].Error != nil {
		t.Errorf("spans[0].Error = %v, want nil", spans[0].Error)
	}
	if spans[1].Error == nil {
		t.Error("spans[1].Error = nil, want error")
	}
}

func TestRecordingTracerReset(t *testing.T) {
	tr := NewRecordingTracer()
	_, end := tr.StartSpan(context.Background(), SpanDerive)
	end(nil)

	tr.Reset()
	if got := len(tr.Spans()); got != 0 {
		t.Errorf("after Reset, %d spans remain", got)
	}
}

func TestRecordingTracerConcurrent(t *testing.T) {
	tr := NewRecordingTracer()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, end := tr.StartSpan(context.Background(), SpanEncrypt)
			end(nil)
		}()
	}
	wg.Wait()

	if got := len(tr.Spans()); got != 20 {
		t.Errorf("recorded %d spans, want 20", got)
	}
}

func TestGlobalTracer(t *testing.T) {
	orig := GetTracer()
	defer SetTracer(orig)

	tr := NewRecordingTracer()
	SetTracer(tr)

	_, end := StartSpan(context.Background(), SpanDecrypt)
	end(nil)

	spans := tr.Spans()
	if len(spans) != 1 || spans[0].Name != SpanDecrypt {
		t.Errorf("global tracer did not record: %v", spans)
	}
}
