package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testSpinner(ctx context.Context, msg string) (*Spinner, *syncBuffer) {
	var out syncBuffer
	s := newSpinnerWithContext(ctx, msg)
	s.w = &out
	return s, &out
}

func TestSpinnerDrawsMessage(t *testing.T) {
	s, out := testSpinner(context.Background(), "Rendering market.yaml...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Rendering market.yaml...") {
		t.Errorf("spinner output = %q", out.String())
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := testSpinner(ctx, "Working")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
}

func TestSpinnerStop(t *testing.T) {
	tests := []struct {
		name string
		run  func(*Spinner)
	}{
		{"twice", func(s *Spinner) { s.Start(); s.Stop(); s.Stop() }},
		{"before start", func(s *Spinner) { s.Stop() }},
		{"start twice", func(s *Spinner) { s.Start(); s.Start(); s.Stop() }},
		{"with success", func(s *Spinner) { s.Start(); s.StopWithSuccess("Rendered") }},
		{"with error", func(s *Spinner) { s.Start(); s.StopWithError("Render failed") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureStdout(t)
			s, _ := testSpinner(context.Background(), "Working")
			done := make(chan struct{})
			go func() {
				tt.run(s)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
				t.Fatal("spinner did not stop")
			}
		})
	}
}

func TestSpinnerSetMessage(t *testing.T) {
	s, out := testSpinner(context.Background(), "Loading")
	s.SetMessage("Laying out")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()
	if !strings.Contains(out.String(), "Laying out") {
		t.Errorf("spinner output = %q", out.String())
	}
}
