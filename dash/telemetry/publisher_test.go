package telemetry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/wricardo/car-dashboard/dash/engine"
	"github.com/wricardo/car-dashboard/dash/service"
	"github.com/wricardo/car-dashboard/dash/session"
)

type captureSink struct {
	mu     sync.Mutex
	frames map[string][]engine.TelemetryFrame
}

func newCaptureSink() *captureSink {
	return &captureSink{frames: make(map[string][]engine.TelemetryFrame)}
}

func (s *captureSink) BroadcastTelemetry(sessionID string, frame *engine.TelemetryFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[sessionID] = append(s.frames[sessionID], *frame)
}

func (s *captureSink) framesFor(sessionID string) []engine.TelemetryFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.TelemetryFrame(nil), s.frames[sessionID]...)
}

type staticConfigManager struct {
	config *engine.VehicleConfig
}

func (m *staticConfigManager) LoadConfig(name string) (*engine.VehicleConfig, error) {
	return m.config, nil
}

func (m *staticConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{{
		Filename: "test.json",
		ConfigID: "test",
		Name:     m.config.Name,
		Make:     m.config.Make,
		Model:    m.config.Model,
		MaxSpeed: m.config.MaxSpeed,
	}}, nil
}

func (m *staticConfigManager) GetDefault() *engine.VehicleConfig { return m.config }

func (m *staticConfigManager) SaveConfig(name string, config *engine.VehicleConfig) error {
	return nil
}

func newTestService() service.DashboardService {
	config := &engine.VehicleConfig{
		Name:         "test",
		Description:  "Test configuration",
		Make:         "Tesla",
		Model:        "Roadster",
		MaxSpeed:     150,
		StartingFuel: 100,
	}
	config.Messages.Welcome = "Welcome!"
	config.Messages.SpeedReport = "Current speed is %s mph."
	config.Messages.BrakeReport = "Current speed is now %s mph."
	config.Messages.MaxSpeedReached = "The %s has reached its max speed of %s mph!"

	return service.NewDashboardService(session.NewManager(), &staticConfigManager{config: config})
}

func TestPublisher_PublishesConvergingFrames(t *testing.T) {
	svc := newTestService()
	sink := newCaptureSink()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if _, err := svc.Control(ctx, info.ID, engine.InputAccelerate, nil, false); err != nil {
		t.Fatalf("Control failed: %v", err)
	}

	pub := NewPublisherWithInterval(svc, sink, time.Millisecond)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		pub.Run(runCtx)
	}()

	// Wait for the display to settle: five converging frames then silence
	deadline := time.After(2 * time.Second)
	for {
		if len(sink.framesFor(info.ID)) >= 5 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("Timed out waiting for frames, got %d", len(sink.framesFor(info.ID)))
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	frames := sink.framesFor(info.ID)
	if len(frames) != 5 {
		t.Fatalf("Expected exactly 5 frames for a 0 to 10 sweep, got %d", len(frames))
	}

	expected := []float64{2, 4, 6, 8, 10}
	for i, want := range expected {
		if frames[i].DisplayedSpeed != want {
			t.Errorf("Frame %d: expected displayed speed %v, got %v", i, want, frames[i].DisplayedSpeed)
		}
	}
}

func TestPublisher_SilentWhenSettled(t *testing.T) {
	svc := newTestService()
	sink := newCaptureSink()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	pub := NewPublisherWithInterval(svc, sink, time.Millisecond)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		pub.Run(runCtx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	// A fresh session starts settled at zero, so no frames are published
	if frames := sink.framesFor(info.ID); len(frames) != 0 {
		t.Errorf("Expected no frames for an idle session, got %d", len(frames))
	}
}

func TestPublisher_StopsOnContextCancel(t *testing.T) {
	svc := newTestService()
	sink := newCaptureSink()

	pub := NewPublisherWithInterval(svc, sink, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		pub.Run(ctx)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publisher did not stop after context cancellation")
	}
}
