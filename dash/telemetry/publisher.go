// Package telemetry drives the dashboard display loop.
//
// The Publisher ticks every session's display smoother on a fixed interval
// and pushes render-worthy frames out to connected WebSocket clients. The
// tick runs through the service layer so it serializes with control inputs
// instead of racing them.
package telemetry

import (
	"context"
	"log"
	"time"

	"github.com/wricardo/car-dashboard/dash/engine"
	"github.com/wricardo/car-dashboard/dash/service"
)

// DefaultInterval is the display refresh period. 50ms gives a 20Hz needle
// sweep, fast enough to look continuous at the 2 mph step size.
const DefaultInterval = 50 * time.Millisecond

// Sink receives telemetry frames for delivery to display clients
type Sink interface {
	BroadcastTelemetry(sessionID string, frame *engine.TelemetryFrame)
}

// Publisher periodically advances display smoothers and publishes frames
type Publisher struct {
	service  service.DashboardService
	sink     Sink
	interval time.Duration
}

// NewPublisher creates a telemetry publisher with the default refresh interval
func NewPublisher(svc service.DashboardService, sink Sink) *Publisher {
	return &Publisher{
		service:  svc,
		sink:     sink,
		interval: DefaultInterval,
	}
}

// NewPublisherWithInterval creates a telemetry publisher with a custom interval
func NewPublisherWithInterval(svc service.DashboardService, sink Sink, interval time.Duration) *Publisher {
	return &Publisher{
		service:  svc,
		sink:     sink,
		interval: interval,
	}
}

// Run drives the display loop until the context is cancelled
func (p *Publisher) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick advances every smoother one step and publishes the resulting frames
func (p *Publisher) tick(ctx context.Context) {
	updates, err := p.service.TickTelemetry(ctx)
	if err != nil {
		log.Printf("Telemetry tick failed: %v", err)
		return
	}

	for _, update := range updates {
		frame := update.Frame
		p.sink.BroadcastTelemetry(update.SessionID, &frame)
	}
}
