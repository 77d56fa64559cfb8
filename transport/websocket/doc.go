// Package websocket provides WebSocket transport for the car dashboard.
//
// The websocket package implements:
//   - Real-time vehicle state and telemetry streaming
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting on control inputs
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with an event discriminator:
//   - "state_update": complete VehicleState after a control input
//   - "telemetry": smoothed TelemetryFrame while the display converges
//
// Telemetry frames carry the displayed (smoothed) speed rather than the
// instantaneous one, so a client can render the needle directly without its
// own animation logic. Frames stop once the display settles.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// Updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// inside an HTTP handler
//	hub.ServeWS(w, r, sessionID)
//
// Connection Lifecycle:
//
// 1. Client connects with session ID
// 2. Connection registered with hub
// 3. Client receives state updates and telemetry frames
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
