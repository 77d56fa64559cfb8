// Package service defines the dashboard service layer.
//
// It exposes the DashboardService interface used by every transport (REST,
// WebSocket, MCP) so they all share the same session, control, and telemetry
// semantics. The implementation serializes access with a single service-level
// lock, which keeps pedal presses and telemetry ticks from interleaving on
// the same vehicle state.
package service
