// Package mcp provides Model Context Protocol server implementation for the car dashboard.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for dashboard operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - vehicle_state: Get current vehicle state with all gauges
//   - accelerate: Execute a single accelerator press
//   - brake: Execute a single brake press
//   - controls: Execute multiple pedal presses in sequence
//   - reset_vehicle: Reset the vehicle to its starting state
//   - control_history: Retrieve control history with pagination
//   - telemetry: Get the current smoothed display frame
//   - create_session: Create new dashboard session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available vehicle configurations
//   - dashboard_instructions: Get comprehensive dashboard mechanics
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The client is a thin proxy: every tool call is translated into a REST
// call against the API server, and the JSON response is formatted into
// readable text for the agent. Running the MCP layer against the HTTP API
// instead of the service layer keeps a single source of truth for session
// state regardless of which surface drives the vehicle.
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Drive the vehicle autonomously
//   - Observe the smoothed telemetry display
//   - Manage multiple dashboard sessions
//   - Learn from control history
package mcp
