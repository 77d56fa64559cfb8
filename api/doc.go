// Package api provides HTTP REST API handlers for the car dashboard.
//
// The api package implements:
//   - RESTful endpoints for vehicle control operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - Telemetry and control history retrieval
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config_id in body)
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/unified - Multi-session view with filters
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Vehicle Operations:
//   - GET /api/sessions/{id}/state - Get current vehicle state
//   - POST /api/sessions/{id}/accelerate - Press the throttle
//   - POST /api/sessions/{id}/brake - Press the brake
//   - POST /api/sessions/{id}/controls - Execute a control sequence
//   - POST /api/sessions/{id}/reset - Reset the vehicle
//   - GET /api/sessions/{id}/history - Control history with pagination
//   - GET /api/sessions/{id}/telemetry - Current smoothed display frame
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a new configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Pedal presses accept an optional
// body:
//
//	{
//	  "delta": 25.0,   // optional, defaults to 10
//	  "reset": true    // optional reset before the press
//	}
//
// Control sequences are sent as:
//
//	{
//	  "controls": ["accelerate", "accelerate", "brake"],
//	  "reset": false
//	}
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
