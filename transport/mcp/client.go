package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/car-dashboard/dash/engine"
	"github.com/wricardo/car-dashboard/dash/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Car Dashboard",
		"2.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Car Dashboard - MCP Interface

This is a thin client that proxies all requests to the REST API server.

ABOUT:
A simulated car dashboard. Each session owns one vehicle. Pressing the
accelerator adds speed (default 10 mph per press) and burns a little fuel;
pressing the brake sheds speed and cools the engine. RPM, fuel and
temperature follow from the speed. The speedometer display is smoothed,
so the displayed speed trails the actual speed by a few telemetry frames.

AVAILABLE TOOLS:
- vehicle_state: Get the current vehicle state
- accelerate: Single accelerator press - requires intent explanation
- brake: Single brake press - requires intent explanation
- controls: Multiple pedal presses at once - requires intent explanation
- reset_vehicle: Reset the vehicle to its starting state
- control_history: View past control inputs
- telemetry: Get the current smoothed display frame
- create_session: Create a new dashboard session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available vehicle configurations
- dashboard_instructions: Get comprehensive dashboard instructions

NOTE: The 'intent' parameter on control tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new dashboard session with optional vehicle config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the vehicle config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active dashboard sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Vehicle operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "vehicle_state",
		Description: "Get the current vehicle state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleVehicleState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "accelerate",
		Description: "Press the accelerator pedal once",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"delta": map[string]interface{}{
					"type":        "number",
					"description": "Speed gained by this press in mph (optional, defaults to 10)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this press (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the vehicle before pressing",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleAccelerate)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "brake",
		Description: "Press the brake pedal once",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"delta": map[string]interface{}{
					"type":        "number",
					"description": "Speed shed by this press in mph (optional, defaults to 10)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this press (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the vehicle before pressing",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBrake)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "controls",
		Description: "Execute a sequence of pedal presses",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"controls": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"accelerate", "brake"},
					},
					"description": "Array of pedal presses",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of presses (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the vehicle before pressing",
				},
			},
			Required: []string{"session_id", "controls"},
		},
	}, c.handleControls)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_vehicle",
		Description: "Reset the vehicle to its starting state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "control_history",
		Description: "Get control input history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleControlHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "telemetry",
		Description: "Get the current smoothed display frame. The displayed speed trails the actual speed while the needle sweeps.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTelemetry)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available vehicle configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "dashboard_instructions",
		Description: "Get comprehensive dashboard instructions and mechanics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleDashboardInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleVehicleState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.VehicleState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatVehicleState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleAccelerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.handleControl(ctx, request, "accelerate")
}

func (c *Client) handleBrake(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.handleControl(ctx, request, "brake")
}

func (c *Client) handleControl(ctx context.Context, request mcp.CallToolRequest, pedal string) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"reset": reset,
	}
	if delta, ok := args["delta"].(float64); ok {
		body["delta"] = delta
	}

	var result service.ControlResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/%s", sessionID, pedal), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatControlResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleControls(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	controlsRaw, _ := args["controls"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert controls to string array
	controls := make([]string, 0, len(controlsRaw))
	for _, m := range controlsRaw {
		if input, ok := m.(string); ok {
			controls = append(controls, input)
		}
	}

	body := map[string]interface{}{
		"controls": controls,
		"reset":    reset,
	}

	var result service.BulkControlResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/controls", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkControlResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string               `json:"message"`
		State   *engine.VehicleState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatVehicleState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleControlHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.VehicleState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTelemetry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var frame engine.TelemetryFrame
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/telemetry", sessionID), nil, &frame)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf(`Telemetry Frame:
Displayed Speed: %.1f mph (smoothed)
RPM: %.0f
Fuel: %.1f%%
Temperature: %.1f°F`,
		frame.DisplayedSpeed, frame.RPM, frame.Fuel, frame.Temperature)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Vehicle: %s %s, Max speed: %.0f mph\n\n",
			config.Name, config.ConfigID, config.Description, config.Make, config.Model, config.MaxSpeed)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDashboardInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🚗 Car Dashboard - Complete Instructions

ABOUT:
A simulated car dashboard. Each session owns one vehicle whose state you
drive with two pedals. The dashboard derives RPM, fuel and engine
temperature from your inputs and streams a smoothed display over
telemetry.

MECHANICS:
• Accelerate: each press adds speed (default 10 mph, custom delta allowed)
  and burns 0.2% fuel
• Brake: each press sheds speed (default 10 mph) and cools the engine
  by 1°F
• RPM: 50 per mph, capped at 7000
• Temperature: idles at 70°F, climbs with speed, capped at 95°F
• Speed limiter: the vehicle never exceeds its configured max speed; a
  press that would cross the limit pins the speed at the max instead
• Speed floor: braking never takes the speed below 0

THE SPEEDOMETER IS SMOOTHED:
The displayed speed on the telemetry feed trails the actual speed. After
a press the needle sweeps toward the new speed in 2 mph steps, one step
per telemetry frame. Use vehicle_state for the actual speed and
telemetry for what the driver sees.

CONTROL COMMANDS:
- accelerate, brake - Single pedal presses with optional delta
- controls - Execute a sequence of presses for efficiency (max 50 per call)
- Reset parameter available for fresh starts

EVENTS TO WATCH FOR:
- max_speed: the press pinned the speed at the limiter
- fuel_empty: the fuel gauge hit zero on this press
- reset: the vehicle was reset before the press

CONTROL HISTORY:
- Every accepted press is logged with speed, RPM, fuel and temperature
- The cumulative log survives resets; the current segment does not
- Use control_history with page/limit for older entries

CONFIGURATION OPTIONS:
- Each config defines the vehicle make and model, max speed, starting
  fuel and the driver-facing message templates
- Use list_configs to see what is available

SESSION MANAGEMENT:
- Multiple dashboard sessions can run simultaneously
- Each session has unique 4-character ID
- Sessions maintain independent state and configuration
- Use session-specific tools for multi-vehicle management

API USAGE BEST PRACTICES:
- Use the controls tool rather than many individual presses
- Monitor fuel before long acceleration runs; an empty tank still
  reports the fuel_empty event only on the press that drained it
- The telemetry tool returns one frame; connect to the WebSocket feed
  for the live sweep

Enjoy the drive! 🚗💨`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatVehicleState(session.VehicleState))
}

func formatVehicleState(state *engine.VehicleState) string {
	if state == nil {
		return "No vehicle state available"
	}

	var result strings.Builder

	// Header (include cumulative total controls)
	result.WriteString(fmt.Sprintf("%s %s | Speed: %.1f/%.0f mph | Controls: %d\n",
		state.Make, state.Model, state.CurrentSpeed, state.MaxSpeed, state.TotalControls))

	// Gauges
	result.WriteString(fmt.Sprintf("RPM: %.0f\n", state.RPM))
	result.WriteString(fmt.Sprintf("Fuel: %.1f%%\n", state.Fuel))
	result.WriteString(fmt.Sprintf("Temperature: %.1f°F\n", state.Temperature))

	// Warnings
	if state.CurrentSpeed >= state.MaxSpeed && state.MaxSpeed > 0 {
		result.WriteString("\n⚠️ AT SPEED LIMITER")
	}
	if state.Fuel <= 0 {
		result.WriteString("\n⛽ FUEL EMPTY")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

func formatControlResult(result *service.ControlResult) string {
	response := ""
	if result.Success {
		response = "✓ Control accepted\n"
	} else {
		response = "✗ Control failed\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		flags := ""
		if s.AtLimiter {
			flags += " LIMITER"
		}
		if s.FuelEmpty {
			flags += " FUEL_EMPTY"
		}
		response += fmt.Sprintf("Step: %s Δ%.1f speed %.1f→%.1f fuel %.1f→%.1f%s\n",
			s.Input, s.Delta, s.SpeedBefore, s.SpeedAfter, s.FuelBefore, s.FuelAfter, flags)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatVehicleState(result.VehicleState)
	return response
}

func formatBulkControlResult(sessionID string, result *service.BulkControlResult) string {
	var b strings.Builder

	// Session header
	configName := ""
	if result.VehicleState != nil {
		configName = result.VehicleState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s\n", sessionID, configName))

	// Bulk summary
	b.WriteString(fmt.Sprintf("Executed %d/%d controls\n", result.ControlsExecuted, result.RequestedControls))
	b.WriteString(fmt.Sprintf("Speed %.1f→%.1f mph, fuel %.1f→%.1f%%\n",
		result.StartSpeed, result.EndSpeed, result.StartFuel, result.EndFuel))
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to the %d-control limit\n", result.Limit))
	}
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped on control %d: %s\n", result.StoppedOnControl, result.StoppedReason))
	}

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-step trace for this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			flags := ""
			if s.AtLimiter {
				flags += " LIMITER"
			}
			if s.FuelEmpty {
				flags += " FUEL_EMPTY"
			}
			b.WriteString(fmt.Sprintf("%d. %s Δ%.1f speed %.1f→%.1f fuel %.1f→%.1f%s\n",
				s.Idx, s.Input, s.Delta, s.SpeedBefore, s.SpeedAfter, s.FuelBefore, s.FuelAfter, flags))
		}
	}

	// Full state at the end (kept for compatibility)
	b.WriteString("\n")
	b.WriteString(formatVehicleState(result.VehicleState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Control History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalControls)

	for i, entry := range history.Controls {
		num := (history.Page-1)*history.PageSize + i + 1
		result += fmt.Sprintf("%d. %s Δ%.1f %.1f→%.1f mph [Fuel: %.1f%%]\n",
			num, entry.Action, entry.Delta, entry.SpeedBefore, entry.SpeedAfter, entry.Fuel)
	}

	return result
}

func formatCurrentSegment(state *engine.VehicleState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	controls := state.CurrentControls
	total := state.CurrentControlsCount
	header := fmt.Sprintf("Current Control Segment — Controls: %d\n\n", total)
	if len(controls) == 0 {
		return header + "(no controls in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, entry := range controls {
		// i is zero-based within the segment
		b.WriteString(fmt.Sprintf("%d. %s %.1f→%.1f mph [Fuel: %.1f%%]\n",
			i+1, entry.Action, entry.SpeedBefore, entry.SpeedAfter, entry.Fuel))
	}
	return b.String()
}
