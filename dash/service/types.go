package service

import (
	"time"

	"github.com/wricardo/car-dashboard/dash/engine"
)

// SessionInfo provides information about a dashboard session
type SessionInfo struct {
	ID             string                `json:"id"`
	ConfigName     string                `json:"config_name"`
	CreatedAt      time.Time             `json:"created_at"`
	LastAccessedAt time.Time             `json:"last_accessed_at"`
	VehicleState   *engine.VehicleState  `json:"vehicle_state"`
	VehicleConfig  *engine.VehicleConfig `json:"vehicle_config"`
}

// ControlResult contains the result of a single control operation
type ControlResult struct {
	Success      bool                 `json:"success"`
	VehicleState *engine.VehicleState `json:"vehicle_state"`
	Message      string               `json:"message"`
	Events       []DashboardEvent     `json:"events,omitempty"`
	Step         *ControlStep         `json:"step,omitempty"`
}

// BulkControlResult contains the result of a control sequence
type BulkControlResult struct {
	// Summary
	ControlsExecuted  int                  `json:"controls_executed"`
	RequestedControls int                  `json:"requested_controls"`
	Success           bool                 `json:"success"`
	VehicleState      *engine.VehicleState `json:"vehicle_state"`
	Events            []DashboardEvent     `json:"events"`
	StoppedReason     string               `json:"stopped_reason,omitempty"`
	StoppedOnControl  int                  `json:"stopped_on_control,omitempty"` // 1-based index of the rejected input
	Truncated         bool                 `json:"truncated,omitempty"`
	Limit             int                  `json:"limit,omitempty"`

	// Start/end snapshot
	StartSpeed float64 `json:"start_speed"`
	EndSpeed   float64 `json:"end_speed"`
	StartFuel  float64 `json:"start_fuel"`
	EndFuel    float64 `json:"end_fuel"`

	// Per-step compact trace (only for this call)
	Steps []ControlStep `json:"steps,omitempty"`

	Message string `json:"message,omitempty"`
}

// ControlStep is a compact record for each executed control input
type ControlStep struct {
	Idx         int                 `json:"idx"`
	Input       engine.ControlInput `json:"input"`
	Delta       float64             `json:"delta"`
	SpeedBefore float64             `json:"speed_before"`
	SpeedAfter  float64             `json:"speed_after"`
	FuelBefore  float64             `json:"fuel_before"`
	FuelAfter   float64             `json:"fuel_after"`
	AtLimiter   bool                `json:"at_limiter,omitempty"`
	FuelEmpty   bool                `json:"fuel_empty,omitempty"`
	Message     string              `json:"message"`
}

// DashboardEvent represents an event that occurred during a control operation
type DashboardEvent struct {
	Type      string    `json:"type"` // "control", "max_speed", "fuel_empty", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Speed     float64   `json:"speed,omitempty"`
}

// TelemetryUpdate pairs a session with a render-worthy telemetry frame
type TelemetryUpdate struct {
	SessionID string                `json:"session_id"`
	Frame     engine.TelemetryFrame `json:"frame"`
}

// HistoryOptions configures control log retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated control history
type HistoryResponse struct {
	Controls      []engine.ControlLogEntry `json:"controls"`
	TotalControls int                      `json:"total_controls"`
	Page          int                      `json:"page"`
	PageSize      int                      `json:"page_size"`
	TotalPages    int                      `json:"total_pages"`
	HasNext       bool                     `json:"has_next"`
	HasPrevious   bool                     `json:"has_previous"`
}

// ConfigInfo provides information about a vehicle configuration
type ConfigInfo struct {
	Filename    string  `json:"filename"`
	ConfigID    string  `json:"config_id"` // The identifier to use for session creation
	Name        string  `json:"name"`      // Display name
	Description string  `json:"description"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	MaxSpeed    float64 `json:"max_speed"`
}
