package engine

// ControlInput represents the discrete control inputs a vehicle accepts
type ControlInput string

const (
	InputAccelerate ControlInput = "accelerate"
	InputBrake      ControlInput = "brake"

	// Physics constants
	MaxRPM           = 7000.0
	RPMPerMPH        = 50.0
	IdleTemperature  = 70.0
	MaxTemperature   = 95.0
	FuelBurnPerPress = 0.2
	BrakeCooldown    = 1.0
	DefaultDelta     = 10.0

	// Fuel gauge bounds
	MinFuel = 0.0
	MaxFuel = 100.0

	// Smoothing constants
	SmootherStep      = 2.0
	SmootherThreshold = 0.1

	// Validation constants
	MaxBulkControls     = 50
	WebSocketBufferSize = 256
)

// VehicleConfig represents the vehicle configuration from JSON
type VehicleConfig struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	MaxSpeed     float64         `json:"max_speed"`
	StartingFuel float64         `json:"starting_fuel"`
	Messages     VehicleMessages `json:"messages"`
}

// VehicleMessages holds the driver-facing message templates. SpeedReport and
// BrakeReport take the current speed; MaxSpeedReached takes the vehicle label
// and the configured max speed.
type VehicleMessages struct {
	Welcome         string `json:"welcome"`
	SpeedReport     string `json:"speed_report"`
	BrakeReport     string `json:"brake_report"`
	MaxSpeedReached string `json:"max_speed_reached"`
	FuelEmpty       string `json:"fuel_empty"`
}

// VehicleState represents the complete physical state of a vehicle
type VehicleState struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	MaxSpeed     float64 `json:"max_speed"`
	CurrentSpeed float64 `json:"current_speed"`
	RPM          float64 `json:"rpm"`
	Fuel         float64 `json:"fuel"`
	Temperature  float64 `json:"temperature"`
	Message      string  `json:"message"`
	ConfigName   string  `json:"config_name"`

	// ControlLog is cumulative across resets; TotalControls counts every
	// accepted control input since the session was created.
	ControlLog    []ControlLogEntry `json:"control_log"`
	TotalControls int               `json:"total_controls"`

	// CurrentControls tracks only the inputs since the last reset. It mirrors
	// ControlLog entries but gets cleared on reset while ControlLog remains
	// cumulative.
	CurrentControls      []ControlLogEntry `json:"current_controls"`
	CurrentControlsCount int               `json:"current_controls_count"`
}

// ControlLogEntry represents a single control input in the vehicle history
type ControlLogEntry struct {
	Action        ControlInput `json:"action"`
	Delta         float64      `json:"delta"`
	SpeedBefore   float64      `json:"speed_before"`
	SpeedAfter    float64      `json:"speed_after"`
	RPM           float64      `json:"rpm"`
	Fuel          float64      `json:"fuel"`
	Temperature   float64      `json:"temperature"`
	Timestamp     int64        `json:"timestamp"`
	ControlNumber int          `json:"control_number"`
}

// TelemetryFrame is the snapshot handed to the display surface on each
// render-worthy tick. DisplayedSpeed is the smoothed value, not the
// instantaneous one.
type TelemetryFrame struct {
	DisplayedSpeed float64 `json:"displayed_speed"`
	RPM            float64 `json:"rpm"`
	Fuel           float64 `json:"fuel"`
	Temperature    float64 `json:"temperature"`
}
