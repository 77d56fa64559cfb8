package engine

import "fmt"

// Engine provides the main interface for dashboard operations
type Engine interface {
	// Vehicle state management
	GetState() *VehicleState
	SetState(state *VehicleState) error
	Reset() *VehicleState

	// Control operations
	Accelerate(delta float64) string
	Brake(delta float64) string
	Apply(input ControlInput) (string, bool)
	BulkApply(inputs []ControlInput) []string

	// Identity and gauge accessors
	GetMake() string
	SetMake(make string)
	GetModel() string
	SetModel(model string)
	GetMaxSpeed() float64
	SetMaxSpeed(maxSpeed float64)
	GetCurrentSpeed() float64
	SetCurrentSpeed(speed float64)
	GetRPM() float64
	GetFuel() float64
	GetTemperature() float64

	// Configuration
	GetConfig() *VehicleConfig
	SetConfig(config *VehicleConfig) error

	// History
	GetControlLog() []ControlLogEntry
	GetLastControl() *ControlLogEntry
}

// DashboardEngine implements the Engine interface
type DashboardEngine struct {
	state  *VehicleState
	config *VehicleConfig
}

// NewEngine creates a new dashboard engine with the provided configuration
func NewEngine(config *VehicleConfig) (*DashboardEngine, error) {
	if err := ValidateVehicleConfig(config); err != nil {
		return nil, err
	}

	engine := &DashboardEngine{
		config: config,
		state:  InitVehicleStateFromConfig(config),
	}

	return engine, nil
}

// NewEngineWithDefaults creates a new dashboard engine with the built-in configuration
func NewEngineWithDefaults() *DashboardEngine {
	config := DefaultVehicleConfig()
	return &DashboardEngine{
		config: config,
		state:  InitVehicleStateFromConfig(config),
	}
}

// GetState returns the current vehicle state
func (e *DashboardEngine) GetState() *VehicleState {
	return e.state
}

// SetState sets the vehicle state (used for persistence loading)
func (e *DashboardEngine) SetState(state *VehicleState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	e.state = state
	return nil
}

// Reset resets the vehicle to its initial state
func (e *DashboardEngine) Reset() *VehicleState {
	// Preserve cumulative control log and totals across resets
	prevLog := e.state.ControlLog
	prevTotal := e.state.TotalControls

	// Reinitialize core state from config
	e.state = InitVehicleStateFromConfig(e.config)

	// Restore cumulative log and totals; clear only the current segment
	e.state.ControlLog = prevLog
	e.state.TotalControls = prevTotal
	e.state.CurrentControls = []ControlLogEntry{}
	e.state.CurrentControlsCount = 0

	return e.state
}

// Accelerate applies a throttle press with the given delta
func (e *DashboardEngine) Accelerate(delta float64) string {
	return e.state.Accelerate(delta, e.config)
}

// Brake applies a brake press with the given delta
func (e *DashboardEngine) Brake(delta float64) string {
	return e.state.Brake(delta, e.config)
}

// Apply maps a named control input to its default-delta operation. The
// returned bool reports whether the input named a known control.
func (e *DashboardEngine) Apply(input ControlInput) (string, bool) {
	switch input {
	case InputAccelerate:
		return e.Accelerate(DefaultDelta), true
	case InputBrake:
		return e.Brake(DefaultDelta), true
	default:
		return "", false
	}
}

// BulkApply executes multiple control inputs in sequence, returning the
// status message produced by each. Unknown inputs stop the sequence.
func (e *DashboardEngine) BulkApply(inputs []ControlInput) []string {
	messages := make([]string, 0, len(inputs))

	for _, input := range inputs {
		message, ok := e.Apply(input)
		if !ok {
			break
		}
		messages = append(messages, message)
	}

	return messages
}

// GetMake returns the vehicle make
func (e *DashboardEngine) GetMake() string {
	return e.state.Make
}

// SetMake sets the vehicle make
func (e *DashboardEngine) SetMake(make string) {
	e.state.Make = make
}

// GetModel returns the vehicle model
func (e *DashboardEngine) GetModel() string {
	return e.state.Model
}

// SetModel sets the vehicle model
func (e *DashboardEngine) SetModel(model string) {
	e.state.Model = model
}

// GetMaxSpeed returns the configured speed limiter
func (e *DashboardEngine) GetMaxSpeed() float64 {
	return e.state.MaxSpeed
}

// SetMaxSpeed sets the speed limiter. Non-positive values are silently
// ignored per the fail-safe no-op policy of the control surface.
func (e *DashboardEngine) SetMaxSpeed(maxSpeed float64) {
	if maxSpeed <= 0 {
		return
	}
	e.state.MaxSpeed = maxSpeed
}

// GetCurrentSpeed returns the instantaneous road speed
func (e *DashboardEngine) GetCurrentSpeed() float64 {
	return e.state.CurrentSpeed
}

// SetCurrentSpeed sets the road speed directly. Values outside
// [0, max_speed] are silently ignored.
func (e *DashboardEngine) SetCurrentSpeed(speed float64) {
	if speed < 0 || speed > e.state.MaxSpeed {
		return
	}
	e.state.CurrentSpeed = speed
}

// GetRPM returns the derived engine RPM
func (e *DashboardEngine) GetRPM() float64 {
	return e.state.RPM
}

// GetFuel returns the remaining fuel percentage
func (e *DashboardEngine) GetFuel() float64 {
	return e.state.Fuel
}

// GetTemperature returns the engine temperature
func (e *DashboardEngine) GetTemperature() float64 {
	return e.state.Temperature
}

// GetConfig returns the current vehicle configuration
func (e *DashboardEngine) GetConfig() *VehicleConfig {
	return e.config
}

// SetConfig sets a new vehicle configuration and resets the vehicle
func (e *DashboardEngine) SetConfig(config *VehicleConfig) error {
	if err := ValidateVehicleConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitVehicleStateFromConfig(config)
	return nil
}

// GetControlLog returns the complete control history
func (e *DashboardEngine) GetControlLog() []ControlLogEntry {
	return e.state.ControlLog
}

// GetLastControl returns the last control input, or nil if none
func (e *DashboardEngine) GetLastControl() *ControlLogEntry {
	if len(e.state.ControlLog) == 0 {
		return nil
	}
	return &e.state.ControlLog[len(e.state.ControlLog)-1]
}
