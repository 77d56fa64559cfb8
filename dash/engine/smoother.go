package engine

import "math"

// SmootherState names the two phases of the display animation
type SmootherState string

const (
	// Converging means the displayed speed is still chasing the target and
	// each tick produces a render.
	Converging SmootherState = "converging"

	// Settled means the displayed speed is within the threshold of the
	// target and ticks go quiet until the target moves again.
	Settled SmootherState = "settled"
)

// Smoother eases the displayed speed toward the vehicle's true speed,
// decoupling instantaneous state changes from visual presentation. It is
// advanced once per telemetry tick.
type Smoother struct {
	TargetSpeed    float64 `json:"target_speed"`
	DisplayedSpeed float64 `json:"displayed_speed"`
}

// NewSmoother creates a smoother whose needle starts at the given speed
func NewSmoother(initialSpeed float64) *Smoother {
	return &Smoother{
		TargetSpeed:    initialSpeed,
		DisplayedSpeed: initialSpeed,
	}
}

// Tick takes the vehicle's current speed as the new target and advances the
// displayed speed one step toward it. It returns true when the display
// surface should re-render with the updated displayed speed.
func (s *Smoother) Tick(target float64) bool {
	s.TargetSpeed = target

	diff := s.TargetSpeed - s.DisplayedSpeed
	if math.Abs(diff) <= SmootherThreshold {
		return false
	}

	step := math.Min(SmootherStep, math.Abs(diff))
	if diff < 0 {
		step = -step
	}
	s.DisplayedSpeed += step

	return true
}

// State reports whether the smoother is still converging on its target
func (s *Smoother) State() SmootherState {
	if math.Abs(s.TargetSpeed-s.DisplayedSpeed) > SmootherThreshold {
		return Converging
	}
	return Settled
}

// Frame builds the telemetry snapshot for the current displayed speed,
// pairing it with the vehicle's live gauge values.
func (s *Smoother) Frame(state *VehicleState) TelemetryFrame {
	return TelemetryFrame{
		DisplayedSpeed: s.DisplayedSpeed,
		RPM:            state.RPM,
		Fuel:           state.Fuel,
		Temperature:    state.Temperature,
	}
}
