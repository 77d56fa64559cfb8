package engine

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Accelerate applies a throttle press of the given delta and returns the
// resulting status message. Delta is not validated: a negative delta slows
// the vehicle down without the fuel and temperature effects of braking,
// which mirrors the caller-responsibility contract of the control surface.
func (vs *VehicleState) Accelerate(delta float64, config *VehicleConfig) string {
	prevSpeed := vs.CurrentSpeed
	newSpeed := vs.CurrentSpeed + delta

	if newSpeed > vs.MaxSpeed {
		// Pinned at the limiter: speed clamps and the derived gauges follow,
		// but no extra fuel is burned for a press the limiter absorbed.
		vs.CurrentSpeed = vs.MaxSpeed
		vs.RPM = DeriveRPM(vs.CurrentSpeed)
		vs.Temperature = DeriveTemperature(vs.CurrentSpeed)
		vs.Message = fmt.Sprintf(config.Messages.MaxSpeedReached, vs.Label(), FormatSpeed(vs.MaxSpeed))
		vs.addControlToLog(InputAccelerate, delta, prevSpeed)
		return vs.Message
	}

	vs.CurrentSpeed = newSpeed
	vs.RPM = DeriveRPM(newSpeed)
	vs.Temperature = DeriveTemperature(newSpeed)
	vs.Fuel = math.Max(MinFuel, vs.Fuel-FuelBurnPerPress)
	vs.Message = fmt.Sprintf(config.Messages.SpeedReport, FormatSpeed(newSpeed))

	if vs.Fuel == MinFuel && config.Messages.FuelEmpty != "" {
		vs.Message = vs.Message + " " + config.Messages.FuelEmpty
	}

	vs.addControlToLog(InputAccelerate, delta, prevSpeed)
	return vs.Message
}

// Brake applies a brake press of the given delta and returns the resulting
// status message. Speed never drops below zero; braking cools the engine by
// one degree per press down to the idle floor and leaves fuel untouched.
func (vs *VehicleState) Brake(delta float64, config *VehicleConfig) string {
	prevSpeed := vs.CurrentSpeed

	newSpeed := vs.CurrentSpeed - delta
	if newSpeed < 0 {
		newSpeed = 0
	}

	vs.CurrentSpeed = newSpeed
	vs.RPM = DeriveRPM(newSpeed)
	vs.Temperature = math.Max(IdleTemperature, vs.Temperature-BrakeCooldown)
	vs.Message = fmt.Sprintf(config.Messages.BrakeReport, FormatSpeed(newSpeed))

	vs.addControlToLog(InputBrake, delta, prevSpeed)
	return vs.Message
}

// Label returns the human-readable vehicle identity used in status messages
func (vs *VehicleState) Label() string {
	return vs.Make + " " + vs.Model
}

// DeriveRPM computes engine RPM from road speed, capped at the redline
func DeriveRPM(speed float64) float64 {
	return math.Min(MaxRPM, speed*RPMPerMPH)
}

// DeriveTemperature computes engine temperature from road speed, capped at
// the overheat ceiling. Braking does not use this curve; it cools stepwise.
func DeriveTemperature(speed float64) float64 {
	return math.Min(MaxTemperature, IdleTemperature+speed/5)
}

// FormatSpeed renders a speed value the way the dashboard shows it:
// no trailing zeros, so 10.0 prints as "10" and 10.5 as "10.5".
func FormatSpeed(speed float64) string {
	return strconv.FormatFloat(speed, 'f', -1, 64)
}

// addControlToLog records an accepted control input in the vehicle history
func (vs *VehicleState) addControlToLog(action ControlInput, delta, speedBefore float64) {
	entry := ControlLogEntry{
		Action:        action,
		Delta:         delta,
		SpeedBefore:   speedBefore,
		SpeedAfter:    vs.CurrentSpeed,
		RPM:           vs.RPM,
		Fuel:          vs.Fuel,
		Temperature:   vs.Temperature,
		Timestamp:     time.Now().Unix(),
		ControlNumber: vs.TotalControls + 1,
	}
	// Append to cumulative log (never cleared by reset) and increment total
	vs.ControlLog = append(vs.ControlLog, entry)
	vs.TotalControls++

	// Append to current segment and increment its counter
	vs.CurrentControls = append(vs.CurrentControls, entry)
	vs.CurrentControlsCount++
}
