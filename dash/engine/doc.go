// Package engine provides the core vehicle simulation for the Car Dashboard
// Simulator.
//
// The engine package implements the dashboard mechanics including:
//   - Accelerate/brake control physics with clamped gauges
//   - Derived RPM, fuel, and engine temperature tracking
//   - Display smoothing for the speedometer needle
//   - Vehicle state management and persistence
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for dashboard operations,
// implemented by DashboardEngine. VehicleState represents the current
// physical state, while VehicleConfig defines the vehicle identity, limits,
// and status message templates loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("roadster")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dash, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Press the pedals
//	message := dash.Accelerate(10)
//	state := dash.GetState()
//
// Physics Rules:
//
// Speed is clamped to [0, max_speed]. RPM is derived as speed*50 capped at
// 7000. Each throttle press burns 0.2% fuel and warms the engine toward a
// 95 degree ceiling; each brake press cools it one degree toward the 70
// degree idle floor. All arithmetic is clamped defensively: invalid inputs
// are absorbed as no-ops rather than surfaced as errors.
//
// Display Smoothing:
//
// Smoother eases a displayed speed toward the true speed by at most 2 mph
// per tick, signaling a render only while the difference exceeds 0.1. This
// keeps the speedometer needle sweeping smoothly no matter how abruptly the
// underlying speed changes.
package engine
