// Command analyze prints quick, human-readable heuristics about vehicle
// configuration files in the project's configs directory. It summarizes
// pedal presses required to reach max speed, fuel burned along the way,
// gauge readings at the limiter, and how long the speedometer needle takes
// to settle after a full-throttle run.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// AnalysisConfig is a light struct for reading config files used by analysis.
type AnalysisConfig struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Make         string            `json:"make"`
	Model        string            `json:"model"`
	MaxSpeed     float64           `json:"max_speed"`
	StartingFuel float64           `json:"starting_fuel"`
	Messages     map[string]string `json:"messages"`
}

// Physics constants mirrored from the engine for offline analysis
const (
	defaultDelta     = 10.0
	fuelBurnPerPress = 0.2
	rpmPerMPH        = 50.0
	maxRPM           = 7000.0
	idleTemperature  = 70.0
	maxTemperature   = 95.0
	smootherStep     = 2.0
)

func main() {
	configs := []string{
		"classic.json",
		"commuter.json",
		"roadster.json",
	}

	for _, configFile := range configs {
		fmt.Printf("\n=== Analyzing %s ===\n", configFile)
		analyzeConfig(filepath.Join("configs", configFile))
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config AnalysisConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Vehicle: %s %s\n", config.Make, config.Model)
	fmt.Printf("Max Speed: %.0f mph\n", config.MaxSpeed)
	fmt.Printf("Starting Fuel: %.0f%%\n", config.StartingFuel)

	// Presses to the limiter at the default delta
	pressesToMax := int(math.Ceil(config.MaxSpeed / defaultDelta))
	fuelAtMax := config.StartingFuel - float64(pressesToMax)*fuelBurnPerPress
	fmt.Printf("Presses to limiter (default delta): %d\n", pressesToMax)
	fmt.Printf("Fuel after full-throttle run: %.1f%%\n", fuelAtMax)

	// Gauges at the limiter
	rpmAtMax := config.MaxSpeed * rpmPerMPH
	if rpmAtMax > maxRPM {
		rpmAtMax = maxRPM
	}
	tempAtMax := idleTemperature + config.MaxSpeed/5
	if tempAtMax > maxTemperature {
		tempAtMax = maxTemperature
	}
	fmt.Printf("RPM at limiter: %.0f\n", rpmAtMax)
	fmt.Printf("Temperature at limiter: %.1f°F\n", tempAtMax)

	// How long the needle takes to settle after jumping from 0 to max speed
	ticksToSettle := int(math.Ceil(config.MaxSpeed / smootherStep))
	fmt.Printf("Needle sweep 0→max: %d telemetry frames (%.1fs at 50ms)\n",
		ticksToSettle, float64(ticksToSettle)*0.05)

	// Total accelerator presses before the tank runs dry
	pressesToEmpty := int(math.Ceil(config.StartingFuel / fuelBurnPerPress))
	fmt.Printf("Accelerator presses until fuel empty: %d\n", pressesToEmpty)

	// Flag configs where the tachometer pins before the speed limiter.
	// Above maxRPM/rpmPerMPH mph the RPM reads the same regardless of speed.
	if config.MaxSpeed*rpmPerMPH > maxRPM {
		pinSpeed := maxRPM / rpmPerMPH
		fmt.Printf("⚠️  Tachometer pins at %.0f mph, %.0f mph below the limiter\n",
			pinSpeed, config.MaxSpeed-pinSpeed)
	} else {
		fmt.Printf("✅ Tachometer range covers the full speed range\n")
	}

	// Flag configs where the engine hits its temperature ceiling
	if idleTemperature+config.MaxSpeed/5 > maxTemperature {
		ceilingSpeed := (maxTemperature - idleTemperature) * 5
		fmt.Printf("⚠️  Temperature gauge maxes out at %.0f mph\n", ceilingSpeed)
	} else {
		fmt.Printf("✅ Temperature stays below the %.0f°F ceiling at all speeds\n", maxTemperature)
	}
}
