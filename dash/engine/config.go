package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateVehicleConfig validates a vehicle configuration for correctness
func ValidateVehicleConfig(config *VehicleConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if config.Make == "" {
		return fmt.Errorf("config validation: make is required")
	}
	if config.Model == "" {
		return fmt.Errorf("config validation: model is required")
	}

	// Validate speed limits
	if config.MaxSpeed <= 0 {
		return fmt.Errorf("config validation: max_speed must be positive, got %v", config.MaxSpeed)
	}

	// Validate fuel settings
	if config.StartingFuel <= MinFuel || config.StartingFuel > MaxFuel {
		return fmt.Errorf("config validation: starting_fuel must be between %v (exclusive) and %v, got %v",
			MinFuel, MaxFuel, config.StartingFuel)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.SpeedReport == "" {
		return fmt.Errorf("config validation: messages.speed_report is required")
	}
	if config.Messages.BrakeReport == "" {
		return fmt.Errorf("config validation: messages.brake_report is required")
	}
	if config.Messages.MaxSpeedReached == "" {
		return fmt.Errorf("config validation: messages.max_speed_reached is required")
	}

	// Validate format strings
	if !strings.Contains(config.Messages.SpeedReport, "%s") {
		return fmt.Errorf("config validation: messages.speed_report must contain %%s for the speed value")
	}
	if !strings.Contains(config.Messages.BrakeReport, "%s") {
		return fmt.Errorf("config validation: messages.brake_report must contain %%s for the speed value")
	}
	if strings.Count(config.Messages.MaxSpeedReached, "%s") != 2 {
		return fmt.Errorf("config validation: messages.max_speed_reached must contain two %%s verbs (vehicle label and max speed)")
	}

	return nil
}

// LoadVehicleConfig loads a vehicle configuration from a JSON file
func LoadVehicleConfig(filename string) (*VehicleConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config VehicleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateVehicleConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a vehicle configuration by name from the configs directory
func LoadConfigByName(configName string) (*VehicleConfig, error) {
	// Add .json extension if not present
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config VehicleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}

	if err := ValidateVehicleConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}

// InitVehicleStateFromConfig creates a new vehicle state using the provided configuration
func InitVehicleStateFromConfig(config *VehicleConfig) *VehicleState {
	if config == nil {
		// Use default config if not provided
		config = DefaultVehicleConfig()
	}

	return &VehicleState{
		Make:                 config.Make,
		Model:                config.Model,
		MaxSpeed:             config.MaxSpeed,
		CurrentSpeed:         0,
		RPM:                  0,
		Fuel:                 config.StartingFuel,
		Temperature:          IdleTemperature,
		Message:              config.Messages.Welcome,
		ConfigName:           config.Name,
		ControlLog:           []ControlLogEntry{},
		TotalControls:        0,
		CurrentControls:      []ControlLogEntry{},
		CurrentControlsCount: 0,
	}
}

// DefaultVehicleConfig returns the built-in fallback configuration
func DefaultVehicleConfig() *VehicleConfig {
	config := &VehicleConfig{
		Name:         "roadster",
		Description:  "Default roadster with a 150 mph limiter",
		Make:         "Tesla",
		Model:        "Roadster",
		MaxSpeed:     150,
		StartingFuel: MaxFuel,
	}
	config.Messages.Welcome = "Dashboard ready. Press accelerate to get moving!"
	config.Messages.SpeedReport = "Current speed is %s mph."
	config.Messages.BrakeReport = "Current speed is now %s mph."
	config.Messages.MaxSpeedReached = "The %s has reached its max speed of %s mph!"
	config.Messages.FuelEmpty = "Fuel tank is empty!"
	return config
}
