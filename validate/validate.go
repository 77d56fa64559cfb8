// Command validate provides a small CLI that validates vehicle configuration
// JSON files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Max speed and starting fuel constraints
//   - Presence of required message templates
//   - Format verb counts in message templates (speed_report and brake_report
//     take one %s; max_speed_reached takes exactly two)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a vehicle configuration.
type Config struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Make         string            `json:"make"`
	Model        string            `json:"model"`
	MaxSpeed     float64           `json:"max_speed"`
	StartingFuel float64           `json:"starting_fuel"`
	Messages     map[string]string `json:"messages"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, numeric bounds, message presence, and
// template verb validation.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate identity fields
	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "name is required")
	}

	if config.Make == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "make is required")
	}

	if config.Model == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "model is required")
	}

	// Validate vehicle settings
	if config.MaxSpeed <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_speed must be positive, got %v", config.MaxSpeed))
	}

	if config.StartingFuel <= 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("starting_fuel must be positive, got %v", config.StartingFuel))
	}

	if config.StartingFuel > 100 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("starting_fuel (%v) cannot exceed 100", config.StartingFuel))
	}

	// Validate messages
	requiredMessages := []string{
		"welcome",
		"speed_report",
		"brake_report",
		"max_speed_reached",
		"fuel_empty",
	}
	for _, msg := range requiredMessages {
		if _, exists := config.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Validate template verbs. These are filled with fmt.Sprintf at runtime,
	// so a wrong verb count surfaces as %!s(MISSING) on the dashboard.
	verbCounts := map[string]int{
		"speed_report":      1,
		"brake_report":      1,
		"max_speed_reached": 2,
	}
	for key, want := range verbCounts {
		template, exists := config.Messages[key]
		if !exists {
			continue
		}
		got := strings.Count(template, "%s")
		if got != want {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Message %s must contain exactly %d %%s verb(s), got %d", key, want, got))
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Vehicle: %s %s", config.Make, config.Model))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Max speed: %.0f mph", config.MaxSpeed))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting fuel: %.0f%%", config.StartingFuel))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Messages: %d", len(config.Messages)))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
