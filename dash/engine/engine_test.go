package engine

import (
	"testing"
)

func createTestConfig() *VehicleConfig {
	config := &VehicleConfig{
		Name:         "Engine Test Config",
		Description:  "Configuration for engine integration tests",
		Make:         "Tesla",
		Model:        "Roadster",
		MaxSpeed:     150,
		StartingFuel: 100,
	}
	config.Messages.Welcome = "Welcome to the engine test!"
	config.Messages.SpeedReport = "Current speed is %s mph."
	config.Messages.BrakeReport = "Current speed is now %s mph."
	config.Messages.MaxSpeedReached = "The %s has reached its max speed of %s mph!"
	config.Messages.FuelEmpty = "Fuel tank is empty!"
	return config
}

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if engine == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	// Test initial state
	if engine.GetCurrentSpeed() != 0 {
		t.Errorf("Expected starting speed 0, got %v", engine.GetCurrentSpeed())
	}
	if engine.GetFuel() != config.StartingFuel {
		t.Errorf("Expected starting fuel %v, got %v", config.StartingFuel, engine.GetFuel())
	}
	if engine.GetTemperature() != IdleTemperature {
		t.Errorf("Expected idle temperature %v, got %v", IdleTemperature, engine.GetTemperature())
	}
	if engine.GetRPM() != 0 {
		t.Errorf("Expected initial RPM 0, got %v", engine.GetRPM())
	}
	if engine.GetState().Message != config.Messages.Welcome {
		t.Errorf("Expected welcome message, got %q", engine.GetState().Message)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = "" // Make config invalid

	_, err := NewEngine(config)
	if err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	if engine == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	// Should have reasonable defaults
	if engine.GetMaxSpeed() <= 0 {
		t.Error("Expected positive max speed")
	}
	if engine.GetFuel() <= 0 {
		t.Error("Expected positive starting fuel")
	}
	if engine.GetMake() == "" || engine.GetModel() == "" {
		t.Error("Expected default make and model to be set")
	}
}

func TestEngine_Apply(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	message, ok := engine.Apply(InputAccelerate)
	if !ok {
		t.Fatal("Expected accelerate input to be recognized")
	}
	if message != "Current speed is 10 mph." {
		t.Errorf("Unexpected accelerate message: %q", message)
	}
	if engine.GetCurrentSpeed() != 10 {
		t.Errorf("Expected speed 10 after default accelerate, got %v", engine.GetCurrentSpeed())
	}

	message, ok = engine.Apply(InputBrake)
	if !ok {
		t.Fatal("Expected brake input to be recognized")
	}
	if message != "Current speed is now 0 mph." {
		t.Errorf("Unexpected brake message: %q", message)
	}

	if _, ok := engine.Apply("handbrake"); ok {
		t.Error("Expected unknown input to be rejected")
	}
}

func TestEngine_BulkApply(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	messages := engine.BulkApply([]ControlInput{InputAccelerate, InputAccelerate, InputBrake})
	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}
	if engine.GetCurrentSpeed() != 10 {
		t.Errorf("Expected speed 10 after accelerate x2 + brake, got %v", engine.GetCurrentSpeed())
	}

	// Unknown input stops the sequence
	messages = engine.BulkApply([]ControlInput{InputAccelerate, "clutch", InputAccelerate})
	if len(messages) != 1 {
		t.Errorf("Expected sequence to stop at unknown input, got %d messages", len(messages))
	}
}

func TestEngine_ControlLog(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	engine.Accelerate(10)
	engine.Brake(5)

	log := engine.GetControlLog()
	if len(log) != 2 {
		t.Fatalf("Expected 2 entries in control log, got %d", len(log))
	}

	last := engine.GetLastControl()
	if last == nil {
		t.Fatal("Expected last control to be non-nil")
	}
	if last.Action != InputBrake {
		t.Errorf("Expected last action brake, got %q", last.Action)
	}
	if last.SpeedBefore != 10 || last.SpeedAfter != 5 {
		t.Errorf("Expected speed 10 -> 5, got %v -> %v", last.SpeedBefore, last.SpeedAfter)
	}
	if last.ControlNumber != 2 {
		t.Errorf("Expected control number 2, got %d", last.ControlNumber)
	}
}

func TestEngine_Reset(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	engine.Accelerate(30)
	engine.Accelerate(30)

	state := engine.Reset()

	if state.CurrentSpeed != 0 {
		t.Errorf("Expected speed 0 after reset, got %v", state.CurrentSpeed)
	}
	if state.Fuel != 100 {
		t.Errorf("Expected full tank after reset, got %v", state.Fuel)
	}
	if state.Temperature != IdleTemperature {
		t.Errorf("Expected idle temperature after reset, got %v", state.Temperature)
	}

	// Cumulative log survives reset, current segment does not
	if len(state.ControlLog) != 2 {
		t.Errorf("Expected cumulative log to survive reset, got %d entries", len(state.ControlLog))
	}
	if state.TotalControls != 2 {
		t.Errorf("Expected total controls to survive reset, got %d", state.TotalControls)
	}
	if len(state.CurrentControls) != 0 || state.CurrentControlsCount != 0 {
		t.Error("Expected current segment to be cleared on reset")
	}
}

func TestEngine_SetState(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if err := engine.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}

	restored := InitVehicleStateFromConfig(createTestConfig())
	restored.CurrentSpeed = 42
	restored.RPM = DeriveRPM(42)

	if err := engine.SetState(restored); err != nil {
		t.Fatalf("Failed to set state: %v", err)
	}
	if engine.GetCurrentSpeed() != 42 {
		t.Errorf("Expected restored speed 42, got %v", engine.GetCurrentSpeed())
	}
}

func TestEngine_SetConfig(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	engine.Accelerate(50)

	next := createTestConfig()
	next.Name = "Second Config"
	next.MaxSpeed = 90
	if err := engine.SetConfig(next); err != nil {
		t.Fatalf("Failed to set config: %v", err)
	}
	if engine.GetMaxSpeed() != 90 {
		t.Errorf("Expected max speed 90 after config change, got %v", engine.GetMaxSpeed())
	}
	if engine.GetCurrentSpeed() != 0 {
		t.Errorf("Expected vehicle reset after config change, got speed %v", engine.GetCurrentSpeed())
	}

	invalid := createTestConfig()
	invalid.MaxSpeed = -1
	if err := engine.SetConfig(invalid); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestEngine_Setters(t *testing.T) {
	engine, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	t.Run("identity", func(t *testing.T) {
		engine.SetMake("Ford")
		engine.SetModel("Mustang")
		if engine.GetMake() != "Ford" || engine.GetModel() != "Mustang" {
			t.Errorf("Expected Ford Mustang, got %s %s", engine.GetMake(), engine.GetModel())
		}
	})

	t.Run("max speed ignores non-positive", func(t *testing.T) {
		engine.SetMaxSpeed(120)
		if engine.GetMaxSpeed() != 120 {
			t.Errorf("Expected max speed 120, got %v", engine.GetMaxSpeed())
		}

		engine.SetMaxSpeed(0)
		engine.SetMaxSpeed(-10)
		if engine.GetMaxSpeed() != 120 {
			t.Errorf("Expected invalid max speeds to be ignored, got %v", engine.GetMaxSpeed())
		}
	})

	t.Run("current speed ignores out of range", func(t *testing.T) {
		engine.SetCurrentSpeed(60)
		if engine.GetCurrentSpeed() != 60 {
			t.Errorf("Expected speed 60, got %v", engine.GetCurrentSpeed())
		}

		engine.SetCurrentSpeed(-5)
		engine.SetCurrentSpeed(engine.GetMaxSpeed() + 1)
		if engine.GetCurrentSpeed() != 60 {
			t.Errorf("Expected out-of-range speeds to be ignored, got %v", engine.GetCurrentSpeed())
		}
	})
}
