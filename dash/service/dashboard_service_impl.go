package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/car-dashboard/dash/engine"
)

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(sessions SessionManager, configs ConfigManager) DashboardService {
	return &dashboardServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *dashboardServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new dashboard session
func (s *dashboardServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.VehicleConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		VehicleState:   session.Engine.GetState(),
		VehicleConfig:  session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *dashboardServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		VehicleState:   session.Engine.GetState(),
		VehicleConfig:  session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *dashboardServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			VehicleState:   sess.Engine.GetState(),
			VehicleConfig:  sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *dashboardServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Control executes a single control input for a session
func (s *dashboardServiceImpl) Control(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*ControlResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []DashboardEvent{}

	// Handle reset if requested
	if reset {
		sess.Engine.Reset()
		events = append(events, DashboardEvent{
			Type:      "reset",
			Message:   "Vehicle reset to initial state",
			Timestamp: time.Now(),
		})
	}

	d := engine.DefaultDelta
	if delta != nil {
		d = *delta
	}

	prevState := sess.Engine.GetState()
	speedBefore := prevState.CurrentSpeed
	fuelBefore := prevState.Fuel

	var message string
	switch input {
	case engine.InputAccelerate:
		message = sess.Engine.Accelerate(d)
	case engine.InputBrake:
		message = sess.Engine.Brake(d)
	default:
		return nil, fmt.Errorf("unknown control input: %s", input)
	}

	state := sess.Engine.GetState()
	atLimiter := input == engine.InputAccelerate && speedBefore+d > state.MaxSpeed
	fuelEmpty := state.Fuel == engine.MinFuel && fuelBefore > engine.MinFuel

	result := &ControlResult{
		Success:      true,
		VehicleState: state,
		Message:      message,
		Events:       events,
	}

	result.Events = append(result.Events, s.extractControlEvents(sess, input, atLimiter, fuelEmpty)...)
	result.Step = &ControlStep{
		Idx:         1,
		Input:       input,
		Delta:       d,
		SpeedBefore: speedBefore,
		SpeedAfter:  state.CurrentSpeed,
		FuelBefore:  fuelBefore,
		FuelAfter:   state.Fuel,
		AtLimiter:   atLimiter,
		FuelEmpty:   fuelEmpty,
		Message:     message,
	}

	// Auto-save session after the control
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after control: %v\n", sessionID, err)
	}

	return result, nil
}

// BulkControl executes multiple control inputs in sequence
func (s *dashboardServiceImpl) BulkControl(ctx context.Context, sessionID string, inputs []engine.ControlInput, reset bool) (*BulkControlResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()
	result := &BulkControlResult{
		RequestedControls: len(inputs),
		Events:            make([]DashboardEvent, 0),
		Success:           true,
		StartSpeed:        state.CurrentSpeed,
		StartFuel:         state.Fuel,
		Message:           state.Message,
	}

	// Handle reset
	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, DashboardEvent{
			Type:      "reset",
			Message:   "Vehicle reset to initial state",
			Timestamp: time.Now(),
		})
		result.StartSpeed = 0
		result.StartFuel = sess.Engine.GetFuel()
	}

	// Limit controls to prevent abuse
	if len(inputs) > engine.MaxBulkControls {
		result.Truncated = true
		result.Limit = engine.MaxBulkControls
		inputs = inputs[:engine.MaxBulkControls]
	}

	for i, input := range inputs {
		prevState := sess.Engine.GetState()
		speedBefore := prevState.CurrentSpeed
		fuelBefore := prevState.Fuel

		message, ok := sess.Engine.Apply(input)
		if !ok {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("control %d rejected: unknown input %q", i+1, input)
			result.StoppedOnControl = i + 1
			break
		}

		result.ControlsExecuted++
		currState := sess.Engine.GetState()
		atLimiter := input == engine.InputAccelerate && speedBefore+engine.DefaultDelta > currState.MaxSpeed
		fuelEmpty := currState.Fuel == engine.MinFuel && fuelBefore > engine.MinFuel

		result.Events = append(result.Events, s.extractControlEvents(sess, input, atLimiter, fuelEmpty)...)
		result.Steps = append(result.Steps, ControlStep{
			Idx:         i + 1,
			Input:       input,
			Delta:       engine.DefaultDelta,
			SpeedBefore: speedBefore,
			SpeedAfter:  currState.CurrentSpeed,
			FuelBefore:  fuelBefore,
			FuelAfter:   currState.Fuel,
			AtLimiter:   atLimiter,
			FuelEmpty:   fuelEmpty,
			Message:     message,
		})
	}

	endState := sess.Engine.GetState()
	result.VehicleState = endState
	result.EndSpeed = endState.CurrentSpeed
	result.EndFuel = endState.Fuel
	result.Message = endState.Message

	// Auto-save session after bulk controls
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after bulk controls: %v\n", sessionID, err)
	}

	return result, nil
}

// Reset resets a dashboard session to its initial state
func (s *dashboardServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.VehicleState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// GetVehicleState retrieves the current vehicle state
func (s *dashboardServiceImpl) GetVehicleState(ctx context.Context, sessionID string) (*engine.VehicleState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetTelemetry returns the current telemetry frame for a session
func (s *dashboardServiceImpl) GetTelemetry(ctx context.Context, sessionID string) (*engine.TelemetryFrame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	frame := sess.Smoother.Frame(sess.Engine.GetState())
	return &frame, nil
}

// TickTelemetry advances every session's smoother one step and returns the
// frames that warrant a re-render. Sessions whose smoothers have settled
// produce nothing, so an idle dashboard is silent between control inputs.
func (s *dashboardServiceImpl) TickTelemetry(ctx context.Context) ([]TelemetryUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updates []TelemetryUpdate
	for _, sess := range s.sessions.List() {
		state := sess.Engine.GetState()
		if sess.Smoother.Tick(state.CurrentSpeed) {
			updates = append(updates, TelemetryUpdate{
				SessionID: sess.ID,
				Frame:     sess.Smoother.Frame(state),
			})
		}
	}

	return updates, nil
}

// GetControlLog returns paginated control history
func (s *dashboardServiceImpl) GetControlLog(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetControlLog()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var controls []engine.ControlLogEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			controls = append(controls, history[i])
		}
	} else {
		if start < total {
			controls = history[start:end]
		}
	}

	if controls == nil {
		controls = []engine.ControlLogEntry{}
	}

	return &HistoryResponse{
		Controls:      controls,
		TotalControls: total,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    totalPages,
		HasNext:       opts.Page < totalPages,
		HasPrevious:   opts.Page > 1,
	}, nil
}

// ListConfigs returns available vehicle configurations
func (s *dashboardServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific vehicle configuration
func (s *dashboardServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.VehicleConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a vehicle configuration to disk
func (s *dashboardServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.VehicleConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// extractControlEvents generates events from a control input
func (s *dashboardServiceImpl) extractControlEvents(sess *Session, input engine.ControlInput, atLimiter, fuelEmpty bool) []DashboardEvent {
	state := sess.Engine.GetState()
	events := []DashboardEvent{
		{
			Type:      "control",
			Message:   state.Message,
			Timestamp: time.Now(),
			Speed:     state.CurrentSpeed,
		},
	}

	if atLimiter {
		events = append(events, DashboardEvent{
			Type:      "max_speed",
			Message:   fmt.Sprintf("%s pinned at the %s mph limiter", state.Label(), engine.FormatSpeed(state.MaxSpeed)),
			Timestamp: time.Now(),
			Speed:     state.CurrentSpeed,
		})
	}

	if fuelEmpty {
		events = append(events, DashboardEvent{
			Type:      "fuel_empty",
			Message:   "Fuel gauge has hit empty",
			Timestamp: time.Now(),
			Speed:     state.CurrentSpeed,
		})
	}

	return events
}
