package service

import (
	"context"
	"time"

	"github.com/wricardo/car-dashboard/dash/engine"
)

// DashboardService defines all dashboard-related operations
type DashboardService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Control Operations. A nil delta means the default pedal press of 10.
	Control(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*ControlResult, error)
	BulkControl(ctx context.Context, sessionID string, inputs []engine.ControlInput, reset bool) (*BulkControlResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.VehicleState, error)

	// Vehicle State & Telemetry
	GetVehicleState(ctx context.Context, sessionID string) (*engine.VehicleState, error)
	GetTelemetry(ctx context.Context, sessionID string) (*engine.TelemetryFrame, error)
	TickTelemetry(ctx context.Context) ([]TelemetryUpdate, error)
	GetControlLog(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.VehicleConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.VehicleConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.VehicleConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.VehicleConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles vehicle configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.VehicleConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.VehicleConfig
	SaveConfig(name string, config *engine.VehicleConfig) error
}

// Session represents an active dashboard session
type Session struct {
	ID             string
	Engine         *engine.DashboardEngine
	Smoother       *engine.Smoother
	Config         *engine.VehicleConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
