package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/wricardo/car-dashboard/dash/engine"
	"github.com/wricardo/car-dashboard/dash/service"
	"github.com/wricardo/car-dashboard/transport/websocket"
)

// MockDashboardService implements service.DashboardService for testing
type MockDashboardService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Control Operations
	ControlFunc     func(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*service.ControlResult, error)
	BulkControlFunc func(ctx context.Context, sessionID string, inputs []engine.ControlInput, reset bool) (*service.BulkControlResult, error)
	ResetFunc       func(ctx context.Context, sessionID string) (*engine.VehicleState, error)

	// Vehicle State & Telemetry
	GetVehicleStateFunc func(ctx context.Context, sessionID string) (*engine.VehicleState, error)
	GetTelemetryFunc    func(ctx context.Context, sessionID string) (*engine.TelemetryFrame, error)
	GetControlLogFunc   func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.VehicleConfig, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.VehicleConfig) error
}

// Session Management
func (m *MockDashboardService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{
		ID:         "test-session",
		ConfigName: configName,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockDashboardService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:         sessionID,
		ConfigName: "test-config",
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockDashboardService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockDashboardService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

// Control Operations
func (m *MockDashboardService) Control(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*service.ControlResult, error) {
	if m.ControlFunc != nil {
		return m.ControlFunc(ctx, sessionID, input, delta, reset)
	}
	return &service.ControlResult{
		Success:      true,
		VehicleState: &engine.VehicleState{},
	}, nil
}

func (m *MockDashboardService) BulkControl(ctx context.Context, sessionID string, inputs []engine.ControlInput, reset bool) (*service.BulkControlResult, error) {
	if m.BulkControlFunc != nil {
		return m.BulkControlFunc(ctx, sessionID, inputs, reset)
	}
	return &service.BulkControlResult{
		Success:      true,
		VehicleState: &engine.VehicleState{},
	}, nil
}

func (m *MockDashboardService) Reset(ctx context.Context, sessionID string) (*engine.VehicleState, error) {
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, sessionID)
	}
	return &engine.VehicleState{}, nil
}

// Vehicle State & Telemetry
func (m *MockDashboardService) GetVehicleState(ctx context.Context, sessionID string) (*engine.VehicleState, error) {
	if m.GetVehicleStateFunc != nil {
		return m.GetVehicleStateFunc(ctx, sessionID)
	}
	return &engine.VehicleState{}, nil
}

func (m *MockDashboardService) GetTelemetry(ctx context.Context, sessionID string) (*engine.TelemetryFrame, error) {
	if m.GetTelemetryFunc != nil {
		return m.GetTelemetryFunc(ctx, sessionID)
	}
	return &engine.TelemetryFrame{}, nil
}

func (m *MockDashboardService) TickTelemetry(ctx context.Context) ([]service.TelemetryUpdate, error) {
	return nil, nil
}

func (m *MockDashboardService) GetControlLog(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetControlLogFunc != nil {
		return m.GetControlLogFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Controls:      []engine.ControlLogEntry{},
		TotalControls: 0,
		Page:          opts.Page,
		PageSize:      opts.Limit,
		TotalPages:    1,
	}, nil
}

// Configuration
func (m *MockDashboardService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockDashboardService) LoadConfig(ctx context.Context, configName string) (*engine.VehicleConfig, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	return &engine.VehicleConfig{
		Name:        configName,
		Description: "Test config",
	}, nil
}

func (m *MockDashboardService) SaveConfig(ctx context.Context, configName string, config *engine.VehicleConfig) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(mockService *MockDashboardService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session with default config",
			requestBody: nil,
			setupMock: func(m *MockDashboardService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return &service.SessionInfo{
						ID:             "sess-123",
						ConfigName:     "roadster",
						CreatedAt:      time.Now(),
						LastAccessedAt: time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "sess-123" {
					t.Errorf("Expected session ID sess-123, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Create session with specific config",
			requestBody: map[string]string{"config_id": "classic"},
			setupMock: func(m *MockDashboardService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					if configName != "classic" {
						t.Errorf("Expected config name 'classic', got %s", configName)
					}
					return &service.SessionInfo{
						ID:         "sess-456",
						ConfigName: configName,
						CreatedAt:  time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ConfigName != "classic" {
					t.Errorf("Expected config name 'classic', got %s", resp.ConfigName)
				}
			},
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockDashboardService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions", tt.requestBody)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "List multiple sessions",
			setupMock: func(m *MockDashboardService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{
						{ID: "sess-1", ConfigName: "roadster"},
						{ID: "sess-2", ConfigName: "classic"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["count"].(float64) != 2 {
					t.Errorf("Expected count 2, got %v", resp["count"])
				}
				sessions := resp["sessions"].([]interface{})
				if len(sessions) != 2 {
					t.Errorf("Expected 2 sessions, got %d", len(sessions))
				}
			},
		},
		{
			name: "Handle empty session list",
			setupMock: func(m *MockDashboardService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["count"].(float64) != 0 {
					t.Errorf("Expected count 0, got %v", resp["count"])
				}
			},
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockDashboardService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return nil, fmt.Errorf("storage error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "storage error" {
					t.Errorf("Expected error 'storage error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/sessions", nil)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockDashboardService)
		expectedStatus int
	}{
		{
			name:      "Get existing session",
			sessionID: "sess-123",
			setupMock: func(m *MockDashboardService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					if sessionID != "sess-123" {
						return nil, fmt.Errorf("session not found")
					}
					return &service.SessionInfo{
						ID:         sessionID,
						ConfigName: "test-config",
						CreatedAt:  time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "Session not found",
			sessionID: "nonexistent",
			setupMock: func(m *MockDashboardService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("session not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/sessions/"+tt.sessionID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleGetSession(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestDeleteSession(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockDashboardService)
		expectedStatus int
	}{
		{
			name:      "Delete existing session",
			sessionID: "sess-123",
			setupMock: func(m *MockDashboardService) {
				m.DeleteSessionFunc = func(ctx context.Context, sessionID string) error {
					if sessionID != "sess-123" {
						return fmt.Errorf("session not found")
					}
					return nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "Delete non-existent session",
			sessionID: "nonexistent",
			setupMock: func(m *MockDashboardService) {
				m.DeleteSessionFunc = func(ctx context.Context, sessionID string) error {
					return fmt.Errorf("session not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("DELETE", "/api/sessions/"+tt.sessionID, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleDeleteSession(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

// Vehicle Operation Tests

func TestAccelerate(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		requestBody    map[string]interface{}
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Default pedal press",
			sessionID:   "sess-123",
			requestBody: nil,
			setupMock: func(m *MockDashboardService) {
				m.ControlFunc = func(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*service.ControlResult, error) {
					if input != engine.InputAccelerate {
						t.Errorf("Expected accelerate input, got %s", input)
					}
					if delta != nil {
						t.Errorf("Expected nil delta for bare press, got %v", *delta)
					}
					return &service.ControlResult{
						Success: true,
						Message: "Current speed is 10 mph.",
						VehicleState: &engine.VehicleState{
							CurrentSpeed: 10,
							RPM:          500,
						},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.ControlResult
				parseResponse(t, w, &resp)
				if !resp.Success {
					t.Error("Expected success to be true")
				}
				if resp.VehicleState.CurrentSpeed != 10 {
					t.Errorf("Expected speed 10, got %v", resp.VehicleState.CurrentSpeed)
				}
			},
		},
		{
			name:        "Custom delta",
			sessionID:   "sess-123",
			requestBody: map[string]interface{}{"delta": 25.0},
			setupMock: func(m *MockDashboardService) {
				m.ControlFunc = func(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*service.ControlResult, error) {
					if delta == nil || *delta != 25.0 {
						t.Errorf("Expected delta 25, got %v", delta)
					}
					return &service.ControlResult{
						Success:      true,
						VehicleState: &engine.VehicleState{CurrentSpeed: 25},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Press with reset",
			sessionID:   "sess-123",
			requestBody: map[string]interface{}{"reset": true},
			setupMock: func(m *MockDashboardService) {
				m.ControlFunc = func(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*service.ControlResult, error) {
					if !reset {
						t.Error("Expected reset to be true")
					}
					return &service.ControlResult{
						Success:      true,
						VehicleState: &engine.VehicleState{CurrentSpeed: 10, Fuel: 99.8},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Session not found",
			sessionID:   "nonexistent",
			requestBody: nil,
			setupMock: func(m *MockDashboardService) {
				m.ControlFunc = func(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*service.ControlResult, error) {
					return nil, fmt.Errorf("session not found")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/"+tt.sessionID+"/accelerate", tt.requestBody)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleAccelerate(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestBrake(t *testing.T) {
	mockService := &MockDashboardService{
		ControlFunc: func(ctx context.Context, sessionID string, input engine.ControlInput, delta *float64, reset bool) (*service.ControlResult, error) {
			if input != engine.InputBrake {
				t.Errorf("Expected brake input, got %s", input)
			}
			return &service.ControlResult{
				Success: true,
				Message: "Current speed is now 0 mph.",
				VehicleState: &engine.VehicleState{
					CurrentSpeed: 0,
					RPM:          0,
				},
			}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := makeRequest("POST", "/api/sessions/sess-123/brake", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "sess-123"})

	server.handleBrake(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp service.ControlResult
	parseResponse(t, w, &resp)
	if resp.Message != "Current speed is now 0 mph." {
		t.Errorf("Unexpected message: %q", resp.Message)
	}
}

func TestBulkControls(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		requestBody    map[string]interface{}
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Multiple valid controls",
			sessionID:   "sess-123",
			requestBody: map[string]interface{}{"controls": []string{"accelerate", "accelerate", "brake"}},
			setupMock: func(m *MockDashboardService) {
				m.BulkControlFunc = func(ctx context.Context, sessionID string, inputs []engine.ControlInput, reset bool) (*service.BulkControlResult, error) {
					if len(inputs) != 3 {
						t.Errorf("Expected 3 controls, got %d", len(inputs))
					}
					return &service.BulkControlResult{
						Success:          true,
						VehicleState:     &engine.VehicleState{CurrentSpeed: 10},
						ControlsExecuted: 3,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.BulkControlResult
				parseResponse(t, w, &resp)
				if resp.ControlsExecuted != 3 {
					t.Errorf("Expected 3 controls executed, got %d", resp.ControlsExecuted)
				}
			},
		},
		{
			name:        "Bulk controls with reset",
			sessionID:   "sess-123",
			requestBody: map[string]interface{}{"controls": []string{"accelerate"}, "reset": true},
			setupMock: func(m *MockDashboardService) {
				m.BulkControlFunc = func(ctx context.Context, sessionID string, inputs []engine.ControlInput, reset bool) (*service.BulkControlResult, error) {
					if !reset {
						t.Error("Expected reset to be true")
					}
					return &service.BulkControlResult{
						Success:      true,
						VehicleState: &engine.VehicleState{CurrentSpeed: 10, Fuel: 99.8},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Empty controls array",
			sessionID:      "sess-123",
			requestBody:    map[string]interface{}{"controls": []string{}},
			setupMock:      nil,
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.BulkControlResult
				parseResponse(t, w, &resp)
				if resp.ControlsExecuted != 0 {
					t.Errorf("Expected 0 controls executed for empty array, got %d", resp.ControlsExecuted)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/"+tt.sessionID+"/controls", tt.requestBody)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleBulkControls(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "Reset existing session",
			sessionID: "sess-123",
			setupMock: func(m *MockDashboardService) {
				m.ResetFunc = func(ctx context.Context, sessionID string) (*engine.VehicleState, error) {
					return &engine.VehicleState{
						CurrentSpeed: 0,
						RPM:          0,
						Fuel:         100,
						Temperature:  70,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["message"] != "Vehicle reset successfully" {
					t.Errorf("Expected success message, got %s", resp["message"])
				}
				state := resp["state"].(map[string]interface{})
				if state["fuel"].(float64) != 100 {
					t.Error("Expected fuel to be reset to 100")
				}
			},
		},
		{
			name:      "Reset non-existent session",
			sessionID: "nonexistent",
			setupMock: func(m *MockDashboardService) {
				m.ResetFunc = func(ctx context.Context, sessionID string) (*engine.VehicleState, error) {
					return nil, fmt.Errorf("session not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("POST", "/api/sessions/"+tt.sessionID+"/reset", nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleReset(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetHistory(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		queryParams    string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Default pagination",
			sessionID:   "sess-123",
			queryParams: "",
			setupMock: func(m *MockDashboardService) {
				m.GetControlLogFunc = func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
					if opts.Page != 1 || opts.Limit != 20 {
						t.Errorf("Expected default page=1, limit=20, got page=%d, limit=%d", opts.Page, opts.Limit)
					}
					return &service.HistoryResponse{
						Controls: []engine.ControlLogEntry{
							{Action: engine.InputAccelerate},
							{Action: engine.InputBrake},
						},
						TotalControls: 5,
						Page:          1,
						PageSize:      20,
						TotalPages:    1,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.HistoryResponse
				parseResponse(t, w, &resp)
				if resp.PageSize != 20 {
					t.Errorf("Expected page size 20, got %d", resp.PageSize)
				}
			},
		},
		{
			name:        "Custom pagination parameters",
			sessionID:   "sess-123",
			queryParams: "?page=2&limit=10&order=asc",
			setupMock: func(m *MockDashboardService) {
				m.GetControlLogFunc = func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
					if opts.Page != 2 || opts.Limit != 10 || opts.Order != "asc" {
						t.Errorf("Expected page=2, limit=10, order=asc, got page=%d, limit=%d, order=%s",
							opts.Page, opts.Limit, opts.Order)
					}
					return &service.HistoryResponse{
						Page:     2,
						PageSize: 10,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.HistoryResponse
				parseResponse(t, w, &resp)
				if resp.Page != 2 || resp.PageSize != 10 {
					t.Errorf("Expected page 2 with size 10, got page %d with size %d",
						resp.Page, resp.PageSize)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/sessions/"+tt.sessionID+"/history"+tt.queryParams, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleGetHistory(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetVehicleState(t *testing.T) {
	tests := []struct {
		name           string
		sessionID      string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:      "Get existing vehicle state",
			sessionID: "sess-123",
			setupMock: func(m *MockDashboardService) {
				m.GetVehicleStateFunc = func(ctx context.Context, sessionID string) (*engine.VehicleState, error) {
					return &engine.VehicleState{
						Make:         "Tesla",
						Model:        "Roadster",
						CurrentSpeed: 50,
						RPM:          2500,
						Fuel:         90,
						Temperature:  80,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp engine.VehicleState
				parseResponse(t, w, &resp)
				if resp.CurrentSpeed != 50 || resp.RPM != 2500 {
					t.Errorf("Expected speed=50, rpm=2500, got speed=%v, rpm=%v", resp.CurrentSpeed, resp.RPM)
				}
			},
		},
		{
			name:      "Session not found",
			sessionID: "nonexistent",
			setupMock: func(m *MockDashboardService) {
				m.GetVehicleStateFunc = func(ctx context.Context, sessionID string) (*engine.VehicleState, error) {
					return nil, fmt.Errorf("session not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/sessions/"+tt.sessionID+"/state", nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.sessionID})

			server.handleGetVehicleState(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetTelemetry(t *testing.T) {
	mockService := &MockDashboardService{
		GetTelemetryFunc: func(ctx context.Context, sessionID string) (*engine.TelemetryFrame, error) {
			return &engine.TelemetryFrame{
				DisplayedSpeed: 8,
				RPM:            500,
				Fuel:           99.8,
				Temperature:    72,
			}, nil
		},
	}

	server := setupTestServer(mockService)
	w := httptest.NewRecorder()
	req := makeRequest("GET", "/api/sessions/sess-123/telemetry", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "sess-123"})

	server.handleGetTelemetry(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp engine.TelemetryFrame
	parseResponse(t, w, &resp)
	if resp.DisplayedSpeed != 8 {
		t.Errorf("Expected displayed speed 8, got %v", resp.DisplayedSpeed)
	}
}

func TestListConfigs(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "List available configs",
			setupMock: func(m *MockDashboardService) {
				m.ListConfigsFunc = func(ctx context.Context) ([]*service.ConfigInfo, error) {
					return []*service.ConfigInfo{
						{Name: "roadster", Description: "Top-spec roadster"},
						{Name: "classic", Description: "Vintage cruiser"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp []*service.ConfigInfo
				parseResponse(t, w, &resp)
				if len(resp) != 2 {
					t.Errorf("Expected 2 configs, got %d", len(resp))
				}
			},
		},
		{
			name: "Handle service error",
			setupMock: func(m *MockDashboardService) {
				m.ListConfigsFunc = func(ctx context.Context) ([]*service.ConfigInfo, error) {
					return nil, fmt.Errorf("config error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/configs", nil)

			server.handleListConfigs(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name           string
		configName     string
		setupMock      func(*MockDashboardService)
		expectedStatus int
	}{
		{
			name:       "Get existing config",
			configName: "roadster",
			setupMock: func(m *MockDashboardService) {
				m.LoadConfigFunc = func(ctx context.Context, configName string) (*engine.VehicleConfig, error) {
					if configName != "roadster" {
						return nil, fmt.Errorf("config not found")
					}
					return &engine.VehicleConfig{
						Name:        "roadster",
						Description: "Top-spec roadster",
						MaxSpeed:    150,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:       "Strip .json extension",
			configName: "classic.json",
			setupMock: func(m *MockDashboardService) {
				m.LoadConfigFunc = func(ctx context.Context, configName string) (*engine.VehicleConfig, error) {
					if configName != "classic" {
						t.Errorf("Expected config name 'classic' (without .json), got %s", configName)
					}
					return &engine.VehicleConfig{Name: "classic"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:       "Config not found",
			configName: "nonexistent",
			setupMock: func(m *MockDashboardService) {
				m.LoadConfigFunc = func(ctx context.Context, configName string) (*engine.VehicleConfig, error) {
					return nil, fmt.Errorf("config not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := makeRequest("GET", "/api/configs/"+tt.configName, nil)
			req = mux.SetURLVars(req, map[string]string{"name": tt.configName})

			server.handleGetConfig(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestUnifiedSessions(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockDashboardService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Get all sessions",
			queryParams: "",
			setupMock: func(m *MockDashboardService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{
						{
							ID:         "sess-1",
							ConfigName: "roadster",
							VehicleState: &engine.VehicleState{
								CurrentSpeed: 80,
							},
							VehicleConfig: &engine.VehicleConfig{
								MaxSpeed: 150,
							},
						},
						{
							ID:         "sess-2",
							ConfigName: "roadster",
							VehicleState: &engine.VehicleState{
								CurrentSpeed: 60,
							},
						},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				if resp["config_name"] != "roadster" {
					t.Errorf("Expected config_name 'roadster', got %v", resp["config_name"])
				}
				if resp["max_speed"].(float64) != 150 {
					t.Errorf("Expected max_speed 150, got %v", resp["max_speed"])
				}
				sessions := resp["sessions"].([]interface{})
				if len(sessions) != 2 {
					t.Errorf("Expected 2 sessions, got %d", len(sessions))
				}
			},
		},
		{
			name:        "Filter by session IDs",
			queryParams: "?sessionIds=sess-1,sess-3",
			setupMock: func(m *MockDashboardService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					if sessionID == "sess-1" {
						return &service.SessionInfo{
							ID:           "sess-1",
							ConfigName:   "roadster",
							VehicleState: &engine.VehicleState{},
						}, nil
					}
					if sessionID == "sess-3" {
						return &service.SessionInfo{
							ID:           "sess-3",
							ConfigName:   "classic",
							VehicleState: &engine.VehicleState{},
						}, nil
					}
					return nil, fmt.Errorf("not found")
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				sessions := resp["sessions"].([]interface{})
				if len(sessions) != 2 {
					t.Errorf("Expected 2 sessions, got %d", len(sessions))
				}
			},
		},
		{
			name:        "Filter by config name",
			queryParams: "?configName=classic",
			setupMock: func(m *MockDashboardService) {
				m.ListSessionsFunc = func(ctx context.Context) ([]*service.SessionInfo, error) {
					return []*service.SessionInfo{
						{ID: "sess-1", ConfigName: "roadster"},
						{ID: "sess-2", ConfigName: "classic"},
						{ID: "sess-3", ConfigName: "classic"},
						{ID: "sess-4", ConfigName: "commuter"},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]interface{}
				parseResponse(t, w, &resp)
				sessions := resp["sessions"].([]interface{})
				if len(sessions) != 2 {
					t.Errorf("Expected 2 classic sessions, got %d", len(sessions))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/sessions/unified"+tt.queryParams, nil)

			server.handleUnifiedSessions(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestWebSocket(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockDashboardService)
		expectedStatus int
	}{
		{
			name:           "Missing session parameter",
			queryParams:    "",
			setupMock:      nil,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid session",
			queryParams: "?session=invalid",
			setupMock: func(m *MockDashboardService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("session not found")
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "Valid session",
			queryParams: "?session=sess-123",
			setupMock: func(m *MockDashboardService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return &service.SessionInfo{
						ID:         sessionID,
						ConfigName: "test",
					}, nil
				}
			},
			expectedStatus: http.StatusSwitchingProtocols,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockDashboardService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(mockService)
			w := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/ws"+tt.queryParams, nil)

			// For WebSocket upgrade test, we need proper headers
			if tt.expectedStatus == http.StatusSwitchingProtocols {
				req.Header.Set("Upgrade", "websocket")
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
				req.Header.Set("Sec-WebSocket-Version", "13")
			}

			server.handleWebSocket(w, req)

			// WebSocket upgrade fails in unit tests due to httptest.ResponseRecorder limitations
			if tt.expectedStatus == http.StatusSwitchingProtocols {
				// Can't test actual WebSocket upgrade with httptest.ResponseRecorder
				// It doesn't implement http.Hijacker interface
				// We accept 500 error in this case as it indicates the upgrade was attempted
				if w.Code == http.StatusInternalServerError {
					return
				}
			}

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}
