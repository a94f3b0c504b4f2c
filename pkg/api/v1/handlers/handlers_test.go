package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stratolab/strato/config"
	"github.com/stratolab/strato/internal/db/models"
	"github.com/stratolab/strato/pkg/api/v1/handlers"
	"github.com/stratolab/strato/pkg/api/v1/routes"
)

type mockInstanceService struct {
	instances map[uint]*models.Instance
	order     []uint
}

func newMockInstanceService(instances ...*models.Instance) *mockInstanceService {
	m := &mockInstanceService{instances: map[uint]*models.Instance{}}
	for _, instance := range instances {
		m.instances[instance.ID] = instance
		m.order = append(m.order, instance.ID)
	}
	return m
}

func (m *mockInstanceService) ListInstances(context.Context) ([]models.Instance, error) {
	out := make([]models.Instance, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.instances[id])
	}
	return out, nil
}

func (m *mockInstanceService) GetInstance(_ context.Context, id uint) (*models.Instance, error) {
	instance, ok := m.instances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return instance, nil
}

func (m *mockInstanceService) CreateInstance(_ context.Context, instance *models.Instance) error {
	instance.ID = uint(len(m.order) + 1)
	m.instances[instance.ID] = instance
	m.order = append(m.order, instance.ID)
	return nil
}

func (m *mockInstanceService) DeleteInstance(_ context.Context, id uint) error {
	if _, ok := m.instances[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.instances, id)
	return nil
}

func (m *mockInstanceService) GetMetadata(_ context.Context, id uint) (models.Metadata, error) {
	instance, ok := m.instances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	metadata := models.Metadata{}
	for k, v := range instance.Metadata {
		metadata[k] = v
	}
	return metadata, nil
}

// ReplaceMetadata mirrors the repository contract: an update that
// matches no instance reports gorm.ErrRecordNotFound.
func (m *mockInstanceService) ReplaceMetadata(_ context.Context, id uint, metadata models.Metadata) (models.Metadata, error) {
	instance, ok := m.instances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	instance.Metadata = metadata
	return metadata, nil
}

func (m *mockInstanceService) DeleteMetadataItem(_ context.Context, id uint, key string) error {
	instance, ok := m.instances[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(instance.Metadata, key)
	return nil
}

type mockSnapshotService struct {
	created   int
	snapshots []models.Snapshot
}

func (m *mockSnapshotService) CreateSnapshot(_ context.Context, instanceID uint, name string) (*models.Snapshot, error) {
	m.created++
	if name == "" {
		name = fmt.Sprintf("snap-%d", m.created)
	}
	snapshot := models.Snapshot{
		Model:      gorm.Model{ID: uint(m.created)},
		InstanceID: instanceID,
		Name:       name,
		Status:     models.SnapshotStatusPending,
	}
	m.snapshots = append(m.snapshots, snapshot)
	return &snapshot, nil
}

func (m *mockSnapshotService) ListSnapshots(_ context.Context, instanceID uint) ([]models.Snapshot, error) {
	out := make([]models.Snapshot, 0, len(m.snapshots))
	for _, snapshot := range m.snapshots {
		if snapshot.InstanceID == instanceID {
			out = append(out, snapshot)
		}
	}
	return out, nil
}

func testInstance(id uint, name string, state models.PowerState, metadata models.Metadata) *models.Instance {
	return &models.Instance{
		Model:      gorm.Model{ID: id},
		Name:       name,
		PowerState: state,
		Metadata:   metadata,
	}
}

func newTestApp(cfg *config.Config, instances *mockInstanceService, snapshots *mockSnapshotService) *fiber.App {
	allowed := func(_ context.Context, requested int) int {
		if requested < cfg.QuotaMetadataItems {
			return requested
		}
		return cfg.QuotaMetadataItems
	}
	api := handlers.NewAPIHandler(cfg, instances, snapshots, allowed)
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.RegisterRoutes(app, api)
	return app
}

func defaultConfig() *config.Config {
	return &config.Config{
		OSAPIMaxLimit:          100,
		AllowInstanceSnapshots: true,
		QuotaMetadataItems:     5,
	}
}

func TestListInstancesPagination(t *testing.T) {
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, nil),
		testInstance(2, "two", models.PowerStateShutoff, nil),
		testInstance(3, "three", models.PowerStateBuilding, nil),
	)
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedNames  []string
		expectedError  string
	}{
		{
			name:           "no_params_returns_all",
			query:          "",
			expectedStatus: fiber.StatusOK,
			expectedNames:  []string{"one", "two", "three"},
		},
		{
			name:           "offset_and_limit_window",
			query:          "?offset=1&limit=1",
			expectedStatus: fiber.StatusOK,
			expectedNames:  []string{"two"},
		},
		{
			name:           "marker_resumes_after_match",
			query:          "?marker=1",
			expectedStatus: fiber.StatusOK,
			expectedNames:  []string{"two", "three"},
		},
		{
			name:           "invalid_limit",
			query:          "?limit=abc",
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  "limit param must be an integer",
		},
		{
			name:           "negative_offset",
			query:          "?offset=-2",
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  "offset param must be positive",
		},
		{
			name:           "marker_not_found",
			query:          "?marker=99",
			expectedStatus: fiber.StatusBadRequest,
			expectedError:  "marker [99] not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/instances"+tt.query, nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			require.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			if tt.expectedError != "" {
				var errResp struct {
					Error string `json:"error"`
				}
				require.NoError(t, json.Unmarshal(body, &errResp))
				assert.Equal(t, tt.expectedError, errResp.Error)
				return
			}

			var list struct {
				Rows []struct {
					Name   string `json:"name"`
					Status string `json:"status"`
				} `json:"rows"`
			}
			require.NoError(t, json.Unmarshal(body, &list))
			names := make([]string, 0, len(list.Rows))
			for _, row := range list.Rows {
				names = append(names, row.Name)
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestListInstancesDerivesStatus(t *testing.T) {
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, nil),
	)
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/instances", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"ACTIVE"`)
}

func TestGetInstanceByHref(t *testing.T) {
	service := newMockInstanceService(
		testInstance(7, "seven", models.PowerStatePaused, nil),
	)
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/instances/7", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"PAUSED"`)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/instances/abc", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/v1/instances/99", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetMetadataXML(t *testing.T) {
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, models.Metadata{"color": "blue"}),
	)
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	req := httptest.NewRequest("GET", "/api/v1/instances/1/metadata", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationXML)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `<meta key="color">blue</meta>`)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "xml")
}

func TestReplaceMetadataFromXML(t *testing.T) {
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, models.Metadata{"old": "gone"}),
	)
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	payload := `<metadata><meta key="a">1</meta><meta key="b">2</meta></metadata>`
	req := httptest.NewRequest("PUT", "/api/v1/instances/1/metadata", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, models.Metadata{"a": "1", "b": "2"}, service.instances[1].Metadata)
}

func TestReplaceMetadataMissingInstance(t *testing.T) {
	service := newMockInstanceService()
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	payload := `{"metadata": {"a": "1"}}`
	req := httptest.NewRequest("PUT", "/api/v1/instances/99/metadata", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReplaceMetadataMalformedXML(t *testing.T) {
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, nil),
	)
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	req := httptest.NewRequest("PUT", "/api/v1/instances/1/metadata", strings.NewReader("<metadata>"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)

	resp, err := app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateMetadataQuotaExceeded(t *testing.T) {
	cfg := defaultConfig()
	cfg.QuotaMetadataItems = 2
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, models.Metadata{"a": "1", "b": "2"}),
	)
	app := newTestApp(cfg, service, &mockSnapshotService{})

	payload := `{"metadata": {"c": "3"}}`
	req := httptest.NewRequest("POST", "/api/v1/instances/1/metadata", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get(fiber.HeaderRetryAfter))
	// The oversized request must not be persisted
	assert.Equal(t, models.Metadata{"a": "1", "b": "2"}, service.instances[1].Metadata)
}

func TestUpdateMetadataItem(t *testing.T) {
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, models.Metadata{"color": "blue"}),
	)
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	tests := []struct {
		name           string
		key            string
		payload        string
		expectedStatus int
	}{
		{
			name:           "matching_key_updates",
			key:            "color",
			payload:        `<meta key="color">green</meta>`,
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "mismatched_key_rejected",
			key:            "color",
			payload:        `<meta key="size">xl</meta>`,
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/api/v1/instances/1/metadata/"+tt.key, strings.NewReader(tt.payload))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationXML)

			resp, err := app.Test(req)
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	assert.Equal(t, "green", service.instances[1].Metadata["color"])
}

func TestDeleteMetadataItem(t *testing.T) {
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, models.Metadata{"color": "blue"}),
	)
	app := newTestApp(defaultConfig(), service, &mockSnapshotService{})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/v1/instances/1/metadata/color", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)
	assert.NotContains(t, service.instances[1].Metadata, "color")
}

func TestListSnapshots(t *testing.T) {
	snapshots := &mockSnapshotService{}
	service := newMockInstanceService(
		testInstance(1, "one", models.PowerStateRunning, nil),
		testInstance(2, "two", models.PowerStateRunning, nil),
	)
	app := newTestApp(defaultConfig(), service, snapshots)

	for _, target := range []string{"/api/v1/instances/1/snapshot", "/api/v1/instances/2/snapshot"} {
		resp, err := app.Test(httptest.NewRequest("POST", target, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/instances/1/snapshots", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var list struct {
		Snapshots []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"snapshots"`
	}
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list.Snapshots, 1)
	assert.Equal(t, "snap-1", list.Snapshots[0].Name)
	assert.Equal(t, "pending", list.Snapshots[0].Status)
}

func TestCreateSnapshotFeatureGate(t *testing.T) {
	tests := []struct {
		name           string
		allow          bool
		expectedStatus int
		expectedCalls  int
	}{
		{
			name:           "snapshots_enabled",
			allow:          true,
			expectedStatus: fiber.StatusCreated,
			expectedCalls:  1,
		},
		{
			name:           "snapshots_disabled",
			allow:          false,
			expectedStatus: fiber.StatusBadRequest,
			expectedCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.AllowInstanceSnapshots = tt.allow
			snapshots := &mockSnapshotService{}
			service := newMockInstanceService(
				testInstance(1, "one", models.PowerStateRunning, nil),
			)
			app := newTestApp(cfg, service, snapshots)

			resp, err := app.Test(httptest.NewRequest("POST", "/api/v1/instances/1/snapshot", nil))
			require.NoError(t, err)
			_ = resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, tt.expectedCalls, snapshots.created)
		})
	}
}
