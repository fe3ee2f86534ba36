// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmodes/agentmodes/internal/config"
	"github.com/agentmodes/agentmodes/internal/convert"
	"github.com/agentmodes/agentmodes/internal/storage"
)

func newTestServer(t *testing.T) (http.Handler, *storage.Store) {
	t.Helper()

	store, err := storage.NewStore(&config.DatabaseConfig{
		Driver:   "sqlite",
		Database: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate())
	require.NoError(t, store.Seed(context.Background()))
	t.Cleanup(func() { store.Close() })

	cfg := &config.AppConfig{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Upload: config.UploadConfig{
			MaxFileSizeMB:     5,
			AllowedExtensions: []string{".json", ".yaml", ".yml", ".md", ".markdown"},
		},
	}
	handlers := NewHandlers(store, convert.NewConverter(), cfg.Upload)
	return NewRouter(cfg, handlers), store
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func agentDoc(slug string) map[string]any {
	return map[string]any{
		"slug":         slug,
		"name":         "Code Helper",
		"instructions": "Help with code review and keep the coding standards high.",
		"tools":        []string{"Read", "Write"},
	}
}

func TestGetTemplates_IncludesSeeded(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/templates", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var templates []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &templates))
	assert.Len(t, templates, 5)
	assert.Equal(t, true, templates[0]["is_builtin"])
}

func TestTemplateLifecycle(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/templates", map[string]any{
		"name":        "My Template",
		"description": "mine",
		"category":    "Personal",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResponse(t, rec)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	rec = doJSON(t, handler, http.MethodPut, "/api/v1/templates/"+id, map[string]any{
		"name": "Renamed",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", decodeResponse(t, rec)["name"])

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/templates/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/templates/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTemplate_CreateRequiresName(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/templates", map[string]any{"name": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", decodeResponse(t, rec)["error"])
}

func TestBuiltinTemplateForbidden(t *testing.T) {
	handler, store := newTestServer(t)

	templates, err := store.ListTemplates(context.Background())
	require.NoError(t, err)
	builtin := templates[0]

	rec := doJSON(t, handler, http.MethodPut, "/api/v1/templates/"+builtin.ID, map[string]any{
		"name": "Hacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Cannot update builtin templates", decodeResponse(t, rec)["error"])

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/templates/"+builtin.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Cannot delete builtin templates", decodeResponse(t, rec)["error"])
}

func TestConfigurationLifecycle(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/configurations", map[string]any{
		"name":        "My Setup",
		"config_json": map[string]any{"tools": []string{"Read"}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResponse(t, rec)
	id := created["id"].(string)
	assert.JSONEq(t, `{"tools": ["Read"]}`, created["config_json"].(string))

	// A string-encoded object is also accepted.
	rec = doJSON(t, handler, http.MethodPut, "/api/v1/configurations/"+id, map[string]any{
		"name":        "Renamed",
		"config_json": `{"tools": []}`,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", decodeResponse(t, rec)["name"])

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/configurations", map[string]any{
		"name":        "Broken",
		"config_json": []int{1, 2},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "config_json must be a JSON object", decodeResponse(t, rec)["error"])
}

func TestCustomAgentLifecycle(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/custom-agents", agentDoc("code-helper"))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResponse(t, rec)
	id := created["id"].(string)

	// Defaults applied at the storage boundary.
	assert.Equal(t, "sonnet", created["default_model"])
	assert.Equal(t, float64(50), created["max_turns"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/custom-agents/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := agentDoc("code-helper")
	doc["name"] = "Updated Helper"
	rec = doJSON(t, handler, http.MethodPut, "/api/v1/custom-agents/"+id, doc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Updated Helper", decodeResponse(t, rec)["name"])

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/custom-agents/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCustomAgent_ValidationFailure(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/custom-agents", map[string]any{
		"slug": "AB",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "Agent validation failed", body["error"])

	details := body["details"].([]any)
	assert.Contains(t, details, "Slug must be at least 3 characters")
	assert.Contains(t, details, "Slug must contain only lowercase letters, numbers, and hyphens")
	assert.Contains(t, details, "Missing required field: name")
}

func TestTeamLifecycle(t *testing.T) {
	handler, _ := newTestServer(t)

	// Members must exist as custom agents.
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/custom-agents", agentDoc("code-reviewer"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/teams", map[string]any{
		"slug": "review-team",
		"name": "Review Team",
		"agents": []map[string]any{
			{"slug": "code-reviewer"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeResponse(t, rec)

	team := body["team"].(map[string]any)
	id := team["id"].(string)
	assert.Equal(t, "review-team", team["slug"])

	warnings := body["warnings"].([]any)
	assert.Contains(t, warnings, "Agent at index 0 should have a 'role' field")

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/teams/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/teams/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateTeam_UnknownAgentRejected(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/teams", map[string]any{
		"slug": "ghost-team",
		"name": "Ghost Team",
		"agents": []map[string]any{
			{"slug": "nonexistent-agent", "role": "worker"},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "Team validation failed", body["error"])
	assert.Contains(t, body["details"].([]any), "Agent does not exist: nonexistent-agent")
}

func TestValidateAgentEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/validate/agent", agentDoc("code-helper"))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, true, body["valid"])
	assert.Empty(t, body["errors"])

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/validate/agent", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeResponse(t, rec)
	assert.Equal(t, false, body["valid"])
	assert.Len(t, body["errors"].([]any), 4)
}

func TestValidateTeamEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/validate/team", map[string]any{
		"slug": "some-team",
		"name": "Some Team",
		"agents": []map[string]any{
			{"slug": "missing-agent"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, false, body["valid"])
	assert.Contains(t, body["errors"].([]any), "Agent does not exist: missing-agent")
	assert.Contains(t, body["warnings"].([]any), "Agent at index 0 should have a 'role' field")
}

func TestGetFormats(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/formats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, []any{"claude", "roo", "custom"}, body["formats"])
}

func TestConvertEndpoint(t *testing.T) {
	handler, store := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/convert", map[string]any{
		"source_format": "claude",
		"target_format": "roo",
		"data": map[string]any{
			"name":          "Code Reviewer",
			"description":   "Reviews code",
			"system_prompt": "You review code.",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)

	data := body["data"].(map[string]any)
	assert.Equal(t, "code-reviewer", data["mode"])
	assert.Equal(t, "fa-robot", data["icon"])

	warnings := body["warnings"].([]any)
	assert.Contains(t, warnings, "Field 'icon' was added with default value 'fa-robot'")

	// Successful conversion leaves an audit record.
	convs, err := store.ListConversions(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "claude", convs[0].SourceFormat)
	assert.Equal(t, "roo", convs[0].TargetFormat)
}

func TestConvertEndpoint_UnsupportedFormat(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/convert", map[string]any{
		"source_format": "unknown",
		"target_format": "roo",
		"data":          map[string]any{"name": "x"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeResponse(t, rec)["error"], "unsupported format: unknown")
}

func TestConvertEndpoint_InvalidSourceData(t *testing.T) {
	handler, store := newTestServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/convert", map[string]any{
		"source_format": "claude",
		"target_format": "roo",
		"data":          map[string]any{"name": "No Description"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeResponse(t, rec)
	assert.Contains(t, body["details"].([]any), "Missing required field: 'description'")

	// Failed conversions are not audited.
	convs, err := store.ListConversions(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, uploadRequest(t, "agent.json", `{"name": "Helper", "description": "helps"}`))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	assert.Equal(t, "json", body["file_format"])
	assert.Equal(t, "claude", body["agent_format"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "Helper", data["name"])
	assert.Equal(t, []any{}, data["tools"])
	assert.Equal(t, []any{}, data["skills"])
}

func TestUploadEndpoint_Markdown(t *testing.T) {
	handler, _ := newTestServer(t)

	content := "# Markdown Agent\n\nDoes things.\n\n## Tools\n\n- Read\n"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, uploadRequest(t, "agent.md", content))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeResponse(t, rec)
	assert.Equal(t, "markdown", body["file_format"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "Markdown Agent", data["name"])
	assert.Equal(t, []any{"Read"}, data["tools"])
}

func TestUploadEndpoint_BadExtension(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, uploadRequest(t, "agent.exe", "binary"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeResponse(t, rec)["error"], "Unsupported file extension")
}

func TestTemplateCard(t *testing.T) {
	handler, store := newTestServer(t)

	templates, err := store.ListTemplates(context.Background())
	require.NoError(t, err)
	tpl := templates[0]

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/templates/"+tpl.ID+"/card", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeResponse(t, rec)
	assert.Equal(t, "https://agent-discovery.microsoft.com/v1", body["$schema"])
	agent := body["agent"].(map[string]any)
	assert.Equal(t, "template-"+tpl.ID, agent["id"])
	assert.Equal(t, tpl.Name, agent["name"])

	// YAML export via query parameter.
	rec = doJSON(t, handler, http.MethodGet, "/api/v1/templates/"+tpl.ID+"/card?format=yaml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/x-yaml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Body.String(), "$schema:"))
}

func TestRequestIDHeader(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/formats", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/formats", nil)
	req.Header.Set("X-Request-ID", "client-id-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "client-id-42", rec.Header().Get("X-Request-ID"))
}

func TestNotFoundResponses(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/api/v1/custom-agents/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Custom agent not found", decodeResponse(t, rec)["error"])

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/teams/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Team not found", decodeResponse(t, rec)["error"])
}
