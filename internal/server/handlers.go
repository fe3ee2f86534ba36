// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/agentmodes/agentmodes/internal/cards"
	"github.com/agentmodes/agentmodes/internal/config"
	"github.com/agentmodes/agentmodes/internal/convert"
	"github.com/agentmodes/agentmodes/internal/docparse"
	"github.com/agentmodes/agentmodes/internal/schema"
	"github.com/agentmodes/agentmodes/internal/storage"
	"github.com/agentmodes/agentmodes/internal/validation"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store     *storage.Store
	converter *convert.Converter
	upload    config.UploadConfig
}

// NewHandlers creates the handler set.
func NewHandlers(store *storage.Store, converter *convert.Converter, upload config.UploadConfig) *Handlers {
	return &Handlers{store: store, converter: converter, upload: upload}
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		getLog().Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeErrorDetails(w http.ResponseWriter, status int, msg string, details []string) {
	writeJSON(w, status, map[string]any{"error": msg, "details": details})
}

// writeStoreError maps a storage error onto 404 (record missing), 403
// (builtin protection), or 500.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg, builtinMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, storage.ErrBuiltinTemplate):
		writeError(w, http.StatusForbidden, builtinMsg)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func strVal(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func strSliceVal(data map[string]any, key string) []string {
	switch t := data[key].(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func intVal(data map[string]any, key string, fallback int) int {
	switch t := data[key].(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	default:
		return fallback
	}
}

func floatVal(data map[string]any, key string) float64 {
	switch t := data[key].(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return 0
	}
}

func mapVal(data map[string]any, key string) map[string]any {
	if m, ok := data[key].(map[string]any); ok {
		return m
	}
	return nil
}

// --- Templates ---

// GetTemplates handles GET /api/v1/templates
func (h *Handlers) GetTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.store.ListTemplates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

// GetTemplate handles GET /api/v1/templates/{id}
func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := h.store.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Template not found", "")
		return
	}
	writeJSON(w, http.StatusOK, template)
}

// templateRequest is the JSON body for template create/update.
type templateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsBuiltin   bool   `json:"is_builtin"`
}

// CreateTemplate handles POST /api/v1/templates
func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var body templateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	template := &storage.AgentTemplate{
		Name:        body.Name,
		Description: body.Description,
		Category:    body.Category,
		IsBuiltin:   body.IsBuiltin,
	}
	if err := h.store.CreateTemplate(r.Context(), template); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, template)
}

// UpdateTemplate handles PUT /api/v1/templates/{id}
func (h *Handlers) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body templateRequest
	if !decodeBody(w, r, &body) {
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.store.UpdateTemplate(r.Context(), id, body.Name, body.Description, body.Category); err != nil {
		writeStoreError(w, err, "Template not found", "Cannot update builtin templates")
		return
	}
	template, err := h.store.GetTemplate(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, template)
}

// DeleteTemplate handles DELETE /api/v1/templates/{id}
func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Template not found", "Cannot delete builtin templates")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Template deleted successfully"})
}

// --- Configurations ---

// GetConfigurations handles GET /api/v1/configurations
func (h *Handlers) GetConfigurations(w http.ResponseWriter, r *http.Request) {
	configs, err := h.store.ListConfigurations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

// GetConfiguration handles GET /api/v1/configurations/{id}
func (h *Handlers) GetConfiguration(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.GetConfiguration(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Configuration not found", "")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// configurationRequest is the JSON body for configuration create/update.
// ConfigJSON accepts either a JSON object or a pre-encoded JSON string.
type configurationRequest struct {
	Name       string          `json:"name"`
	TemplateID *string         `json:"template_id"`
	ConfigJSON json.RawMessage `json:"config_json"`
}

// normalizeConfigJSON checks that the config document is a JSON object and
// returns its compact string encoding.
func normalizeConfigJSON(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "{}", true
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err == nil {
		return string(raw), true
	}

	// A string value may itself hold an encoded object
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if err := json.Unmarshal([]byte(text), &doc); err == nil {
			return text, true
		}
	}
	return "", false
}

// CreateConfiguration handles POST /api/v1/configurations
func (h *Handlers) CreateConfiguration(w http.ResponseWriter, r *http.Request) {
	var body configurationRequest
	if !decodeBody(w, r, &body) {
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	configJSON, ok := normalizeConfigJSON(body.ConfigJSON)
	if !ok {
		writeError(w, http.StatusBadRequest, "config_json must be a JSON object")
		return
	}

	cfg := &storage.AgentConfiguration{
		Name:       body.Name,
		TemplateID: body.TemplateID,
		ConfigJSON: configJSON,
	}
	if err := h.store.CreateConfiguration(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, cfg)
}

// UpdateConfiguration handles PUT /api/v1/configurations/{id}
func (h *Handlers) UpdateConfiguration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var body configurationRequest
	if !decodeBody(w, r, &body) {
		return
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	configJSON, ok := normalizeConfigJSON(body.ConfigJSON)
	if !ok {
		writeError(w, http.StatusBadRequest, "config_json must be a JSON object")
		return
	}

	if _, err := h.store.GetConfiguration(r.Context(), id); err != nil {
		writeStoreError(w, err, "Configuration not found", "")
		return
	}
	if err := h.store.UpdateConfiguration(r.Context(), id, body.Name, configJSON, body.TemplateID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	cfg, err := h.store.GetConfiguration(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// DeleteConfiguration handles DELETE /api/v1/configurations/{id}
func (h *Handlers) DeleteConfiguration(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteConfiguration(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Configuration deleted successfully"})
}

// --- Custom agents ---

// GetCustomAgents handles GET /api/v1/custom-agents
func (h *Handlers) GetCustomAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.store.ListCustomAgents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

// GetCustomAgent handles GET /api/v1/custom-agents/{id}
func (h *Handlers) GetCustomAgent(w http.ResponseWriter, r *http.Request) {
	agent, err := h.store.GetCustomAgent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Custom agent not found", "")
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

// customAgentFromDoc maps a validated agent document onto the storage model.
func customAgentFromDoc(doc map[string]any) *storage.CustomAgent {
	return &storage.CustomAgent{
		Slug:                strVal(doc, "slug"),
		Name:                strVal(doc, "name"),
		Description:         strVal(doc, "description"),
		Instructions:        strVal(doc, "instructions"),
		Category:            strVal(doc, "category"),
		Capabilities:        strSliceVal(doc, "capabilities"),
		Tools:               strSliceVal(doc, "tools"),
		Skills:              strSliceVal(doc, "skills"),
		SystemPrompt:        strVal(doc, "system_prompt"),
		DefaultModel:        defaultStr(strVal(doc, "default_model"), schema.DefaultModel),
		MaxTurns:            intVal(doc, "max_turns", schema.DefaultMaxTurns),
		AllowedEditPatterns: strSliceVal(doc, "allowed_edit_patterns"),
		ConfigSchema:        mapVal(doc, "config_schema"),
	}
}

func defaultStr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// CreateCustomAgent handles POST /api/v1/custom-agents
func (h *Handlers) CreateCustomAgent(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if !decodeBody(w, r, &doc) {
		return
	}

	if ok, errs := validation.ValidateAgent(doc); !ok {
		writeErrorDetails(w, http.StatusBadRequest, "Agent validation failed", errs)
		return
	}

	agent := customAgentFromDoc(doc)
	if err := h.store.CreateCustomAgent(r.Context(), agent); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

// UpdateCustomAgent handles PUT /api/v1/custom-agents/{id}
func (h *Handlers) UpdateCustomAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var doc map[string]any
	if !decodeBody(w, r, &doc) {
		return
	}

	if ok, errs := validation.ValidateAgent(doc); !ok {
		writeErrorDetails(w, http.StatusBadRequest, "Agent validation failed", errs)
		return
	}

	existing, err := h.store.GetCustomAgent(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Custom agent not found", "")
		return
	}

	updated := customAgentFromDoc(doc)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := h.store.UpdateCustomAgent(r.Context(), updated); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCustomAgent handles DELETE /api/v1/custom-agents/{id}
func (h *Handlers) DeleteCustomAgent(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCustomAgent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Custom agent deleted successfully"})
}

// --- Teams ---

// GetTeams handles GET /api/v1/teams
func (h *Handlers) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.store.ListTeams(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// GetTeam handles GET /api/v1/teams/{id}
func (h *Handlers) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.store.GetTeam(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Team not found", "")
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// teamFromDoc maps a validated team document onto the storage model.
func teamFromDoc(doc map[string]any) *storage.Team {
	members := storage.TeamMembers{}
	if raw, ok := doc["agents"].([]any); ok {
		for _, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			member := storage.TeamMember{
				Slug: strVal(m, "slug"),
				Role: strVal(m, "role"),
			}
			if _, present := m["priority"]; present {
				p := intVal(m, "priority", 0)
				member.Priority = &p
			}
			members = append(members, member)
		}
	}

	return &storage.Team{
		Slug:               strVal(doc, "slug"),
		Name:               strVal(doc, "name"),
		Description:        strVal(doc, "description"),
		Agents:             members,
		Orchestrator:       strVal(doc, "orchestrator"),
		Workflow:           mapVal(doc, "workflow"),
		MaxConcurrentTasks: intVal(doc, "max_concurrent_tasks", 0),
		Timeout:            floatVal(doc, "timeout"),
		Metadata:           mapVal(doc, "metadata"),
	}
}

// CreateTeam handles POST /api/v1/teams
func (h *Handlers) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if !decodeBody(w, r, &doc) {
		return
	}

	ctx := r.Context()
	exists := func(slug string) bool { return h.store.AgentExistsBySlug(ctx, slug) }
	ok, errs, warnings := validation.ValidateTeamDetailed(doc, exists)
	if !ok {
		writeErrorDetails(w, http.StatusBadRequest, "Team validation failed", errs)
		return
	}

	team := teamFromDoc(doc)
	if err := h.store.CreateTeam(ctx, team); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"team": team, "warnings": warnings})
}

// UpdateTeam handles PUT /api/v1/teams/{id}
func (h *Handlers) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var doc map[string]any
	if !decodeBody(w, r, &doc) {
		return
	}

	ctx := r.Context()
	exists := func(slug string) bool { return h.store.AgentExistsBySlug(ctx, slug) }
	ok, errs, warnings := validation.ValidateTeamDetailed(doc, exists)
	if !ok {
		writeErrorDetails(w, http.StatusBadRequest, "Team validation failed", errs)
		return
	}

	existing, err := h.store.GetTeam(ctx, id)
	if err != nil {
		writeStoreError(w, err, "Team not found", "")
		return
	}

	updated := teamFromDoc(doc)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := h.store.UpdateTeam(ctx, updated); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"team": updated, "warnings": warnings})
}

// DeleteTeam handles DELETE /api/v1/teams/{id}
func (h *Handlers) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTeam(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Team deleted successfully"})
}

// --- Validation ---

// ValidateAgent handles POST /api/v1/validate/agent
func (h *Handlers) ValidateAgent(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if !decodeBody(w, r, &doc) {
		return
	}
	valid, errs := validation.ValidateAgent(doc)
	writeJSON(w, http.StatusOK, map[string]any{"valid": valid, "errors": errs})
}

// ValidateTeam handles POST /api/v1/validate/team
func (h *Handlers) ValidateTeam(w http.ResponseWriter, r *http.Request) {
	var doc map[string]any
	if !decodeBody(w, r, &doc) {
		return
	}
	ctx := r.Context()
	exists := func(slug string) bool { return h.store.AgentExistsBySlug(ctx, slug) }
	valid, errs, warnings := validation.ValidateTeamDetailed(doc, exists)
	writeJSON(w, http.StatusOK, map[string]any{"valid": valid, "errors": errs, "warnings": warnings})
}

// --- Conversion ---

// GetFormats handles GET /api/v1/formats
func (h *Handlers) GetFormats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"formats": h.converter.SupportedFormats()})
}

// convertRequest is the JSON body for format conversion.
type convertRequest struct {
	SourceFormat string         `json:"source_format"`
	TargetFormat string         `json:"target_format"`
	Data         map[string]any `json:"data"`
}

// Convert handles POST /api/v1/convert
func (h *Handlers) Convert(w http.ResponseWriter, r *http.Request) {
	var body convertRequest
	if !decodeBody(w, r, &body) {
		return
	}

	result, warnings, err := h.converter.Convert(body.SourceFormat, body.TargetFormat, body.Data)
	if err != nil {
		var unsupported *convert.UnsupportedFormatError
		var invalid *convert.InvalidSourceDataError
		switch {
		case errors.As(err, &unsupported):
			writeError(w, http.StatusBadRequest, unsupported.Error())
		case errors.As(err, &invalid):
			writeErrorDetails(w, http.StatusUnprocessableEntity, invalid.Error(), invalid.Errors)
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.recordConversion(r, body, result)

	writeJSON(w, http.StatusOK, map[string]any{"data": result, "warnings": warnings})
}

// recordConversion stores the audit record for a successful conversion.
// Audit failures are logged, not surfaced.
func (h *Handlers) recordConversion(r *http.Request, body convertRequest, result map[string]any) {
	sourceJSON, err := json.Marshal(body.Data)
	if err != nil {
		return
	}
	targetJSON, err := json.Marshal(result)
	if err != nil {
		return
	}
	conv := &storage.Conversion{
		SourceFormat: body.SourceFormat,
		TargetFormat: body.TargetFormat,
		SourceJSON:   string(sourceJSON),
		TargetJSON:   string(targetJSON),
	}
	if err := h.store.CreateConversion(r.Context(), conv); err != nil {
		getLog().Warn().Err(err).Msg("Failed to record conversion")
	}
}

// --- Upload ---

// Upload handles POST /api/v1/upload
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.upload.MaxFileSizeMB) << 20
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !h.extensionAllowed(ext) {
		writeError(w, http.StatusBadRequest, "Unsupported file extension: "+ext)
		return
	}

	content, err := io.ReadAll(io.LimitReader(file, maxBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	fileFormat := docparse.DetectFileFormat(header.Filename, content)
	data, err := docparse.Decode(fileFormat, content)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	agentFormat := convert.DetectAgentFormat(string(content))

	writeJSON(w, http.StatusOK, map[string]any{
		"file_format":  fileFormat,
		"agent_format": agentFormat,
		"data":         data,
	})
}

func (h *Handlers) extensionAllowed(ext string) bool {
	for _, allowed := range h.upload.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// --- Cards ---

func writeCard(w http.ResponseWriter, r *http.Request, card cards.Card) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	out, err := cards.Export(card, format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch strings.ToLower(format) {
	case "yaml", "yml":
		w.Header().Set("Content-Type", "application/x-yaml")
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

// GetTemplateCard handles GET /api/v1/templates/{id}/card
func (h *Handlers) GetTemplateCard(w http.ResponseWriter, r *http.Request) {
	template, err := h.store.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Template not found", "")
		return
	}

	card := cards.FromTemplate(cards.TemplateInfo{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		Category:    template.Category,
		CreatedAt:   template.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   template.UpdatedAt.UTC().Format(time.RFC3339),
	})
	writeCard(w, r, card)
}

// GetConfigurationCard handles GET /api/v1/configurations/{id}/card
func (h *Handlers) GetConfigurationCard(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.GetConfiguration(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Configuration not found", "")
		return
	}

	card := cards.FromConfiguration(cards.ConfigurationInfo{
		ID:           cfg.ID,
		Name:         cfg.Name,
		TemplateName: cfg.TemplateName(),
		ConfigJSON:   cfg.ConfigJSON,
		CreatedAt:    cfg.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    cfg.UpdatedAt.UTC().Format(time.RFC3339),
	})
	writeCard(w, r, card)
}

// GetCustomAgentCard handles GET /api/v1/custom-agents/{id}/card
func (h *Handlers) GetCustomAgentCard(w http.ResponseWriter, r *http.Request) {
	agent, err := h.store.GetCustomAgent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Custom agent not found", "")
		return
	}

	card := cards.FromCustomAgent(cards.CustomAgentInfo{
		ID:           agent.ID,
		Name:         agent.Name,
		Description:  agent.Description,
		Capabilities: agent.Capabilities,
		Tools:        agent.Tools,
		CreatedAt:    agent.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    agent.UpdatedAt.UTC().Format(time.RFC3339),
	})
	writeCard(w, r, card)
}
