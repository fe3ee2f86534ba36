// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package convert translates agent definitions between the three supported
// flat formats (claude, roo, custom) through a single intermediate
// representation. Every conversion pivots through AgentIR: a parser fills it
// from one source document, the converter applies target-specific defaults,
// and a serializer projects it into the target document.
package convert

// AgentIR is the normalized, format-agnostic agent definition. CustomFields
// holds keys no known format recognizes so that round-tripping through the
// custom format is lossless for unknown extensions. An IR instance is built
// fresh per conversion and never persisted.
type AgentIR struct {
	Name         string
	Description  string
	Version      string
	Category     string
	Capabilities []string
	Tools        []string
	SystemPrompt string
	Config       map[string]any
	ConfigSchema map[string]any
	Metadata     map[string]any
	Icon         string
	Author       string
	Tags         []string
	CustomFields map[string]any
}

// NewAgentIR returns an IR with defaults applied: version "1.0.0" and empty
// (non-nil) collections.
func NewAgentIR() *AgentIR {
	return &AgentIR{
		Version:      "1.0.0",
		Capabilities: []string{},
		Tools:        []string{},
		Tags:         []string{},
		Metadata:     map[string]any{},
		CustomFields: map[string]any{},
	}
}

// Validate checks the minimal IR invariants shared by all serializers.
func (ir *AgentIR) Validate() (bool, []string) {
	var errs []string
	if ir.Name == "" {
		errs = append(errs, "Missing required field: 'name'")
	}
	if ir.Description == "" {
		errs = append(errs, "Missing required field: 'description'")
	}
	if ir.SystemPrompt == "" && len(ir.Capabilities) == 0 && len(ir.Tools) == 0 {
		errs = append(errs, "Agent must have at least one of: system_prompt, capabilities, tools")
	}
	return len(errs) == 0, errs
}

// SetCustomField records a key unrecognized by the source format.
func (ir *AgentIR) SetCustomField(key string, value any) {
	if ir.CustomFields == nil {
		ir.CustomFields = map[string]any{}
	}
	ir.CustomFields[key] = value
}

// SetMetadata records a metadata entry.
func (ir *AgentIR) SetMetadata(key string, value any) {
	if ir.Metadata == nil {
		ir.Metadata = map[string]any{}
	}
	ir.Metadata[key] = value
}
