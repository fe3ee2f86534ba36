// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package docparse decodes uploaded agent-definition files (JSON, YAML,
// Markdown) into plain document maps for the validators and converter.
// Decoded documents always carry "tools" and "skills" keys, defaulted to
// empty lists when the input omits them, so downstream consumers never have
// to guard against the keys being unset.
package docparse

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeJSON parses content as a JSON object and applies the tools/skills
// defaults.
func DecodeJSON(content []byte) (map[string]any, error) {
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	applyListDefaults(data)
	return data, nil
}

// DecodeYAML parses content as a YAML mapping and applies the tools/skills
// defaults.
func DecodeYAML(content []byte) (map[string]any, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("YAML content must be a mapping")
	}
	applyListDefaults(data)
	return data, nil
}

// ValidateDocument performs the loose document-level check shared by JSON
// and YAML uploads: a name, a description, and at least one agent field.
func ValidateDocument(data map[string]any) (bool, []string) {
	var errs []string

	if _, ok := data["name"]; !ok {
		errs = append(errs, "Missing required field: 'name'")
	}
	if _, ok := data["description"]; !ok {
		errs = append(errs, "Missing required field: 'description'")
	}

	hasAgentField := false
	for _, field := range []string{"system_prompt", "capabilities", "tools"} {
		if _, ok := data[field]; ok {
			hasAgentField = true
			break
		}
	}
	if !hasAgentField {
		errs = append(errs, "Missing agent-specific fields (need at least one of: system_prompt, capabilities, tools)")
	}

	return len(errs) == 0, errs
}

// applyListDefaults guarantees tools and skills are present. Regression
// policy: downstream consumers rely on both keys existing regardless of
// input completeness.
func applyListDefaults(data map[string]any) {
	if _, ok := data["tools"]; !ok {
		data["tools"] = []string{}
	}
	if _, ok := data["skills"]; !ok {
		data["skills"] = []string{}
	}
}
