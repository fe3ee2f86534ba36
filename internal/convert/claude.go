// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import "fmt"

var claudeKnownKeys = keySet(
	"name", "description", "version", "capabilities", "tools",
	"system_prompt", "config_schema", "metadata", "config",
)

// ClaudeParser reads the Claude agent format: name, description, version,
// capabilities, tools, system_prompt, config_schema, config, metadata.
type ClaudeParser struct{}

func (ClaudeParser) Validate(data map[string]any) (bool, []string) {
	var errs []string

	for _, field := range []string{"name", "description"} {
		if v, present := data[field]; !present {
			errs = append(errs, fmt.Sprintf("Missing required field: '%s'", field))
		} else if s, ok := v.(string); !ok || s == "" {
			errs = append(errs, fmt.Sprintf("Field '%s' cannot be empty", field))
		}
	}

	if !hasAnyAgentField(data) {
		errs = append(errs, "Must have at least one of: system_prompt, capabilities, tools")
	}

	errs = append(errs, checkStringList(data, "capabilities")...)
	errs = append(errs, checkStringList(data, "tools")...)
	errs = append(errs, checkMapTyped(data, "metadata")...)
	errs = append(errs, checkMapTyped(data, "config_schema")...)
	errs = append(errs, checkStringTyped(data, "version")...)

	return len(errs) == 0, errs
}

func (ClaudeParser) Parse(data map[string]any) *AgentIR {
	ir := NewAgentIR()
	ir.Name = strField(data, "name")
	ir.Description = strField(data, "description")
	if v := strField(data, "version"); v != "" {
		ir.Version = v
	}
	ir.Capabilities = strSliceField(data, "capabilities")
	ir.Tools = strSliceField(data, "tools")
	ir.SystemPrompt = strField(data, "system_prompt")
	ir.ConfigSchema = mapField(data, "config_schema")
	ir.Config = mapField(data, "config")
	if m := mapField(data, "metadata"); m != nil {
		ir.Metadata = m
	}
	copyCustomFields(ir, data, claudeKnownKeys)
	return ir
}

// ClaudeSerializer projects an IR into the Claude agent format. Optional
// fields are emitted only when set.
type ClaudeSerializer struct{}

func (ClaudeSerializer) Serialize(ir *AgentIR) map[string]any {
	data := map[string]any{
		"name":        ir.Name,
		"description": ir.Description,
		"version":     ir.Version,
	}
	if len(ir.Capabilities) > 0 {
		data["capabilities"] = ir.Capabilities
	}
	if len(ir.Tools) > 0 {
		data["tools"] = ir.Tools
	}
	if ir.SystemPrompt != "" {
		data["system_prompt"] = ir.SystemPrompt
	}
	if ir.ConfigSchema != nil {
		data["config_schema"] = ir.ConfigSchema
	}
	if ir.Config != nil {
		data["config"] = ir.Config
	}
	if len(ir.Metadata) > 0 {
		data["metadata"] = ir.Metadata
	}
	for k, v := range ir.CustomFields {
		data[k] = v
	}
	return data
}

// Shared format-level checks.

func hasAnyAgentField(data map[string]any) bool {
	for _, field := range []string{"system_prompt", "capabilities", "tools"} {
		switch v := data[field].(type) {
		case string:
			if v != "" {
				return true
			}
		case []any:
			if len(v) > 0 {
				return true
			}
		case []string:
			if len(v) > 0 {
				return true
			}
		}
	}
	return false
}

func checkStringList(data map[string]any, field string) []string {
	v, present := data[field]
	if !present || v == nil {
		return nil
	}
	var errs []string
	switch list := v.(type) {
	case []string:
	case []any:
		for i, e := range list {
			if _, ok := e.(string); !ok {
				errs = append(errs, fmt.Sprintf("%s[%d] must be a string", field, i))
			}
		}
	default:
		errs = append(errs, fmt.Sprintf("'%s' must be a list", field))
	}
	return errs
}

func checkMapTyped(data map[string]any, field string) []string {
	v, present := data[field]
	if !present || v == nil {
		return nil
	}
	if _, ok := v.(map[string]any); !ok {
		return []string{fmt.Sprintf("'%s' must be a dictionary", field)}
	}
	return nil
}

func checkStringTyped(data map[string]any, field string) []string {
	v, present := data[field]
	if !present || v == nil {
		return nil
	}
	if _, ok := v.(string); !ok {
		return []string{fmt.Sprintf("'%s' must be a string", field)}
	}
	return nil
}
