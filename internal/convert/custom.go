// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import "fmt"

var customKnownKeys = keySet(
	"name", "description", "version", "category", "capabilities", "tools",
	"system_prompt", "config_schema", "config", "metadata", "icon", "author", "tags",
)

// CustomParser reads the application-specific custom format. It recognizes
// the widest field set of the three formats; anything else lands in
// custom_fields so a custom -> custom round trip is lossless.
type CustomParser struct{}

func (CustomParser) Validate(data map[string]any) (bool, []string) {
	var errs []string

	for _, field := range []string{"name", "description", "capabilities", "tools", "system_prompt"} {
		if v, present := data[field]; !present {
			errs = append(errs, fmt.Sprintf("Missing required field: '%s'", field))
		} else if isEmptyValue(v) {
			errs = append(errs, fmt.Sprintf("Field '%s' cannot be empty", field))
		}
	}

	errs = append(errs, checkStringList(data, "capabilities")...)
	errs = append(errs, checkStringList(data, "tools")...)
	errs = append(errs, checkStringList(data, "tags")...)
	errs = append(errs, checkMapTyped(data, "metadata")...)
	errs = append(errs, checkMapTyped(data, "config_schema")...)
	errs = append(errs, checkMapTyped(data, "config")...)
	errs = append(errs, checkStringTyped(data, "version")...)
	errs = append(errs, checkStringTyped(data, "category")...)
	errs = append(errs, checkStringTyped(data, "icon")...)
	errs = append(errs, checkStringTyped(data, "author")...)

	return len(errs) == 0, errs
}

func (CustomParser) Parse(data map[string]any) *AgentIR {
	ir := NewAgentIR()
	ir.Name = strField(data, "name")
	ir.Description = strField(data, "description")
	if v := strField(data, "version"); v != "" {
		ir.Version = v
	}
	ir.Category = strField(data, "category")
	ir.Capabilities = strSliceField(data, "capabilities")
	ir.Tools = strSliceField(data, "tools")
	ir.SystemPrompt = strField(data, "system_prompt")
	ir.ConfigSchema = mapField(data, "config_schema")
	ir.Config = mapField(data, "config")
	if m := mapField(data, "metadata"); m != nil {
		ir.Metadata = m
	}
	ir.Icon = strField(data, "icon")
	ir.Author = strField(data, "author")
	ir.Tags = strSliceField(data, "tags")
	copyCustomFields(ir, data, customKnownKeys)
	return ir
}

// CustomSerializer projects an IR into the custom format. The format
// requires capabilities, tools, and system_prompt, so missing values are
// filled with empty lists or a prompt synthesized from name and description.
type CustomSerializer struct{}

func (CustomSerializer) Serialize(ir *AgentIR) map[string]any {
	data := map[string]any{
		"name":        ir.Name,
		"description": ir.Description,
		"version":     ir.Version,
	}

	if ir.Capabilities != nil {
		data["capabilities"] = ir.Capabilities
	} else {
		data["capabilities"] = []string{}
	}
	if ir.Tools != nil {
		data["tools"] = ir.Tools
	} else {
		data["tools"] = []string{}
	}
	if ir.SystemPrompt != "" {
		data["system_prompt"] = ir.SystemPrompt
	} else {
		data["system_prompt"] = synthesizedPrompt(ir)
	}

	if ir.Category != "" {
		data["category"] = ir.Category
	}
	if ir.ConfigSchema != nil {
		data["config_schema"] = ir.ConfigSchema
	}
	if ir.Config != nil {
		data["config"] = ir.Config
	}
	if ir.Author != "" {
		data["author"] = ir.Author
	}
	if len(ir.Tags) > 0 {
		data["tags"] = ir.Tags
	}
	if ir.Icon != "" {
		data["icon"] = ir.Icon
	}
	if len(ir.Metadata) > 0 {
		data["metadata"] = ir.Metadata
	}
	for k, v := range ir.CustomFields {
		data[k] = v
	}
	return data
}

func synthesizedPrompt(ir *AgentIR) string {
	return fmt.Sprintf("You are %s, an AI assistant. %s", ir.Name, ir.Description)
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}
