// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"strings"
)

var rooKnownKeys = keySet(
	"mode", "name", "description", "category", "capabilities", "tools",
	"system_prompt", "icon", "tags", "version", "metadata", "config",
)

// RooParser reads the Roo agent format. Roo identifies agents by a "mode"
// slug; when no explicit name is given, the name is derived from the mode
// and the original mode is preserved in metadata.
type RooParser struct{}

func (RooParser) Validate(data map[string]any) (bool, []string) {
	var errs []string

	_, hasMode := data["mode"]
	_, hasName := data["name"]
	if !hasMode && !hasName {
		errs = append(errs, "Must have either 'mode' or 'name' field")
	}
	if hasMode {
		if s, ok := data["mode"].(string); !ok || s == "" {
			errs = append(errs, "Field 'mode' cannot be empty")
		}
	}
	if hasName {
		if s, ok := data["name"].(string); !ok || s == "" {
			errs = append(errs, "Field 'name' cannot be empty")
		}
	}

	if v, present := data["description"]; !present {
		errs = append(errs, "Missing required field: 'description'")
	} else if s, ok := v.(string); !ok || s == "" {
		errs = append(errs, "Field 'description' cannot be empty")
	}

	if !hasAnyAgentField(data) {
		errs = append(errs, "Must have at least one of: system_prompt, capabilities, tools")
	}

	errs = append(errs, checkStringList(data, "capabilities")...)
	errs = append(errs, checkStringList(data, "tools")...)
	errs = append(errs, checkStringList(data, "tags")...)
	errs = append(errs, checkMapTyped(data, "metadata")...)
	errs = append(errs, checkStringTyped(data, "version")...)
	errs = append(errs, checkStringTyped(data, "category")...)
	errs = append(errs, checkStringTyped(data, "icon")...)

	return len(errs) == 0, errs
}

func (RooParser) Parse(data map[string]any) *AgentIR {
	ir := NewAgentIR()

	if name := strField(data, "name"); name != "" {
		ir.Name = name
	} else if mode := strField(data, "mode"); mode != "" {
		ir.Name = nameFromMode(mode)
	}

	ir.Description = strField(data, "description")
	ir.Category = strField(data, "category")
	ir.Capabilities = strSliceField(data, "capabilities")
	ir.Tools = strSliceField(data, "tools")
	ir.SystemPrompt = strField(data, "system_prompt")
	ir.Icon = strField(data, "icon")
	ir.Tags = strSliceField(data, "tags")
	if v := strField(data, "version"); v != "" {
		ir.Version = v
	}
	if m := mapField(data, "metadata"); m != nil {
		ir.Metadata = m
	}
	ir.Config = mapField(data, "config")

	copyCustomFields(ir, data, rooKnownKeys)

	if mode := strField(data, "mode"); mode != "" {
		ir.SetMetadata("original_mode", mode)
	}
	return ir
}

// RooSerializer projects an IR into the Roo agent format. The mode slug is
// derived from the name; category, icon, and tags fall back to the Roo
// schema defaults when the IR leaves them unset.
type RooSerializer struct{}

// Defaults the Roo schema requires for fields the IR may omit.
const (
	DefaultRooIcon     = "fa-robot"
	DefaultRooCategory = "general"
)

func (RooSerializer) Serialize(ir *AgentIR) map[string]any {
	data := map[string]any{
		"mode":        modeFromName(ir.Name),
		"name":        ir.Name,
		"description": ir.Description,
		"version":     ir.Version,
	}

	data["category"] = orDefault(ir.Category, DefaultRooCategory)
	data["icon"] = orDefault(ir.Icon, DefaultRooIcon)
	if ir.Tags != nil {
		data["tags"] = ir.Tags
	} else {
		data["tags"] = []string{}
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

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// nameFromMode turns a mode slug like "code-reviewer" into "Code Reviewer".
func nameFromMode(mode string) string {
	words := strings.Split(mode, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// modeFromName is the inverse projection: "Code Reviewer" -> "code-reviewer".
func modeFromName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
