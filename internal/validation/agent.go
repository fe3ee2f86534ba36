// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validation checks agent and team configuration documents against
// the schema rules. Validators never panic on malformed input: every problem
// is collected into an ordered, human-readable error list and returned
// alongside a validity flag. Strict variants wrap the same computation in an
// error for callers that prefer signal-based control flow.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/agentmodes/agentmodes/internal/schema"
)

// AgentValidationError carries the full ordered error list from a failed
// strict validation.
type AgentValidationError struct {
	Errors []string
}

func (e *AgentValidationError) Error() string {
	return "agent validation failed: " + strings.Join(e.Errors, ", ")
}

// ValidateAgent validates an agent configuration document. All checks run in
// a fixed order without short-circuiting, so callers always see the complete
// error list: required-field presence first, then per-field type and bound
// checks, then optional fields.
func ValidateAgent(config map[string]any) (bool, []string) {
	errs := []string{}

	for _, field := range []string{"slug", "name", "instructions", "tools"} {
		if isAbsent(config[field]) {
			errs = append(errs, "Missing required field: "+field)
		}
	}

	errs = append(errs, checkSlug(config["slug"], "Slug")...)

	if v := config["name"]; !isAbsent(v) {
		if name, ok := v.(string); !ok {
			errs = append(errs, "Name must be a string")
		} else {
			if len(name) < schema.NameMinLen {
				errs = append(errs, fmt.Sprintf("Name must be at least %d characters", schema.NameMinLen))
			}
			if len(name) > schema.NameMaxLen {
				errs = append(errs, fmt.Sprintf("Name must be less than %d characters", schema.NameMaxLen))
			}
		}
	}

	if v := config["instructions"]; !isAbsent(v) {
		if instructions, ok := v.(string); !ok {
			errs = append(errs, "Instructions must be a string")
		} else {
			if len(instructions) < schema.InstructionsMinLen {
				errs = append(errs, fmt.Sprintf("Instructions must be at least %d characters (provide meaningful guidance)", schema.InstructionsMinLen))
			}
			if len(instructions) > schema.InstructionsMaxLen {
				errs = append(errs, fmt.Sprintf("Instructions must be less than %d characters", schema.InstructionsMaxLen))
			}
		}
	}

	if v, present := config["tools"]; present && v != nil {
		if tools, ok := anySlice(v); !ok {
			errs = append(errs, "Tools must be an array")
		} else {
			if len(tools) == 0 {
				errs = append(errs, "At least one tool is required")
			}
			for _, tool := range tools {
				name, ok := tool.(string)
				if !ok || !schema.IsValidTool(name) {
					errs = append(errs, fmt.Sprintf("Invalid tool: '%v'. Valid tools: %s", tool, strings.Join(schema.ValidTools, ", ")))
				}
			}
		}
	}

	if v := config["description"]; !isAbsent(v) {
		if desc, ok := v.(string); !ok {
			errs = append(errs, "Description must be a string")
		} else if len(desc) > schema.DescriptionMaxLen {
			errs = append(errs, fmt.Sprintf("Description must be less than %d characters", schema.DescriptionMaxLen))
		}
	}

	if v := config["category"]; !isAbsent(v) {
		if cat, ok := v.(string); !ok {
			errs = append(errs, "Category must be a string")
		} else if len(cat) > schema.CategoryMaxLen {
			errs = append(errs, fmt.Sprintf("Category must be less than %d characters", schema.CategoryMaxLen))
		}
	}

	if v, present := config["skills"]; present && v != nil {
		if skills, ok := anySlice(v); !ok {
			errs = append(errs, "Skills must be an array")
		} else {
			for i, s := range skills {
				if _, ok := s.(string); !ok {
					errs = append(errs, fmt.Sprintf("skills[%d] must be a string", i))
				}
			}
		}
	}

	// Presence check, not emptiness: an explicit empty string is still an
	// invalid model name.
	if v, present := config["default_model"]; present && v != nil {
		model, ok := v.(string)
		if !ok || !schema.IsValidModel(model) {
			errs = append(errs, fmt.Sprintf("Invalid model: '%v'. Valid models: %s", v, strings.Join(schema.ValidModels, ", ")))
		}
	}

	if v, present := config["max_turns"]; present && v != nil {
		if n, ok := intValue(v); !ok || n < schema.MaxTurnsMin || n > schema.MaxTurnsMax {
			errs = append(errs, fmt.Sprintf("max_turns must be an integer between %d and %d", schema.MaxTurnsMin, schema.MaxTurnsMax))
		}
	}

	if v, present := config["allowed_edit_patterns"]; present && v != nil {
		if patterns, ok := anySlice(v); !ok {
			errs = append(errs, "allowed_edit_patterns must be an array")
		} else {
			for _, p := range patterns {
				pattern, ok := p.(string)
				if !ok {
					errs = append(errs, fmt.Sprintf("allowed_edit_patterns must contain strings, found: %T", p))
					continue
				}
				if _, err := regexp.Compile(pattern); err != nil {
					errs = append(errs, fmt.Sprintf("Invalid regex pattern '%s': %v", pattern, err))
				}
			}
		}
	}

	return len(errs) == 0, errs
}

// ValidateAgentStrict runs the same checks as ValidateAgent and returns an
// *AgentValidationError carrying the full error list when the config is
// invalid.
func ValidateAgentStrict(config map[string]any) error {
	if ok, errs := ValidateAgent(config); !ok {
		return &AgentValidationError{Errors: errs}
	}
	return nil
}

// ValidateAgentJSON decodes text as JSON and validates the result. A decode
// failure yields a single "Invalid JSON: ..." error without running the
// structural validator.
func ValidateAgentJSON(text string) (bool, []string) {
	var config map[string]any
	if err := json.Unmarshal([]byte(text), &config); err != nil {
		return false, []string{"Invalid JSON: " + err.Error()}
	}
	return ValidateAgent(config)
}

// checkSlug validates an already-present slug value. Shared by the agent and
// team validators; label distinguishes the error messages.
func checkSlug(v any, label string) []string {
	if isAbsent(v) {
		return nil
	}
	slug, ok := v.(string)
	if !ok {
		return []string{label + " must be a string"}
	}
	var errs []string
	if !schema.SlugPattern.MatchString(slug) {
		errs = append(errs, label+" must contain only lowercase letters, numbers, and hyphens")
	}
	if len(slug) < schema.SlugMinLen {
		errs = append(errs, fmt.Sprintf("%s must be at least %d characters", label, schema.SlugMinLen))
	}
	if len(slug) > schema.SlugMaxLen {
		errs = append(errs, fmt.Sprintf("%s must be less than %d characters", label, schema.SlugMaxLen))
	}
	return errs
}
