// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/agentmodes/agentmodes/internal/schema"
)

// TeamValidationError carries the full ordered error list from a failed
// strict team validation.
type TeamValidationError struct {
	Errors []string
}

func (e *TeamValidationError) Error() string {
	return "team validation failed: " + strings.Join(e.Errors, ", ")
}

// AgentExistsFunc answers whether an agent with the given slug exists in the
// caller's registry. The callback must be synchronous; the validator calls it
// once per distinct member slug.
type AgentExistsFunc func(slug string) bool

// ValidateTeam validates a team configuration document. agentExists may be
// nil, in which case the external existence check is skipped.
func ValidateTeam(config map[string]any, agentExists AgentExistsFunc) (bool, []string) {
	ok, errs, _ := ValidateTeamDetailed(config, agentExists)
	return ok, errs
}

// ValidateTeamDetailed validates a team configuration and additionally
// returns advisory warnings. A member without a role produces a warning, not
// an error: the documentation is inconsistent on whether role is required,
// so its absence is deliberately non-fatal.
func ValidateTeamDetailed(config map[string]any, agentExists AgentExistsFunc) (bool, []string, []string) {
	errs := []string{}
	warnings := []string{}

	for _, field := range []string{"slug", "name", "agents"} {
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

	var memberSlugs []string
	if v, present := config["agents"]; present && v != nil {
		agents, ok := anySlice(v)
		if !ok {
			errs = append(errs, "Agents must be an array")
		} else {
			if len(agents) < schema.TeamMinAgents {
				errs = append(errs, "Team must have at least one agent")
			}
			if len(agents) > schema.TeamMaxAgents {
				errs = append(errs, fmt.Sprintf("Team cannot have more than %d agents", schema.TeamMaxAgents))
			}

			for i, entry := range agents {
				member, ok := entry.(map[string]any)
				if !ok {
					errs = append(errs, fmt.Sprintf("Agent at index %d must be an object", i))
					continue
				}

				slug, hasSlug := member["slug"].(string)
				if !hasSlug || slug == "" {
					errs = append(errs, fmt.Sprintf("Agent at index %d missing 'slug' field", i))
				} else {
					memberSlugs = append(memberSlugs, slug)
					if !schema.SlugPattern.MatchString(slug) {
						errs = append(errs, fmt.Sprintf("Agent at index %d has invalid slug format: '%s'", i, slug))
					}
				}

				if role, present := member["role"]; !present {
					warnings = append(warnings, fmt.Sprintf("Agent at index %d should have a 'role' field", i))
				} else if roleStr, ok := role.(string); !ok {
					errs = append(errs, fmt.Sprintf("Agent at index %d role must be a string", i))
				} else if len(roleStr) > schema.RoleMaxLen {
					errs = append(errs, fmt.Sprintf("Agent at index %d role must be less than %d characters", i, schema.RoleMaxLen))
				}

				if priority, present := member["priority"]; present {
					if n, ok := intValue(priority); !ok || n < schema.PriorityMin || n > schema.PriorityMax {
						errs = append(errs, fmt.Sprintf("Agent at index %d priority must be an integer between %d and %d", i, schema.PriorityMin, schema.PriorityMax))
					}
				}
			}

			for _, dup := range lo.FindDuplicates(memberSlugs) {
				errs = append(errs, "Duplicate agent in team: "+dup)
			}
		}
	}

	if v := config["orchestrator"]; !isAbsent(v) {
		if orchestrator, ok := v.(string); !ok {
			errs = append(errs, "Orchestrator must be a string (agent slug)")
		} else if !lo.Contains(memberSlugs, orchestrator) {
			errs = append(errs, "Orchestrator must be a member of the team")
		}
	}

	if v := config["workflow"]; !isAbsent(v) {
		workflow, ok := v.(map[string]any)
		if !ok {
			errs = append(errs, "Workflow must be an object")
		} else {
			errs = append(errs, checkWorkflow(workflow, memberSlugs)...)
		}
	}

	if agentExists != nil {
		for _, slug := range lo.Uniq(memberSlugs) {
			if !agentExists(slug) {
				errs = append(errs, "Agent does not exist: "+slug)
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

	if v, present := config["max_concurrent_tasks"]; present && v != nil {
		if n, ok := intValue(v); !ok || n < schema.MaxConcurrentMin || n > schema.MaxConcurrentMax {
			errs = append(errs, fmt.Sprintf("max_concurrent_tasks must be an integer between %d and %d", schema.MaxConcurrentMin, schema.MaxConcurrentMax))
		}
	}

	if v, present := config["timeout"]; present && v != nil {
		if f, ok := floatValue(v); !ok || f <= 0 {
			errs = append(errs, "timeout must be a positive number")
		}
	}

	return len(errs) == 0, errs, warnings
}

func checkWorkflow(workflow map[string]any, memberSlugs []string) []string {
	var errs []string

	if v := workflow["type"]; !isAbsent(v) {
		wt, ok := v.(string)
		if !ok || !schema.IsValidWorkflowType(wt) {
			errs = append(errs, fmt.Sprintf("Invalid workflow type: '%v'. Valid types: %s", v, strings.Join(schema.ValidWorkflowTypes, ", ")))
		}
	}

	v, present := workflow["stages"]
	if !present || v == nil {
		return errs
	}
	stages, ok := anySlice(v)
	if !ok {
		return append(errs, "Workflow stages must be an array")
	}

	for i, entry := range stages {
		stage, ok := entry.(map[string]any)
		if !ok {
			errs = append(errs, fmt.Sprintf("Workflow stage at index %d must be an object", i))
			continue
		}

		if name, hasName := stage["name"].(string); !hasName {
			errs = append(errs, fmt.Sprintf("Workflow stage at index %d missing 'name' field", i))
		} else if len(name) > schema.StageNameMaxLen {
			errs = append(errs, fmt.Sprintf("Workflow stage at index %d name must be less than %d characters", i, schema.StageNameMaxLen))
		}

		if agents, present := stage["agents"]; present {
			stageAgents, ok := anySlice(agents)
			if !ok {
				errs = append(errs, fmt.Sprintf("Workflow stage at index %d agents must be an array", i))
				continue
			}
			for _, sa := range stageAgents {
				slug, _ := sa.(string)
				if !lo.Contains(memberSlugs, slug) {
					errs = append(errs, fmt.Sprintf("Workflow stage references agent not in team: %v", sa))
				}
			}
		}
	}

	return errs
}

// ValidateTeamStrict runs the same checks as ValidateTeam and returns a
// *TeamValidationError carrying the full error list when the config is
// invalid.
func ValidateTeamStrict(config map[string]any, agentExists AgentExistsFunc) error {
	if ok, errs := ValidateTeam(config, agentExists); !ok {
		return &TeamValidationError{Errors: errs}
	}
	return nil
}

// ValidateTeamJSON decodes text as JSON and validates the result.
func ValidateTeamJSON(text string, agentExists AgentExistsFunc) (bool, []string) {
	var config map[string]any
	if err := json.Unmarshal([]byte(text), &config); err != nil {
		return false, []string{"Invalid JSON: " + err.Error()}
	}
	return ValidateTeam(config, agentExists)
}
