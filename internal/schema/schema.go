// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package schema holds the canonical enumerations and field limits shared by
// the validators, converters, and API layer.
package schema

import (
	"regexp"

	"github.com/samber/lo"
)

// ValidTools is the fixed set of tool names an agent may declare, in canonical order.
var ValidTools = []string{"Read", "Write", "Edit", "Glob", "Grep", "Bash", "Task", "TodoWrite"}

// ValidModels is the fixed set of model identifiers.
var ValidModels = []string{"sonnet", "haiku", "opus"}

// ValidWorkflowTypes is the fixed set of team workflow types.
var ValidWorkflowTypes = []string{"sequential", "parallel", "orchestrated"}

// SlugPattern matches URL-safe identifiers: lowercase alphanumeric groups
// separated by single hyphens, no leading or trailing hyphen.
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Field limits for agent and team records.
const (
	SlugMinLen         = 3
	SlugMaxLen         = 100
	NameMinLen         = 2
	NameMaxLen         = 255
	InstructionsMinLen = 50
	InstructionsMaxLen = 10000
	DescriptionMaxLen  = 1000
	CategoryMaxLen     = 100
	RoleMaxLen         = 100
	StageNameMaxLen    = 100

	MaxTurnsMin = 1
	MaxTurnsMax = 1000

	TeamMinAgents    = 1
	TeamMaxAgents    = 50
	PriorityMin      = 0
	PriorityMax      = 100
	MaxConcurrentMin = 1
	MaxConcurrentMax = 100
)

// Defaults applied when an agent record omits the field.
const (
	DefaultModel    = "sonnet"
	DefaultMaxTurns = 50
)

// IsValidTool reports whether name is one of ValidTools.
func IsValidTool(name string) bool {
	return lo.Contains(ValidTools, name)
}

// IsValidModel reports whether name is one of ValidModels.
func IsValidModel(name string) bool {
	return lo.Contains(ValidModels, name)
}

// IsValidWorkflowType reports whether name is one of ValidWorkflowTypes.
func IsValidWorkflowType(name string) bool {
	return lo.Contains(ValidWorkflowTypes, name)
}

// IsValidSlug reports whether s satisfies both the pattern and length limits.
func IsValidSlug(s string) bool {
	return len(s) >= SlugMinLen && len(s) <= SlugMaxLen && SlugPattern.MatchString(s)
}
