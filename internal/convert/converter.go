// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"fmt"
	"strings"
)

// FormatClaude, FormatRoo, and FormatCustom are the supported agent formats.
const (
	FormatClaude = "claude"
	FormatRoo    = "roo"
	FormatCustom = "custom"
)

// UnsupportedFormatError indicates a format name outside the fixed registry.
// This is a caller programming error, distinct from data validation.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s (supported formats: %s)",
		e.Format, strings.Join(supportedFormats, ", "))
}

// InvalidSourceDataError indicates the source document failed the source
// format's own minimal schema check. Errors holds the parser's full list.
type InvalidSourceDataError struct {
	Format string
	Errors []string
}

func (e *InvalidSourceDataError) Error() string {
	return fmt.Sprintf("invalid %s source data: %s", e.Format, strings.Join(e.Errors, ", "))
}

var supportedFormats = []string{FormatClaude, FormatRoo, FormatCustom}

// Converter translates agent definitions between formats through the IR.
// The parser and serializer registries are built once at construction and
// never mutated, so a single Converter is safe for concurrent use.
type Converter struct {
	parsers     map[string]Parser
	serializers map[string]Serializer
}

// NewConverter builds a converter with the fixed claude/roo/custom registry.
func NewConverter() *Converter {
	return &Converter{
		parsers: map[string]Parser{
			FormatClaude: ClaudeParser{},
			FormatRoo:    RooParser{},
			FormatCustom: CustomParser{},
		},
		serializers: map[string]Serializer{
			FormatClaude: ClaudeSerializer{},
			FormatRoo:    RooSerializer{},
			FormatCustom: CustomSerializer{},
		},
	}
}

// SupportedFormats returns the fixed list of agent format identifiers.
func (c *Converter) SupportedFormats() []string {
	return append([]string{}, supportedFormats...)
}

// Convert translates sourceData from sourceFormat to targetFormat. The
// source document is validated against the source format's minimal schema
// before parsing; any defaults injected for the target format are reported
// as warnings. A failure at any stage aborts with no partial output.
func (c *Converter) Convert(sourceFormat, targetFormat string, sourceData map[string]any) (map[string]any, []string, error) {
	parser, ok := c.parsers[sourceFormat]
	if !ok {
		return nil, nil, &UnsupportedFormatError{Format: sourceFormat}
	}
	serializer, ok := c.serializers[targetFormat]
	if !ok {
		return nil, nil, &UnsupportedFormatError{Format: targetFormat}
	}

	if ok, errs := parser.Validate(sourceData); !ok {
		return nil, nil, &InvalidSourceDataError{Format: sourceFormat, Errors: errs}
	}

	ir := parser.Parse(sourceData)
	warnings := applyTargetDefaults(ir, targetFormat)

	return serializer.Serialize(ir), warnings, nil
}

// applyTargetDefaults fills fields the target format requires but the IR
// lacks, emitting one warning per substitution.
func applyTargetDefaults(ir *AgentIR, target string) []string {
	warnings := []string{}

	if target == FormatRoo {
		if ir.Icon == "" {
			ir.Icon = DefaultRooIcon
			warnings = append(warnings, fmt.Sprintf("Field 'icon' was added with default value '%s'", DefaultRooIcon))
		}
		if ir.Category == "" {
			ir.Category = DefaultRooCategory
			warnings = append(warnings, fmt.Sprintf("Field 'category' was added with default value '%s'", DefaultRooCategory))
		}
		if len(ir.Tags) == 0 {
			ir.Tags = []string{}
			warnings = append(warnings, "Field 'tags' was initialized as empty array")
		}
	}

	if target == FormatCustom {
		if len(ir.Capabilities) == 0 {
			ir.Capabilities = []string{}
			warnings = append(warnings, "Field 'capabilities' was initialized as empty array")
		}
		if len(ir.Tools) == 0 {
			ir.Tools = []string{}
			warnings = append(warnings, "Field 'tools' was initialized as empty array")
		}
		if ir.SystemPrompt == "" {
			ir.SystemPrompt = synthesizedPrompt(ir)
			warnings = append(warnings, "Field 'system_prompt' was generated from name and description")
		}
	}

	return warnings
}
