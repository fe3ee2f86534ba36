// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cards generates agent discovery cards from templates,
// configurations, custom agents, and the converter's intermediate
// representation.
package cards

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agentmodes/agentmodes/internal/convert"
)

// SchemaVersion and SchemaURL identify the agent discovery schema cards are
// generated against.
const (
	SchemaVersion = "1.0"
	SchemaURL     = "https://agent-discovery.microsoft.com/v1"
)

const defaultAuthorName = "Agent Modes DB"

var versionRe = regexp.MustCompile(`^\d+(\.\d+)*$`)

// Card is a complete agent discovery card.
type Card struct {
	Schema string    `json:"$schema" yaml:"$schema"`
	Agent  CardAgent `json:"agent" yaml:"agent"`
}

// CardAgent is the agent section of a discovery card.
type CardAgent struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Description   string        `json:"description" yaml:"description"`
	Version       string        `json:"version" yaml:"version"`
	Category      string        `json:"category" yaml:"category"`
	Capabilities  []string      `json:"capabilities" yaml:"capabilities"`
	Tools         []string      `json:"tools" yaml:"tools"`
	Author        Author        `json:"author" yaml:"author"`
	Metadata      Metadata      `json:"metadata" yaml:"metadata"`
	Compatibility Compatibility `json:"compatibility" yaml:"compatibility"`
}

// Author identifies who published the agent.
type Author struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Metadata carries timestamps, tags, and licensing for a card.
type Metadata struct {
	CreatedAt string   `json:"created_at" yaml:"created_at"`
	UpdatedAt string   `json:"updated_at" yaml:"updated_at"`
	Tags      []string `json:"tags" yaml:"tags"`
	Language  string   `json:"language" yaml:"language"`
	License   string   `json:"license,omitempty" yaml:"license,omitempty"`
}

// Compatibility lists the platforms a card's agent targets.
type Compatibility struct {
	Platforms []string `json:"platforms" yaml:"platforms"`
}

// TemplateInfo is the slice of a template record a card needs.
type TemplateInfo struct {
	ID          string
	Name        string
	Description string
	Category    string
	CreatedAt   string
	UpdatedAt   string
}

// ConfigurationInfo is the slice of a configuration record a card needs.
// ConfigJSON holds the stored configuration document as a JSON string.
type ConfigurationInfo struct {
	ID           string
	Name         string
	TemplateName string
	ConfigJSON   string
	CreatedAt    string
	UpdatedAt    string
}

// CustomAgentInfo is the slice of a custom agent record a card needs.
type CustomAgentInfo struct {
	ID           string
	Name         string
	Description  string
	Capabilities []string
	Tools        []string
	CreatedAt    string
	UpdatedAt    string
}

// FromTemplate builds a card for a builtin or user template. Templates
// carry no capability or tool data, so both lists are empty and the
// template's category doubles as its only tag.
func FromTemplate(t TemplateInfo) Card {
	return Card{
		Schema: SchemaURL,
		Agent: CardAgent{
			ID:           "template-" + t.ID,
			Name:         t.Name,
			Description:  t.Description,
			Version:      "1.0.0",
			Category:     t.Category,
			Capabilities: []string{},
			Tools:        []string{},
			Author: Author{
				Name: defaultAuthorName,
				URL:  "https://github.com/agent-modes-db",
			},
			Metadata: Metadata{
				CreatedAt: t.CreatedAt,
				UpdatedAt: t.UpdatedAt,
				Tags:      []string{strings.ToLower(t.Category)},
				Language:  "en",
				License:   "MIT",
			},
			Compatibility: Compatibility{Platforms: []string{"web"}},
		},
	}
}

// FromConfiguration builds a card for a saved configuration. Capabilities
// and tools are lifted from the stored config document when it parses;
// malformed config JSON degrades to empty lists rather than failing.
func FromConfiguration(c ConfigurationInfo) Card {
	capabilities := []string{}
	tools := []string{}

	var doc map[string]any
	if err := json.Unmarshal([]byte(c.ConfigJSON), &doc); err == nil {
		capabilities = stringList(doc["capabilities"])
		tools = stringList(doc["tools"])
	}

	templateName := c.TemplateName
	if templateName == "" {
		templateName = "custom"
	}

	return Card{
		Schema: SchemaURL,
		Agent: CardAgent{
			ID:           "configuration-" + c.ID,
			Name:         c.Name,
			Description:  fmt.Sprintf("Configuration based on %s", templateName),
			Version:      "1.0.0",
			Category:     "Configuration",
			Capabilities: capabilities,
			Tools:        tools,
			Author:       Author{Name: defaultAuthorName},
			Metadata: Metadata{
				CreatedAt: c.CreatedAt,
				UpdatedAt: c.UpdatedAt,
				Tags:      []string{"configuration"},
				Language:  "en",
			},
			Compatibility: Compatibility{Platforms: []string{"web"}},
		},
	}
}

// FromCustomAgent builds a card for a custom agent record.
func FromCustomAgent(a CustomAgentInfo) Card {
	capabilities := a.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}
	tools := a.Tools
	if tools == nil {
		tools = []string{}
	}

	return Card{
		Schema: SchemaURL,
		Agent: CardAgent{
			ID:           "custom-agent-" + a.ID,
			Name:         a.Name,
			Description:  a.Description,
			Version:      "1.0.0",
			Category:     "Custom",
			Capabilities: capabilities,
			Tools:        tools,
			Author:       Author{Name: defaultAuthorName},
			Metadata: Metadata{
				CreatedAt: a.CreatedAt,
				UpdatedAt: a.UpdatedAt,
				Tags:      []string{"custom"},
				Language:  "en",
			},
			Compatibility: Compatibility{Platforms: []string{"web"}},
		},
	}
}

// FromIR builds a card from a converter intermediate representation.
// Missing fields fall back to neutral defaults so any parsed agent yields a
// structurally complete card.
func FromIR(ir *convert.AgentIR) Card {
	id := "unknown"
	if v, ok := ir.Metadata["id"].(string); ok && v != "" {
		id = v
	}

	name := ir.Name
	if name == "" {
		name = "Unknown Agent"
	}
	version := ir.Version
	if version == "" {
		version = "1.0.0"
	}
	category := ir.Category
	if category == "" {
		category = "General"
	}

	author := Author{Name: defaultAuthorName}
	if ir.Author != "" {
		author = Author{Name: ir.Author}
	}

	tags := ir.Tags
	if tags == nil {
		tags = []string{}
	}
	capabilities := ir.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}
	tools := ir.Tools
	if tools == nil {
		tools = []string{}
	}

	return Card{
		Schema: SchemaURL,
		Agent: CardAgent{
			ID:           id,
			Name:         name,
			Description:  ir.Description,
			Version:      version,
			Category:     category,
			Capabilities: capabilities,
			Tools:        tools,
			Author:       author,
			Metadata: Metadata{
				Tags:     tags,
				Language: "en",
				License:  "MIT",
			},
			Compatibility: Compatibility{Platforms: []string{"web"}},
		},
	}
}

// ValidateCard checks a card against the discovery schema: required agent
// fields must be present and non-empty, the schema URL must match, and the
// version must be dot-separated digits.
func ValidateCard(card Card) (bool, []string) {
	var errs []string

	required := []struct {
		name  string
		value string
	}{
		{"id", card.Agent.ID},
		{"name", card.Agent.Name},
		{"description", card.Agent.Description},
		{"version", card.Agent.Version},
		{"category", card.Agent.Category},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, fmt.Sprintf("Required field cannot be empty: agent.%s", f.name))
		}
	}

	if card.Schema != "" && card.Schema != SchemaURL {
		errs = append(errs, fmt.Sprintf("Invalid schema URL. Expected: %s", SchemaURL))
	}

	if card.Agent.Version != "" && !versionRe.MatchString(card.Agent.Version) {
		errs = append(errs, fmt.Sprintf("Invalid version format: %s. Expected semantic version (e.g., 1.0.0)", card.Agent.Version))
	}

	return len(errs) == 0, errs
}

// Export encodes a card as "json" or "yaml".
func Export(card Card, format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		out, err := json.MarshalIndent(card, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode card: %w", err)
		}
		return string(out), nil
	case "yaml", "yml":
		out, err := yaml.Marshal(card)
		if err != nil {
			return "", fmt.Errorf("failed to encode card: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported export format: %s. Supported formats: json, yaml", format)
	}
}

// Import decodes a card from "json" or "yaml" text.
func Import(data string, format string) (Card, error) {
	var card Card
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal([]byte(data), &card); err != nil {
			return Card{}, fmt.Errorf("failed to decode card: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal([]byte(data), &card); err != nil {
			return Card{}, fmt.Errorf("failed to decode card: %w", err)
		}
	default:
		return Card{}, fmt.Errorf("unsupported import format: %s. Supported formats: json, yaml", format)
	}
	return card, nil
}

func stringList(v any) []string {
	switch t := v.(type) {
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
		return []string{}
	}
}
