// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package docparse

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatJSON, FormatYAML, FormatMarkdown, and FormatUnknown are the file
// format identifiers returned by DetectFileFormat.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatUnknown  = "unknown"
)

var extensionFormats = map[string]string{
	".json":     FormatJSON,
	".yaml":     FormatYAML,
	".yml":      FormatYAML,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
}

// DetectFileFormat determines a file's format from its extension, falling
// back to content sniffing when the extension is missing or unrecognized.
// Content that parses as a JSON object is json; content that parses as a
// YAML mapping is yaml; content starting with "#" or a "---" frontmatter
// fence is markdown. Anything else is unknown.
func DetectFileFormat(filename string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if format, ok := extensionFormats[ext]; ok {
		return format
	}
	return sniffFormat(content)
}

func sniffFormat(content []byte) string {
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return FormatUnknown
	}

	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]any
		if json.Unmarshal([]byte(trimmed), &obj) == nil {
			return FormatJSON
		}
	}

	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "---") {
		return FormatMarkdown
	}

	var mapping map[string]any
	if yaml.Unmarshal([]byte(trimmed), &mapping) == nil && mapping != nil {
		return FormatYAML
	}

	return FormatUnknown
}

// Decode parses content according to format, returning the document map.
// Unknown formats are rejected rather than guessed a second time.
func Decode(format string, content []byte) (map[string]any, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(content)
	case FormatYAML:
		return DecodeYAML(content)
	case FormatMarkdown:
		return ParseMarkdown(string(content))
	default:
		return nil, &UnsupportedFileFormatError{Format: format}
	}
}

// UnsupportedFileFormatError indicates a file format outside the
// json/yaml/markdown set.
type UnsupportedFileFormatError struct {
	Format string
}

func (e *UnsupportedFileFormatError) Error() string {
	return "unsupported file format: " + e.Format
}
