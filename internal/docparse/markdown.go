// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package docparse

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	headingRe     = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)
	orderedItemRe = regexp.MustCompile(`^\d+\.\s+`)
)

// ParseMarkdown parses a Markdown agent definition: optional YAML
// frontmatter delimited by "---" lines, then sections keyed by heading.
// Known headings (Description, Instructions, Tools, Skills and their
// aliases) map onto document fields; list sections are split on bullet or
// numbered markers. The parser is lenient about missing sections, but tools
// and skills are always set, defaulting to empty lists when the
// corresponding section is absent.
func ParseMarkdown(content string) (map[string]any, error) {
	data := map[string]any{}
	lines := strings.Split(content, "\n")
	bodyStart := 0

	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				frontmatter := strings.Join(lines[1:i], "\n")
				if err := yaml.Unmarshal([]byte(frontmatter), &data); err != nil {
					return nil, fmt.Errorf("invalid YAML in frontmatter: %w", err)
				}
				if data == nil {
					data = map[string]any{}
				}
				bodyStart = i + 1
				break
			}
		}
	}

	body := strings.TrimSpace(strings.Join(lines[bodyStart:], "\n"))
	data["body"] = body

	sections := extractSections(body)

	if _, ok := data["name"]; !ok {
		if title := sections["title"]; title != "" {
			data["name"] = title
		} else {
			for _, line := range lines[bodyStart:] {
				if strings.HasPrefix(line, "#") {
					data["name"] = strings.TrimSpace(strings.TrimLeft(line, "#"))
					break
				}
			}
		}
	}

	if _, ok := data["description"]; !ok {
		if desc := sections["description"]; desc != "" {
			data["description"] = desc
		} else if len(body) > 500 {
			data["description"] = body[:500]
		} else {
			data["description"] = body
		}
	}

	if _, ok := data["instructions"]; !ok {
		if instructions := sections["instructions"]; instructions != "" {
			data["instructions"] = instructions
		}
	}

	if _, ok := data["tools"]; !ok {
		data["tools"] = parseListSection(sections["tools"])
	}
	if _, ok := data["skills"]; !ok {
		data["skills"] = parseListSection(sections["skills"])
	}

	return data, nil
}

// ValidateMarkdownDocument checks the minimal fields a Markdown upload must
// yield: a name and either a description or a body.
func ValidateMarkdownDocument(data map[string]any) (bool, []string) {
	var errs []string
	if _, ok := data["name"]; !ok {
		errs = append(errs, "Missing required field: 'name'")
	}
	_, hasDesc := data["description"]
	_, hasBody := data["body"]
	if !hasDesc && !hasBody {
		errs = append(errs, "Missing required field: 'description' or 'body'")
	}
	return len(errs) == 0, errs
}

// extractSections splits markdown content on #/##/### headings and maps
// recognized heading names onto section keys. The first H1 becomes the
// title.
func extractSections(content string) map[string]string {
	sections := map[string]string{}

	matches := headingRe.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			sections["preamble"] = trimmed
		}
		return sections
	}

	if preamble := strings.TrimSpace(content[:matches[0][0]]); preamble != "" {
		sections["preamble"] = preamble
	}

	for i, m := range matches {
		level := m[3] - m[2]
		heading := strings.ToLower(strings.TrimSpace(content[m[4]:m[5]]))

		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		text := strings.TrimSpace(content[m[1]:end])

		switch heading {
		case "description", "about", "overview":
			sections["description"] = text
		case "instructions", "instruction", "system prompt", "prompt":
			sections["instructions"] = text
		case "tools", "tool":
			sections["tools"] = text
		case "skills", "skill", "capabilities":
			sections["skills"] = text
		default:
			if level == 1 && sections["title"] == "" {
				sections["title"] = strings.TrimSpace(content[m[4]:m[5]])
			}
		}
	}

	return sections
}

// parseListSection extracts items from "-"/"*" bullets and "1." numbered
// lines. An empty section yields an empty (non-nil) list.
func parseListSection(content string) []string {
	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			items = append(items, strings.TrimSpace(line[2:]))
		case orderedItemRe.MatchString(line):
			items = append(items, strings.TrimSpace(orderedItemRe.ReplaceAllString(line, "")))
		}
	}
	return items
}
