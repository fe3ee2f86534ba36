// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import "strings"

// DetectAgentFormat guesses which agent format raw content is written in.
// It is a substring heuristic, not a sound classifier: a "mode:" or "icon:"
// token anywhere implies roo, "config_schema" implies custom, and anything
// else falls back to claude. Coincidental matches (say, an instructions
// string mentioning "icon:") can misfire; callers must treat the result as
// advisory. It never fails.
func DetectAgentFormat(content string) string {
	lower := strings.ToLower(content)

	if strings.Contains(lower, "mode:") || strings.Contains(lower, "icon:") {
		return FormatRoo
	}
	if strings.Contains(lower, "config_schema") {
		return FormatCustom
	}
	return FormatClaude
}
