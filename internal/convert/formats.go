// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

// Parser reads one source-format document into the IR. Validate checks only
// the minimal fields the format itself requires; Parse is a direct,
// non-validating field copy that the converter runs after Validate passes.
type Parser interface {
	Validate(data map[string]any) (bool, []string)
	Parse(data map[string]any) *AgentIR
}

// Serializer projects an IR into one target-format document.
type Serializer interface {
	Serialize(ir *AgentIR) map[string]any
}

// Helpers for reading loosely-typed values out of decoded documents. Parse
// is non-validating, so these are best-effort: wrong-typed values degrade to
// zero values rather than errors.

func strField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

func strSliceField(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func mapField(data map[string]any, key string) map[string]any {
	if m, ok := data[key].(map[string]any); ok {
		return m
	}
	return nil
}

// copyCustomFields stashes every key not claimed by the format into the IR's
// residual map.
func copyCustomFields(ir *AgentIR, data map[string]any, known map[string]struct{}) {
	for key, value := range data {
		if _, claimed := known[key]; !claimed {
			ir.SetCustomField(key, value)
		}
	}
}

func keySet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
