// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package logger

import (
	"github.com/rs/zerolog"
)

// Static logger getters that map directly to config.yaml log.levels
// These ensure consistent logger names across the codebase

// GetAPILogger returns a logger for API operations
func GetAPILogger() zerolog.Logger {
	return GetLogger("api")
}

// GetDatabaseLogger returns a logger for database operations
func GetDatabaseLogger() zerolog.Logger {
	return GetLogger("database")
}

// GetValidationLogger returns a logger for validator runs
func GetValidationLogger() zerolog.Logger {
	return GetLogger("validation")
}

// GetConvertLogger returns a logger for format conversion operations
func GetConvertLogger() zerolog.Logger {
	return GetLogger("convert")
}

// GetUploadLogger returns a logger for file upload handling
func GetUploadLogger() zerolog.Logger {
	return GetLogger("upload")
}
