// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/agentmodes/agentmodes/internal/config"
)

// ErrBuiltinTemplate is returned when a caller tries to update or delete a
// seeded builtin template.
var ErrBuiltinTemplate = errors.New("builtin templates cannot be modified")

// Store wraps the GORM database connection
type Store struct {
	db *gorm.DB
}

// NewStore creates a new GORM database connection
func NewStore(cfg *config.DatabaseConfig) (*Store, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.GetDSN())
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent), // Reduce GORM log noise
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Store{db: db}, nil
}

// AutoMigrate runs database migrations
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&AgentTemplate{},
		&AgentConfiguration{},
		&CustomAgent{},
		&Team{},
		&Conversion{},
	)
}

// Seed inserts the builtin agent templates, skipping any that already exist.
func (s *Store) Seed(ctx context.Context) error {
	builtins := []AgentTemplate{
		{
			Name:        "Code Explorer",
			Description: "Specialized agent for exploring and understanding codebases. Can search, analyze, and explain code structure.",
			Category:    "Development",
			IsBuiltin:   true,
		},
		{
			Name:        "Test Runner",
			Description: "Agent focused on running tests, analyzing test results, and debugging test failures.",
			Category:    "Testing",
			IsBuiltin:   true,
		},
		{
			Name:        "Documentation Generator",
			Description: "Creates comprehensive documentation from code, including API docs, README files, and inline comments.",
			Category:    "Documentation",
			IsBuiltin:   true,
		},
		{
			Name:        "Bug Fixer",
			Description: "Identifies, analyzes, and fixes bugs in code. Can trace issues and propose solutions.",
			Category:    "Development",
			IsBuiltin:   true,
		},
		{
			Name:        "Code Reviewer",
			Description: "Reviews code for quality, style, security issues, and best practices.",
			Category:    "Development",
			IsBuiltin:   true,
		},
	}

	for i := range builtins {
		err := s.db.WithContext(ctx).
			Where("name = ? AND is_builtin = ?", builtins[i].Name, true).
			FirstOrCreate(&builtins[i]).Error
		if err != nil {
			return fmt.Errorf("failed to seed template %q: %w", builtins[i].Name, err)
		}
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ============================================================================
// Template Operations
// ============================================================================

// ListTemplates retrieves all templates, builtins first
func (s *Store) ListTemplates(ctx context.Context) ([]*AgentTemplate, error) {
	var templates []*AgentTemplate
	err := s.db.WithContext(ctx).
		Order("is_builtin DESC, name ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplate retrieves a single template by ID
func (s *Store) GetTemplate(ctx context.Context, id string) (*AgentTemplate, error) {
	var template AgentTemplate
	err := s.db.WithContext(ctx).First(&template, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// CreateTemplate creates a new template
func (s *Store) CreateTemplate(ctx context.Context, template *AgentTemplate) error {
	return s.db.WithContext(ctx).Create(template).Error
}

// UpdateTemplate updates template details. Builtin templates are rejected.
func (s *Store) UpdateTemplate(ctx context.Context, id, name, description, category string) error {
	existing, err := s.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsBuiltin {
		return ErrBuiltinTemplate
	}

	return s.db.WithContext(ctx).Model(&AgentTemplate{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"description": description,
			"category":    category,
		}).Error
}

// DeleteTemplate deletes a template. Builtin templates are rejected.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	existing, err := s.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsBuiltin {
		return ErrBuiltinTemplate
	}

	return s.db.WithContext(ctx).Delete(&AgentTemplate{}, "id = ?", id).Error
}

// ============================================================================
// Configuration Operations
// ============================================================================

// ListConfigurations retrieves all configurations with their templates
func (s *Store) ListConfigurations(ctx context.Context) ([]*AgentConfiguration, error) {
	var configs []*AgentConfiguration
	err := s.db.WithContext(ctx).
		Preload("Template").
		Order("updated_at DESC").
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	return configs, nil
}

// GetConfiguration retrieves a single configuration by ID
func (s *Store) GetConfiguration(ctx context.Context, id string) (*AgentConfiguration, error) {
	var cfg AgentConfiguration
	err := s.db.WithContext(ctx).Preload("Template").First(&cfg, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// CreateConfiguration creates a new configuration
func (s *Store) CreateConfiguration(ctx context.Context, cfg *AgentConfiguration) error {
	return s.db.WithContext(ctx).Create(cfg).Error
}

// UpdateConfiguration updates configuration details
func (s *Store) UpdateConfiguration(ctx context.Context, id, name, configJSON string, templateID *string) error {
	return s.db.WithContext(ctx).Model(&AgentConfiguration{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"config_json": configJSON,
			"template_id": templateID,
		}).Error
}

// DeleteConfiguration deletes a configuration
func (s *Store) DeleteConfiguration(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&AgentConfiguration{}, "id = ?", id).Error
}

// ============================================================================
// Custom Agent Operations
// ============================================================================

// ListCustomAgents retrieves all custom agents, most recently updated first
func (s *Store) ListCustomAgents(ctx context.Context) ([]*CustomAgent, error) {
	var agents []*CustomAgent
	err := s.db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

// GetCustomAgent retrieves a single custom agent by ID
func (s *Store) GetCustomAgent(ctx context.Context, id string) (*CustomAgent, error) {
	var agent CustomAgent
	err := s.db.WithContext(ctx).First(&agent, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// GetCustomAgentBySlug retrieves a single custom agent by slug
func (s *Store) GetCustomAgentBySlug(ctx context.Context, slug string) (*CustomAgent, error) {
	var agent CustomAgent
	err := s.db.WithContext(ctx).First(&agent, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// AgentExistsBySlug reports whether a custom agent with the given slug
// exists. It backs the team validator's existence check.
func (s *Store) AgentExistsBySlug(ctx context.Context, slug string) bool {
	var count int64
	err := s.db.WithContext(ctx).Model(&CustomAgent{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false
	}
	return count > 0
}

// CreateCustomAgent creates a new custom agent
func (s *Store) CreateCustomAgent(ctx context.Context, agent *CustomAgent) error {
	return s.db.WithContext(ctx).Create(agent).Error
}

// UpdateCustomAgent updates a custom agent
func (s *Store) UpdateCustomAgent(ctx context.Context, agent *CustomAgent) error {
	return s.db.WithContext(ctx).Save(agent).Error
}

// DeleteCustomAgent deletes a custom agent
func (s *Store) DeleteCustomAgent(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&CustomAgent{}, "id = ?", id).Error
}

// ============================================================================
// Team Operations
// ============================================================================

// ListTeams retrieves all teams, most recently updated first
func (s *Store) ListTeams(ctx context.Context) ([]*Team, error) {
	var teams []*Team
	err := s.db.WithContext(ctx).
		Order("updated_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// GetTeam retrieves a single team by ID
func (s *Store) GetTeam(ctx context.Context, id string) (*Team, error) {
	var team Team
	err := s.db.WithContext(ctx).First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// CreateTeam creates a new team
func (s *Store) CreateTeam(ctx context.Context, team *Team) error {
	return s.db.WithContext(ctx).Create(team).Error
}

// UpdateTeam updates a team
func (s *Store) UpdateTeam(ctx context.Context, team *Team) error {
	return s.db.WithContext(ctx).Save(team).Error
}

// DeleteTeam deletes a team
func (s *Store) DeleteTeam(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&Team{}, "id = ?", id).Error
}

// ============================================================================
// Conversion Operations
// ============================================================================

// CreateConversion records a successful format conversion
func (s *Store) CreateConversion(ctx context.Context, conv *Conversion) error {
	return s.db.WithContext(ctx).Create(conv).Error
}

// ListConversions retrieves conversion records, newest first.
// If limit is 0, returns all records.
func (s *Store) ListConversions(ctx context.Context, limit int) ([]*Conversion, error) {
	var convs []*Conversion
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}
