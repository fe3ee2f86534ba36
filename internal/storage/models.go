// Copyright (C) 2026 Agentmodes
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList represents a JSON array of strings stored in a text column
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = []string{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("cannot scan StringList from non-string/[]byte value")
	}
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// JSONMap represents a JSON object stored in a text column
type JSONMap map[string]any

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("cannot scan JSONMap from non-string/[]byte value")
	}
}

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// TeamMember is one entry of a team's agents list
type TeamMember struct {
	Slug     string `json:"slug"`
	Role     string `json:"role,omitempty"`
	Priority *int   `json:"priority,omitempty"`
}

// TeamMembers represents the JSON-encoded member list of a team
type TeamMembers []TeamMember

// Scan implements the sql.Scanner interface
func (m *TeamMembers) Scan(value any) error {
	if value == nil {
		*m = TeamMembers{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("cannot scan TeamMembers from non-string/[]byte value")
	}
}

// Value implements the driver.Valuer interface
func (m TeamMembers) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	return json.Marshal(m)
}

// AgentTemplate represents the GORM model for agent templates.
// Builtin templates are seeded at migration time and cannot be updated or
// deleted through the store.
type AgentTemplate struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	Name        string    `gorm:"not null;type:text;uniqueIndex:idx_template_name_builtin" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"type:text" json:"category"`
	IsBuiltin   bool      `gorm:"not null;default:false;uniqueIndex:idx_template_name_builtin" json:"is_builtin"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for AgentTemplate
func (AgentTemplate) TableName() string {
	return "agent_templates"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (t *AgentTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// AgentConfiguration represents the GORM model for saved configurations.
// ConfigJSON holds the configuration document as a JSON string.
type AgentConfiguration struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	Name       string    `gorm:"not null;type:text" json:"name"`
	TemplateID *string   `gorm:"type:text;index" json:"template_id"`
	ConfigJSON string    `gorm:"type:text;column:config_json" json:"config_json"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Template *AgentTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
}

// TableName returns the table name for AgentConfiguration
func (AgentConfiguration) TableName() string {
	return "agent_configurations"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (c *AgentConfiguration) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TemplateName returns the name of the linked template, or empty when the
// configuration is standalone.
func (c *AgentConfiguration) TemplateName() string {
	if c.Template == nil {
		return ""
	}
	return c.Template.Name
}

// CustomAgent represents the GORM model for custom agent records. The slug
// is unique and backs team member existence checks.
type CustomAgent struct {
	ID                  string     `gorm:"primaryKey;type:text" json:"id"`
	Slug                string     `gorm:"not null;type:text;uniqueIndex" json:"slug"`
	Name                string     `gorm:"not null;type:text" json:"name"`
	Description         string     `gorm:"type:text" json:"description"`
	Instructions        string     `gorm:"type:text" json:"instructions"`
	Category            string     `gorm:"type:text" json:"category"`
	Capabilities        StringList `gorm:"type:text" json:"capabilities"`
	Tools               StringList `gorm:"type:text" json:"tools"`
	Skills              StringList `gorm:"type:text" json:"skills"`
	SystemPrompt        string     `gorm:"type:text;column:system_prompt" json:"system_prompt"`
	DefaultModel        string     `gorm:"type:text;column:default_model" json:"default_model"`
	MaxTurns            int        `gorm:"type:integer;column:max_turns" json:"max_turns"`
	AllowedEditPatterns StringList `gorm:"type:text;column:allowed_edit_patterns" json:"allowed_edit_patterns"`
	ConfigSchema        JSONMap    `gorm:"type:text;column:config_schema" json:"config_schema"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for CustomAgent
func (CustomAgent) TableName() string {
	return "custom_agents"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (a *CustomAgent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Capabilities == nil {
		a.Capabilities = StringList{}
	}
	if a.Tools == nil {
		a.Tools = StringList{}
	}
	if a.Skills == nil {
		a.Skills = StringList{}
	}
	return nil
}

// Team represents the GORM model for teams
type Team struct {
	ID                 string      `gorm:"primaryKey;type:text" json:"id"`
	Slug               string      `gorm:"not null;type:text;uniqueIndex" json:"slug"`
	Name               string      `gorm:"not null;type:text" json:"name"`
	Description        string      `gorm:"type:text" json:"description"`
	Agents             TeamMembers `gorm:"type:text" json:"agents"`
	Orchestrator       string      `gorm:"type:text" json:"orchestrator"`
	Workflow           JSONMap     `gorm:"type:text" json:"workflow"`
	MaxConcurrentTasks int         `gorm:"type:integer;column:max_concurrent_tasks" json:"max_concurrent_tasks"`
	Timeout            float64     `gorm:"type:real" json:"timeout"`
	Metadata           JSONMap     `gorm:"type:text" json:"metadata"`
	CreatedAt          time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Team
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Agents == nil {
		t.Agents = TeamMembers{}
	}
	return nil
}

// Conversion is an audit record of one successful format conversion
type Conversion struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	SourceFormat string    `gorm:"not null;type:text;index;column:source_format" json:"source_format"`
	TargetFormat string    `gorm:"not null;type:text;index;column:target_format" json:"target_format"`
	SourceJSON   string    `gorm:"type:text;column:source_json" json:"source_json"`
	TargetJSON   string    `gorm:"type:text;column:target_json" json:"target_json"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for Conversion
func (Conversion) TableName() string {
	return "conversions"
}

// BeforeCreate is a GORM hook that runs before creating a record
func (c *Conversion) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
