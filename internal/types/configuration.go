package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Configuration holds the parameter values applied to a chain when
// generating answers. ConfigSchema caches the shape reported by the
// chain service; ConfigValues is validated against it by callers.
type Configuration struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	Session      *Session       `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	ChainID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"chain_id"`
	Chain        *Chain         `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChainID;references:ID" json:"chain,omitempty"`
	ConfigSchema datatypes.JSON `gorm:"column:config_schema;type:jsonb" json:"config_schema,omitempty"`
	ConfigValues datatypes.JSON `gorm:"column:config_values;type:jsonb" json:"config_values,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`

	Answers []*Answer `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConfigurationID;references:ID" json:"answers,omitempty"`
}

func (Configuration) TableName() string {
	return "configuration"
}
