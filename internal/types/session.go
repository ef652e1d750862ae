package types

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Description  *string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	LastModified time.Time  `gorm:"column:last_modified;not null;autoCreateTime;autoUpdateTime" json:"last_modified"`

	Chains         []*Chain         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"chains,omitempty"`
	Questions      []*Question      `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"questions,omitempty"`
	Configurations []*Configuration `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"configurations,omitempty"`
}

func (Session) TableName() string {
	return "session"
}
