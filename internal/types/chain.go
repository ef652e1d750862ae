package types

import (
	"time"

	"github.com/google/uuid"
)

// Chain references an externally-hosted LCEL pipeline by file name.
// A file name can be selected into a session at most once.
type Chain struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_chain_session_file" json:"session_id"`
	Session   *Session  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	FileName  string    `gorm:"column:file_name;not null;uniqueIndex:idx_chain_session_file" json:"file_name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Configurations []*Configuration `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChainID;references:ID" json:"configurations,omitempty"`
	Answers        []*Answer        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChainID;references:ID" json:"answers,omitempty"`
}

func (Chain) TableName() string {
	return "chain"
}
