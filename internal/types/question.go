package types

import (
	"time"

	"github.com/google/uuid"
)

type Question struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID      uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	Session        *Session  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	QuestionText   string    `gorm:"column:question_text;not null" json:"question_text"`
	ExpectedAnswer *string   `gorm:"column:expected_answer" json:"expected_answer,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	LastModified   time.Time `gorm:"column:last_modified;not null;autoCreateTime;autoUpdateTime" json:"last_modified"`

	Answers []*Answer `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"answers,omitempty"`
}

func (Question) TableName() string {
	return "question"
}
