package types

import (
	"time"

	"github.com/google/uuid"
)

type Answer struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ChainID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"chain_id"`
	Chain           *Chain         `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChainID;references:ID" json:"chain,omitempty"`
	QuestionID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"question_id"`
	Question        *Question      `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	ConfigurationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"configuration_id"`
	Configuration   *Configuration `gorm:"constraint:OnDelete:CASCADE;foreignKey:ConfigurationID;references:ID" json:"configuration,omitempty"`
	GeneratedAnswer string         `gorm:"column:generated_answer;not null" json:"generated_answer"`
	Score           *int           `gorm:"column:score;check:valid_score_range,score >= 0 AND score <= 5" json:"score,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`

	Comments []*AnswerComment `gorm:"constraint:OnDelete:CASCADE;foreignKey:AnswerID;references:ID" json:"comments,omitempty"`
}

func (Answer) TableName() string {
	return "answer"
}
