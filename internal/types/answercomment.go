package types

import (
	"time"

	"github.com/google/uuid"
)

type AnswerComment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AnswerID     uuid.UUID `gorm:"type:uuid;not null;index" json:"answer_id"`
	Answer       *Answer   `gorm:"constraint:OnDelete:CASCADE;foreignKey:AnswerID;references:ID" json:"answer,omitempty"`
	CommentText  string    `gorm:"column:comment_text;not null" json:"comment_text"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	LastModified time.Time `gorm:"column:last_modified;not null;autoCreateTime;autoUpdateTime" json:"last_modified"`
}

func (AnswerComment) TableName() string {
	return "answer_comment"
}
