package models

import (
	"time"

	"github.com/google/uuid"
)

// Question is a posted question with its answers and upvotes. Name is the
// author's display name, denormalized at creation time for cheap reads.
type Question struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user"`
	Name      string    `gorm:"type:varchar(100)" json:"name"`
	TextOne   string    `gorm:"type:text;not null" json:"textone"`
	TextTwo   string    `gorm:"type:text" json:"texttwo"`
	Answers   []Answer  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"answers"`
	Upvotes   []Upvote  `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"upvotes"`
	CreatedAt time.Time `gorm:"index" json:"date"`
}

// Answer is one reply on a question, kept in creation order.
type Answer struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	QuestionID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user"`
	Name       string    `gorm:"type:varchar(100)" json:"name"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"date"`
}

// Upvote records one vote by one user on one question. The composite
// unique index enforces at most one active upvote per (question, user).
type Upvote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_upvotes_question_user" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_upvotes_question_user" json:"user"`
	CreatedAt  time.Time `json:"-"`
}
