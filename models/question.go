package models

import "time"

// Question kinds supported in a review form.
const (
	QuestionKindText   = "text"
	QuestionKindChoice = "choice"
	QuestionKindFile   = "file"
)

// Question represents the questions table: one item of a review form,
// ordered by QuestionOrder.
type Question struct {
	QuestionID       int        `gorm:"primaryKey;column:question_id" json:"question_id"`
	ReviewExerciseID int        `gorm:"column:review_exercise_id" json:"review_exercise_id"`
	Kind             string     `gorm:"column:kind" json:"kind"`
	Text             string     `gorm:"column:text" json:"text"`
	Required         bool       `gorm:"column:required" json:"required"`
	QuestionOrder    int        `gorm:"column:question_order" json:"question_order"`
	CreateAt         *time.Time `gorm:"column:create_at" json:"create_at"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Choices []QuestionChoice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

// QuestionChoice represents the question_choices table for
// single-choice questions.
type QuestionChoice struct {
	ChoiceID    int    `gorm:"primaryKey;column:choice_id" json:"choice_id"`
	QuestionID  int    `gorm:"column:question_id" json:"question_id"`
	Label       string `gorm:"column:label" json:"label"`
	ChoiceOrder int    `gorm:"column:choice_order" json:"choice_order"`
}

// TableName overrides
func (Question) TableName() string {
	return "questions"
}

func (QuestionChoice) TableName() string {
	return "question_choices"
}
