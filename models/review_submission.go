package models

import "time"

// ReviewSubmission represents the review_submissions table: one
// completed peer review. It is created only by converting a ReviewLock
// and is immutable afterwards.
type ReviewSubmission struct {
	ReviewID             int        `gorm:"primaryKey;column:review_id" json:"review_id"`
	ReviewExerciseID     int        `gorm:"column:review_exercise_id" json:"review_exercise_id"`
	ReviewerUserID       *int       `gorm:"column:reviewer_user_id" json:"reviewer_user_id,omitempty"`
	ReviewerGroupID      *int       `gorm:"column:reviewer_group_id" json:"reviewer_group_id,omitempty"`
	OriginalSubmissionID int        `gorm:"column:original_submission_id" json:"original_submission_id"`
	CreateAt             time.Time  `gorm:"column:create_at" json:"create_at"`
	DeleteAt             *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	ReviewExercise     ReviewExercise     `gorm:"foreignKey:ReviewExerciseID" json:"review_exercise,omitempty"`
	ReviewerUser       *User              `gorm:"foreignKey:ReviewerUserID" json:"reviewer_user,omitempty"`
	ReviewerGroup      *StudentGroup      `gorm:"foreignKey:ReviewerGroupID" json:"reviewer_group,omitempty"`
	OriginalSubmission OriginalSubmission `gorm:"foreignKey:OriginalSubmissionID" json:"original_submission,omitempty"`
	Answers            []ReviewAnswer     `gorm:"foreignKey:ReviewID" json:"answers,omitempty"`
}

// ReviewAnswer represents the review_answers table: one answer of a
// completed review, ordered by AnswerOrder to match the question form.
type ReviewAnswer struct {
	AnswerID    int     `gorm:"primaryKey;column:answer_id" json:"answer_id"`
	ReviewID    int     `gorm:"column:review_id" json:"review_id"`
	QuestionID  int     `gorm:"column:question_id" json:"question_id"`
	AnswerOrder int     `gorm:"column:answer_order" json:"answer_order"`
	Value       *string `gorm:"column:value" json:"value,omitempty"`
	ChoiceID    *int    `gorm:"column:choice_id" json:"choice_id,omitempty"`
	FilePath    *string `gorm:"column:file_path" json:"file_path,omitempty"`

	// Relations
	Question Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

// TableName overrides
func (ReviewSubmission) TableName() string {
	return "review_submissions"
}

func (ReviewAnswer) TableName() string {
	return "review_answers"
}
