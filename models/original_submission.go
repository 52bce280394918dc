package models

import "time"

// Original submission states. Only ready_for_review submissions are
// candidates for allocation; boomerang marks work bounced back to the
// student by staff.
const (
	SubmissionStateSubmitted      = "submitted"
	SubmissionStateReadyForReview = "ready_for_review"
	SubmissionStateBoomerang      = "boomerang"
)

// OriginalSubmission represents the original_submissions table: one
// unit of reviewable work. Exactly one of SubmitterUserID and
// SubmitterGroupID is set, depending on the exercise's group mode.
// Only the newest submission per submitter counts as the current
// reviewable artifact; older rows stay for history.
type OriginalSubmission struct {
	SubmissionID     int    `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	ExerciseID       int    `gorm:"column:exercise_id" json:"exercise_id"`
	SubmitterUserID  *int   `gorm:"column:submitter_user_id" json:"submitter_user_id,omitempty"`
	SubmitterGroupID *int   `gorm:"column:submitter_group_id" json:"submitter_group_id,omitempty"`
	State            string `gorm:"column:state" json:"state"`

	// Content reference: inline text or a stored file path, never both.
	Text     *string `gorm:"column:text" json:"text,omitempty"`
	FilePath *string `gorm:"column:file_path" json:"file_path,omitempty"`

	// IsPlaceholder marks empty submissions auto-created so that group
	// peer-review has a target row for every member.
	IsPlaceholder bool `gorm:"column:is_placeholder" json:"is_placeholder"`

	CreateAt time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Exercise       SubmissionExercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	SubmitterUser  *User              `gorm:"foreignKey:SubmitterUserID" json:"submitter_user,omitempty"`
	SubmitterGroup *StudentGroup      `gorm:"foreignKey:SubmitterGroupID" json:"submitter_group,omitempty"`
}

// IsValidSubmissionState reports whether s is one of the known states.
func IsValidSubmissionState(s string) bool {
	switch s {
	case SubmissionStateSubmitted, SubmissionStateReadyForReview, SubmissionStateBoomerang:
		return true
	}
	return false
}

// TableName specifies the table name for OriginalSubmission.
func (OriginalSubmission) TableName() string {
	return "original_submissions"
}
