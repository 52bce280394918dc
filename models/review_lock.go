package models

import "time"

// ReviewLock represents the review_locks table: an exclusive,
// time-bounded claim by one reviewer on one original submission within
// one review exercise. Exactly one of ReviewerUserID and
// ReviewerGroupID is set. Every row is a pending claim: completing a
// review deletes the lock in the same transaction that creates the
// ReviewSubmission, so a lock row never outlives its review.
//
// One of the reviewer columns is always NULL, and MySQL unique indexes
// allow repeated NULLs, so uniqueness of the pending claim cannot come
// from an index. GetOrCreateLock runs its check-then-create at
// SERIALIZABLE instead.
type ReviewLock struct {
	LockID               int       `gorm:"primaryKey;column:lock_id" json:"lock_id"`
	LockRef              string    `gorm:"column:lock_ref;unique" json:"lock_ref"`
	ReviewExerciseID     int       `gorm:"column:review_exercise_id" json:"review_exercise_id"`
	ReviewerUserID       *int      `gorm:"column:reviewer_user_id" json:"reviewer_user_id,omitempty"`
	ReviewerGroupID      *int      `gorm:"column:reviewer_group_id" json:"reviewer_group_id,omitempty"`
	OriginalSubmissionID int       `gorm:"column:original_submission_id" json:"original_submission_id"`
	CreateAt             time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	ReviewExercise     ReviewExercise     `gorm:"foreignKey:ReviewExerciseID" json:"review_exercise,omitempty"`
	ReviewerUser       *User              `gorm:"foreignKey:ReviewerUserID" json:"reviewer_user,omitempty"`
	ReviewerGroup      *StudentGroup      `gorm:"foreignKey:ReviewerGroupID" json:"reviewer_group,omitempty"`
	OriginalSubmission OriginalSubmission `gorm:"foreignKey:OriginalSubmissionID" json:"original_submission,omitempty"`
}

// ExpiresAt returns when the lock lapses given the exercise's expiry
// window. CreateAt is reset on every refresh, so this moves forward
// while the reviewer keeps the page open.
func (l *ReviewLock) ExpiresAt(expiry time.Duration) time.Time {
	return l.CreateAt.Add(expiry)
}

// TableName specifies the table name for ReviewLock.
func (ReviewLock) TableName() string {
	return "review_locks"
}
