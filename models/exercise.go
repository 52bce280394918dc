package models

import "time"

// Review models supported by a ReviewExercise. RANDOM assigns the next
// target automatically, CHOOSE lets the reviewer pick from the eligible
// set, GROUP assigns the members of the reviewer's own group.
const (
	ReviewModelRandom = "RANDOM"
	ReviewModelChoose = "CHOOSE"
	ReviewModelGroup  = "GROUP"
)

// ExerciseBase holds the fields shared by submission and review
// exercises. The two concrete kinds embed it instead of inheriting
// from a common table.
type ExerciseBase struct {
	CourseID    int        `gorm:"column:course_id" json:"course_id"`
	Name        string     `gorm:"column:name" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	OpeningTime time.Time  `gorm:"column:opening_time" json:"opening_time"`
	ClosingTime time.Time  `gorm:"column:closing_time" json:"closing_time"`
	Hidden      bool       `gorm:"column:hidden" json:"hidden"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt    *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// SubmissionExercise represents the submission_exercises table: an
// exercise students submit original work to.
type SubmissionExercise struct {
	ExerciseID int `gorm:"primaryKey;column:exercise_id" json:"exercise_id"`
	ExerciseBase
	UseGroups bool `gorm:"column:use_groups" json:"use_groups"`
	// AcceptText / AcceptFile control which content kinds a submission
	// may carry. File storage itself is handled by the upload service.
	AcceptText bool `gorm:"column:accept_text" json:"accept_text"`
	AcceptFile bool `gorm:"column:accept_file" json:"accept_file"`

	// Relations
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

// ReviewExercise represents the review_exercises table: an exercise
// whose work items are peer reviews of another exercise's submissions.
// The policy columns drive the allocation engine.
type ReviewExercise struct {
	ExerciseID int `gorm:"primaryKey;column:exercise_id" json:"exercise_id"`
	ExerciseBase
	ReviewableExerciseID int    `gorm:"column:reviewable_exercise_id" json:"reviewable_exercise_id"`
	ReviewModel          string `gorm:"column:review_model" json:"review_model"`
	UseGroups            bool   `gorm:"column:use_groups" json:"use_groups"`

	// ReviewCount is how many reviews each reviewer must complete.
	ReviewCount int `gorm:"column:review_count" json:"review_count"`
	// MaxReviewsPerSubmission caps pending locks + completed reviews
	// per original submission. Zero means unlimited.
	MaxReviewsPerSubmission int `gorm:"column:max_reviews_per_submission" json:"max_reviews_per_submission"`
	// MinSubmissionCount gates allocation until the reviewable exercise
	// has at least this many distinct submitters.
	MinSubmissionCount int `gorm:"column:min_submission_count" json:"min_submission_count"`
	// MinReviewsVisible is how many reviews a student must complete
	// before reviews of their own work become visible to them.
	MinReviewsVisible      int  `gorm:"column:min_reviews_visible" json:"min_reviews_visible"`
	CanReviewOwnSubmission bool `gorm:"column:can_review_own_submission" json:"can_review_own_submission"`
	// LockExpiryHours bounds how long a review lock stays reserved
	// without being refreshed or completed.
	LockExpiryHours int `gorm:"column:lock_expiry_hours" json:"lock_expiry_hours"`

	// Relations
	Course             Course             `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	ReviewableExercise SubmissionExercise `gorm:"foreignKey:ReviewableExerciseID" json:"reviewable_exercise,omitempty"`
	Questions          []Question         `gorm:"foreignKey:ReviewExerciseID" json:"questions,omitempty"`
}

// LockExpiry returns the configured lock lifetime as a duration.
func (re *ReviewExercise) LockExpiry() time.Duration {
	if re.LockExpiryHours <= 0 {
		return time.Hour
	}
	return time.Duration(re.LockExpiryHours) * time.Hour
}

// Deviation kinds, one per exercise variant.
const (
	DeviationKindSubmission = "submission"
	DeviationKindReview     = "review"
)

// ExerciseDeviation represents the exercise_deviations table: a
// per-student deadline extension for either exercise kind. Kind tells
// which table ExerciseID points into.
type ExerciseDeviation struct {
	DeviationID int        `gorm:"primaryKey;column:deviation_id" json:"deviation_id"`
	Kind        string     `gorm:"column:kind" json:"kind"`
	ExerciseID  int        `gorm:"column:exercise_id" json:"exercise_id"`
	UserID      int        `gorm:"column:user_id" json:"user_id"`
	NewDeadline time.Time  `gorm:"column:new_deadline" json:"new_deadline"`
	CreateAt    *time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName overrides
func (SubmissionExercise) TableName() string {
	return "submission_exercises"
}

func (ReviewExercise) TableName() string {
	return "review_exercises"
}

func (ExerciseDeviation) TableName() string {
	return "exercise_deviations"
}
