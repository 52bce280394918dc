package services

import (
	"errors"
	"fmt"
	"time"

	"peer-review-api/config"
	"peer-review-api/models"

	"gorm.io/gorm"
)

// Exercise policy evaluation helpers shared by the controllers.

// DeadlineFor returns the effective closing time of an exercise for one
// user: the base deadline, or the user's deviation when one extends it.
func DeadlineFor(db *gorm.DB, kind string, base models.ExerciseBase, exerciseID, userID int) (time.Time, error) {
	if db == nil {
		db = config.DB
	}

	var dev models.ExerciseDeviation
	err := db.Where("kind = ? AND exercise_id = ? AND user_id = ?", kind, exerciseID, userID).
		Order("new_deadline DESC").
		First(&dev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return base.ClosingTime, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load deviation: %w", err)
	}

	if dev.NewDeadline.After(base.ClosingTime) {
		return dev.NewDeadline, nil
	}
	return base.ClosingTime, nil
}

// IsOpenFor reports whether the exercise accepts work from the user at
// the given instant.
func IsOpenFor(db *gorm.DB, kind string, base models.ExerciseBase, exerciseID, userID int, now time.Time) (bool, error) {
	if base.Hidden || now.Before(base.OpeningTime) {
		return false, nil
	}
	deadline, err := DeadlineFor(db, kind, base, exerciseID, userID)
	if err != nil {
		return false, err
	}
	return !now.After(deadline), nil
}

// ReviewsVisibleTo reports whether reviews of the student's own work
// may be shown to them yet: they must first complete the exercise's
// minimum number of reviews themselves.
func ReviewsVisibleTo(db *gorm.DB, re *models.ReviewExercise, userID int) (bool, error) {
	if db == nil {
		db = config.DB
	}
	if re.MinReviewsVisible <= 0 {
		return true, nil
	}

	var done int64
	if err := db.Model(&models.ReviewSubmission{}).
		Where("review_exercise_id = ? AND reviewer_user_id = ? AND delete_at IS NULL",
			re.ExerciseID, userID).
		Count(&done).Error; err != nil {
		return false, fmt.Errorf("failed to count completed reviews: %w", err)
	}
	return done >= int64(re.MinReviewsVisible), nil
}
