package services

import "errors"

// Domain outcomes of the allocation and lock lifecycle. The first two
// are expected control flow, not failures; controllers map them to
// friendly responses instead of error pages.
var (
	// ErrNothingToReview means no eligible submission exists for the
	// reviewer right now. The caller must not create a lock.
	ErrNothingToReview = errors.New("no submission available for review")

	// ErrReviewsDone means the reviewer already completed the required
	// number of reviews for the exercise.
	ErrReviewsDone = errors.New("required reviews already completed")

	// ErrStaleLock means the lock was concurrently completed or swept
	// before this request got to it. The reviewer should request a new
	// lock and retry.
	ErrStaleLock = errors.New("review lock no longer exists")

	// ErrNotEligible means a reviewer-chosen submission fails the
	// eligibility rules (capped, own work, already reviewed, not ready).
	ErrNotEligible = errors.New("submission is not eligible for review")

	// ErrInvalidAnswers means the submitted answers do not match the
	// exercise's question form.
	ErrInvalidAnswers = errors.New("answers do not match the review form")

	// ErrBadExerciseConfig indicates a caller or configuration bug,
	// e.g. a group-mode exercise invoked without a group. It is allowed
	// to propagate as a hard failure.
	ErrBadExerciseConfig = errors.New("invalid review exercise configuration")
)
