package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"peer-review-api/config"
	"peer-review-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// allocationRetries bounds how many times GetOrCreateLock re-runs the
// candidate pick after losing a per-submission cap race.
const allocationRetries = 3

// lifecycleTxOpts runs the lock lifecycle transactions at SERIALIZABLE.
// Under InnoDB's default REPEATABLE READ both the pending-lock lookup
// and the cap recount are consistent reads against the transaction
// snapshot, so two concurrent reviewers can pass both checks and
// commit conflicting rows. SERIALIZABLE turns those reads into locking
// reads; one of the racing transactions blocks or deadlocks and rolls
// back instead of committing a duplicate lock or an oversubscribed
// submission.
var lifecycleTxOpts = &sql.TxOptions{Isolation: sql.LevelSerializable}

// LockService manages the review lock lifecycle: allocation, refresh,
// expiry sweep and conversion into completed reviews.
type LockService struct {
	db    *gorm.DB
	clock Clock
}

func NewLockService(db *gorm.DB, clock Clock) *LockService {
	if db == nil {
		db = config.DB
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &LockService{db: db, clock: clock}
}

// AnswerInput is one answer of a review being completed, in form order.
type AnswerInput struct {
	QuestionID int     `json:"question_id" binding:"required"`
	Value      *string `json:"value"`
	ChoiceID   *int    `json:"choice_id"`
	FilePath   *string `json:"file_path"`
}

// SweepExpiredLocks deletes every lock of the exercise whose refresh
// timestamp is older than the expiry window. Expiry is evaluated
// lazily, on the next relevant access; there is no background timer.
func (s *LockService) SweepExpiredLocks(reviewExerciseID int, expiry time.Duration) (int64, error) {
	cutoff := s.clock.Now().Add(-expiry)
	res := s.db.Where("review_exercise_id = ? AND create_at < ?", reviewExerciseID, cutoff).
		Delete(&models.ReviewLock{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to sweep expired locks: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// SweepAllExpiredLocks runs the expiry sweep for every review exercise.
// Used by the sweep-locks command; the API path sweeps per exercise.
func (s *LockService) SweepAllExpiredLocks() (int64, error) {
	var exercises []models.ReviewExercise
	if err := s.db.Where("delete_at IS NULL").Find(&exercises).Error; err != nil {
		return 0, fmt.Errorf("failed to list review exercises: %w", err)
	}

	var total int64
	for i := range exercises {
		n, err := s.SweepExpiredLocks(exercises[i].ExerciseID, exercises[i].LockExpiry())
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// GetOrCreateLock returns the reviewer's current lock for the exercise,
// refreshing its timestamp, or allocates a new one. Returns
// ErrReviewsDone once the required review count is reached and
// ErrNothingToReview when no eligible submission exists.
//
// The pending-lock check and the insert run in one SERIALIZABLE
// transaction, so concurrent requests for the same reviewer serialize
// on the lookup instead of both inserting, and the in-transaction load
// recount keeps concurrent reviewers from oversubscribing one
// submission.
func (s *LockService) GetOrCreateLock(re *models.ReviewExercise, reviewer Reviewer) (*models.ReviewLock, error) {
	if !reviewer.Valid(re.UseGroups) {
		return nil, fmt.Errorf("%w: reviewer identity does not match group mode", ErrBadExerciseConfig)
	}

	if _, err := s.SweepExpiredLocks(re.ExerciseID, re.LockExpiry()); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var out *models.ReviewLock

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ReviewLock
		err := scopeReviewer(tx.Where("review_exercise_id = ?", re.ExerciseID), reviewer).
			First(&existing).Error
		if err == nil {
			// Refresh extends the expiry window; the target stays the same.
			if err := tx.Model(&models.ReviewLock{}).
				Where("lock_id = ?", existing.LockID).
				Update("create_at", now).Error; err != nil {
				return fmt.Errorf("failed to refresh lock: %w", err)
			}
			existing.CreateAt = now
			out = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up pending lock: %w", err)
		}

		done, err := s.completedReviewCount(tx, re.ExerciseID, reviewer)
		if err != nil {
			return err
		}
		if re.ReviewCount > 0 && done >= int64(re.ReviewCount) {
			return ErrReviewsDone
		}

		if re.ReviewModel == models.ReviewModelChoose {
			// CHOOSE exercises never auto-assign; the reviewer picks
			// from the eligible set via ChooseLock.
			return ErrNothingToReview
		}

		if re.MinSubmissionCount > 0 {
			submitters, err := s.distinctSubmitterCount(tx, re.ReviewableExerciseID)
			if err != nil {
				return err
			}
			if submitters < int64(re.MinSubmissionCount) {
				return ErrNothingToReview
			}
		}

		candidates, err := s.loadCandidates(tx, re)
		if err != nil {
			return err
		}
		reviewed, err := s.reviewedSet(tx, re.ExerciseID, reviewer)
		if err != nil {
			return err
		}

		if re.ReviewModel == models.ReviewModelGroup {
			members, err := s.reviewerGroupMemberIDs(tx, re, reviewer)
			if err != nil {
				return err
			}
			candidates = restrictToUsers(candidates, members)
		}

		excluded := make(map[int]bool)
		for attempt := 0; attempt < allocationRetries; attempt++ {
			pool := candidates
			if len(excluded) > 0 {
				pool = make([]SubmissionCandidate, 0, len(candidates))
				for _, c := range candidates {
					if !excluded[c.SubmissionID] {
						pool = append(pool, c)
					}
				}
			}

			pick := PickCandidate(PolicyOf(re), reviewer, pool, reviewed)
			if pick == nil {
				return ErrNothingToReview
			}

			lock := models.ReviewLock{
				LockRef:              uuid.NewString(),
				ReviewExerciseID:     re.ExerciseID,
				ReviewerUserID:       reviewer.UserID,
				ReviewerGroupID:      reviewer.GroupID,
				OriginalSubmissionID: pick.SubmissionID,
				CreateAt:             now,
			}
			if err := tx.Create(&lock).Error; err != nil {
				return fmt.Errorf("failed to create lock: %w", err)
			}

			// Recount inside the transaction: another reviewer may have
			// locked the same candidate between snapshot and insert.
			if re.MaxReviewsPerSubmission > 0 {
				load, err := s.submissionLoad(tx, re.ExerciseID, pick.SubmissionID)
				if err != nil {
					return err
				}
				if load > int64(re.MaxReviewsPerSubmission) {
					if err := tx.Delete(&models.ReviewLock{}, lock.LockID).Error; err != nil {
						return fmt.Errorf("failed to release oversubscribed lock: %w", err)
					}
					excluded[pick.SubmissionID] = true
					continue
				}
			}

			out = &lock
			return nil
		}
		return ErrNothingToReview
	}, lifecycleTxOpts)
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("OriginalSubmission").First(out, out.LockID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload lock: %w", err)
	}
	return out, nil
}

// ChooseLock creates a lock on a submission the reviewer picked from
// the eligible set of a CHOOSE-model exercise. If the reviewer already
// holds a pending lock it is returned unchanged.
func (s *LockService) ChooseLock(re *models.ReviewExercise, reviewer Reviewer, submissionID int) (*models.ReviewLock, error) {
	if !reviewer.Valid(re.UseGroups) {
		return nil, fmt.Errorf("%w: reviewer identity does not match group mode", ErrBadExerciseConfig)
	}
	if re.ReviewModel != models.ReviewModelChoose {
		return nil, fmt.Errorf("%w: exercise does not use reviewer choice", ErrBadExerciseConfig)
	}

	if _, err := s.SweepExpiredLocks(re.ExerciseID, re.LockExpiry()); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var out *models.ReviewLock

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ReviewLock
		err := scopeReviewer(tx.Where("review_exercise_id = ?", re.ExerciseID), reviewer).
			First(&existing).Error
		if err == nil {
			out = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up pending lock: %w", err)
		}

		done, err := s.completedReviewCount(tx, re.ExerciseID, reviewer)
		if err != nil {
			return err
		}
		if re.ReviewCount > 0 && done >= int64(re.ReviewCount) {
			return ErrReviewsDone
		}

		candidates, err := s.loadCandidates(tx, re)
		if err != nil {
			return err
		}
		reviewed, err := s.reviewedSet(tx, re.ExerciseID, reviewer)
		if err != nil {
			return err
		}

		chosen := false
		for _, c := range FilterEligible(PolicyOf(re), reviewer, candidates, reviewed) {
			if c.SubmissionID == submissionID {
				chosen = true
				break
			}
		}
		if !chosen {
			return ErrNotEligible
		}

		lock := models.ReviewLock{
			LockRef:              uuid.NewString(),
			ReviewExerciseID:     re.ExerciseID,
			ReviewerUserID:       reviewer.UserID,
			ReviewerGroupID:      reviewer.GroupID,
			OriginalSubmissionID: submissionID,
			CreateAt:             now,
		}
		if err := tx.Create(&lock).Error; err != nil {
			return fmt.Errorf("failed to create lock: %w", err)
		}

		if re.MaxReviewsPerSubmission > 0 {
			load, err := s.submissionLoad(tx, re.ExerciseID, submissionID)
			if err != nil {
				return err
			}
			if load > int64(re.MaxReviewsPerSubmission) {
				if err := tx.Delete(&models.ReviewLock{}, lock.LockID).Error; err != nil {
					return fmt.Errorf("failed to release oversubscribed lock: %w", err)
				}
				return ErrNotEligible
			}
		}

		out = &lock
		return nil
	}, lifecycleTxOpts)
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("OriginalSubmission").First(out, out.LockID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload lock: %w", err)
	}
	return out, nil
}

// EligibleChoices returns the candidate set a CHOOSE-model reviewer may
// pick from, after the usual eligibility filtering.
func (s *LockService) EligibleChoices(re *models.ReviewExercise, reviewer Reviewer) ([]SubmissionCandidate, error) {
	if !reviewer.Valid(re.UseGroups) {
		return nil, fmt.Errorf("%w: reviewer identity does not match group mode", ErrBadExerciseConfig)
	}

	if _, err := s.SweepExpiredLocks(re.ExerciseID, re.LockExpiry()); err != nil {
		return nil, err
	}

	candidates, err := s.loadCandidates(s.db, re)
	if err != nil {
		return nil, err
	}
	reviewed, err := s.reviewedSet(s.db, re.ExerciseID, reviewer)
	if err != nil {
		return nil, err
	}
	return FilterEligible(PolicyOf(re), reviewer, candidates, reviewed), nil
}

// CompleteLock converts a pending lock into a completed review. The
// review row, its answers and the lock deletion commit as one
// transaction, so observers see either the pending lock or the
// finished review, never both or neither. A lock that was concurrently
// completed or swept yields ErrStaleLock and writes nothing.
func (s *LockService) CompleteLock(re *models.ReviewExercise, reviewer Reviewer, lockRef string, answers []AnswerInput) (*models.ReviewSubmission, error) {
	if !reviewer.Valid(re.UseGroups) {
		return nil, fmt.Errorf("%w: reviewer identity does not match group mode", ErrBadExerciseConfig)
	}

	now := s.clock.Now()
	var out *models.ReviewSubmission

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lock models.ReviewLock
		err := scopeReviewer(tx.Where("review_exercise_id = ? AND lock_ref = ?", re.ExerciseID, lockRef), reviewer).
			First(&lock).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStaleLock
		}
		if err != nil {
			return fmt.Errorf("failed to load lock: %w", err)
		}

		// A lapsed lock that the sweep has not caught yet counts as
		// stale: its target may already be allocated to someone else.
		if now.Sub(lock.CreateAt) > re.LockExpiry() {
			if err := tx.Delete(&models.ReviewLock{}, lock.LockID).Error; err != nil {
				return fmt.Errorf("failed to drop expired lock: %w", err)
			}
			return ErrStaleLock
		}

		if err := s.validateAnswers(tx, re.ExerciseID, answers); err != nil {
			return err
		}

		review := models.ReviewSubmission{
			ReviewExerciseID:     re.ExerciseID,
			ReviewerUserID:       reviewer.UserID,
			ReviewerGroupID:      reviewer.GroupID,
			OriginalSubmissionID: lock.OriginalSubmissionID,
			CreateAt:             now,
		}
		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		for i, a := range answers {
			row := models.ReviewAnswer{
				ReviewID:    review.ReviewID,
				QuestionID:  a.QuestionID,
				AnswerOrder: i,
				Value:       a.Value,
				ChoiceID:    a.ChoiceID,
				FilePath:    a.FilePath,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create answer: %w", err)
			}
		}

		res := tx.Where("lock_id = ?", lock.LockID).Delete(&models.ReviewLock{})
		if res.Error != nil {
			return fmt.Errorf("failed to consume lock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Raced with a concurrent completion or sweep; roll back
			// the review we just wrote.
			return ErrStaleLock
		}

		out = &review
		return nil
	}, lifecycleTxOpts)
	if err != nil {
		return nil, err
	}

	go s.notifyReviewCompleted(out.ReviewID)

	return out, nil
}

// ExerciseLockStats summarizes ledger state for the staff view.
type ExerciseLockStats struct {
	PendingLocks     int64 `json:"pending_locks"`
	CompletedReviews int64 `json:"completed_reviews"`
}

// Stats returns pending lock and completed review counts for an
// exercise, after sweeping expired locks out of the way.
func (s *LockService) Stats(re *models.ReviewExercise) (*ExerciseLockStats, error) {
	if _, err := s.SweepExpiredLocks(re.ExerciseID, re.LockExpiry()); err != nil {
		return nil, err
	}

	var stats ExerciseLockStats
	if err := s.db.Model(&models.ReviewLock{}).
		Where("review_exercise_id = ?", re.ExerciseID).
		Count(&stats.PendingLocks).Error; err != nil {
		return nil, fmt.Errorf("failed to count locks: %w", err)
	}
	if err := s.db.Model(&models.ReviewSubmission{}).
		Where("review_exercise_id = ? AND delete_at IS NULL", re.ExerciseID).
		Count(&stats.CompletedReviews).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	return &stats, nil
}

// ===================== snapshot queries =====================

// loadCandidates builds the allocation engine's snapshot. The load
// aggregation and the submission listing are separate queries on
// purpose: joining the counts onto the distinct-latest selection
// double-counts submissions with multiple locks or reviews.
func (s *LockService) loadCandidates(tx *gorm.DB, re *models.ReviewExercise) ([]SubmissionCandidate, error) {
	type loadRow struct {
		OriginalSubmissionID int
		N                    int
	}

	lockLoads := make(map[int]int)
	var rows []loadRow
	if err := tx.Model(&models.ReviewLock{}).
		Select("original_submission_id, COUNT(*) AS n").
		Where("review_exercise_id = ?", re.ExerciseID).
		Group("original_submission_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count lock load: %w", err)
	}
	for _, r := range rows {
		lockLoads[r.OriginalSubmissionID] = r.N
	}

	reviewLoads := make(map[int]int)
	rows = rows[:0]
	if err := tx.Model(&models.ReviewSubmission{}).
		Select("original_submission_id, COUNT(*) AS n").
		Where("review_exercise_id = ? AND delete_at IS NULL", re.ExerciseID).
		Group("original_submission_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count review load: %w", err)
	}
	for _, r := range rows {
		reviewLoads[r.OriginalSubmissionID] = r.N
	}

	var subs []models.OriginalSubmission
	if err := tx.Where("exercise_id = ? AND delete_at IS NULL", re.ReviewableExerciseID).
		Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	candidates := make([]SubmissionCandidate, 0, len(subs))
	for i := range subs {
		sub := &subs[i]
		candidates = append(candidates, SubmissionCandidate{
			SubmissionID:     sub.SubmissionID,
			SubmitterUserID:  sub.SubmitterUserID,
			SubmitterGroupID: sub.SubmitterGroupID,
			State:            sub.State,
			CreateAt:         sub.CreateAt,
			Load:             lockLoads[sub.SubmissionID] + reviewLoads[sub.SubmissionID],
		})
	}
	return candidates, nil
}

// reviewedSet returns the submission IDs the reviewer has already
// completed a review for in this exercise.
func (s *LockService) reviewedSet(tx *gorm.DB, reviewExerciseID int, reviewer Reviewer) (map[int]bool, error) {
	var ids []int
	q := tx.Model(&models.ReviewSubmission{}).
		Where("review_exercise_id = ? AND delete_at IS NULL", reviewExerciseID)
	if err := scopeReviewer(q, reviewer).Pluck("original_submission_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviewed submissions: %w", err)
	}

	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *LockService) completedReviewCount(tx *gorm.DB, reviewExerciseID int, reviewer Reviewer) (int64, error) {
	var n int64
	q := tx.Model(&models.ReviewSubmission{}).
		Where("review_exercise_id = ? AND delete_at IS NULL", reviewExerciseID)
	if err := scopeReviewer(q, reviewer).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count completed reviews: %w", err)
	}
	return n, nil
}

func (s *LockService) distinctSubmitterCount(tx *gorm.DB, exerciseID int) (int64, error) {
	// Count must stay an explicit expression: gorm's Count drops a
	// multi-column Distinct, which would count every resubmission as a
	// new submitter.
	var n int64
	if err := tx.Model(&models.OriginalSubmission{}).
		Select("COUNT(DISTINCT COALESCE(submitter_user_id,0), COALESCE(submitter_group_id,0))").
		Where("exercise_id = ? AND delete_at IS NULL", exerciseID).
		Scan(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count submitters: %w", err)
	}
	return n, nil
}

// submissionLoad recounts pending locks + completed reviews for one
// submission. Used for the post-insert cap check.
func (s *LockService) submissionLoad(tx *gorm.DB, reviewExerciseID, submissionID int) (int64, error) {
	var locks int64
	if err := tx.Model(&models.ReviewLock{}).
		Where("review_exercise_id = ? AND original_submission_id = ?", reviewExerciseID, submissionID).
		Count(&locks).Error; err != nil {
		return 0, fmt.Errorf("failed to count locks: %w", err)
	}

	var reviews int64
	if err := tx.Model(&models.ReviewSubmission{}).
		Where("review_exercise_id = ? AND original_submission_id = ? AND delete_at IS NULL", reviewExerciseID, submissionID).
		Count(&reviews).Error; err != nil {
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return locks + reviews, nil
}

// reviewerGroupMemberIDs resolves the reviewer's group members to user
// IDs for GROUP-model allocation. PrepareGroupTargets must have run, so
// every member email resolves to some account.
func (s *LockService) reviewerGroupMemberIDs(tx *gorm.DB, re *models.ReviewExercise, reviewer Reviewer) (map[int]bool, error) {
	groupID := 0
	switch {
	case reviewer.GroupID != nil:
		groupID = *reviewer.GroupID
	case reviewer.UserID != nil:
		// Individual reviewer in a GROUP-model exercise: find their group
		// through the membership email.
		var user models.User
		if err := tx.First(&user, *reviewer.UserID).Error; err != nil {
			return nil, fmt.Errorf("failed to load reviewer: %w", err)
		}
		var member models.GroupMember
		err := tx.Joins("JOIN student_groups ON student_groups.group_id = group_members.group_id").
			Where("student_groups.course_id = ? AND group_members.email IN ?",
				re.CourseID, emailAliasList(user.Email)).
			First(&member).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNothingToReview
		}
		if err != nil {
			return nil, fmt.Errorf("failed to find reviewer group: %w", err)
		}
		groupID = member.GroupID
	}

	var members []models.GroupMember
	if err := tx.Where("group_id = ?", groupID).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}

	ids := make(map[int]bool, len(members))
	for _, m := range members {
		var user models.User
		err := tx.Where("email IN ? AND delete_at IS NULL", emailAliasList(m.Email)).
			Order("is_temporary ASC, user_id ASC").
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to resolve member %s: %w", m.Email, err)
		}
		ids[user.UserID] = true
	}
	return ids, nil
}

// validateAnswers checks the answer list against the exercise's
// question form: no unknown questions and no missing required ones.
func (s *LockService) validateAnswers(tx *gorm.DB, reviewExerciseID int, answers []AnswerInput) error {
	var questions []models.Question
	if err := tx.Where("review_exercise_id = ? AND delete_at IS NULL", reviewExerciseID).
		Find(&questions).Error; err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}

	known := make(map[int]models.Question, len(questions))
	for _, q := range questions {
		known[q.QuestionID] = q
	}

	answered := make(map[int]bool, len(answers))
	for _, a := range answers {
		if _, ok := known[a.QuestionID]; !ok {
			return fmt.Errorf("%w: unknown question %d", ErrInvalidAnswers, a.QuestionID)
		}
		if answered[a.QuestionID] {
			return fmt.Errorf("%w: duplicate answer for question %d", ErrInvalidAnswers, a.QuestionID)
		}
		answered[a.QuestionID] = true
	}

	for _, q := range questions {
		if q.Required && !answered[q.QuestionID] {
			return fmt.Errorf("%w: question %d is required", ErrInvalidAnswers, q.QuestionID)
		}
	}
	return nil
}

// scopeReviewer narrows a lock or review query to one reviewer
// identity.
func scopeReviewer(q *gorm.DB, reviewer Reviewer) *gorm.DB {
	if reviewer.UserID != nil {
		return q.Where("reviewer_user_id = ?", *reviewer.UserID)
	}
	return q.Where("reviewer_group_id = ?", *reviewer.GroupID)
}

// notifyReviewCompleted mails the submitter that new feedback arrived.
// Best effort: failures are logged, never surfaced to the reviewer.
func (s *LockService) notifyReviewCompleted(reviewID int) {
	var review models.ReviewSubmission
	if err := s.db.Preload("OriginalSubmission.SubmitterUser").
		Preload("ReviewExercise").
		First(&review, reviewID).Error; err != nil {
		log.Printf("Warning: failed to load review %d for notification: %v", reviewID, err)
		return
	}

	submitter := review.OriginalSubmission.SubmitterUser
	if submitter == nil || submitter.IsTemporary || submitter.Email == "" {
		return
	}

	subject := fmt.Sprintf("New peer review in %s", review.ReviewExercise.Name)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your submission in <b>%s</b> received a new peer review.</p>",
		submitter.FullName(), review.ReviewExercise.Name)
	if err := config.SendMail([]string{submitter.Email}, subject, body); err != nil {
		log.Printf("Warning: failed to send review notification: %v", err)
	}
}
