// controllers/review.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"peer-review-api/config"
	"peer-review-api/models"
	"peer-review-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func lockService() *services.LockService {
	return services.NewLockService(nil, nil)
}

func groupService() *services.GroupService {
	return services.NewGroupService(nil)
}

// loadReviewExercise fetches the :id review exercise or writes an error
// response and returns false.
func loadReviewExercise(c *gin.Context) (*models.ReviewExercise, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise ID"})
		return nil, false
	}

	var re models.ReviewExercise
	if err := config.DB.Preload("ReviewableExercise").
		Where("exercise_id = ? AND delete_at IS NULL", id).
		First(&re).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review exercise not found"})
		return nil, false
	}
	return &re, true
}

// reviewerFor builds the reviewer identity the exercise expects: the
// user's group in group mode, the user themselves otherwise. In GROUP
// review-model exercises it also prepares placeholder targets for the
// reviewer's group before allocation can run.
func reviewerFor(c *gin.Context, re *models.ReviewExercise) (services.Reviewer, bool) {
	userID := c.GetInt("userID")
	email := c.GetString("email")

	if re.ReviewModel == models.ReviewModelGroup {
		group, err := groupService().GroupForUser(re.CourseID, email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not in a group for this course"})
			return services.Reviewer{}, false
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve group"})
			return services.Reviewer{}, false
		}
		if err := groupService().PrepareGroupTargets(re, group); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare group targets"})
			return services.Reviewer{}, false
		}
	}

	if re.UseGroups {
		group, err := groupService().GroupForUser(re.CourseID, email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not in a group for this course"})
			return services.Reviewer{}, false
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve group"})
			return services.Reviewer{}, false
		}
		return services.ReviewerGroup(group.GroupID), true
	}
	return services.ReviewerUser(userID), true
}

// GetNextReview returns the reviewer's current lock, or allocates the
// next submission to review.
func GetNextReview(c *gin.Context) {
	re, ok := loadReviewExercise(c)
	if !ok {
		return
	}

	userID := c.GetInt("userID")
	open, err := services.IsOpenFor(nil, models.DeviationKindReview, re.ExerciseBase, re.ExerciseID, userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check exercise deadline"})
		return
	}
	if !open {
		c.JSON(http.StatusForbidden, gin.H{"error": "Review exercise is not open"})
		return
	}

	reviewer, ok := reviewerFor(c, re)
	if !ok {
		return
	}

	lock, err := lockService().GetOrCreateLock(re, reviewer)
	if err != nil {
		respondLockError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"lock":       lock,
		"expires_at": lock.ExpiresAt(re.LockExpiry()),
		"questions":  loadQuestions(re.ExerciseID),
	})
}

// GetReviewChoices lists the submissions a CHOOSE-model reviewer may
// pick from.
func GetReviewChoices(c *gin.Context) {
	re, ok := loadReviewExercise(c)
	if !ok {
		return
	}
	if re.ReviewModel != models.ReviewModelChoose {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exercise does not use reviewer choice"})
		return
	}

	reviewer, ok := reviewerFor(c, re)
	if !ok {
		return
	}

	choices, err := lockService().EligibleChoices(re, reviewer)
	if err != nil {
		respondLockError(c, err)
		return
	}

	ids := make([]int, 0, len(choices))
	for _, ch := range choices {
		ids = append(ids, ch.SubmissionID)
	}

	var submissions []models.OriginalSubmission
	if len(ids) > 0 {
		if err := config.DB.Preload("SubmitterUser").Preload("SubmitterGroup").
			Where("submission_id IN ?", ids).
			Find(&submissions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// ChooseReview locks the submission the reviewer picked.
func ChooseReview(c *gin.Context) {
	re, ok := loadReviewExercise(c)
	if !ok {
		return
	}

	var req struct {
		SubmissionID int `json:"submission_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reviewer, ok := reviewerFor(c, re)
	if !ok {
		return
	}

	lock, err := lockService().ChooseLock(re, reviewer, req.SubmissionID)
	if err != nil {
		respondLockError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"lock":       lock,
		"expires_at": lock.ExpiresAt(re.LockExpiry()),
		"questions":  loadQuestions(re.ExerciseID),
	})
}

// CompleteReview converts the reviewer's lock into a finished review.
func CompleteReview(c *gin.Context) {
	re, ok := loadReviewExercise(c)
	if !ok {
		return
	}

	lockRef := c.Param("ref")
	if lockRef == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lock reference"})
		return
	}

	var req struct {
		Answers []services.AnswerInput `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reviewer, ok := reviewerFor(c, re)
	if !ok {
		return
	}

	review, err := lockService().CompleteLock(re, reviewer, lockRef, req.Answers)
	if err != nil {
		respondLockError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  review,
		"message": "Review submitted successfully",
	})
}

// GetReceivedReviews lists completed reviews of the student's own work,
// gated behind the exercise's minimum completed-review count.
func GetReceivedReviews(c *gin.Context) {
	re, ok := loadReviewExercise(c)
	if !ok {
		return
	}

	userID := c.GetInt("userID")
	visible, err := services.ReviewsVisibleTo(nil, re, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check review visibility"})
		return
	}
	if !visible {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"visible": false,
			"message": "Complete your own reviews first to see feedback",
			"reviews": []models.ReviewSubmission{},
		})
		return
	}

	var reviews []models.ReviewSubmission
	if err := config.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("answer_order ASC")
	}).Preload("Answers.Question").
		Joins("JOIN original_submissions ON original_submissions.submission_id = review_submissions.original_submission_id").
		Where("review_submissions.review_exercise_id = ? AND review_submissions.delete_at IS NULL", re.ExerciseID).
		Where("original_submissions.submitter_user_id = ?", userID).
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"visible": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// GetExerciseStats reports ledger state for staff.
func GetExerciseStats(c *gin.Context) {
	re, ok := loadReviewExercise(c)
	if !ok {
		return
	}

	stats, err := lockService().Stats(re)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}

// PrepareGroupReview runs group target preparation for one group.
// Normally triggered implicitly by GetNextReview; exposed for staff to
// pre-provision a course.
func PrepareGroupReview(c *gin.Context) {
	re, ok := loadReviewExercise(c)
	if !ok {
		return
	}

	groupID, err := strconv.Atoi(c.Param("group_id"))
	if err != nil || groupID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var group models.StudentGroup
	if err := config.DB.Preload("Members").
		Where("group_id = ? AND delete_at IS NULL", groupID).
		First(&group).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	if err := groupService().PrepareGroupTargets(re, &group); err != nil {
		respondLockError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Group targets prepared",
	})
}

// respondLockError maps service outcomes to HTTP responses.
func respondLockError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReviewsDone):
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"done":    true,
			"message": "All required reviews completed",
		})
	case errors.Is(err, services.ErrNothingToReview):
		c.JSON(http.StatusNotFound, gin.H{"error": "Nothing to review yet"})
	case errors.Is(err, services.ErrStaleLock):
		c.JSON(http.StatusConflict, gin.H{"error": "Your review lock expired or was already completed, please request a new one"})
	case errors.Is(err, services.ErrNotEligible):
		c.JSON(http.StatusConflict, gin.H{"error": "Submission is no longer available for review"})
	case errors.Is(err, services.ErrInvalidAnswers):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBadExerciseConfig):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Review exercise is misconfigured"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func loadQuestions(reviewExerciseID int) []models.Question {
	var questions []models.Question
	if err := config.DB.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("choice_order ASC")
	}).Where("review_exercise_id = ? AND delete_at IS NULL", reviewExerciseID).
		Order("question_order ASC").
		Find(&questions).Error; err != nil {
		return []models.Question{}
	}
	return questions
}
