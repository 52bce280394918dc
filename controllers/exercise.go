// controllers/exercise.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"peer-review-api/config"
	"peer-review-api/models"

	"github.com/gin-gonic/gin"
)

// ===================== EXERCISE MANAGEMENT =====================

var validReviewModels = map[string]bool{
	models.ReviewModelRandom: true,
	models.ReviewModelChoose: true,
	models.ReviewModelGroup:  true,
}

type reviewExerciseRequest struct {
	CourseID                int       `json:"course_id" binding:"required"`
	Name                    string    `json:"name" binding:"required"`
	Description             string    `json:"description"`
	OpeningTime             time.Time `json:"opening_time" binding:"required"`
	ClosingTime             time.Time `json:"closing_time" binding:"required"`
	Hidden                  bool      `json:"hidden"`
	ReviewableExerciseID    int       `json:"reviewable_exercise_id" binding:"required"`
	ReviewModel             string    `json:"review_model" binding:"required"`
	UseGroups               bool      `json:"use_groups"`
	ReviewCount             int       `json:"review_count"`
	MaxReviewsPerSubmission int       `json:"max_reviews_per_submission"`
	MinSubmissionCount      int       `json:"min_submission_count"`
	MinReviewsVisible       int       `json:"min_reviews_visible"`
	CanReviewOwnSubmission  bool      `json:"can_review_own_submission"`
	LockExpiryHours         int       `json:"lock_expiry_hours"`
}

// validate rejects policy combinations the allocation engine cannot
// serve. These are configuration errors, not runtime conditions.
func (r *reviewExerciseRequest) validate(c *gin.Context) (*models.SubmissionExercise, bool) {
	if !validReviewModels[r.ReviewModel] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review model"})
		return nil, false
	}
	if r.ReviewCount < 0 || r.MaxReviewsPerSubmission < 0 || r.MinSubmissionCount < 0 ||
		r.MinReviewsVisible < 0 || r.LockExpiryHours < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Policy counts must not be negative"})
		return nil, false
	}
	if !r.ClosingTime.After(r.OpeningTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Closing time must be after opening time"})
		return nil, false
	}

	var reviewable models.SubmissionExercise
	if err := config.DB.Where("exercise_id = ? AND delete_at IS NULL", r.ReviewableExerciseID).
		First(&reviewable).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reviewable exercise not found"})
		return nil, false
	}
	if r.UseGroups != reviewable.UseGroups {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group mode must match the reviewable exercise"})
		return nil, false
	}
	if r.ReviewModel == models.ReviewModelGroup && r.UseGroups {
		// GROUP model assigns individual members of the reviewer's own
		// group, so the reviewer identity must be a user.
		c.JSON(http.StatusBadRequest, gin.H{"error": "GROUP review model requires individual reviewers"})
		return nil, false
	}
	return &reviewable, true
}

// CreateReviewExercise sets up a peer-review exercise over an existing
// submission exercise.
func CreateReviewExercise(c *gin.Context) {
	var req reviewExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, ok := req.validate(c); !ok {
		return
	}

	now := time.Now()
	re := models.ReviewExercise{
		ExerciseBase: models.ExerciseBase{
			CourseID:    req.CourseID,
			Name:        req.Name,
			Description: req.Description,
			OpeningTime: req.OpeningTime,
			ClosingTime: req.ClosingTime,
			Hidden:      req.Hidden,
			CreateAt:    &now,
		},
		ReviewableExerciseID:    req.ReviewableExerciseID,
		ReviewModel:             req.ReviewModel,
		UseGroups:               req.UseGroups,
		ReviewCount:             req.ReviewCount,
		MaxReviewsPerSubmission: req.MaxReviewsPerSubmission,
		MinSubmissionCount:      req.MinSubmissionCount,
		MinReviewsVisible:       req.MinReviewsVisible,
		CanReviewOwnSubmission:  req.CanReviewOwnSubmission,
		LockExpiryHours:         req.LockExpiryHours,
	}

	if err := config.DB.Create(&re).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review exercise"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"exercise": re,
	})
}

// CreateSubmissionExercise sets up an exercise students submit work to.
func CreateSubmissionExercise(c *gin.Context) {
	var req struct {
		CourseID    int       `json:"course_id" binding:"required"`
		Name        string    `json:"name" binding:"required"`
		Description string    `json:"description"`
		OpeningTime time.Time `json:"opening_time" binding:"required"`
		ClosingTime time.Time `json:"closing_time" binding:"required"`
		Hidden      bool      `json:"hidden"`
		UseGroups   bool      `json:"use_groups"`
		AcceptText  bool      `json:"accept_text"`
		AcceptFile  bool      `json:"accept_file"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.AcceptText && !req.AcceptFile {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exercise must accept text or files"})
		return
	}

	now := time.Now()
	se := models.SubmissionExercise{
		ExerciseBase: models.ExerciseBase{
			CourseID:    req.CourseID,
			Name:        req.Name,
			Description: req.Description,
			OpeningTime: req.OpeningTime,
			ClosingTime: req.ClosingTime,
			Hidden:      req.Hidden,
			CreateAt:    &now,
		},
		UseGroups:  req.UseGroups,
		AcceptText: req.AcceptText,
		AcceptFile: req.AcceptFile,
	}

	if err := config.DB.Create(&se).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create exercise"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"exercise": se,
	})
}

// GetReviewExercise returns one review exercise with its question form.
func GetReviewExercise(c *gin.Context) {
	re, ok := loadReviewExercise(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"exercise":  re,
		"questions": loadQuestions(re.ExerciseID),
	})
}

// ListCourseExercises returns both exercise kinds of a course.
func ListCourseExercises(c *gin.Context) {
	courseID, err := strconv.Atoi(c.Param("id"))
	if err != nil || courseID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid course ID"})
		return
	}

	roleID := c.GetInt("roleID")

	var submissionExercises []models.SubmissionExercise
	seq := config.DB.Where("course_id = ? AND delete_at IS NULL", courseID)
	if roleID == models.RoleStudent {
		seq = seq.Where("hidden = ?", false)
	}
	if err := seq.Order("opening_time ASC").Find(&submissionExercises).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch exercises"})
		return
	}

	var reviewExercises []models.ReviewExercise
	req := config.DB.Where("course_id = ? AND delete_at IS NULL", courseID)
	if roleID == models.RoleStudent {
		req = req.Where("hidden = ?", false)
	}
	if err := req.Order("opening_time ASC").Find(&reviewExercises).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review exercises"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"submission_exercises": submissionExercises,
		"review_exercises":     reviewExercises,
	})
}

// CreateDeviation grants one student an extended deadline on either
// exercise kind.
func CreateDeviation(c *gin.Context) {
	var req struct {
		Kind        string    `json:"kind" binding:"required"`
		ExerciseID  int       `json:"exercise_id" binding:"required"`
		UserID      int       `json:"user_id" binding:"required"`
		NewDeadline time.Time `json:"new_deadline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind != models.DeviationKindSubmission && req.Kind != models.DeviationKindReview {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deviation kind"})
		return
	}

	now := time.Now()
	dev := models.ExerciseDeviation{
		Kind:        req.Kind,
		ExerciseID:  req.ExerciseID,
		UserID:      req.UserID,
		NewDeadline: req.NewDeadline,
		CreateAt:    &now,
	}
	if err := config.DB.Create(&dev).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deviation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"deviation": dev,
	})
}
