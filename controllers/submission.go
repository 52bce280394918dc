// controllers/submission.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"peer-review-api/config"
	"peer-review-api/models"
	"peer-review-api/services"
	"peer-review-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ===================== SUBMISSION MANAGEMENT =====================

// loadSubmissionExercise fetches the :id submission exercise or writes
// an error response and returns false.
func loadSubmissionExercise(c *gin.Context) (*models.SubmissionExercise, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exercise ID"})
		return nil, false
	}

	var se models.SubmissionExercise
	if err := config.DB.Where("exercise_id = ? AND delete_at IS NULL", id).
		First(&se).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exercise not found"})
		return nil, false
	}
	return &se, true
}

// CreateSubmission stores a new original submission. A student may
// resubmit; only the newest row counts as the reviewable artifact.
func CreateSubmission(c *gin.Context) {
	se, ok := loadSubmissionExercise(c)
	if !ok {
		return
	}

	userID := c.GetInt("userID")
	email := c.GetString("email")

	open, err := services.IsOpenFor(nil, models.DeviationKindSubmission, se.ExerciseBase, se.ExerciseID, userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check exercise deadline"})
		return
	}
	if !open {
		c.JSON(http.StatusForbidden, gin.H{"error": "Exercise is not open for submissions"})
		return
	}

	var req struct {
		Text     *string `json:"text"`
		FilePath *string `json:"file_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Text != nil {
		clean := utils.SanitizeInput(*req.Text)
		req.Text = &clean
	}

	switch {
	case req.Text != nil && req.FilePath != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submit either text or a file, not both"})
		return
	case req.Text != nil && !se.AcceptText:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exercise does not accept text submissions"})
		return
	case req.FilePath != nil && !se.AcceptFile:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exercise does not accept file submissions"})
		return
	case req.Text == nil && req.FilePath == nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission content is required"})
		return
	}

	submission := models.OriginalSubmission{
		ExerciseID: se.ExerciseID,
		State:      models.SubmissionStateSubmitted,
		Text:       req.Text,
		FilePath:   req.FilePath,
		CreateAt:   time.Now(),
	}

	if se.UseGroups {
		group, err := groupService().GroupForUser(se.CourseID, email)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not in a group for this course"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve group"})
			return
		}
		submission.SubmitterGroupID = &group.GroupID
	} else {
		submission.SubmitterUserID = &userID
	}

	if err := config.DB.Create(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetSubmissions returns the caller's submissions for the exercise.
// Staff see everyone's.
func GetSubmissions(c *gin.Context) {
	se, ok := loadSubmissionExercise(c)
	if !ok {
		return
	}

	userID := c.GetInt("userID")
	roleID := c.GetInt("roleID")
	email := c.GetString("email")

	var submissions []models.OriginalSubmission
	query := config.DB.Preload("SubmitterUser").
		Preload("SubmitterGroup").
		Where("exercise_id = ? AND delete_at IS NULL", se.ExerciseID)

	if roleID == models.RoleStudent {
		if se.UseGroups {
			group, err := groupService().GroupForUser(se.CourseID, email)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusOK, gin.H{"success": true, "submissions": []models.OriginalSubmission{}, "total": 0})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve group"})
				return
			}
			query = query.Where("submitter_group_id = ?", group.GroupID)
		} else {
			query = query.Where("submitter_user_id = ?", userID)
		}
	}

	if err := query.Order("create_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// UpdateSubmissionState moves a submission between submitted,
// ready_for_review and boomerang. Staff only; the allocation engine
// itself never changes submission state.
func UpdateSubmissionState(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
		return
	}

	var req struct {
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if !models.IsValidSubmissionState(req.State) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission state"})
		return
	}

	var submission models.OriginalSubmission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", id).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	now := time.Now()
	submission.State = req.State
	submission.UpdateAt = &now

	if err := config.DB.Save(&submission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}
