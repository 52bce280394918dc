package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"peer-review-api/config"
	"peer-review-api/models"
	"peer-review-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupService prepares group peer-review targets and merges
// placeholder accounts into real ones.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	if db == nil {
		db = config.DB
	}
	return &GroupService{db: db}
}

// emailAliasList expands an address through the configured equivalent
// domains so one student is found under any of their addresses.
func emailAliasList(email string) []string {
	return utils.ExpandEmailAliases(email)
}

// PrepareGroupTargets makes sure every member of the group has a user
// account and an original submission row in the reviewable exercise,
// creating placeholders where needed. Group peer-review requires a
// target row per member even for members who never submitted or never
// logged in. Idempotent: a fully prepared group causes no writes.
func (s *GroupService) PrepareGroupTargets(re *models.ReviewExercise, group *models.StudentGroup) error {
	if re.ReviewModel != models.ReviewModelGroup {
		return fmt.Errorf("%w: exercise does not use group peer-review", ErrBadExerciseConfig)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var members []models.GroupMember
		if err := tx.Where("group_id = ?", group.GroupID).Find(&members).Error; err != nil {
			return fmt.Errorf("failed to list group members: %w", err)
		}

		for _, member := range members {
			user, err := s.resolveOrCreateUser(tx, member.Email)
			if err != nil {
				return err
			}

			var existing models.OriginalSubmission
			err = tx.Where("exercise_id = ? AND submitter_user_id = ? AND delete_at IS NULL",
				re.ReviewableExerciseID, user.UserID).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to look up submission for %s: %w", member.Email, err)
			}

			placeholder := models.OriginalSubmission{
				ExerciseID:      re.ReviewableExerciseID,
				SubmitterUserID: &user.UserID,
				State:           models.SubmissionStateReadyForReview,
				IsPlaceholder:   true,
				CreateAt:        time.Now(),
			}
			if err := tx.Create(&placeholder).Error; err != nil {
				return fmt.Errorf("failed to create placeholder submission for %s: %w", member.Email, err)
			}
		}
		return nil
	})
}

// resolveOrCreateUser finds a user reachable under any alias of the
// email, preferring real accounts over placeholders, or creates a new
// placeholder account.
func (s *GroupService) resolveOrCreateUser(tx *gorm.DB, email string) (*models.User, error) {
	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid member email %q", ErrBadExerciseConfig, email)
	}

	var user models.User
	err := tx.Where("email IN ? AND delete_at IS NULL", emailAliasList(email)).
		Order("is_temporary ASC, user_id ASC").
		First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to resolve user %s: %w", email, err)
	}

	user = models.User{
		Email:       email,
		RoleID:      models.RoleStudent,
		IsTemporary: true,
		// Placeholder accounts cannot log in; the password slot holds
		// an unguessable token until the real account merges it away.
		Password: uuid.NewString(),
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create placeholder user %s: %w", email, err)
	}
	return &user, nil
}

// GroupForUser finds the course group listing any alias of the email
// as a member. Returns gorm.ErrRecordNotFound when the user is not in
// any group of the course.
func (s *GroupService) GroupForUser(courseID int, email string) (*models.StudentGroup, error) {
	var member models.GroupMember
	err := s.db.Joins("JOIN student_groups ON student_groups.group_id = group_members.group_id").
		Where("student_groups.course_id = ? AND student_groups.delete_at IS NULL AND group_members.email IN ?",
			courseID, emailAliasList(email)).
		First(&member).Error
	if err != nil {
		return nil, err
	}

	var group models.StudentGroup
	if err := s.db.Preload("Members").First(&group, member.GroupID).Error; err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	return &group, nil
}

// ReconcilePlaceholder merges placeholder accounts matching any alias
// of the user's email into the real account: submissions, reviews and
// locks are reassigned, then the placeholder is deleted. The auth
// controller calls this after a successful login. Foreign references
// survive the reassignment, so existing locks and reviews stay valid.
func (s *GroupService) ReconcilePlaceholder(user *models.User) error {
	if user.IsTemporary {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var placeholders []models.User
		if err := tx.Where("email IN ? AND is_temporary = ? AND user_id <> ? AND delete_at IS NULL",
			emailAliasList(user.Email), true, user.UserID).
			Find(&placeholders).Error; err != nil {
			return fmt.Errorf("failed to find placeholder accounts: %w", err)
		}

		for _, ph := range placeholders {
			if err := tx.Model(&models.OriginalSubmission{}).
				Where("submitter_user_id = ?", ph.UserID).
				Update("submitter_user_id", user.UserID).Error; err != nil {
				return fmt.Errorf("failed to reassign submissions: %w", err)
			}
			if err := tx.Model(&models.ReviewSubmission{}).
				Where("reviewer_user_id = ?", ph.UserID).
				Update("reviewer_user_id", user.UserID).Error; err != nil {
				return fmt.Errorf("failed to reassign reviews: %w", err)
			}
			if err := tx.Model(&models.ReviewLock{}).
				Where("reviewer_user_id = ?", ph.UserID).
				Update("reviewer_user_id", user.UserID).Error; err != nil {
				return fmt.Errorf("failed to reassign locks: %w", err)
			}
			if err := tx.Delete(&models.User{}, ph.UserID).Error; err != nil {
				return fmt.Errorf("failed to delete placeholder %d: %w", ph.UserID, err)
			}
			log.Printf("Merged placeholder account %d (%s) into user %d", ph.UserID, ph.Email, user.UserID)
		}
		return nil
	})
}
