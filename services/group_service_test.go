package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"peer-review-api/models"
)

var (
	groupMembersPattern    = regexp.MustCompile("SELECT .* FROM .group_members. WHERE group_id = \\?")
	resolveUserPattern     = regexp.MustCompile("SELECT .* FROM .users. WHERE email IN \\(\\?\\) AND delete_at IS NULL ORDER BY is_temporary ASC, user_id ASC")
	memberSubPattern       = regexp.MustCompile("SELECT .* FROM .original_submissions. WHERE exercise_id = \\? AND submitter_user_id = \\?")
	insertUserPattern      = regexp.MustCompile("INSERT INTO .users.")
	insertSubPattern       = regexp.MustCompile("INSERT INTO .original_submissions.")
	placeholdersPattern    = regexp.MustCompile("SELECT .* FROM .users. WHERE email IN \\(\\?\\) AND is_temporary = \\? AND user_id <> \\?")
	reassignSubsPattern    = regexp.MustCompile("UPDATE .original_submissions. SET .submitter_user_id.")
	reassignReviewsPattern = regexp.MustCompile("UPDATE .review_submissions. SET .reviewer_user_id.")
	reassignLocksPattern   = regexp.MustCompile("UPDATE .review_locks. SET .reviewer_user_id.")
	deleteUserPattern      = regexp.MustCompile("DELETE FROM .users. WHERE .users...user_id. = \\?")
)

func testGroupExercise() *models.ReviewExercise {
	return &models.ReviewExercise{
		ExerciseID:           5,
		ReviewableExerciseID: 4,
		ReviewModel:          models.ReviewModelGroup,
		UseGroups:            false,
		ReviewCount:          2,
	}
}

func TestPrepareGroupTargetsRejectsNonGroupExercise(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewGroupService(db)

	re := testGroupExercise()
	re.ReviewModel = models.ReviewModelRandom

	err := svc.PrepareGroupTargets(re, &models.StudentGroup{GroupID: 7})
	if !errors.Is(err, ErrBadExerciseConfig) {
		t.Fatalf("expected ErrBadExerciseConfig, got %v", err)
	}
}

func TestPrepareGroupTargetsIsIdempotentWhenPrepared(t *testing.T) {
	memberColumns := []string{"member_id", "group_id", "email"}
	userColumns := []string{"user_id", "email", "role_id", "is_temporary"}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: groupMembersPattern,
			columns: memberColumns,
			rows:    [][]driver.Value{{int64(1), int64(7), "alice@example.com"}},
		},
		{
			kind:    kindQuery,
			pattern: resolveUserPattern,
			columns: userColumns,
			rows:    [][]driver.Value{{int64(10), "alice@example.com", int64(models.RoleStudent), false}},
		},
		{
			kind:    kindQuery,
			pattern: memberSubPattern,
			columns: []string{"submission_id", "exercise_id", "submitter_user_id", "state"},
			rows:    [][]driver.Value{{int64(11), int64(4), int64(10), models.SubmissionStateReadyForReview}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewGroupService(db)

	if err := svc.PrepareGroupTargets(testGroupExercise(), &models.StudentGroup{GroupID: 7}); err != nil {
		t.Fatalf("PrepareGroupTargets returned error: %v", err)
	}

	// A prepared group must not trigger any INSERT.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPrepareGroupTargetsCreatesPlaceholderUserAndSubmission(t *testing.T) {
	memberColumns := []string{"member_id", "group_id", "email"}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: groupMembersPattern,
			columns: memberColumns,
			rows:    [][]driver.Value{{int64(1), int64(7), "ghost@example.com"}},
		},
		// No account exists under any alias of the address.
		{kind: kindQuery, pattern: resolveUserPattern, columns: []string{"user_id"}, rows: [][]driver.Value{}},
		{kind: kindExec, pattern: insertUserPattern, result: scriptedResult{lastInsertID: 55, rowsAffected: 1}},
		{kind: kindQuery, pattern: memberSubPattern, columns: []string{"submission_id"}, rows: [][]driver.Value{}},
		{kind: kindExec, pattern: insertSubPattern, result: scriptedResult{lastInsertID: 99, rowsAffected: 1}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewGroupService(db)

	if err := svc.PrepareGroupTargets(testGroupExercise(), &models.StudentGroup{GroupID: 7}); err != nil {
		t.Fatalf("PrepareGroupTargets returned error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPrepareGroupTargetsRejectsMalformedMemberEmail(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: groupMembersPattern,
			columns: []string{"member_id", "group_id", "email"},
			rows:    [][]driver.Value{{int64(1), int64(7), "not-an-email"}},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewGroupService(db)

	err := svc.PrepareGroupTargets(testGroupExercise(), &models.StudentGroup{GroupID: 7})
	if !errors.Is(err, ErrBadExerciseConfig) {
		t.Fatalf("expected ErrBadExerciseConfig for malformed member email, got %v", err)
	}

	// The bad address must be rejected before any account is created.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReconcilePlaceholderSkipsTemporaryAccounts(t *testing.T) {
	db, _, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	svc := NewGroupService(db)

	temp := &models.User{UserID: 55, Email: "ghost@example.com", IsTemporary: true}
	if err := svc.ReconcilePlaceholder(temp); err != nil {
		t.Fatalf("expected no-op for temporary account, got %v", err)
	}
}

func TestReconcilePlaceholderMergesIntoRealAccount(t *testing.T) {
	userColumns := []string{"user_id", "email", "role_id", "is_temporary"}

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: placeholdersPattern,
			columns: userColumns,
			rows:    [][]driver.Value{{int64(55), "alice@example.com", int64(models.RoleStudent), true}},
		},
		{
			kind:    kindExec,
			pattern: reassignSubsPattern,
			args:    []driver.Value{int64(10), int64(55)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: reassignReviewsPattern,
			args:    []driver.Value{int64(10), int64(55)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: reassignLocksPattern,
			args:    []driver.Value{int64(10), int64(55)},
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: deleteUserPattern,
			args:    []driver.Value{int64(55)},
			result:  scriptedResult{rowsAffected: 1},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewGroupService(db)

	real := &models.User{UserID: 10, Email: "alice@example.com"}
	if err := svc.ReconcilePlaceholder(real); err != nil {
		t.Fatalf("ReconcilePlaceholder returned error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReconcilePlaceholderNoMatchesMakesNoWrites(t *testing.T) {
	steps := []*queryStep{
		{kind: kindQuery, pattern: placeholdersPattern, columns: []string{"user_id"}, rows: [][]driver.Value{}},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewGroupService(db)

	real := &models.User{UserID: 10, Email: "bob@example.com"}
	if err := svc.ReconcilePlaceholder(real); err != nil {
		t.Fatalf("ReconcilePlaceholder returned error: %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGroupForUserNotInAnyGroup(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT .* FROM .group_members. JOIN student_groups"),
			columns: []string{"member_id"},
			rows:    [][]driver.Value{},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewGroupService(db)

	if _, err := svc.GroupForUser(1, "loner@example.com"); err == nil {
		t.Fatal("expected an error for a user without a group")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
