package services

import (
	"sort"
	"time"

	"peer-review-api/models"
)

// Reviewer identifies who is asking for review work: a user in
// individual mode, a group in group mode. Exactly one side is set.
type Reviewer struct {
	UserID  *int
	GroupID *int
}

// ReviewerUser builds an individual reviewer.
func ReviewerUser(userID int) Reviewer {
	return Reviewer{UserID: &userID}
}

// ReviewerGroup builds a group reviewer.
func ReviewerGroup(groupID int) Reviewer {
	return Reviewer{GroupID: &groupID}
}

// Valid reports whether exactly one identity side is set and matches
// the exercise's group mode.
func (r Reviewer) Valid(useGroups bool) bool {
	if useGroups {
		return r.GroupID != nil && r.UserID == nil
	}
	return r.UserID != nil && r.GroupID == nil
}

// SubmissionCandidate is the allocation engine's view of one original
// submission: its submitter identity, state, age and current load
// (pending locks + completed reviews referencing it).
type SubmissionCandidate struct {
	SubmissionID     int
	SubmitterUserID  *int
	SubmitterGroupID *int
	State            string
	CreateAt         time.Time
	Load             int
}

// AllocationPolicy is the slice of a ReviewExercise the candidate
// picker needs.
type AllocationPolicy struct {
	UseGroups               bool
	MaxReviewsPerSubmission int
	CanReviewOwnSubmission  bool
}

// PolicyOf extracts the allocation policy from a review exercise.
func PolicyOf(re *models.ReviewExercise) AllocationPolicy {
	return AllocationPolicy{
		UseGroups:               re.UseGroups,
		MaxReviewsPerSubmission: re.MaxReviewsPerSubmission,
		CanReviewOwnSubmission:  re.CanReviewOwnSubmission,
	}
}

// PickCandidate selects the single best submission for the reviewer,
// or nil when none is eligible. candidates must contain every
// submission of the reviewable exercise (all revisions); reviewed maps
// submission IDs the reviewer has already completed a review for.
//
// Selection order: drop capped, keep only the newest submission per
// submitter, drop own work, drop already reviewed, drop anything not
// ready_for_review, then take the least-loaded candidate, oldest
// first. The load annotation and the latest-per-submitter restriction
// come from separate views of the data on purpose: folding the
// aggregate count into the distinct-latest query double-counts rows.
func PickCandidate(policy AllocationPolicy, reviewer Reviewer, candidates []SubmissionCandidate, reviewed map[int]bool) *SubmissionCandidate {
	eligible := FilterEligible(policy, reviewer, candidates, reviewed)
	if len(eligible) == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Load != eligible[j].Load {
			return eligible[i].Load < eligible[j].Load
		}
		if !eligible[i].CreateAt.Equal(eligible[j].CreateAt) {
			return eligible[i].CreateAt.Before(eligible[j].CreateAt)
		}
		return eligible[i].SubmissionID < eligible[j].SubmissionID
	})

	best := eligible[0]
	return &best
}

// FilterEligible applies every eligibility rule except the final
// least-load ordering. CHOOSE-mode exercises present this set to the
// reviewer directly.
func FilterEligible(policy AllocationPolicy, reviewer Reviewer, candidates []SubmissionCandidate, reviewed map[int]bool) []SubmissionCandidate {
	latest := latestPerSubmitter(candidates)

	eligible := make([]SubmissionCandidate, 0, len(latest))
	for _, c := range latest {
		if policy.MaxReviewsPerSubmission > 0 && c.Load >= policy.MaxReviewsPerSubmission {
			continue
		}
		if !policy.CanReviewOwnSubmission && isOwnSubmission(reviewer, c) {
			continue
		}
		if reviewed[c.SubmissionID] {
			continue
		}
		if c.State != models.SubmissionStateReadyForReview {
			continue
		}
		eligible = append(eligible, c)
	}
	return eligible
}

// latestPerSubmitter keeps only the most recent submission per
// submitter user or group. Ties on creation time go to the higher ID,
// i.e. the later insert.
func latestPerSubmitter(candidates []SubmissionCandidate) []SubmissionCandidate {
	type key struct {
		user  int
		group int
	}

	best := make(map[key]SubmissionCandidate, len(candidates))
	for _, c := range candidates {
		k := key{}
		if c.SubmitterUserID != nil {
			k.user = *c.SubmitterUserID
		}
		if c.SubmitterGroupID != nil {
			k.group = *c.SubmitterGroupID
		}

		cur, ok := best[k]
		if !ok {
			best[k] = c
			continue
		}
		if c.CreateAt.After(cur.CreateAt) ||
			(c.CreateAt.Equal(cur.CreateAt) && c.SubmissionID > cur.SubmissionID) {
			best[k] = c
		}
	}

	out := make([]SubmissionCandidate, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	return out
}

func isOwnSubmission(reviewer Reviewer, c SubmissionCandidate) bool {
	if reviewer.UserID != nil && c.SubmitterUserID != nil && *reviewer.UserID == *c.SubmitterUserID {
		return true
	}
	if reviewer.GroupID != nil && c.SubmitterGroupID != nil && *reviewer.GroupID == *c.SubmitterGroupID {
		return true
	}
	return false
}

// restrictToUsers keeps candidates submitted by the given user IDs.
// GROUP-model exercises use it to limit allocation to the reviewer's
// own group members.
func restrictToUsers(candidates []SubmissionCandidate, userIDs map[int]bool) []SubmissionCandidate {
	kept := make([]SubmissionCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.SubmitterUserID != nil && userIDs[*c.SubmitterUserID] {
			kept = append(kept, c)
		}
	}
	return kept
}
