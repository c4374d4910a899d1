// Package stats computes every derived figure — points, balances, badges,
// leaderboards, vacile allowances — directly from the document's ledgers.
// Nothing here is persisted, so the numbers can never drift from the source
// collections.
package stats

import (
	"sort"
	"time"

	"github.com/barrero/supertareas/internal/model"
)

// Thresholds for earning vacile send credits from completed tasks.
const (
	vacilesPerInternal = 5  // one family-internal taunt per 5 tasks
	vacilesPerExternal = 30 // one cross-family taunt per 30 tasks
)

// UserStats is the full derived profile of one user.
type UserStats struct {
	UserID          string                  `json:"userId"`
	Points          int                     `json:"points"`
	SpendablePoints int                     `json:"spendablePoints"`
	TasksCompleted  int                     `json:"tasksCompletedCount"`
	Badges          []Badge                 `json:"earnedBadges"`
	ExtraPoints     []model.ExtraPointEntry `json:"extraPointsList"`

	VacilesSent         int `json:"vacilesSentCount"`
	VacilesSentInternal int `json:"vacilesSentInternal"`
	VacilesSentExternal int `json:"vacilesSentExternal"`

	VacilesInternalAvailable int `json:"vacilesInternalAvailable"`
	VacilesExternalAvailable int `json:"vacilesExternalAvailable"`
}

// ForUser computes lifetime stats for the user.
func ForUser(doc *model.Document, userID string) UserStats {
	return ForUserWindow(doc, userID, WindowAll, time.Now())
}

// ForUserWindow computes stats restricted to the given window. Spendable
// points and vacile tallies always use the full ledgers: a purchase or a
// sent taunt is not undone by the calendar rolling over.
func ForUserWindow(doc *model.Document, userID string, w Window, now time.Time) UserStats {
	s := UserStats{UserID: userID}

	completions := w.filterCompletions(userCompletions(doc, userID), now)
	extras := w.filterExtraPoints(userExtraPoints(doc, userID), now)

	for _, c := range completions {
		if task := doc.TaskByID(c.TaskID); task != nil {
			// Completions of deleted tasks stay in the ledger but
			// score nothing.
			s.Points += task.Points
		}
	}
	for _, e := range extras {
		s.Points += e.Points
	}
	s.TasksCompleted = len(completions)
	s.ExtraPoints = extras

	spent := 0
	for _, t := range doc.Transactions {
		if t.UserID == userID {
			spent += t.Cost
		}
	}
	lifetime := lifetimePoints(doc, userID)
	s.SpendablePoints = lifetime - spent

	s.Badges = earnedBadges(s.Points, s.TasksCompleted)

	user := doc.UserByID(userID)
	for _, m := range doc.Messages {
		if m.FromUserID != userID || m.Type != model.MessageVacile {
			continue
		}
		s.VacilesSent++
		recipient := doc.UserByID(m.ToUserID)
		if recipient == nil || user == nil {
			continue
		}
		if recipient.FamilyID == user.FamilyID {
			s.VacilesSentInternal++
		} else {
			s.VacilesSentExternal++
		}
	}

	lifetimeTasks := len(userCompletions(doc, userID))
	s.VacilesInternalAvailable = max(0, lifetimeTasks/vacilesPerInternal-s.VacilesSentInternal)
	s.VacilesExternalAvailable = max(0, lifetimeTasks/vacilesPerExternal-s.VacilesSentExternal)

	return s
}

// lifetimePoints is the all-time earned total, ignoring windows. It feeds
// the spendable balance, which must not inflate when a window hides old
// spending.
func lifetimePoints(doc *model.Document, userID string) int {
	points := 0
	for _, c := range userCompletions(doc, userID) {
		if task := doc.TaskByID(c.TaskID); task != nil {
			points += task.Points
		}
	}
	for _, e := range userExtraPoints(doc, userID) {
		points += e.Points
	}
	return points
}

// LeaderboardEntry joins a kid's identity onto their stats.
type LeaderboardEntry struct {
	UserID         string `json:"id"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	Color          string `json:"color"`
	FamilyID       string `json:"familyId"`
	Points         int    `json:"points"`
	TasksCompleted int    `json:"tasksCompletedCount"`
}

// Leaderboard ranks KID users by points, descending. familyID narrows the
// field to one family; empty means everyone. Ties keep user order (stable).
func Leaderboard(doc *model.Document, familyID string, w Window, now time.Time) []LeaderboardEntry {
	var entries []LeaderboardEntry
	for i := range doc.Users {
		u := &doc.Users[i]
		if u.Role != model.RoleKid {
			continue
		}
		if familyID != "" && u.FamilyID != familyID {
			continue
		}
		s := ForUserWindow(doc, u.ID, w, now)
		entries = append(entries, LeaderboardEntry{
			UserID:         u.ID,
			Name:           u.Name,
			Avatar:         u.Avatar,
			Color:          u.Color,
			FamilyID:       u.FamilyID,
			Points:         s.Points,
			TasksCompleted: s.TasksCompleted,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}

// FamilyRank is one row of the cross-family ranking.
type FamilyRank struct {
	FamilyID       string `json:"id"`
	Name           string `json:"name"`
	RelativeScore  int    `json:"points"`
	TasksCompleted int    `json:"tasksCompletedCount"`
}

// FamilyRanking ranks families by relative score: the sum of member points
// divided by member count, rounded. Normalizing by size keeps a large
// family from winning on headcount alone.
func FamilyRanking(doc *model.Document, w Window, now time.Time) []FamilyRank {
	var ranks []FamilyRank
	for _, f := range doc.Families {
		var kids []string
		for _, u := range doc.Users {
			if u.FamilyID == f.ID && u.Role == model.RoleKid {
				kids = append(kids, u.ID)
			}
		}
		rank := FamilyRank{FamilyID: f.ID, Name: f.Name}
		if len(kids) > 0 {
			total := 0
			for _, id := range kids {
				s := ForUserWindow(doc, id, w, now)
				total += s.Points
				rank.TasksCompleted += s.TasksCompleted
			}
			rank.RelativeScore = roundDiv(total, len(kids))
		}
		ranks = append(ranks, rank)
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		return ranks[i].RelativeScore > ranks[j].RelativeScore
	})
	return ranks
}

func userCompletions(doc *model.Document, userID string) []model.TaskCompletion {
	var out []model.TaskCompletion
	for _, c := range doc.Completions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

func userExtraPoints(doc *model.Document, userID string) []model.ExtraPointEntry {
	var out []model.ExtraPointEntry
	for _, e := range doc.ExtraPoints {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// roundDiv divides with round-half-up semantics for non-negative totals.
func roundDiv(total, n int) int {
	if n == 0 {
		return 0
	}
	if total >= 0 {
		return (total + n/2) / n
	}
	return -((-total + n/2) / n)
}
