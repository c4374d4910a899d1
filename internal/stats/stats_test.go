package stats

import (
	"testing"
	"time"

	"github.com/barrero/supertareas/internal/model"
)

var now = time.Date(2026, 3, 18, 12, 0, 0, 0, time.Local) // a Wednesday

func economyDoc(t *testing.T) *model.Document {
	t.Helper()
	doc := model.NewDocument()
	doc.Families = append(doc.Families, model.Family{ID: "f1", Name: "Barrero"})
	doc.Users = append(doc.Users,
		model.User{ID: "u3", FamilyID: "f1", Name: "Miguel", Role: model.RoleKid},
		model.User{ID: "u4", FamilyID: "f1", Name: "Carmen", Role: model.RoleKid},
	)
	doc.Tasks = append(doc.Tasks,
		model.Task{ID: "t1", FamilyID: "f1", Title: "Cama", Points: 10},
		model.Task{ID: "t2", FamilyID: "f1", Title: "Mesa", Points: 20},
	)
	return doc
}

func complete(doc *model.Document, id, taskID, userID, date string) {
	doc.Completions = append(doc.Completions, model.TaskCompletion{
		ID: id, TaskID: taskID, UserID: userID, Date: date, Approved: true,
	})
}

func TestPointsLedgerInvariant(t *testing.T) {
	doc := economyDoc(t)
	complete(doc, "c1", "t1", "u3", "2026-03-16")
	complete(doc, "c2", "t2", "u3", "2026-03-17")
	doc.ExtraPoints = append(doc.ExtraPoints,
		model.ExtraPointEntry{ID: "e1", UserID: "u3", Points: 5, Reason: "bonus"},
		model.ExtraPointEntry{ID: "e2", UserID: "u3", Points: -3, Reason: "penalty"},
	)

	s := ForUser(doc, "u3")
	if s.Points != 10+20+5-3 {
		t.Errorf("points = %d, want 32", s.Points)
	}
	if s.TasksCompleted != 2 {
		t.Errorf("tasksCompleted = %d, want 2", s.TasksCompleted)
	}
}

func TestCompletionOfDeletedTaskScoresNothing(t *testing.T) {
	doc := economyDoc(t)
	complete(doc, "c1", "ghost", "u3", "2026-03-16")

	s := ForUser(doc, "u3")
	if s.Points != 0 {
		t.Errorf("points = %d, want 0 for dangling completion", s.Points)
	}
	if s.TasksCompleted != 1 {
		// The fact of completion still counts even if the task is gone.
		t.Errorf("tasksCompleted = %d, want 1", s.TasksCompleted)
	}
}

func TestSpendablePoints(t *testing.T) {
	doc := economyDoc(t)
	doc.ExtraPoints = append(doc.ExtraPoints, model.ExtraPointEntry{ID: "e1", UserID: "u3", Points: 100})
	doc.Transactions = append(doc.Transactions,
		model.ShopTransaction{ID: "tx1", UserID: "u3", ItemID: "acc_cap", Cost: 30},
		model.ShopTransaction{ID: "tx2", UserID: "u4", ItemID: "acc_cap", Cost: 30},
	)

	s := ForUser(doc, "u3")
	if s.Points != 100 {
		t.Errorf("points = %d, want 100 (purchases do not reduce lifetime points)", s.Points)
	}
	if s.SpendablePoints != 70 {
		t.Errorf("spendable = %d, want 70", s.SpendablePoints)
	}
}

func TestBadgeThresholds(t *testing.T) {
	doc := economyDoc(t)
	doc.ExtraPoints = append(doc.ExtraPoints, model.ExtraPointEntry{ID: "e1", UserID: "u3", Points: 60})

	s := ForUser(doc, "u3")
	if len(s.Badges) != 1 || s.Badges[0].ID != "b1" {
		t.Fatalf("badges = %+v, want only Novato", s.Badges)
	}

	// Ten completions unlock Ayudante.
	for i := 0; i < 10; i++ {
		complete(doc, model.NewID(), "t1", "u3", "2026-03-01")
	}
	s = ForUser(doc, "u3")
	if len(s.Badges) != 2 {
		t.Errorf("badges = %+v, want Novato and Ayudante", s.Badges)
	}
}

func TestVacileTalliesAndAllowances(t *testing.T) {
	doc := economyDoc(t)
	doc.Families = append(doc.Families, model.Family{ID: "f2", Name: "Otros"})
	doc.Users = append(doc.Users, model.User{ID: "x1", FamilyID: "f2", Role: model.RoleKid})

	// 11 completed tasks: 2 internal credits, 0 external.
	for i := 0; i < 11; i++ {
		complete(doc, model.NewID(), "t1", "u3", "2026-02-01")
	}
	doc.Messages = append(doc.Messages,
		model.Message{ID: "m1", FromUserID: "u3", ToUserID: "u4", Type: model.MessageVacile, Content: "😜"},
		model.Message{ID: "m2", FromUserID: "u3", ToUserID: "x1", Type: model.MessageVacile, Content: "🏆"},
		model.Message{ID: "m3", FromUserID: "u3", ToUserID: "u4", Type: model.MessageNormal, Content: "hola"},
	)

	s := ForUser(doc, "u3")
	if s.VacilesSent != 2 {
		t.Errorf("vacilesSent = %d, want 2 (normal messages excluded)", s.VacilesSent)
	}
	if s.VacilesSentInternal != 1 || s.VacilesSentExternal != 1 {
		t.Errorf("internal/external = %d/%d, want 1/1", s.VacilesSentInternal, s.VacilesSentExternal)
	}
	// floor(11/5)=2 internal credits minus 1 sent; floor(11/30)=0 minus 1
	// sent floors at zero.
	if s.VacilesInternalAvailable != 1 {
		t.Errorf("internal available = %d, want 1", s.VacilesInternalAvailable)
	}
	if s.VacilesExternalAvailable != 0 {
		t.Errorf("external available = %d, want 0 (never negative)", s.VacilesExternalAvailable)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	doc := economyDoc(t)
	doc.ExtraPoints = append(doc.ExtraPoints,
		model.ExtraPointEntry{ID: "e1", UserID: "u3", Points: 50},
		model.ExtraPointEntry{ID: "e2", UserID: "u4", Points: 80},
	)
	doc.Users = append(doc.Users, model.User{ID: "p1", FamilyID: "f1", Role: model.RoleAdmin})

	board := Leaderboard(doc, "f1", WindowAll, now)
	if len(board) != 2 {
		t.Fatalf("entries = %d, want 2 (admins excluded)", len(board))
	}
	if board[0].UserID != "u4" || board[1].UserID != "u3" {
		t.Errorf("order = %s, %s; want u4 first", board[0].UserID, board[1].UserID)
	}
}

func TestFamilyRankingUsesRelativeScore(t *testing.T) {
	// Family A: two kids with 100 and 50 (avg 75). Family B: one kid
	// with 80 (avg 80). B must rank above A despite A's higher total.
	doc := model.NewDocument()
	doc.Families = append(doc.Families,
		model.Family{ID: "fa", Name: "A"},
		model.Family{ID: "fb", Name: "B"},
	)
	doc.Users = append(doc.Users,
		model.User{ID: "a1", FamilyID: "fa", Role: model.RoleKid},
		model.User{ID: "a2", FamilyID: "fa", Role: model.RoleKid},
		model.User{ID: "b1", FamilyID: "fb", Role: model.RoleKid},
	)
	doc.ExtraPoints = append(doc.ExtraPoints,
		model.ExtraPointEntry{ID: "e1", UserID: "a1", Points: 100},
		model.ExtraPointEntry{ID: "e2", UserID: "a2", Points: 50},
		model.ExtraPointEntry{ID: "e3", UserID: "b1", Points: 80},
	)

	ranks := FamilyRanking(doc, WindowAll, now)
	if len(ranks) != 2 {
		t.Fatalf("ranks = %d, want 2", len(ranks))
	}
	if ranks[0].FamilyID != "fb" {
		t.Errorf("first = %s (%d), want fb", ranks[0].FamilyID, ranks[0].RelativeScore)
	}
	if ranks[0].RelativeScore != 80 || ranks[1].RelativeScore != 75 {
		t.Errorf("scores = %d, %d; want 80, 75", ranks[0].RelativeScore, ranks[1].RelativeScore)
	}
}

func TestFamilyRankingEmptyFamily(t *testing.T) {
	doc := model.NewDocument()
	doc.Families = append(doc.Families, model.Family{ID: "fa", Name: "Vacía"})

	ranks := FamilyRanking(doc, WindowAll, now)
	if len(ranks) != 1 || ranks[0].RelativeScore != 0 {
		t.Errorf("ranks = %+v, want one zero-score family", ranks)
	}
}

func TestWeeklyWindowStartsMonday(t *testing.T) {
	doc := economyDoc(t)
	// now is Wednesday 2026-03-18; Monday is 2026-03-16.
	complete(doc, "c1", "t1", "u3", "2026-03-16") // in window
	complete(doc, "c2", "t1", "u3", "2026-03-15") // Sunday, out

	s := ForUserWindow(doc, "u3", WindowWeekly, now)
	if s.Points != 10 || s.TasksCompleted != 1 {
		t.Errorf("points/tasks = %d/%d, want 10/1", s.Points, s.TasksCompleted)
	}
}

func TestMonthlyWindowStartsFirst(t *testing.T) {
	doc := economyDoc(t)
	complete(doc, "c1", "t1", "u3", "2026-03-01")
	complete(doc, "c2", "t1", "u3", "2026-02-28")
	doc.ExtraPoints = append(doc.ExtraPoints,
		model.ExtraPointEntry{ID: "e1", UserID: "u3", Points: 7,
			Timestamp: time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local).UnixMilli()},
		model.ExtraPointEntry{ID: "e2", UserID: "u3", Points: 9,
			Timestamp: time.Date(2026, 2, 20, 0, 0, 0, 0, time.Local).UnixMilli()},
	)

	s := ForUserWindow(doc, "u3", WindowMonthly, now)
	if s.Points != 10+7 {
		t.Errorf("points = %d, want 17", s.Points)
	}
}

func TestWindowDoesNotInflateSpendable(t *testing.T) {
	doc := economyDoc(t)
	// Old earnings, old spending: the weekly window must not hide the
	// spending while hiding the earnings.
	doc.ExtraPoints = append(doc.ExtraPoints, model.ExtraPointEntry{
		ID: "e1", UserID: "u3", Points: 100,
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local).UnixMilli(),
	})
	doc.Transactions = append(doc.Transactions, model.ShopTransaction{
		ID: "tx1", UserID: "u3", ItemID: "acc_cap", Cost: 40,
	})

	s := ForUserWindow(doc, "u3", WindowWeekly, now)
	if s.Points != 0 {
		t.Errorf("windowed points = %d, want 0", s.Points)
	}
	if s.SpendablePoints != 60 {
		t.Errorf("spendable = %d, want lifetime 60 regardless of window", s.SpendablePoints)
	}
}

func TestParseWindow(t *testing.T) {
	if ParseWindow("weekly") != WindowWeekly {
		t.Error("weekly")
	}
	if ParseWindow("monthly") != WindowMonthly {
		t.Error("monthly")
	}
	if ParseWindow("") != WindowAll || ParseWindow("junk") != WindowAll {
		t.Error("default")
	}
}
