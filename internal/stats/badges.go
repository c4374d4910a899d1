package stats

// Badge is a static achievement rule evaluated against a user's lifetime
// points and completed-task count. The set is fixed at compile time;
// eligibility is always recomputed, never stored.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	condition func(points, tasksCompleted int) bool
}

// Badges is the full rule table, in display order.
var Badges = []Badge{
	{ID: "b1", Name: "Novato", Description: "Consigue tus primeros 50 puntos", Icon: "🥉",
		condition: func(p, _ int) bool { return p >= 50 }},
	{ID: "b2", Name: "Ayudante", Description: "Completa 10 tareas", Icon: "🥈",
		condition: func(_, t int) bool { return t >= 10 }},
	{ID: "b3", Name: "Super Estrella", Description: "Alcanza 500 puntos", Icon: "⭐",
		condition: func(p, _ int) bool { return p >= 500 }},
	{ID: "b4", Name: "Leyenda", Description: "Completa 100 tareas", Icon: "👑",
		condition: func(_, t int) bool { return t >= 100 }},
}

func earnedBadges(points, tasksCompleted int) []Badge {
	var earned []Badge
	for _, b := range Badges {
		if b.condition(points, tasksCompleted) {
			earned = append(earned, b)
		}
	}
	return earned
}
