package model

type EventStyle string

const (
	EventStyleDefault EventStyle = "default"
	EventStyleGolden  EventStyle = "golden"
	EventStyleSparkle EventStyle = "sparkle"
)

// Event is a one-off rewarded notice tied to a calendar date. ReadBy and
// CompletedBy are append-only sets of user IDs.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Type        string     `json:"type"`
	Style       EventStyle `json:"style"`
	AssignedTo  []string   `json:"assignedTo"`
	ReadBy      []string   `json:"readBy"`
	CompletedBy []string   `json:"completedBy"`
	Points      int        `json:"points,omitempty"`
}

// ReadByUser reports whether the user has already read the event.
func (e *Event) ReadByUser(userID string) bool {
	return containsID(e.ReadBy, userID)
}

// CompletedByUser reports whether the user has already completed the event.
func (e *Event) CompletedByUser(userID string) bool {
	return containsID(e.CompletedBy, userID)
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
