package model

type MessageType string

const (
	MessageNormal MessageType = "NORMAL"
	MessageVacile MessageType = "VACILE" // rate-limited taunt between kids
)

// Message is directed and deliberately not family-scoped: vaciles may cross
// family boundaries.
type Message struct {
	ID         string      `json:"id"`
	FromUserID string      `json:"fromUserId"`
	ToUserID   string      `json:"toUserId"`
	Content    string      `json:"content"`
	Timestamp  int64       `json:"timestamp"`
	Read       bool        `json:"read"`
	Type       MessageType `json:"type,omitempty"`
}
