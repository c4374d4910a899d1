package model

type RewardLimit string

const (
	LimitUnlimited   RewardLimit = "unlimited"
	LimitOncePerUser RewardLimit = "once_per_user"
	LimitUnique      RewardLimit = "unique" // sold at most once across all users
)

// Reward is a family-scoped catalog entry kids can spend points on.
type Reward struct {
	ID        string      `json:"id"`
	FamilyID  string      `json:"familyId"`
	Name      string      `json:"name"`
	Cost      int         `json:"cost"`
	Icon      string      `json:"icon"`
	LimitType RewardLimit `json:"limitType"`
}

// ShopTransaction is an append-only purchase ledger entry. ItemID references
// either a Reward or an avatar catalog item.
type ShopTransaction struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ItemID    string `json:"itemId"`
	Cost      int    `json:"cost"`
	Timestamp int64  `json:"timestamp"`
}
