package model

// Family is the root tenant boundary. Every user, task, and reward belongs
// to exactly one family.
type Family struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleKid   Role = "KID"
)

// AvatarConfig selects the items composing a kid's layered avatar.
type AvatarConfig struct {
	BaseID      string `json:"baseId,omitempty"`
	TopID       string `json:"topId,omitempty"`
	BottomID    string `json:"bottomId,omitempty"`
	ShoesID     string `json:"shoesId,omitempty"`
	AccessoryID string `json:"accessoryId,omitempty"`
}

type User struct {
	ID           string        `json:"id"`
	FamilyID     string        `json:"familyId"`
	Name         string        `json:"name"`
	Role         Role          `json:"role"`
	Avatar       string        `json:"avatar"` // emoji, data URI, or upload URL
	AvatarConfig *AvatarConfig `json:"avatarConfig,omitempty"`
	Inventory    []string      `json:"inventory,omitempty"` // owned shop item IDs
	Color        string        `json:"color"`
	PIN          string        `json:"pin"`
}

// Owns reports whether the user's inventory contains the item.
func (u *User) Owns(itemID string) bool {
	for _, id := range u.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}
