// Package action defines the closed vocabulary of mutation commands applied
// to the document, the JSON envelope they travel in, and their deterministic
// application rules. The persisted state is exactly the fold of the applied
// actions over an empty document.
package action

import "github.com/barrero/supertareas/internal/model"

// Kind is the wire identifier of a command.
type Kind string

const (
	KindAddFamily          Kind = "ADD_FAMILY"
	KindDeleteFamily       Kind = "DELETE_FAMILY"
	KindCreateUser         Kind = "CREATE_USER"
	KindUpdateUser         Kind = "UPDATE_USER"
	KindSaveTask           Kind = "SAVE_TASK"
	KindDeleteTask         Kind = "DELETE_TASK"
	KindAddCompletion      Kind = "ADD_COMPLETION"
	KindRemoveCompletion   Kind = "REMOVE_COMPLETION"
	KindAddExtraPoints     Kind = "ADD_EXTRA_POINTS"
	KindSendMessage        Kind = "SEND_MESSAGE"
	KindMarkMessageRead    Kind = "MARK_MESSAGE_READ"
	KindSaveEvent          Kind = "SAVE_EVENT"
	KindMarkEventRead      Kind = "MARK_EVENT_READ"
	KindMarkEventCompleted Kind = "MARK_EVENT_COMPLETED"
	KindSaveReward         Kind = "SAVE_REWARD"
	KindDeleteReward       Kind = "DELETE_REWARD"
	KindAddTransaction     Kind = "ADD_TRANSACTION"
	KindPurchaseItem       Kind = "PURCHASE_ITEM"
	KindRedeemReward       Kind = "REDEEM_REWARD"
)

// Action is one typed mutation command. Each variant carries exactly the
// fields its application needs.
type Action interface {
	Kind() Kind
}

type AddFamily struct {
	Family model.Family
}

type DeleteFamily struct {
	FamilyID string
}

type CreateUser struct {
	User model.User
}

type UpdateUser struct {
	User model.User
}

type SaveTask struct {
	Task model.Task
}

type DeleteTask struct {
	TaskID string
}

type AddCompletion struct {
	Completion model.TaskCompletion
}

type RemoveCompletion struct {
	TaskID string `json:"taskId"`
	UserID string `json:"userId"`
	Date   string `json:"date"`
}

type AddExtraPoints struct {
	Entry model.ExtraPointEntry
}

type SendMessage struct {
	Message model.Message
}

type MarkMessageRead struct {
	MessageID string
}

type SaveEvent struct {
	Event model.Event
}

type MarkEventRead struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId"`
}

type MarkEventCompleted struct {
	EventID string `json:"eventId"`
	UserID  string `json:"userId"`
}

type SaveReward struct {
	Reward model.Reward
}

type DeleteReward struct {
	RewardID string
}

type AddTransaction struct {
	Transaction model.ShopTransaction
}

// PurchaseItem lands the shop transaction and the inventory grant in one
// command so both effects commit in the same write cycle.
type PurchaseItem struct {
	Transaction model.ShopTransaction `json:"transaction"`
	UserID      string                `json:"userId"`
	ItemID      string                `json:"itemId"`
}

// RedeemReward is validated server-side inside the write cycle: balance and
// limit checks race-free against concurrent redemptions.
type RedeemReward struct {
	UserID   string `json:"userId"`
	RewardID string `json:"rewardId"`
}

func (AddFamily) Kind() Kind          { return KindAddFamily }
func (DeleteFamily) Kind() Kind       { return KindDeleteFamily }
func (CreateUser) Kind() Kind         { return KindCreateUser }
func (UpdateUser) Kind() Kind         { return KindUpdateUser }
func (SaveTask) Kind() Kind           { return KindSaveTask }
func (DeleteTask) Kind() Kind         { return KindDeleteTask }
func (AddCompletion) Kind() Kind      { return KindAddCompletion }
func (RemoveCompletion) Kind() Kind   { return KindRemoveCompletion }
func (AddExtraPoints) Kind() Kind     { return KindAddExtraPoints }
func (SendMessage) Kind() Kind        { return KindSendMessage }
func (MarkMessageRead) Kind() Kind    { return KindMarkMessageRead }
func (SaveEvent) Kind() Kind          { return KindSaveEvent }
func (MarkEventRead) Kind() Kind      { return KindMarkEventRead }
func (MarkEventCompleted) Kind() Kind { return KindMarkEventCompleted }
func (SaveReward) Kind() Kind         { return KindSaveReward }
func (DeleteReward) Kind() Kind       { return KindDeleteReward }
func (AddTransaction) Kind() Kind     { return KindAddTransaction }
func (PurchaseItem) Kind() Kind       { return KindPurchaseItem }
func (RedeemReward) Kind() Kind       { return KindRedeemReward }

// Describe returns the entity and verb of a command for change
// notifications, plus the principal entity ID when one exists.
func Describe(a Action) (entity, verb, id string) {
	switch v := a.(type) {
	case AddFamily:
		return "family", "created", v.Family.ID
	case DeleteFamily:
		return "family", "deleted", v.FamilyID
	case CreateUser:
		return "user", "created", v.User.ID
	case UpdateUser:
		return "user", "updated", v.User.ID
	case SaveTask:
		return "task", "saved", v.Task.ID
	case DeleteTask:
		return "task", "deleted", v.TaskID
	case AddCompletion:
		return "completion", "added", v.Completion.ID
	case RemoveCompletion:
		return "completion", "removed", v.TaskID
	case AddExtraPoints:
		return "extra_points", "added", v.Entry.ID
	case SendMessage:
		return "message", "sent", v.Message.ID
	case MarkMessageRead:
		return "message", "read", v.MessageID
	case SaveEvent:
		return "event", "saved", v.Event.ID
	case MarkEventRead:
		return "event", "read", v.EventID
	case MarkEventCompleted:
		return "event", "completed", v.EventID
	case SaveReward:
		return "reward", "saved", v.Reward.ID
	case DeleteReward:
		return "reward", "deleted", v.RewardID
	case AddTransaction:
		return "transaction", "added", v.Transaction.ID
	case PurchaseItem:
		return "transaction", "purchased", v.ItemID
	case RedeemReward:
		return "reward", "redeemed", v.RewardID
	default:
		return "document", "changed", ""
	}
}
