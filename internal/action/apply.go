package action

import (
	"fmt"
	"time"

	"github.com/barrero/supertareas/internal/model"
	"github.com/barrero/supertareas/internal/stats"
)

// Apply executes one command against the in-memory document. Callers run it
// inside the write queue's exclusive cycle; Apply itself never touches
// disk. now supplies timestamps for server-generated records.
func Apply(doc *model.Document, a Action, now time.Time) error {
	switch v := a.(type) {
	case AddFamily:
		return applyAddFamily(doc, v)
	case DeleteFamily:
		return applyDeleteFamily(doc, v)
	case CreateUser:
		return applyCreateUser(doc, v)
	case UpdateUser:
		return applyUpdateUser(doc, v)
	case SaveTask:
		return applySaveTask(doc, v)
	case DeleteTask:
		return applyDeleteTask(doc, v)
	case AddCompletion:
		return applyAddCompletion(doc, v)
	case RemoveCompletion:
		return applyRemoveCompletion(doc, v)
	case AddExtraPoints:
		doc.ExtraPoints = append(doc.ExtraPoints, v.Entry)
		return nil
	case SendMessage:
		doc.Messages = append(doc.Messages, v.Message)
		return nil
	case MarkMessageRead:
		return applyMarkMessageRead(doc, v)
	case SaveEvent:
		return applySaveEvent(doc, v)
	case MarkEventRead:
		return applyMarkEventRead(doc, v)
	case MarkEventCompleted:
		return applyMarkEventCompleted(doc, v)
	case SaveReward:
		return applySaveReward(doc, v)
	case DeleteReward:
		return applyDeleteReward(doc, v)
	case AddTransaction:
		doc.Transactions = append(doc.Transactions, v.Transaction)
		return nil
	case PurchaseItem:
		return applyPurchaseItem(doc, v)
	case RedeemReward:
		return applyRedeemReward(doc, v, now)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, a)
	}
}

func applyAddFamily(doc *model.Document, v AddFamily) error {
	for _, f := range doc.Families {
		if f.ID == v.Family.ID {
			return nil // redelivery
		}
	}
	doc.Families = append(doc.Families, v.Family)
	return nil
}

// applyDeleteFamily cascades: users, tasks, and rewards of the family go
// with it. Completion and transaction ledgers keep their rows; joins filter
// dangling references.
func applyDeleteFamily(doc *model.Document, v DeleteFamily) error {
	families := doc.Families[:0]
	for _, f := range doc.Families {
		if f.ID != v.FamilyID {
			families = append(families, f)
		}
	}
	doc.Families = families

	users := doc.Users[:0]
	for _, u := range doc.Users {
		if u.FamilyID != v.FamilyID {
			users = append(users, u)
		}
	}
	doc.Users = users

	tasks := doc.Tasks[:0]
	for _, t := range doc.Tasks {
		if t.FamilyID != v.FamilyID {
			tasks = append(tasks, t)
		}
	}
	doc.Tasks = tasks

	rewards := doc.Rewards[:0]
	for _, r := range doc.Rewards {
		if r.FamilyID != v.FamilyID {
			rewards = append(rewards, r)
		}
	}
	doc.Rewards = rewards
	return nil
}

func applyCreateUser(doc *model.Document, v CreateUser) error {
	if doc.UserByID(v.User.ID) != nil {
		return nil // redelivery
	}
	doc.Users = append(doc.Users, v.User)
	return nil
}

func applyUpdateUser(doc *model.Document, v UpdateUser) error {
	for i := range doc.Users {
		if doc.Users[i].ID == v.User.ID {
			doc.Users[i] = v.User
			return nil
		}
	}
	// Updating a user deleted by a concurrent cascade is not an error.
	return nil
}

func applySaveTask(doc *model.Document, v SaveTask) error {
	for i := range doc.Tasks {
		if doc.Tasks[i].ID == v.Task.ID {
			doc.Tasks[i] = v.Task
			return nil
		}
	}
	doc.Tasks = append(doc.Tasks, v.Task)
	return nil
}

func applyDeleteTask(doc *model.Document, v DeleteTask) error {
	tasks := doc.Tasks[:0]
	for _, t := range doc.Tasks {
		if t.ID != v.TaskID {
			tasks = append(tasks, t)
		}
	}
	doc.Tasks = tasks
	return nil
}

func applyAddCompletion(doc *model.Document, v AddCompletion) error {
	c := v.Completion
	for _, existing := range doc.Completions {
		if existing.TaskID == c.TaskID && existing.UserID == c.UserID && existing.Date == c.Date {
			return nil // already completed, idempotent
		}
	}
	if task := doc.TaskByID(c.TaskID); task != nil && task.IsUnique {
		for _, existing := range doc.Completions {
			if existing.TaskID == c.TaskID && existing.Date == c.Date {
				return fmt.Errorf("%w: task %s on %s by %s", ErrTaskTaken, c.TaskID, c.Date, existing.UserID)
			}
		}
	}
	doc.Completions = append(doc.Completions, c)
	return nil
}

func applyRemoveCompletion(doc *model.Document, v RemoveCompletion) error {
	completions := doc.Completions[:0]
	for _, c := range doc.Completions {
		if c.TaskID == v.TaskID && c.UserID == v.UserID && c.Date == v.Date {
			continue
		}
		completions = append(completions, c)
	}
	doc.Completions = completions
	return nil
}

func applyMarkMessageRead(doc *model.Document, v MarkMessageRead) error {
	for i := range doc.Messages {
		if doc.Messages[i].ID == v.MessageID {
			doc.Messages[i].Read = true
			return nil
		}
	}
	return nil
}

func applySaveEvent(doc *model.Document, v SaveEvent) error {
	e := v.Event
	if e.ReadBy == nil {
		e.ReadBy = []string{}
	}
	if e.CompletedBy == nil {
		e.CompletedBy = []string{}
	}
	for i := range doc.Events {
		if doc.Events[i].ID == e.ID {
			doc.Events[i] = e
			return nil
		}
	}
	doc.Events = append(doc.Events, e)
	return nil
}

func applyMarkEventRead(doc *model.Document, v MarkEventRead) error {
	e := doc.EventByID(v.EventID)
	if e == nil || e.ReadByUser(v.UserID) {
		return nil
	}
	e.ReadBy = append(e.ReadBy, v.UserID)
	return nil
}

func applyMarkEventCompleted(doc *model.Document, v MarkEventCompleted) error {
	e := doc.EventByID(v.EventID)
	if e == nil || e.CompletedByUser(v.UserID) {
		return nil
	}
	e.CompletedBy = append(e.CompletedBy, v.UserID)
	return nil
}

func applySaveReward(doc *model.Document, v SaveReward) error {
	for i := range doc.Rewards {
		if doc.Rewards[i].ID == v.Reward.ID {
			doc.Rewards[i] = v.Reward
			return nil
		}
	}
	doc.Rewards = append(doc.Rewards, v.Reward)
	return nil
}

func applyDeleteReward(doc *model.Document, v DeleteReward) error {
	rewards := doc.Rewards[:0]
	for _, r := range doc.Rewards {
		if r.ID != v.RewardID {
			rewards = append(rewards, r)
		}
	}
	doc.Rewards = rewards
	return nil
}

// applyPurchaseItem validates the avatar-item purchase and commits the
// transaction plus the inventory grant atomically within the cycle.
func applyPurchaseItem(doc *model.Document, v PurchaseItem) error {
	user := doc.UserByID(v.UserID)
	if user == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, v.UserID)
	}
	if user.Owns(v.ItemID) {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, v.ItemID)
	}

	cost := v.Transaction.Cost
	if item := model.AvatarItemByID(v.ItemID); item != nil {
		// Catalog price wins over whatever the client claims.
		cost = item.Cost
	}
	if stats.ForUser(doc, v.UserID).SpendablePoints < cost {
		return fmt.Errorf("%w: item %s costs %d", ErrInsufficientPoints, v.ItemID, cost)
	}

	tx := v.Transaction
	tx.UserID = v.UserID
	tx.ItemID = v.ItemID
	tx.Cost = cost
	doc.Transactions = append(doc.Transactions, tx)
	user.Inventory = append(user.Inventory, v.ItemID)
	return nil
}

// applyRedeemReward performs every availability check inside the write
// cycle, so two racing redemptions of a unique reward cannot both succeed.
func applyRedeemReward(doc *model.Document, v RedeemReward, now time.Time) error {
	reward := doc.RewardByID(v.RewardID)
	if reward == nil {
		return fmt.Errorf("%w: reward %s", ErrNotFound, v.RewardID)
	}
	if doc.UserByID(v.UserID) == nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, v.UserID)
	}

	if stats.ForUser(doc, v.UserID).SpendablePoints < reward.Cost {
		return fmt.Errorf("%w: reward %s costs %d", ErrInsufficientPoints, v.RewardID, reward.Cost)
	}

	for _, tx := range doc.Transactions {
		if tx.ItemID != v.RewardID {
			continue
		}
		if reward.LimitType == model.LimitUnique {
			return fmt.Errorf("%w: %s", ErrRewardSoldOut, v.RewardID)
		}
		if reward.LimitType == model.LimitOncePerUser && tx.UserID == v.UserID {
			return fmt.Errorf("%w: reward %s", ErrAlreadyOwned, v.RewardID)
		}
	}

	doc.Transactions = append(doc.Transactions, model.ShopTransaction{
		ID:        model.NewID(),
		UserID:    v.UserID,
		ItemID:    v.RewardID,
		Cost:      reward.Cost,
		Timestamp: now.UnixMilli(),
	})
	return nil
}
