package model

import (
	"time"

	"github.com/google/uuid"
)

// Document is the single aggregate holding every entity collection. It is
// the unit of persistence: the store loads and saves it whole.
type Document struct {
	Families     []Family          `json:"families"`
	Users        []User            `json:"users"`
	Tasks        []Task            `json:"tasks"`
	Completions  []TaskCompletion  `json:"completions"`
	ExtraPoints  []ExtraPointEntry `json:"extraPoints"`
	Messages     []Message         `json:"messages"`
	Events       []Event           `json:"events"`
	Transactions []ShopTransaction `json:"transactions"`
	Rewards      []Reward          `json:"rewards"`
}

// NewDocument returns an empty document with all collections allocated,
// so JSON encoding produces [] rather than null.
func NewDocument() *Document {
	return &Document{
		Families:     []Family{},
		Users:        []User{},
		Tasks:        []Task{},
		Completions:  []TaskCompletion{},
		ExtraPoints:  []ExtraPointEntry{},
		Messages:     []Message{},
		Events:       []Event{},
		Transactions: []ShopTransaction{},
		Rewards:      []Reward{},
	}
}

// Normalize replaces nil collections with empty slices. Documents decoded
// from older files or partial client snapshots may omit collections.
func (d *Document) Normalize() {
	if d.Families == nil {
		d.Families = []Family{}
	}
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	if d.Completions == nil {
		d.Completions = []TaskCompletion{}
	}
	if d.ExtraPoints == nil {
		d.ExtraPoints = []ExtraPointEntry{}
	}
	if d.Messages == nil {
		d.Messages = []Message{}
	}
	if d.Events == nil {
		d.Events = []Event{}
	}
	if d.Transactions == nil {
		d.Transactions = []ShopTransaction{}
	}
	if d.Rewards == nil {
		d.Rewards = []Reward{}
	}
}

// UserByID returns a pointer into the Users slice, or nil.
func (d *Document) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// TaskByID returns a pointer into the Tasks slice, or nil.
func (d *Document) TaskByID(id string) *Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// RewardByID returns a pointer into the Rewards slice, or nil.
func (d *Document) RewardByID(id string) *Reward {
	for i := range d.Rewards {
		if d.Rewards[i].ID == id {
			return &d.Rewards[i]
		}
	}
	return nil
}

// EventByID returns a pointer into the Events slice, or nil.
func (d *Document) EventByID(id string) *Event {
	for i := range d.Events {
		if d.Events[i].ID == id {
			return &d.Events[i]
		}
	}
	return nil
}

// NewID generates a collision-resistant entity identifier.
func NewID() string {
	return uuid.NewString()
}

// DateString formats t as the YYYY-MM-DD form used by completions and events.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
