package action

import (
	"encoding/json"
	"fmt"

	"github.com/barrero/supertareas/internal/model"
)

// Envelope is the wire form of an action: a kind tag plus a kind-specific
// payload.
type Envelope struct {
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Decode parses a wire envelope into a typed Action. An unrecognized kind
// returns ErrUnknownKind so callers can ignore it without failing the
// request; a malformed payload for a known kind is a hard error.
func Decode(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return DecodeEnvelope(env)
}

// DecodeEnvelope converts an already-parsed envelope into a typed Action.
func DecodeEnvelope(env Envelope) (Action, error) {
	switch env.Type {
	case KindAddFamily:
		var f model.Family
		if err := unmarshalPayload(env, &f); err != nil {
			return nil, err
		}
		return AddFamily{Family: f}, nil
	case KindDeleteFamily:
		id, err := stringPayload(env)
		if err != nil {
			return nil, err
		}
		return DeleteFamily{FamilyID: id}, nil
	case KindCreateUser:
		var u model.User
		if err := unmarshalPayload(env, &u); err != nil {
			return nil, err
		}
		return CreateUser{User: u}, nil
	case KindUpdateUser:
		var u model.User
		if err := unmarshalPayload(env, &u); err != nil {
			return nil, err
		}
		return UpdateUser{User: u}, nil
	case KindSaveTask:
		var t model.Task
		if err := unmarshalPayload(env, &t); err != nil {
			return nil, err
		}
		return SaveTask{Task: t}, nil
	case KindDeleteTask:
		id, err := stringPayload(env)
		if err != nil {
			return nil, err
		}
		return DeleteTask{TaskID: id}, nil
	case KindAddCompletion:
		var c model.TaskCompletion
		if err := unmarshalPayload(env, &c); err != nil {
			return nil, err
		}
		return AddCompletion{Completion: c}, nil
	case KindRemoveCompletion:
		var rc RemoveCompletion
		if err := unmarshalPayload(env, &rc); err != nil {
			return nil, err
		}
		return rc, nil
	case KindAddExtraPoints:
		var e model.ExtraPointEntry
		if err := unmarshalPayload(env, &e); err != nil {
			return nil, err
		}
		return AddExtraPoints{Entry: e}, nil
	case KindSendMessage:
		var m model.Message
		if err := unmarshalPayload(env, &m); err != nil {
			return nil, err
		}
		return SendMessage{Message: m}, nil
	case KindMarkMessageRead:
		id, err := stringPayload(env)
		if err != nil {
			return nil, err
		}
		return MarkMessageRead{MessageID: id}, nil
	case KindSaveEvent:
		var e model.Event
		if err := unmarshalPayload(env, &e); err != nil {
			return nil, err
		}
		return SaveEvent{Event: e}, nil
	case KindMarkEventRead:
		var m MarkEventRead
		if err := unmarshalPayload(env, &m); err != nil {
			return nil, err
		}
		return m, nil
	case KindMarkEventCompleted:
		var m MarkEventCompleted
		if err := unmarshalPayload(env, &m); err != nil {
			return nil, err
		}
		return m, nil
	case KindSaveReward:
		var r model.Reward
		if err := unmarshalPayload(env, &r); err != nil {
			return nil, err
		}
		return SaveReward{Reward: r}, nil
	case KindDeleteReward:
		id, err := stringPayload(env)
		if err != nil {
			return nil, err
		}
		return DeleteReward{RewardID: id}, nil
	case KindAddTransaction:
		var tx model.ShopTransaction
		if err := unmarshalPayload(env, &tx); err != nil {
			return nil, err
		}
		return AddTransaction{Transaction: tx}, nil
	case KindPurchaseItem:
		var p PurchaseItem
		if err := unmarshalPayload(env, &p); err != nil {
			return nil, err
		}
		return p, nil
	case KindRedeemReward:
		var r RedeemReward
		if err := unmarshalPayload(env, &r); err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}
}

// Encode wraps a typed Action back into its wire envelope.
func Encode(a Action) ([]byte, error) {
	payload, err := json.Marshal(payloadOf(a))
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return json.Marshal(Envelope{Type: a.Kind(), Payload: payload})
}

// payloadOf picks the wire payload for each variant. Single-entity commands
// send the entity itself; ID-only commands send the bare string, matching
// the envelope shapes clients produce.
func payloadOf(a Action) any {
	switch v := a.(type) {
	case AddFamily:
		return v.Family
	case DeleteFamily:
		return v.FamilyID
	case CreateUser:
		return v.User
	case UpdateUser:
		return v.User
	case SaveTask:
		return v.Task
	case DeleteTask:
		return v.TaskID
	case AddCompletion:
		return v.Completion
	case AddExtraPoints:
		return v.Entry
	case SendMessage:
		return v.Message
	case MarkMessageRead:
		return v.MessageID
	case SaveEvent:
		return v.Event
	case SaveReward:
		return v.Reward
	case DeleteReward:
		return v.RewardID
	case AddTransaction:
		return v.Transaction
	default:
		// Struct payloads marshal under their own json tags.
		return a
	}
}

func unmarshalPayload(env Envelope, dst any) error {
	if len(env.Payload) == 0 {
		return fmt.Errorf("action %s: empty payload", env.Type)
	}
	if err := json.Unmarshal(env.Payload, dst); err != nil {
		return fmt.Errorf("action %s: %w", env.Type, err)
	}
	return nil
}

func stringPayload(env Envelope) (string, error) {
	var s string
	if err := unmarshalPayload(env, &s); err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("action %s: empty id", env.Type)
	}
	return s, nil
}
