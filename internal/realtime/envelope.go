// Package realtime implements the server side of the dashboard's live
// update channel: a websocket endpoint, a registry of open channels per
// user, and a dispatcher that fans domain events out to them.
//
// Envelopes are pure invalidation triggers. They never carry authoritative
// state; clients re-fetch the affected list from the REST API instead.
package realtime

import (
	"encoding/json"
	"fmt"
)

// Kind tags an envelope. The set is closed on the server side; clients must
// ignore kinds they do not recognise.
type Kind string

const (
	KindAuth                Kind = "auth"
	KindAuthSuccess         Kind = "auth_success"
	KindAuthError           Kind = "auth_error"
	KindNotificationCreated Kind = "notification-created"
	KindChatMessageCreated  Kind = "chat-message-created"
	KindError               Kind = "error"
)

// Known reports whether the kind belongs to the closed set.
func (k Kind) Known() bool {
	switch k {
	case KindAuth, KindAuthSuccess, KindAuthError,
		KindNotificationCreated, KindChatMessageCreated, KindError:
		return true
	}
	return false
}

// Envelope is the wire message exchanged over a channel. Only the fields
// relevant to a given kind are populated: UserID for auth, Message for
// auth_error and error.
type Envelope struct {
	Type    Kind   `json:"type"`
	UserID  string `json:"userId,omitempty"`
	Message string `json:"message,omitempty"`
}

// DecodeEnvelope parses a raw frame. A decode error means the frame is
// malformed and should be logged and dropped; an unknown Type is not an
// error (forward compatibility) and is reported via Kind.Known.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	return env, nil
}

// Encode serialises the envelope for the wire.
func (e Envelope) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return data, nil
}
