package pkg

import (
	"encoding/json"
	"fmt"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/gui"
)

type MessageType int

const (
	TypeMessageUnknown MessageType = iota
	TypeMessageConfig
	TypeMessageState
	TypeMessageSound
	TypeMessageAction
)

var messageTypeNames = map[MessageType]string{
	TypeMessageConfig: "config",
	TypeMessageState:  "state",
	TypeMessageSound:  "sound",
	TypeMessageAction: "action",
}

func (m MessageType) String() string {
	if name, ok := messageTypeNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m MessageType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText never fails; unrecognised names become TypeMessageUnknown
// so the reader can log and skip them.
func (m *MessageType) UnmarshalText(text []byte) error {
	*m = TypeMessageUnknown
	for t, name := range messageTypeNames {
		if name == string(text) {
			*m = t
		}
	}
	return nil
}

type MessageInterface interface {
	Type() MessageType
	Encode() (json.RawMessage, error)
}

// Message types

// MessageTransport is the frame every message travels in
type MessageTransport struct {
	MsgType MessageType     `json:"type"`
	Data    json.RawMessage `json:"data"`
}

// NewTransport wraps a message in its frame
func NewTransport(m MessageInterface) (MessageTransport, error) {
	data, err := m.Encode()
	if err != nil {
		return MessageTransport{}, fmt.Errorf("failed to encode %s message: %w", m.Type(), err)
	}
	return MessageTransport{MsgType: m.Type(), Data: data}, nil
}

// MessageConfig is sent once when a browser connects
type MessageConfig struct {
	Theme  gui.ThemeHex `json:"theme"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Nick   string       `json:"nick"`
}

func (m MessageConfig) Type() MessageType {
	return TypeMessageConfig
}

func (m MessageConfig) Encode() (json.RawMessage, error) {
	return json.Marshal(m)
}

// MessageState carries a snapshot after every change
type MessageState struct {
	Snapshot game.Snapshot
}

func (m MessageState) Type() MessageType {
	return TypeMessageState
}

func (m MessageState) Encode() (json.RawMessage, error) {
	return json.Marshal(m.Snapshot)
}

type MessageSound struct {
	Sound event.Sound `json:"sound"`
}

func (m MessageSound) Type() MessageType {
	return TypeMessageSound
}

func (m MessageSound) Encode() (json.RawMessage, error) {
	return json.Marshal(m)
}

type MessageAction struct {
	Action event.GameAction `json:"action"`
}

func (m MessageAction) Type() MessageType {
	return TypeMessageAction
}

func (m MessageAction) Encode() (json.RawMessage, error) {
	return json.Marshal(m)
}

// DecodeAction reads the action out of an action frame
func DecodeAction(t MessageTransport) (event.GameAction, error) {
	if t.MsgType != TypeMessageAction {
		return event.ActionUnknown, fmt.Errorf("unexpected %s message", t.MsgType)
	}

	var m MessageAction
	if err := json.Unmarshal(t.Data, &m); err != nil {
		return event.ActionUnknown, fmt.Errorf("invalid action message: %w", err)
	}
	return m.Action, nil
}
