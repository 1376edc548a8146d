package pkg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/blockterm/pkg/event"
	"github.com/qnkhuat/blockterm/pkg/game"
	"github.com/qnkhuat/blockterm/pkg/gui"
	"github.com/qnkhuat/blockterm/pkg/mino"
)

func TestTransportEncoding(t *testing.T) {
	tests := []struct {
		msg  MessageInterface
		want string
	}{
		{MessageSound{Sound: event.SoundClear}, `{"type":"sound","data":{"sound":"clear"}}`},
		{MessageAction{Action: event.ActionRotate}, `{"type":"action","data":{"action":"rotate"}}`},
		{MessageConfig{Theme: gui.ThemeHex{Name: "mono"}, Width: 10, Height: 20, Nick: "n"},
			`{"type":"config","data":{"theme":{"name":"mono","background":"","border":"","text":"","label":"","flash":"","empty":"","pieceI":"","pieceO":"","pieceT":"","pieceS":"","pieceZ":"","pieceJ":"","pieceL":""},"width":10,"height":20,"nick":"n"}}`},
	}

	for _, tt := range tests {
		transport, err := NewTransport(tt.msg)
		require.NoError(t, err)

		b, err := json.Marshal(transport)
		require.NoError(t, err)
		assert.JSONEq(t, tt.want, string(b), tt.msg.Type().String())
	}
}

func TestStateMessage(t *testing.T) {
	s := game.NewSession(game.WithSource(mino.NewSequence(mino.PieceT, mino.PieceZ)))

	transport, err := NewTransport(MessageState{Snapshot: s.Snapshot()})
	require.NoError(t, err)
	assert.Equal(t, TypeMessageState, transport.MsgType)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(transport.Data, &snap))
	assert.Equal(t, s.Snapshot(), snap)
}

func TestDecodeAction(t *testing.T) {
	var transport MessageTransport
	require.NoError(t, json.Unmarshal([]byte(`{"type":"action","data":{"action":"left"}}`), &transport))

	a, err := DecodeAction(transport)
	require.NoError(t, err)
	assert.Equal(t, event.ActionMoveLeft, a)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"chat","data":{"text":"hi"}}`), &transport))
	assert.Equal(t, TypeMessageUnknown, transport.MsgType)
	_, err = DecodeAction(transport)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"action","data":{"action":"fly"}}`), &transport))
	_, err = DecodeAction(transport)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"action","data":"rotate"}`), &transport))
	_, err = DecodeAction(transport)
	assert.Error(t, err)
}
