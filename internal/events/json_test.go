package events

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEmitterWritesNewlineDelimitedEvents(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewJSONEmitter(&buf)

	require.NoError(t, emitter.Emit(NewEvent(RunStarted)))
	require.NoError(t, emitter.Emit(NewEvent(SlotAccepted).WithSlot(0).WithModel("gpt-4o")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second JSONEvent
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "run.started", first.Type)
	assert.Equal(t, "slot.accepted", second.Type)
	require.NotNil(t, second.Slot)
	assert.Equal(t, 0, *second.Slot)
	assert.Equal(t, "gpt-4o", second.Model)
}

func TestJSONEmitterHandlerSubscribesToBus(t *testing.T) {
	var buf bytes.Buffer
	bus := NewBus()
	bus.Subscribe(JSONEmitterHandler(NewJSONEmitter(&buf)))

	bus.Emit(NewEvent(AttemptRejected).WithSlot(2).WithAttempt(1))

	var got JSONEvent
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "attempt.rejected", got.Type)
	assert.False(t, got.Timestamp.IsZero())
}

func TestToJSONEventPassesMapPayloadThrough(t *testing.T) {
	payload := map[string]interface{}{"score": 81.0, "pass": true}
	je := ToJSONEvent(NewEvent(AttemptScored).WithPayload(payload))

	assert.Equal(t, payload, je.Payload)
}

func TestToJSONEventWrapsScalarPayload(t *testing.T) {
	je := ToJSONEvent(NewEvent(SlotSalvaged).WithPayload(57.3))
	assert.Equal(t, map[string]interface{}{"value": 57.3}, je.Payload)
}

func TestToJSONEventOmitsNilPayload(t *testing.T) {
	e := NewEvent(RunCompleted)
	e.Time = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	je := ToJSONEvent(e)
	assert.Nil(t, je.Payload)
	assert.Equal(t, e.Time, je.Timestamp)

	raw, err := json.Marshal(je)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "payload")
}

func TestIsJSONModeForceFlag(t *testing.T) {
	assert.True(t, IsJSONMode(true))
}
