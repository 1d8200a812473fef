package records

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeList_BareArrayAndEnvelopeAgree(t *testing.T) {
	bare := json.RawMessage(`[{"_id":"1"},{"_id":"2"},{"_id":"3"}]`)
	envelope := json.RawMessage(`{"data":[{"_id":"1"},{"_id":"2"},{"_id":"3"}]}`)

	fromBare := NormalizeList(bare)
	fromEnvelope := NormalizeList(envelope)

	assert.Equal(t, fromBare, fromEnvelope)
	assert.Len(t, fromBare, 3)
	// Insertion order is the server's response order
	assert.JSONEq(t, `{"_id":"1"}`, string(fromBare[0]))
	assert.JSONEq(t, `{"_id":"3"}`, string(fromBare[2]))
}

func TestNormalizeList_OtherShapesAreEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"null", `null`},
		{"empty", ``},
		{"object without data", `{"message":"ok"}`},
		{"data not an array", `{"data":"nope"}`},
		{"scalar", `5`},
		{"string", `"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := NormalizeList(json.RawMessage(tt.raw))
			assert.NotNil(t, items)
			assert.Empty(t, items)
		})
	}
}

func TestNormalizeList_EmptyArrays(t *testing.T) {
	assert.Empty(t, NormalizeList(json.RawMessage(`[]`)))
	assert.Empty(t, NormalizeList(json.RawMessage(`{"data":[]}`)))
}
