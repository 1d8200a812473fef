package records

import (
	"bytes"
	"encoding/json"
)

// NormalizeList coerces a list response into an ordered item
// sequence. The API returns either a bare array or an envelope with a
// data array depending on the endpoint; anything else (null, an
// object without data, a scalar) normalizes to an empty sequence and
// is never an error. Order is the server's response order.
func NormalizeList(raw json.RawMessage) []json.RawMessage {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []json.RawMessage{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		if items == nil {
			return []json.RawMessage{}
		}
		return items
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data
	}

	return []json.RawMessage{}
}
