package models

import "encoding/json"

// Answer is what the oracle returns for one query. Evidence items are opaque
// records owned by the oracle; they are carried through byte-for-byte.
type Answer struct {
	Text     string            `json:"text"`
	Evidence []json.RawMessage `json:"evidence,omitempty"`
}
