package models

import "encoding/json"

type StreamEventKind string

const (
	EventToken    StreamEventKind = "token"
	EventEvidence StreamEventKind = "evidence"
)

// StreamEvent is one frame of a chat stream: either a single answer token or
// the terminal evidence payload. All token events precede the evidence event.
type StreamEvent struct {
	Kind     StreamEventKind
	Token    string
	Evidence []json.RawMessage
}

func TokenEvent(token string) StreamEvent {
	return StreamEvent{Kind: EventToken, Token: token}
}

func EvidenceEvent(evidence []json.RawMessage) StreamEvent {
	return StreamEvent{Kind: EventEvidence, Evidence: evidence}
}
