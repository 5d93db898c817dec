package models

import "time"

// ChatMessage is one question/answer exchange with the assistant.
// The transcript is accumulated in memory for the session only and is never
// persisted by this layer.
type ChatMessage struct {
	Question  string
	Answer    string
	Source    string
	Timestamp time.Time

	// Err holds the failure text when the exchange did not produce an
	// answer; such entries stay in the transcript as error lines.
	Err string
}
