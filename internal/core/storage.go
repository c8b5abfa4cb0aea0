package core

import "context"

// TranscriptRepository archives completed turns. It is an audit log, not
// conversational memory: the sliding window never reads from it. The turn ID
// pairs the user and assistant rows of a single exchange.
type TranscriptRepository interface {
	AddMessage(ctx context.Context, sessionID, turnID string, msg Message) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
	Sessions(ctx context.Context) ([]string, error)
}
