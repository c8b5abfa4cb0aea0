package core

import "time"

const (
	SparrowName          = "SparrowBot"
	SparrowUserAgent     = "SparrowBot-Agent/0.1"
	SparrowRepositoryURL = "https://github.com/sparrowbot/sparrowbot"
	SparrowVersion       = "0.1.0"
)

// Conversation roles. The persona label used when rendering a transcript
// lives with the persona, not here.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
