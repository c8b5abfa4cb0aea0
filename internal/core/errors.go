package core

import "errors"

// Backend failure categories. Provider adapters map their transport-level
// failures (HTTP status, SDK error codes) into these before the orchestrator
// sees them; anything unmapped is treated as a generic backend failure.
var (
	ErrUnauthenticated   = errors.New("backend rejected credentials")
	ErrResourceExhausted = errors.New("backend quota exhausted")
)
