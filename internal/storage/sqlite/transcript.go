package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

// TranscriptRepo archives conversation turns. It is write-mostly: the bot
// appends best-effort, the history command reads back.
type TranscriptRepo struct {
	db *sql.DB
}

func NewTranscriptRepo(db *sql.DB) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

func (r *TranscriptRepo) AddMessage(ctx context.Context, sessionID, turnID string, msg core.Message) error {
	at := msg.Timestamp
	if at.IsZero() {
		at = time.Now()
	}

	query := `INSERT INTO messages (session_id, turn_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, sessionID, turnID, msg.Role, msg.Content, at)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *TranscriptRepo) GetMessages(ctx context.Context, sessionID string, limit int) ([]core.Message, error) {
	// Fetch the LAST 'limit' messages by ordering DESC
	query := `SELECT role, content, created_at FROM messages WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []core.Message
	for rows.Next() {
		var msg core.Message
		if err := rows.Scan(&msg.Role, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Flip back to chronological order for display.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Msg("loaded archived messages")
	return messages, nil
}

// Sessions lists every session that has archived messages.
func (r *TranscriptRepo) Sessions(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT session_id FROM messages ORDER BY session_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}
