package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seu-repo/campus-assistant/internal/domain"
)

// historyLog is the in-memory conversation transcript, oldest first, capped
// at a fixed number of messages. One instance per process; the transcript is
// shared across callers and lost on restart.
type historyLog struct {
	mu    sync.RWMutex
	limit int
	msgs  []domain.ChatMessage
}

func newHistoryLog(limit int) *historyLog {
	if limit <= 0 {
		limit = 100
	}
	return &historyLog{limit: limit}
}

func (h *historyLog) Append(sender domain.ChatSender, text string, at time.Time) domain.ChatMessage {
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: at,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, msg)
	if len(h.msgs) > h.limit {
		h.msgs = h.msgs[len(h.msgs)-h.limit:]
	}
	return msg
}

func (h *historyLog) All() []domain.ChatMessage {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]domain.ChatMessage, len(h.msgs))
	copy(out, h.msgs)
	return out
}
