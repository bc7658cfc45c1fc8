package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/souqna/souqna/pkg/logger"
)

const (
	// Apology is the fixed assistant turn appended when the external
	// call fails for any reason.
	Apology = "عذراً، واجهت مشكلة في معالجة طلبك. حاول مرة أخرى لاحقاً."

	// SearchUnavailable is the fallback text for a failed grounded
	// search.
	SearchUnavailable = "تعذر الحصول على نتائج بحث دقيقة حالياً."

	// DefaultTimeout bounds each external call.
	DefaultTimeout = 30 * time.Second
)

// Bridge owns one session's conversation transcript and the lifecycle of
// its in-flight generation request.
//
// Unlike the other session components the bridge locks internally: its
// external call is the system's only suspension point, and the busy
// discipline must hold across concurrent callers without blocking them.
type Bridge struct {
	mu      sync.Mutex
	turns   []Turn
	busy    bool
	cancel  context.CancelFunc
	gen     Generator
	timeout time.Duration
	logger  logger.Logger
}

// NewBridge creates a bridge over the given generator. A zero timeout
// selects DefaultTimeout.
func NewBridge(gen Generator, timeout time.Duration, log logger.Logger) *Bridge {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Bridge{
		gen:     gen,
		timeout: timeout,
		logger:  log,
	}
}

// Send submits user text for one externally-generated reply. It returns
// false when the text is blank or a request is already in flight; a
// dropped send leaves the transcript untouched.
//
// An accepted send appends the user turn immediately, blocks on the
// external call, and appends exactly one assistant turn: the reply (empty
// string included) on success, the fixed apology on failure. Errors are
// swallowed here and converted to that apology turn.
func (b *Bridge) Send(ctx context.Context, text string) bool {
	b.mu.Lock()
	if strings.TrimSpace(text) == "" || b.busy {
		b.mu.Unlock()
		return false
	}

	history := make([]Turn, len(b.turns))
	copy(history, b.turns)

	b.turns = append(b.turns, Turn{Role: RoleUser, Text: text})
	b.busy = true

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	b.cancel = cancel
	b.mu.Unlock()

	reply, err := b.gen.GenerateReply(callCtx, history, text)
	cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.busy = false
	b.cancel = nil

	if err != nil {
		b.logger.Warn("Assistant reply failed", map[string]interface{}{
			"operation": "assistant_send",
			"error":     err.Error(),
			"turns":     len(b.turns),
		})
		b.turns = append(b.turns, Turn{Role: RoleAssistant, Text: Apology})
		return true
	}

	b.turns = append(b.turns, Turn{Role: RoleAssistant, Text: reply})
	return true
}

// CancelInFlight aborts the outstanding external call, if any. The
// aborted call resolves as a failure, so the transcript still gains its
// apology turn and busy clears.
func (b *Bridge) CancelInFlight() {
	b.mu.Lock()
	cancel := b.cancel
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Busy reports whether an external call is outstanding.
func (b *Bridge) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy
}

// Transcript returns a snapshot copy of all turns in order.
func (b *Bridge) Transcript() []Turn {
	b.mu.Lock()
	defer b.mu.Unlock()

	turns := make([]Turn, len(b.turns))
	copy(turns, b.turns)
	return turns
}

// Search runs the one-shot grounded search, outside the stateful chat
// path. Failures degrade to the fixed fallback text with no sources.
func (b *Bridge) Search(ctx context.Context, query string) (string, []Source) {
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	text, sources, err := b.gen.SearchWithGrounding(callCtx, query)
	if err != nil {
		b.logger.Warn("Grounded search failed", map[string]interface{}{
			"operation": "assistant_search",
			"error":     err.Error(),
		})
		return SearchUnavailable, nil
	}
	return text, sources
}
