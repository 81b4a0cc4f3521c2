package render

import (
	"log/slog"
	"sync"
)

const (
	HandlerName = "wvHandler"

	MessageTextCopied      = "articleTextCopied"
	MessageTextHighlighted = "articleTextHighlighted"
)

// MessageHost is a display surface that scripts can post messages to.
type MessageHost interface {
	HasMessageHandler(name string) bool
	AddMessageHandler(name string, handler func(message string))
}

type MessageListener interface {
	OnArticleTextCopied()
	OnArticleTextHighlighted()
}

// Bridge dispatches messages from the injected text-events script to a
// listener.
type Bridge struct {
	mu       sync.RWMutex
	listener MessageListener
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Register installs the bridge on host once. Returns false when host already
// has the handler.
func (b *Bridge) Register(host MessageHost) bool {
	if host.HasMessageHandler(HandlerName) {
		return false
	}
	host.AddMessageHandler(HandlerName, b.Dispatch)
	return true
}

func (b *Bridge) SetListener(listener MessageListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listener = listener
}

func (b *Bridge) Dispatch(message string) {
	b.mu.RLock()
	listener := b.listener
	b.mu.RUnlock()

	if listener == nil {
		return
	}

	switch message {
	case MessageTextCopied:
		listener.OnArticleTextCopied()
	case MessageTextHighlighted:
		listener.OnArticleTextHighlighted()
	default:
		slog.Debug("Ignoring unknown bridge message", "message", message)
	}
}
