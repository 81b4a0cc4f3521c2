package render

import "testing"

type fakeHost struct {
	handlers map[string]func(string)
	added    int
}

func newFakeHost() *fakeHost {
	return &fakeHost{handlers: make(map[string]func(string))}
}

func (h *fakeHost) HasMessageHandler(name string) bool {
	_, ok := h.handlers[name]
	return ok
}

func (h *fakeHost) AddMessageHandler(name string, handler func(string)) {
	h.handlers[name] = handler
	h.added++
}

type countingListener struct {
	copied      int
	highlighted int
}

func (l *countingListener) OnArticleTextCopied()      { l.copied++ }
func (l *countingListener) OnArticleTextHighlighted() { l.highlighted++ }

var _ MessageHost = (*fakeHost)(nil)

func TestBridgeRegisterOnce(t *testing.T) {
	host := newFakeHost()
	bridge := NewBridge()

	if !bridge.Register(host) {
		t.Error("Expected first registration to install the handler")
	}
	if bridge.Register(host) {
		t.Error("Expected second registration to be a no-op")
	}
	if host.added != 1 {
		t.Errorf("Expected handler to be added once, got %d", host.added)
	}
	if !host.HasMessageHandler(HandlerName) {
		t.Errorf("Expected handler %q", HandlerName)
	}
}

func TestBridgeDispatch(t *testing.T) {
	host := newFakeHost()
	bridge := NewBridge()
	bridge.Register(host)
	handler := host.handlers[HandlerName]

	// No listener yet, dropped.
	handler(MessageTextCopied)

	listener := &countingListener{}
	bridge.SetListener(listener)

	handler(MessageTextCopied)
	handler(MessageTextHighlighted)
	handler(MessageTextHighlighted)
	handler("somethingElse")

	if listener.copied != 1 || listener.highlighted != 2 {
		t.Errorf("Unexpected counts: copied %d, highlighted %d", listener.copied, listener.highlighted)
	}

	bridge.SetListener(nil)
	handler(MessageTextCopied)
	if listener.copied != 1 {
		t.Error("Expected messages to be dropped after the listener is removed")
	}
}
