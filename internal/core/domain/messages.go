package domain

// MessageKind separates confirmations from errors in the host message queue.
type MessageKind string

const (
	MessageNotice MessageKind = "notice"
	MessageError  MessageKind = "error"
)

// Message is one user-facing notice.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// Messages collects the notices raised while handling one request.
type Messages struct {
	items []Message
}

// AddMessage appends a notice to the queue.
func (m *Messages) AddMessage(kind MessageKind, text string) {
	m.items = append(m.items, Message{Kind: kind, Text: text})
}

// All returns every message in the order it was added.
func (m *Messages) All() []Message {
	out := make([]Message, len(m.items))
	copy(out, m.items)
	return out
}

// Errors returns the text of error messages only.
func (m *Messages) Errors() []string {
	var out []string
	for _, msg := range m.items {
		if msg.Kind == MessageError {
			out = append(out, msg.Text)
		}
	}
	return out
}
