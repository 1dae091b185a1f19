package message

import (
	"slices"

	"github.com/google/uuid"
)

// Timeline is a consumer's view of one negotiation's chat. Delivery is
// at-least-once, so Add ignores ids it has already seen.
//
// Once Flush is called the timeline keeps no messages, only the most
// recent window of ids, so a long-lived feed uses bounded memory.
type Timeline struct {
	seen    map[uuid.UUID]struct{}
	entries []entry
	next    int

	window int
	recent []uuid.UUID
}

type entry struct {
	msg *Message
	seq int
}

func NewTimeline(history []*Message) *Timeline {
	t := &Timeline{seen: make(map[uuid.UUID]struct{}, len(history))}

	for _, m := range history {
		t.Add(m)
	}

	return t
}

// Add records m and reports whether it was new.
func (t *Timeline) Add(m *Message) bool {
	if _, dup := t.seen[m.ID]; dup {
		return false
	}

	t.seen[m.ID] = struct{}{}

	if t.window > 0 {
		t.remember(m.ID)
		return true
	}

	t.entries = append(t.entries, entry{msg: m, seq: t.next})
	t.next++

	return true
}

// Flush returns the ordered view and switches the timeline to dedupe only,
// against the last window ids. A window below one is treated as one.
func (t *Timeline) Flush(window int) []*Message {
	msgs := t.Messages()

	t.entries = nil
	t.window = max(window, 1)
	t.seen = make(map[uuid.UUID]struct{}, t.window)
	t.recent = make([]uuid.UUID, 0, t.window)

	for _, m := range msgs[max(0, len(msgs)-t.window):] {
		t.seen[m.ID] = struct{}{}
		t.remember(m.ID)
	}

	return msgs
}

func (t *Timeline) remember(id uuid.UUID) {
	t.recent = append(t.recent, id)
	if len(t.recent) <= t.window {
		return
	}

	delete(t.seen, t.recent[0])
	t.recent = t.recent[1:]
}

// Len counts retained messages. It is zero after Flush.
func (t *Timeline) Len() int {
	return len(t.entries)
}

// Messages returns the view ordered by CreatedAt, arrival order breaking ties.
func (t *Timeline) Messages() []*Message {
	sorted := slices.Clone(t.entries)
	slices.SortStableFunc(sorted, func(a, b entry) int {
		if c := a.msg.CreatedAt.Compare(b.msg.CreatedAt); c != 0 {
			return c
		}

		return a.seq - b.seq
	})

	out := make([]*Message, len(sorted))
	for i, e := range sorted {
		out[i] = e.msg
	}

	return out
}
