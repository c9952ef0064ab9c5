package domain

import "sync"

// ConversationLog is the ordered sequence of turns for one session.
// All mutations are applied under the lock, so concurrent readers never
// observe a partially-updated turn list. Intent alternates (a question
// precedes its answer) but strict role-alternation is not enforced: a
// failure turn may follow another assistant turn when operations overlap.
type ConversationLog struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewConversationLog creates an empty log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{}
}

// Append adds a turn to the end of the log and returns it.
func (l *ConversationLog) Append(role Role, text string, citations []Citation) Turn {
	t := NewTurn(role, text, citations)
	l.mu.Lock()
	l.turns = append(l.turns, t)
	l.mu.Unlock()
	return t
}

// Replace swaps the text of the turn with the given ID, wholesale.
// Citations are dropped: the replacement is a new assistant statement,
// not an edit of the grounded answer. This is the only in-place mutation
// the log supports.
func (l *ConversationLog) Replace(id, text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.turns {
		if l.turns[i].ID == id {
			l.turns[i].Text = text
			l.turns[i].Citations = nil
			return nil
		}
	}
	return ErrTurnNotFound
}

// Turns returns a copy of the current turn sequence.
func (l *ConversationLog) Turns() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns.
func (l *ConversationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

// History returns the most recent n turns reduced to {role, text}.
func (l *ConversationLog) History(n int) []HistoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	start := len(l.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]HistoryEntry, 0, len(l.turns)-start)
	for _, t := range l.turns[start:] {
		out = append(out, HistoryEntry{Role: t.Role, Text: t.Text})
	}
	return out
}

// Restore replaces the whole sequence, used when loading a persisted session.
func (l *ConversationLog) Restore(turns []Turn) {
	l.mu.Lock()
	l.turns = append([]Turn(nil), turns...)
	l.mu.Unlock()
}

// Reset empties the log.
func (l *ConversationLog) Reset() {
	l.mu.Lock()
	l.turns = nil
	l.mu.Unlock()
}
