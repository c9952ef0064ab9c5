package domain

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendOrder(t *testing.T) {
	log := NewConversationLog()

	u := log.Append(RoleUser, "What is X?", nil)
	a := log.Append(RoleAssistant, "X is Y.", []Citation{{Doc: "a.pdf", Page: 2}})

	turns := log.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, u.ID, turns[0].ID)
	assert.Equal(t, RoleUser, turns[0].Role)
	assert.Equal(t, a.ID, turns[1].ID)
	assert.Equal(t, []Citation{{Doc: "a.pdf", Page: 2}}, turns[1].Citations)
	assert.NotEqual(t, u.ID, a.ID)
}

func TestReplaceByID(t *testing.T) {
	log := NewConversationLog()

	log.Append(RoleUser, "summarize a.pdf", nil)
	placeholder := log.Append(RoleAssistant, "Generating summary... ⏳", nil)
	// A concurrent ask may land between placeholder and replacement; the
	// replacement must still hit the placeholder, not the last turn.
	log.Append(RoleUser, "What is X?", nil)

	require.NoError(t, log.Replace(placeholder.ID, "done"))

	turns := log.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "done", turns[1].Text)
	assert.Equal(t, "What is X?", turns[2].Text)
}

func TestReplaceClearsCitations(t *testing.T) {
	log := NewConversationLog()
	turn := log.Append(RoleAssistant, "answer", []Citation{{Doc: "a.pdf", Page: 1}})

	require.NoError(t, log.Replace(turn.ID, "replaced"))

	assert.Nil(t, log.Turns()[0].Citations)
}

func TestReplaceMissingTurn(t *testing.T) {
	log := NewConversationLog()
	log.Append(RoleUser, "hi", nil)

	err := log.Replace("01AAAAAAAAAAAAAAAAAAAAAAAA", "nope")
	assert.ErrorIs(t, err, ErrTurnNotFound)
	assert.Equal(t, "hi", log.Turns()[0].Text)
}

func TestHistoryWindow(t *testing.T) {
	log := NewConversationLog()
	for i := 0; i < 10; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		log.Append(role, fmt.Sprintf("turn %d", i), []Citation{{Doc: "a.pdf", Page: i + 1}})
	}

	h := log.History(6)
	require.Len(t, h, 6)
	assert.Equal(t, "turn 4", h[0].Text)
	assert.Equal(t, "turn 9", h[5].Text)
}

func TestHistoryShorterThanWindow(t *testing.T) {
	log := NewConversationLog()
	log.Append(RoleUser, "only one", nil)

	h := log.History(6)
	require.Len(t, h, 1)
	assert.Equal(t, RoleUser, h[0].Role)
}

func TestRestoreAndReset(t *testing.T) {
	log := NewConversationLog()
	saved := []Turn{
		NewTurn(RoleUser, "q", nil),
		NewTurn(RoleAssistant, "a", nil),
	}

	log.Restore(saved)
	assert.Equal(t, 2, log.Len())

	log.Reset()
	assert.Equal(t, 0, log.Len())
	assert.Empty(t, log.Turns())
}

func TestConcurrentReadersSeeWholeTurns(t *testing.T) {
	log := NewConversationLog()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				log.Append(RoleUser, "q", nil)
			}
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				for _, turn := range log.Turns() {
					if turn.ID == "" || turn.Role == "" {
						t.Error("observed a partially-written turn")
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*50, log.Len())
}
