package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDefaultsToIdle(t *testing.T) {
	m := NewManager()
	s := m.Get(1)
	assert.Equal(t, StateIdle, s.State)
	assert.False(t, m.InProgress(1))
}

func TestUpdateCreatesOnDemand(t *testing.T) {
	m := NewManager()
	m.Update(1, func(s *Session) {
		s.State = StateEnteringName
		s.Department = "🍞 Хлеб"
	})
	assert.Equal(t, StateEnteringName, m.State(1))
	assert.True(t, m.InProgress(1))
	assert.Equal(t, "🍞 Хлеб", m.Get(1).Department)
}

func TestGetReturnsSnapshot(t *testing.T) {
	m := NewManager()
	m.Update(1, func(s *Session) { s.Department = "a" })

	snap := m.Get(1)
	snap.Department = "b"
	assert.Equal(t, "a", m.Get(1).Department)
}

func TestResetFlowKeepsViewFlags(t *testing.T) {
	m := NewManager()
	m.Update(1, func(s *Session) {
		s.State = StateDeleteConfirm
		s.Department = "🍞 Хлеб"
		s.RenameFrom = "x"
		s.DeleteTarget = "y"
		s.PendingCode = "ABC123"
		s.ShowBought = true
		s.EditMode = true
		s.LastCategory = "ALL"
		s.KeyboardMsgID = 10
		s.LastListMsgID = 20
	})

	m.ResetFlow(1)

	s := m.Get(1)
	assert.Equal(t, StateIdle, s.State)
	assert.Empty(t, s.Department)
	assert.Empty(t, s.RenameFrom)
	assert.Empty(t, s.DeleteTarget)
	assert.Empty(t, s.PendingCode)

	assert.True(t, s.ShowBought)
	assert.True(t, s.EditMode)
	assert.Equal(t, "ALL", s.LastCategory)
	assert.Equal(t, 10, s.KeyboardMsgID)
	assert.Equal(t, 20, s.LastListMsgID)
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			m.Update(id%5, func(s *Session) { s.LastListMsgID++ })
			_ = m.Get(id % 5)
		}(int64(i))
	}
	wg.Wait()

	total := 0
	for id := int64(0); id < 5; id++ {
		total += m.Get(id).LastListMsgID
	}
	assert.Equal(t, 50, total)
}
