// Package session keeps per-user conversation state between Telegram
// updates. Sessions live in memory; the bot re-derives every list view from
// the store, so losing them on restart only forgets an in-flight dialog.
package session

import "sync"

// State identifies a conversation step.
type State string

const (
	// StateIdle means no conversation is in progress.
	StateIdle State = "idle"

	// Add-item flow.
	StateChoosingCategory State = "add_item.choosing_category"
	StateEnteringName     State = "add_item.entering_name"

	// Manage-categories flow.
	StateCategoryMenu  State = "cats.menu"
	StateAddingCat     State = "cats.adding"
	StateRenameSelect  State = "cats.rename_select"
	StateRenameNewName State = "cats.rename_new_name"
	StateDeleteSelect  State = "cats.delete_select"
	StateDeleteConfirm State = "cats.delete_confirm"

	// Join-group flow.
	StateJoinConfirm State = "join.confirm"
)

// Session holds one user's dialog state and view flags.
//
// Flow fields are transient and cleared by ResetFlow. ShowBought and
// EditMode are view flags, not flow state: they survive flow resets, and
// EditMode is dropped whenever the user navigates back to the category menu.
type Session struct {
	State State

	// Add-item flow: the chosen category.
	Department string
	// Manage-categories flow.
	RenameFrom   string
	DeleteTarget string
	// Join flow: the invite code awaiting confirmation.
	PendingCode string

	// View flags.
	ShowBought   bool
	EditMode     bool
	LastCategory string // "" = category menu, "ALL" = full list

	// Message bookkeeping: the reply-keyboard message is never deleted;
	// the last list message is edited in place when possible.
	KeyboardMsgID int
	LastListMsgID int
}

// Manager owns the session map. All access goes through the mutex; telebot
// runs handlers on separate goroutines.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewManager returns an empty in-memory session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns a snapshot of the user's session, an idle one if none exists.
func (m *Manager) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[userID]; ok {
		return *s
	}
	return Session{State: StateIdle}
}

// Update mutates the user's session under the lock, creating it on demand.
func (m *Manager) Update(userID int64, fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		s = &Session{State: StateIdle}
		m.sessions[userID] = s
	}
	fn(s)
}

// State returns the user's current conversation state.
func (m *Manager) State(userID int64) State {
	return m.Get(userID).State
}

// InProgress reports whether a conversation flow is active.
func (m *Manager) InProgress(userID int64) bool {
	return m.State(userID) != StateIdle
}

// ResetFlow exits any in-progress flow and clears its transient fields.
// View flags and message bookkeeping survive.
func (m *Manager) ResetFlow(userID int64) {
	m.Update(userID, func(s *Session) {
		s.State = StateIdle
		s.Department = ""
		s.RenameFrom = ""
		s.DeleteTarget = ""
		s.PendingCode = ""
	})
}
