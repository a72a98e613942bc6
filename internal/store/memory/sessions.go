package memory

import (
	"context"

	"github.com/fastprodman/divegame/internal/repos/sessions"
)

// Sessions returns the sessions.Sessions view of the store.
func (s *Store) Sessions() sessions.Sessions {
	return sessionsView{st: s}
}

type sessionsView struct {
	st *Store
}

func (v sessionsView) Create(ctx context.Context, sess sessions.Session) error {
	defer v.st.lock(ctx)()

	if _, ok := v.st.sessions[sess.Key]; ok {
		return sessions.ErrSessionExists
	}
	v.st.sessions[sess.Key] = sess

	return nil
}

func (v sessionsView) Get(ctx context.Context, key string) (sessions.Session, error) {
	defer v.st.lock(ctx)()

	sess, ok := v.st.sessions[key]
	if !ok {
		return sessions.Session{}, sessions.ErrSessionNotFound
	}

	return sess, nil
}

// LockAndGet is a plain read here; the manager's mutex already
// serializes whole transactions.
func (v sessionsView) LockAndGet(ctx context.Context, key string) (sessions.Session, error) {
	return v.Get(ctx, key)
}

func (v sessionsView) AdvanceRound(ctx context.Context, key string, newValue int64, newRound int, lastActiveAt int64) error {
	defer v.st.lock(ctx)()

	sess, ok := v.st.sessions[key]
	if !ok || sess.Status != sessions.StatusActive {
		return sessions.ErrNotActive
	}

	sess.CurrentValue = newValue
	sess.RoundNumber = newRound
	sess.LastActiveAt = lastActiveAt
	v.st.sessions[key] = sess

	return nil
}

func (v sessionsView) Finish(ctx context.Context, key string, status sessions.Status) error {
	defer v.st.lock(ctx)()

	sess, ok := v.st.sessions[key]
	if !ok || sess.Status != sessions.StatusActive {
		return sessions.ErrNotActive
	}

	sess.Status = status
	v.st.sessions[key] = sess

	return nil
}
