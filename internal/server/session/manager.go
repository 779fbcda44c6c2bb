package session

import (
	"time"

	"github.com/mdouchement/donezo/internal/database"
	"github.com/mdouchement/donezo/internal/model"
	"github.com/pkg/errors"
)

// Lifetime is the fixed duration of a session. It is not renewed on use.
const Lifetime = 7 * 24 * time.Hour

// createAttempts bounds the id regeneration on the unlikely unique-index
// collision at insert time.
const createAttempts = 3

type (
	// A Manager manages sessions.
	Manager interface {
		// Create generates and persists a new session.
		Create() (*model.Session, error)
		// Validate returns the session for the given id.
		// A missing or expired session yields nil, expired records are left
		// in place for SweepExpired.
		Validate(id string) (*model.Session, error)
		// Revoke deletes the session for the given id.
		// Revoking an unknown id is not an error.
		Revoke(id string) error
		// SweepExpired deletes all the expired sessions.
		SweepExpired() error
	}

	manager struct {
		db database.Client
	}
)

// NewManager returns a new manager.
func NewManager(db database.Client) Manager {
	return &manager{db: db}
}

func (m *manager) Create() (*model.Session, error) {
	for i := 0; i < createAttempts; i++ {
		now := time.Now().UTC()
		session := &model.Session{
			ID:        SecureToken(TokenLength),
			CreatedAt: now,
			ExpiresAt: now.Add(Lifetime),
		}

		err := m.db.CreateSession(session)
		if m.db.IsAlreadyExists(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	return nil, errors.New("could not allocate a unique session id")
}

func (m *manager) Validate(id string) (*model.Session, error) {
	session, err := m.db.FindSession(id)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "could not get access to database")
	}

	if session.Expired(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (m *manager) Revoke(id string) error {
	err := m.db.DeleteSession(id)
	if err != nil && m.db.IsNotFound(err) {
		return nil
	}
	return err
}

func (m *manager) SweepExpired() error {
	return m.db.DeleteExpiredSessions(time.Now())
}
