package database

import (
	"time"

	"github.com/mdouchement/donezo/internal/model"
)

type (
	// A Client can interacts with the database.
	Client interface {
		// Close the database.
		Close() error
		// IsNotFound returns true if err is a not found error.
		IsNotFound(err error) bool
		// IsAlreadyExists returns true if err is an already exists error.
		IsAlreadyExists(err error) bool

		SessionInteraction
		TokenInteraction
		TodoInteraction
	}

	// A SessionInteraction defines all the methods used to interact with a session record.
	SessionInteraction interface {
		// CreateSession inserts the given session.
		CreateSession(session *model.Session) error
		// FindSession returns the session for the given id.
		FindSession(id string) (*model.Session, error)
		// DeleteSession deletes the session for the given id.
		DeleteSession(id string) error
		// DeleteExpiredSessions deletes all the sessions expired at the given time.
		DeleteExpiredSessions(now time.Time) error
	}

	// A TokenInteraction defines all the methods used to interact with an API token record.
	TokenInteraction interface {
		// CreateToken inserts a new token with the given opaque value and
		// optional name, and returns the stored record.
		CreateToken(value, name string) (*model.APIToken, error)
		// FindTokenByValue returns the token for the given opaque value.
		FindTokenByValue(value string) (*model.APIToken, error)
		// ListTokens returns all the tokens, most recent first.
		ListTokens() ([]*model.APIToken, error)
		// DeleteToken deletes the token for the given id.
		// It returns true if a record existed.
		DeleteToken(id int) (bool, error)
	}

	// A TodoInteraction defines all the methods used to interact with a todo record(s).
	TodoInteraction interface {
		// CreateTodo inserts a new todo appended after all the existing ones.
		CreateTodo(title string) (*model.Todo, error)
		// ListTodos returns all the todos ordered by position.
		ListTodos() ([]*model.Todo, error)
		// ListOpenTodos returns all the uncompleted todos ordered by position.
		ListOpenTodos() ([]*model.Todo, error)
		// FindTodo returns the todo for the given id, nil if no record matches.
		FindTodo(id int) (*model.Todo, error)
		// UpdateTodo patches the todo for the given id. A nil field is left
		// unchanged. It returns nil if no record matches.
		UpdateTodo(id int, title *string, completed *bool) (*model.Todo, error)
		// ReorderTodos moves each given todo to its index in ids.
		// Unknown ids are ignored and omitted todos keep their position.
		ReorderTodos(ids []int) error
		// DeleteTodo deletes the todo for the given id.
		// It returns true if a record existed.
		DeleteTodo(id int) (bool, error)
	}
)
