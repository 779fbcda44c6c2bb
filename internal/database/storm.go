package database

import (
	"sync"
	"time"

	"github.com/asdine/storm/v3"
	"github.com/asdine/storm/v3/codec/msgpack"
	"github.com/asdine/storm/v3/q"
	"github.com/mdouchement/donezo/internal/model"
	"github.com/pkg/errors"
)

// StormCodec is the format used to store data in the database.
var StormCodec = storm.Codec(msgpack.Codec)

// All access is serialized by a single lock so that multi-step operations
// (position scan on create, the reorder loop) are atomic with respect to
// concurrent readers and writers.
type strm struct {
	mu sync.Mutex
	db *storm.DB
}

// StormOpen returns a new Storm database connection with the buckets and
// indexes initialized.
func StormOpen(database string) (Client, error) {
	db, err := storm.Open(database, StormCodec)
	if err != nil {
		return nil, errors.Wrap(err, "could not get database connection")
	}

	for _, m := range []any{&model.Session{}, &model.APIToken{}, &model.Todo{}} {
		if err := db.Init(m); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "could not init indexes")
		}
	}

	return &strm{
		db: db,
	}, nil
}

// Close the database.
func (c *strm) Close() error {
	return c.db.Close()
}

// IsNotFound returns true if err is a not found error.
func (c *strm) IsNotFound(err error) bool {
	return errors.Cause(err) == storm.ErrNotFound
}

// IsAlreadyExists returns true if err is an already exists error.
func (c *strm) IsAlreadyExists(err error) bool {
	return errors.Cause(err) == storm.ErrAlreadyExists
}

//
// Sessions
//

// CreateSession inserts the given session.
func (c *strm) CreateSession(session *model.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return errors.Wrap(c.db.Save(session), "could not save the session")
}

// FindSession returns the session for the given id.
func (c *strm) FindSession(id string) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var session model.Session
	if err := c.db.One("ID", id, &session); err != nil {
		return nil, errors.Wrap(err, "find session by id")
	}
	return &session, nil
}

// DeleteSession deletes the session for the given id.
func (c *strm) DeleteSession(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.db.DeleteStruct(&model.Session{ID: id})
	return errors.Wrap(err, "could not delete the session")
}

// DeleteExpiredSessions deletes all the sessions expired at the given time.
func (c *strm) DeleteExpiredSessions(now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.db.Select(q.Lt("ExpiresAt", now)).Delete(new(model.Session))
	if err != nil && errors.Cause(err) != storm.ErrNotFound {
		return errors.Wrap(err, "could not delete expired sessions")
	}
	return nil
}

//
// API tokens
//

// CreateToken inserts a new token with the given opaque value and optional
// name, and returns the stored record.
func (c *strm) CreateToken(value, name string) (*model.APIToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	token := &model.APIToken{
		Token:     value,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.db.Save(token); err != nil {
		return nil, errors.Wrap(err, "could not save the token")
	}
	return token, nil
}

// FindTokenByValue returns the token for the given opaque value.
func (c *strm) FindTokenByValue(value string) (*model.APIToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var token model.APIToken
	if err := c.db.One("Token", value, &token); err != nil {
		return nil, errors.Wrap(err, "find token by value")
	}
	return &token, nil
}

// ListTokens returns all the tokens, most recent first.
func (c *strm) ListTokens() ([]*model.APIToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tokens := make([]*model.APIToken, 0)
	err := c.db.Select().OrderBy("CreatedAt").Reverse().Find(&tokens)
	if err != nil && errors.Cause(err) != storm.ErrNotFound {
		return nil, errors.Wrap(err, "could not list tokens")
	}
	return tokens, nil
}

// DeleteToken deletes the token for the given id.
func (c *strm) DeleteToken(id int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var token model.APIToken
	if err := c.db.One("ID", id, &token); err != nil {
		if errors.Cause(err) == storm.ErrNotFound {
			return false, nil
		}
		return false, errors.Wrap(err, "find token by id")
	}

	if err := c.db.DeleteStruct(&token); err != nil {
		return false, errors.Wrap(err, "could not delete the token")
	}
	return true, nil
}

//
// Todos
//

// CreateTodo inserts a new todo appended after all the existing ones.
func (c *strm) CreateTodo(title string) (*model.Todo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	position, err := c.maxPosition()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	todo := &model.Todo{
		Title:     title,
		Position:  position + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.db.Save(todo); err != nil {
		return nil, errors.Wrap(err, "could not save the todo")
	}
	return todo, nil
}

// ListTodos returns all the todos ordered by position.
func (c *strm) ListTodos() ([]*model.Todo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	todos := make([]*model.Todo, 0)
	err := c.db.Select().OrderBy("Position").Find(&todos)
	if err != nil && errors.Cause(err) != storm.ErrNotFound {
		return nil, errors.Wrap(err, "could not list todos")
	}
	return todos, nil
}

// ListOpenTodos returns all the uncompleted todos ordered by position.
func (c *strm) ListOpenTodos() ([]*model.Todo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	todos := make([]*model.Todo, 0)
	err := c.db.Select(q.Eq("Completed", false)).OrderBy("Position").Find(&todos)
	if err != nil && errors.Cause(err) != storm.ErrNotFound {
		return nil, errors.Wrap(err, "could not list open todos")
	}
	return todos, nil
}

// FindTodo returns the todo for the given id.
func (c *strm) FindTodo(id int) (*model.Todo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.findTodo(id)
}

// UpdateTodo patches the todo for the given id. A nil field is left unchanged.
// It returns nil if no record matches.
func (c *strm) UpdateTodo(id int, title *string, completed *bool) (*model.Todo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	todo, err := c.findTodo(id)
	if err != nil || todo == nil {
		return todo, err
	}

	if title == nil && completed == nil {
		return todo, nil
	}

	if title != nil {
		todo.Title = *title
	}
	if completed != nil {
		todo.Completed = *completed
	}
	todo.UpdatedAt = time.Now().UTC()

	if err := c.db.Save(todo); err != nil {
		return nil, errors.Wrap(err, "could not update the todo")
	}
	return todo, nil
}

// ReorderTodos moves each given todo to its index in ids.
// Unknown ids are ignored and omitted todos keep their position. The lock is
// held across the whole loop so the reorder is atomic for other callers.
func (c *strm) ReorderTodos(ids []int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC()
	for position, id := range ids {
		todo, err := c.findTodo(id)
		if err != nil {
			return err
		}
		if todo == nil {
			continue
		}

		todo.Position = position
		todo.UpdatedAt = now
		if err := c.db.Save(todo); err != nil {
			return errors.Wrap(err, "could not reorder the todo")
		}
	}
	return nil
}

// DeleteTodo deletes the todo for the given id. Remaining positions are not
// renumbered.
func (c *strm) DeleteTodo(id int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	todo, err := c.findTodo(id)
	if err != nil {
		return false, err
	}
	if todo == nil {
		return false, nil
	}

	if err := c.db.DeleteStruct(todo); err != nil {
		return false, errors.Wrap(err, "could not delete the todo")
	}
	return true, nil
}

func (c *strm) findTodo(id int) (*model.Todo, error) {
	var todo model.Todo
	if err := c.db.One("ID", id, &todo); err != nil {
		if errors.Cause(err) == storm.ErrNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find todo by id")
	}
	return &todo, nil
}

func (c *strm) maxPosition() (int, error) {
	var todos []*model.Todo
	err := c.db.Select().OrderBy("Position").Reverse().Limit(1).Find(&todos)
	if err != nil {
		if errors.Cause(err) == storm.ErrNotFound {
			return 0, nil
		}
		return 0, errors.Wrap(err, "could not compute the max position")
	}
	if len(todos) == 0 {
		return 0, nil
	}
	return todos[0].Position, nil
}
