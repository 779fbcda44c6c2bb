package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/donezo/internal/database"
	"github.com/mdouchement/donezo/internal/derror"
	"github.com/sirupsen/logrus"
)

// todo contains all task list handlers.
type todo struct {
	db database.Client
}

type createTodoParams struct {
	Title string `json:"title"`
}

type updateTodoParams struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

type reorderParams struct {
	IDs []int `json:"ids"`
}

///// List
////
//

// List renders all the todos ordered by position.
func (h *todo) List(c echo.Context) error {
	todos, err := h.db.ListTodos()
	if err != nil {
		return derror.Storage(err)
	}

	logrus.WithField("count", len(todos)).Info("listed todos")
	return c.JSON(http.StatusOK, todos)
}

///// Create
////
//

// Create appends a new todo at the end of the list.
func (h *todo) Create(c echo.Context) error {
	var params createTodoParams
	if err := c.Bind(&params); err != nil {
		return derror.BadRequest("Could not get todo params.")
	}

	title := strings.TrimSpace(params.Title)
	if title == "" {
		return derror.BadRequest("Title cannot be empty")
	}

	record, err := h.db.CreateTodo(title)
	if err != nil {
		return derror.Storage(err)
	}

	logrus.WithFields(logrus.Fields{"id": record.ID, "title": record.Title}).Info("created todo")
	return c.JSON(http.StatusCreated, record)
}

///// Get
////
//

// Get renders a single todo.
func (h *todo) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return derror.BadRequest("Invalid todo id.")
	}

	record, err := h.db.FindTodo(id)
	if err != nil {
		return derror.Storage(err)
	}
	if record == nil {
		return derror.NotFound()
	}
	return c.JSON(http.StatusOK, record)
}

///// Update
////
//

// Update patches the title and/or completion of a todo.
// An absent field is left unchanged.
func (h *todo) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return derror.BadRequest("Invalid todo id.")
	}

	var params updateTodoParams
	if err := c.Bind(&params); err != nil {
		return derror.BadRequest("Could not get todo params.")
	}

	if params.Title != nil {
		title := strings.TrimSpace(*params.Title)
		if title == "" {
			return derror.BadRequest("Title cannot be empty")
		}
		params.Title = &title
	}

	record, err := h.db.UpdateTodo(id, params.Title, params.Completed)
	if err != nil {
		return derror.Storage(err)
	}
	if record == nil {
		return derror.NotFound()
	}

	logrus.WithFields(logrus.Fields{"id": record.ID, "completed": record.Completed}).Info("updated todo")
	return c.JSON(http.StatusOK, record)
}

///// Delete
////
//

// Delete removes a todo. Remaining positions are not renumbered.
func (h *todo) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return derror.BadRequest("Invalid todo id.")
	}

	deleted, err := h.db.DeleteTodo(id)
	if err != nil {
		return derror.Storage(err)
	}
	if !deleted {
		return derror.NotFound()
	}

	logrus.WithField("id", id).Info("deleted todo")
	return c.NoContent(http.StatusNoContent)
}

///// Reorder
////
//

// Reorder assigns each listed todo the position of its index and renders the
// whole reordered collection. Ids left out keep their position, the caller is
// expected to pass the full id set.
func (h *todo) Reorder(c echo.Context) error {
	var params reorderParams
	if err := c.Bind(&params); err != nil {
		return derror.BadRequest("Could not get todo ids.")
	}

	if err := h.db.ReorderTodos(params.IDs); err != nil {
		return derror.Storage(err)
	}

	todos, err := h.db.ListTodos()
	if err != nil {
		return derror.Storage(err)
	}

	logrus.Info("reordered todos")
	return c.JSON(http.StatusOK, todos)
}

///// Plain
////
//

// Plain renders the open todo titles as a newline-joined text body.
func (h *todo) Plain(c echo.Context) error {
	todos, err := h.db.ListOpenTodos()
	if err != nil {
		return derror.Storage(err)
	}

	var text strings.Builder
	for _, record := range todos {
		text.WriteString(record.Title)
		text.WriteString("\n")
	}

	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(text.String()))
}
