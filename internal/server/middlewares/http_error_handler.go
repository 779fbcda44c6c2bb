package middlewares

import (
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/donezo/internal/derror"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler is a middleware that formats rendered errors.
// Every error kind ends up as a uniform `{"error": message}` body.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	switch err := err.(type) {
	case *derror.Error:
		_ = c.JSON(derror.StatusCode(err), err)
	case *echo.HTTPError:
		_ = c.JSON(err.Code, echo.Map{
			"error": err.Message,
		})
	default:
		internal(err, c)
	}
}

// Storage error messages are passed through verbatim, there is a single
// deployer/operator audience. The id correlates the body with the log entry.
func internal(err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	logrus.WithField("id", id).Error(err.Error())

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"error": err.Error(),
	})
}
