package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jotickets/jotickets/internal/repository"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithRepoError maps repository sentinel errors to status codes.
// Anything unclassified becomes a 500 with no detail leaked.
func RespondWithRepoError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, repository.ErrDuplicateUsername):
		RespondWithError(c, http.StatusConflict, "Username already taken.")
	default:
		RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
