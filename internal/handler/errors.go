package handler

import (
	"errors"
	"net/http"

	"flowtasks/internal/middleware"
	"flowtasks/internal/model"
	"flowtasks/internal/repository"
	"flowtasks/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound),
		errors.Is(err, repository.ErrListNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrListExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnknownList),
		errors.Is(err, service.ErrInvalidListName),
		errors.Is(err, service.ErrInvalidOrder),
		errors.Is(err, model.ErrInvalidPriority),
		errors.Is(err, model.ErrInvalidDate),
		errors.Is(err, model.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Internal errors are
// logged and replaced by fallback so no internals leak to the client.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		middleware.Log(c).Error().Err(err).Msg(fallback)
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, what string) (model.ID, bool) {
	id, err := model.ParseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + what + " ID format"})
		return 0, false
	}
	return id, true
}
