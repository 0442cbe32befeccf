package handler

import (
	"net/http"

	"flowtasks/internal/state"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	session *state.Session
}

func NewSessionHandler(session *state.Session) *SessionHandler {
	return &SessionHandler{session: session}
}

type BinderStatus struct {
	Count   int     `json:"count"`
	Loading bool    `json:"loading"`
	Error   *string `json:"error"`
}

type SessionResponse struct {
	Tasks BinderStatus `json:"tasks"`
	Lists BinderStatus `json:"lists"`
}

func (h *SessionHandler) status() SessionResponse {
	tasks := h.session.Tasks.Snapshot()
	lists := h.session.Lists.Snapshot()
	return SessionResponse{
		Tasks: BinderStatus{Count: len(tasks.Tasks), Loading: tasks.Loading, Error: errString(tasks.Err)},
		Lists: BinderStatus{Count: len(lists.Lists), Loading: lists.Loading, Error: errString(lists.Err)},
	}
}

func errString(err error) *string {
	if err == nil {
		return nil
	}
	s := err.Error()
	return &s
}

// Status godoc
// @Summary      Session state
// @Description  Size, loading flag and last load error of each collection
// @Tags         Session
// @Produce      json
// @Success      200  {object}  SessionResponse
// @Router       /session [get]
func (h *SessionHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.status())
}

// Reload godoc
// @Summary      Reload the session
// @Description  Reloads tasks and lists from the services
// @Tags         Session
// @Produce      json
// @Success      200  {object}  SessionResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /session/reload [post]
func (h *SessionHandler) Reload(c *gin.Context) {
	if err := h.session.Load(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to reload session")
		return
	}
	c.JSON(http.StatusOK, h.status())
}
