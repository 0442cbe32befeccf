package handler

import (
	"net/http"
	"strings"

	"flowtasks/internal/middleware"
	"flowtasks/internal/model"
	"flowtasks/internal/service"
	"flowtasks/internal/state"
	"flowtasks/internal/view"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	session *state.Session
	service *service.ListService
}

func NewListHandler(session *state.Session, svc *service.ListService) *ListHandler {
	return &ListHandler{session: session, service: svc}
}

type ListRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
	Order int    `json:"order" binding:"omitempty,min=1"`
}

type ListUpdateRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Order *int    `json:"order" binding:"omitempty,min=1"`
}

type ListResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Key       string `json:"key"`
	Color     string `json:"color"`
	Order     int    `json:"order"`
	TaskCount int    `json:"task_count"`
}

func toListResponse(l model.List) ListResponse {
	return ListResponse{
		ID:        int64(l.ID),
		Name:      l.Name,
		Key:       string(l.Key()),
		Color:     l.Color,
		Order:     l.Order,
		TaskCount: l.TaskCount,
	}
}

// GetAll godoc
// @Summary      List lists
// @Description  Returns every list with its number of active tasks
// @Tags         Lists
// @Produce      json
// @Success      200  {array}  ListResponse
// @Router       /lists [get]
func (h *ListHandler) GetAll(c *gin.Context) {
	lists := view.ListCounts(h.session.Lists.Snapshot().Lists, h.session.Tasks.Snapshot().Tasks)

	resp := make([]ListResponse, len(lists))
	for i, l := range lists {
		resp[i] = toListResponse(l)
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a list
// @Tags         Lists
// @Accept       json
// @Produce      json
// @Param        list  body      ListRequest  true  "List"
// @Success      201   {object}  ListResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	list, err := h.session.Lists.Create(c.Request.Context(), model.ListDraft{
		Name:  req.Name,
		Color: req.Color,
		Order: req.Order,
	})
	if err != nil {
		respondError(c, err, "Failed to create list")
		return
	}
	c.JSON(http.StatusCreated, toListResponse(list))
}

// GetByID godoc
// @Summary      Get a list
// @Tags         Lists
// @Produce      json
// @Param        id   path      int  true  "List ID"
// @Success      200  {object}  ListResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /lists/{id} [get]
func (h *ListHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "list")
	if !ok {
		return
	}

	list, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve list")
		return
	}
	c.JSON(http.StatusOK, toListResponse(list))
}

// Update godoc
// @Summary      Update a list
// @Description  Renaming a list moves its tasks to the new key
// @Tags         Lists
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "List ID"
// @Param        list  body      ListUpdateRequest  true  "Fields to change"
// @Success      200   {object}  ListResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /lists/{id} [put]
func (h *ListHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "list")
	if !ok {
		return
	}

	var req ListUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
		return
	}

	list, err := h.session.Lists.Update(c.Request.Context(), id, model.ListPatch{
		Name:  req.Name,
		Color: req.Color,
		Order: req.Order,
	})
	if err != nil {
		respondError(c, err, "Failed to update list")
		return
	}
	if req.Name != nil {
		h.reloadTasks(c)
	}
	c.JSON(http.StatusOK, toListResponse(list))
}

// Delete godoc
// @Summary      Delete a list
// @Description  Deletes the list and every task in it
// @Tags         Lists
// @Produce      json
// @Param        id   path      int  true  "List ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /lists/{id} [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "list")
	if !ok {
		return
	}

	if err := h.session.Lists.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete list")
		return
	}
	h.reloadTasks(c)
	c.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}

// reloadTasks refreshes the task collection after a list change touched
// its tasks. A failure is recorded on the binder and does not fail the
// request.
func (h *ListHandler) reloadTasks(c *gin.Context) {
	if err := h.session.Tasks.Load(c.Request.Context()); err != nil {
		middleware.Log(c).Warn().Err(err).Msg("⚠️  Failed to reload tasks after list change")
	}
}
