package handler

import (
	"net/http"
	"strings"
	"time"

	"flowtasks/internal/model"
	"flowtasks/internal/service"
	"flowtasks/internal/state"
	"flowtasks/internal/view"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks   *state.Tasks
	service *service.TaskService
}

func NewTaskHandler(tasks *state.Tasks, svc *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks, service: svc}
}

// TaskRequest is the body of a create request
type TaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"due_date" binding:"omitempty,isodate"`
	ListID      string  `json:"list_id"`
	// Order inserts at a position instead of appending
	Order int `json:"order" binding:"omitempty,min=1"`
}

// TaskUpdateRequest is a partial update; omitted fields are left unchanged
type TaskUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Priority     *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate      *string `json:"due_date" binding:"omitempty,isodate"`
	ClearDueDate bool    `json:"clear_due_date"`
	Completed    *bool   `json:"completed"`
	ListID       *string `json:"list_id"`
	Order        *int    `json:"order" binding:"omitempty,min=1"`
}

// TaskMoveRequest moves a task to a position, optionally in another list
type TaskMoveRequest struct {
	Order  int    `json:"order" binding:"required,min=1"`
	ListID string `json:"list_id"`
}

type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *string    `json:"due_date"`
	ListID      string     `json:"list_id"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
	Order       int        `json:"order"`
}

func toTaskResponse(t model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          int64(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		ListID:      string(t.ListID),
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		Order:       t.Order,
	}
	if t.DueDate != nil {
		d := t.DueDate.String()
		resp.DueDate = &d
	}
	return resp
}

func toTaskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

// GetAll godoc
// @Summary      List tasks
// @Description  Returns the session's task collection, optionally scoped to one list
// @Tags         Tasks
// @Produce      json
// @Param        list  query     string  false  "List key"
// @Success      200   {array}   TaskResponse
// @Router       /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	key := model.KeyOf(c.Query("list"))
	tasks := view.Scope(h.tasks.Snapshot().Tasks, key)
	c.JSON(http.StatusOK, toTaskResponses(tasks))
}

// Create godoc
// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      TaskRequest  true  "Task"
// @Success      201   {object}  TaskResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	draft := model.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		ListID:      model.KeyOf(req.ListID),
		Order:       req.Order,
	}
	if req.DueDate != nil {
		due, err := model.ParseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date"})
			return
		}
		draft.DueDate = &due
	}

	task, err := h.tasks.Create(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GetByID godoc
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  TaskResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "task")
	if !ok {
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve task")
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update godoc
// @Summary      Update a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Task ID"
// @Param        task  body      TaskUpdateRequest  true  "Fields to change"
// @Success      200   {object}  TaskResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "task")
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title cannot be empty"})
		return
	}

	patch := model.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		ClearDueDate: req.ClearDueDate,
		Completed:    req.Completed,
		Order:        req.Order,
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		patch.Priority = &p
	}
	if req.DueDate != nil {
		due, err := model.ParseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date"})
			return
		}
		patch.DueDate = &due
	}
	if req.ListID != nil {
		key := model.KeyOf(*req.ListID)
		patch.ListID = &key
	}

	task, err := h.tasks.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "task")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete task")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// ToggleComplete godoc
// @Summary      Toggle task completion
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  TaskResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	id, ok := parseID(c, "task")
	if !ok {
		return
	}

	task, err := h.tasks.ToggleComplete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// MoveTask godoc
// @Summary      Move a task
// @Description  Places the task at order within list_id (or its current list) and renumbers both lists
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Task ID"
// @Param        move  body      TaskMoveRequest  true  "Target position"
// @Success      200   {object}  TaskResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /tasks/{id}/move [post]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	id, ok := parseID(c, "task")
	if !ok {
		return
	}

	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.UpdateOrder(c.Request.Context(), id, req.Order, model.KeyOf(req.ListID))
	if err != nil {
		respondError(c, err, "Failed to reorder task")
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}
