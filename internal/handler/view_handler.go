package handler

import (
	"net/http"
	"strconv"
	"time"

	"flowtasks/internal/model"
	"flowtasks/internal/state"
	"flowtasks/internal/view"

	"github.com/gin-gonic/gin"
)

// ViewHandler serves projections derived from the session collections.
// Nothing here calls a service, so views never wait on latency.
type ViewHandler struct {
	session          *state.Session
	completedPreview int
	clock            func() time.Time
}

func NewViewHandler(session *state.Session, completedPreview int, clock func() time.Time) *ViewHandler {
	if clock == nil {
		clock = time.Now
	}
	return &ViewHandler{session: session, completedPreview: completedPreview, clock: clock}
}

type TaskViewResponse struct {
	Filter          string         `json:"filter"`
	List            string         `json:"list"`
	Active          []TaskResponse `json:"active"`
	Completed       []TaskResponse `json:"completed"`
	CompletedTotal  int            `json:"completed_total"`
	HiddenCompleted int            `json:"hidden_completed"`
	Loading         bool           `json:"loading"`
	Error           *string        `json:"error"`
}

type ProgressResponse struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Rate      int `json:"rate"`
}

type CountsResponse struct {
	Filters  map[string]int   `json:"filters"`
	Lists    map[string]int   `json:"lists"`
	Progress ProgressResponse `json:"progress"`
}

// Tasks godoc
// @Summary      Filtered task view
// @Description  Active tasks matching the filter sorted by order, plus the completed section
// @Tags         Views
// @Produce      json
// @Param        filter    query     string  false  "all, today, overdue, high, medium, low or completed"
// @Param        list      query     string  false  "List key"
// @Param        expanded  query     bool    false  "Show every completed task"
// @Success      200       {object}  TaskViewResponse
// @Router       /views/tasks [get]
func (h *ViewHandler) Tasks(c *gin.Context) {
	filter := view.ParseFilter(c.Query("filter"))
	key := model.KeyOf(c.Query("list"))
	if key == "" {
		key = model.AllLists
	}
	expanded, _ := strconv.ParseBool(c.Query("expanded"))

	snap := h.session.Tasks.Snapshot()
	v := view.Build(snap.Tasks, filter, view.Options{
		ListKey:          key,
		Expanded:         expanded,
		CompletedPreview: h.completedPreview,
		Now:              h.clock(),
	})

	resp := TaskViewResponse{
		Filter:          string(v.Filter),
		List:            string(key),
		Active:          toTaskResponses(v.Active),
		Completed:       toTaskResponses(v.Completed),
		CompletedTotal:  v.CompletedTotal,
		HiddenCompleted: v.HiddenCompleted,
		Loading:         snap.Loading,
	}
	if snap.Err != nil {
		msg := snap.Err.Error()
		resp.Error = &msg
	}
	c.JSON(http.StatusOK, resp)
}

// Counts godoc
// @Summary      Task counters
// @Description  Per-filter and per-list counts and overall progress
// @Tags         Views
// @Produce      json
// @Success      200  {object}  CountsResponse
// @Router       /views/counts [get]
func (h *ViewHandler) Counts(c *gin.Context) {
	counts := view.Count(h.session.Tasks.Snapshot().Tasks, h.session.Lists.Snapshot().Lists, h.clock())

	resp := CountsResponse{
		Filters: make(map[string]int, len(counts.ByFilter)),
		Lists:   make(map[string]int, len(counts.ByList)),
		Progress: ProgressResponse{
			Total:     counts.Progress.Total,
			Completed: counts.Progress.Completed,
			Rate:      counts.Progress.Rate,
		},
	}
	for f, n := range counts.ByFilter {
		resp.Filters[string(f)] = n
	}
	for k, n := range counts.ByList {
		resp.Lists[string(k)] = n
	}
	c.JSON(http.StatusOK, resp)
}
