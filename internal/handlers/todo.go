package handlers

import (
	"errors"
	"net/http"
	"strconv"

	dom "github.com/MarianaSardo/todosAPI/internal/domain"
	"github.com/MarianaSardo/todosAPI/internal/dto"
	"github.com/MarianaSardo/todosAPI/internal/service"

	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Register mounts all todo routes on g. The static update_complete segment is
// matched ahead of the :id parameter, so both PUT routes coexist.
func (h *TodoHandler) Register(g *gin.RouterGroup) {
	g.GET("/", h.List)
	g.GET("/:id", h.GetByID)
	g.POST("/create", h.Create)
	g.PUT("/:id", h.Update)
	g.PUT("/update_complete/:id", h.UpdateComplete)
	g.DELETE("/:id", h.Delete)
}

// List godoc
// @Summary      List all todos
// @Tags         todos
// @Produce      json
// @Success      200  {array}   dto.TodoResponse
// @Failure      500  {object}  map[string]string
// @Router       /todo/ [get]
func (h *TodoHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, todosToResponses(list))
}

// GetByID godoc
// @Summary      Get a todo by ID
// @Tags         todos
// @Produce      json
// @Param        id   path      int  true  "Todo ID"
// @Success      200  {object}  dto.TodoResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todo/{id} [get]
func (h *TodoHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, todoToResponse(t))
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TodoRequest  true  "Todo body"
// @Success      201   {object}  dto.TodoResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todo/create [post]
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), requestToTodo(req))
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, todoToResponse(t))
}

// Update godoc
// @Summary      Replace all mutable fields of a todo
// @Tags         todos
// @Accept       json
// @Param        id    path  int              true  "Todo ID"
// @Param        body  body  dto.TodoRequest  true  "Full replacement"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todo/{id} [put]
func (h *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, requestToTodo(req)); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateComplete godoc
// @Summary      Update only the completion flag
// @Tags         todos
// @Param        id         path   int   true  "Todo ID"
// @Param        completed  query  bool  true  "New completion flag"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todo/update_complete/{id} [put]
func (h *TodoHandler) UpdateComplete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	completed, err := strconv.ParseBool(c.Query("completed"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be true or false"})
		return
	}
	if err := h.svc.SetCompleted(c.Request.Context(), id, completed); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete godoc
// @Summary      Delete a todo
// @Tags         todos
// @Param        id   path  int  true  "Todo ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todo/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrPastDueDate) ||
		errors.Is(err, service.ErrInvalidPriority) ||
		errors.Is(err, service.ErrEmptyTitle) ||
		errors.Is(err, service.ErrEmptyDescription)
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func requestToTodo(req dto.TodoRequest) dom.Todo {
	return dom.Todo{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate.Time(),
		Priority:    dom.Priority(req.Priority),
		Completed:   *req.Completed,
	}
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     dto.NewDateOnly(t.DueDate),
		Priority:    string(t.Priority),
		Completed:   t.Completed,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}
