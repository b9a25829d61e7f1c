package leave

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateType(c *gin.Context) {
	var req LeaveTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.CreateType(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateType(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req LeaveTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.UpdateType(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListTypes(c *gin.Context) {
	resp, err := h.service.ListTypes(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteType(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if err := h.service.DeleteType(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) DeleteAllTypes(c *gin.Context) {
	n, err := h.service.DeleteAllTypes(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n}, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req SubmitLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit leave validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	page := request.Page(c)

	resp, total, err := h.service.List(c.Request.Context(), q, page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	meta := response.NewPaginationMeta(total, page, DefaultPageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) ListOwn(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	page := request.Page(c)

	resp, total, err := h.service.ListOwn(c.Request.Context(), actor, q, page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	meta := response.NewPaginationMeta(total, page, DefaultPageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) Decide(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteOwn(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if err := h.service.DeleteOwn(c.Request.Context(), actor, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Summary(c *gin.Context) {
	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.Summary(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
