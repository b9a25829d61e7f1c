package asset

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
	l := zap.L().Named("asset.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("asset.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("asset request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
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

func (h *Handler) GetByID(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Allocate(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.Allocate(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Return(c *gin.Context) {
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
	if err := h.service.Return(c.Request.Context(), actor, id); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"returned": true}, nil)
}

func (h *Handler) ListAllocations(c *gin.Context) {
	var q AllocationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.ListAllocations(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	employeeID, err := request.ParseID(c, "employee_id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp, err := h.service.History(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MyAssets(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp, err := h.service.MyAssets(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReportIssue(c *gin.Context) {
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
	var req ReportIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.ReportIssue(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ResolveIssue(c *gin.Context) {
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
	var req ResolveIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	resp, err := h.service.ResolveIssue(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
