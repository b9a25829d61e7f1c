package employee

import (
	"net/http"
	"strconv"
	"strings"

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	h.logger.Debug("http create employee")
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create employee validation failed", zap.Error(err))
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

func (h *Handler) GetAll(c *gin.Context) {
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}
	filter := ListFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Status:   c.Query("status"),
		EmpType:  c.Query("emp_type"),
		SortBy:   strings.ToLower(c.DefaultQuery("sort_by", "name")),
		SortDir:  strings.ToLower(c.DefaultQuery("sort_dir", "asc")),
		Page:     request.Page(c),
		PageSize: pageSize,
	}

	resp, total, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.PageSize)
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	resp, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
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

func (h *Handler) Update(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http update employee", zap.Int64("employee_id", id))

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update employee validation failed", zap.Error(err))
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

func (h *Handler) Delete(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.logger.Debug("http delete employee", zap.Int64("employee_id", id))

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) BulkDelete(c *gin.Context) {
	n, err := h.service.BulkDeleteNonAdmin(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n}, nil)
}

func (h *Handler) GetProfile(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertProfile(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpsertProfile(c.Request.Context(), id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetOwnProfile(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp, err := h.service.GetProfile(c.Request.Context(), actor.EmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateOwnEmergencyContact(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req EmergencyContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateOwnEmergencyContact(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Celebrations(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(DefaultCelebrationDays)))
	if err != nil || days < 1 || days > 366 {
		days = DefaultCelebrationDays
	}

	resp, err := h.service.Celebrations(c.Request.Context(), days)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
