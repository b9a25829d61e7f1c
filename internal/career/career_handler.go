package career

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
	l := zap.L().Named("career.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("career.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("career request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CareerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	banner, release, err := request.File(c, "banner")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer release()

	resp, err := h.service.Create(c.Request.Context(), req, banner)
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
	var req CareerRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	banner, release, err := request.File(c, "banner")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer release()

	resp, err := h.service.Update(c.Request.Context(), id, req, banner)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
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
