package policy

import (
	"net/http"

	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/request"
	"go-worktrack/internal/shared/response"
	"go-worktrack/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("policy.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("policy request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	actor, err := request.Actor(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	var req UploadPolicyRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	file, release, err := request.RequiredFile(c, "file")
	defer release()
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Upload(c.Request.Context(), actor, req, file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Download(c *gin.Context) {
	id, err := request.ParseID(c, "id")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	p, rc, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer rc.Close()
	response.Attachment(c, p.OriginalName, storage.MimePDF, p.FileSize, rc)
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
