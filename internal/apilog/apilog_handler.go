package apilog

import (
	"net/http"

	"go-firme/internal/shared/apperror"
	"go-firme/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("apilog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("apilog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}
	q.Normalize()

	logs, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.logger.Error("list api logs failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, q.Page, q.PageSize)
	response.Success(c, http.StatusOK, logs, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	log, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, log, nil)
}

func (h *Handler) Purge(c *gin.Context) {
	var req PurgeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	deleted, err := h.service.PurgeOlderThan(c.Request.Context(), req.OlderThanDays)
	if err != nil {
		h.logger.Error("purge api logs failed", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PurgeResponse{
		Deleted:       deleted,
		OlderThanDays: req.OlderThanDays,
	}, nil)
}
