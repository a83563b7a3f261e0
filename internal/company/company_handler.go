package company

import (
	"net/http"
	"net/url"
	"strings"

	"go-firme/internal/shared/apperror"
	"go-firme/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "Company lookup",
		"CUI":   "",
		"Error": "",
	})
}

// Submit validates the form and redirects to the company page.
func (h *Handler) Submit(c *gin.Context) {
	req := LookupRequest{CUI: strings.TrimSpace(c.PostForm("cui"))}

	if err := binding.Validator.ValidateStruct(&req); err != nil {
		appErr := apperror.MapValidationError(err)
		c.HTML(http.StatusUnprocessableEntity, "index.html", gin.H{
			"Title": "Company lookup",
			"CUI":   req.CUI,
			"Error": apperror.ToHTTP(appErr).Message,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/company/"+url.PathEscape(req.CUI))
}

// Show runs the lookup and renders the record or a generic error.
func (h *Handler) Show(c *gin.Context) {
	cui := c.Param("cui")

	rec, err := h.service.Lookup(c.Request.Context(), cui)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		c.HTML(httpErr.Status, "show.html", gin.H{
			"Title":   "CUI " + cui,
			"Company": nil,
			"Demo":    false,
			"Error":   httpErr.Message,
		})
		return
	}

	c.HTML(http.StatusOK, "show.html", gin.H{
		"Title":   rec.CompanyName,
		"Company": rec,
		"Demo":    h.service.IsDemo(cui),
		"Error":   "",
	})
}

func (h *Handler) GetByCUI(c *gin.Context) {
	cui := c.Param("cui")

	rec, err := h.service.Lookup(c.Request.Context(), cui)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, LookupResponse{
		Company: rec,
		Demo:    h.service.IsDemo(cui),
	}, nil)
}
