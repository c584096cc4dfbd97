package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/tennis-playability/internal/domain/playability"
)

// Handler wires the HTTP transport to the playability form controller.
type Handler struct {
	svc    playability.Service
	logger *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc playability.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:    svc,
		logger: logger.With("component", "http.handler"),
	}
}

// ShowForm renders the form with the session's current selections.
func (h *Handler) ShowForm(c *gin.Context) {
	sel, err := h.svc.Selection(c.Request.Context(), sessionID(c))
	if err != nil {
		h.renderError(c, nil, err)
		return
	}
	c.HTML(http.StatusOK, formTemplate, newFormView(sel, nil))
}

// SelectConditions stores the submitted selections and redraws the form.
func (h *Handler) SelectConditions(c *gin.Context) {
	sel, ok := h.applyForm(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, formTemplate, newFormView(sel, nil))
}

// ValidateConditions previews the payload that would be sent.
func (h *Handler) ValidateConditions(c *gin.Context) {
	sel, ok := h.applyForm(c)
	if !ok {
		return
	}
	payload, err := h.svc.Preview(c.Request.Context(), sessionID(c))
	if err != nil {
		h.renderError(c, sel, err)
		return
	}
	view := newFormView(sel, successNotice("Options Selected:"))
	view.Preview = payload.Rows()
	c.HTML(http.StatusOK, formTemplate, view)
}

// CheckPlayability submits the selections to the inference endpoint.
func (h *Handler) CheckPlayability(c *gin.Context) {
	sel, ok := h.applyForm(c)
	if !ok {
		return
	}
	outcome, err := h.svc.Check(c.Request.Context(), sessionID(c))
	if err != nil {
		h.renderError(c, sel, err)
		return
	}
	view := newFormView(sel, successNotice(outcome.Prediction.Description))
	view.Celebrate = outcome.Celebrate()
	c.HTML(http.StatusOK, formTemplate, view)
}

// applyForm saves whatever selectors were posted. Only known field names are read so
// stray form keys are ignored.
func (h *Handler) applyForm(c *gin.Context) (playability.Selection, bool) {
	ctx := c.Request.Context()
	if err := c.Request.ParseForm(); err != nil {
		h.renderError(c, nil, NewHTTPError(http.StatusBadRequest, "invalid_request", "malformed form submission", err))
		return nil, false
	}
	values := make(map[string]string)
	for _, f := range playability.Fields() {
		if vs, ok := c.Request.PostForm[string(f.Name)]; ok && len(vs) > 0 {
			values[string(f.Name)] = vs[0]
		}
	}
	if len(values) == 0 {
		sel, err := h.svc.Selection(ctx, sessionID(c))
		if err != nil {
			h.renderError(c, nil, err)
			return nil, false
		}
		return sel, true
	}
	sel, err := h.svc.Select(ctx, sessionID(c), values)
	if err != nil {
		current, _ := h.svc.Selection(ctx, sessionID(c))
		h.renderError(c, current, err)
		return nil, false
	}
	return sel, true
}

// renderError shows the failure inline; the session and its selections stay usable.
func (h *Handler) renderError(c *gin.Context, sel playability.Selection, err error) {
	httpErr := fromDomainError(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("form action failed", "path", c.Request.URL.Path, "code", httpErr.Code, "error", err)
	} else {
		h.logger.Warn("form action rejected", "path", c.Request.URL.Path, "code", httpErr.Code, "error", err)
	}
	c.HTML(httpErr.Status, formTemplate, newFormView(sel, errorNotice(httpErr.Message)))
}

// ListFields returns the field domains.
func (h *Handler) ListFields(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": h.svc.Fields()})
}

type predictionResponse struct {
	Description string              `json:"description"`
	CanPlay     bool                `json:"canPlay"`
	Payload     playability.Payload `json:"payload"`
}

// Predict is the stateless JSON counterpart of CheckPlayability.
func (h *Handler) Predict(c *gin.Context) {
	var req playability.Payload
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	sel, err := playability.SelectionFromPayload(req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	outcome, err := h.svc.Predict(c.Request.Context(), sel)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, predictionResponse{
		Description: outcome.Prediction.Description,
		CanPlay:     outcome.Prediction.CanPlay,
		Payload:     outcome.Payload,
	})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
