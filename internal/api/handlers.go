// Package api contains the HTTP handlers and routing the host platform calls.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/exchangeaddons/paypal-pro/internal/core/domain"
	"github.com/exchangeaddons/paypal-pro/internal/core/service"
)

// Handler contains the HTTP handlers for the add-on hooks and admin pages.
type Handler struct {
	transactions *service.TransactionService
	settings     *service.SettingsService
	logger       *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(transactions *service.TransactionService, settings *service.SettingsService, logger *zap.Logger) *Handler {
	return &Handler{
		transactions: transactions,
		settings:     settings,
		logger:       logger,
	}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// TransactionHookRequest is the body of the process-transaction hook.
// PriorStatus is the value already in the host's filter chain: false, null,
// "" or absent means no add-on has handled the checkout yet, while true or a
// transaction id is handed back untouched.
type TransactionHookRequest struct {
	PriorStatus json.RawMessage     `json:"prior_status,omitempty"`
	Nonce       string              `json:"nonce"`
	Cart        domain.CartContents `json:"cart"`
}

// TransactionHookResponse carries the next filter value and any notices.
// Result is the transaction id, or false on failure.
type TransactionHookResponse struct {
	Result   any              `json:"result"`
	Messages []domain.Message `json:"messages"`
}

// RefundURL handles GET /hooks/paypal_pro/refund-url
func (h *Handler) RefundURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": h.transactions.RefundURL()})
}

// ProcessTransaction handles POST /hooks/paypal_pro/transaction
func (h *Handler) ProcessTransaction(c *gin.Context) {
	var req TransactionHookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid request body: " + err.Error(),
			Code:    "VALIDATION_ERROR",
		})
		return
	}

	prior, err := priorStatus(req.PriorStatus)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   err.Error(),
			Code:    "VALIDATION_ERROR",
		})
		return
	}

	msgs := &domain.Messages{}
	id := h.transactions.ProcessTransaction(c.Request.Context(), prior, domain.TransactionRequest{
		Nonce:    req.Nonce,
		Cart:     req.Cart,
		ClientIP: c.ClientIP(),
	}, msgs)

	var result any = id
	switch {
	case id == "":
		result = false
	case prior != "" && id == prior:
		// Keep the host's own type (true, numeric id) for values we did not produce.
		result = req.PriorStatus
	}

	c.JSON(http.StatusOK, TransactionHookResponse{
		Result:   result,
		Messages: msgs.All(),
	})
}

// PaymentButton handles GET /hooks/paypal_pro/payment-button?cart_total=
func (h *Handler) PaymentButton(c *gin.Context) {
	total, err := strconv.ParseFloat(c.DefaultQuery("cart_total", "0"), 64)
	if err != nil || math.IsNaN(total) || math.IsInf(total, 0) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "cart_total must be a finite number",
			Code:    "VALIDATION_ERROR",
		})
		return
	}

	html := h.transactions.MakePaymentButton(c.Request.Context(), total)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// StatusLabel handles GET /hooks/paypal_pro/status-label?status=
func (h *Handler) StatusLabel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"label": h.transactions.StatusLabel(c.Query("status"))})
}

// ClearedForDelivery handles GET /hooks/paypal_pro/cleared-for-delivery?status=
// The host's incoming "cleared" value is replaced, never combined.
func (h *Handler) ClearedForDelivery(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"cleared": h.transactions.IsClearedForDelivery(c.Query("status"))})
}

// Defaults handles GET /hooks/paypal_pro/defaults
func (h *Handler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Defaults())
}

// SettingsPage handles GET /admin/addons/paypal_pro/settings
func (h *Handler) SettingsPage(c *gin.Context) {
	h.renderSettings(c, service.RenderContext{})
}

// SaveSettings handles POST /admin/addons/paypal_pro/settings
func (h *Handler) SaveSettings(c *gin.Context) {
	fields, ok := postedFields(c)
	if !ok {
		return
	}

	result := h.settings.Submit(c.Request.Context(), service.SubmitRequest{
		Nonce:  fields[service.SettingsNonceField],
		Fields: fields,
	})

	h.renderSettings(c, result.RenderContext())
}

// WizardFragment handles GET /admin/wizard/paypal_pro?addon_enabled=1
func (h *Handler) WizardFragment(c *gin.Context) {
	enabled, _ := strconv.ParseBool(c.DefaultQuery("addon_enabled", "false"))
	h.renderSettings(c, service.RenderContext{Wizard: true, AddonEnabled: enabled})
}

// SaveWizard handles POST /admin/wizard/paypal_pro
// Responds 204 when the wizard did not submit, otherwise the error list.
func (h *Handler) SaveWizard(c *gin.Context) {
	fields, ok := postedFields(c)
	if !ok {
		return
	}

	errs, submitted := h.settings.SubmitWizard(c.Request.Context(), fields)
	if !submitted {
		c.Status(http.StatusNoContent)
		return
	}

	if errs == nil {
		errs = domain.FormErrors{}
	}
	c.JSON(http.StatusOK, gin.H{"errors": errs})
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "paypal-pro-addon",
	})
}

func (h *Handler) renderSettings(c *gin.Context, rc service.RenderContext) {
	html, err := h.settings.Render(c.Request.Context(), rc)
	if err != nil {
		h.logger.Error("Failed to render settings", zap.Bool("wizard", rc.Wizard), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Success: false,
			Error:   "Internal server error",
			Code:    "INTERNAL_ERROR",
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// priorStatus reads the filter value the host passed in. The empty string
// means unhandled; any other value is returned as its JSON text.
func priorStatus(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return "", fmt.Errorf("invalid prior_status: %w", err)
	}

	switch v := value.(type) {
	case nil:
		return "", nil
	case bool:
		if !v {
			return "", nil
		}
		return "true", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		return "", errors.New("prior_status must be false, true or a transaction id")
	}
}

// postedFields flattens the posted form. For repeated names the last value
// wins, so a checked checkbox overrides its hidden "0" companion.
func postedFields(c *gin.Context) (map[string]string, bool) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Error:   "Invalid form body: " + err.Error(),
			Code:    "VALIDATION_ERROR",
		})
		return nil, false
	}

	fields := make(map[string]string, len(c.Request.PostForm))
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[key] = values[len(values)-1]
		}
	}
	return fields, true
}
