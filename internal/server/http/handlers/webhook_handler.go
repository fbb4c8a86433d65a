package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/maxbelov/shopgate/internal/domain/errors"
	"github.com/maxbelov/shopgate/internal/domain/model"
	"github.com/maxbelov/shopgate/internal/metrics"
	"github.com/maxbelov/shopgate/internal/pkg/signature"
	"github.com/maxbelov/shopgate/internal/server/http/dto"
)

// WebhookHandler receives payment processor deliveries.
type WebhookHandler struct {
	facade   WebhookFacade
	verifier EventVerifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade WebhookFacade, verifier EventVerifier, m *metrics.Metrics, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{facade: facade, verifier: verifier, metrics: m, logger: logger}
}

// Handle processes POST /api/webhooks/stripe. The body is read and verified
// as raw bytes before any JSON parsing: the signature covers the exact
// payload the processor sent. Non-2xx responses make the processor retry, so
// only persistence failures return 500 after authentication passes.
func (h *WebhookHandler) Handle(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.ObserveWebhookDuration(time.Since(start))
	}()
	h.metrics.EventReceived()

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.metrics.EventRejected()
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "failed to read request body"})
		return
	}

	event, err := h.verifier.Verify(payload, c.GetHeader(signature.Header))
	if err != nil {
		if errors.Is(err, domainErrors.ErrSecretNotConfigured) {
			h.logger.Error("webhook delivery received without configured signing secret")
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: domainErrors.ErrSecretNotConfigured.Error()})
			return
		}
		h.metrics.EventRejected()
		h.logger.Warn("webhook signature verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "signature verification failed"})
		return
	}

	payment, handled, err := model.PaymentEventFromStripe(event)
	if !handled {
		h.metrics.EventIgnored()
		h.logger.Info("webhook event type not handled",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
		)
		c.JSON(http.StatusOK, dto.AckResponse{Received: true})
		return
	}
	if err != nil {
		// Recognized kind, unreadable payload: acknowledge without mutating
		// so the processor does not retry a delivery we can never apply.
		h.metrics.EventIgnored()
		h.logger.Warn("webhook event payload not readable",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusOK, dto.AckResponse{Received: true})
		return
	}

	h.metrics.EventHandled()
	if _, err := h.facade.ReconcilePayment(c.Request.Context(), *payment); err != nil {
		h.metrics.ReconcileFailed()
		h.logger.Error("payment event reconciliation failed",
			slog.String("event_id", payment.ID),
			slog.String("event_type", string(payment.Type)),
			slog.String("payment_reference", payment.PaymentReference),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to apply payment event"})
		return
	}

	c.JSON(http.StatusOK, dto.AckResponse{Received: true})
}
