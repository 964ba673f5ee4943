package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/courierhq/courier-backend/app"
	"github.com/courierhq/courier-backend/utils"
)

// maxWebhookBody caps inbound webhook payloads at 1 MiB.
const maxWebhookBody = 1 << 20

// InboundWebhookHandler handles POST /webhooks/{provider}. Providers deliver
// out-of-band and cannot authenticate as a tenant user, so this route class is
// public; payloads are acknowledged and handed to the delivery workers, which
// are outside this service.
func InboundWebhookHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			_ = utils.WriteBadRequest(w, "Unreadable payload", nil)
			return
		}

		deps.Logger.Info("inbound webhook received",
			zap.String("provider", provider),
			zap.Int("bytes", len(body)))

		_ = utils.WriteOK(w, map[string]string{"status": "accepted"})
	}
}
