// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

// webhookTolerance bounds how stale a signed delivery timestamp may be.
// Deliveries outside the window are rejected to blunt replay.
const webhookTolerance = 5 * time.Minute

const (
	eventUserCreated = "user.created"
	eventUserUpdated = "user.updated"
)

// identityEvent is the provider's delivery envelope. Attribute fields are
// pointers so that absent and empty values stay distinguishable for partial
// updates.
type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID        string  `json:"id"`
		Username  *string `json:"username"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		ImageURL  *string `json:"image_url"`
	} `json:"data"`
}

// IdentityWebhook handles POST /api/webhooks/identity.
//
// The delivery is authenticated by the provider's HMAC scheme, not by a
// bearer token: svix-id, svix-timestamp and svix-signature headers sign the
// raw body. Unknown event types are acknowledged with 200 so the provider
// does not retry them.
func (s *Server) IdentityWebhook(c *fiber.Ctx) error {
	ctx := c.Context()

	if s.config.WebhookSecret != "" {
		if err := verifyWebhookSignature(c, s.config.WebhookSecret); err != nil {
			middleware.WebhookEvents.WithLabelValues("unknown", "bad_signature").Inc()
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
	}

	var event identityEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		middleware.WebhookEvents.WithLabelValues("unknown", "bad_payload").Inc()
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid webhook payload"))
	}

	observability.AddTraceAttributesToContext(c.UserContext(),
		attribute.String("webhook.event_type", event.Type))

	attrs := service.UserAttributes{
		Username:  event.Data.Username,
		FirstName: event.Data.FirstName,
		LastName:  event.Data.LastName,
		ImageURL:  event.Data.ImageURL,
	}

	var err error
	switch event.Type {
	case eventUserCreated:
		_, err = s.userService.SyncUserCreated(ctx, event.Data.ID, attrs)
	case eventUserUpdated:
		_, err = s.userService.SyncUserUpdated(ctx, event.Data.ID, attrs)
	default:
		// Not an event this service consumes. Acknowledge and move on.
		middleware.WebhookEvents.WithLabelValues(event.Type, "ignored").Inc()
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "event ignored"})
	}

	if err != nil {
		middleware.WebhookEvents.WithLabelValues(event.Type, "error").Inc()
		return respondError(c, err)
	}

	middleware.WebhookEvents.WithLabelValues(event.Type, "ok").Inc()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "ok"})
}

// verifyWebhookSignature checks the svix-style HMAC-SHA256 signature over
// "{id}.{timestamp}.{payload}". The secret carries a "whsec_" prefix over a
// base64-encoded key; the signature header holds space-separated
// "v1,<base64>" candidates of which any one may match.
func verifyWebhookSignature(c *fiber.Ctx, secret string) error {
	msgID := c.Get("svix-id")
	msgTimestamp := c.Get("svix-timestamp")
	msgSignature := c.Get("svix-signature")
	if msgID == "" || msgTimestamp == "" || msgSignature == "" {
		return models.NewValidationError("Missing webhook signature headers")
	}

	ts, err := strconv.ParseInt(msgTimestamp, 10, 64)
	if err != nil {
		return models.NewValidationError("Invalid webhook timestamp")
	}
	age := time.Since(time.Unix(ts, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return models.NewValidationError("Webhook timestamp outside tolerance")
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return models.NewValidationError("Malformed webhook secret")
	}

	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.", msgID, msgTimestamp)
	mac.Write(c.Body())
	expected := mac.Sum(nil)

	for _, candidate := range strings.Fields(msgSignature) {
		version, sig, found := strings.Cut(candidate, ",")
		if !found || version != "v1" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}

	return models.NewValidationError("Webhook signature mismatch")
}
