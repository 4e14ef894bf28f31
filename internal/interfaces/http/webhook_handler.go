package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-pro/internal/application/dto"
	"github.com/jhoicas/almacen-pro/internal/application/usecase"
	"github.com/jhoicas/almacen-pro/pkg/logger"
)

// Tolerancia de reloj para el timestamp del webhook.
const webhookTolerance = 5 * time.Minute

// identityEvent sobre del webhook del proveedor de identidad.
type identityEvent struct {
	Type string `json:"type"` // user.created | user.updated | user.deleted
	Data struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	} `json:"data"`
}

// WebhookHandler recibe eventos del proveedor de identidad y sincroniza el
// directorio interno de usuarios. La firma sigue el esquema svix: HMAC-SHA256
// sobre "<id>.<timestamp>.<body>" con el secreto whsec_<base64>.
type WebhookHandler struct {
	userUC *usecase.UserUseCase
	secret string
	log    *logger.Logger
}

// NewWebhookHandler construye el handler. secret en formato whsec_<base64>.
func NewWebhookHandler(userUC *usecase.UserUseCase, secret string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{userUC: userUC, secret: secret, log: log}
}

// HandleIdentityEvent procesa un evento firmado del proveedor de identidad.
func (h *WebhookHandler) HandleIdentityEvent(c *fiber.Ctx) error {
	msgID := c.Get("webhook-id")
	msgTimestamp := c.Get("webhook-timestamp")
	msgSignature := c.Get("webhook-signature")
	if msgID == "" || msgTimestamp == "" || msgSignature == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SIGNATURE", Message: "headers de firma requeridos"})
	}
	if err := verifySignature(h.secret, msgID, msgTimestamp, msgSignature, c.Body()); err != nil {
		h.log.Warn().Err(err).Str("webhook_id", msgID).Msg("firma de webhook inválida")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}

	var event identityEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	switch event.Type {
	case "user.created", "user.updated":
		_, err := h.userUC.UpsertByExternalID(dto.UpsertUserRequest{
			ExternalID: event.Data.ID,
			Email:      event.Data.Email,
			Name:       event.Data.Name,
			Role:       event.Data.Role,
		})
		if err != nil {
			return respondError(c, err)
		}
	case "user.deleted":
		if err := h.userUC.DeleteByExternalID(event.Data.ID); err != nil {
			return respondError(c, err)
		}
	default:
		// Evento desconocido: 200 para que el proveedor no reintente.
		h.log.Debug().Str("type", event.Type).Msg("evento de webhook ignorado")
	}
	return c.SendStatus(fiber.StatusOK)
}

// verifySignature valida la firma del mensaje. El header webhook-signature
// puede traer varias firmas separadas por espacio ("v1,<b64> v1,<b64>");
// basta con que una coincida.
func verifySignature(secret, msgID, msgTimestamp, msgSignature string, body []byte) error {
	ts, err := strconv.ParseInt(msgTimestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp inválido: %w", err)
	}
	diff := time.Since(time.Unix(ts, 0))
	if diff > webhookTolerance || diff < -webhookTolerance {
		return fmt.Errorf("timestamp fuera de tolerancia")
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	if err != nil {
		return fmt.Errorf("secreto inválido: %w", err)
	}
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", msgID, msgTimestamp, body)
	expected := mac.Sum(nil)

	for _, sig := range strings.Split(msgSignature, " ") {
		parts := strings.SplitN(sig, ",", 2)
		if len(parts) != 2 || parts[0] != "v1" {
			continue
		}
		got, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			continue
		}
		if hmac.Equal(expected, got) {
			return nil
		}
	}
	return fmt.Errorf("ninguna firma coincide")
}
