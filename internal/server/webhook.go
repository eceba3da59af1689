package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"go.uber.org/zap"
)

const (
	eventCapabilityUpdated = "capability.updated"

	signatureHeader  = "Processor-Signature"
	defaultTolerance = 5 * time.Minute
)

var errInvalidSignature = errors.New("invalid_signature")

type processorEvent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Account string `json:"account"`
}

// HandleProcessorEvent drops the cached capability snapshot when the
// processor reports a capability change for the store's account. Other
// events are acknowledged.
// POST /webhooks/processor
func (s *Server) HandleProcessorEvent(c *gin.Context) {
	secret := s.cfg.Webhook.SigningSecret
	if secret == "" {
		AbortWithError(c, fmt.Errorf("%w: webhook.signing_secret", domain.ErrConfigurationMissing))
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tolerance := s.cfg.Webhook.Tolerance
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	if err := verifySignature(payload, c.GetHeader(signatureHeader), secret, s.now(), tolerance); err != nil {
		s.log.Warn("rejected processor event", zap.Error(err))
		AbortWithError(c, invalidSignatureError())
		return
	}

	var event processorEvent
	if err := json.Unmarshal(payload, &event); err != nil || strings.TrimSpace(event.Type) == "" {
		AbortWithError(c, invalidRequestError())
		return
	}

	if event.Type != eventCapabilityUpdated || s.invalidator == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	account := strings.TrimSpace(event.Account)
	if account == "" {
		account = s.cfg.Store.AccountID
	}
	if account == "" || account != s.cfg.Store.AccountID {
		s.log.Info("ignoring capability event for another account", zap.String("account_id", account))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := s.invalidator.Invalidate(c.Request.Context(), account); err != nil {
		AbortWithError(c, err)
		return
	}
	s.log.Info("capability snapshot invalidated", zap.String("event_id", event.ID), zap.String("account_id", account))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// verifySignature checks a "t=<unix>,v1=<hex hmac-sha256>" header over
// "<t>.<payload>".
func verifySignature(payload []byte, header, secret string, now time.Time, tolerance time.Duration) error {
	timestamp, signatures, err := parseSignature(header)
	if err != nil {
		return err
	}

	unix, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errInvalidSignature
	}
	if age := now.Sub(time.Unix(unix, 0)); age > tolerance || age < -tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", errInvalidSignature)
	}

	expected := signPayload(payload, timestamp, secret)
	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}
	return errInvalidSignature
}

func signPayload(payload []byte, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(timestamp + "."))
	_, _ = mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func parseSignature(header string) (string, []string, error) {
	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "t":
			timestamp = strings.TrimSpace(value)
		case "v1":
			signatures = append(signatures, strings.TrimSpace(value))
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return "", nil, errInvalidSignature
	}
	return timestamp, signatures, nil
}
