package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"github.com/shopspring/decimal"
)

type availablePaymentMethod struct {
	ID         domain.MethodID `json:"id"`
	Label      string          `json:"label"`
	Reusable   bool            `json:"reusable"`
	Eligible   bool            `json:"eligible"`
	FailedGate domain.Gate     `json:"failed_gate,omitempty"`
}

type paymentTokenResponse struct {
	Kind  domain.TokenKind `json:"kind"`
	Token domain.Token     `json:"token"`
}

// ListPaymentMethods returns the static method registry
// GET /api/payment-methods
func (s *Server) ListPaymentMethods(c *gin.Context) {
	respondData(c, s.registry.All())
}

// ListAvailablePaymentMethods evaluates every method for the current cart
// GET /api/payment-methods/available?currency=EUR&amount=150&recurring=true
func (s *Server) ListAvailablePaymentMethods(c *gin.Context) {
	req := domain.AvailabilityRequest{
		Currency: strings.ToUpper(strings.TrimSpace(c.Query("currency"))),
	}

	if raw := strings.TrimSpace(c.Query("amount")); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			AbortWithError(c, newValidationError("amount", "invalid_order_amount", "amount must be a non-negative number"))
			return
		}
		req.OrderAmount = amount
	}

	if raw := strings.TrimSpace(c.Query("recurring")); raw != "" {
		recurring, err := strconv.ParseBool(raw)
		if err != nil {
			AbortWithError(c, newValidationError("recurring", "invalid_flag", "recurring must be a boolean"))
			return
		}
		req.CartHasRecurringItem = recurring
	}

	results, err := s.paymentMethodSvc.AvailableMethods(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	onlyEligible := c.Query("eligible") == "true"
	out := make([]availablePaymentMethod, 0, len(results))
	for _, r := range results {
		if onlyEligible && !r.Result.Eligible {
			continue
		}
		out = append(out, availablePaymentMethod{
			ID:         r.Method.ID,
			Label:      r.Method.Label,
			Reusable:   r.Method.Reusable,
			Eligible:   r.Result.Eligible,
			FailedGate: r.Result.FailedGate,
		})
	}
	respondData(c, out)
}

// CreatePaymentToken stores a token built from a completed payment record
// POST /api/users/:id/payment-tokens
func (s *Server) CreatePaymentToken(c *gin.Context) {
	var record domain.PaymentRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	tok, err := s.paymentMethodSvc.CreatePaymentToken(c.Request.Context(), c.Param("id"), record)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, paymentTokenResponse{Kind: tok.Kind(), Token: tok})
}

// ListPaymentTokens lists a user's stored tokens
// GET /api/users/:id/payment-tokens
func (s *Server) ListPaymentTokens(c *gin.Context) {
	tokens, err := s.paymentMethodSvc.ListPaymentTokens(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := make([]paymentTokenResponse, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, paymentTokenResponse{Kind: tok.Kind(), Token: tok})
	}
	respondData(c, out)
}
