package token

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/paygate/internal/clock"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
)

// Factory turns completed-payment records into stored payment tokens. It
// never persists what it builds.
type Factory struct {
	registry *domain.Registry
	genID    *snowflake.Node
	clock    clock.Clock
}

func NewFactory(registry *domain.Registry, genID *snowflake.Node, clk clock.Clock) *Factory {
	return &Factory{
		registry: registry,
		genID:    genID,
		clock:    clk,
	}
}

// CreatePaymentTokenForUser builds the token for record. The owning method
// must be reusable.
func (f *Factory) CreatePaymentTokenForUser(ctx context.Context, userID string, record domain.PaymentRecord) (domain.Token, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrInvalidUser
	}

	method, ok := f.registry.Get(record.Type.MethodID())
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPaymentMethod, record.Type)
	}
	if !method.Reusable {
		return nil, fmt.Errorf("%w: %s is not reusable", domain.ErrUnsupportedOperation, method.ID)
	}
	if strings.TrimSpace(record.ID) == "" {
		return nil, fmt.Errorf("%w: missing id", domain.ErrInvalidPaymentRecord)
	}

	base := domain.TokenBase{
		ID:               f.genID.Generate(),
		UserID:           userID,
		MethodID:         method.ID,
		ProcessorTokenID: record.ID,
		CreatedAt:        f.clock.Now(ctx),
	}

	switch record.Type {
	case domain.RecordTypeCard:
		return cardToken(base, record)
	case domain.RecordTypeLink:
		if record.Link == nil {
			return nil, missingDetails(record.Type)
		}
		return &domain.RedirectIdentityToken{TokenBase: base, Email: record.Link.Email}, nil
	case domain.RecordTypeCashApp:
		if record.CashApp == nil {
			return nil, missingDetails(record.Type)
		}
		return &domain.WalletToken{TokenBase: base, Handle: record.CashApp.Cashtag}, nil
	case domain.RecordTypeSepaDebit,
		domain.RecordTypeBancontact,
		domain.RecordTypeIdeal,
		domain.RecordTypeSofort,
		domain.RecordTypeUSBankAccount,
		domain.RecordTypeBacsDebit,
		domain.RecordTypeAUBecsDebit:
		return bankDebitToken(base, record)
	}

	return nil, fmt.Errorf("%w: no token shape for %q", domain.ErrUnsupportedOperation, record.Type)
}

func cardToken(base domain.TokenBase, record domain.PaymentRecord) (domain.Token, error) {
	card := record.Card
	if card == nil {
		return nil, missingDetails(record.Type)
	}
	return &domain.CardToken{
		TokenBase: base,
		Last4:     card.Last4,
		Brand:     ResolveCardBrand(*card),
		ExpMonth:  card.ExpMonth,
		ExpYear:   card.ExpYear,
	}, nil
}

// ResolveCardBrand prefers the co-badged display brand, then the customer's
// preferred network, then the raw brand.
func ResolveCardBrand(card domain.CardDetails) string {
	if brand := strings.TrimSpace(card.DisplayBrand); brand != "" {
		return brand
	}
	if card.Networks != nil {
		if preferred := strings.TrimSpace(card.Networks.Preferred); preferred != "" {
			return preferred
		}
	}
	return card.Brand
}

func bankDebitToken(base domain.TokenBase, record domain.PaymentRecord) (domain.Token, error) {
	details := bankDetails(record)
	if details == nil {
		return nil, missingDetails(record.Type)
	}
	// Redirect methods are charged later through the SEPA mandate the
	// processor generated for them.
	if record.GeneratedSepaDebit != "" {
		base.ProcessorTokenID = record.GeneratedSepaDebit
	}
	return &domain.BankDebitToken{TokenBase: base, Last4: details.Last4}, nil
}

func bankDetails(record domain.PaymentRecord) *domain.BankDebitDetails {
	switch record.Type {
	case domain.RecordTypeUSBankAccount:
		return record.USBankAccount
	case domain.RecordTypeBacsDebit:
		return record.BacsDebit
	case domain.RecordTypeAUBecsDebit:
		return record.AUBecsDebit
	default:
		return record.SepaDebit
	}
}

func missingDetails(t domain.RecordType) error {
	return fmt.Errorf("%w: missing %s details", domain.ErrInvalidPaymentRecord, t)
}
