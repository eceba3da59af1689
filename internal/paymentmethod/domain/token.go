package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type TokenKind string

const (
	TokenKindCard             TokenKind = "card"
	TokenKindBankDebit        TokenKind = "bank_debit"
	TokenKindRedirectIdentity TokenKind = "redirect_identity"
	TokenKindWallet           TokenKind = "wallet"
)

// TokenBase holds the fields shared by every stored payment token.
type TokenBase struct {
	ID               snowflake.ID `json:"id"`
	UserID           string       `json:"user_id"`
	MethodID         MethodID     `json:"method_id"`
	ProcessorTokenID string       `json:"processor_token_id"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Token is a stored payment instrument. The set of implementations is closed.
type Token interface {
	Base() TokenBase
	Kind() TokenKind
	isToken()
}

type CardToken struct {
	TokenBase
	Last4    string `json:"last4"`
	Brand    string `json:"brand"`
	ExpMonth int    `json:"exp_month,omitempty"`
	ExpYear  int    `json:"exp_year,omitempty"`
}

type BankDebitToken struct {
	TokenBase
	Last4 string `json:"last4"`
}

type RedirectIdentityToken struct {
	TokenBase
	Email string `json:"email"`
}

type WalletToken struct {
	TokenBase
	Handle string `json:"handle"`
}

func (t *CardToken) Base() TokenBase             { return t.TokenBase }
func (t *BankDebitToken) Base() TokenBase        { return t.TokenBase }
func (t *RedirectIdentityToken) Base() TokenBase { return t.TokenBase }
func (t *WalletToken) Base() TokenBase           { return t.TokenBase }

func (*CardToken) Kind() TokenKind             { return TokenKindCard }
func (*BankDebitToken) Kind() TokenKind        { return TokenKindBankDebit }
func (*RedirectIdentityToken) Kind() TokenKind { return TokenKindRedirectIdentity }
func (*WalletToken) Kind() TokenKind           { return TokenKindWallet }

func (*CardToken) isToken()             {}
func (*BankDebitToken) isToken()        {}
func (*RedirectIdentityToken) isToken() {}
func (*WalletToken) isToken()           {}

// RecordType is the declared type of a completed-payment record.
type RecordType string

const (
	RecordTypeCard          RecordType = "card"
	RecordTypeLink          RecordType = "link"
	RecordTypeCashApp       RecordType = "cashapp"
	RecordTypeSepaDebit     RecordType = "sepa_debit"
	RecordTypeBancontact    RecordType = "bancontact"
	RecordTypeIdeal         RecordType = "ideal"
	RecordTypeSofort        RecordType = "sofort"
	RecordTypeUSBankAccount RecordType = "us_bank_account"
	RecordTypeBacsDebit     RecordType = "bacs_debit"
	RecordTypeAUBecsDebit   RecordType = "au_becs_debit"
)

// MethodID maps the record type onto the method that produced it.
func (t RecordType) MethodID() MethodID { return MethodID(t) }

type CardNetworks struct {
	Available []string `json:"available,omitempty"`
	Preferred string   `json:"preferred,omitempty"`
}

type CardDetails struct {
	Brand        string        `json:"brand"`
	DisplayBrand string        `json:"display_brand,omitempty"`
	Last4        string        `json:"last4"`
	ExpMonth     int           `json:"exp_month"`
	ExpYear      int           `json:"exp_year"`
	Networks     *CardNetworks `json:"networks,omitempty"`
}

type BankDebitDetails struct {
	Last4    string `json:"last4"`
	BankCode string `json:"bank_code,omitempty"`
	Country  string `json:"country,omitempty"`
}

type LinkDetails struct {
	Email string `json:"email"`
}

type CashAppDetails struct {
	Cashtag string `json:"cashtag"`
	BuyerID string `json:"buyer_id,omitempty"`
}

// PaymentRecord is the processor's payment method object attached to a
// completed payment.
type PaymentRecord struct {
	ID            string            `json:"id"`
	Type          RecordType        `json:"type"`
	Card          *CardDetails      `json:"card,omitempty"`
	SepaDebit     *BankDebitDetails `json:"sepa_debit,omitempty"`
	USBankAccount *BankDebitDetails `json:"us_bank_account,omitempty"`
	BacsDebit     *BankDebitDetails `json:"bacs_debit,omitempty"`
	AUBecsDebit   *BankDebitDetails `json:"au_becs_debit,omitempty"`
	Link          *LinkDetails      `json:"link,omitempty"`
	CashApp       *CashAppDetails   `json:"cashapp,omitempty"`

	// GeneratedSepaDebit is the SEPA payment method the processor created for
	// a redirect method settled by direct debit (bancontact, ideal, sofort).
	GeneratedSepaDebit string `json:"generated_sepa_debit,omitempty"`
}
