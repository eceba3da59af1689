package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTokenTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&domain.TokenRecord{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestInsertAndListByUser(t *testing.T) {
	db := setupTokenTestDB(t)
	node, _ := snowflake.NewNode(1)
	r := Provide()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	base := func(userID string, method domain.MethodID, offset time.Duration) domain.TokenBase {
		return domain.TokenBase{
			ID:               node.Generate(),
			UserID:           userID,
			MethodID:         method,
			ProcessorTokenID: "pm_mock_payment_method_id",
			CreatedAt:        now.Add(offset),
		}
	}

	tokens := []domain.Token{
		&domain.CardToken{TokenBase: base("1", domain.MethodCard, 0), Last4: "4242", Brand: "cartes_bancaires", ExpMonth: 12, ExpYear: 2030},
		&domain.BankDebitToken{TokenBase: base("1", domain.MethodSepaDebit, time.Minute), Last4: "3000"},
		&domain.RedirectIdentityToken{TokenBase: base("1", domain.MethodLink, 2*time.Minute), Email: "test@test.com"},
		&domain.WalletToken{TokenBase: base("1", domain.MethodCashApp, 3*time.Minute), Handle: "$test_cashtag"},
		&domain.CardToken{TokenBase: base("2", domain.MethodCard, 0), Last4: "1111", Brand: "visa"},
	}
	for _, tok := range tokens {
		require.NoError(t, r.Insert(ctx, db, tok))
	}

	got, err := r.ListByUser(ctx, db, "1")
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Newest first
	wallet, ok := got[0].(*domain.WalletToken)
	require.True(t, ok, "got %T", got[0])
	assert.Equal(t, "$test_cashtag", wallet.Handle)

	link, ok := got[1].(*domain.RedirectIdentityToken)
	require.True(t, ok)
	assert.Equal(t, "test@test.com", link.Email)

	bank, ok := got[2].(*domain.BankDebitToken)
	require.True(t, ok)
	assert.Equal(t, "3000", bank.Last4)

	card, ok := got[3].(*domain.CardToken)
	require.True(t, ok)
	assert.Equal(t, tokens[0].Base().ID, card.ID)
	assert.Equal(t, "cartes_bancaires", card.Brand)
	assert.Equal(t, 2030, card.ExpYear)
	assert.True(t, now.Equal(card.CreatedAt))

	other, err := r.ListByUser(ctx, db, "2")
	require.NoError(t, err)
	assert.Len(t, other, 1)

	none, err := r.ListByUser(ctx, db, "3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFromRecord_UnknownKind(t *testing.T) {
	_, err := fromRecord(domain.TokenRecord{ID: 1, Kind: "sticker", Details: []byte(`{}`)})
	assert.Error(t, err)
}

func TestToRecord(t *testing.T) {
	tok := &domain.WalletToken{
		TokenBase: domain.TokenBase{ID: 7, UserID: "9", MethodID: domain.MethodCashApp, ProcessorTokenID: "pm_1"},
		Handle:    "$cash",
	}
	record, err := toRecord(tok)
	require.NoError(t, err)

	assert.Equal(t, snowflake.ID(7), record.ID)
	assert.Equal(t, domain.TokenKindWallet, record.Kind)
	assert.Equal(t, "pm_1", record.ProcessorTokenID)
	assert.JSONEq(t, `"$cash"`, mustField(t, record.Details, "handle"))
}

func mustField(t *testing.T, raw []byte, field string) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	b, err := json.Marshal(m[field])
	require.NoError(t, err)
	return string(b)
}
