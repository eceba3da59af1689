package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/railzwaylabs/paygate/internal/paymentmethod/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, token domain.Token) error {
	record, err := toRecord(token)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Token, error) {
	var records []domain.TokenRecord
	if err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	tokens := make([]domain.Token, 0, len(records))
	for _, record := range records {
		token, err := fromRecord(record)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

func toRecord(token domain.Token) (*domain.TokenRecord, error) {
	details, err := json.Marshal(token)
	if err != nil {
		return nil, err
	}
	base := token.Base()
	return &domain.TokenRecord{
		ID:               base.ID,
		UserID:           base.UserID,
		MethodID:         base.MethodID,
		Kind:             token.Kind(),
		ProcessorTokenID: base.ProcessorTokenID,
		Details:          datatypes.JSON(details),
		CreatedAt:        base.CreatedAt,
	}, nil
}

func fromRecord(record domain.TokenRecord) (domain.Token, error) {
	var token domain.Token
	switch record.Kind {
	case domain.TokenKindCard:
		token = &domain.CardToken{}
	case domain.TokenKindBankDebit:
		token = &domain.BankDebitToken{}
	case domain.TokenKindRedirectIdentity:
		token = &domain.RedirectIdentityToken{}
	case domain.TokenKindWallet:
		token = &domain.WalletToken{}
	default:
		return nil, fmt.Errorf("payment token %s: unknown kind %q", record.ID, record.Kind)
	}
	if err := json.Unmarshal(record.Details, token); err != nil {
		return nil, fmt.Errorf("payment token %s: %w", record.ID, err)
	}
	return token, nil
}
