package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TokenRecord is the persisted form of a Token.
type TokenRecord struct {
	ID               snowflake.ID   `json:"id" gorm:"primaryKey"`
	UserID           string         `json:"user_id" gorm:"type:varchar(64);not null;index"`
	MethodID         MethodID       `json:"method_id" gorm:"type:varchar(50);not null"`
	Kind             TokenKind      `json:"kind" gorm:"type:varchar(32);not null"`
	ProcessorTokenID string         `json:"processor_token_id" gorm:"type:varchar(255);not null"`
	Details          datatypes.JSON `json:"details" gorm:"not null"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null"`
}

func (TokenRecord) TableName() string { return "payment_tokens" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, token Token) error
	ListByUser(ctx context.Context, db *gorm.DB, userID string) ([]Token, error)
}
