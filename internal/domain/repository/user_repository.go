package repository

import (
	"context"

	"rental-service/internal/domain/entity"
)

// UserRepository defines the interface for account storage operations
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
}
