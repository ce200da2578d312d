package repository

import (
	"context"

	"github.com/jhoicas/seller-dashboard/internal/domain/entity"
)

// UserRepository persistencia de cuentas de usuario del panel.
type UserRepository interface {
	// FindByEmail devuelve el usuario o domain.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
