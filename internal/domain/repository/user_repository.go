package repository

import (
	"context"

	"github.com/jhoicas/dropforge-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Devuelve (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	// Create persiste el usuario; devuelve domain.ErrDuplicatePhone si el teléfono ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	// Update sobrescribe nombre, teléfono, hash y rol; domain.ErrDuplicatePhone ante colisión.
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	DeleteByPhone(ctx context.Context, phone string) error
}
