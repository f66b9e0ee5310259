package repository

import (
	"context"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
)

// UserRepository is the persistence port for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByNationalID(ctx context.Context, nationalID string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
