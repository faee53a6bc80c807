package repository

import (
	"context"

	"github.com/daterly/members-api/internal/domain"
	"github.com/daterly/members-api/internal/pagination"
)

// UserRepository reads and writes user and photo records. Read methods may
// run against the plain connection pool; the write methods must only be
// reached through a UnitOfWork so they share its transaction.
type UserRepository interface {
	GetGender(ctx context.Context, username string) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetMember(ctx context.Context, username string) (*domain.MemberView, error)
	GetMembers(ctx context.Context, params domain.UserParams) (*pagination.PagedResult[domain.MemberView], error)

	UpdateUser(ctx context.Context, user *domain.User) error
	AddPhoto(ctx context.Context, userID int, photo *domain.Photo) error
	SetPhotoMain(ctx context.Context, photoID int, isMain bool) error
	DeletePhoto(ctx context.Context, photoID int) error
}
