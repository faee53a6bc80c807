package users

import (
	"context"
	"fmt"

	"github.com/daterly/members-api/internal/assetstore"
	"github.com/daterly/members-api/internal/domain"
	"github.com/daterly/members-api/internal/infrastructure/cache"
	"github.com/daterly/members-api/internal/pagination"
	"github.com/daterly/members-api/internal/repository"
)

type UserUseCase struct {
	userRepo    repository.UserRepository
	uowFactory  repository.UnitOfWorkFactory
	assets      assetstore.Store
	genderCache *cache.GenderCache
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	uowFactory repository.UnitOfWorkFactory,
	assets assetstore.Store,
	genderCache *cache.GenderCache,
) *UserUseCase {
	return &UserUseCase{
		userRepo:    userRepo,
		uowFactory:  uowFactory,
		assets:      assets,
		genderCache: genderCache,
	}
}

// MemberUpdateRequest carries a partial profile update. Only non-nil fields
// are applied to the profile.
type MemberUpdateRequest struct {
	KnownAs      *string `json:"known_as" binding:"omitempty,min=2,max=100"`
	Introduction *string `json:"introduction" binding:"omitempty,max=500"`
	LookingFor   *string `json:"looking_for" binding:"omitempty,max=500"`
	Interests    *string `json:"interests" binding:"omitempty,max=500"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	Country      *string `json:"country" binding:"omitempty,max=100"`
}

func (r *MemberUpdateRequest) isEmpty() bool {
	return r.KnownAs == nil && r.Introduction == nil && r.LookingFor == nil &&
		r.Interests == nil && r.City == nil && r.Country == nil
}

// ListMembers returns one page of the member directory. When the caller did
// not pick a gender filter it defaults to the opposite of their own; callers
// whose profile gender is neither male nor female get an unfiltered listing.
// The caller never appears in their own results.
func (uc *UserUseCase) ListMembers(ctx context.Context, currentUsername string, params domain.UserParams) (*pagination.PagedResult[domain.MemberView], error) {
	params.CurrentUsername = currentUsername

	if params.Gender == "" {
		gender, err := uc.callerGender(ctx, currentUsername)
		if err != nil {
			return nil, err
		}
		switch gender {
		case domain.GenderMale:
			params.Gender = domain.GenderFemale
		case domain.GenderFemale:
			params.Gender = domain.GenderMale
		}
	}

	return uc.userRepo.GetMembers(ctx, params)
}

// GetMember returns the directory projection for one member.
func (uc *UserUseCase) GetMember(ctx context.Context, username string) (*domain.MemberView, error) {
	return uc.userRepo.GetMember(ctx, username)
}

// UpdateProfile applies the non-nil fields of req to the caller's profile.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, currentUsername string, req *MemberUpdateRequest) error {
	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	defer uow.Rollback()

	user, err := uow.Users().GetUserByUsername(ctx, currentUsername)
	if err != nil {
		return err
	}

	if !req.isEmpty() {
		applyUpdate(user, req)
		if err := uow.Users().UpdateUser(ctx, user); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}

	// An empty patch buffers nothing; there is nothing to commit.
	if !uow.HasChanges() {
		return nil
	}

	return uow.Complete(ctx)
}

func applyUpdate(user *domain.User, req *MemberUpdateRequest) {
	if req.KnownAs != nil {
		user.KnownAs = req.KnownAs
	}
	if req.Introduction != nil {
		user.Introduction = req.Introduction
	}
	if req.LookingFor != nil {
		user.LookingFor = req.LookingFor
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}
	if req.City != nil {
		user.City = req.City
	}
	if req.Country != nil {
		user.Country = req.Country
	}
}

// AddPhoto uploads the content to the asset store and records the new photo.
// The first photo of a user becomes the main photo. A commit failure after a
// successful upload leaves an orphaned remote asset; that risk is accepted
// and left to an out-of-band cleanup.
func (uc *UserUseCase) AddPhoto(ctx context.Context, currentUsername string, content []byte, contentType string) (*domain.Photo, error) {
	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	defer uow.Rollback()

	user, err := uow.Users().GetUserByUsername(ctx, currentUsername)
	if err != nil {
		return nil, err
	}

	asset, err := uc.assets.Upload(ctx, content, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAssetStore, err)
	}

	photo := &domain.Photo{
		URL:     asset.URL,
		AssetID: &asset.AssetID,
		IsMain:  len(user.Photos) == 0,
	}

	if err := uow.Users().AddPhoto(ctx, user.ID, photo); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	if err := uow.Complete(ctx); err != nil {
		return nil, err
	}

	return photo, nil
}

// SetMainPhoto makes the target photo the caller's main photo. The demotion
// of the previous main and the promotion of the target commit together or
// not at all.
func (uc *UserUseCase) SetMainPhoto(ctx context.Context, currentUsername string, photoID int) error {
	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	defer uow.Rollback()

	user, err := uow.Users().GetUserByUsername(ctx, currentUsername)
	if err != nil {
		return err
	}

	photo := user.PhotoByID(photoID)
	if photo == nil {
		return domain.ErrPhotoNotFound
	}
	if photo.IsMain {
		return domain.ErrAlreadyMain
	}

	if current := user.MainPhoto(); current != nil {
		if err := uow.Users().SetPhotoMain(ctx, current.ID, false); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
	}
	if err := uow.Users().SetPhotoMain(ctx, photoID, true); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	return uow.Complete(ctx)
}

// DeletePhoto removes a non-main photo. The remote asset is removed first;
// if that fails nothing local changes.
func (uc *UserUseCase) DeletePhoto(ctx context.Context, currentUsername string, photoID int) error {
	uow, err := uc.uowFactory.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	defer uow.Rollback()

	user, err := uow.Users().GetUserByUsername(ctx, currentUsername)
	if err != nil {
		return err
	}

	photo := user.PhotoByID(photoID)
	if photo == nil {
		return domain.ErrPhotoNotFound
	}
	if photo.IsMain {
		return domain.ErrMainPhotoDelete
	}

	// Legacy photos have no remote asset to remove.
	if photo.AssetID != nil {
		if err := uc.assets.Remove(ctx, *photo.AssetID); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrAssetStore, err)
		}
	}

	if err := uow.Users().DeletePhoto(ctx, photoID); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	return uow.Complete(ctx)
}

func (uc *UserUseCase) callerGender(ctx context.Context, username string) (string, error) {
	if gender, ok := uc.genderCache.Get(ctx, username); ok {
		return gender, nil
	}
	gender, err := uc.userRepo.GetGender(ctx, username)
	if err != nil {
		return "", err
	}
	uc.genderCache.Set(ctx, username, gender)
	return gender, nil
}
