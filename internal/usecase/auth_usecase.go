package usecase

import (
	"context"

	"masar-backend/internal/domain"
	"masar-backend/pkg/apperror"
	"masar-backend/pkg/logger"
)

const defaultRole = "candidate"

var allowedRoles = map[string]bool{
	"candidate": true,
	"recruiter": true,
}

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// EnsureUserExists shadows the Supabase auth user on first authenticated
// request. Existing rows win; the JWT never overwrites a stored role.
func (u *authUsecase) EnsureUserExists(ctx context.Context, user *domain.User) error {
	existing, err := u.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		user.Role = existing.Role
		return nil
	}

	if !allowedRoles[user.Role] {
		user.Role = defaultRole
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return err
	}
	logger.Log.Info("user shadowed", "user_id", user.ID, "role", user.Role)
	return nil
}

func (u *authUsecase) AssignRole(ctx context.Context, userID string, role string) error {
	if !allowedRoles[role] {
		return apperror.BadRequest("Unknown role")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NotFound("User not found")
	}

	user.Role = role
	return u.userRepo.Update(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}
