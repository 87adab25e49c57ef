package services

import (
	"context"
	"fmt"
	"log"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/config"
	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
	"github.com/adsboard-api/repositories"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UserService handles business logic for user profiles
type UserService struct {
	users  repositories.UserRepository
	engine *authz.Engine
}

// NewUserService creates a new user service instance
func NewUserService(users repositories.UserRepository, engine *authz.Engine) *UserService {
	return &UserService{users: users, engine: engine}
}

// pageNumber treats missing or invalid page numbers as the first page
func pageNumber(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// List returns users ordered by email
func (s *UserService) List(ctx context.Context, p *authz.Principal, page int) (*dto.PageResponse[dto.UserResponse], error) {
	if err := s.engine.Gate(p, authz.KindUser, authz.ActionList).Err(); err != nil {
		return nil, err
	}

	page = pageNumber(page)
	users, total, err := s.users.List(ctx, repositories.Page{Number: page, Size: config.DefaultPageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := dto.NewPageResponse(users, total, page, config.DefaultPageSize, dto.NewUserResponse)
	return &resp, nil
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, p *authz.Principal, id uint) (*models.User, error) {
	if err := s.engine.Gate(p, authz.KindUser, authz.ActionRetrieve).Err(); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// Me returns the caller's own profile
func (s *UserService) Me(ctx context.Context, p *authz.Principal) (*models.User, error) {
	if err := s.engine.Gate(p, authz.KindUser, authz.ActionMine).Err(); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, p.ID)
}

// Update applies a partial profile update to user id
func (s *UserService) Update(ctx context.Context, p *authz.Principal, id uint, req dto.UpdateUserRequest) (*models.User, error) {
	if err := s.engine.Gate(p, authz.KindUser, authz.ActionUpdate).Err(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Authorize(p, authz.KindUser, authz.ActionUpdate, authz.OwnerOf(user)); err != nil {
		return nil, err
	}

	req.FirstName = trimmed(req.FirstName)
	req.LastName = trimmed(req.LastName)
	err = validation.ValidateStruct(&req,
		validation.Field(&req.FirstName, nameRules...),
		validation.Field(&req.LastName, nameRules...),
		validation.Field(&req.Phone, notBlank, phoneFormat),
	)
	if err := domain.FromValidation(err); err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Image != nil {
		user.Image = req.Image
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes a user and everything they authored. Admin only.
func (s *UserService) Delete(ctx context.Context, p *authz.Principal, id uint) error {
	if err := s.engine.Gate(p, authz.KindUser, authz.ActionDelete).Err(); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("🗑️ User %d deleted by admin %d", id, p.ID)
	return nil
}

// Authorize runs the resource-independent part of the decision for action
// on users. Handlers call it before reading the request body.
func (s *UserService) Authorize(p *authz.Principal, action authz.Action) error {
	return s.engine.Gate(p, authz.KindUser, action).Err()
}

// SetRole changes a user's role. Admin only.
func (s *UserService) SetRole(ctx context.Context, p *authz.Principal, id uint, role models.Role) (*models.User, error) {
	if err := s.engine.Gate(p, authz.KindUser, authz.ActionSetRole).Err(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, domain.NewValidationError("role", fmt.Sprintf("%q is not a valid choice.", role))
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	log.Printf("👤 User %d role set to %s by admin %d", id, role, p.ID)
	return s.users.FindByID(ctx, id)
}
