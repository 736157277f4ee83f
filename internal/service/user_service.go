package service

import (
	"context"
	"errors"

	"github.com/hywel/accountd/internal/auth"
	"github.com/hywel/accountd/internal/cache"
	"github.com/hywel/accountd/internal/domain"
	"github.com/hywel/accountd/internal/repository"
	"gorm.io/gorm"
)

// MaxQueryResults caps name searches; the table is otherwise unbounded.
const MaxQueryResults = 100

const queryCachePrefix = "accountd:users:q:"

type UserService struct {
	userRepo repository.UserRepository
	cache    *cache.Cache
}

func NewUserService(userRepo repository.UserRepository, queryCache *cache.Cache) *UserService {
	return &UserService{userRepo: userRepo, cache: queryCache}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// Create registers a new user. The pre-check answers the common duplicate
// case early; two creates racing past it resolve at the unique index, which
// the repository reports as domain.ErrEmailExists.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Status:       domain.StatusNormal,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Stale query results must not survive a write.
	_ = s.cache.InvalidatePrefix(ctx, queryCachePrefix)

	return user, nil
}

// Query returns users whose name contains name, capped at MaxQueryResults.
// Results are served from the cache when redis is configured.
func (s *UserService) Query(ctx context.Context, name string) ([]*domain.User, error) {
	key := queryCachePrefix + name

	var cached []*domain.User
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	users, err := s.userRepo.SearchByName(ctx, name, MaxQueryResults)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, key, users)
	return users, nil
}

// Delete removes the user and all its devices. Reports
// domain.ErrUserNotFound when id does not exist.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.cache.InvalidatePrefix(ctx, queryCachePrefix)
	return nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
