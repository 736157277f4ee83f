package service

import (
	"github.com/hywel/accountd/internal/auth"
	"github.com/hywel/accountd/internal/cache"
	"github.com/hywel/accountd/internal/config"
	"github.com/hywel/accountd/internal/repository"
)

type Services struct {
	Auth *AuthService
	User *UserService
}

func NewServices(repos *repository.Repositories, queryCache *cache.Cache, cfg *config.Config) *Services {
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	return &Services{
		Auth: NewAuthService(repos.User, repos.Device, tokens),
		User: NewUserService(repos.User, queryCache),
	}
}
