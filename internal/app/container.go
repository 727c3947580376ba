package app

import (
	"gorm.io/gorm"

	"github.com/sibe/identity/domain"
	"github.com/sibe/identity/internal/config"
	"github.com/sibe/identity/internal/infrastructure/auth"
	"github.com/sibe/identity/internal/infrastructure/database"
	"github.com/sibe/identity/internal/infrastructure/repositories"
	"github.com/sibe/identity/internal/services"
)

// Container holds all dependencies of the identity service.
type Container struct {
	Config *config.Config

	DB *gorm.DB

	AccountRepo domain.AccountRepository
	RoleRepo    domain.RoleRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	AuthSvc     domain.AuthService
	AccountSvc  domain.AccountService
}

// NewContainer opens the database, migrates the schema, seeds the role
// table and wires every layer together.
func NewContainer(cfg *config.Config) (*Container, error) {
	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	if err := database.SeedRoles(db); err != nil {
		return nil, err
	}

	accountRepo := repositories.NewAccountRepository(db)
	roleRepo := repositories.NewRoleRepository(db)

	passwordSvc := auth.NewPasswordService(cfg.BcryptCost)
	tokenSvc := auth.NewJWTService(
		cfg.AccessSecret, cfg.AccessIssuer, cfg.AccessTTL,
		cfg.RefreshSecret, cfg.RefreshIssuer, cfg.RefreshTTL,
	)

	return &Container{
		Config:      cfg,
		DB:          db,
		AccountRepo: accountRepo,
		RoleRepo:    roleRepo,
		PasswordSvc: passwordSvc,
		TokenSvc:    tokenSvc,
		AuthSvc:     services.NewAuthService(accountRepo, roleRepo, passwordSvc, tokenSvc),
		AccountSvc:  services.NewAccountService(accountRepo, roleRepo),
	}, nil
}
