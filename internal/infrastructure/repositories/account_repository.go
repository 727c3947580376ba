package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sibe/identity/domain"
)

// DBAccount is the database model for Account.
type DBAccount struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:255"`
	PasswordHash string     `gorm:"column:password"`
	FirstName    string     `gorm:"size:128"`
	LastName     string     `gorm:"size:128"`
	State        string     `gorm:"index;size:16"`
	RoleID       uint       `gorm:"index"`
	Role         *DBRole    `gorm:"foreignKey:RoleID"`
	Profile      *DBProfile `gorm:"foreignKey:AccountID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DBAccount) TableName() string { return "accounts" }

// DBProfile is the database model for Profile, one row per account.
type DBProfile struct {
	ID        uint   `gorm:"primaryKey"`
	AccountID uint   `gorm:"uniqueIndex"`
	Phone     string `gorm:"size:32"`
	Address   string `gorm:"size:255"`
	City      string `gorm:"size:128"`
	Country   string `gorm:"size:128"`
	Locale    string `gorm:"size:16"`
}

func (DBProfile) TableName() string { return "profiles" }

// DBLoginAttempt is the append-only audit model. Rows are only ever
// inserted by the application.
type DBLoginAttempt struct {
	ID        uint   `gorm:"primaryKey"`
	AccountID uint   `gorm:"index"`
	IP        string `gorm:"size:64"`
	Browser   string `gorm:"size:64"`
	OS        string `gorm:"size:64"`
	Device    string `gorm:"size:64"`
	Success   bool
	CreatedAt time.Time `gorm:"index"`
}

func (DBLoginAttempt) TableName() string { return "login_attempts" }

// AccountRepositoryImpl implements domain.AccountRepository using GORM.
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository. The account and its empty
// profile are written in one transaction.
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	dbAccount := accountToDB(account)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbAccount).Error; err != nil {
			return err
		}
		profile := &DBProfile{AccountID: dbAccount.ID}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		dbAccount.Profile = profile
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return err
	}

	account.ID = dbAccount.ID
	account.CreatedAt = dbAccount.CreatedAt
	account.UpdatedAt = dbAccount.UpdatedAt
	account.Profile = profileToDomain(dbAccount.Profile)
	return nil
}

// FindByEmail implements domain.AccountRepository.
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).
		Preload("Role").Preload("Profile").
		Where("email = ?", email).
		First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return accountToDomain(&dbAccount), nil
}

// FindByID implements domain.AccountRepository.
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).
		Preload("Role").Preload("Profile").
		Where("id = ?", id).
		First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return accountToDomain(&dbAccount), nil
}

// UpdatePasswordHash implements domain.AccountRepository.
func (r *AccountRepositoryImpl) UpdatePasswordHash(ctx context.Context, accountID uint, newHash string) error {
	result := r.db.WithContext(ctx).
		Model(&DBAccount{}).
		Where("id = ?", accountID).
		Update("password", newHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// SetState implements domain.AccountRepository.
func (r *AccountRepositoryImpl) SetState(ctx context.Context, accountID uint, state domain.AccountState) error {
	result := r.db.WithContext(ctx).
		Model(&DBAccount{}).
		Where("id = ?", accountID).
		Update("state", string(state))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// RecordLoginAttempt implements domain.AccountRepository.
func (r *AccountRepositoryImpl) RecordLoginAttempt(ctx context.Context, accountID uint, success bool, meta domain.RequestMeta) error {
	attempt := &DBLoginAttempt{
		AccountID: accountID,
		IP:        meta.IP,
		Browser:   meta.Browser,
		OS:        meta.OS,
		Device:    meta.Device,
		Success:   success,
	}
	return r.db.WithContext(ctx).Create(attempt).Error
}

// ListLoginAttempts implements domain.AccountRepository, newest first.
func (r *AccountRepositoryImpl) ListLoginAttempts(ctx context.Context, accountID uint, limit int) ([]domain.LoginAttempt, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []DBLoginAttempt
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	attempts := make([]domain.LoginAttempt, 0, len(rows))
	for _, row := range rows {
		attempts = append(attempts, domain.LoginAttempt{
			ID:        row.ID,
			AccountID: row.AccountID,
			IP:        row.IP,
			Browser:   row.Browser,
			OS:        row.OS,
			Device:    row.Device,
			Success:   row.Success,
			CreatedAt: row.CreatedAt,
		})
	}
	return attempts, nil
}

func accountToDB(account *domain.Account) *DBAccount {
	return &DBAccount{
		ID:           account.ID,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		State:        string(account.State),
		RoleID:       account.RoleID,
	}
}

func accountToDomain(dbAccount *DBAccount) *domain.Account {
	account := &domain.Account{
		ID:           dbAccount.ID,
		Email:        dbAccount.Email,
		PasswordHash: dbAccount.PasswordHash,
		FirstName:    dbAccount.FirstName,
		LastName:     dbAccount.LastName,
		State:        domain.AccountState(dbAccount.State),
		RoleID:       dbAccount.RoleID,
		CreatedAt:    dbAccount.CreatedAt,
		UpdatedAt:    dbAccount.UpdatedAt,
	}
	if dbAccount.Role != nil {
		account.Role = &domain.Role{
			ID:          dbAccount.Role.ID,
			Name:        domain.RoleName(dbAccount.Role.Name),
			Description: dbAccount.Role.Description,
		}
	}
	account.Profile = profileToDomain(dbAccount.Profile)
	return account
}

func profileToDomain(p *DBProfile) *domain.Profile {
	if p == nil {
		return nil
	}
	return &domain.Profile{
		ID:        p.ID,
		AccountID: p.AccountID,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		Country:   p.Country,
		Locale:    p.Locale,
	}
}
