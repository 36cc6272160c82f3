// Package admin covers the hotel's single back-office account: creating
// it, signing in, and the read-only reporting it is allowed to see.
package admin

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "xyzhotel/internal/errors"
	"xyzhotel/internal/models"
	"xyzhotel/internal/repositories"
	"xyzhotel/internal/services/ledger"
	"xyzhotel/internal/services/stock"
	"xyzhotel/internal/utils"
	cachekeys "xyzhotel/internal/utils/cache"
	"xyzhotel/internal/utils/validation"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted administrator password.
const MinPasswordLength = 8

// Config holds administration settings
type Config struct {
	JWTSecret        string
	TokenTTL         time.Duration
	OverviewCacheTTL time.Duration
	BcryptCost       int
	Now              func() time.Time
}

// Service defines the administration operations
type Service interface {
	CreateAdministrator(ctx context.Context, input CreateAdministratorInput) (*models.Administrator, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	ParseToken(token string) (*models.AdminClaims, error)

	Overview(ctx context.Context) (*Overview, error)
	Reconcile(ctx context.Context, customerID uint) (*ledger.Reconciliation, error)
}

type CreateAdministratorInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string                `json:"token"`
	ExpiresAt time.Time             `json:"expires_at"`
	Admin     *models.Administrator `json:"admin"`
}

type service struct {
	store  repositories.Store
	stock  stock.Service
	ledger ledger.Service
	cache  repositories.CacheRepository
	config Config
}

// NewService creates the administration service. cache is optional.
func NewService(store repositories.Store, stockSvc stock.Service, ledgerSvc ledger.Service, cache repositories.CacheRepository, config Config) Service {
	if store == nil {
		panic("store is required")
	}
	if stockSvc == nil {
		panic("stock service is required")
	}
	if ledgerSvc == nil {
		panic("ledger service is required")
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 12 * time.Hour
	}
	if config.OverviewCacheTTL <= 0 {
		config.OverviewCacheTTL = 30 * time.Second
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &service{
		store:  store,
		stock:  stockSvc,
		ledger: ledgerSvc,
		cache:  cache,
		config: config,
	}
}

func (s *service) CreateAdministrator(ctx context.Context, input CreateAdministratorInput) (*models.Administrator, error) {
	username := strings.TrimSpace(input.Username)
	email := validation.NormalizeEmail(input.Email)

	v := validation.New()
	v.Check(len(username) >= 3, "username", "must be at least 3 characters")
	v.Check(validation.IsEmail(email), "email", "invalid email format")
	v.Check(len(input.Password) >= MinPasswordLength, "password", "must be at least 8 characters")
	if !v.Valid() {
		return nil, apperrors.ErrInvalidInput.WithMessage("%s", v.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Administrator{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.store.Administrators().Create(ctx, admin); err != nil {
		return nil, err
	}

	log.Printf("administrator %q created", admin.Username)
	return admin, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	admin, err := s.store.Administrators().GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateAdminToken(admin, s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: s.config.Now().Add(s.config.TokenTTL),
		Admin:     admin,
	}, nil
}

func (s *service) ParseToken(token string) (*models.AdminClaims, error) {
	claims, err := utils.ParseAdminToken(token, s.config.JWTSecret)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials.WithMessage("invalid or expired token")
	}
	return claims, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	key := cachekeys.AdminOverviewKey()
	if s.cache != nil {
		var cached Overview
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("⚠️ overview cache read failed: %v", err)
		} else if found {
			return &cached, nil
		}
	}

	overview, err := s.buildOverview(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, key, overview, s.config.OverviewCacheTTL); err != nil {
			log.Printf("⚠️ overview cache write failed: %v", err)
		}
	}
	return overview, nil
}

func (s *service) Reconcile(ctx context.Context, customerID uint) (*ledger.Reconciliation, error) {
	rec, err := s.ledger.Reconcile(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !rec.Consistent {
		log.Printf("❌ wallet #%d out of balance: stored %s, ledger %s", rec.WalletID, rec.StoredBalance, rec.LedgerBalance)
	}
	return rec, nil
}
