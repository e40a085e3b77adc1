package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/spaceminer/spaceminer-server/internal/domain"
	"github.com/spaceminer/spaceminer-server/internal/logger"
	"github.com/spaceminer/spaceminer-server/internal/repository"
)

// Service defines user operations keyed by Telegram identity
type Service interface {
	// Register creates the user or refreshes username and last login
	Register(ctx context.Context, telegramID int64, username string) (*domain.User, error)
	// GetByTelegramID returns domain.ErrUserNotFound for unknown accounts
	GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)
	// ResolveUserID maps a Telegram id to the internal user id
	ResolveUserID(ctx context.Context, telegramID int64) (string, error)
	// GetProfile reads the current balance and inventory, bypassing the cache
	GetProfile(ctx context.Context, telegramID int64) (*domain.Profile, error)
	CacheStats() CacheStats
}

type service struct {
	repo      repository.User
	userCache *userCache // Telegram id -> user; balances are never served from here
}

// NewService creates a new user service
func NewService(repo repository.User, cacheConfig CacheConfig) Service {
	return &service{
		repo:      repo,
		userCache: newUserCache(cacheConfig),
	}
}

func (s *service) Register(ctx context.Context, telegramID int64, username string) (*domain.User, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterUserCalled, "telegramID", telegramID, "username", username)

	if telegramID <= 0 {
		return nil, fmt.Errorf("%w: telegram id must be positive", domain.ErrInvalidInput)
	}

	user := &domain.User{TelegramID: telegramID, Username: strings.TrimSpace(username)}
	if err := s.repo.UpsertUser(ctx, user); err != nil {
		log.Error(LogErrFailedToUpsertUser, "error", err, "telegramID", telegramID)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.userCache.Set(user)

	log.Info(LogMsgUserRegistered, "userID", user.ID, "username", user.Username)
	return user, nil
}

func (s *service) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	if user, ok := s.userCache.Get(telegramID); ok {
		return user, nil
	}

	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		logger.FromContext(ctx).Error(LogErrFailedToGetUser, "error", err, "telegramID", telegramID)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	s.userCache.Set(user)
	return user, nil
}

func (s *service) ResolveUserID(ctx context.Context, telegramID int64) (string, error) {
	user, err := s.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (s *service) GetProfile(ctx context.Context, telegramID int64) (*domain.Profile, error) {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	inventory, err := s.repo.GetInventory(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	if inventory == nil {
		inventory = []domain.InventoryEntry{}
	}

	return &domain.Profile{User: *user, Inventory: inventory}, nil
}

func (s *service) CacheStats() CacheStats {
	return s.userCache.GetStats()
}
