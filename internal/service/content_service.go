package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ridereg/internal/auth"
	"ridereg/internal/authz"
	"ridereg/internal/cache"
	apperrors "ridereg/internal/errors"
	"ridereg/internal/model"
	"ridereg/internal/repository"
)

const contentCacheTTL = 60 * time.Second

// ContentService is the shared service over one content collection. Public
// list reads go through the redis cache; any admin write invalidates it.
type ContentService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, claims *auth.Claims, item *T) (*T, error)
	// Update loads the item, runs apply to merge changes into it, and saves.
	// An apply error aborts the save.
	Update(ctx context.Context, claims *auth.Claims, id uuid.UUID, apply func(*T) error) (*T, error)
	Delete(ctx context.Context, claims *auth.Claims, id uuid.UUID) error
}

type contentService[T any] struct {
	repo     repository.ContentRepository[T]
	policy   authz.Policy
	cache    *cache.Client
	cacheKey string
}

// NewContentService creates a service over one content collection. cacheKey
// names the collection's list cache entry.
func NewContentService[T any](repo repository.ContentRepository[T], policy authz.Policy, cacheClient *cache.Client, cacheKey string) ContentService[T] {
	return &contentService[T]{
		repo:     repo,
		policy:   policy,
		cache:    cacheClient,
		cacheKey: "content:" + cacheKey,
	}
}

func (s *contentService[T]) List(ctx context.Context) ([]T, error) {
	var cached []T
	if s.cache.GetJSON(ctx, s.cacheKey, &cached) {
		return cached, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey, items, contentCacheTTL)
	return items, nil
}

func (s *contentService[T]) Create(ctx context.Context, claims *auth.Claims, item *T) (*T, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	s.cache.Forget(ctx, s.cacheKey)
	return item, nil
}

func (s *contentService[T]) Update(ctx context.Context, claims *auth.Claims, id uuid.UUID, apply func(*T) error) (*T, error) {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	if err := apply(item); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	s.cache.Forget(ctx, s.cacheKey)
	return item, nil
}

func (s *contentService[T]) Delete(ctx context.Context, claims *auth.Claims, id uuid.UUID) error {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	s.cache.Forget(ctx, s.cacheKey)
	return nil
}

// SettingsService handles the event and route settings singletons.
type SettingsService interface {
	GetEvent(ctx context.Context) (*model.EventSettings, error)
	SaveEvent(ctx context.Context, claims *auth.Claims, settings *model.EventSettings) error
	GetLocation(ctx context.Context) (*model.LocationSettings, error)
	SaveLocation(ctx context.Context, claims *auth.Claims, settings *model.LocationSettings) error
}

type settingsService struct {
	repo   repository.SettingsRepository
	policy authz.Policy
	cache  *cache.Client
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository, policy authz.Policy, cacheClient *cache.Client) SettingsService {
	return &settingsService{repo: repo, policy: policy, cache: cacheClient}
}

func (s *settingsService) GetEvent(ctx context.Context) (*model.EventSettings, error) {
	var cached model.EventSettings
	if s.cache.GetJSON(ctx, "settings:event", &cached) {
		return &cached, nil
	}
	settings, err := s.repo.GetEvent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Unconfigured event reads as empty settings, not an error.
			return &model.EventSettings{}, nil
		}
		return nil, fmt.Errorf("get event settings: %w", err)
	}
	s.cache.SetJSON(ctx, "settings:event", settings, contentCacheTTL)
	return settings, nil
}

func (s *settingsService) SaveEvent(ctx context.Context, claims *auth.Claims, settings *model.EventSettings) error {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return err
	}
	if err := s.repo.SaveEvent(ctx, settings); err != nil {
		return fmt.Errorf("save event settings: %w", err)
	}
	s.cache.Forget(ctx, "settings:event")
	return nil
}

func (s *settingsService) GetLocation(ctx context.Context) (*model.LocationSettings, error) {
	var cached model.LocationSettings
	if s.cache.GetJSON(ctx, "settings:route", &cached) {
		return &cached, nil
	}
	settings, err := s.repo.GetLocation(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.LocationSettings{}, nil
		}
		return nil, fmt.Errorf("get location settings: %w", err)
	}
	s.cache.SetJSON(ctx, "settings:route", settings, contentCacheTTL)
	return settings, nil
}

func (s *settingsService) SaveLocation(ctx context.Context, claims *auth.Claims, settings *model.LocationSettings) error {
	if _, err := s.policy.Require(ctx, claims, model.RoleAdmin, model.RoleSuperadmin); err != nil {
		return err
	}
	if err := s.repo.SaveLocation(ctx, settings); err != nil {
		return fmt.Errorf("save location settings: %w", err)
	}
	s.cache.Forget(ctx, "settings:route")
	return nil
}
