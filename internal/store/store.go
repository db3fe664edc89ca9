// Package store implements the data persistence layer for domain entities.
// It is the sole path to persisted state: every other component reaches the
// database only through the Store interface defined here.
//
// Two implementations are provided and behave identically from the caller's
// perspective:
//
//   - GormStore:   durable, backed by SQLite through GORM (pure Go driver).
//   - MemoryStore: volatile, in-process; used for tests and bootstrapping and
//     as the reference oracle for behavioral parity tests.
//
// Error semantics:
//   - Get* for a missing row returns ErrNotFound.
//   - List/GetBy* variants return an empty slice, never an error, when no
//     rows match.
//   - Create assigns the id and both timestamps and returns the stored row;
//     a unique-column collision (username, param_key, settings user_id)
//     returns ErrDuplicate.
//   - Update merges the supplied patch into the existing row, refreshes
//     updated_at, and returns the merged row; ErrNotFound when the id does
//     not exist.
//   - Delete is idempotent: deleting a missing row is success.
//
// Operations are single atomic units; no transaction spans multiple calls.
package store

import (
	"context"
	"errors"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert or update collides with a
	// unique column (username, param_key, settings user_id).
	ErrDuplicate = errors.New("duplicate record")
)

// Summary aggregates per-user row counts for the dashboard.
type Summary struct {
	Accounts          int64 `json:"accounts"`
	Activities        int64 `json:"activities"`
	Strategies        int64 `json:"strategies"`
	AppliedStrategies int64 `json:"applied_strategies"`
}

// Store is the storage adapter contract. Implementations must be safe for
// concurrent use and must honor the provided context.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, p domain.UserPatch) (*domain.User, error)

	// OTA accounts
	GetOtaAccount(ctx context.Context, id int64) (*domain.OtaAccount, error)
	GetOtaAccountsByUserID(ctx context.Context, userID int64) ([]domain.OtaAccount, error)
	CreateOtaAccount(ctx context.Context, in domain.NewOtaAccount) (*domain.OtaAccount, error)
	UpdateOtaAccount(ctx context.Context, id int64, p domain.OtaAccountPatch) (*domain.OtaAccount, error)
	DeleteOtaAccount(ctx context.Context, id int64) error

	// Activities
	GetActivity(ctx context.Context, id int64) (*domain.Activity, error)
	GetActivitiesByUserID(ctx context.Context, userID int64) ([]domain.Activity, error)
	GetActivitiesByPlatform(ctx context.Context, platformID int64) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, in domain.NewActivity) (*domain.Activity, error)
	UpdateActivity(ctx context.Context, id int64, p domain.ActivityPatch) (*domain.Activity, error)
	DeleteActivity(ctx context.Context, id int64) error

	// Strategies
	GetStrategy(ctx context.Context, id int64) (*domain.Strategy, error)
	GetStrategiesByUserID(ctx context.Context, userID int64) ([]domain.Strategy, error)
	GetAppliedStrategiesByUserID(ctx context.Context, userID int64) ([]domain.Strategy, error)
	GetRecentAppliedStrategies(ctx context.Context, limit int) ([]domain.Strategy, error)
	CreateStrategy(ctx context.Context, in domain.NewStrategy) (*domain.Strategy, error)
	UpdateStrategy(ctx context.Context, id int64, p domain.StrategyPatch) (*domain.Strategy, error)
	DeleteStrategy(ctx context.Context, id int64) error

	// API keys
	GetAPIKey(ctx context.Context, id int64) (*domain.APIKey, error)
	GetAPIKeyByUserIDAndService(ctx context.Context, userID int64, service string) (*domain.APIKey, error)
	GetAPIKeysByUserID(ctx context.Context, userID int64) ([]domain.APIKey, error)
	CreateAPIKey(ctx context.Context, in domain.NewAPIKey) (*domain.APIKey, error)
	UpdateAPIKey(ctx context.Context, id int64, p domain.APIKeyPatch) (*domain.APIKey, error)
	DeleteAPIKey(ctx context.Context, id int64) error

	// Settings
	GetSetting(ctx context.Context, id int64) (*domain.Setting, error)
	GetSettingByUserID(ctx context.Context, userID int64) (*domain.Setting, error)
	CreateSetting(ctx context.Context, in domain.NewSetting) (*domain.Setting, error)
	UpdateSetting(ctx context.Context, id int64, p domain.SettingPatch) (*domain.Setting, error)

	// Strategy parameters (global)
	GetStrategyParameter(ctx context.Context, id int64) (*domain.StrategyParameter, error)
	ListStrategyParameters(ctx context.Context) ([]domain.StrategyParameter, error)
	CreateStrategyParameter(ctx context.Context, in domain.NewStrategyParameter) (*domain.StrategyParameter, error)
	UpdateStrategyParameter(ctx context.Context, id int64, p domain.StrategyParameterPatch) (*domain.StrategyParameter, error)
	DeleteStrategyParameter(ctx context.Context, id int64) error

	// Strategy templates (global)
	GetStrategyTemplate(ctx context.Context, id int64) (*domain.StrategyTemplate, error)
	ListStrategyTemplates(ctx context.Context) ([]domain.StrategyTemplate, error)
	CreateStrategyTemplate(ctx context.Context, in domain.NewStrategyTemplate) (*domain.StrategyTemplate, error)
	UpdateStrategyTemplate(ctx context.Context, id int64, p domain.StrategyTemplatePatch) (*domain.StrategyTemplate, error)
	DeleteStrategyTemplate(ctx context.Context, id int64) error

	// Aggregates
	Summary(ctx context.Context, userID int64) (Summary, error)

	// Close releases the backing resources. The process owner calls it once
	// during shutdown.
	Close() error
}
