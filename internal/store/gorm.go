// GormStore: the durable Store implementation backed by GORM.
//
// Query composition follows the "thin repository" approach: no business
// logic, only CRUD persistence keyed by the primary id or one indexed
// column. Unique-constraint violations are detected across drivers by
// message sniffing (SQLite reports "UNIQUE constraint failed", Postgres
// "duplicate key value violates unique constraint") and mapped to
// ErrDuplicate so callers never branch on driver errors.
package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

// GormStore implements Store on top of a *gorm.DB handle.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an opened GORM handle. The caller owns migration
// (see AutoMigrate) and passes the store to whatever consumes it.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}

// mapErr translates GORM sentinels and driver errors into store sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err):
		return ErrDuplicate
	}
	return err
}

// getByID fetches a single row of T by primary key.
func getByID[T any](ctx context.Context, db *gorm.DB, id int64) (*T, error) {
	var out T
	if err := db.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

// listWhere returns all rows of T matching the condition. An empty result is
// a non-nil empty slice.
func listWhere[T any](ctx context.Context, db *gorm.DB, query string, args ...any) ([]T, error) {
	out := []T{}
	err := db.WithContext(ctx).Where(query, args...).Find(&out).Error
	return out, err
}

// createRow inserts the row and returns it with id and timestamps assigned.
func createRow[T any](ctx context.Context, db *gorm.DB, row T) (*T, error) {
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

// saveRow persists a merged row, refreshing updated_at.
func saveRow[T any](ctx context.Context, db *gorm.DB, row *T) (*T, error) {
	if err := db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, mapErr(err)
	}
	return row, nil
}

// deleteByID removes the row if present; deleting a missing id is success.
func deleteByID[T any](ctx context.Context, db *gorm.DB, id int64) error {
	var zero T
	return db.WithContext(ctx).Delete(&zero, "id = ?", id).Error
}

//
// Users
//

func (s *GormStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return getByID[domain.User](ctx, s.db, id)
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := s.db.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *GormStore) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return createRow(ctx, s.db, in.Model())
}

func (s *GormStore) UpdateUser(ctx context.Context, id int64, p domain.UserPatch) (*domain.User, error) {
	u, err := getByID[domain.User](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	p.Apply(u)
	return saveRow(ctx, s.db, u)
}

//
// OTA accounts
//

func (s *GormStore) GetOtaAccount(ctx context.Context, id int64) (*domain.OtaAccount, error) {
	return getByID[domain.OtaAccount](ctx, s.db, id)
}

func (s *GormStore) GetOtaAccountsByUserID(ctx context.Context, userID int64) ([]domain.OtaAccount, error) {
	return listWhere[domain.OtaAccount](ctx, s.db, "user_id = ?", userID)
}

func (s *GormStore) CreateOtaAccount(ctx context.Context, in domain.NewOtaAccount) (*domain.OtaAccount, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return createRow(ctx, s.db, in.Model())
}

func (s *GormStore) UpdateOtaAccount(ctx context.Context, id int64, p domain.OtaAccountPatch) (*domain.OtaAccount, error) {
	a, err := getByID[domain.OtaAccount](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	p.Apply(a)
	return saveRow(ctx, s.db, a)
}

func (s *GormStore) DeleteOtaAccount(ctx context.Context, id int64) error {
	return deleteByID[domain.OtaAccount](ctx, s.db, id)
}

//
// Activities
//

func (s *GormStore) GetActivity(ctx context.Context, id int64) (*domain.Activity, error) {
	return getByID[domain.Activity](ctx, s.db, id)
}

func (s *GormStore) GetActivitiesByUserID(ctx context.Context, userID int64) ([]domain.Activity, error) {
	return listWhere[domain.Activity](ctx, s.db, "user_id = ?", userID)
}

func (s *GormStore) GetActivitiesByPlatform(ctx context.Context, platformID int64) ([]domain.Activity, error) {
	return listWhere[domain.Activity](ctx, s.db, "platform_id = ?", platformID)
}

func (s *GormStore) CreateActivity(ctx context.Context, in domain.NewActivity) (*domain.Activity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return createRow(ctx, s.db, in.Model())
}

func (s *GormStore) UpdateActivity(ctx context.Context, id int64, p domain.ActivityPatch) (*domain.Activity, error) {
	a, err := getByID[domain.Activity](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	p.Apply(a)
	return saveRow(ctx, s.db, a)
}

func (s *GormStore) DeleteActivity(ctx context.Context, id int64) error {
	return deleteByID[domain.Activity](ctx, s.db, id)
}

//
// Strategies
//

func (s *GormStore) GetStrategy(ctx context.Context, id int64) (*domain.Strategy, error) {
	return getByID[domain.Strategy](ctx, s.db, id)
}

func (s *GormStore) GetStrategiesByUserID(ctx context.Context, userID int64) ([]domain.Strategy, error) {
	return listWhere[domain.Strategy](ctx, s.db, "user_id = ?", userID)
}

func (s *GormStore) GetAppliedStrategiesByUserID(ctx context.Context, userID int64) ([]domain.Strategy, error) {
	return listWhere[domain.Strategy](ctx, s.db, "user_id = ? AND applied_at IS NOT NULL", userID)
}

// GetRecentAppliedStrategies returns the most recently applied strategies
// across all users, newest first. A limit <= 0 yields an empty slice.
func (s *GormStore) GetRecentAppliedStrategies(ctx context.Context, limit int) ([]domain.Strategy, error) {
	out := []domain.Strategy{}
	if limit <= 0 {
		return out, nil
	}
	err := s.db.WithContext(ctx).
		Where("applied_at IS NOT NULL").
		Order("applied_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (s *GormStore) CreateStrategy(ctx context.Context, in domain.NewStrategy) (*domain.Strategy, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return createRow(ctx, s.db, in.Model())
}

func (s *GormStore) UpdateStrategy(ctx context.Context, id int64, p domain.StrategyPatch) (*domain.Strategy, error) {
	st, err := getByID[domain.Strategy](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	p.Apply(st)
	return saveRow(ctx, s.db, st)
}

func (s *GormStore) DeleteStrategy(ctx context.Context, id int64) error {
	return deleteByID[domain.Strategy](ctx, s.db, id)
}

//
// API keys
//

func (s *GormStore) GetAPIKey(ctx context.Context, id int64) (*domain.APIKey, error) {
	return getByID[domain.APIKey](ctx, s.db, id)
}

// GetAPIKeyByUserIDAndService returns the first row matching (userID,
// service) in the backend's natural row order. Multiple matches are not
// prevented by a constraint; callers must not rely on a specific instance.
func (s *GormStore) GetAPIKeyByUserIDAndService(ctx context.Context, userID int64, service string) (*domain.APIKey, error) {
	var k domain.APIKey
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND service = ?", userID, service).
		First(&k).Error
	if err != nil {
		return nil, mapErr(err)
	}
	return &k, nil
}

func (s *GormStore) GetAPIKeysByUserID(ctx context.Context, userID int64) ([]domain.APIKey, error) {
	return listWhere[domain.APIKey](ctx, s.db, "user_id = ?", userID)
}

func (s *GormStore) CreateAPIKey(ctx context.Context, in domain.NewAPIKey) (*domain.APIKey, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return createRow(ctx, s.db, in.Model())
}

func (s *GormStore) UpdateAPIKey(ctx context.Context, id int64, p domain.APIKeyPatch) (*domain.APIKey, error) {
	k, err := getByID[domain.APIKey](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	p.Apply(k)
	return saveRow(ctx, s.db, k)
}

func (s *GormStore) DeleteAPIKey(ctx context.Context, id int64) error {
	return deleteByID[domain.APIKey](ctx, s.db, id)
}

//
// Settings
//

func (s *GormStore) GetSetting(ctx context.Context, id int64) (*domain.Setting, error) {
	return getByID[domain.Setting](ctx, s.db, id)
}

func (s *GormStore) GetSettingByUserID(ctx context.Context, userID int64) (*domain.Setting, error) {
	var row domain.Setting
	if err := s.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error; err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func (s *GormStore) CreateSetting(ctx context.Context, in domain.NewSetting) (*domain.Setting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return createRow(ctx, s.db, in.Model())
}

func (s *GormStore) UpdateSetting(ctx context.Context, id int64, p domain.SettingPatch) (*domain.Setting, error) {
	row, err := getByID[domain.Setting](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	p.Apply(row)
	return saveRow(ctx, s.db, row)
}

//
// Strategy parameters
//

func (s *GormStore) GetStrategyParameter(ctx context.Context, id int64) (*domain.StrategyParameter, error) {
	return getByID[domain.StrategyParameter](ctx, s.db, id)
}

func (s *GormStore) ListStrategyParameters(ctx context.Context) ([]domain.StrategyParameter, error) {
	out := []domain.StrategyParameter{}
	err := s.db.WithContext(ctx).Find(&out).Error
	return out, err
}

func (s *GormStore) CreateStrategyParameter(ctx context.Context, in domain.NewStrategyParameter) (*domain.StrategyParameter, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return createRow(ctx, s.db, in.Model())
}

func (s *GormStore) UpdateStrategyParameter(ctx context.Context, id int64, p domain.StrategyParameterPatch) (*domain.StrategyParameter, error) {
	sp, err := getByID[domain.StrategyParameter](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	p.Apply(sp)
	return saveRow(ctx, s.db, sp)
}

func (s *GormStore) DeleteStrategyParameter(ctx context.Context, id int64) error {
	return deleteByID[domain.StrategyParameter](ctx, s.db, id)
}

//
// Strategy templates
//

func (s *GormStore) GetStrategyTemplate(ctx context.Context, id int64) (*domain.StrategyTemplate, error) {
	return getByID[domain.StrategyTemplate](ctx, s.db, id)
}

func (s *GormStore) ListStrategyTemplates(ctx context.Context) ([]domain.StrategyTemplate, error) {
	out := []domain.StrategyTemplate{}
	err := s.db.WithContext(ctx).Find(&out).Error
	return out, err
}

func (s *GormStore) CreateStrategyTemplate(ctx context.Context, in domain.NewStrategyTemplate) (*domain.StrategyTemplate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return createRow(ctx, s.db, in.Model())
}

func (s *GormStore) UpdateStrategyTemplate(ctx context.Context, id int64, p domain.StrategyTemplatePatch) (*domain.StrategyTemplate, error) {
	st, err := getByID[domain.StrategyTemplate](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	p.Apply(st)
	return saveRow(ctx, s.db, st)
}

func (s *GormStore) DeleteStrategyTemplate(ctx context.Context, id int64) error {
	return deleteByID[domain.StrategyTemplate](ctx, s.db, id)
}

//
// Aggregates
//

// Summary returns per-user row counts for the dashboard. Each count is a
// separate lightweight query; there is no cross-table join.
func (s *GormStore) Summary(ctx context.Context, userID int64) (Summary, error) {
	var out Summary

	if err := s.db.WithContext(ctx).Model(&domain.OtaAccount{}).Where("user_id = ?", userID).Count(&out.Accounts).Error; err != nil {
		return Summary{}, err
	}
	if err := s.db.WithContext(ctx).Model(&domain.Activity{}).Where("user_id = ?", userID).Count(&out.Activities).Error; err != nil {
		return Summary{}, err
	}
	if err := s.db.WithContext(ctx).Model(&domain.Strategy{}).Where("user_id = ?", userID).Count(&out.Strategies).Error; err != nil {
		return Summary{}, err
	}
	if err := s.db.WithContext(ctx).Model(&domain.Strategy{}).
		Where("user_id = ? AND applied_at IS NOT NULL", userID).
		Count(&out.AppliedStrategies).Error; err != nil {
		return Summary{}, err
	}
	return out, nil
}
