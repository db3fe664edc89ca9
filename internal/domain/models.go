// Package domain defines the persistence models for the OTA revenue console:
// users, OTA platform accounts, promotional activities, pricing strategies,
// API keys, per-user settings, and the global strategy parameter/template
// catalog. These types are mapped with GORM and form the core data layer of
// the application.
//
// Column names and default values mirror the deployed schema exactly; any
// change here is a migration for existing installations.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// User represents an operator account. Staff authenticate with a username and
// a bcrypt-hashed password; the hash is never serialized to JSON.
//
// Fields:
//   - ID: integer surrogate key, assigned on insert.
//   - Username: login name, unique across the installation.
//   - Password: bcrypt hash of the credential (json:"-").
//   - Role: open set, commonly "admin", "manager" or "user".
//   - Hotel: optional display label of the property the user manages.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement"`
	Username  string    `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Password  string    `json:"-"          gorm:"type:varchar(255);not null"`
	Role      string    `json:"role"       gorm:"type:varchar(32);not null;default:'manager'"`
	Hotel     string    `json:"hotel"      gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// OtaAccount holds the credentials and metadata of one online travel agency
// (OTA) listing owned by a user. The login pair is stored as provided; this
// console is the credential vault for revenue staff.
//
// Invariant: UserID must reference an existing User row. The HTTP layer
// always writes the authenticated user's id here.
type OtaAccount struct {
	ID          int64     `json:"id"           gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"user_id"      gorm:"not null;index:idx_ota_accounts_user"`
	Name        string    `json:"name"         gorm:"type:varchar(128);not null"`
	ShortName   string    `json:"short_name"   gorm:"type:varchar(64)"`
	URL         string    `json:"url"          gorm:"type:varchar(512);not null"`
	Username    string    `json:"username"     gorm:"type:varchar(128);not null"`
	Password    string    `json:"password"     gorm:"type:varchar(255);not null"`
	AccountType string    `json:"account_type" gorm:"type:varchar(32)"`
	Status      string    `json:"status"       gorm:"type:varchar(32);default:'active'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for OtaAccount.
func (OtaAccount) TableName() string { return "ota_accounts" }

// Activity is a promotional campaign scraped from or entered for an OTA
// platform: date window, discount and commission text, eligible room types,
// and the hotel's participation state.
//
// Invariant: PlatformID must reference an existing OtaAccount row.
// ParticipationStatus defaults to "pending" until staff opt in or out.
type Activity struct {
	ID                  int64                       `json:"id"                   gorm:"primaryKey;autoIncrement"`
	PlatformID          int64                       `json:"platform_id"          gorm:"not null;index:idx_activities_platform"`
	UserID              *int64                      `json:"user_id"              gorm:"index:idx_activities_user"`
	Name                string                      `json:"name"                 gorm:"type:varchar(128);not null"`
	Description         string                      `json:"description"          gorm:"type:text"`
	StartDate           *time.Time                  `json:"start_date"`
	EndDate             *time.Time                  `json:"end_date"`
	Discount            string                      `json:"discount"             gorm:"type:varchar(64)"`
	CommissionRate      string                      `json:"commission_rate"      gorm:"type:varchar(64)"`
	RoomTypes           datatypes.JSONSlice[string] `json:"room_types"`
	MinimumStay         *int                        `json:"minimum_stay"`
	MaxBookingWindow    *int                        `json:"max_booking_window"`
	Status              string                      `json:"status"               gorm:"type:varchar(32);default:'active'"`
	Tag                 string                      `json:"tag"                  gorm:"type:varchar(64)"`
	ParticipationStatus string                      `json:"participation_status" gorm:"type:varchar(32);default:'pending'"`
	CreatedAt           time.Time                   `json:"created_at"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

// TableName returns the database table name for Activity.
func (Activity) TableName() string { return "activities" }

// ParamMap is a snapshot of tunable weights, keyed by parameter name, that
// produced a strategy recommendation.
type ParamMap = map[string]float64

// Strategy is an AI-assisted pricing/positioning recommendation for a user,
// optionally tied to a platform and activity. A strategy is "applied" once
// AppliedAt is non-nil; in the normal flow it is never unset afterwards.
type Strategy struct {
	ID              int64                        `json:"id"               gorm:"primaryKey;autoIncrement"`
	UserID          int64                        `json:"user_id"          gorm:"not null;index:idx_strategies_user"`
	Name            string                       `json:"name"             gorm:"type:varchar(128);not null"`
	Description     string                       `json:"description"      gorm:"type:text"`
	PlatformID      *int64                       `json:"platform_id"`
	ActivityID      *int64                       `json:"activity_id"`
	Recommendation  string                       `json:"recommendation"   gorm:"type:text"`
	Reasoning       string                       `json:"reasoning"        gorm:"type:text"`
	ExpectedOutcome string                       `json:"expected_outcome" gorm:"type:text"`
	ParametersUsed  datatypes.JSONType[ParamMap] `json:"parameters_used"`
	Status          string                       `json:"status"           gorm:"type:varchar(32);default:'draft'"`
	AppliedAt       *time.Time                   `json:"applied_at"       gorm:"index:idx_strategies_applied"`
	CreatedAt       time.Time                    `json:"created_at"`
	UpdatedAt       time.Time                    `json:"updated_at"`
}

// TableName returns the database table name for Strategy.
func (Strategy) TableName() string { return "strategies" }

// Applied reports whether the strategy has been put into effect.
func (s Strategy) Applied() bool { return s.AppliedAt != nil }

// APIKey stores an encrypted credential for an external AI service
// (e.g. "deepseek"), optionally pinned to a model label. Lookup by
// (user_id, service) expects at most one active row, but no constraint
// enforces it; callers take the first match.
type APIKey struct {
	ID           int64     `json:"id"            gorm:"primaryKey;autoIncrement"`
	UserID       int64     `json:"user_id"       gorm:"not null;index:idx_api_keys_user"`
	Service      string    `json:"service"       gorm:"type:varchar(64);not null"`
	EncryptedKey string    `json:"encrypted_key" gorm:"type:varchar(512);not null"`
	Model        string    `json:"model"         gorm:"type:varchar(64)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for APIKey.
func (APIKey) TableName() string { return "api_keys" }

// Setting holds per-user console preferences. Exactly one row per user
// (unique index on user_id).
type Setting struct {
	ID                        int64     `json:"id"                          gorm:"primaryKey;autoIncrement"`
	UserID                    int64     `json:"user_id"                     gorm:"not null;uniqueIndex:ux_settings_user"`
	NotificationsEnabled      bool      `json:"notifications_enabled"       gorm:"default:true"`
	AutoRefreshInterval       int       `json:"auto_refresh_interval"       gorm:"default:30"`
	DefaultStrategyPreference string    `json:"default_strategy_preference" gorm:"type:varchar(32);default:'balanced'"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// TableName returns the database table name for Setting.
func (Setting) TableName() string { return "settings" }

// StrategyParameter is a global (not user-scoped) tunable weight consumed by
// strategy generation. ParamKey is the stable machine identifier and is
// unique; Name/Description are display text.
type StrategyParameter struct {
	ID          int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name"        gorm:"type:varchar(128);not null"`
	Description string    `json:"description" gorm:"type:text"`
	ParamKey    string    `json:"param_key"   gorm:"type:varchar(64);not null;uniqueIndex:ux_strategy_parameters_key"`
	Value       float64   `json:"value"       gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for StrategyParameter.
func (StrategyParameter) TableName() string { return "strategy_parameters" }

// StrategyTemplate is a global prompt template for strategy generation.
// Parameters lists the placeholder names the template text expects.
type StrategyTemplate struct {
	ID           int64                       `json:"id"            gorm:"primaryKey;autoIncrement"`
	Name         string                      `json:"name"          gorm:"type:varchar(128);not null"`
	Description  string                      `json:"description"   gorm:"type:text"`
	TemplateText string                      `json:"template_text" gorm:"type:text;not null"`
	Parameters   datatypes.JSONSlice[string] `json:"parameters"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// TableName returns the database table name for StrategyTemplate.
func (StrategyTemplate) TableName() string { return "strategy_templates" }
