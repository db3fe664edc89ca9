// Insertable and patch shapes.
//
// For every entity there is an explicit "insertable" struct (New*) carrying
// only the fields a caller may supply at creation time (server-assigned id
// and timestamps excluded), and a "patch" struct (*Patch) of optional fields
// for partial updates. Required-field checks happen at construction via
// Validate, not by reflecting over the storage schema. Defaults are applied
// by Model() so that every storage backend materializes identical rows.
package domain

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ErrMissingField is wrapped by Validate implementations to flag a required
// field that was not supplied.
var ErrMissingField = errors.New("missing required field")

func missing(name string) error { return fmt.Errorf("%w: %s", ErrMissingField, name) }

//
// User
//

// NewUser is the insertable shape for User. Password must already be hashed
// by the caller (the auth layer owns hashing).
type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Hotel    string `json:"hotel"`
}

// Validate checks required fields.
func (in NewUser) Validate() error {
	if in.Username == "" {
		return missing("username")
	}
	if in.Password == "" {
		return missing("password")
	}
	return nil
}

// Model materializes a User row with defaults applied.
func (in NewUser) Model() User {
	role := in.Role
	if role == "" {
		role = "manager"
	}
	return User{Username: in.Username, Password: in.Password, Role: role, Hotel: in.Hotel}
}

// UserPatch carries optional field updates for User. Nil fields are left
// unchanged by the storage adapter.
type UserPatch struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Hotel    *string `json:"hotel"`
}

// Apply merges the set fields into u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Hotel != nil {
		u.Hotel = *p.Hotel
	}
}

//
// OtaAccount
//

// NewOtaAccount is the insertable shape for OtaAccount.
type NewOtaAccount struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	ShortName   string `json:"short_name"`
	URL         string `json:"url"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
	Status      string `json:"status"`
}

// Validate checks required fields.
func (in NewOtaAccount) Validate() error {
	if in.UserID == 0 {
		return missing("user_id")
	}
	if in.Name == "" {
		return missing("name")
	}
	if in.URL == "" {
		return missing("url")
	}
	if in.Username == "" {
		return missing("username")
	}
	if in.Password == "" {
		return missing("password")
	}
	return nil
}

// Model materializes an OtaAccount row with defaults applied.
func (in NewOtaAccount) Model() OtaAccount {
	status := in.Status
	if status == "" {
		status = "active"
	}
	return OtaAccount{
		UserID:      in.UserID,
		Name:        in.Name,
		ShortName:   in.ShortName,
		URL:         in.URL,
		Username:    in.Username,
		Password:    in.Password,
		AccountType: in.AccountType,
		Status:      status,
	}
}

// OtaAccountPatch carries optional field updates for OtaAccount.
type OtaAccountPatch struct {
	Name        *string `json:"name"`
	ShortName   *string `json:"short_name"`
	URL         *string `json:"url"`
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	AccountType *string `json:"account_type"`
	Status      *string `json:"status"`
}

// Apply merges the set fields into a.
func (p OtaAccountPatch) Apply(a *OtaAccount) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.ShortName != nil {
		a.ShortName = *p.ShortName
	}
	if p.URL != nil {
		a.URL = *p.URL
	}
	if p.Username != nil {
		a.Username = *p.Username
	}
	if p.Password != nil {
		a.Password = *p.Password
	}
	if p.AccountType != nil {
		a.AccountType = *p.AccountType
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
}

//
// Activity
//

// NewActivity is the insertable shape for Activity.
type NewActivity struct {
	PlatformID          int64      `json:"platform_id"`
	UserID              *int64     `json:"user_id"`
	Name                string     `json:"name"`
	Description         string     `json:"description"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	Discount            string     `json:"discount"`
	CommissionRate      string     `json:"commission_rate"`
	RoomTypes           []string   `json:"room_types"`
	MinimumStay         *int       `json:"minimum_stay"`
	MaxBookingWindow    *int       `json:"max_booking_window"`
	Status              string     `json:"status"`
	Tag                 string     `json:"tag"`
	ParticipationStatus string     `json:"participation_status"`
}

// Validate checks required fields.
func (in NewActivity) Validate() error {
	if in.PlatformID == 0 {
		return missing("platform_id")
	}
	if in.Name == "" {
		return missing("name")
	}
	return nil
}

// Model materializes an Activity row with defaults applied.
func (in NewActivity) Model() Activity {
	status := in.Status
	if status == "" {
		status = "active"
	}
	part := in.ParticipationStatus
	if part == "" {
		part = "pending"
	}
	return Activity{
		PlatformID:          in.PlatformID,
		UserID:              in.UserID,
		Name:                in.Name,
		Description:         in.Description,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		Discount:            in.Discount,
		CommissionRate:      in.CommissionRate,
		RoomTypes:           datatypes.NewJSONSlice(in.RoomTypes),
		MinimumStay:         in.MinimumStay,
		MaxBookingWindow:    in.MaxBookingWindow,
		Status:              status,
		Tag:                 in.Tag,
		ParticipationStatus: part,
	}
}

// ActivityPatch carries optional field updates for Activity.
type ActivityPatch struct {
	Name                *string    `json:"name"`
	Description         *string    `json:"description"`
	StartDate           *time.Time `json:"start_date"`
	EndDate             *time.Time `json:"end_date"`
	Discount            *string    `json:"discount"`
	CommissionRate      *string    `json:"commission_rate"`
	RoomTypes           *[]string  `json:"room_types"`
	MinimumStay         *int       `json:"minimum_stay"`
	MaxBookingWindow    *int       `json:"max_booking_window"`
	Status              *string    `json:"status"`
	Tag                 *string    `json:"tag"`
	ParticipationStatus *string    `json:"participation_status"`
}

// Apply merges the set fields into a.
func (p ActivityPatch) Apply(a *Activity) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.StartDate != nil {
		a.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		a.EndDate = p.EndDate
	}
	if p.Discount != nil {
		a.Discount = *p.Discount
	}
	if p.CommissionRate != nil {
		a.CommissionRate = *p.CommissionRate
	}
	if p.RoomTypes != nil {
		a.RoomTypes = datatypes.NewJSONSlice(*p.RoomTypes)
	}
	if p.MinimumStay != nil {
		a.MinimumStay = p.MinimumStay
	}
	if p.MaxBookingWindow != nil {
		a.MaxBookingWindow = p.MaxBookingWindow
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Tag != nil {
		a.Tag = *p.Tag
	}
	if p.ParticipationStatus != nil {
		a.ParticipationStatus = *p.ParticipationStatus
	}
}

//
// Strategy
//

// NewStrategy is the insertable shape for Strategy.
type NewStrategy struct {
	UserID          int64      `json:"user_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	PlatformID      *int64     `json:"platform_id"`
	ActivityID      *int64     `json:"activity_id"`
	Recommendation  string     `json:"recommendation"`
	Reasoning       string     `json:"reasoning"`
	ExpectedOutcome string     `json:"expected_outcome"`
	ParametersUsed  ParamMap   `json:"parameters_used"`
	Status          string     `json:"status"`
	AppliedAt       *time.Time `json:"applied_at"`
}

// Validate checks required fields.
func (in NewStrategy) Validate() error {
	if in.UserID == 0 {
		return missing("user_id")
	}
	if in.Name == "" {
		return missing("name")
	}
	return nil
}

// Model materializes a Strategy row with defaults applied.
func (in NewStrategy) Model() Strategy {
	status := in.Status
	if status == "" {
		status = "draft"
	}
	return Strategy{
		UserID:          in.UserID,
		Name:            in.Name,
		Description:     in.Description,
		PlatformID:      in.PlatformID,
		ActivityID:      in.ActivityID,
		Recommendation:  in.Recommendation,
		Reasoning:       in.Reasoning,
		ExpectedOutcome: in.ExpectedOutcome,
		ParametersUsed:  datatypes.NewJSONType(in.ParametersUsed),
		Status:          status,
		AppliedAt:       in.AppliedAt,
	}
}

// StrategyPatch carries optional field updates for Strategy. AppliedAt can
// only be set, never cleared; applied strategies stay applied.
type StrategyPatch struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	PlatformID      *int64     `json:"platform_id"`
	ActivityID      *int64     `json:"activity_id"`
	Recommendation  *string    `json:"recommendation"`
	Reasoning       *string    `json:"reasoning"`
	ExpectedOutcome *string    `json:"expected_outcome"`
	ParametersUsed  *ParamMap  `json:"parameters_used"`
	Status          *string    `json:"status"`
	AppliedAt       *time.Time `json:"applied_at"`
}

// Apply merges the set fields into s.
func (p StrategyPatch) Apply(s *Strategy) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.PlatformID != nil {
		s.PlatformID = p.PlatformID
	}
	if p.ActivityID != nil {
		s.ActivityID = p.ActivityID
	}
	if p.Recommendation != nil {
		s.Recommendation = *p.Recommendation
	}
	if p.Reasoning != nil {
		s.Reasoning = *p.Reasoning
	}
	if p.ExpectedOutcome != nil {
		s.ExpectedOutcome = *p.ExpectedOutcome
	}
	if p.ParametersUsed != nil {
		s.ParametersUsed = datatypes.NewJSONType(*p.ParametersUsed)
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.AppliedAt != nil {
		s.AppliedAt = p.AppliedAt
	}
}

//
// APIKey
//

// NewAPIKey is the insertable shape for APIKey. EncryptedKey is expected to
// be ciphertext; this layer never sees the plaintext credential.
type NewAPIKey struct {
	UserID       int64  `json:"user_id"`
	Service      string `json:"service"`
	EncryptedKey string `json:"encrypted_key"`
	ModelName    string `json:"model"`
}

// Validate checks required fields.
func (in NewAPIKey) Validate() error {
	if in.UserID == 0 {
		return missing("user_id")
	}
	if in.Service == "" {
		return missing("service")
	}
	if in.EncryptedKey == "" {
		return missing("encrypted_key")
	}
	return nil
}

// Model materializes an APIKey row.
func (in NewAPIKey) Model() APIKey {
	return APIKey{UserID: in.UserID, Service: in.Service, EncryptedKey: in.EncryptedKey, Model: in.ModelName}
}

// APIKeyPatch carries optional field updates for APIKey.
type APIKeyPatch struct {
	Service      *string `json:"service"`
	EncryptedKey *string `json:"encrypted_key"`
	Model        *string `json:"model"`
}

// Apply merges the set fields into k.
func (p APIKeyPatch) Apply(k *APIKey) {
	if p.Service != nil {
		k.Service = *p.Service
	}
	if p.EncryptedKey != nil {
		k.EncryptedKey = *p.EncryptedKey
	}
	if p.Model != nil {
		k.Model = *p.Model
	}
}

//
// Setting
//

// NewSetting is the insertable shape for Setting. Unset optional fields fall
// back to the schema defaults (notifications on, 30s refresh, "balanced").
type NewSetting struct {
	UserID                    int64  `json:"user_id"`
	NotificationsEnabled      *bool  `json:"notifications_enabled"`
	AutoRefreshInterval       *int   `json:"auto_refresh_interval"`
	DefaultStrategyPreference string `json:"default_strategy_preference"`
}

// Validate checks required fields.
func (in NewSetting) Validate() error {
	if in.UserID == 0 {
		return missing("user_id")
	}
	return nil
}

// Model materializes a Setting row with defaults applied.
func (in NewSetting) Model() Setting {
	s := Setting{
		UserID:                    in.UserID,
		NotificationsEnabled:      true,
		AutoRefreshInterval:       30,
		DefaultStrategyPreference: "balanced",
	}
	if in.NotificationsEnabled != nil {
		s.NotificationsEnabled = *in.NotificationsEnabled
	}
	if in.AutoRefreshInterval != nil {
		s.AutoRefreshInterval = *in.AutoRefreshInterval
	}
	if in.DefaultStrategyPreference != "" {
		s.DefaultStrategyPreference = in.DefaultStrategyPreference
	}
	return s
}

// SettingPatch carries optional field updates for Setting.
type SettingPatch struct {
	NotificationsEnabled      *bool   `json:"notifications_enabled"`
	AutoRefreshInterval       *int    `json:"auto_refresh_interval"`
	DefaultStrategyPreference *string `json:"default_strategy_preference"`
}

// Apply merges the set fields into s.
func (p SettingPatch) Apply(s *Setting) {
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.AutoRefreshInterval != nil {
		s.AutoRefreshInterval = *p.AutoRefreshInterval
	}
	if p.DefaultStrategyPreference != nil {
		s.DefaultStrategyPreference = *p.DefaultStrategyPreference
	}
}

//
// StrategyParameter
//

// NewStrategyParameter is the insertable shape for StrategyParameter.
// Value is a pointer so that an explicit 0 weight is distinguishable from an
// omitted field.
type NewStrategyParameter struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ParamKey    string   `json:"param_key"`
	Value       *float64 `json:"value"`
}

// Validate checks required fields.
func (in NewStrategyParameter) Validate() error {
	if in.Name == "" {
		return missing("name")
	}
	if in.ParamKey == "" {
		return missing("param_key")
	}
	if in.Value == nil {
		return missing("value")
	}
	return nil
}

// Model materializes a StrategyParameter row.
func (in NewStrategyParameter) Model() StrategyParameter {
	return StrategyParameter{Name: in.Name, Description: in.Description, ParamKey: in.ParamKey, Value: *in.Value}
}

// StrategyParameterPatch carries optional field updates for StrategyParameter.
type StrategyParameterPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ParamKey    *string  `json:"param_key"`
	Value       *float64 `json:"value"`
}

// Apply merges the set fields into sp.
func (p StrategyParameterPatch) Apply(sp *StrategyParameter) {
	if p.Name != nil {
		sp.Name = *p.Name
	}
	if p.Description != nil {
		sp.Description = *p.Description
	}
	if p.ParamKey != nil {
		sp.ParamKey = *p.ParamKey
	}
	if p.Value != nil {
		sp.Value = *p.Value
	}
}

//
// StrategyTemplate
//

// NewStrategyTemplate is the insertable shape for StrategyTemplate.
type NewStrategyTemplate struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	TemplateText string   `json:"template_text"`
	Parameters   []string `json:"parameters"`
}

// Validate checks required fields.
func (in NewStrategyTemplate) Validate() error {
	if in.Name == "" {
		return missing("name")
	}
	if in.TemplateText == "" {
		return missing("template_text")
	}
	return nil
}

// Model materializes a StrategyTemplate row.
func (in NewStrategyTemplate) Model() StrategyTemplate {
	return StrategyTemplate{
		Name:         in.Name,
		Description:  in.Description,
		TemplateText: in.TemplateText,
		Parameters:   datatypes.NewJSONSlice(in.Parameters),
	}
}

// StrategyTemplatePatch carries optional field updates for StrategyTemplate.
type StrategyTemplatePatch struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	TemplateText *string   `json:"template_text"`
	Parameters   *[]string `json:"parameters"`
}

// Apply merges the set fields into st.
func (p StrategyTemplatePatch) Apply(st *StrategyTemplate) {
	if p.Name != nil {
		st.Name = *p.Name
	}
	if p.Description != nil {
		st.Description = *p.Description
	}
	if p.TemplateText != nil {
		st.TemplateText = *p.TemplateText
	}
	if p.Parameters != nil {
		st.Parameters = datatypes.NewJSONSlice(*p.Parameters)
	}
}
