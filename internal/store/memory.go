// MemoryStore: the volatile Store implementation.
//
// Rows live in ordered slices guarded by a single mutex, so list operations
// observe insertion order, matching the natural row order of a fresh SQLite
// table. Ids are assigned from per-table counters and never reused after
// deletion. The implementation mirrors GormStore behavior exactly, including
// unique-column enforcement, so it can serve as the reference oracle in
// parity tests.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hotelrm/go-ota-backend/internal/domain"
)

// MemoryStore implements Store with in-process state. Safe for concurrent use.
type MemoryStore struct {
	mu sync.Mutex

	users      []domain.User
	accounts   []domain.OtaAccount
	activities []domain.Activity
	strategies []domain.Strategy
	apiKeys    []domain.APIKey
	settings   []domain.Setting
	params     []domain.StrategyParameter
	templates  []domain.StrategyTemplate

	nextID map[string]int64
}

// NewMemoryStore returns an empty volatile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: make(map[string]int64)}
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStore) Close() error { return nil }

// id hands out the next surrogate key for table. Caller holds s.mu.
func (s *MemoryStore) id(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

func now() time.Time { return time.Now().UTC() }

//
// Users
//

func (s *MemoryStore) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Username == in.Username {
			return nil, ErrDuplicate
		}
	}
	u := in.Model()
	u.ID = s.id("users")
	u.CreatedAt, u.UpdatedAt = now(), now()
	s.users = append(s.users, u)
	return &u, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id int64, p domain.UserPatch) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if p.Username != nil {
			for j := range s.users {
				if j != i && s.users[j].Username == *p.Username {
					return nil, ErrDuplicate
				}
			}
		}
		p.Apply(&s.users[i])
		s.users[i].UpdatedAt = now()
		u := s.users[i]
		return &u, nil
	}
	return nil, ErrNotFound
}

//
// OTA accounts
//

func (s *MemoryStore) GetOtaAccount(ctx context.Context, id int64) (*domain.OtaAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			a := s.accounts[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetOtaAccountsByUserID(ctx context.Context, userID int64) ([]domain.OtaAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.OtaAccount{}
	for i := range s.accounts {
		if s.accounts[i].UserID == userID {
			out = append(out, s.accounts[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateOtaAccount(ctx context.Context, in domain.NewOtaAccount) (*domain.OtaAccount, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := in.Model()
	a.ID = s.id("ota_accounts")
	a.CreatedAt, a.UpdatedAt = now(), now()
	s.accounts = append(s.accounts, a)
	return &a, nil
}

func (s *MemoryStore) UpdateOtaAccount(ctx context.Context, id int64, p domain.OtaAccountPatch) (*domain.OtaAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			p.Apply(&s.accounts[i])
			s.accounts[i].UpdatedAt = now()
			a := s.accounts[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteOtaAccount(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return nil
}

//
// Activities
//

func (s *MemoryStore) GetActivity(ctx context.Context, id int64) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			a := s.activities[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetActivitiesByUserID(ctx context.Context, userID int64) ([]domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Activity{}
	for i := range s.activities {
		if s.activities[i].UserID != nil && *s.activities[i].UserID == userID {
			out = append(out, s.activities[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) GetActivitiesByPlatform(ctx context.Context, platformID int64) ([]domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Activity{}
	for i := range s.activities {
		if s.activities[i].PlatformID == platformID {
			out = append(out, s.activities[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateActivity(ctx context.Context, in domain.NewActivity) (*domain.Activity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := in.Model()
	a.ID = s.id("activities")
	a.CreatedAt, a.UpdatedAt = now(), now()
	s.activities = append(s.activities, a)
	return &a, nil
}

func (s *MemoryStore) UpdateActivity(ctx context.Context, id int64, p domain.ActivityPatch) (*domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			p.Apply(&s.activities[i])
			s.activities[i].UpdatedAt = now()
			a := s.activities[i]
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteActivity(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.activities {
		if s.activities[i].ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			return nil
		}
	}
	return nil
}

//
// Strategies
//

func (s *MemoryStore) GetStrategy(ctx context.Context, id int64) (*domain.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.strategies {
		if s.strategies[i].ID == id {
			st := s.strategies[i]
			return &st, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetStrategiesByUserID(ctx context.Context, userID int64) ([]domain.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Strategy{}
	for i := range s.strategies {
		if s.strategies[i].UserID == userID {
			out = append(out, s.strategies[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) GetAppliedStrategiesByUserID(ctx context.Context, userID int64) ([]domain.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Strategy{}
	for i := range s.strategies {
		if s.strategies[i].UserID == userID && s.strategies[i].Applied() {
			out = append(out, s.strategies[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) GetRecentAppliedStrategies(ctx context.Context, limit int) ([]domain.Strategy, error) {
	out := []domain.Strategy{}
	if limit <= 0 {
		return out, nil
	}
	s.mu.Lock()
	for i := range s.strategies {
		if s.strategies[i].Applied() {
			out = append(out, s.strategies[i])
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedAt.After(*out[j].AppliedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) CreateStrategy(ctx context.Context, in domain.NewStrategy) (*domain.Strategy, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := in.Model()
	st.ID = s.id("strategies")
	st.CreatedAt, st.UpdatedAt = now(), now()
	s.strategies = append(s.strategies, st)
	return &st, nil
}

func (s *MemoryStore) UpdateStrategy(ctx context.Context, id int64, p domain.StrategyPatch) (*domain.Strategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.strategies {
		if s.strategies[i].ID == id {
			p.Apply(&s.strategies[i])
			s.strategies[i].UpdatedAt = now()
			st := s.strategies[i]
			return &st, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteStrategy(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.strategies {
		if s.strategies[i].ID == id {
			s.strategies = append(s.strategies[:i], s.strategies[i+1:]...)
			return nil
		}
	}
	return nil
}

//
// API keys
//

func (s *MemoryStore) GetAPIKey(ctx context.Context, id int64) (*domain.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apiKeys {
		if s.apiKeys[i].ID == id {
			k := s.apiKeys[i]
			return &k, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetAPIKeyByUserIDAndService(ctx context.Context, userID int64, service string) (*domain.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apiKeys {
		if s.apiKeys[i].UserID == userID && s.apiKeys[i].Service == service {
			k := s.apiKeys[i]
			return &k, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetAPIKeysByUserID(ctx context.Context, userID int64) ([]domain.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.APIKey{}
	for i := range s.apiKeys {
		if s.apiKeys[i].UserID == userID {
			out = append(out, s.apiKeys[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateAPIKey(ctx context.Context, in domain.NewAPIKey) (*domain.APIKey, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := in.Model()
	k.ID = s.id("api_keys")
	k.CreatedAt, k.UpdatedAt = now(), now()
	s.apiKeys = append(s.apiKeys, k)
	return &k, nil
}

func (s *MemoryStore) UpdateAPIKey(ctx context.Context, id int64, p domain.APIKeyPatch) (*domain.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apiKeys {
		if s.apiKeys[i].ID == id {
			p.Apply(&s.apiKeys[i])
			s.apiKeys[i].UpdatedAt = now()
			k := s.apiKeys[i]
			return &k, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteAPIKey(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apiKeys {
		if s.apiKeys[i].ID == id {
			s.apiKeys = append(s.apiKeys[:i], s.apiKeys[i+1:]...)
			return nil
		}
	}
	return nil
}

//
// Settings
//

func (s *MemoryStore) GetSetting(ctx context.Context, id int64) (*domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.settings {
		if s.settings[i].ID == id {
			row := s.settings[i]
			return &row, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetSettingByUserID(ctx context.Context, userID int64) (*domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.settings {
		if s.settings[i].UserID == userID {
			row := s.settings[i]
			return &row, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateSetting(ctx context.Context, in domain.NewSetting) (*domain.Setting, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.settings {
		if s.settings[i].UserID == in.UserID {
			return nil, ErrDuplicate
		}
	}
	row := in.Model()
	row.ID = s.id("settings")
	row.CreatedAt, row.UpdatedAt = now(), now()
	s.settings = append(s.settings, row)
	return &row, nil
}

func (s *MemoryStore) UpdateSetting(ctx context.Context, id int64, p domain.SettingPatch) (*domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.settings {
		if s.settings[i].ID == id {
			p.Apply(&s.settings[i])
			s.settings[i].UpdatedAt = now()
			row := s.settings[i]
			return &row, nil
		}
	}
	return nil, ErrNotFound
}

//
// Strategy parameters
//

func (s *MemoryStore) GetStrategyParameter(ctx context.Context, id int64) (*domain.StrategyParameter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.params {
		if s.params[i].ID == id {
			sp := s.params[i]
			return &sp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListStrategyParameters(ctx context.Context) ([]domain.StrategyParameter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.StrategyParameter, len(s.params))
	copy(out, s.params)
	return out, nil
}

func (s *MemoryStore) CreateStrategyParameter(ctx context.Context, in domain.NewStrategyParameter) (*domain.StrategyParameter, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.params {
		if s.params[i].ParamKey == in.ParamKey {
			return nil, ErrDuplicate
		}
	}
	sp := in.Model()
	sp.ID = s.id("strategy_parameters")
	sp.CreatedAt, sp.UpdatedAt = now(), now()
	s.params = append(s.params, sp)
	return &sp, nil
}

func (s *MemoryStore) UpdateStrategyParameter(ctx context.Context, id int64, p domain.StrategyParameterPatch) (*domain.StrategyParameter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.params {
		if s.params[i].ID != id {
			continue
		}
		if p.ParamKey != nil {
			for j := range s.params {
				if j != i && s.params[j].ParamKey == *p.ParamKey {
					return nil, ErrDuplicate
				}
			}
		}
		p.Apply(&s.params[i])
		s.params[i].UpdatedAt = now()
		sp := s.params[i]
		return &sp, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteStrategyParameter(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.params {
		if s.params[i].ID == id {
			s.params = append(s.params[:i], s.params[i+1:]...)
			return nil
		}
	}
	return nil
}

//
// Strategy templates
//

func (s *MemoryStore) GetStrategyTemplate(ctx context.Context, id int64) (*domain.StrategyTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			st := s.templates[i]
			return &st, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) ListStrategyTemplates(ctx context.Context) ([]domain.StrategyTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.StrategyTemplate, len(s.templates))
	copy(out, s.templates)
	return out, nil
}

func (s *MemoryStore) CreateStrategyTemplate(ctx context.Context, in domain.NewStrategyTemplate) (*domain.StrategyTemplate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := in.Model()
	st.ID = s.id("strategy_templates")
	st.CreatedAt, st.UpdatedAt = now(), now()
	s.templates = append(s.templates, st)
	return &st, nil
}

func (s *MemoryStore) UpdateStrategyTemplate(ctx context.Context, id int64, p domain.StrategyTemplatePatch) (*domain.StrategyTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			p.Apply(&s.templates[i])
			s.templates[i].UpdatedAt = now()
			st := s.templates[i]
			return &st, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteStrategyTemplate(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.templates {
		if s.templates[i].ID == id {
			s.templates = append(s.templates[:i], s.templates[i+1:]...)
			return nil
		}
	}
	return nil
}

//
// Aggregates
//

func (s *MemoryStore) Summary(ctx context.Context, userID int64) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out Summary
	for i := range s.accounts {
		if s.accounts[i].UserID == userID {
			out.Accounts++
		}
	}
	for i := range s.activities {
		if s.activities[i].UserID != nil && *s.activities[i].UserID == userID {
			out.Activities++
		}
	}
	for i := range s.strategies {
		if s.strategies[i].UserID == userID {
			out.Strategies++
			if s.strategies[i].Applied() {
				out.AppliedStrategies++
			}
		}
	}
	return out, nil
}
