// Package seed populates a fresh installation with baseline data: operator
// accounts, the three major OTA platform listings, sample promotional
// activities, the strategy parameter catalog, default settings, and a sample
// API key. Each section is guarded by a presence check so running the seed
// against an already populated store is a no-op for that section.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/hotelrm/go-ota-backend/internal/domain"
	"github.com/hotelrm/go-ota-backend/internal/store"
)

// Options configures the seed routine.
type Options struct {
	// AdminPassword is the plaintext credential assigned to every seeded
	// user. It is bcrypt-hashed before storage.
	AdminPassword string
	// BcryptCost overrides the hashing cost; 0 means bcrypt.DefaultCost.
	BcryptCost int
}

// Run loads baseline data into st. It is safe to call on every startup.
func Run(ctx context.Context, st store.Store, opt Options) error {
	if opt.AdminPassword == "" {
		opt.AdminPassword = "admin"
	}
	cost := opt.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}

	if err := seedUsers(ctx, st, opt.AdminPassword, cost); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := seedAccounts(ctx, st); err != nil {
		return fmt.Errorf("seed ota accounts: %w", err)
	}
	if err := seedActivities(ctx, st); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}
	if err := seedParameters(ctx, st); err != nil {
		return fmt.Errorf("seed strategy parameters: %w", err)
	}
	if err := seedSettings(ctx, st); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if err := seedAPIKeys(ctx, st); err != nil {
		return fmt.Errorf("seed api keys: %w", err)
	}
	return nil
}

func seedUsers(ctx context.Context, st store.Store, password string, cost int) error {
	if _, err := st.GetUserByUsername(ctx, "admin"); err == nil {
		log.Debug().Msg("seed: users already present")
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}

	users := []domain.NewUser{
		{Username: "admin", Password: string(hash), Role: "admin", Hotel: "星星酒店集团"},
		{Username: "总经理", Password: string(hash), Role: "manager", Hotel: "星星酒店北京分店"},
		{Username: "snorkeler", Password: string(hash), Role: "user", Hotel: "星星酒店上海分店"},
	}
	for _, u := range users {
		if _, err := st.CreateUser(ctx, u); err != nil && !errors.Is(err, store.ErrDuplicate) {
			return err
		}
	}
	log.Info().Int("count", len(users)).Msg("seed: users created")
	return nil
}

func seedAccounts(ctx context.Context, st store.Store) error {
	admin, err := st.GetUserByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	existing, err := st.GetOtaAccountsByUserID(ctx, admin.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug().Msg("seed: ota accounts already present")
		return nil
	}

	accounts := []domain.NewOtaAccount{
		{UserID: admin.ID, Name: "携程", ShortName: "Ctrip", URL: "https://hotels.ctrip.com", Username: "starhotel_admin", Password: "ctripP@ssw0rd", AccountType: "business", Status: "active"},
		{UserID: admin.ID, Name: "美团", ShortName: "Meituan", URL: "https://hotel.meituan.com", Username: "starhotel_meituan", Password: "meituanP@ss123", AccountType: "standard", Status: "active"},
		{UserID: admin.ID, Name: "飞猪", ShortName: "Fliggy", URL: "https://hotel.fliggy.com", Username: "starhotel_fliggy", Password: "fliggyP@ss456", AccountType: "premium", Status: "active"},
	}
	for _, a := range accounts {
		if _, err := st.CreateOtaAccount(ctx, a); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(accounts)).Msg("seed: ota accounts created")
	return nil
}

func seedActivities(ctx context.Context, st store.Store) error {
	admin, err := st.GetUserByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	existing, err := st.GetActivitiesByUserID(ctx, admin.ID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug().Msg("seed: activities already present")
		return nil
	}

	accounts, err := st.GetOtaAccountsByUserID(ctx, admin.ID)
	if err != nil {
		return err
	}
	if len(accounts) < 3 {
		return fmt.Errorf("expected 3 seeded ota accounts, found %d", len(accounts))
	}

	now := time.Now().UTC()
	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)
	nextMonth := now.AddDate(0, 0, 30)
	two, one := 2, 1
	w90, w30, w180 := 90, 30, 180

	activities := []domain.NewActivity{
		{
			PlatformID:     accounts[0].ID,
			UserID:         &admin.ID,
			Name:           "暑期特惠",
			Description:    "暑期家庭出游特别折扣",
			StartDate:      &now,
			EndDate:        &nextMonth,
			Discount:       "8.5折",
			CommissionRate: "8%",
			RoomTypes:      []string{"标准双人间", "豪华家庭房"},
			MinimumStay:    &two,
			MaxBookingWindow: &w90,
			Status:         "active",
			Tag:            "热门",
		},
		{
			PlatformID:     accounts[1].ID,
			UserID:         &admin.ID,
			Name:           "周末闪购",
			Description:    "限时48小时特惠房价",
			StartDate:      &tomorrow,
			EndDate:        &nextWeek,
			Discount:       "75折",
			CommissionRate: "10%",
			RoomTypes:      []string{"商务单人间", "豪华双人间"},
			MinimumStay:    &one,
			MaxBookingWindow: &w30,
			Status:         "upcoming",
			Tag:            "限时",
		},
		{
			PlatformID:     accounts[2].ID,
			UserID:         &admin.ID,
			Name:           "预付立减",
			Description:    "提前预付享受额外折扣",
			StartDate:      &now,
			EndDate:        &nextMonth,
			Discount:       "8.8折",
			CommissionRate: "7.5%",
			RoomTypes:      []string{"所有房型"},
			MinimumStay:    &one,
			MaxBookingWindow: &w180,
			Status:         "active",
			Tag:            "推荐",
		},
	}
	for _, a := range activities {
		if _, err := st.CreateActivity(ctx, a); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(activities)).Msg("seed: activities created")
	return nil
}

func seedParameters(ctx context.Context, st store.Store) error {
	existing, err := st.ListStrategyParameters(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug().Msg("seed: strategy parameters already present")
		return nil
	}

	weight := func(v float64) *float64 { return &v }
	params := []domain.NewStrategyParameter{
		{Name: "关注远期预定", Description: "重视提前预订和长期收益", ParamKey: "future_booking_weight", Value: weight(7)},
		{Name: "关注成本最小", Description: "优化佣金成本和运营支出", ParamKey: "cost_optimization_weight", Value: weight(6)},
		{Name: "关注展示最优", Description: "最大化在平台上的展示和排名", ParamKey: "visibility_optimization_weight", Value: weight(8)},
		{Name: "关注当日OCC", Description: "优先考虑提高当前入住率", ParamKey: "daily_occupancy_weight", Value: weight(5)},
		{Name: "平衡长短期收益", Description: "在长期战略和短期收益之间取得平衡", ParamKey: "long_short_balance_weight", Value: weight(6)},
	}
	for _, p := range params {
		if _, err := st.CreateStrategyParameter(ctx, p); err != nil && !errors.Is(err, store.ErrDuplicate) {
			return err
		}
	}
	log.Info().Int("count", len(params)).Msg("seed: strategy parameters created")
	return nil
}

func seedSettings(ctx context.Context, st store.Store) error {
	admin, err := st.GetUserByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if _, err := st.GetSettingByUserID(ctx, admin.ID); err == nil {
		log.Debug().Msg("seed: settings already present")
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	enabled := true
	interval := 15
	_, err = st.CreateSetting(ctx, domain.NewSetting{
		UserID:                    admin.ID,
		NotificationsEnabled:      &enabled,
		AutoRefreshInterval:       &interval,
		DefaultStrategyPreference: "balanced",
	})
	if err != nil && !errors.Is(err, store.ErrDuplicate) {
		return err
	}
	log.Info().Msg("seed: settings created")
	return nil
}

func seedAPIKeys(ctx context.Context, st store.Store) error {
	admin, err := st.GetUserByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if _, err := st.GetAPIKeyByUserIDAndService(ctx, admin.ID, "deepseek"); err == nil {
		log.Debug().Msg("seed: api keys already present")
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	_, err = st.CreateAPIKey(ctx, domain.NewAPIKey{
		UserID:       admin.ID,
		Service:      "deepseek",
		EncryptedKey: "7f4e8d2a1b5c6f3e9d7a8b4c2e1d5f6a",
		ModelName:    "deepseek-chat-v1",
	})
	if err != nil {
		return err
	}
	log.Info().Msg("seed: api key created")
	return nil
}
