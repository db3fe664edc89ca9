package seed

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hotelrm/go-ota-backend/internal/store"
)

func TestRunPopulatesBaseline(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	opt := Options{AdminPassword: "pw", BcryptCost: bcrypt.MinCost}
	if err := Run(ctx, st, opt); err != nil {
		t.Fatalf("run: %v", err)
	}

	admin, err := st.GetUserByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("admin missing: %v", err)
	}
	if admin.Role != "admin" {
		t.Fatalf("admin role = %q", admin.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("pw")); err != nil {
		t.Fatalf("admin password not hashed from options: %v", err)
	}
	for _, name := range []string{"总经理", "snorkeler"} {
		if _, err := st.GetUserByUsername(ctx, name); err != nil {
			t.Fatalf("user %s missing: %v", name, err)
		}
	}

	accounts, err := st.GetOtaAccountsByUserID(ctx, admin.ID)
	if err != nil || len(accounts) != 3 {
		t.Fatalf("accounts: %v len=%d", err, len(accounts))
	}
	activities, err := st.GetActivitiesByUserID(ctx, admin.ID)
	if err != nil || len(activities) != 3 {
		t.Fatalf("activities: %v len=%d", err, len(activities))
	}
	params, err := st.ListStrategyParameters(ctx)
	if err != nil || len(params) != 5 {
		t.Fatalf("parameters: %v len=%d", err, len(params))
	}
	if _, err := st.GetSettingByUserID(ctx, admin.ID); err != nil {
		t.Fatalf("settings missing: %v", err)
	}
	if _, err := st.GetAPIKeyByUserIDAndService(ctx, admin.ID, "deepseek"); err != nil {
		t.Fatalf("api key missing: %v", err)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()
	opt := Options{AdminPassword: "pw", BcryptCost: bcrypt.MinCost}

	if err := Run(ctx, st, opt); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(ctx, st, opt); err != nil {
		t.Fatalf("second run: %v", err)
	}

	admin, _ := st.GetUserByUsername(ctx, "admin")
	accounts, _ := st.GetOtaAccountsByUserID(ctx, admin.ID)
	if len(accounts) != 3 {
		t.Fatalf("accounts duplicated: %d", len(accounts))
	}
	params, _ := st.ListStrategyParameters(ctx)
	if len(params) != 5 {
		t.Fatalf("parameters duplicated: %d", len(params))
	}
	activities, _ := st.GetActivitiesByUserID(ctx, admin.ID)
	if len(activities) != 3 {
		t.Fatalf("activities duplicated: %d", len(activities))
	}
}
