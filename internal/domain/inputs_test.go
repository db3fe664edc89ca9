package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewUserValidate(t *testing.T) {
	cases := []struct {
		name string
		in   NewUser
		want string // substring of the error, "" means valid
	}{
		{"valid", NewUser{Username: "alice", Password: "hash"}, ""},
		{"missing username", NewUser{Password: "hash"}, "username"},
		{"missing password", NewUser{Username: "alice"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestNewUserModelDefaultsRole(t *testing.T) {
	u := NewUser{Username: "alice", Password: "hash"}.Model()
	if u.Role != "manager" {
		t.Fatalf("default role = %q, want manager", u.Role)
	}
	u = NewUser{Username: "alice", Password: "hash", Role: "admin"}.Model()
	if u.Role != "admin" {
		t.Fatalf("explicit role overridden: %q", u.Role)
	}
}

func TestUserJSONOmitsPassword(t *testing.T) {
	b, err := json.Marshal(User{Username: "alice", Password: "secret-hash"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "secret-hash") {
		t.Fatalf("password hash leaked into JSON: %s", b)
	}
}

func TestUserPatchApply(t *testing.T) {
	u := User{Username: "alice", Role: "user", Hotel: "old"}
	hotel := "new"
	UserPatch{Hotel: &hotel}.Apply(&u)
	if u.Hotel != "new" || u.Username != "alice" || u.Role != "user" {
		t.Fatalf("patch touched unset fields: %+v", u)
	}
}

func TestNewOtaAccountValidate(t *testing.T) {
	valid := NewOtaAccount{UserID: 1, Name: "携程", URL: "https://x", Username: "u", Password: "p"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	broken := valid
	broken.URL = ""
	if err := broken.Validate(); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for url, got %v", err)
	}
}

func TestNewOtaAccountModelDefaultsStatus(t *testing.T) {
	a := NewOtaAccount{UserID: 1, Name: "n", URL: "u", Username: "un", Password: "p"}.Model()
	if a.Status != "active" {
		t.Fatalf("default status = %q, want active", a.Status)
	}
}

func TestNewActivityModelDefaults(t *testing.T) {
	a := NewActivity{PlatformID: 1, Name: "暑期特惠", RoomTypes: []string{"标准双人间"}}.Model()
	if a.Status != "active" || a.ParticipationStatus != "pending" {
		t.Fatalf("defaults unexpected: status=%q participation=%q", a.Status, a.ParticipationStatus)
	}
	if len(a.RoomTypes) != 1 || a.RoomTypes[0] != "标准双人间" {
		t.Fatalf("room types not carried: %#v", a.RoomTypes)
	}
}

func TestActivityPatchApplyRoomTypes(t *testing.T) {
	a := NewActivity{PlatformID: 1, Name: "x", RoomTypes: []string{"a"}}.Model()
	rooms := []string{"b", "c"}
	ActivityPatch{RoomTypes: &rooms}.Apply(&a)
	if len(a.RoomTypes) != 2 || a.RoomTypes[0] != "b" {
		t.Fatalf("room types not replaced: %#v", a.RoomTypes)
	}
}

func TestNewStrategyModelDefaultsStatus(t *testing.T) {
	s := NewStrategy{UserID: 1, Name: "s"}.Model()
	if s.Status != "draft" {
		t.Fatalf("default status = %q, want draft", s.Status)
	}
	if s.Applied() {
		t.Fatalf("fresh strategy reports applied")
	}
}

func TestStrategyPatchApplySetsAppliedAt(t *testing.T) {
	s := NewStrategy{UserID: 1, Name: "s"}.Model()
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	status := "applied"
	StrategyPatch{Status: &status, AppliedAt: &at}.Apply(&s)
	if !s.Applied() || !s.AppliedAt.Equal(at) || s.Status != "applied" {
		t.Fatalf("apply transition not recorded: %+v", s)
	}

	// A later patch without AppliedAt must not clear it.
	name := "renamed"
	StrategyPatch{Name: &name}.Apply(&s)
	if !s.Applied() {
		t.Fatalf("applied_at cleared by unrelated patch")
	}
}

func TestNewSettingModelDefaults(t *testing.T) {
	s := NewSetting{UserID: 7}.Model()
	if !s.NotificationsEnabled || s.AutoRefreshInterval != 30 || s.DefaultStrategyPreference != "balanced" {
		t.Fatalf("defaults unexpected: %+v", s)
	}
	off := false
	iv := 15
	s = NewSetting{UserID: 7, NotificationsEnabled: &off, AutoRefreshInterval: &iv, DefaultStrategyPreference: "aggressive"}.Model()
	if s.NotificationsEnabled || s.AutoRefreshInterval != 15 || s.DefaultStrategyPreference != "aggressive" {
		t.Fatalf("explicit values overridden: %+v", s)
	}
}

func TestNewStrategyParameterValidateRequiresValue(t *testing.T) {
	v := 7.0
	ok := NewStrategyParameter{Name: "n", ParamKey: "k", Value: &v}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// An explicit zero weight is valid; only a nil value is missing.
	zero := 0.0
	ok.Value = &zero
	if err := ok.Validate(); err != nil {
		t.Fatalf("zero value rejected: %v", err)
	}
	ok.Value = nil
	if err := ok.Validate(); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for value, got %v", err)
	}
}

func TestNewStrategyTemplateValidate(t *testing.T) {
	if err := (NewStrategyTemplate{Name: "n"}).Validate(); !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField for template_text, got %v", err)
	}
	if err := (NewStrategyTemplate{Name: "n", TemplateText: "t"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
