package middleware

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/taskdeck/internal/model"
)

type mockSessionFinder struct {
	findFn func(token string) *model.Session
}

func (m *mockSessionFinder) Find(token string) *model.Session {
	if m.findFn != nil {
		return m.findFn(token)
	}
	return nil
}

func validSession() *model.Session {
	return &model.Session{
		Token:     "valid-token",
		IsLogin:   true,
		User:      model.SessionUser{ID: 1, Username: "alice", Email: "a@x.com"},
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
}

// ゲートを通過したリクエストのコンテキストユーザーを記録するハンドラー。
func captureHandler(t *testing.T, called *bool, user *model.SessionUser) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		got, err := SessionUserFromContext(r.Context())
		if err != nil {
			t.Errorf("expected session user in context: %v", err)
			return
		}
		*user = got
	})
}

func TestAccessGate_ValidSession_InjectsUser(t *testing.T) {
	finder := &mockSessionFinder{
		findFn: func(token string) *model.Session {
			if token == "valid-token" {
				return validSession()
			}
			return nil
		},
	}

	var called bool
	var user model.SessionUser
	gate := NewAccessGate(finder)(captureHandler(t, &called, &user))

	req := httptest.NewRequest(http.MethodGet, "/collections", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "valid-token"})
	rec := httptest.NewRecorder()

	gate.ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to be reached")
	}
	if user.ID != 1 || user.Username != "alice" || user.Email != "a@x.com" {
		t.Errorf("context user = %+v, want alice", user)
	}
}

// 拒否レスポンスを検証するヘルパー。
// Cookie欠落・未知トークン・期限切れのいずれでも同一であること。
func assertDenied(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want %q", loc, "/login")
	}

	var flashCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" {
			flashCookie = c
		}
	}
	if flashCookie == nil {
		t.Fatal("expected a flash cookie on denial")
	}

	data, err := base64.URLEncoding.DecodeString(flashCookie.Value)
	if err != nil {
		t.Fatalf("failed to decode flash cookie: %v", err)
	}
	var f struct {
		Severity string `json:"severity"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("failed to unmarshal flash cookie: %v", err)
	}
	if f.Severity != model.SeverityDanger {
		t.Errorf("Severity = %q, want %q", f.Severity, model.SeverityDanger)
	}
	if f.Message != "You must be logged in to view this page." {
		t.Errorf("Message = %q", f.Message)
	}
}

func TestAccessGate_DenialsAreIndistinguishable(t *testing.T) {
	expired := validSession()
	finder := &mockSessionFinder{
		findFn: func(token string) *model.Session {
			switch token {
			case "expired-token":
				// 期限切れはStore.Findがnilを返す契約
				return nil
			case "logged-out-token":
				s := *expired
				s.IsLogin = false
				return &s
			default:
				return nil
			}
		},
	}

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"Cookie欠落", nil},
		{"空のトークン", &http.Cookie{Name: SessionCookieName, Value: ""}},
		{"未知のトークン", &http.Cookie{Name: SessionCookieName, Value: "unknown-token"}},
		{"期限切れセッション", &http.Cookie{Name: SessionCookieName, Value: "expired-token"}},
		{"ログアウト済みセッション", &http.Cookie{Name: SessionCookieName, Value: "logged-out-token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var user model.SessionUser
			gate := NewAccessGate(finder)(captureHandler(t, &called, &user))

			req := httptest.NewRequest(http.MethodGet, "/collections", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			gate.ServeHTTP(rec, req)

			if called {
				t.Fatal("handler must not be reached on denial")
			}
			assertDenied(t, rec)
		})
	}
}

func TestSessionUserFromContext_MissingUser_ReturnsError(t *testing.T) {
	if _, err := SessionUserFromContext(context.Background()); err == nil {
		t.Error("expected error for context without session user")
	}
}

func TestContextWithSessionUser_Roundtrip(t *testing.T) {
	want := model.SessionUser{ID: 5, Username: "bob", Email: "b@x.com"}
	ctx := ContextWithSessionUser(context.Background(), want)

	got, err := SessionUserFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != want {
		t.Errorf("user = %+v, want %+v", got, want)
	}
}
