package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/ratelimit"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memPhotos struct{}

func (memPhotos) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "https://cdn.test/" + key, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Env:              "development",
		JWTSecret:        "test-secret-key-for-unit-tests",
		TokenTTL:         5 * time.Hour,
		StoreTimeout:     5 * time.Second,
		ShopTimezone:     "UTC",
		AppointmentPrice: 25,
		CORSOrigins:      []string{"http://localhost:3000"},
		OwnerUsername:    "owner",
		OwnerPassword:    "owner-pass",
	}
}

func setupRouter(t *testing.T, limiter ratelimit.Limiter) *gin.Engine {
	t.Helper()
	return setupRouterWithConfig(t, testConfig(), limiter)
}

func setupRouterWithConfig(t *testing.T, cfg *config.Config, limiter ratelimit.Limiter) *gin.Engine {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatal(err)
	}

	if err := dbpkg.EnsureOwner(context.Background(), db, cfg, zap.NewNop()); err != nil {
		t.Fatal(err)
	}

	r, err := NewEngine(cfg)
	if err != nil {
		t.Fatal(err)
	}
	RegisterRoutes(r, Deps{
		DB:           db,
		Config:       cfg,
		Log:          zap.NewNop(),
		LoginLimiter: limiter,
		Photos:       memPhotos{},
		Clock:        timezone.Fixed(time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)),
	})
	return r
}

// ----- helpers -----

func jsonRequest(method, url string, body interface{}, token string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

func parseResponseArray(w *httptest.ResponseRecorder) []interface{} {
	var result []interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, w, status)
	if got := parseResponse(w)["error_code"]; got != code {
		t.Fatalf("expected error_code %q, got %v", code, got)
	}
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := do(r, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, ""))
	expectStatus(t, w, http.StatusOK)
	token, _ := parseResponse(w)["token"].(string)
	if token == "" {
		t.Fatal("login returned no token")
	}
	return token
}

// seedShop creates barber João (id 1) with a login and a Monday 9-17 shift.
func seedShop(t *testing.T, r *gin.Engine) (ownerToken, barberToken string) {
	t.Helper()
	ownerToken = login(t, r, "owner", "owner-pass")

	w := do(r, jsonRequest(http.MethodPost, "/api/barbers", map[string]string{
		"name":     "João",
		"username": "joao",
		"password": "joao-pass",
	}, ownerToken))
	expectStatus(t, w, http.StatusCreated)

	w = do(r, jsonRequest(http.MethodPut, "/api/shifts", map[string]int{
		"barber_id":  1,
		"weekday":    0,
		"start_hour": 9,
		"end_hour":   17,
	}, ownerToken))
	expectStatus(t, w, http.StatusOK)

	barberToken = login(t, r, "joao", "joao-pass")
	return ownerToken, barberToken
}

func book(r *gin.Engine, hm string) *httptest.ResponseRecorder {
	return do(r, jsonRequest(http.MethodPost, "/api/appointments", map[string]interface{}{
		"barber_id":     1,
		"date":          "2026-02-02",
		"time":          hm,
		"customer_name": "Ana",
	}, ""))
}

// ----- tests -----

func TestHealth(t *testing.T) {
	r := setupRouter(t, nil)
	w := do(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	expectStatus(t, w, http.StatusOK)
}

func TestLogin(t *testing.T) {
	r := setupRouter(t, nil)

	w := do(r, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "owner", "password": "nope"}, ""))
	expectError(t, w, http.StatusUnauthorized, "invalid_credentials")

	w = do(r, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "ghost", "password": "nope"}, ""))
	expectError(t, w, http.StatusUnauthorized, "invalid_credentials")

	w = do(r, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "owner"}, ""))
	expectError(t, w, http.StatusBadRequest, "invalid_request")

	w = do(r, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "Owner", "password": "owner-pass"}, ""))
	expectStatus(t, w, http.StatusOK)
	body := parseResponse(w)
	if body["role"] != "owner" || body["token_type"] != "bearer" || body["name"] != "owner" {
		t.Fatalf("unexpected session %v", body)
	}
	if body["expires_at"] != "2026-02-02T17:00:00Z" {
		t.Errorf("unexpected expiry %v", body["expires_at"])
	}
}

func TestBookingFlow(t *testing.T) {
	r := setupRouter(t, nil)
	_, _ = seedShop(t, r)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/slots?barber_id=1&date=2026-02-02", nil))
	expectStatus(t, w, http.StatusOK)
	if n := len(parseResponseArray(w)); n != 16 {
		t.Fatalf("expected 16 slots, got %d", n)
	}

	w = book(r, "10:00")
	expectStatus(t, w, http.StatusCreated)
	created := parseResponse(w)
	if created["time"] != "10:00" || created["date"] != "2026-02-02" || created["service_type"] != "Haircut" {
		t.Fatalf("unexpected appointment %v", created)
	}

	expectError(t, book(r, "10:00"), http.StatusConflict, "slot_conflict")
	expectError(t, book(r, "10:10"), http.StatusUnprocessableEntity, "slot_not_offered")

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/slots?barber_id=1&date=2026-02-02", nil))
	slots := parseResponseArray(w)
	if len(slots) != 15 {
		t.Fatalf("expected 15 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s == "10:00" {
			t.Fatal("10:00 should no longer be offered")
		}
	}

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/slots?barber_id=1&date=02-02-2026", nil))
	expectError(t, w, http.StatusBadRequest, "invalid_date_format")

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/slots?barber_id=abc&date=2026-02-02", nil))
	expectError(t, w, http.StatusBadRequest, "invalid_request")
}

func TestShiftEndpoints(t *testing.T) {
	r := setupRouter(t, nil)
	ownerToken, barberToken := seedShop(t, r)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/shifts?barber_id=1&weekday=0", nil))
	expectStatus(t, w, http.StatusOK)
	if s := parseResponse(w); s["start_hour"] != float64(9) || s["end_hour"] != float64(17) {
		t.Fatalf("unexpected shift %v", s)
	}

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/shifts?barber_id=1&weekday=3", nil))
	expectError(t, w, http.StatusNotFound, "not_found")

	w = do(r, jsonRequest(http.MethodPut, "/api/shifts", map[string]int{
		"barber_id": 1, "weekday": 0, "start_hour": 12, "end_hour": 15,
	}, ownerToken))
	expectStatus(t, w, http.StatusOK)
	if shift, _ := parseResponse(w)["shift"].(map[string]interface{}); shift["start_hour"] != float64(12) {
		t.Fatalf("unexpected upsert response %v", w.Body.String())
	}

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/barbers/1/shifts", nil))
	expectStatus(t, w, http.StatusOK)
	if n := len(parseResponseArray(w)); n != 1 {
		t.Fatalf("expected one shift, got %d", n)
	}

	w = do(r, jsonRequest(http.MethodPut, "/api/shifts", map[string]int{
		"barber_id": 1, "weekday": 1, "start_hour": 9, "end_hour": 17,
	}, barberToken))
	expectError(t, w, http.StatusForbidden, "forbidden")

	w = do(r, jsonRequest(http.MethodPut, "/api/shifts", map[string]int{
		"barber_id": 1, "weekday": 1, "start_hour": 17, "end_hour": 9,
	}, ownerToken))
	expectError(t, w, http.StatusBadRequest, "invalid_range")

	w = do(r, jsonRequest(http.MethodPut, "/api/shifts", map[string]int{
		"barber_id": 1, "weekday": 1, "start_hour": 9, "end_hour": 17,
	}, ""))
	expectError(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestAppointmentVisibilityAndDeletion(t *testing.T) {
	r := setupRouter(t, nil)
	ownerToken, barberToken := seedShop(t, r)

	w := do(r, jsonRequest(http.MethodPost, "/api/barbers", map[string]string{"name": "Maria"}, ownerToken))
	expectStatus(t, w, http.StatusCreated)
	w = do(r, jsonRequest(http.MethodPut, "/api/shifts", map[string]int{
		"barber_id": 2, "weekday": 0, "start_hour": 9, "end_hour": 17,
	}, ownerToken))
	expectStatus(t, w, http.StatusOK)

	expectStatus(t, book(r, "09:00"), http.StatusCreated)
	w = do(r, jsonRequest(http.MethodPost, "/api/appointments", map[string]interface{}{
		"barber_id": 2, "date": "2026-02-02", "time": "09:00", "customer_name": "Bia", "service_type": "Beard",
	}, ""))
	expectStatus(t, w, http.StatusCreated)

	w = do(r, jsonRequest(http.MethodGet, "/api/appointments", nil, ownerToken))
	expectStatus(t, w, http.StatusOK)
	if total := parseResponse(w)["total"]; total != float64(2) {
		t.Fatalf("owner should see 2, got %v", total)
	}

	w = do(r, jsonRequest(http.MethodGet, "/api/appointments", nil, barberToken))
	expectStatus(t, w, http.StatusOK)
	body := parseResponse(w)
	if body["total"] != float64(1) {
		t.Fatalf("barber should see 1, got %v", body["total"])
	}
	first := body["data"].([]interface{})[0].(map[string]interface{})
	if first["barber_id"] != float64(1) {
		t.Fatalf("barber saw someone else's appointment: %v", first)
	}

	expectError(t, do(r, jsonRequest(http.MethodGet, "/api/appointments", nil, "")), http.StatusUnauthorized, "unauthorized")
	expectError(t, do(r, jsonRequest(http.MethodGet, "/api/appointments", nil, "garbage")), http.StatusUnauthorized, "unauthorized")

	expectError(t, do(r, jsonRequest(http.MethodDelete, "/api/appointments/1", nil, barberToken)), http.StatusForbidden, "forbidden")
	expectError(t, do(r, jsonRequest(http.MethodDelete, "/api/appointments/999", nil, barberToken)), http.StatusForbidden, "forbidden")
	expectError(t, do(r, jsonRequest(http.MethodDelete, "/api/appointments/0", nil, barberToken)), http.StatusForbidden, "forbidden")
	expectError(t, do(r, jsonRequest(http.MethodDelete, "/api/appointments/abc", nil, barberToken)), http.StatusForbidden, "forbidden")
	expectError(t, do(r, jsonRequest(http.MethodDelete, "/api/appointments/abc", nil, ownerToken)), http.StatusBadRequest, "invalid_request")
	expectError(t, do(r, jsonRequest(http.MethodDelete, "/api/appointments/999", nil, ownerToken)), http.StatusNotFound, "not_found")

	w = do(r, jsonRequest(http.MethodDelete, "/api/appointments/1", nil, ownerToken))
	expectStatus(t, w, http.StatusOK)

	w = do(r, jsonRequest(http.MethodGet, "/api/appointments", nil, ownerToken))
	if total := parseResponse(w)["total"]; total != float64(1) {
		t.Fatalf("expected 1 after delete, got %v", total)
	}
}

func TestMeCheckInAndDashboard(t *testing.T) {
	r := setupRouter(t, nil)
	ownerToken, barberToken := seedShop(t, r)
	expectStatus(t, book(r, "09:00"), http.StatusCreated)
	expectStatus(t, book(r, "13:00"), http.StatusCreated)

	w := do(r, jsonRequest(http.MethodGet, "/api/me", nil, barberToken))
	expectStatus(t, w, http.StatusOK)
	me := parseResponse(w)
	if me["username"] != "joao" || me["role"] != "barber" || me["barber_id"] != float64(1) || me["name"] != "João" {
		t.Fatalf("unexpected me %v", me)
	}

	w = do(r, jsonRequest(http.MethodPost, "/api/me/check-in", nil, barberToken))
	expectStatus(t, w, http.StatusOK)
	if parseResponse(w)["is_checked_in"] != true {
		t.Fatalf("expected checked in: %s", w.Body.String())
	}

	expectError(t, do(r, jsonRequest(http.MethodPost, "/api/me/check-in", nil, ownerToken)), http.StatusForbidden, "forbidden")

	w = do(r, jsonRequest(http.MethodGet, "/api/me/dashboard", nil, barberToken))
	expectStatus(t, w, http.StatusOK)
	stats, _ := parseResponse(w)["barber"].(map[string]interface{})
	if stats["customers_served_today"] != float64(1) || stats["total_earned_today"] != float64(25) ||
		stats["queue_duration_minutes"] != float64(30) || stats["is_checked_in"] != true {
		t.Fatalf("unexpected barber stats %v", stats)
	}

	w = do(r, jsonRequest(http.MethodGet, "/api/me/dashboard", nil, ownerToken))
	expectStatus(t, w, http.StatusOK)
	owner, _ := parseResponse(w)["owner"].(map[string]interface{})
	if owner["total_bookings"] != float64(2) || owner["revenue"] != float64(50) || owner["active_barbers"] != float64(1) {
		t.Fatalf("unexpected owner stats %v", owner)
	}
}

func TestChangePasswordEndpoint(t *testing.T) {
	r := setupRouter(t, nil)
	ownerToken := login(t, r, "owner", "owner-pass")

	w := do(r, jsonRequest(http.MethodPut, "/api/me/password", map[string]string{
		"current_password": "owner-pass",
		"new_password":     "brand-new-pass",
	}, ownerToken))
	expectStatus(t, w, http.StatusOK)

	login(t, r, "owner", "brand-new-pass")
	w = do(r, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "owner", "password": "owner-pass"}, ""))
	expectError(t, w, http.StatusUnauthorized, "invalid_credentials")
}

func TestDuplicateBarberUsername(t *testing.T) {
	r := setupRouter(t, nil)
	ownerToken, _ := seedShop(t, r)

	w := do(r, jsonRequest(http.MethodPost, "/api/barbers", map[string]string{
		"name": "Another", "username": "joao", "password": "joao-pass",
	}, ownerToken))
	expectError(t, w, http.StatusConflict, "already_exists")

	w = do(r, httptest.NewRequest(http.MethodGet, "/api/barbers", nil))
	if n := len(parseResponseArray(w)); n != 1 {
		t.Fatalf("expected 1 barber, got %d", n)
	}
}

func TestUploadPhotoEndpoint(t *testing.T) {
	r := setupRouter(t, nil)
	ownerToken, barberToken := seedShop(t, r)

	photoRequest := func(token string) *http.Request {
		var img bytes.Buffer
		_ = png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 16, 16)))

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, _ := mw.CreateFormFile("photo", "me.png")
		_, _ = part.Write(img.Bytes())
		_ = mw.Close()

		req := httptest.NewRequest(http.MethodPut, "/api/barbers/1/photo", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	expectError(t, do(r, photoRequest(barberToken)), http.StatusForbidden, "forbidden")

	w := do(r, photoRequest(ownerToken))
	expectStatus(t, w, http.StatusOK)
	url, _ := parseResponse(w)["photo_url"].(string)
	if len(url) < len("https://cdn.test/barbers/1/") || url[:len("https://cdn.test/barbers/1/")] != "https://cdn.test/barbers/1/" {
		t.Fatalf("unexpected photo url %q", url)
	}

	w = do(r, jsonRequest(http.MethodPut, "/api/barbers/1/photo", nil, ownerToken))
	expectError(t, w, http.StatusBadRequest, "invalid_request")
}

func TestLoginRateLimited(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Minute)
	t.Cleanup(limiter.Close)
	r := setupRouter(t, limiter)

	for i := 0; i < 2; i++ {
		w := do(r, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "owner", "password": "x"}, ""))
		expectStatus(t, w, http.StatusUnauthorized)
	}
	w := do(r, jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "owner", "password": "owner-pass"}, ""))
	expectError(t, w, http.StatusTooManyRequests, "too_many_requests")
}

func loginFrom(r *gin.Engine, forwardedFor string) *httptest.ResponseRecorder {
	req := jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{"username": "owner", "password": "x"}, "")
	req.RemoteAddr = "203.0.113.7:40000"
	req.Header.Set("X-Forwarded-For", forwardedFor)
	return do(r, req)
}

func TestLoginRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Minute)
	t.Cleanup(limiter.Close)
	r := setupRouter(t, limiter)

	allowed := 0
	for i := 0; i < 20; i++ {
		w := loginFrom(r, fmt.Sprintf("10.0.0.%d", i))
		if w.Code != http.StatusTooManyRequests {
			allowed++
		}
	}
	if allowed != 2 {
		t.Fatalf("expected 2 attempts through from one peer, got %d", allowed)
	}
}

func TestLoginRateLimitHonoursTrustedProxy(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(1, time.Minute)
	t.Cleanup(limiter.Close)
	cfg := testConfig()
	cfg.TrustedProxies = []string{"203.0.113.7"}
	r := setupRouterWithConfig(t, cfg, limiter)

	expectStatus(t, loginFrom(r, "10.0.0.1"), http.StatusUnauthorized)
	expectStatus(t, loginFrom(r, "10.0.0.2"), http.StatusUnauthorized)
	expectError(t, loginFrom(r, "10.0.0.1"), http.StatusTooManyRequests, "too_many_requests")
}

func TestNewEngineRejectsBadProxy(t *testing.T) {
	cfg := testConfig()
	cfg.TrustedProxies = []string{"not-an-ip"}
	if _, err := NewEngine(cfg); err == nil {
		t.Fatal("expected an error for an invalid proxy address")
	}
}
