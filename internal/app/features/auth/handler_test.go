package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authfeature "github.com/dalemusser/kanbanhub/internal/app/features/auth"
	tokenstore "github.com/dalemusser/kanbanhub/internal/app/store/tokens"
	userstore "github.com/dalemusser/kanbanhub/internal/app/store/users"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	sysauth "github.com/dalemusser/kanbanhub/internal/app/system/auth"
	"github.com/dalemusser/kanbanhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*authfeature.Handler, *testutil.Fixtures, *tokenstore.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	tokens := tokenstore.New(db, time.Hour)
	manager, err := sysauth.NewManager(testSessionKey, "kanbanhub-test", "", false, tokens, userstore.New(db), logger)
	if err != nil {
		t.Fatalf("credential manager: %v", err)
	}

	handler := authfeature.NewHandler(db, manager, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures, tokens
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"fullname":          "Pat Jones",
		"email":             email,
		"password":          "hunter2hunter2",
		"repeated_password": "hunter2hunter2",
	}
}

func TestHandleRegister_Success(t *testing.T) {
	handler, fixtures, tokens := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewJSONRequest(t, "POST", "/api/registration", registerBody("pat@test.com"))
	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token    string             `json:"token"`
		FullName string             `json:"fullname"`
		Email    string             `json:"email"`
		UserID   primitive.ObjectID `json:"user_id"`
	}
	testutil.DecodeBody(t, rec, &resp)

	if resp.Token == "" {
		t.Error("expected a bearer token")
	}
	if resp.FullName != "Pat Jones" || resp.Email != "pat@test.com" {
		t.Errorf("identity: got %q/%q", resp.FullName, resp.Email)
	}

	// The token resolves to the new user.
	userID, err := tokens.UserIDForToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("token should resolve: %v", err)
	}
	if userID != resp.UserID {
		t.Errorf("token user: got %v, want %v", userID, resp.UserID)
	}

	// The stored hash verifies against the submitted password.
	user, err := userstore.New(fixtures.DB()).GetByID(ctx, resp.UserID)
	if err != nil {
		t.Fatalf("load created user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")); err != nil {
		t.Errorf("password hash does not verify: %v", err)
	}
}

func TestHandleRegister_Validation(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{
			name: "password mismatch",
			body: map[string]any{
				"fullname": "Pat", "email": "pat@test.com",
				"password": "hunter2hunter2", "repeated_password": "different-pass",
			},
			field: "repeated_password",
		},
		{
			name: "short password",
			body: map[string]any{
				"fullname": "Pat", "email": "pat@test.com",
				"password": "short", "repeated_password": "short",
			},
			field: "password",
		},
		{
			name: "bad email",
			body: map[string]any{
				"fullname": "Pat", "email": "not-an-address",
				"password": "hunter2hunter2", "repeated_password": "hunter2hunter2",
			},
			field: "email",
		},
		{
			name: "missing fullname",
			body: map[string]any{
				"email":    "pat@test.com",
				"password": "hunter2hunter2", "repeated_password": "hunter2hunter2",
			},
			field: "fullname",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/api/registration", tc.body)
			rec := httptest.NewRecorder()
			handler.HandleRegister(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var payload struct {
				Error struct {
					Code   string            `json:"code"`
					Fields map[string]string `json:"fields"`
				} `json:"error"`
			}
			testutil.DecodeBody(t, rec, &payload)
			if payload.Error.Code != apierr.CodeValidation {
				t.Errorf("code: got %q", payload.Error.Code)
			}
			if _, ok := payload.Error.Fields[tc.field]; !ok {
				t.Errorf("expected a message for field %q, got %v", tc.field, payload.Error.Fields)
			}
		})
	}
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/registration", registerBody("dupe@test.com"))
	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first registration: expected 201, got %d", rec.Code)
	}

	// Case differences do not dodge the uniqueness check.
	req = testutil.NewJSONRequest(t, "POST", "/api/registration", registerBody("DUPE@test.com"))
	rec = httptest.NewRecorder()
	handler.HandleRegister(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate registration: expected 400, got %d", rec.Code)
	}
	if code := testutil.ErrorCode(t, rec); code != apierr.CodeValidation {
		t.Errorf("code: got %q, want %q", code, apierr.CodeValidation)
	}
}

func TestHandleLogin(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/api/registration", registerBody("login@test.com"))
	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("registration: expected 201, got %d", rec.Code)
	}

	login := func(email, password string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.NewJSONRequest(t, "POST", "/api/login", map[string]any{
			"email": email, "password": password,
		})
		rec := httptest.NewRecorder()
		handler.HandleLogin(rec, req)
		return rec
	}

	rec = login("login@test.com", "hunter2hunter2")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	testutil.DecodeBody(t, rec, &resp)
	if resp.Token == "" || resp.Email != "login@test.com" {
		t.Errorf("login response: %+v", resp)
	}

	// Wrong password and unknown address fail identically.
	wrongPass := login("login@test.com", "not-the-password")
	unknown := login("nobody@test.com", "hunter2hunter2")
	if wrongPass.Code != http.StatusBadRequest || unknown.Code != http.StatusBadRequest {
		t.Fatalf("bad credentials: expected 400/400, got %d/%d", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Error("failure responses should be indistinguishable")
	}
}

func TestHandleLogout_RevokesToken(t *testing.T) {
	handler, _, tokens := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := testutil.NewJSONRequest(t, "POST", "/api/registration", registerBody("out@test.com"))
	rec := httptest.NewRecorder()
	handler.HandleRegister(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("registration: expected 201, got %d", rec.Code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	testutil.DecodeBody(t, rec, &resp)

	req = testutil.NewJSONRequest(t, "POST", "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec = httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}
	if _, err := tokens.UserIDForToken(ctx, resp.Token); err != tokenstore.ErrInvalidToken {
		t.Errorf("token should be revoked, got %v", err)
	}
}

func TestServeEmailCheck(t *testing.T) {
	handler, fixtures, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	known := fixtures.CreateUser(ctx, "Known", "known@test.com")

	check := func(query string) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.NewJSONRequest(t, "GET", "/api/email-check?email="+query, nil)
		req = testutil.WithUser(req, known)
		rec := httptest.NewRecorder()
		handler.ServeEmailCheck(rec, req)
		return rec
	}

	rec := check("known@test.com")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Exists bool `json:"exists"`
		User   *struct {
			ID primitive.ObjectID `json:"id"`
		} `json:"user"`
	}
	testutil.DecodeBody(t, rec, &resp)
	if !resp.Exists || resp.User == nil || resp.User.ID != known.ID {
		t.Errorf("known address: got %+v", resp)
	}

	rec = check("free@test.com")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var missing struct {
		Exists bool      `json:"exists"`
		User   *struct{} `json:"user"`
	}
	testutil.DecodeBody(t, rec, &missing)
	if missing.Exists || missing.User != nil {
		t.Errorf("free address: got %+v", missing)
	}

	rec = check("not-an-address")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed address: expected 400, got %d", rec.Code)
	}
}
