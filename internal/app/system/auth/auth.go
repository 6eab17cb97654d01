package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	tokenstore "github.com/dalemusser/kanbanhub/internal/app/store/tokens"
	userstore "github.com/dalemusser/kanbanhub/internal/app/store/users"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & context plumbing                                       |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is the authenticated identity injected into r.Context().
// It is re-fetched from the users collection on every request so email
// or name changes take effect immediately.
type SessionUser struct {
	ID       string
	Email    string
	FullName string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user directly into the request context,
// bypassing credential checks. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Manager                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// Manager issues and resolves credentials. Two forms are accepted:
//
//   - An opaque bearer token (Authorization: Bearer ...), stored in the
//     auth_tokens collection. This is the primary API credential.
//   - A signed session cookie carrying only the user id, for browser
//     clients. The user record is fetched fresh either way.
type Manager struct {
	cookies     *sessions.CookieStore
	sessionName string
	tokens      *tokenstore.Store
	users       *userstore.Store
	log         *zap.Logger
}

// NewManager builds a Manager. sessionKey signs the cookie and must be
// at least 32 characters in production.
func NewManager(sessionKey, sessionName, domain string, secure bool, tokens *tokenstore.Store, users *userstore.Store, log *zap.Logger) (*Manager, error) {
	if len(sessionKey) < 32 {
		return nil, fmt.Errorf("session key too short; provide >=32 random chars")
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		cookies:     store,
		sessionName: sessionName,
		tokens:      tokens,
		users:       users,
		log:         log,
	}, nil
}

// IssueCredentials creates an opaque bearer token for the user and sets
// the browser session cookie. The token string is returned for the
// login/registration response body.
func (m *Manager) IssueCredentials(ctx context.Context, w http.ResponseWriter, r *http.Request, userID primitive.ObjectID) (string, error) {
	tok, err := m.tokens.Issue(ctx, userID)
	if err != nil {
		return "", err
	}

	sess, _ := m.cookies.Get(r, m.sessionName)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID.Hex()
	if err := sess.Save(r, w); err != nil {
		// The bearer token is the credential of record; a cookie save
		// failure only degrades browser clients.
		m.log.Warn("session cookie save failed", zap.Error(err))
	}
	return tok.Token, nil
}

// ClearCredentials revokes the presented bearer token (if any) and
// expires the session cookie.
func (m *Manager) ClearCredentials(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if tok := BearerToken(r); tok != "" {
		if err := m.tokens.Revoke(ctx, tok); err != nil {
			return err
		}
	}

	sess, _ := m.cookies.Get(r, m.sessionName)
	sess.Values[isAuthKey] = false
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		m.log.Warn("session cookie clear failed", zap.Error(err))
	}
	return nil
}

// BearerToken extracts the opaque token from the Authorization header.
// Returns "" when no bearer credential is present.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// LoadUser injects the authenticated user into context when the
// request carries a valid credential. Requests without credentials
// (or with stale ones) continue anonymously; RequireSignedIn draws the
// line for protected routes.
func (m *Manager) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.resolve(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		u, err := m.users.GetByID(ctx, userID)
		if err != nil {
			// Token for a deleted user, or a transient DB failure:
			// treat the request as anonymous rather than erroring.
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, withUser(r, &SessionUser{
			ID:       u.ID.Hex(),
			Email:    u.Email,
			FullName: u.FullName,
		}))
	})
}

// resolve maps the request's credential to a user id. Bearer tokens
// win over cookies when both are present.
func (m *Manager) resolve(r *http.Request) (primitive.ObjectID, bool) {
	if tok := BearerToken(r); tok != "" {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		userID, err := m.tokens.UserIDForToken(ctx, tok)
		if err != nil {
			return primitive.NilObjectID, false
		}
		return userID, true
	}

	sess, err := m.cookies.Get(r, m.sessionName)
	if err != nil {
		return primitive.NilObjectID, false
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return primitive.NilObjectID, false
	}
	hexID, _ := sess.Values[userIDKey].(string)
	userID, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return primitive.NilObjectID, false
	}
	return userID, true
}

// RequireSignedIn ensures there is a user in context (set by LoadUser).
// API callers get a 401 JSON error otherwise.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		apierr.Unauthorized(w, "authentication required")
	})
}
