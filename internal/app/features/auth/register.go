// internal/app/features/auth/register.go
package auth

import (
	"context"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/kanbanhub/internal/app/store/users"
	"github.com/dalemusser/kanbanhub/internal/app/system/apierr"
	"github.com/dalemusser/kanbanhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/kanbanhub/internal/app/system/httpjson"
	"github.com/dalemusser/kanbanhub/internal/app/system/inputval"
	"github.com/dalemusser/kanbanhub/internal/app/system/timeouts"
	"github.com/dalemusser/kanbanhub/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// HandleRegister handles POST /api/registration.
//
// An address that is already registered is rejected as a validation
// error; the unique index on the folded email is the backstop against
// two concurrent registrations of the same address. On success the
// caller is signed in immediately.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.errs.LogBadRequest(w, r, "decode registration", err, "body", "malformed request body")
		return
	}

	fullName := htmlsanitize.Clean(req.FullName)
	email := strings.TrimSpace(req.Email)

	var v inputval.Result
	v.Require("fullname", fullName, "fullname is required")
	v.MaxLen("fullname", fullName, 150, "fullname is too long")
	v.Require("email", email, "email is required")
	v.Email("email", email, "email is not a valid address")
	if len(req.Password) < minPasswordLen {
		v.Fail("password", "password must be at least 8 characters")
	}
	if len(req.Password) > maxPasswordLen {
		v.Fail("password", "password is too long")
	}
	v.Equal("repeated_password", req.Password, req.RepeatedPassword, "passwords do not match")
	if v.HasErrors() {
		apierr.Validation(w, v.Fields())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errs.LogServerError(w, r, "hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.users.Create(ctx, models.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
	})
	if err != nil {
		if err == userstore.ErrDuplicateEmail {
			apierr.Validation(w, map[string]string{"email": "an account with this email already exists"})
			return
		}
		h.errs.LogServerError(w, r, "create user", err)
		return
	}

	token, err := h.sessions.IssueCredentials(ctx, w, r, created.ID)
	if err != nil {
		h.errs.LogServerError(w, r, "issue credentials", err)
		return
	}

	httpjson.Respond(w, http.StatusCreated, credentialResponse{
		Token:    token,
		FullName: created.FullName,
		Email:    created.Email,
		UserID:   created.ID,
	})
}
