// internal/app/features/login/login.go
package login

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	userstore "github.com/dalemusser/labhub/internal/app/store/users"
	"github.com/dalemusser/labhub/internal/app/system/auth"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the token + user envelope login and register return.
type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// HandleRegister creates an employee account and signs the caller in.
// Roles are never taken from the request; promotion to admin is a separate
// admin-only user update.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	name := sanitize.Text(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" {
		httpjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(in.Password) < minPasswordLen {
		httpjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	user, err := userstore.New(h.DB).Create(ctx, models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleEmployee,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Log.Error("register failed", zap.String("email", email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	token, err := h.Tokens.Mint(auth.TokenUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		h.Log.Error("token mint failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.Activity.Record(ctx, r, "auth.register", map[string]string{"user_id": user.ID.Hex()})
	httpjson.Write(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// HandleLogin verifies credentials and mints a bearer token. Bad email and
// bad password return the same message so the endpoint does not leak which
// accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	user, err := userstore.New(h.DB).GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		httpjson.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := h.Tokens.Mint(auth.TokenUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err != nil {
		h.Log.Error("token mint failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	h.Activity.Record(ctx, r, "auth.login", map[string]string{"user_id": user.ID.Hex()})
	httpjson.Write(w, http.StatusOK, authResponse{Token: token, User: user})
}

type updateProfileInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// HandleUpdateProfile lets the signed-in user change their own name, email,
// or password.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	oid, err := primitive.ObjectIDFromHex(current.ID)
	if err != nil {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in updateProfileInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	set := bson.M{}
	if in.Name != nil {
		name := sanitize.Text(*in.Name)
		if name == "" {
			httpjson.Error(w, http.StatusBadRequest, "name cannot be empty")
			return
		}
		set["name"] = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "a valid email is required")
			return
		}
		set["email"] = email
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			httpjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			h.Log.Error("password hash failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "profile update failed")
			return
		}
		set["password"] = string(hash)
	}
	if len(set) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	store := userstore.New(h.DB)
	if err := store.Update(ctx, oid, set); err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateEmail):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, userstore.ErrNotFound):
			httpjson.Error(w, http.StatusNotFound, "user not found")
		default:
			h.Log.Error("profile update failed", zap.String("user_id", current.ID), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "profile update failed")
		}
		return
	}

	user, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("load user failed", zap.String("user_id", current.ID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "profile update failed")
		return
	}

	h.Activity.Record(ctx, r, "auth.update_profile", map[string]string{"user_id": current.ID})
	httpjson.Write(w, http.StatusOK, user)
}
