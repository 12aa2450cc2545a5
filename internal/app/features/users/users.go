// internal/app/features/users/users.go
package users

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	userstore "github.com/dalemusser/labhub/internal/app/store/users"
	"github.com/dalemusser/labhub/internal/app/system/authz"
	"github.com/dalemusser/labhub/internal/app/system/dates"
	"github.com/dalemusser/labhub/internal/app/system/httpjson"
	"github.com/dalemusser/labhub/internal/app/system/sanitize"
	"github.com/dalemusser/labhub/internal/app/system/timeouts"
	"github.com/dalemusser/labhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList returns every user.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	list, err := userstore.New(h.DB).List(ctx)
	if err != nil {
		h.Log.Error("list users failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load users")
		return
	}
	if list == nil {
		list = []models.User{}
	}
	httpjson.Write(w, http.StatusOK, list)
}

// ServeView returns one user.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Query())
	defer cancel()

	user, err := userstore.New(h.DB).GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("load user failed", zap.String("user_id", oid.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}

type updateUserInput struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	About          *string `json:"about"`
	Role           *string `json:"role"`
	EmploymentFrom *string `json:"employment_from"`
	EmploymentTo   *string `json:"employment_to"`
}

// HandleUpdate edits a user profile. A user may edit themself; admins may
// edit anyone. Role changes and the employment end date are admin-only.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	idHex := chi.URLParam(r, "id")
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	isAdmin := authz.IsAdmin(r)
	if !isAdmin && !authz.IsSelf(r, idHex) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return
	}

	var in updateUserInput
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
	if in.About != nil {
		set["about"] = sanitize.Text(*in.About)
	}
	if in.Role != nil {
		if !isAdmin {
			httpjson.Error(w, http.StatusForbidden, "only admins may change roles")
			return
		}
		role := strings.ToLower(strings.TrimSpace(*in.Role))
		if role != models.RoleEmployee && role != models.RoleAdmin {
			httpjson.Error(w, http.StatusBadRequest, "role must be employee or admin")
			return
		}
		set["role"] = role
	}
	if in.EmploymentFrom != nil {
		from, err := dates.ParseOptional(*in.EmploymentFrom)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid employment_from date")
			return
		}
		set["employment.from"] = from
	}
	if in.EmploymentTo != nil {
		if !isAdmin {
			httpjson.Error(w, http.StatusForbidden, "only admins may set the employment end date")
			return
		}
		to, err := dates.ParseOptional(*in.EmploymentTo)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid employment_to date")
			return
		}
		set["employment.to"] = to
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
		case errors.Is(err, userstore.ErrNotFound):
			httpjson.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, userstore.ErrDuplicateEmail):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			h.Log.Error("update user failed", zap.String("user_id", idHex), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}

	user, err := store.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("load user failed", zap.String("user_id", idHex), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	h.Activity.Record(ctx, r, "user.update", map[string]string{"user_id": idHex})
	httpjson.Write(w, http.StatusOK, user)
}
