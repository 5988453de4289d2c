package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/retroventures/sourcehub-backend/api/middleware"
	"github.com/retroventures/sourcehub-backend/api/validators"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/pagination"
)

// actorFrom pulls the authenticated user out of the request context.
func actorFrom(r *http.Request) (uuid.UUID, enums.UserRole, error) {
	userID := middleware.UserIDFromContext(r.Context())
	role := middleware.RoleFromContext(r.Context())
	if userID == uuid.Nil || !role.IsValid() {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return userID, role, nil
}

func paginationFrom(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Limit: limit, Offset: offset}, nil
}
