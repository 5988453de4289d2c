package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/retroventures/sourcehub-backend/pkg/enums"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name     string
		role     enums.UserRole
		resource Resource
		action   Action
		want     bool
	}{
		{"admin creates users", enums.UserRoleAdmin, ResourceUsers, ActionCreate, true},
		{"manager cannot create users", enums.UserRoleManager, ResourceUsers, ActionCreate, false},
		{"manager lists users", enums.UserRoleManager, ResourceUsers, ActionRead, true},
		{"sourcer creates sourcing orders", enums.UserRoleSourcer, ResourceSourcing, ActionCreate, true},
		{"sourcer cannot assign orders", enums.UserRoleSourcer, ResourceSourcing, ActionAssign, false},
		{"purchaser assigns orders", enums.UserRolePurchaser, ResourceSourcing, ActionAssign, true},
		{"purchaser cannot freeze totals", enums.UserRolePurchaser, ResourceSourcing, ActionOverride, false},
		{"manager freezes totals", enums.UserRoleManager, ResourceSourcing, ActionOverride, true},
		{"sourcer reads reports", enums.UserRoleSourcer, ResourceReports, ActionRead, true},
		{"sourcer cannot export reports", enums.UserRoleSourcer, ResourceReports, ActionExport, false},
		{"manager views dashboard", enums.UserRoleManager, ResourceReports, ActionDashboard, true},
		{"purchaser cannot view dashboard", enums.UserRolePurchaser, ResourceReports, ActionDashboard, false},
		{"sourcer updates sourcing orders", enums.UserRoleSourcer, ResourceSourcing, ActionUpdate, true},
		{"manager cannot update sourcing orders", enums.UserRoleManager, ResourceSourcing, ActionUpdate, false},
		{"unknown role denied", enums.UserRole("ghost"), ResourceSourcing, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.resource, tt.action))
		})
	}
}

func TestRequirePolicy(t *testing.T) {
	handler := RequirePolicy(ResourceSourcing, ActionAssign, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("allowed role passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithActor(req.Context(), uuid.New(), enums.UserRolePurchaser))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("denied role gets forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithActor(req.Context(), uuid.New(), enums.UserRoleSourcer))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("missing actor gets forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
