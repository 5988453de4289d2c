package middleware

import (
	"net/http"

	"github.com/retroventures/sourcehub-backend/api/responses"
	pkgerrors "github.com/retroventures/sourcehub-backend/pkg/errors"
	"github.com/retroventures/sourcehub-backend/pkg/enums"
	"github.com/retroventures/sourcehub-backend/pkg/logger"
)

// Resource names a protected surface of the API.
type Resource string

const (
	ResourceUsers    Resource = "users"
	ResourceProducts Resource = "products"
	ResourceSourcing Resource = "sourcing"
	ResourceReports  Resource = "reports"
)

// Action names an operation on a resource.
type Action string

const (
	ActionRead     Action = "read"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionAssign   Action = "assign"
	ActionOverride Action = "override"
	ActionExport   Action = "export"

	ActionDashboard      Action = "dashboard"
	ActionSourcerStats   Action = "sourcer_stats"
	ActionPurchaserStats Action = "purchaser_stats"
)

type policyKey struct {
	resource Resource
	action   Action
}

// accessPolicy is the single authorization table for the API. Route handlers
// never check roles themselves.
var accessPolicy = map[policyKey][]enums.UserRole{
	{ResourceUsers, ActionRead}:   {enums.UserRoleAdmin, enums.UserRoleManager},
	{ResourceUsers, ActionCreate}: {enums.UserRoleAdmin},
	{ResourceUsers, ActionUpdate}: {enums.UserRoleAdmin},
	{ResourceUsers, ActionDelete}: {enums.UserRoleAdmin},

	{ResourceProducts, ActionRead}:   {enums.UserRoleAdmin, enums.UserRoleManager, enums.UserRoleSourcer, enums.UserRolePurchaser},
	{ResourceProducts, ActionCreate}: {enums.UserRoleAdmin, enums.UserRoleManager},
	{ResourceProducts, ActionUpdate}: {enums.UserRoleAdmin, enums.UserRoleManager},
	{ResourceProducts, ActionDelete}: {enums.UserRoleAdmin},

	{ResourceSourcing, ActionRead}:     {enums.UserRoleAdmin, enums.UserRoleManager, enums.UserRoleSourcer, enums.UserRolePurchaser},
	{ResourceSourcing, ActionCreate}:   {enums.UserRoleAdmin, enums.UserRoleSourcer, enums.UserRolePurchaser},
	{ResourceSourcing, ActionUpdate}:   {enums.UserRoleAdmin, enums.UserRoleSourcer, enums.UserRolePurchaser},
	{ResourceSourcing, ActionDelete}:   {enums.UserRoleAdmin, enums.UserRoleSourcer, enums.UserRolePurchaser},
	{ResourceSourcing, ActionAssign}:   {enums.UserRoleAdmin, enums.UserRolePurchaser},
	{ResourceSourcing, ActionOverride}: {enums.UserRoleAdmin, enums.UserRoleManager},

	{ResourceReports, ActionRead}:           {enums.UserRoleAdmin, enums.UserRoleManager, enums.UserRoleSourcer, enums.UserRolePurchaser},
	{ResourceReports, ActionExport}:         {enums.UserRoleAdmin, enums.UserRoleManager},
	{ResourceReports, ActionDashboard}:      {enums.UserRoleAdmin, enums.UserRoleManager},
	{ResourceReports, ActionSourcerStats}:   {enums.UserRoleSourcer},
	{ResourceReports, ActionPurchaserStats}: {enums.UserRolePurchaser},
}

// Allowed reports whether the role may perform the action on the resource.
func Allowed(role enums.UserRole, resource Resource, action Action) bool {
	for _, allowed := range accessPolicy[policyKey{resource, action}] {
		if allowed == role {
			return true
		}
	}
	return false
}

// RequirePolicy gates a route on the access policy table.
func RequirePolicy(resource Resource, action Action, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			if !Allowed(role, resource, action) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient permissions"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
