package middleware

import (
	"context"
	"net/http"

	"workforce/infras/jwt"
	"workforce/infras/otel"
	authService "workforce/internal/domains/auth/service"
	userModel "workforce/internal/domains/user/model"
	"workforce/permissions"
	"workforce/shared/constant"
	"workforce/shared/failure"
	"workforce/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
	Guard(http.Handler) http.Handler
}

type authRoleImpl struct {
	authService authService.Auth
	otel        otel.Otel
	permission  *permissions.PermissionData
}

func NewAuthRoleMiddleware(authService authService.Auth, otel otel.Otel, permissions *permissions.PermissionData) AuthRole {
	return &authRoleImpl{
		authService: authService,
		otel:        otel,
		permission:  permissions,
	}
}

// UserFromContext returns the user resolved by Auth.
func UserFromContext(ctx context.Context) (userModel.User, bool) {
	user, ok := ctx.Value(constant.ContextKeyUser).(userModel.User)

	return user, ok
}

// Guard runs Auth followed by RBAC. Routes mount it with chi's With so the route pattern is
// already resolved when permissions are looked up.
func (m *authRoleImpl) Guard(next http.Handler) http.Handler {
	return m.Auth(m.RBAC(next))
}

// Auth resolves the bearer token to a stored user.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		scopeCtx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.method":     request.Method,
		})

		token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			err = failure.Unauthorized("Not authenticated")
			response.WithUnauthorized(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		user, err := m.authService.Authenticate(scopeCtx, token)
		if err != nil {
			response.WithUnauthorized(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx := request.Context()
		ctx = context.WithValue(ctx, constant.ContextKeyUser, user)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, user.ID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, user.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, user.Role)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller's role against the route's permission entry.
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		user, ok := UserFromContext(ctx)
		if !ok {
			err := failure.CouldNotValidateCredentials
			response.WithUnauthorized(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path := chi.RouteContext(ctx).RoutePattern()
		permission := m.permission.FindPermissions(path, request.Method)

		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if len(permission.Permissions) > 0 {
			if err := m.authService.RequireRole(user, permission.Permissions...); err != nil {
				scope.TraceError(err)
				scope.SetAttributes(map[string]any{
					"user_role":     user.Role,
					"allowed_roles": permission.Permissions,
					"reason":        "role_not_allowed",
				})
				scope.End()
				response.WithError(writer, err)

				return
			}
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
