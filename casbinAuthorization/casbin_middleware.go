package casbinAuthorization

import (
	"net/http"

	"github.com/casbin/casbin"
	"github.com/sirupsen/logrus"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/authorization"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
)

const unauthenticated = "Unauthenticated"

// ErrorWriter reports a rejected request to the client.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcerSafe(modelPath, policyPath)
}

// CasbinMiddleware enforces the route policy for the role of the identity in
// the request context. Anonymous callers are denied with 401, authenticated
// ones with 403.
func CasbinMiddleware(e *casbin.Enforcer, logger *logrus.Logger, onError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			userRole := authorization.RoleFromContext(r.Context())

			res, err := e.EnforceSafe(userRole, r.URL.Path, r.Method)
			if err != nil {
				onError(w, r, errors.Internal(err))
				return
			}
			if res {
				next.ServeHTTP(w, r)
				return
			}

			logger.WithFields(logrus.Fields{
				"role":   userRole,
				"path":   r.URL.Path,
				"method": r.Method,
			}).Debug("request denied by policy")

			if userRole == unauthenticated {
				onError(w, r, errors.Authentication(errors.UnauthorizedRequest))
				return
			}
			onError(w, r, errors.Authorization(errors.Forbidden))
		}

		return http.HandlerFunc(fn)
	}
}
