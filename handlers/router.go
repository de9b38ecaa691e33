package handlers

import (
	"net/http"

	"github.com/casbin/casbin"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/casbinAuthorization"
)

const apiPrefix = "/api/v1"

// NewRouter mounts every handler under /api/v1. Route middleware runs only on
// matched routes, so unknown paths and methods fall through to the root
// router's 404 and 405 handlers before any policy check.
func NewRouter(authHandler *AuthHandler, userHandler *UserHandler, propertyHandler *PropertyHandler,
	enforcer *casbin.Enforcer, responder *Responder, logger *logrus.Logger) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = responder.NotFound()
	router.MethodNotAllowedHandler = responder.MethodNotAllowed()

	api := router.PathPrefix(apiPrefix).Subrouter()
	api.Use(ExtractTraceInfoMiddleware)
	api.Use(authHandler.Identify)
	api.Use(casbinAuthorization.CasbinMiddleware(enforcer, logger, responder.Error))

	authHandler.Init(api)
	userHandler.Init(api)
	propertyHandler.Init(api)

	var handler http.Handler = router
	handler = MiddlewareContentTypeSet(handler)
	handler = RecoveryMiddleware(responder)(handler)
	handler = LoggingMiddleware(logger)(handler)
	return handler
}
