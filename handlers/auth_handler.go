package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/authorization"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
	application "github.com/Mazharul-Islam-2046/bnBreeze-server/service"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

type AuthHandler struct {
	service   *application.AuthService
	responder *Responder
	tracer    trace.Tracer
}

func NewAuthHandler(service *application.AuthService, responder *Responder, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		service:   service,
		responder: responder,
		tracer:    tracer,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/users/auth/register", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/users/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/users/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)
	router.HandleFunc("/users/auth/logout", handler.Logout).Methods(http.MethodPost)
}

func (handler *AuthHandler) Register(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Register")
	defer span.End()

	var input domain.RegisterInput
	if err := decodeJSON(writer, req, &input); err != nil {
		handler.responder.Error(writer, req, err)
		return
	}

	user, err := handler.service.Register(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.responder.JSON(writer, http.StatusCreated, user, "User registered successfully")
}

func (handler *AuthHandler) Login(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Login")
	defer span.End()

	var input domain.LoginInput
	if err := decodeJSON(writer, req, &input); err != nil {
		handler.responder.Error(writer, req, err)
		return
	}

	result, err := handler.service.Login(ctx, input)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.setSessionCookies(writer, result)
	handler.responder.JSON(writer, http.StatusOK, result, "Login successful")
}

func (handler *AuthHandler) RefreshToken(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.RefreshToken")
	defer span.End()

	token := cookieValue(req, refreshTokenCookie)
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := decodeJSON(writer, req, &body); err != nil {
			handler.responder.Error(writer, req, err)
			return
		}
		token = body.RefreshToken
	}

	result, err := handler.service.RefreshSession(ctx, token)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.setSessionCookies(writer, result)
	handler.responder.JSON(writer, http.StatusOK, result, "Access token refreshed")
}

func (handler *AuthHandler) Logout(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "AuthHandler.Logout")
	defer span.End()

	identity, ok := authorization.IdentityFromContext(ctx)
	if !ok {
		handler.responder.Error(writer, req, errors.Authentication(errors.UnauthorizedRequest))
		return
	}

	if err := handler.service.Logout(ctx, identity.Claims, cookieValue(req, refreshTokenCookie)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	clearSessionCookies(writer)
	handler.responder.JSON(writer, http.StatusOK, nil, "Logged out successfully")
}

// Identify attaches the caller's identity when the request carries a valid
// access token. Requests without one pass through unauthenticated; route
// policy decides whether that is enough.
func (handler *AuthHandler) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		token := accessToken(req)
		if token == "" {
			next.ServeHTTP(writer, req)
			return
		}

		identity, err := handler.service.Authenticate(req.Context(), token)
		if err != nil {
			if errors.Is(err, errors.KindAuthentication) {
				next.ServeHTTP(writer, req)
				return
			}
			handler.responder.Error(writer, req, err)
			return
		}
		next.ServeHTTP(writer, req.WithContext(authorization.WithIdentity(req.Context(), identity)))
	})
}

// accessToken reads the access token from its cookie or a Bearer header.
func accessToken(req *http.Request) string {
	if token := cookieValue(req, accessTokenCookie); token != "" {
		return token
	}
	header := req.Header.Get("Authorization")
	if token, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(token)
	}
	return ""
}

func cookieValue(req *http.Request, name string) string {
	cookie, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (handler *AuthHandler) setSessionCookies(writer http.ResponseWriter, result *application.LoginResult) {
	maxAge := int(handler.service.AccessTTL() / time.Second)
	http.SetCookie(writer, sessionCookie(accessTokenCookie, result.AccessToken, maxAge))
	http.SetCookie(writer, sessionCookie(refreshTokenCookie, result.RefreshToken, maxAge))
}

func clearSessionCookies(writer http.ResponseWriter) {
	http.SetCookie(writer, sessionCookie(accessTokenCookie, "", -1))
	http.SetCookie(writer, sessionCookie(refreshTokenCookie, "", -1))
}

func sessionCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
	}
}
