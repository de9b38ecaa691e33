package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/authorization"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/domain"
	"github.com/Mazharul-Islam-2046/bnBreeze-server/errors"
	application "github.com/Mazharul-Islam-2046/bnBreeze-server/service"
)

type UserHandler struct {
	service   *application.UserService
	responder *Responder
	tracer    trace.Tracer
}

func NewUserHandler(service *application.UserService, responder *Responder, tracer trace.Tracer) *UserHandler {
	return &UserHandler{
		service:   service,
		responder: responder,
		tracer:    tracer,
	}
}

func (handler *UserHandler) Init(router *mux.Router) {
	router.HandleFunc("/users", handler.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/users/profile", handler.UpdateProfile).Methods(http.MethodPut)
	router.HandleFunc("/users/email/{email}", handler.GetByEmail).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}", handler.GetById).Methods(http.MethodGet)
}

func (handler *UserHandler) UpdateProfile(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.UpdateProfile")
	defer span.End()

	identity, ok := authorization.IdentityFromContext(ctx)
	if !ok {
		handler.responder.Error(writer, req, errors.Authentication(errors.UnauthorizedRequest))
		return
	}

	var update domain.UserUpdate
	if err := decodeJSON(writer, req, &update); err != nil {
		handler.responder.Error(writer, req, err)
		return
	}

	user, err := handler.service.UpdateUser(ctx, identity.User.ID, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.responder.JSON(writer, http.StatusOK, user, "Profile updated successfully")
}

func (handler *UserHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.GetAll")
	defer span.End()

	query := req.URL.Query()
	page, limit, err := application.ParsePagination(query.Get("page"), query.Get("limit"))
	if err != nil {
		handler.responder.Error(writer, req, err)
		return
	}
	filter := domain.UserFilter{
		Role:   domain.Role(query.Get("role")),
		Status: domain.Status(query.Get("status")),
		Search: query.Get("search"),
	}

	users, err := handler.service.GetAllUsers(ctx, page, limit, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.responder.JSON(writer, http.StatusOK, users, "Users retrieved successfully")
}

func (handler *UserHandler) GetById(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.GetById")
	defer span.End()

	query := req.URL.Query()
	bookings, err := queryBool(query.Get("includeBookings"), "includeBookings")
	if err != nil {
		handler.responder.Error(writer, req, err)
		return
	}
	listings, err := queryBool(query.Get("includeListings"), "includeListings")
	if err != nil {
		handler.responder.Error(writer, req, err)
		return
	}

	user, err := handler.service.GetUserById(ctx, mux.Vars(req)["id"], domain.UserExpansion{
		Bookings: bookings,
		Listings: listings,
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.responder.JSON(writer, http.StatusOK, user, "User retrieved successfully")
}

func (handler *UserHandler) GetByEmail(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.GetByEmail")
	defer span.End()

	user, err := handler.service.GetUserByEmail(ctx, mux.Vars(req)["email"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.responder.JSON(writer, http.StatusOK, user, "User retrieved successfully")
}

func queryBool(raw, name string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.Validation(errors.ValidationFailed, name+" must be true or false")
	}
	return value, nil
}
