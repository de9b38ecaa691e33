package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	application "github.com/Mazharul-Islam-2046/bnBreeze-server/service"
)

type PropertyHandler struct {
	service   *application.PropertyService
	responder *Responder
	tracer    trace.Tracer
}

func NewPropertyHandler(service *application.PropertyService, responder *Responder, tracer trace.Tracer) *PropertyHandler {
	return &PropertyHandler{
		service:   service,
		responder: responder,
		tracer:    tracer,
	}
}

func (handler *PropertyHandler) Init(router *mux.Router) {
	router.HandleFunc("/properties", handler.GetAll).Methods(http.MethodGet)
	router.HandleFunc("/properties/{id}", handler.GetById).Methods(http.MethodGet)
}

func (handler *PropertyHandler) GetAll(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.GetAll")
	defer span.End()

	query := req.URL.Query()
	page, limit, err := application.ParsePagination(query.Get("page"), query.Get("limit"))
	if err != nil {
		handler.responder.Error(writer, req, err)
		return
	}

	properties, err := handler.service.ListProperties(ctx, page, limit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.responder.JSON(writer, http.StatusOK, properties, "Properties retrieved successfully")
}

func (handler *PropertyHandler) GetById(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "PropertyHandler.GetById")
	defer span.End()

	property, err := handler.service.GetPropertyById(ctx, mux.Vars(req)["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		handler.responder.Error(writer, req, err)
		return
	}
	handler.responder.JSON(writer, http.StatusOK, property, "Property retrieved successfully")
}
