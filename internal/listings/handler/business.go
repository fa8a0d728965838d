package handler

import (
	"net/http"

	"tourism/internal/listings/service"
	httputil "tourism/pkg/http"
	"tourism/pkg/logger"
	"tourism/pkg/middleware"
	"tourism/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BusinessHandler struct {
	service service.BusinessService
	log     *logger.Logger
}

func NewBusinessHandler(service service.BusinessService, log *logger.Logger) *BusinessHandler {
	return &BusinessHandler{
		service: service,
		log:     log,
	}
}

func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var business model.Business
	if err := httputil.DecodeJSON(r, &business); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Create(r.Context(), actor, &business); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, business)
}

func (h *BusinessHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	business, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, business)
}

func (h *BusinessHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	filter := model.ListingFilter{
		City:     query.Get("city"),
		Category: query.Get("category"),
	}

	businesses, total, err := h.service.GetAll(r.Context(), filter, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WritePaginated(w, businesses, total, limit, offset)
}

func (h *BusinessHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var updates model.BusinessUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	business, err := h.service.Update(r.Context(), actor, ps.ByName("id"), &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, business)
}

func (h *BusinessHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/businesses", h.Create)
	router.GET("/api/v1/businesses", h.GetAll)
	router.GET("/api/v1/businesses/:id", h.GetByID)
	router.PATCH("/api/v1/businesses/:id", h.Update)
}
