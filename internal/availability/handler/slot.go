package handler

import (
	"net/http"

	"tourism/internal/availability/service"
	httputil "tourism/pkg/http"
	"tourism/pkg/logger"
	"tourism/pkg/middleware"
	"tourism/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

// Create adds one slot, or a weekly series when repeat_weekly is set.
func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req model.SlotRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if req.RepeatWeekly {
		result, err := h.service.CreateWeekly(r.Context(), actor, ps.ByName("id"), &req)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteCreated(w, result)
		return
	}

	slot, err := h.service.Create(r.Context(), actor, ps.ByName("id"), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, slot)
}

func (h *AvailabilityHandler) CreateBatch(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req model.RecurrenceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.CreateBatch(r.Context(), actor, ps.ByName("id"), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, result)
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	query := r.URL.Query()
	filter := model.SlotFilter{
		Date: query.Get("date"),
		From: query.Get("from"),
		To:   query.Get("to"),
	}

	slots, err := h.service.List(r.Context(), ps.ByName("id"), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, slots)
}

func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var updates model.SlotUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	slot, err := h.service.Update(r.Context(), actor, ps.ByName("id"), &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, slot)
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), actor, ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/guides/:id/availabilities", h.Create)
	router.POST("/api/v1/guides/:id/availabilities/batch", h.CreateBatch)
	router.GET("/api/v1/guides/:id/availabilities", h.List)
	router.PATCH("/api/v1/availabilities/:id", h.Update)
	router.DELETE("/api/v1/availabilities/:id", h.Delete)
}
