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

type GuideHandler struct {
	service service.GuideService
	log     *logger.Logger
}

func NewGuideHandler(service service.GuideService, log *logger.Logger) *GuideHandler {
	return &GuideHandler{
		service: service,
		log:     log,
	}
}

func (h *GuideHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var guide model.Guide
	if err := httputil.DecodeJSON(r, &guide); err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Create(r.Context(), actor, &guide); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteCreated(w, guide)
}

func (h *GuideHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	guide, err := h.service.GetByID(r.Context(), actor, ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, guide)
}

func (h *GuideHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	filter := model.ListingFilter{
		City:              query.Get("city"),
		Language:          query.Get("language"),
		IncludeUnapproved: query.Get("include_unapproved") == "true",
	}

	guides, total, err := h.service.GetAll(r.Context(), actor, filter, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WritePaginated(w, guides, total, limit, offset)
}

func (h *GuideHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var updates model.GuideUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	guide, err := h.service.Update(r.Context(), actor, ps.ByName("id"), &updates)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, guide)
}

func (h *GuideHandler) SetFlags(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var flags model.GuideFlags
	if err := httputil.DecodeJSON(r, &flags); err != nil {
		httputil.WriteError(w, err)
		return
	}

	guide, err := h.service.SetFlags(r.Context(), actor, ps.ByName("id"), &flags)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteSuccess(w, guide)
}

func (h *GuideHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *GuideHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/guides", h.Create)
	router.GET("/api/v1/guides", h.GetAll)
	router.GET("/api/v1/guides/:id", h.GetByID)
	router.PATCH("/api/v1/guides/:id", h.Update)
	router.DELETE("/api/v1/guides/:id", h.Delete)
	router.PATCH("/api/v1/guides/:id/flags", h.SetFlags)
}
