package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/sipas-org/sipas-api/internal/http/respond"
	"github.com/sipas-org/sipas-api/internal/pagination"
	"github.com/sipas-org/sipas-api/internal/transcode"
)

// Service is the CRUD engine a CRUDHandler forwards to. *crud.Service
// satisfies it.
type Service[T any] interface {
	FindAll(ctx context.Context, req pagination.Request) (pagination.Response[T], error)
	FindOne(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, input map[string]any) (T, error)
	Update(ctx context.Context, id int64, input map[string]any) (T, error)
	Remove(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// CRUDHandler exposes one resource over HTTP. C and U are the create and
// update bodies.
type CRUDHandler[T, C, U any] struct {
	resource string
	svc      Service[T]
	validate *validator.Validate
}

// NewCRUDHandler constructs the handler. resource names the entity in
// response messages.
func NewCRUDHandler[T, C, U any](resource string, svc Service[T], validate *validator.Validate) *CRUDHandler[T, C, U] {
	return &CRUDHandler[T, C, U]{resource: resource, svc: svc, validate: validate}
}

func (h *CRUDHandler[T, C, U]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Get("/count", h.count)
	r.Get("/{id}", h.get)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
	return r
}

func (h *CRUDHandler[T, C, U]) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.FindAll(r.Context(), pagination.FromQuery(r.URL.Query()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.resource+" list retrieved", page)
}

func (h *CRUDHandler[T, C, U]) count(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.resource+" count retrieved", map[string]int64{"count": n})
}

func (h *CRUDHandler[T, C, U]) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := h.svc.FindOne(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.resource+" retrieved", item)
}

func (h *CRUDHandler[T, C, U]) create(w http.ResponseWriter, r *http.Request) {
	var body C
	if err := decode(r, h.validate, &body); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.svc.Create(r.Context(), transcode.StructToMap(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, h.resource+" created", created)
}

func (h *CRUDHandler[T, C, U]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body U
	if err := decode(r, h.validate, &body); err != nil {
		writeError(w, r, err)
		return
	}
	updated, err := h.svc.Update(r.Context(), id, transcode.StructToMap(body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.resource+" updated", updated)
}

func (h *CRUDHandler[T, C, U]) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.resource+" deleted", nil)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, validate *validator.Validate, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return errInvalidPayload
	}
	return validate.Struct(dst)
}
