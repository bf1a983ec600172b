package api

import (
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suresh-yadav/portfolio-backend/database"
	"github.com/suresh-yadav/portfolio-backend/errs"
	"github.com/suresh-yadav/portfolio-backend/models"
)

// adminResource is one record kind mounted under /admin/{name}.
type adminResource interface {
	name() string
	routes(r chi.Router)
}

// recordPtr is satisfied by *T when T is a content record.
type recordPtr[T any] interface {
	*T
	models.Record
}

// resourceHandler serves list/get/create/update/delete for one record kind, driven by
// its descriptor.
type resourceHandler[T any, P recordPtr[T]] struct {
	responder  Responder
	logger     zerolog.Logger
	descriptor models.Descriptor
	repo       *database.RecordRepo[T]
	newRecord  func() P
}

func newResourceHandler[T any, P recordPtr[T]](descriptor models.Descriptor, repo *database.RecordRepo[T], newRecord func() P) resourceHandler[T, P] {
	logger := log.With().Str("handlerName", "resourceHandler").Str("resource", descriptor.Name).Logger()

	return resourceHandler[T, P]{
		responder:  NewResponder(logger),
		logger:     logger,
		descriptor: descriptor,
		repo:       repo,
		newRecord:  newRecord,
	}
}

// ResourceList is the admin listing of one record kind
type ResourceList[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func (h resourceHandler[T, P]) name() string {
	return h.descriptor.Name
}

func (h resourceHandler[T, P]) routes(r chi.Router) {
	r.Get("/", h.list())
	r.Get("/{id}", h.get())
	r.Delete("/{id}", h.delete())
	if !h.descriptor.ReadOnly {
		r.Post("/", h.create())
		r.Put("/{id}", h.update())
	}
}

// list returns every record of the resource
// @Summary List records
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Success 200 {object} ResourceList[any]
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/{resource} [get]
func (h resourceHandler[T, P]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.repo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", h.descriptor.Label, err))
			return
		}

		h.responder.WriteJSON(w, ResourceList[T]{Items: items, Total: len(items)})
	}
}

// get returns one record
// @Summary Get record
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} any
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Failure 404 {object} ErrorResponse
// @Router /admin/{resource}/{id} [get]
func (h resourceHandler[T, P]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		record, err := h.repo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.descriptor.Label, err))
			return
		}
		if record == nil {
			h.responder.WriteError(w, errs.NewNotFound(h.descriptor.Name))
			return
		}

		h.responder.WriteJSON(w, record)
	}
}

// create validates and stores a new record
// @Summary Create record
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Success 201 {object} any
// @Failure 400 {object} ErrorResponse "Bad Request - a field is missing or invalid"
// @Failure 409 {object} ErrorResponse "Conflict - a unique field is taken"
// @Router /admin/{resource} [post]
func (h resourceHandler[T, P]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := h.newRecord()
		if err := h.responder.decodeJSON(w, r, record); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		record.SetRecordID(uuid.Nil)
		keepManagedFields((*T)(record), new(T))

		if err := h.repo.Add(r.Context(), (*T)(record)); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", h.descriptor.Label, err))
			return
		}

		h.writeStored(w, r, record.RecordID(), http.StatusCreated)
	}
}

// update applies the supplied fields to an existing record. Omitted fields keep their
// stored values.
// @Summary Update record
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} any
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/{resource}/{id} [put]
func (h resourceHandler[T, P]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.repo.Bare().FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", h.descriptor.Label, err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFound(h.descriptor.Name))
			return
		}

		stored := *existing
		record := P(existing)
		if err := h.responder.decodeJSON(w, r, record); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		record.SetRecordID(id)
		keepManagedFields(existing, &stored)

		if err := h.repo.Update(r.Context(), existing); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", h.descriptor.Label, err))
			return
		}

		h.writeStored(w, r, id, http.StatusOK)
	}
}

// delete removes a record
// @Summary Delete record
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param resource path string true "Resource name"
// @Param id path string true "Record ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /admin/{resource}/{id} [delete]
func (h resourceHandler[T, P]) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := recordIDParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		removed, err := h.repo.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", h.descriptor.Label, err))
			return
		}
		if !removed {
			h.responder.WriteError(w, errs.NewNotFound(h.descriptor.Name))
			return
		}

		operator, _ := ctxGetOperator(r.Context())
		h.logger.Info().Str("id", id.String()).Str("operator", operator).Msg("Record deleted")

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": h.descriptor.Name + " record deleted successfully",
		})
	}
}

// writeStored reloads the record with its associations and writes it.
func (h resourceHandler[T, P]) writeStored(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int) {
	stored, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", h.descriptor.Label, err))
		return
	}
	if stored == nil {
		h.responder.WriteError(w, errs.NewNotFound(h.descriptor.Name))
		return
	}
	h.responder.WriteJSONStatus(w, status, stored)
}

// managedFields are timestamps the store maintains; request bodies never set them.
var managedFields = []string{"CreatedAt", "UpdatedAt"}

// keepManagedFields copies the managed fields of src onto dst.
func keepManagedFields[T any](dst, src *T) {
	d, s := reflect.ValueOf(dst).Elem(), reflect.ValueOf(src).Elem()
	for _, name := range managedFields {
		if field := d.FieldByName(name); field.IsValid() && field.CanSet() {
			field.Set(s.FieldByName(name))
		}
	}
}

func recordIDParam(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.NewInvalidParamError("id", "must be a UUID")
	}
	return id, nil
}
