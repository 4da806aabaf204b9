package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "github.com/webtriad/webtriad/internal/app"
	"github.com/webtriad/webtriad/internal/app/domain/member"
	"github.com/webtriad/webtriad/internal/errors"
)

// memberHandler exposes the member CRUD API.
type memberHandler struct {
	app *app.Application
}

// NewMemberRouter returns the member API routes. Authentication is applied
// by the caller so tests can exercise the routes directly.
func NewMemberRouter(application *app.Application) *mux.Router {
	h := &memberHandler{app: application}

	r := mux.NewRouter()
	r.HandleFunc("/member", h.list).Methods(http.MethodGet)
	r.HandleFunc("/member", h.create).Methods(http.MethodPost)
	r.HandleFunc("/member/{id:[0-9]+}", h.get).Methods(http.MethodGet)
	r.HandleFunc("/member/{id:[0-9]+}", h.update).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/member/{id:[0-9]+}", h.delete).Methods(http.MethodDelete)
	return r
}

// memberPayload is the request body for create and update. Pointer fields
// make a missing key distinguishable from a zero value.
type memberPayload struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Level *int    `json:"level"`
}

func (p memberPayload) validate() error {
	if p.Name == nil {
		return errors.BadRequest("name is required")
	}
	if p.Email == nil {
		return errors.BadRequest("email is required")
	}
	if p.Level == nil {
		return errors.BadRequest("level is required")
	}
	return nil
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func (h *memberHandler) list(w http.ResponseWriter, r *http.Request) {
	members, err := h.app.Members.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if members == nil {
		members = []member.Member{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

func (h *memberHandler) get(w http.ResponseWriter, r *http.Request) {
	m, err := h.app.Members.Get(r.Context(), pathID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"member": m})
}

func (h *memberHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload memberPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.app.Members.Create(r.Context(), member.Member{
		Name:  *payload.Name,
		Email: *payload.Email,
		Level: *payload.Level,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"member": created})
}

func (h *memberHandler) update(w http.ResponseWriter, r *http.Request) {
	var payload memberPayload
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, errors.BadRequest("invalid request body"))
		return
	}
	if err := payload.validate(); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.app.Members.Update(r.Context(), member.Member{
		ID:    pathID(r),
		Name:  *payload.Name,
		Email: *payload.Email,
		Level: *payload.Level,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"member": updated})
}

func (h *memberHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Members.Delete(r.Context(), pathID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "The member has been deleted!"})
}
