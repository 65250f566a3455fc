package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/validation"
	"github.com/go-chi/chi/v5"
)

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Favorite  bool      `json:"favorite"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toContactResponse(c *models.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Favorite:  c.Favorite,
		Owner:     c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (h *handler) listContacts(w http.ResponseWriter, r *http.Request) {
	owner := UserFromContext(r.Context())

	list, err := h.contacts.List(r.Context(), owner.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]contactResponse, 0, len(list))
	for i := range list {
		out = append(out, toContactResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) getContact(w http.ResponseWriter, r *http.Request) {
	owner := UserFromContext(r.Context())

	c, err := h.contacts.Get(r.Context(), owner.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(c))
}

func (h *handler) createContact(w http.ResponseWriter, r *http.Request) {
	owner := UserFromContext(r.Context())

	var req validation.ContactCreate
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.contacts.Create(r.Context(), owner.ID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toContactResponse(c))
}

func (h *handler) updateContact(w http.ResponseWriter, r *http.Request) {
	owner := UserFromContext(r.Context())

	var req validation.ContactUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.contacts.Update(r.Context(), owner.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(c))
}

func (h *handler) updateFavorite(w http.ResponseWriter, r *http.Request) {
	owner := UserFromContext(r.Context())

	var req validation.Favorite
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	c, err := h.contacts.SetFavorite(r.Context(), owner.ID, chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(c))
}

func (h *handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	owner := UserFromContext(r.Context())

	if err := h.contacts.Delete(r.Context(), owner.ID, chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Contact deleted")
}
