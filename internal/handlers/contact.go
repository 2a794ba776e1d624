package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/dkotelnikov/contacts/internal/apperrors"
	"github.com/dkotelnikov/contacts/internal/handlers/render"
	"github.com/dkotelnikov/contacts/internal/handlers/userctx"
	"github.com/dkotelnikov/contacts/internal/models"
)

type ContactHandler struct {
	contactService contactService
}

func NewContact(contacts contactService) *ContactHandler {
	return &ContactHandler{contactService: contacts}
}

type contactResponse struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
}

type contactRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,max=20"`
}

func toContactResponse(c models.Contact) contactResponse {
	return contactResponse{
		ID:     c.ID,
		UserID: c.UserID,
		Name:   c.Name,
		Phone:  c.Phone,
	}
}

// contactID parses the path id
// An unparsable id can't name any existing contact, so it renders
// the same 404 a missing contact does
func contactID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.Error(w, "Contact not found", http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *ContactHandler) create(w http.ResponseWriter, r *http.Request) {
	type CreateContactSuccessResponse struct {
		Contact contactResponse `json:"contact"`
	}

	user, _ := userctx.FromContext(r.Context())

	data, err := render.BindAndValidate[contactRequest](w, r)
	if err != nil {
		return
	}

	contact, err := h.contactService.CreateContact(r.Context(), &user, data.Name, data.Phone)
	if err != nil {
		render.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.JSONWithStatus(w, CreateContactSuccessResponse{Contact: toContactResponse(contact)}, http.StatusCreated)
}

func (h *ContactHandler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := userctx.FromContext(r.Context())

	contacts, err := h.contactService.ListContacts(r.Context(), &user)
	if err != nil {
		render.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := make([]contactResponse, 0, len(contacts))
	for _, c := range contacts {
		response = append(response, toContactResponse(c))
	}

	render.JSON(w, response)
}

func (h *ContactHandler) get(w http.ResponseWriter, r *http.Request) {
	user, _ := userctx.FromContext(r.Context())

	id, ok := contactID(w, r)
	if !ok {
		return
	}

	contact, err := h.contactService.GetContact(r.Context(), &user, id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrContactNotFound):
			render.Error(w, "Contact not found", http.StatusNotFound)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, toContactResponse(contact))
}

func (h *ContactHandler) update(w http.ResponseWriter, r *http.Request) {
	user, _ := userctx.FromContext(r.Context())

	id, ok := contactID(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[contactRequest](w, r)
	if err != nil {
		return
	}

	contact, err := h.contactService.UpdateContact(r.Context(), &user, id, data.Name, data.Phone)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrContactNotFound):
			render.Error(w, "Contact not found", http.StatusNotFound)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, toContactResponse(contact))
}

func (h *ContactHandler) delete(w http.ResponseWriter, r *http.Request) {
	type DeleteContactSuccessResponse struct {
		Message string `json:"message"`
	}

	user, _ := userctx.FromContext(r.Context())

	id, ok := contactID(w, r)
	if !ok {
		return
	}

	err := h.contactService.DeleteContact(r.Context(), &user, id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrContactNotFound):
			render.Error(w, "Contact not found", http.StatusNotFound)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, DeleteContactSuccessResponse{Message: "Contact deleted successfully"})
}
