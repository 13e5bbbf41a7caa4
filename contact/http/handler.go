package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/programme-lv/contactform/contact"
)

type ContactHttpHandler struct {
	// contactSrvc is nil when storage is not configured.
	contactSrvc *contact.ContactSrvc
}

func NewContactHttpHandler(contactSrvc *contact.ContactSrvc) *ContactHttpHandler {
	return &ContactHttpHandler{
		contactSrvc: contactSrvc,
	}
}

// RegisterRoutes maps POST to ingestion; every other verb gets a 405.
func (h *ContactHttpHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.PostSubmission)
	r.MethodNotAllowed(h.MethodNotAllowed)
}
