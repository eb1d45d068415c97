package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/yhteys/backend/internal/metrics"
	"github.com/yhteys/backend/internal/model"
	"github.com/yhteys/backend/internal/service"
	"github.com/yhteys/backend/internal/validation"
)

// maxBodyBytes caps the size of a submission body.
const maxBodyBytes = 1 << 20

// Response messages of the contact API.
const (
	msgInvalidBody      = "Pyynnön runko puuttuu tai on virheellinen."
	msgMethodNotAllowed = "Method not allowed"
	msgInternal         = "Internal server error"
)

// ContactHandler handles contact form submission and admin listing.
type ContactHandler struct {
	contactService service.ContactService
	metrics        *metrics.Metrics
}

// NewContactHandler creates a ContactHandler with the given service.
// m may be nil when metrics are disabled.
func NewContactHandler(contactService service.ContactService, m *metrics.Metrics) *ContactHandler {
	return &ContactHandler{contactService: contactService, metrics: m}
}

// accept runs the server-side checks on p and stores the message. It
// returns a *validation.Rejection for refused input and any other error for
// storage failures, which are logged here.
func (h *ContactHandler) accept(ctx context.Context, p validation.Payload) error {
	in, rej := validation.Check(p)
	if rej != nil {
		if rej.Spam() {
			h.metrics.ObserveSubmission(metrics.OutcomeSpam, rej.Field)
			slog.Info("contact submission rejected as spam")
		} else {
			h.metrics.ObserveSubmission(metrics.OutcomeInvalid, rej.Field)
		}
		return rej
	}

	msg, err := h.contactService.Submit(ctx, in)
	if err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeError, "")
		slog.Error("failed to store contact message", "error", err)
		return err
	}

	h.metrics.ObserveSubmission(metrics.OutcomeAccepted, "")
	slog.Info("contact message stored", "id", msg.ID, "type", msg.Type)
	return nil
}

// decodePayload reads exactly one JSON value from the body. A valid value
// that is not an object carries no fields and yields an empty Payload.
func decodePayload(w http.ResponseWriter, r *http.Request) (validation.Payload, error) {
	var p validation.Payload
	var raw json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil {
		return p, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return p, errors.New("unexpected data after JSON body")
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return validation.Payload{}, nil
	}
	return p, nil
}

// Submit handles POST /api/contact.
// The first failing check decides the single error message returned.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	p, err := decodePayload(w, r)
	if err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeBadRequest, "")
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.accept(r.Context(), p); err != nil {
		var rej *validation.Rejection
		if errors.As(err, &rej) {
			writeError(w, http.StatusBadRequest, rej.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// MethodNotAllowed answers every non-POST request on /api/contact.
func (h *ContactHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

// adminListResponse is the JSON response for GET /api/admin/contacts.
type adminListResponse struct {
	Messages []*model.ContactMessage `json:"messages"`
}

// AdminList handles GET /api/admin/contacts.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		slog.Error("failed to list contact messages", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}

	writeJSON(w, http.StatusOK, adminListResponse{Messages: messages})
}
