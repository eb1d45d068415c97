package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yhteys/backend/internal/form"
	"github.com/yhteys/backend/internal/model"
	"github.com/yhteys/backend/internal/service"
	"github.com/yhteys/backend/internal/validation"
	"github.com/yhteys/backend/internal/web"
)

// PageHandler serves the server-rendered pages.
type PageHandler struct {
	renderer       *web.Renderer
	contacts       *ContactHandler
	contactService service.ContactService
	loc            *time.Location
}

// NewPageHandler creates a PageHandler. Form posts go through contacts so
// they pass the same server-side checks as API calls.
func NewPageHandler(renderer *web.Renderer, contacts *ContactHandler, contactService service.ContactService, loc *time.Location) *PageHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &PageHandler{
		renderer:       renderer,
		contacts:       contacts,
		contactService: contactService,
		loc:            loc,
	}
}

// formSubmitter hands form values to the server-side gate.
type formSubmitter struct {
	contacts *ContactHandler
}

func (s formSubmitter) Submit(ctx context.Context, in model.ContactInput) error {
	return s.contacts.accept(ctx, validation.PayloadFromInput(in))
}

type categoryOption struct {
	Value    string
	Label    string
	Selected bool
}

type contactPage struct {
	Values      model.ContactInput
	Errors      validation.FieldErrors
	Status      string
	StatusClass string
	Categories  []categoryOption
	Submitting  bool
}

func newContactPage(f *form.Form) contactPage {
	values := f.Values()
	page := contactPage{
		Values:     values,
		Errors:     f.Errors(),
		Status:     f.Status(),
		Submitting: f.Submitting(),
	}
	switch f.State() {
	case form.StateSuccess:
		page.StatusClass = "success"
	case form.StateError:
		page.StatusClass = "failure"
	}
	for _, c := range model.Categories {
		page.Categories = append(page.Categories, categoryOption{
			Value:    c,
			Label:    web.CategoryLabel(c),
			Selected: c == values.Type,
		})
	}
	return page
}

func (h *PageHandler) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, page, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Home handles GET /.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, web.PageHome, nil)
}

// ContactForm handles GET /contact.
func (h *PageHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, web.PageContact, newContactPage(form.New()))
}

// ContactSubmit handles POST /contact: the form is rebuilt from the posted
// values and driven through validation and submission.
func (h *PageHandler) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	f := form.New()
	for _, field := range validation.Fields {
		if err := f.Set(field, r.PostForm.Get(field)); err != nil {
			http.Error(w, msgInternal, http.StatusInternalServerError)
			return
		}
	}

	err := f.Submit(r.Context(), formSubmitter{contacts: h.contacts})

	status := http.StatusOK
	var rej *validation.Rejection
	switch {
	case f.State() == form.StateInvalid:
		status = http.StatusUnprocessableEntity
	case errors.As(err, &rej):
		status = http.StatusBadRequest
	case err != nil:
		status = http.StatusInternalServerError
	}
	h.render(w, status, web.PageContact, newContactPage(f))
}

type adminRow struct {
	ID      string
	Date    string
	Name    string
	Email   string
	Type    string
	Subject string
	Message string
}

// Admin handles GET /admin: a read-only table of every stored message in
// creation order. A store that cannot be read shows the empty state.
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		slog.Error("failed to read contact messages", "error", err)
		messages = nil
	}

	rows := make([]adminRow, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, adminRow{
			ID:      m.ID,
			Date:    web.FormatDate(m.CreatedAt, h.loc),
			Name:    m.Name,
			Email:   m.Email,
			Type:    m.Type,
			Subject: m.Subject,
			Message: m.Message,
		})
	}
	h.render(w, http.StatusOK, web.PageAdmin, struct{ Rows []adminRow }{Rows: rows})
}
