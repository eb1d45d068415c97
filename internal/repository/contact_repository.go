package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yhteys/backend/internal/model"
	"github.com/yhteys/backend/internal/storage"
)

// ContactRepository is the append-only store of contact messages.
type ContactRepository interface {
	// Load returns every stored message in insertion order. A missing or
	// unreadable store is an empty collection, not an error.
	Load(ctx context.Context) ([]*model.ContactMessage, error)

	// Append adds msg after the existing messages.
	Append(ctx context.Context, msg *model.ContactMessage) error
}

// JSONFileContactRepository keeps all messages in a single JSON array
// document. Every Append rewrites the whole document.
type JSONFileContactRepository struct {
	store storage.Storage
	key   string
}

// NewJSONFileContactRepository creates a repository storing its array under
// key in store.
func NewJSONFileContactRepository(store storage.Storage, key string) *JSONFileContactRepository {
	return &JSONFileContactRepository{store: store, key: key}
}

// Ensure JSONFileContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*JSONFileContactRepository)(nil)

// loadRaw reads the array without decoding its elements, so entries this
// version does not understand survive a rewrite.
func (r *JSONFileContactRepository) loadRaw(ctx context.Context) ([]json.RawMessage, error) {
	data, err := r.store.Read(ctx, r.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		slog.Warn("contact store unreadable, treating as empty", "key", r.key, "error", err)
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("contact store is not a JSON array, treating as empty", "key", r.key, "error", err)
		return nil, nil
	}
	return raw, nil
}

func (r *JSONFileContactRepository) Load(ctx context.Context) ([]*model.ContactMessage, error) {
	raw, err := r.loadRaw(ctx)
	if err != nil {
		return nil, err
	}

	messages := make([]*model.ContactMessage, 0, len(raw))
	for i, item := range raw {
		m, ok := decodeRecord(item)
		if !ok {
			slog.Warn("skipping contact record that is not an object", "key", r.key, "index", i)
			continue
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// decodeRecord reads one array element. Only elements that are not JSON
// objects (null included) are rejected. Inside an object a field of the
// wrong type reads as its zero value and an unparseable createdAt as the
// zero time, so hand-edited records still show up in listings.
func decodeRecord(item json.RawMessage) (*model.ContactMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
		return nil, false
	}

	str := func(key string) string {
		var s string
		if err := json.Unmarshal(fields[key], &s); err != nil {
			return ""
		}
		return s
	}

	m := &model.ContactMessage{
		ID:      str("id"),
		Name:    str("name"),
		Email:   str("email"),
		Subject: str("subject"),
		Message: str("message"),
		Type:    str("type"),
		Company: str("company"),
	}
	if err := json.Unmarshal(fields["accepted"], &m.Accepted); err != nil {
		m.Accepted = false
	}
	if t, err := time.Parse(time.RFC3339Nano, str("createdAt")); err == nil {
		m.CreatedAt = t
	}
	return m, true
}

func (r *JSONFileContactRepository) Append(ctx context.Context, msg *model.ContactMessage) error {
	raw, err := r.loadRaw(ctx)
	if err != nil {
		return err
	}

	item, err := encodeRecord(msg)
	if err != nil {
		return err
	}
	raw = append(raw, item)

	data, err := encodeArray(raw)
	if err != nil {
		return err
	}
	if err := r.store.Save(ctx, r.key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save contact messages: %w", err)
	}
	return nil
}

// encodeRecord marshals msg without HTML escaping. json.Marshal would
// escape <, > and & before the array encoder sees the element.
func encodeRecord(msg *model.ContactMessage) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		return nil, fmt.Errorf("encode contact message: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeArray renders items as a 2-space indented JSON array without HTML
// escaping and without a trailing newline.
func encodeArray(items []json.RawMessage) ([]byte, error) {
	if items == nil {
		items = []json.RawMessage{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("encode contact messages: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MemoryContactRepository is an in-memory ContactRepository.
type MemoryContactRepository struct {
	mu       sync.Mutex
	messages []model.ContactMessage
}

// NewMemoryContactRepository creates an empty MemoryContactRepository.
func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{}
}

var _ ContactRepository = (*MemoryContactRepository)(nil)

func (r *MemoryContactRepository) Load(ctx context.Context) ([]*model.ContactMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.ContactMessage, len(r.messages))
	for i := range r.messages {
		m := r.messages[i]
		out[i] = &m
	}
	return out, nil
}

func (r *MemoryContactRepository) Append(ctx context.Context, msg *model.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
	return nil
}
