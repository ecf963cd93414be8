package shelf

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"shelf-go/internal/model"
)

// ItemInput carries caller-supplied fields for create and update.
// A nil field means "not supplied": create falls back to a default, update
// leaves the existing value untouched.
type ItemInput struct {
	Name       *string
	SKU        *string
	ExpiryDate *string
	Category   *string
	Notes      *string
}

// Store holds the authoritative ordered collection of items. Items keep
// insertion order. Every successful mutation serializes the whole collection
// to the blob store synchronously before returning; a persist failure is
// logged and never fails the mutation, so the session degrades to in-memory
// operation.
type Store struct {
	blob    BlobStore
	logger  Logger
	clock   Clock
	idgen   IDGenerator
	items   []model.Item
	version int64
}

// NewStore creates an empty Store. Call Load to read the persisted
// collection before first use.
func NewStore(blob BlobStore, logger Logger, clock Clock, idgen IDGenerator) *Store {
	return &Store{
		blob:   blob,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
		items:  []model.Item{},
	}
}

// Load reads the persisted collection from the blob store. A missing or
// corrupt blob is never fatal: the store starts empty. Individually invalid
// records inside a well-formed blob are skipped.
func (s *Store) Load() {
	version, err := s.blob.InventoryVersion()
	if err != nil {
		s.logger.Warn("reading inventory version failed", "error", err)
	}
	s.version = version

	var buf bytes.Buffer
	if err := s.blob.GetInventory(&buf); err != nil {
		if errors.Is(err, ErrNoInventory) {
			s.logger.Debug("no persisted inventory, starting empty")
		} else {
			s.logger.Warn("loading inventory failed, starting empty", "error", err)
		}
		return
	}

	var loaded []model.Item
	if err := json.Unmarshal(buf.Bytes(), &loaded); err != nil {
		s.logger.Warn("persisted inventory is corrupt, starting empty", "error", err)
		return
	}

	for _, it := range loaded {
		if err := validateItem(it); err != nil {
			s.logger.Warn("skipping invalid persisted item", "id", it.ID, "error", err)
			continue
		}
		s.items = append(s.items, it)
	}
	s.logger.Debug("inventory loaded", "items", len(s.items), "version", s.version)
}

// Create validates the input, assigns a fresh id and creation time, appends
// the item and persists the collection.
func (s *Store) Create(input ItemInput) (model.Item, error) {
	name := deref(input.Name)
	if strings.TrimSpace(name) == "" {
		return model.Item{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	expiry := deref(input.ExpiryDate)
	if _, err := time.Parse(model.DateLayout, expiry); err != nil {
		return model.Item{}, &ValidationError{Field: "expiryDate", Reason: "must be a calendar date (YYYY-MM-DD)"}
	}

	category := deref(input.Category)
	if category == "" {
		category = model.DefaultCategory()
	}

	item := model.Item{
		ID:         s.idgen.New(),
		Name:       name,
		SKU:        deref(input.SKU),
		ExpiryDate: expiry,
		Category:   category,
		Notes:      deref(input.Notes),
		CreatedAt:  s.clock.Now().UnixMilli(),
	}

	s.items = append(s.items, item)
	s.persist()
	return item, nil
}

// Update merges the supplied fields onto the existing item, leaving id and
// createdAt untouched. Unknown ids fail with ErrNotFound.
func (s *Store) Update(id string, input ItemInput) (model.Item, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, ErrNotFound
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return model.Item{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if input.ExpiryDate != nil {
		if _, err := time.Parse(model.DateLayout, *input.ExpiryDate); err != nil {
			return model.Item{}, &ValidationError{Field: "expiryDate", Reason: "must be a calendar date (YYYY-MM-DD)"}
		}
	}

	it := &s.items[idx]
	if input.Name != nil {
		it.Name = *input.Name
	}
	if input.SKU != nil {
		it.SKU = *input.SKU
	}
	if input.ExpiryDate != nil {
		it.ExpiryDate = *input.ExpiryDate
	}
	if input.Category != nil {
		it.Category = *input.Category
	}
	if input.Notes != nil {
		it.Notes = *input.Notes
	}

	s.persist()
	return *it, nil
}

// Delete removes the item with the given id, preserving the order of the
// rest. Unknown ids fail with ErrNotFound.
func (s *Store) Delete(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persist()
	return nil
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (model.Item, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Item{}, false
	}
	return s.items[idx], true
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *Store) Len() int { return len(s.items) }

// Version returns the persisted collection version. It increments on every
// mutation, whether or not the persist succeeded.
func (s *Store) Version() int64 { return s.version }

// ReplaceAll swaps in a full collection, validating every item first, and
// persists it. Used by snapshot import.
func (s *Store) ReplaceAll(items []model.Item) error {
	for _, it := range items {
		if err := validateItem(it); err != nil {
			return err
		}
	}
	s.items = append([]model.Item{}, items...)
	s.persist()
	return nil
}

// persist writes the whole collection to the blob store. Failures degrade to
// a warning so in-memory state stays usable for the rest of the session.
func (s *Store) persist() {
	s.version++

	data, err := json.Marshal(s.items)
	if err != nil {
		s.logger.Warn("serializing inventory failed, continuing in memory", "error", err)
		return
	}

	if err := s.blob.PutInventory(bytes.NewReader(data), int64(len(data)), s.version); err != nil {
		s.logger.Warn("persisting inventory failed, continuing in memory", "error", err)
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// validateItem checks the invariants every stored item must hold.
func validateItem(it model.Item) error {
	if strings.TrimSpace(it.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if _, err := time.Parse(model.DateLayout, it.ExpiryDate); err != nil {
		return &ValidationError{Field: "expiryDate", Reason: "must be a calendar date (YYYY-MM-DD)"}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
