package shelf

import (
	"fmt"

	"shelf-go/internal/model"
)

// ShelfService is the orchestration layer that coordinates the store,
// classification, alert sink and mutation history for the CLI.
type ShelfService struct {
	store    *Store
	database Database
	sink     AlertSink
	logger   Logger
	clock    Clock

	// alarmed tracks items that already fired an urgent alert this session,
	// so repeated checks within one process run stay quiet.
	alarmed map[string]bool
}

// NewShelfService creates a new ShelfService with the provided dependencies.
func NewShelfService(store *Store, database Database, sink AlertSink, logger Logger, clock Clock) *ShelfService {
	return &ShelfService{
		store:    store,
		database: database,
		sink:     sink,
		logger:   logger,
		clock:    clock,
		alarmed:  make(map[string]bool),
	}
}

// AddItem creates a new item and acknowledges with a soft beep.
func (s *ShelfService) AddItem(input ItemInput) (model.Item, error) {
	item, err := s.store.Create(input)
	if err != nil {
		return model.Item{}, err
	}
	s.sink.Beep(BeepSoft)
	s.logger.Info("item added", "id", item.ID, "name", item.Name)
	return item, nil
}

// UpdateItem merges the supplied fields onto an existing item and
// acknowledges with a soft beep.
func (s *ShelfService) UpdateItem(id string, input ItemInput) (model.Item, error) {
	item, err := s.store.Update(id, input)
	if err != nil {
		return model.Item{}, err
	}
	s.sink.Beep(BeepSoft)
	s.logger.Info("item updated", "id", item.ID)
	return item, nil
}

// DeleteItem removes an item and signals with a noticeable beep.
func (s *ShelfService) DeleteItem(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.sink.Beep(BeepNoticeable)
	s.logger.Info("item deleted", "id", id)
	return nil
}

// GetItem returns a single item by id.
func (s *ShelfService) GetItem(id string) (model.Item, error) {
	item, ok := s.store.Get(id)
	if !ok {
		return model.Item{}, ErrNotFound
	}
	return item, nil
}

// ListItems returns the filtered, sorted display view of the inventory.
// An active status filter gets a noticeable beep as emphasis.
func (s *ShelfService) ListItems(search string, filter StatusFilter) []model.Item {
	items := Query(s.store.List(), search, filter, s.clock.Now())
	if filter.Active() {
		s.sink.Beep(BeepNoticeable)
	}
	return items
}

// ClassifyItem returns the classification of one item as of now.
func (s *ShelfService) ClassifyItem(it model.Item) Classification {
	return Classify(itemExpiry(it), s.clock.Now())
}

// Stats aggregates the whole inventory as of now.
func (s *ShelfService) Stats() Stats {
	return Aggregate(s.store.List(), s.clock.Now())
}

// Alarm is one urgent alert fired by CheckAlarms.
type Alarm struct {
	Item           model.Item
	Classification Classification
}

// CheckAlarms scans the inventory and fires an urgent alert plus beep for
// every item at alarm level 3, at most once per item per process run.
// Returns the alarms fired by this call.
func (s *ShelfService) CheckAlarms() []Alarm {
	today := s.clock.Now()

	var fired []Alarm
	for _, it := range s.store.List() {
		c := Classify(itemExpiry(it), today)
		if c.AlarmLevel < 3 || s.alarmed[it.ID] {
			continue
		}
		s.alarmed[it.ID] = true
		s.sink.Alert("Expiry alert", fmt.Sprintf("%s: %s", it.Name, c.Status.Label()))
		s.sink.Beep(BeepUrgent)
		s.logger.Info("alarm fired", "id", it.ID, "status", c.Status, "daysLeft", c.DaysLeft)
		fired = append(fired, Alarm{Item: it, Classification: c})
	}
	return fired
}

// GetHistory returns the most recent recorded mutations, newest first.
func (s *ShelfService) GetHistory(limit int) ([]*model.Mutation, error) {
	ops, err := s.database.ListMutations(limit)
	if err != nil {
		return nil, fmt.Errorf("listing mutations: %w", err)
	}
	return ops, nil
}
