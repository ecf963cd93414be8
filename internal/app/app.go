package app

import (
	"fmt"
	"os"
	"time"

	"shelf-go/internal/blob"
	"shelf-go/internal/config"
	"shelf-go/internal/database"
	"shelf-go/internal/encryption"
	"shelf-go/internal/model"
	"shelf-go/internal/notify"
	"shelf-go/internal/shelf"
)

// ShelfApp is the application layer between the CLI and ShelfService.
// It constructs all dependencies from config, loads the persisted inventory,
// and manages the history-record and DB lifecycle on Close.
type ShelfApp struct {
	cfg       *config.Config
	db        shelf.Database
	blobstore shelf.BlobStore
	store     *shelf.Store
	sink      shelf.AlertSink
	encryptor shelf.Encryptor
	service   *shelf.ShelfService
	logger    shelf.Logger
	op        *Operation
	logFile   *os.File
}

// NewShelfApp creates a fully wired ShelfApp from the given config.
// operation identifies the CLI command being run (e.g. "AddItem", "DeleteItem").
// The caller must call Close when done.
func NewShelfApp(cfg *config.Config, operation string) (*ShelfApp, error) {
	opID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	bs, err := blob.NewStoreFromConfig(cfg.Storage)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating blob store: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	sink := notify.NewSinkFromConfig(cfg.Notify, logger)

	store := shelf.NewStore(bs, logger, shelf.RealClock{}, shelf.UUIDGenerator{})
	store.Load()

	// If the persisted blob's version lags the recorded history, a past
	// persist must have failed. Not fatal, but worth surfacing.
	if maxID, err := db.MaxMutationID(); err == nil && store.Version() < maxID {
		logger.Warn("persisted inventory is behind recorded history",
			"blobVersion", store.Version(), "historyMax", maxID)
	}

	svc := shelf.NewShelfService(store, db, sink, logger, shelf.RealClock{})

	return &ShelfApp{
		cfg:       cfg,
		db:        db,
		blobstore: bs,
		store:     store,
		sink:      sink,
		encryptor: enc,
		service:   svc,
		logger:    logger,
		op:        NewOperation(operation, "", ""),
		logFile:   logFile,
	}, nil
}

// persistOperation saves the operation to the history database, giving it an
// auto-increment ID. This should only be called for mutating commands.
func (a *ShelfApp) persistOperation() error {
	if a.op.Persisted() {
		return nil // already persisted
	}
	dbOp, err := a.db.CreateMutation(a.op.Operation, a.op.ItemID, a.op.Details)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// AddItem creates a new inventory item from the supplied fields.
func (a *ShelfApp) AddItem(input shelf.ItemInput) (model.Item, error) {
	item, err := a.service.AddItem(input)
	if err != nil {
		return model.Item{}, err
	}
	a.op.ItemID = item.ID
	a.op.Details = item.Name
	if err := a.persistOperation(); err != nil {
		return item, err
	}
	return item, nil
}

// UpdateItem merges the supplied fields onto the item with the given id.
func (a *ShelfApp) UpdateItem(id string, input shelf.ItemInput) (model.Item, error) {
	item, err := a.service.UpdateItem(id, input)
	if err != nil {
		return model.Item{}, err
	}
	a.op.ItemID = item.ID
	if err := a.persistOperation(); err != nil {
		return item, err
	}
	return item, nil
}

// DeleteItem removes the item with the given id.
func (a *ShelfApp) DeleteItem(id string) error {
	if err := a.service.DeleteItem(id); err != nil {
		return err
	}
	a.op.ItemID = id
	return a.persistOperation()
}

// ListItems returns the filtered, sorted display view. statusFilter accepts
// a status name, "ALL", or empty for no filter.
func (a *ShelfApp) ListItems(search, statusFilter string) ([]model.Item, error) {
	filter, err := shelf.ParseStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	return a.service.ListItems(search, filter), nil
}

// ClassifyItem returns the classification of one item as of now.
func (a *ShelfApp) ClassifyItem(it model.Item) shelf.Classification {
	return a.service.ClassifyItem(it)
}

// Stats aggregates the whole inventory as of now.
func (a *ShelfApp) Stats() shelf.Stats {
	return a.service.Stats()
}

// CheckAlarms fires urgent alerts for EXPIRED/CRITICAL items.
func (a *ShelfApp) CheckAlarms() []shelf.Alarm {
	return a.service.CheckAlarms()
}

// GetHistory returns the most recent recorded mutations.
func (a *ShelfApp) GetHistory(limit int) ([]*model.Mutation, error) {
	return a.service.GetHistory(limit)
}

// SetupKeys generates the snapshot encryption key pair.
func (a *ShelfApp) SetupKeys(passphrase string) error {
	return a.encryptor.Setup(passphrase)
}

// Export writes an encrypted snapshot of the inventory to the given path.
// Returns the number of items exported.
func (a *ShelfApp) Export(path string) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	count, err := a.service.Export(f, a.encryptor)
	if err != nil {
		os.Remove(path)
		return 0, err
	}
	return count, nil
}

// Import replaces the inventory from an encrypted snapshot at the given
// path, unlocking the private key with the passphrase first.
// Returns the number of items imported.
func (a *ShelfApp) Import(path, passphrase string) (int, error) {
	dc, err := a.encryptor.Unlock(passphrase)
	if err != nil {
		return 0, fmt.Errorf("unlocking private key: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening snapshot file: %w", err)
	}
	defer f.Close()

	count, err := a.service.Import(f, dc)
	if err != nil {
		return 0, err
	}
	return count, a.persistOperation()
}

// ValidateStorage verifies the configured blob store is reachable.
func (a *ShelfApp) ValidateStorage() error {
	return a.blobstore.ValidateSetup()
}

// Close finalizes the operation record and closes all resources.
func (a *ShelfApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.db.FinishMutation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
