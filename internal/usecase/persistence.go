package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"resume-builder/internal/model"
)

// KV is the abstract store capability: a single logical key holding the
// whole serialized document. Get returns (nil, nil) when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

const (
	StorageKey     = "resume"
	ExportFilename = "resume.json"
)

// ImportError kinds. The boundary shows Message verbatim; Kind tells a
// malformed file apart from a well-formed one that fails the schema.
const (
	ImportNotJSON       = "not-json"
	ImportSchemaInvalid = "schema-invalid"
	ImportReadFailed    = "read-failed"
)

type ImportError struct {
	Kind    string
	Message string
	Err     error
}

func (e *ImportError) Error() string { return e.Message }
func (e *ImportError) Unwrap() error { return e.Err }

type BridgeConfig struct {
	// Key is the storage slot, default "resume".
	Key string
	// Debounce is the autosave quiet interval, default 1s.
	Debounce time.Duration
	Logger   *slog.Logger
}

func (c *BridgeConfig) defaults() {
	if c.Key == "" {
		c.Key = StorageKey
	}
	if c.Debounce <= 0 {
		c.Debounce = time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Bridge owns the store slot: it loads the persisted document, autosaves
// whole-document snapshots with trailing-edge debouncing, and handles
// export/import.
type Bridge struct {
	kv       KV
	key      string
	logger   *slog.Logger
	debounce *Debouncer
}

func NewBridge(kv KV, cfg BridgeConfig) *Bridge {
	cfg.defaults()
	return &Bridge{
		kv:       kv,
		key:      cfg.Key,
		logger:   cfg.Logger,
		debounce: NewDebouncer(cfg.Debounce),
	}
}

// Load reads the persisted document. Missing, empty or invalid data falls
// back to the built-in default document; that is a recoverable condition
// and is only logged.
func (b *Bridge) Load(ctx context.Context) *model.Document {
	raw, err := b.kv.Get(ctx, b.key)
	if err != nil {
		b.logger.Warn("load failed, using default document", "key", b.key, "error", err)
		return model.DefaultDocument()
	}
	if len(raw) == 0 {
		return model.DefaultDocument()
	}
	doc, err := model.Validate(raw)
	if err != nil {
		b.logger.Warn("stored document invalid, using default", "key", b.key, "error", err)
		return model.DefaultDocument()
	}
	return doc
}

// Autosave schedules a debounced whole-document write. A burst of edits
// inside the quiet interval produces a single write of the last snapshot.
func (b *Bridge) Autosave(doc *model.Document) {
	snapshot := doc.Clone()
	b.debounce.Schedule(func() {
		b.write(context.Background(), snapshot)
	})
}

// Flush persists a pending autosave immediately, for shutdown paths.
func (b *Bridge) Flush() {
	b.debounce.Flush()
}

// CancelPending drops a pending autosave without writing.
func (b *Bridge) CancelPending() {
	b.debounce.CancelPending()
}

func (b *Bridge) write(ctx context.Context, doc *model.Document) {
	data, err := Encode(doc)
	if err != nil {
		b.logger.Error("autosave encode failed", "error", err)
		return
	}
	if err := b.kv.Set(ctx, b.key, data); err != nil {
		b.logger.Error("autosave write failed", "key", b.key, "error", err)
	}
}

// Encode serializes a document in the persistence format: pretty-printed
// JSON, identical for the autosave blob and the export file so the two are
// bit-compatible.
func Encode(doc *model.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Export serializes the document for a user-initiated file download.
func (b *Bridge) Export(doc *model.Document) ([]byte, error) {
	return Encode(doc)
}

// Import parses and validates an uploaded file. It never touches the store:
// the caller must obtain explicit user confirmation and then call
// CommitImport. Failures are *ImportError with a human-readable message.
func (b *Bridge) Import(data []byte) (*model.Document, error) {
	if len(data) == 0 {
		return nil, &ImportError{Kind: ImportReadFailed, Message: "Error reading file"}
	}
	if !json.Valid(data) {
		return nil, &ImportError{Kind: ImportNotJSON, Message: "Invalid JSON format"}
	}
	doc, err := model.Validate(data)
	if err != nil {
		return nil, &ImportError{Kind: ImportSchemaInvalid, Message: "Invalid JSON format", Err: err}
	}
	return doc, nil
}

// CommitImport overwrites the stored document with a previously validated
// import. Any pending autosave is dropped first so a stale debounced write
// cannot clobber the imported document.
func (b *Bridge) CommitImport(ctx context.Context, doc *model.Document) error {
	b.debounce.CancelPending()
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := b.kv.Set(ctx, b.key, data); err != nil {
		return fmt.Errorf("store import: %w", err)
	}
	return nil
}
