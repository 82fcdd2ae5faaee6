package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pudu/heartgate/internal/logger"
	"github.com/pudu/heartgate/internal/storage"
)

// Service is the content index service. Each collection's index is a single
// JSON blob read and written wholesale on every mutation.
//
// The read-modify-write cycle is guarded by a per-collection mutex, which
// serializes writers within this process. With more than one process sharing
// a backend the classic lost-update race remains: two concurrent uploads can
// each read the pre-update index and the second write silently drops the
// first entry. Accepted for the single-admin usage model.
type Service struct {
	backend storage.Backend
	log     logger.Logger
	now     func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(backend storage.Backend, log logger.Logger) *Service {
	return &Service{
		backend: backend,
		log:     log,
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) indexLock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// readIndex loads a collection's index. Missing or corrupt indexes yield an
// empty slice: absence of content is a normal initial state, not a fault.
func (s *Service) readIndex(ctx context.Context, col Collection) []Item {
	data, _, err := s.backend.Get(ctx, col.indexKey())
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("failed to read index, treating as empty",
				logger.String("collection", col.Name),
				logger.Error(err))
		}
		return nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn("index is not valid json, treating as empty",
			logger.String("collection", col.Name),
			logger.Error(err))
		return nil
	}
	return items
}

func (s *Service) writeIndex(ctx context.Context, col Collection, items []Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := s.backend.Put(ctx, col.indexKey(), data, "application/json"); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}
	return nil
}

// List returns a collection's items deduplicated by URL (later entries win),
// newest first, with derived IDs filled in. It never fails: any backend or
// decode problem degrades to an empty result.
func (s *Service) List(ctx context.Context, col Collection) []Item {
	raw := s.readIndex(ctx, col)

	// Dedup keeps the position of the first occurrence but the value of the
	// last, matching map-insertion semantics of the original index repair.
	position := make(map[string]int, len(raw))
	items := make([]Item, 0, len(raw))
	for _, it := range raw {
		if i, seen := position[it.URL]; seen {
			items[i] = it
			continue
		}
		position[it.URL] = len(items)
		items = append(items, it)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})

	for i := range items {
		items[i].ID = DeriveID(items[i].URL)
	}
	return items
}

// Upload validates the declared MIME type, stores the blob under a
// timestamped key and appends the entry to the collection's index.
func (s *Service) Upload(ctx context.Context, col Collection, filename, mimeType string, data []byte) (Item, error) {
	if len(data) == 0 {
		return Item{}, fmt.Errorf("%w: no file uploaded", ErrInvalidInput)
	}
	if !strings.HasPrefix(mimeType, col.MIMEPrefix) {
		return Item{}, fmt.Errorf("%w: file type %q is not %s*", ErrInvalidInput, mimeType, col.MIMEPrefix)
	}

	ts := s.now().UnixMilli()
	key := fmt.Sprintf("%s/%d-%s", col.Name, ts, SanitizeName(filename))
	if err := s.backend.Put(ctx, key, data, mimeType); err != nil {
		return Item{}, fmt.Errorf("failed to store blob: %w", err)
	}

	item := Item{
		URL:       URLForKey(key),
		CreatedAt: ts,
	}

	lock := s.indexLock(col.Name)
	lock.Lock()
	defer lock.Unlock()

	index := append(s.readIndex(ctx, col), item)
	if err := s.writeIndex(ctx, col, index); err != nil {
		return Item{}, err
	}

	item.ID = DeriveID(item.URL)
	s.log.Info("content uploaded",
		logger.String("collection", col.Name),
		logger.String("id", item.ID),
		logger.Int("bytes", len(data)))
	return item, nil
}

// Delete removes the index entry whose derived ID matches, then best-effort
// removes the blob. The index update is the operation's contract; a failed
// blob delete is logged and swallowed.
func (s *Service) Delete(ctx context.Context, col Collection, id string) error {
	lock := s.indexLock(col.Name)
	lock.Lock()
	defer lock.Unlock()

	index := s.readIndex(ctx, col)
	keep := make([]Item, 0, len(index))
	var removed *Item
	for _, it := range index {
		if removed == nil && DeriveID(it.URL) == id {
			c := it
			removed = &c
			continue
		}
		keep = append(keep, it)
	}
	if removed == nil {
		return fmt.Errorf("%w: no item with id %q in %s", ErrNotFound, id, col.Name)
	}

	if err := s.writeIndex(ctx, col, keep); err != nil {
		return err
	}

	if key, err := KeyForURL(removed.URL); err == nil {
		if err := s.backend.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("failed to remove blob after index update",
				logger.String("collection", col.Name),
				logger.String("key", key),
				logger.Error(err))
		}
	}

	s.log.Info("content deleted",
		logger.String("collection", col.Name),
		logger.String("id", id))
	return nil
}

// PuzzleConfig returns the current puzzle image pointer, or ErrNotFound if
// no image was ever uploaded.
func (s *Service) PuzzleConfig(ctx context.Context) (PuzzleConfig, error) {
	data, _, err := s.backend.Get(ctx, puzzleConfigKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return PuzzleConfig{}, fmt.Errorf("%w: puzzle config never set", ErrNotFound)
		}
		return PuzzleConfig{}, fmt.Errorf("failed to read puzzle config: %w", err)
	}

	var cfg PuzzleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return PuzzleConfig{}, fmt.Errorf("puzzle config is not valid json: %w", err)
	}
	return cfg, nil
}

// SetPuzzleImage stores a new puzzle image under a timestamped key and
// atomically repoints the config at it. Older images stay around; the
// pointer alone decides what "current" means.
func (s *Service) SetPuzzleImage(ctx context.Context, filename, mimeType string, data []byte) (PuzzleConfig, error) {
	if len(data) == 0 {
		return PuzzleConfig{}, fmt.Errorf("%w: no file uploaded", ErrInvalidInput)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return PuzzleConfig{}, fmt.Errorf("%w: file type %q is not image/*", ErrInvalidInput, mimeType)
	}

	ts := s.now().UnixMilli()
	key := fmt.Sprintf("%s%d-%s", puzzlePrefix, ts, SanitizeName(filename))
	if err := s.backend.Put(ctx, key, data, mimeType); err != nil {
		return PuzzleConfig{}, fmt.Errorf("failed to store puzzle image: %w", err)
	}

	cfg := PuzzleConfig{URL: URLForKey(key), UpdatedAt: ts}
	encoded, err := json.Marshal(cfg)
	if err != nil {
		return PuzzleConfig{}, fmt.Errorf("failed to marshal puzzle config: %w", err)
	}
	if err := s.backend.Put(ctx, puzzleConfigKey, encoded, "application/json"); err != nil {
		return PuzzleConfig{}, fmt.Errorf("failed to persist puzzle config: %w", err)
	}

	s.log.Info("puzzle image updated",
		logger.String("url", cfg.URL),
		logger.Int64("updated_at", cfg.UpdatedAt))
	return cfg, nil
}
