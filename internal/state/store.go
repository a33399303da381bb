package state

import (
	"sync"
	"time"
)

// Logger defines the logging interface used by the Store.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Store is the single in-process source of truth for the emulated device:
// variables, templates, bitmaps, and settings.
//
// Every mutation is atomic at operation granularity and is immediately
// followed by a full-snapshot save through the Repository; callers never
// touch persistence directly. A failed save is logged and does not roll back
// the in-memory mutation: memory stays authoritative and the next
// successful save reconciles the divergence.
//
// All public methods are thread-safe. Concurrent mutations interleave with
// last-write-wins semantics; there is no cross-operation locking.
type Store struct {
	repo   Repository
	mu     sync.RWMutex
	snap   *Snapshot
	logger Logger
}

// NewStore creates a store seeded with the default snapshot.
// Call Load() to replace the seed with persisted state.
func NewStore(repo Repository) *Store {
	return &Store{
		repo:   repo,
		snap:   DefaultSnapshot(time.Now()),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Load seeds the store from the repository. When no prior snapshot exists
// the built-in default is written out immediately so storage and memory
// never diverge. Read failures are logged and the store continues serving
// from the default snapshot.
func (s *Store) Load() {
	snap, err := s.repo.Load()
	if err != nil {
		s.logger.Error("failed to load persisted snapshot, continuing with defaults", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if snap == nil {
		s.logger.Info("no persisted snapshot found, writing defaults")
		s.persistLocked()
		return
	}

	s.snap = snap
	s.logger.Info("snapshot loaded",
		"variables", len(snap.Variables),
		"templates", len(snap.Templates),
		"bitmaps", len(snap.Bitmaps),
	)
}

// persistLocked saves the full snapshot. Callers must hold s.mu.
// Save failures are logged, never propagated: persistence is non-fatal to
// serving requests.
func (s *Store) persistLocked() {
	if err := s.repo.Save(s.snap); err != nil {
		s.logger.Error("failed to persist snapshot", "error", err)
	}
}

// Snapshot returns a deep copy of the full state graph.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// =============================================================================
// Variables
// =============================================================================

// Variables returns a copy of the current variable mapping.
func (s *Store) Variables() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vars := make(map[string]string, len(s.snap.Variables))
	for k, v := range s.snap.Variables {
		vars[k] = v
	}
	return vars
}

// Variable returns the value of a single variable.
// A missing variable resolves to the empty string, never an error.
func (s *Store) Variable(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Variables[name]
}

// SetVariable creates or replaces a variable.
func (s *Store) SetVariable(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Variables[name] = value
	s.persistLocked()
}

// DeleteVariable removes a variable. Deleting a variable that does not
// exist is a no-op, not an error.
func (s *Store) DeleteVariable(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snap.Variables, name)
	s.persistLocked()
}

// ClearVariables removes all variables, including the clock-derived ones.
// The ticker repopulates those on its next tick.
func (s *Store) ClearVariables() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Variables = make(map[string]string)
	s.persistLocked()
}

// =============================================================================
// Templates
// =============================================================================

// Templates returns deep copies of all templates in insertion order.
func (s *Store) Templates() []Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	templates := make([]Template, 0, len(s.snap.Templates))
	for i := range s.snap.Templates {
		templates = append(templates, s.snap.Templates[i].Clone())
	}
	return templates
}

// Template returns a deep copy of the template with the given name.
// Returns ErrTemplateNotFound if no template has that name.
func (s *Store) Template(name string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.snap.Templates {
		if s.snap.Templates[i].Name == name {
			return s.snap.Templates[i].Clone(), nil
		}
	}
	return Template{}, ErrTemplateNotFound
}

// UpsertTemplate replaces the template with the same name in place, or
// appends when the name is new. Replacement is whole-template: same
// identity, new content, never a merge.
func (s *Store) UpsertTemplate(tpl Template) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Templates {
		if s.snap.Templates[i].Name == tpl.Name {
			s.snap.Templates[i] = tpl.Clone()
			s.persistLocked()
			return
		}
	}
	s.snap.Templates = append(s.snap.Templates, tpl.Clone())
	s.persistLocked()
}

// DeleteTemplate removes the template with the given name. Idempotent.
func (s *Store) DeleteTemplate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snap.Templates[:0]
	for i := range s.snap.Templates {
		if s.snap.Templates[i].Name != name {
			kept = append(kept, s.snap.Templates[i])
		}
	}
	s.snap.Templates = kept
	s.persistLocked()
}

// =============================================================================
// Bitmaps
// =============================================================================

// BitmapSummaries lists stored bitmaps without embedding raw payloads.
func (s *Store) BitmapSummaries() []BitmapSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]BitmapSummary, 0, len(s.snap.Bitmaps))
	for i := range s.snap.Bitmaps {
		b := &s.snap.Bitmaps[i]
		meta := b.Metadata
		if meta == nil {
			meta = DefaultBitmapMetadata()
		}
		summaries = append(summaries, BitmapSummary{
			Name:     "/b/" + b.Filename,
			Size:     len(b.Data),
			Metadata: meta.Clone(),
		})
	}
	return summaries
}

// Bitmap returns a deep copy of the bitmap with the given filename.
// Returns ErrBitmapNotFound if no bitmap has that filename.
func (s *Store) Bitmap(filename string) (Bitmap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.snap.Bitmaps {
		if s.snap.Bitmaps[i].Filename == filename {
			return s.snap.Bitmaps[i].Clone(), nil
		}
	}
	return Bitmap{}, ErrBitmapNotFound
}

// UpsertBitmap stores a bitmap under the given filename. Replacing an
// existing filename overwrites blob and metadata atomically as one unit.
func (s *Store) UpsertBitmap(filename string, data []byte, meta BitmapMetadata) {
	if meta == nil {
		meta = DefaultBitmapMetadata()
	}

	bmp := Bitmap{
		Filename: filename,
		Data:     append([]byte(nil), data...),
		Metadata: meta.Clone(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snap.Bitmaps {
		if s.snap.Bitmaps[i].Filename == filename {
			s.snap.Bitmaps[i] = bmp
			s.persistLocked()
			return
		}
	}
	s.snap.Bitmaps = append(s.snap.Bitmaps, bmp)
	s.persistLocked()
}

// DeleteBitmap removes the bitmap with the given filename. Idempotent.
func (s *Store) DeleteBitmap(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.snap.Bitmaps[:0]
	for i := range s.snap.Bitmaps {
		if s.snap.Bitmaps[i].Filename != filename {
			kept = append(kept, s.snap.Bitmaps[i])
		}
	}
	s.snap.Bitmaps = kept
	s.persistLocked()
}

// =============================================================================
// Settings
// =============================================================================

// Settings returns a deep copy of the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Settings.Clone()
}

// UpdateSettings applies a shallow domain-level merge: each domain present
// in the patch fully replaces the stored domain, absent domains are left
// untouched. Returns the merged settings.
func (s *Store) UpdateSettings(patch SettingsPatch) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Display != nil {
		s.snap.Settings.Display = *patch.Display
	}
	if patch.MQTT != nil {
		s.snap.Settings.MQTT = *patch.MQTT
	}
	if patch.Network != nil {
		s.snap.Settings.Network = *patch.Network
	}
	if patch.Power != nil {
		s.snap.Settings.Power = *patch.Power
	}
	if patch.System != nil {
		s.snap.Settings.System = *patch.System
	}
	if patch.Web != nil {
		s.snap.Settings.Web = *patch.Web
	}

	s.persistLocked()
	return s.snap.Settings.Clone()
}
