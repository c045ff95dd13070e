// Package library persists saved lessons and folders on top of the local
// key-value substrate. Collections are read and written whole under two
// fixed keys; a corrupt or missing entry degrades to an empty collection.
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/lectern/internal/lesson"
	"github.com/felixgeelhaar/lectern/internal/storage/kv"
)

const (
	lessonsKey = "lessons"
	foldersKey = "folders"
)

// ErrLessonNotFound is returned when no saved lesson has the given id.
var ErrLessonNotFound = errors.New("lesson not found")

// SavedLesson wraps a generated lesson with per-learner progress and
// metadata. Folder is a weak reference by name; deleting a folder nulls
// it rather than deleting the lesson.
type SavedLesson struct {
	ID               string        `json:"id"`
	Lesson           lesson.Lesson `json:"lesson"`
	DisplayName      string        `json:"displayName"`
	Folder           *string       `json:"folder"`
	Cost             *float64      `json:"cost"`
	SourceText       string        `json:"sourceText,omitempty"`
	CurrentStepIndex int           `json:"currentStepIndex"`
	IsComplete       bool          `json:"isComplete"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// Library is the lesson store. All mutations follow read-collection,
// modify, write-collection; the single-caller execution model makes that
// transactional from the caller's perspective.
type Library struct {
	store  kv.Store
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Library.
type Option func(*Library)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// New creates a Library over the given key-value store.
func New(store kv.Store, logger *slog.Logger, opts ...Option) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Library{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Library) loadLessons() []SavedLesson {
	data, err := l.store.Get(lessonsKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			l.logger.Warn("lesson collection unreadable, starting empty", "error", err)
		}
		return []SavedLesson{}
	}

	var all []SavedLesson
	if err := json.Unmarshal(data, &all); err != nil {
		l.logger.Warn("lesson collection corrupt, starting empty", "error", err)
		return []SavedLesson{}
	}

	// Older records may miss optional fields; default them defensively.
	for i := range all {
		if all[i].DisplayName == "" {
			all[i].DisplayName = all[i].Lesson.Title
		}
		if all[i].DisplayName == "" {
			all[i].DisplayName = "Untitled"
		}
	}
	return all
}

func (l *Library) saveLessons(all []SavedLesson) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode lessons: %w", err)
	}
	if err := l.store.Put(lessonsKey, data); err != nil {
		return fmt.Errorf("write lessons: %w", err)
	}
	return nil
}

func (l *Library) loadFolders() []string {
	data, err := l.store.Get(foldersKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			l.logger.Warn("folder collection unreadable, starting empty", "error", err)
		}
		return []string{}
	}

	var folders []string
	if err := json.Unmarshal(data, &folders); err != nil {
		l.logger.Warn("folder collection corrupt, starting empty", "error", err)
		return []string{}
	}
	return folders
}

func (l *Library) saveFolders(folders []string) error {
	data, err := json.Marshal(folders)
	if err != nil {
		return fmt.Errorf("encode folders: %w", err)
	}
	if err := l.store.Put(foldersKey, data); err != nil {
		return fmt.Errorf("write folders: %w", err)
	}
	return nil
}

// touch bumps UpdatedAt, keeping it monotonic non-decreasing.
func (l *Library) touch(s *SavedLesson) {
	ts := l.now()
	if ts.Before(s.UpdatedAt) {
		ts = s.UpdatedAt
	}
	s.UpdatedAt = ts
}

func (l *Library) mutateLesson(id string, fn func(*SavedLesson)) error {
	all := l.loadLessons()
	for i := range all {
		if all[i].ID == id {
			fn(&all[i])
			l.touch(&all[i])
			return l.saveLessons(all)
		}
	}
	return fmt.Errorf("%w: %s", ErrLessonNotFound, id)
}

// SaveLesson persists a freshly generated lesson and returns its id.
// The display name defaults to the source filename minus its extension.
func (l *Library) SaveLesson(les lesson.Lesson, filename string, cost *float64, sourceText string) (string, error) {
	all := l.loadLessons()

	now := l.now()
	id := fmt.Sprintf("lesson_%d_%s", now.UnixMilli(), uuid.NewString()[:8])

	displayName := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if displayName == "" {
		displayName = les.Title
	}

	all = append(all, SavedLesson{
		ID:               id,
		Lesson:           les,
		DisplayName:      displayName,
		Folder:           nil,
		Cost:             cost,
		SourceText:       sourceText,
		CurrentStepIndex: 0,
		IsComplete:       false,
		CreatedAt:        now,
		UpdatedAt:        now,
	})

	if err := l.saveLessons(all); err != nil {
		return "", err
	}
	return id, nil
}

// Lessons returns all saved lessons ordered by UpdatedAt descending.
func (l *Library) Lessons() []SavedLesson {
	all := l.loadLessons()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	return all
}

// Lesson returns the saved lesson with the given id.
func (l *Library) Lesson(id string) (*SavedLesson, error) {
	for _, s := range l.loadLessons() {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
}

// LectureText returns the raw extracted source text stored with a lesson,
// or empty if none was kept.
func (l *Library) LectureText(id string) (string, error) {
	s, err := l.Lesson(id)
	if err != nil {
		return "", err
	}
	return s.SourceText, nil
}

// RenameLesson sets a lesson's display name.
func (l *Library) RenameLesson(id, name string) error {
	return l.mutateLesson(id, func(s *SavedLesson) {
		s.DisplayName = name
	})
}

// MoveLesson assigns a lesson to a folder; nil moves it to unfiled.
func (l *Library) MoveLesson(id string, folder *string) error {
	return l.mutateLesson(id, func(s *SavedLesson) {
		s.Folder = folder
	})
}

// UpdateProgress records the learner's current step index.
func (l *Library) UpdateProgress(id string, stepIndex int) error {
	return l.mutateLesson(id, func(s *SavedLesson) {
		s.CurrentStepIndex = stepIndex
	})
}

// MarkComplete marks a lesson finished.
func (l *Library) MarkComplete(id string) error {
	return l.mutateLesson(id, func(s *SavedLesson) {
		s.IsComplete = true
	})
}

// DeleteLesson removes a saved lesson.
func (l *Library) DeleteLesson(id string) error {
	all := l.loadLessons()
	kept := all[:0]
	for _, s := range all {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return l.saveLessons(kept)
}

// Folders returns the flat list of folder names.
func (l *Library) Folders() []string {
	return l.loadFolders()
}

// CreateFolder adds a folder; creating an existing name is a no-op.
func (l *Library) CreateFolder(name string) error {
	folders := l.loadFolders()
	for _, f := range folders {
		if f == name {
			return nil
		}
	}
	return l.saveFolders(append(folders, name))
}

// RenameFolder renames a folder and rewrites every member lesson's folder
// reference in the same operation, so no lesson is left pointing at the
// old name.
func (l *Library) RenameFolder(oldName, newName string) error {
	folders := l.loadFolders()
	for i, f := range folders {
		if f == oldName {
			folders[i] = newName
		}
	}

	all := l.loadLessons()
	for i := range all {
		if all[i].Folder != nil && *all[i].Folder == oldName {
			name := newName
			all[i].Folder = &name
			l.touch(&all[i])
		}
	}

	if err := l.saveLessons(all); err != nil {
		return err
	}
	return l.saveFolders(folders)
}

// DeleteFolder removes a folder and unfiles its member lessons. Members
// are kept; only the reference is cleared.
func (l *Library) DeleteFolder(name string) error {
	folders := l.loadFolders()
	kept := folders[:0]
	for _, f := range folders {
		if f != name {
			kept = append(kept, f)
		}
	}

	all := l.loadLessons()
	for i := range all {
		if all[i].Folder != nil && *all[i].Folder == name {
			all[i].Folder = nil
			l.touch(&all[i])
		}
	}

	if err := l.saveLessons(all); err != nil {
		return err
	}
	return l.saveFolders(kept)
}
