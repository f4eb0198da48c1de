package usecase

import (
	"errors"
	"fmt"
	"sync"

	"resume-builder/internal/model"
)

var (
	ErrIndexOutOfRange  = errors.New("section index out of range")
	ErrDuplicateSection = errors.New("section type already present")
	ErrTypeImmutable    = errors.New("section type cannot change")
)

// Session is the single-writer editing session over one document. All
// mutations go through it; subscribers are notified after each mutation so
// autosave and preview can debounce independently.
type Session struct {
	mu   sync.Mutex
	doc  *model.Document
	subs []func()
}

func NewSession(doc *model.Document) *Session {
	snapshot := doc.Clone()
	snapshot.ApplyDefaults()
	return &Session{doc: snapshot}
}

// Subscribe registers a change listener. Listeners run after the mutation
// commits, outside the session lock.
func (s *Session) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.Lock()
	subs := append(([]func())(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Document returns a deep snapshot of the current document.
func (s *Session) Document() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.doc.Sections)
}

// Get returns a copy of the section at index.
func (s *Session) Get(index int) (model.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.doc.Sections) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return s.doc.Sections[index].Clone(), nil
}

// List returns copies of all sections in display order.
func (s *Session) List() []model.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone().Sections
}

// Append adds a section at the end. Uniqueness-constrained types
// (personalDetails, skills, languages) are refused once present; the call
// is a no-op in that case and the caller gets ErrDuplicateSection.
func (s *Session) Append(section model.Section) error {
	if issues := model.CheckSection(section, "section"); len(issues) > 0 {
		return &model.ValidationError{Issues: issues}
	}
	s.mu.Lock()
	t := section.Kind()
	if t.Unique() && s.doc.CountByType(t) > 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateSection, t)
	}
	added := section.Clone()
	added.Normalize()
	s.doc.Sections = append(s.doc.Sections, added)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Remove deletes the section at index. Later indices shift down by one.
// Removal is unconditional; the confirmation step belongs to the boundary.
func (s *Session) Remove(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.doc.Sections) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	s.doc.Sections = append(s.doc.Sections[:index], s.doc.Sections[index+1:]...)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Update replaces the payload of the section at index. The type
// discriminant is immutable: a replacement of a different type is refused.
func (s *Session) Update(index int, section model.Section) error {
	if issues := model.CheckSection(section, "section"); len(issues) > 0 {
		return &model.ValidationError{Issues: issues}
	}
	s.mu.Lock()
	if index < 0 || index >= len(s.doc.Sections) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if s.doc.Sections[index].Kind() != section.Kind() {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrTypeImmutable, s.doc.Sections[index].Kind(), section.Kind())
	}
	updated := section.Clone()
	updated.Normalize()
	s.doc.Sections[index] = updated
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetSettings updates style settings, normalizing unknown values to the
// defaults.
func (s *Session) SetSettings(settings model.Settings) {
	s.mu.Lock()
	s.doc.Settings = settings
	s.doc.ApplyDefaults()
	s.mu.Unlock()
	s.notify()
}

// Replace swaps in a whole new document, used after a confirmed import.
func (s *Session) Replace(doc *model.Document) {
	snapshot := doc.Clone()
	snapshot.ApplyDefaults()
	s.mu.Lock()
	s.doc = snapshot
	s.mu.Unlock()
	s.notify()
}
