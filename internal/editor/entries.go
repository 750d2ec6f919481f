package editor

import (
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// entryList is the draft and edit-index workflow shared by the experience and education editors.
// A nil editIndex means the draft is a new entry.
type entryList[T any] struct {
	store     *store.Store
	section   string
	entries   func(*types.ResumeDocument) []T
	patch     func([]T) store.Patch
	clone     func(T) T
	check     func(*T) error
	draft     T
	editIndex *int
}

func (l *entryList[T]) list() []T {
	return l.entries(l.store.Document())
}

func (l *entryList[T]) edit(i int) error {
	entries := l.list()
	if i < 0 || i >= len(entries) {
		return &IndexError{Section: l.section, Index: i, Len: len(entries)}
	}
	l.draft = l.clone(entries[i])
	idx := i
	l.editIndex = &idx
	return nil
}

func (l *entryList[T]) submit() error {
	if err := l.check(&l.draft); err != nil {
		l.store.SetError(store.ViewEditor, err.Error())
		return err
	}

	entries := l.list()
	if l.editIndex == nil {
		entries = append(entries, l.clone(l.draft))
	} else {
		i := *l.editIndex
		if i < 0 || i >= len(entries) {
			return &IndexError{Section: l.section, Index: i, Len: len(entries)}
		}
		entries[i] = l.clone(l.draft)
	}
	l.store.Merge(l.patch(entries))
	l.store.ClearError(store.ViewEditor)
	l.reset()
	return nil
}

func (l *entryList[T]) delete(i int) error {
	entries := l.list()
	if i < 0 || i >= len(entries) {
		return &IndexError{Section: l.section, Index: i, Len: len(entries)}
	}
	entries = append(entries[:i], entries[i+1:]...)
	l.store.Merge(l.patch(entries))

	if l.editIndex != nil {
		switch {
		case *l.editIndex == i:
			l.reset()
		case i < *l.editIndex:
			*l.editIndex--
		}
	}
	return nil
}

func (l *entryList[T]) reset() {
	var zero T
	l.draft = zero
	l.editIndex = nil
}

func (l *entryList[T]) editing() (int, bool) {
	if l.editIndex == nil {
		return 0, false
	}
	return *l.editIndex, true
}
