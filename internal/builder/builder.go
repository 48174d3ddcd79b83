// Package builder is the in-memory question list editor: ordered CRUD over a
// form's questions plus selection and a dirty flag, persisted only on an
// explicit save. Single active editor, no undo.
package builder

import (
	"context"
	"errors"

	"foxform/internal/domains"
	"foxform/internal/questions"
)

var (
	ErrUnknownType     = errors.New("unknown question type")
	ErrQuestionMissing = errors.New("question not found")
	// ErrReorderMismatch rejects a reorder that adds or drops questions
	// instead of just permuting them.
	ErrReorderMismatch = errors.New("reorder must keep the same question set")
)

// FormSaver persists the edited form.
type FormSaver interface {
	UpdateForm(ctx context.Context, id string, update domains.FormUpdate) (domains.Form, error)
}

type Builder struct {
	form       domains.Form
	selectedID string
	dirty      bool
}

func New(form domains.Form) *Builder {
	return &Builder{form: form}
}

// Form returns the current working copy.
func (b *Builder) Form() domains.Form { return b.form }

// Dirty reports whether there are unsaved changes.
func (b *Builder) Dirty() bool { return b.dirty }

// Selected returns the currently selected question id, if any.
func (b *Builder) Selected() string { return b.selectedID }

// Select marks a question as the editing target.
func (b *Builder) Select(id string) error {
	if b.form.QuestionIndex(id) < 0 {
		return ErrQuestionMissing
	}
	b.selectedID = id
	return nil
}

// AddQuestion appends a question with the catalog defaults for its type,
// inheriting the style override of the selected (else last) question, and
// selects it.
func (b *Builder) AddQuestion(t domains.QuestionType) (domains.QuestionConfig, error) {
	if !questions.Known(t) {
		return domains.QuestionConfig{}, ErrUnknownType
	}

	q := questions.New(t)
	if style := b.inheritedStyle(); style != nil {
		copied := *style
		q.Style = &copied
	}

	b.form.Questions = append(b.form.Questions, q)
	b.selectedID = q.ID
	b.dirty = true
	return q, nil
}

func (b *Builder) inheritedStyle() *domains.StyleOverride {
	if b.selectedID != "" {
		if q, ok := b.form.Question(b.selectedID); ok && q.Style != nil {
			return q.Style
		}
	}
	if n := len(b.form.Questions); n > 0 {
		return b.form.Questions[n-1].Style
	}
	return nil
}

// UpdateQuestion merges a partial patch into the question with the given id.
func (b *Builder) UpdateQuestion(id string, patch domains.QuestionPatch) (domains.QuestionConfig, error) {
	i := b.form.QuestionIndex(id)
	if i < 0 {
		return domains.QuestionConfig{}, ErrQuestionMissing
	}

	q := &b.form.Questions[i]
	if patch.Title != nil {
		q.Title = *patch.Title
	}
	if patch.Description != nil {
		q.Description = *patch.Description
	}
	if patch.Required != nil {
		q.Required = *patch.Required
	}
	if patch.ButtonText != nil {
		q.ButtonText = *patch.ButtonText
	}
	if patch.Options != nil {
		q.Options = *patch.Options
	}
	if patch.MinValue != nil {
		q.MinValue = patch.MinValue
	}
	if patch.MaxValue != nil {
		q.MaxValue = patch.MaxValue
	}
	if patch.Placeholder != nil {
		q.Placeholder = *patch.Placeholder
	}
	if patch.AllowedFileTypes != nil {
		q.AllowedFileTypes = *patch.AllowedFileTypes
	}
	if patch.MaxFileSize != nil {
		q.MaxFileSize = patch.MaxFileSize
	}
	if patch.Style != nil {
		q.Style = patch.Style
	}
	if patch.Logic != nil {
		q.Logic = patch.Logic
	}

	b.dirty = true
	return *q, nil
}

// DeleteQuestion removes a question and clears the selection if it pointed at
// the removed node.
func (b *Builder) DeleteQuestion(id string) error {
	i := b.form.QuestionIndex(id)
	if i < 0 {
		return ErrQuestionMissing
	}
	b.form.Questions = append(b.form.Questions[:i], b.form.Questions[i+1:]...)
	if b.selectedID == id {
		b.selectedID = ""
	}
	b.dirty = true
	return nil
}

// Reorder replaces the question array wholesale with the drag-and-drop
// result. The new order must contain exactly the existing question ids.
func (b *Builder) Reorder(newOrder []domains.QuestionConfig) error {
	if len(newOrder) != len(b.form.Questions) {
		return ErrReorderMismatch
	}
	seen := make(map[string]bool, len(newOrder))
	for _, q := range newOrder {
		if b.form.QuestionIndex(q.ID) < 0 || seen[q.ID] {
			return ErrReorderMismatch
		}
		seen[q.ID] = true
	}
	b.form.Questions = newOrder
	b.dirty = true
	return nil
}

// Save persists the working copy through the store and clears the dirty flag.
func (b *Builder) Save(ctx context.Context, store FormSaver) (domains.Form, error) {
	qs := b.form.Questions
	update := domains.FormUpdate{
		Title:           &b.form.Title,
		Description:     &b.form.Description,
		Slug:            &b.form.Slug,
		Theme:           &b.form.Theme,
		Questions:       &qs,
		ThankYouMessage: &b.form.ThankYouMessage,
	}
	saved, err := store.UpdateForm(ctx, b.form.ID, update)
	if err != nil {
		return domains.Form{}, err
	}
	b.form = saved
	b.dirty = false
	return saved, nil
}
