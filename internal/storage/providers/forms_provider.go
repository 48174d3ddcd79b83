package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"foxform/internal/domains"
	"foxform/internal/storage"
)

type FormProvider struct {
	db *pgxpool.Pool
}

func NewFormProvider(db *pgxpool.Pool) *FormProvider {
	return &FormProvider{db: db}
}

const formColumns = `id, user_id, title, description, slug, status, theme, questions, thank_you_message, created_at, updated_at`

func scanForm(row pgx.Row) (domains.Form, error) {
	var form domains.Form
	var questionsJSON []byte
	err := row.Scan(
		&form.ID,
		&form.UserID,
		&form.Title,
		&form.Description,
		&form.Slug,
		&form.Status,
		&form.Theme,
		&questionsJSON,
		&form.ThankYouMessage,
		&form.CreatedAt,
		&form.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domains.Form{}, storage.ErrNotFound
		}
		return domains.Form{}, err
	}
	if err := json.Unmarshal(questionsJSON, &form.Questions); err != nil {
		return domains.Form{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	if form.Questions == nil {
		form.Questions = []domains.QuestionConfig{}
	}
	return form, nil
}

func (p *FormProvider) CreateForm(ctx context.Context, form domains.Form) (domains.Form, error) {
	if form.ID == "" {
		form.ID = uuid.Must(uuid.NewV4()).String()
	}
	if form.Status == "" {
		form.Status = domains.StatusDraft
	}
	if form.Theme == "" {
		form.Theme = domains.ThemeMinimal
	}
	if form.ThankYouMessage == "" {
		form.ThankYouMessage = domains.DefaultThankYouMessage
	}
	if form.Questions == nil {
		form.Questions = []domains.QuestionConfig{}
	}

	questionsJSON, err := json.Marshal(form.Questions)
	if err != nil {
		return domains.Form{}, fmt.Errorf("marshal questions: %w", err)
	}

	now := time.Now().UTC()
	row := p.db.QueryRow(ctx, `
		INSERT INTO forms (`+formColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING `+formColumns,
		form.ID, form.UserID, form.Title, form.Description, form.Slug,
		form.Status, form.Theme, questionsJSON, form.ThankYouMessage, now, now,
	)

	created, err := scanForm(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domains.Form{}, storage.ErrSlugTaken
		}
		return domains.Form{}, fmt.Errorf("insert form: %w", err)
	}
	return created, nil
}

func (p *FormProvider) UpdateForm(ctx context.Context, id string, update domains.FormUpdate) (domains.Form, error) {
	sets := []string{"updated_at = now()"}
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Slug != nil {
		add("slug", *update.Slug)
	}
	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.Theme != nil {
		add("theme", *update.Theme)
	}
	if update.Questions != nil {
		questionsJSON, err := json.Marshal(*update.Questions)
		if err != nil {
			return domains.Form{}, fmt.Errorf("marshal questions: %w", err)
		}
		add("questions", questionsJSON)
	}
	if update.ThankYouMessage != nil {
		add("thank_you_message", *update.ThankYouMessage)
	}

	query := fmt.Sprintf(`
		UPDATE forms SET %s
		WHERE id = $1
		RETURNING %s`, strings.Join(sets, ", "), formColumns)

	form, err := scanForm(p.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domains.Form{}, storage.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domains.Form{}, storage.ErrSlugTaken
		}
		return domains.Form{}, fmt.Errorf("update form: %w", err)
	}
	return form, nil
}

func (p *FormProvider) GetFormByID(ctx context.Context, id string) (domains.Form, error) {
	row := p.db.QueryRow(ctx, `SELECT `+formColumns+` FROM forms WHERE id = $1`, id)
	return scanForm(row)
}

func (p *FormProvider) GetFormBySlug(ctx context.Context, slug string, status domains.FormStatus) (domains.Form, error) {
	if status == "" {
		row := p.db.QueryRow(ctx, `SELECT `+formColumns+` FROM forms WHERE slug = $1`, slug)
		return scanForm(row)
	}
	row := p.db.QueryRow(ctx, `SELECT `+formColumns+` FROM forms WHERE slug = $1 AND status = $2`, slug, status)
	return scanForm(row)
}

func (p *FormProvider) ListFormsByUser(ctx context.Context, userID string) ([]domains.Form, error) {
	rows, err := p.db.Query(ctx, `
		SELECT `+formColumns+` FROM forms
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list forms: %w", err)
	}
	defer rows.Close()

	var out []domains.Form
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		out = append(out, form)
	}
	return out, rows.Err()
}

// DeleteForm removes a form and its responses in one transaction.
func (p *FormProvider) DeleteForm(ctx context.Context, id string) (bool, error) {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM responses WHERE form_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete responses: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM forms WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete form: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
