package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foxform/internal/domains"
	"foxform/internal/storage"
)

type ResponseProvider struct {
	db *pgxpool.Pool
}

func NewResponseProvider(db *pgxpool.Pool) *ResponseProvider {
	return &ResponseProvider{db: db}
}

func scanResponse(row pgx.Row) (domains.Response, error) {
	var resp domains.Response
	var answersJSON []byte
	err := row.Scan(&resp.ID, &resp.FormID, &answersJSON, &resp.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domains.Response{}, storage.ErrNotFound
		}
		return domains.Response{}, err
	}
	if err := json.Unmarshal(answersJSON, &resp.Answers); err != nil {
		return domains.Response{}, fmt.Errorf("unmarshal answers: %w", err)
	}
	return resp, nil
}

func (p *ResponseProvider) CreateResponse(ctx context.Context, payload domains.ResponseCreate) (domains.Response, error) {
	answers := payload.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return domains.Response{}, fmt.Errorf("marshal answers: %w", err)
	}

	row := p.db.QueryRow(ctx, `
		INSERT INTO responses (id, form_id, answers, submitted_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, form_id, answers, submitted_at`,
		uuid.Must(uuid.NewV4()).String(), payload.FormID, answersJSON,
	)

	resp, err := scanResponse(row)
	if err != nil {
		return domains.Response{}, fmt.Errorf("insert response: %w", err)
	}
	return resp, nil
}

func (p *ResponseProvider) ListResponsesByForm(ctx context.Context, formID string) ([]domains.Response, error) {
	rows, err := p.db.Query(ctx, `
		SELECT id, form_id, answers, submitted_at FROM responses
		WHERE form_id = $1
		ORDER BY submitted_at DESC`, formID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []domains.Response
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}

func (p *ResponseProvider) DeleteResponse(ctx context.Context, id string) (bool, error) {
	tag, err := p.db.Exec(ctx, `DELETE FROM responses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete response: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
