package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// ErrEmptyQuery is returned when a search is attempted with a blank query
var ErrEmptyQuery = errors.New("search query must not be empty")

const slideColumns = `id, title, key_message, layout, audience, content, blueprint,
	        assessment, overall, executive_ready, used_fallback, created_at`

// SaveSlide stores a generated slide in the library, replacing any slide with the same ID.
// A slide whose ID is not a UUID is stored under a fresh one.
func (db *DB) SaveSlide(ctx context.Context, slide *types.SlideData, audience string) (*SlideRecord, error) {
	if slide == nil || slide.Blueprint == nil {
		return nil, fmt.Errorf("slide has no blueprint")
	}

	id, err := uuid.Parse(slide.ID)
	if err != nil {
		id = uuid.New()
	}
	if audience == "" {
		audience = types.AudienceAuto
	}

	blueprintJSON, err := json.Marshal(slide.Blueprint)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal blueprint: %w", err)
	}

	var assessmentJSON []byte
	var overall *float64
	executiveReady := false
	if a := slide.QualityAssessment; a != nil {
		if assessmentJSON, err = json.Marshal(a); err != nil {
			return nil, fmt.Errorf("failed to marshal assessment: %w", err)
		}
		overall = &a.Overall
		executiveReady = a.IsExecutiveReady
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO slide_library (id, title, key_message, layout, audience, content, blueprint,
		                            assessment, overall, executive_ready, used_fallback, search_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
		     title = EXCLUDED.title,
		     key_message = EXCLUDED.key_message,
		     layout = EXCLUDED.layout,
		     audience = EXCLUDED.audience,
		     content = EXCLUDED.content,
		     blueprint = EXCLUDED.blueprint,
		     assessment = EXCLUDED.assessment,
		     overall = EXCLUDED.overall,
		     executive_ready = EXCLUDED.executive_ready,
		     used_fallback = EXCLUDED.used_fallback,
		     search_text = EXCLUDED.search_text
		 RETURNING `+slideColumns,
		id, slide.Blueprint.TitleText(), slide.Blueprint.KeyMessageText(), string(slide.Blueprint.Layout),
		audience, slide.Content, blueprintJSON, assessmentJSON, overall, executiveReady,
		slide.UsedFallback, SearchText(slide.Blueprint),
	)

	rec, err := scanSlide(row)
	if err != nil {
		return nil, fmt.Errorf("failed to save slide: %w", err)
	}
	return rec, nil
}

// GetSlide retrieves a slide by ID; it returns nil, nil when no slide matches
func (db *DB) GetSlide(ctx context.Context, id uuid.UUID) (*SlideRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+slideColumns+` FROM slide_library WHERE id = $1`, id)

	rec, err := scanSlide(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get slide: %w", err)
	}
	return rec, nil
}

// ListSlides returns the most recently stored slides
func (db *DB) ListSlides(ctx context.Context, limit int) ([]SlideRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+slideColumns+` FROM slide_library
		 ORDER BY created_at DESC
		 LIMIT $1`,
		normalizeLimit(limit, DefaultListLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list slides: %w", err)
	}
	defer rows.Close()

	return collectSlides(rows)
}

// SearchSlides runs an English full-text search over titles, key messages and
// supporting points, best match first.
func (db *DB) SearchSlides(ctx context.Context, query string, limit int) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+slideColumns+` FROM slide_library
		 WHERE search_vector @@ plainto_tsquery('english', $1)
		 ORDER BY ts_rank(search_vector, plainto_tsquery('english', $1)) DESC, created_at DESC
		 LIMIT $2`,
		query, normalizeLimit(limit, DefaultSearchLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search slides: %w", err)
	}
	defer rows.Close()

	slides, err := collectSlides(rows)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Slides: slides, Count: len(slides), Method: SearchMethodText}, nil
}

// DeleteSlide removes a slide; deleting a missing slide is not an error
func (db *DB) DeleteSlide(ctx context.Context, id uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM slide_library WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete slide: %w", err)
	}
	return nil
}

func collectSlides(rows pgx.Rows) ([]SlideRecord, error) {
	slides := []SlideRecord{}
	for rows.Next() {
		rec, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slide: %w", err)
		}
		slides = append(slides, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slides: %w", err)
	}
	return slides, nil
}

func scanSlide(row pgx.Row) (*SlideRecord, error) {
	var rec SlideRecord
	var layout string
	var blueprintJSON, assessmentJSON []byte
	var overall *float32

	err := row.Scan(&rec.ID, &rec.Title, &rec.KeyMessage, &layout, &rec.Audience, &rec.Content,
		&blueprintJSON, &assessmentJSON, &overall, &rec.ExecutiveReady, &rec.UsedFallback, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	rec.Layout = types.Layout(layout)
	if overall != nil {
		v := roundTenth(float64(*overall))
		rec.Overall = &v
	}
	if err := decodeSlideJSON(&rec, blueprintJSON, assessmentJSON); err != nil {
		return nil, err
	}
	return &rec, nil
}

func decodeSlideJSON(rec *SlideRecord, blueprintJSON, assessmentJSON []byte) error {
	if blueprintJSON != nil {
		var bp types.SlideBlueprint
		if err := json.Unmarshal(blueprintJSON, &bp); err != nil {
			return fmt.Errorf("failed to decode blueprint: %w", err)
		}
		rec.Blueprint = &bp
	}
	if assessmentJSON != nil {
		var a types.QualityAssessment
		if err := json.Unmarshal(assessmentJSON, &a); err != nil {
			return fmt.Errorf("failed to decode assessment: %w", err)
		}
		rec.Assessment = &a
	}
	return nil
}
