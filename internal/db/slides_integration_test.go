//go:build integration

package db

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/blakehenkel24-eng/slidetheory/internal/types"
)

// getTestDB connects to TEST_DATABASE_URL and applies the schema
func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func testSlide(title string, points ...string) *types.SlideData {
	bp := &types.SlideBlueprint{
		Title:            types.StringPtr(title),
		KeyMessage:       types.StringPtr("Integration key message"),
		Layout:           types.LayoutExecutiveSummary,
		SupportingPoints: points,
	}
	return &types.SlideData{
		ID:                uuid.NewString(),
		Title:             title,
		Content:           `{"title":"` + title + `"}`,
		Layout:            bp.Layout,
		Blueprint:         bp,
		QualityAssessment: &types.QualityAssessment{Overall: 3.3, Strengths: []string{}, Improvements: []string{"x"}},
	}
}

func TestIntegration_Slide_CRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	slide := testSlide("Warehouse automation cut fulfilment cost 18%", "Pick rates doubled", "Errors fell")
	saved, err := db.SaveSlide(ctx, slide, types.AudienceBoard)
	if err != nil {
		t.Fatalf("SaveSlide failed: %v", err)
	}
	defer func() { _ = db.DeleteSlide(ctx, saved.ID) }()

	if saved.ID.String() != slide.ID {
		t.Errorf("ID = %s, want %s", saved.ID, slide.ID)
	}
	if saved.Overall == nil || *saved.Overall != 3.3 {
		t.Errorf("Overall = %v, want 3.3", saved.Overall)
	}

	got, err := db.GetSlide(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetSlide failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected slide, got nil")
	}
	if got.Audience != types.AudienceBoard {
		t.Errorf("Audience = %q, want %q", got.Audience, types.AudienceBoard)
	}
	if got.Blueprint == nil || len(got.Blueprint.SupportingPoints) != 2 {
		t.Errorf("Blueprint not round-tripped: %+v", got.Blueprint)
	}

	// Saving again with the same ID updates in place
	slide.Title = "Warehouse automation cut fulfilment cost 20%"
	slide.Blueprint.Title = types.StringPtr(slide.Title)
	if _, err := db.SaveSlide(ctx, slide, types.AudienceBoard); err != nil {
		t.Fatalf("SaveSlide update failed: %v", err)
	}
	got, _ = db.GetSlide(ctx, saved.ID)
	if got.Title != slide.Title {
		t.Errorf("Title = %q, want %q", got.Title, slide.Title)
	}

	list, err := db.ListSlides(ctx, 50)
	if err != nil {
		t.Fatalf("ListSlides failed: %v", err)
	}
	if len(list) == 0 {
		t.Error("ListSlides returned nothing")
	}
}

func TestIntegration_GetSlide_NotFound(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()

	got, err := db.GetSlide(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetSlide failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil, got %+v", got)
	}
}

func TestIntegration_SearchSlides(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	marker := "zanzibarquokka" + uuid.NewString()[:8]
	match, err := db.SaveSlide(ctx, testSlide("Logistics costs fell", "Routing "+marker+" saved fuel"), "")
	if err != nil {
		t.Fatalf("SaveSlide failed: %v", err)
	}
	defer func() { _ = db.DeleteSlide(ctx, match.ID) }()

	other, err := db.SaveSlide(ctx, testSlide("Hiring plan on track", "Recruiters added"), "")
	if err != nil {
		t.Fatalf("SaveSlide failed: %v", err)
	}
	defer func() { _ = db.DeleteSlide(ctx, other.ID) }()

	res, err := db.SearchSlides(ctx, marker, 0)
	if err != nil {
		t.Fatalf("SearchSlides failed: %v", err)
	}
	if res.Method != SearchMethodText {
		t.Errorf("Method = %q, want %q", res.Method, SearchMethodText)
	}
	if res.Count != 1 || res.Slides[0].ID != match.ID {
		t.Errorf("Expected only the marked slide, got %d results", res.Count)
	}

	if _, err := db.SearchSlides(ctx, "   ", 0); err != ErrEmptyQuery {
		t.Errorf("Expected ErrEmptyQuery, got %v", err)
	}
}
