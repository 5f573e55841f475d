package sqlite

import (
	"reflect"
	"testing"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
)

func TestEpisodeRow_RoundTripSingleMembership(t *testing.T) {
	row := episodeRow{
		ID:        42,
		Title:     "Entrevista con la directora",
		Published: "2026-05-01T08:00:00",
		Duration:  "53:12",
		ProgramID: 7,
	}
	row.Content.String, row.Content.Valid = "Texto completo", true
	row.ArchiveURL.String, row.ArchiveURL.Valid = "https://media.radioteca.fm/ep42.mp3", true
	row.ImageURL.String, row.ImageURL.Valid = "https://media.radioteca.fm/ep42.jpg", true

	back, err := episodeRowFromDomain(row.toDomain())
	if err != nil {
		t.Fatalf("episodeRowFromDomain: %v", err)
	}
	if !reflect.DeepEqual(back, row) {
		t.Fatalf("round trip: want %+v, got %+v", row, back)
	}
}

func TestEpisodeRowFromDomain_KeepsFirstMembershipOnly(t *testing.T) {
	ep := domain.Episode{
		ID:         1,
		Title:      "Multi",
		ProgramIDs: []int64{3, 9, 12},
	}
	row, err := episodeRowFromDomain(ep)
	if err != nil {
		t.Fatalf("episodeRowFromDomain: %v", err)
	}
	if row.ProgramID != 3 {
		t.Fatalf("ProgramID: want 3, got %d", row.ProgramID)
	}
	// La perte est assumée: seul le premier programme survit au cache.
	got := row.toDomain()
	if len(got.ProgramIDs) != 1 || got.ProgramIDs[0] != 3 {
		t.Fatalf("ProgramIDs after round trip: want [3], got %v", got.ProgramIDs)
	}
}

func TestEpisodeRowFromDomain_EmptyMembershipFails(t *testing.T) {
	if _, err := episodeRowFromDomain(domain.Episode{ID: 1, Title: "orphan"}); err == nil {
		t.Fatalf("expected error for empty membership list")
	}
}

func TestEpisodeRow_ImageFlattening(t *testing.T) {
	ep := domain.Episode{
		ID:         5,
		Title:      "Imagen",
		ProgramIDs: []int64{1},
		Images: []domain.Image{
			{URL: "https://media.radioteca.fm/a.jpg", Width: 1920, Height: 1080},
			{URL: "https://media.radioteca.fm/b.jpg"},
		},
	}
	row, err := episodeRowFromDomain(ep)
	if err != nil {
		t.Fatalf("episodeRowFromDomain: %v", err)
	}
	got := row.toDomain()
	if len(got.Images) != 1 {
		t.Fatalf("Images: want single element, got %v", got.Images)
	}
	// Les dimensions ne survivent pas au cache, seule l'URL est conservée.
	if got.Images[0] != (domain.Image{URL: "https://media.radioteca.fm/a.jpg"}) {
		t.Fatalf("Images[0]: got %+v", got.Images[0])
	}
}
