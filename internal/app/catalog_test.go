package app

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/radioteca/internal/adapters/sqlite"
	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
)

// fakeRemote implémente ports.RemoteCatalog avec des fonctions injectables.
type fakeRemote struct {
	programs          func(ctx context.Context) ([]domain.Program, error)
	episodesByProgram func(ctx context.Context, programID int64, page, perPage int) ([]domain.Episode, error)
	episodes          func(ctx context.Context, page, perPage int) ([]domain.Episode, error)
	episode           func(ctx context.Context, id int64) (*domain.Episode, error)
	search            func(ctx context.Context, term string) ([]domain.Episode, error)
}

func (f *fakeRemote) Programs(ctx context.Context) ([]domain.Program, error) {
	return f.programs(ctx)
}

func (f *fakeRemote) EpisodesByProgram(ctx context.Context, programID int64, page, perPage int) ([]domain.Episode, error) {
	return f.episodesByProgram(ctx, programID, page, perPage)
}

func (f *fakeRemote) Episodes(ctx context.Context, page, perPage int) ([]domain.Episode, error) {
	return f.episodes(ctx, page, perPage)
}

func (f *fakeRemote) Episode(ctx context.Context, id int64) (*domain.Episode, error) {
	return f.episode(ctx, id)
}

func (f *fakeRemote) Search(ctx context.Context, term string) ([]domain.Episode, error) {
	return f.search(ctx, term)
}

type catalogFixture struct {
	svc      *CatalogService
	remote   *fakeRemote
	programs *sqlite.ProgramsRepository
	episodes *sqlite.EpisodesRepository
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	remote := &fakeRemote{}
	programs := sqlite.NewProgramsRepository(db.SQL)
	episodes := sqlite.NewEpisodesRepository(db.SQL)
	svc := NewCatalogService(zerolog.Nop(), remote, programs, episodes, nil)
	return &catalogFixture{svc: svc, remote: remote, programs: programs, episodes: episodes}
}

func testEpisode(id, programID int64, title string) domain.Episode {
	return domain.Episode{
		ID:         id,
		Title:      title,
		Published:  "2026-01-01T00:00:00",
		ProgramIDs: []int64{programID},
	}
}

func TestCatalogService_ProgramsRefreshesCache(t *testing.T) {
	ctx := context.Background()
	fx := newCatalogFixture(t)

	fresh := []domain.Program{
		{ID: 1, Name: "Aires", Slug: "aires"},
		{ID: 2, Name: "Crónica", Slug: "cronica"},
	}
	fx.remote.programs = func(ctx context.Context) ([]domain.Program, error) { return fresh, nil }

	got, err := fx.svc.Programs(ctx)
	if err != nil {
		t.Fatalf("Programs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 fresh programs, got %d", len(got))
	}

	cached, err := fx.programs.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cached) != 2 {
		t.Fatalf("cache not refreshed: %d rows", len(cached))
	}
}

func TestCatalogService_ProgramsFallsBackToWarmCache(t *testing.T) {
	ctx := context.Background()
	fx := newCatalogFixture(t)

	if err := fx.programs.Upsert(ctx, domain.Program{ID: 1, Name: "Aires", Slug: "aires"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	fx.remote.programs = func(ctx context.Context) ([]domain.Program, error) {
		return nil, &ConnectivityError{Err: errors.New("no route to host")}
	}

	got, err := fx.svc.Programs(ctx)
	if err != nil {
		t.Fatalf("Programs should serve cache, got %v", err)
	}
	if len(got) != 1 || got[0].Name != "Aires" {
		t.Fatalf("cached programs: %+v", got)
	}
}

func TestCatalogService_ProgramsColdCachePropagatesError(t *testing.T) {
	fx := newCatalogFixture(t)

	orig := &ConnectivityError{Err: errors.New("dns failure")}
	fx.remote.programs = func(ctx context.Context) ([]domain.Program, error) { return nil, orig }

	_, err := fx.svc.Programs(context.Background())
	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("want original *ConnectivityError, got %v", err)
	}
}

func TestCatalogService_ProgramsNoFallbackOn4xx(t *testing.T) {
	ctx := context.Background()
	fx := newCatalogFixture(t)

	// Cache chaud, mais une 4xx est permanente: pas de repli.
	if err := fx.programs.Upsert(ctx, domain.Program{ID: 1, Name: "Aires", Slug: "aires"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	fx.remote.programs = func(ctx context.Context) ([]domain.Program, error) {
		return nil, &APIError{Status: 400}
	}

	_, err := fx.svc.Programs(ctx)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want *APIError, got %v", err)
	}
}

func TestCatalogService_EpisodesByProgramStampsCache(t *testing.T) {
	ctx := context.Background()
	fx := newCatalogFixture(t)

	fx.remote.episodesByProgram = func(ctx context.Context, programID int64, page, perPage int) ([]domain.Episode, error) {
		if programID != 7 || page != 1 || perPage != EpisodesPerProgramPage {
			t.Errorf("remote called with programID=%d page=%d perPage=%d", programID, page, perPage)
		}
		return []domain.Episode{testEpisode(1, 7, "uno"), testEpisode(2, 7, "dos")}, nil
	}

	got, err := fx.svc.EpisodesByProgram(ctx, 7, 1)
	if err != nil {
		t.Fatalf("EpisodesByProgram: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 episodes, got %d", len(got))
	}

	cached, err := fx.episodes.ListByProgram(ctx, 7)
	if err != nil {
		t.Fatalf("ListByProgram: %v", err)
	}
	for _, ep := range cached {
		if ep.ProgramIDs[0] != 7 {
			t.Fatalf("cached row belongs to program %d, want 7", ep.ProgramIDs[0])
		}
	}
}

func TestCatalogService_EpisodesByProgramFallback(t *testing.T) {
	ctx := context.Background()
	fx := newCatalogFixture(t)

	if err := fx.episodes.Upsert(ctx, testEpisode(1, 7, "cacheado")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	fx.remote.episodesByProgram = func(ctx context.Context, programID int64, page, perPage int) ([]domain.Episode, error) {
		return nil, &ServerError{Status: 503}
	}

	got, err := fx.svc.EpisodesByProgram(ctx, 7, 1)
	if err != nil {
		t.Fatalf("want cached episodes, got %v", err)
	}
	if len(got) != 1 || got[0].Title != "cacheado" {
		t.Fatalf("cached episodes: %+v", got)
	}
}

func TestCatalogService_EpisodeFallbackToCache(t *testing.T) {
	ctx := context.Background()
	fx := newCatalogFixture(t)

	if err := fx.episodes.Upsert(ctx, testEpisode(42, 7, "offline")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	fx.remote.episode = func(ctx context.Context, id int64) (*domain.Episode, error) {
		return nil, &ConnectivityError{Err: errors.New("timeout")}
	}

	got, err := fx.svc.Episode(ctx, 42)
	if err != nil {
		t.Fatalf("Episode: %v", err)
	}
	if got == nil || got.Title != "offline" {
		t.Fatalf("cached episode: %+v", got)
	}

	// Absent du cache → l'erreur d'origine remonte.
	_, err = fx.svc.Episode(ctx, 999)
	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("want original *ConnectivityError, got %v", err)
	}
}

func TestCatalogService_EpisodeRemoteNil(t *testing.T) {
	fx := newCatalogFixture(t)
	fx.remote.episode = func(ctx context.Context, id int64) (*domain.Episode, error) { return nil, nil }

	got, err := fx.svc.Episode(context.Background(), 1)
	if err != nil || got != nil {
		t.Fatalf("404 distant: want (nil, nil), got (%+v, %v)", got, err)
	}
}

func TestCatalogService_SearchGuardSkipsRemote(t *testing.T) {
	fx := newCatalogFixture(t)
	called := false
	fx.remote.search = func(ctx context.Context, term string) ([]domain.Episode, error) {
		called = true
		return nil, nil
	}

	got, err := fx.svc.SearchEpisodes(context.Background(), " ab ")
	if err != nil {
		t.Fatalf("SearchEpisodes: %v", err)
	}
	if len(got) != 0 || called {
		t.Fatalf("short term must short-circuit (called=%v, got=%d)", called, len(got))
	}
}

func TestCatalogService_SearchFallbackUsesCacheWithFolding(t *testing.T) {
	ctx := context.Background()
	fx := newCatalogFixture(t)

	if err := fx.episodes.Upsert(ctx, testEpisode(1, 7, "cancion de cuna")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	fx.remote.search = func(ctx context.Context, term string) ([]domain.Episode, error) {
		return nil, &ConnectivityError{Err: errors.New("offline")}
	}

	// Le terme accentué retrouve le contenu en cache écrit sans accents.
	got, err := fx.svc.SearchEpisodes(ctx, "canción")
	if err != nil {
		t.Fatalf("SearchEpisodes: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("folded fallback search: %+v", got)
	}
}

func TestCatalogService_EpisodesFeedsCache(t *testing.T) {
	ctx := context.Background()
	fx := newCatalogFixture(t)

	fx.remote.episodes = func(ctx context.Context, page, perPage int) ([]domain.Episode, error) {
		if perPage != EpisodesPerPage {
			t.Errorf("perPage: want %d, got %d", EpisodesPerPage, perPage)
		}
		return []domain.Episode{testEpisode(1, 7, "uno")}, nil
	}

	if _, err := fx.svc.Episodes(ctx, 1); err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if _, err := fx.episodes.Get(ctx, 1); err != nil {
		t.Fatalf("episode should be cached after listing: %v", err)
	}
}
