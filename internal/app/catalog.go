package app

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
	"github.com/Guilhem-Bonnet/radioteca/internal/ports"
)

// CatalogService orchestre "distant d'abord, cache en secours":
//
//  1. fetch distant;
//  2. succès → persister puis renvoyer les données fraîches;
//  3. échec connectivité/serveur → servir le cache s'il n'est pas vide,
//     sinon remonter l'erreur d'origine;
//  4. échec 4xx → remonter immédiatement, pas de repli (condition permanente).
//
// Sans état entre les appels: la pagination (page courante, "peut charger
// plus") appartient à l'appelant.
type CatalogService struct {
	logger   zerolog.Logger
	remote   ports.RemoteCatalog
	programs ports.ProgramRepository
	episodes ports.EpisodeRepository
	bus      ports.EventBus
}

func NewCatalogService(logger zerolog.Logger, remote ports.RemoteCatalog, programs ports.ProgramRepository, episodes ports.EpisodeRepository, bus ports.EventBus) *CatalogService {
	return &CatalogService{logger: logger, remote: remote, programs: programs, episodes: episodes, bus: bus}
}

func (s *CatalogService) Programs(ctx context.Context) ([]domain.Program, error) {
	fresh, err := s.remote.Programs(ctx)
	if err != nil {
		if !canServeFromCache(err) {
			return nil, err
		}
		cached, cacheErr := s.programs.List(ctx)
		if cacheErr == nil && len(cached) > 0 {
			s.logger.Warn().Err(err).Int("cached", len(cached)).Msg("remote unavailable, serving cached programs")
			return cached, nil
		}
		return nil, err
	}

	if err := s.programs.ReplaceAll(ctx, fresh); err != nil {
		// La lecture a réussi: on sert les données fraîches malgré tout.
		s.logger.Error().Err(err).Msg("failed to persist programs")
	} else {
		s.publish("programs.refreshed", map[string]any{"count": len(fresh)})
	}
	return fresh, nil
}

// Program lit le cache; sur absence, déclenche un refresh complet puis
// retente une fois.
func (s *CatalogService) Program(ctx context.Context, id int64) (domain.Program, error) {
	p, err := s.programs.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return domain.Program{}, err
	}
	if _, err := s.Programs(ctx); err != nil {
		return domain.Program{}, err
	}
	return s.programs.Get(ctx, id)
}

func (s *CatalogService) EpisodesByProgram(ctx context.Context, programID int64, page int) ([]domain.Episode, error) {
	fresh, err := s.remote.EpisodesByProgram(ctx, programID, page, EpisodesPerProgramPage)
	if err != nil {
		if !canServeFromCache(err) {
			return nil, err
		}
		cached, cacheErr := s.episodes.ListByProgram(ctx, programID)
		if cacheErr == nil && len(cached) > 0 {
			s.logger.Warn().Err(err).Int64("program", programID).Int("cached", len(cached)).Msg("remote unavailable, serving cached episodes")
			return cached, nil
		}
		return nil, err
	}

	if err := s.episodes.ReplaceForProgram(ctx, programID, fresh); err != nil {
		s.logger.Error().Err(err).Int64("program", programID).Msg("failed to persist episodes")
	} else {
		s.publish("episodes.refreshed", map[string]any{"programId": programID, "count": len(fresh)})
	}
	return fresh, nil
}

// Episodes liste tous les épisodes, paginé. Pas de repli cache: le store n'a
// pas de lecture "tous programmes confondus". Les lignes reçues alimentent
// quand même le cache (upsert) pour la recherche et la lecture par id offline.
func (s *CatalogService) Episodes(ctx context.Context, page int) ([]domain.Episode, error) {
	fresh, err := s.remote.Episodes(ctx, page, EpisodesPerPage)
	if err != nil {
		return nil, err
	}
	for _, ep := range fresh {
		if len(ep.ProgramIDs) == 0 {
			continue
		}
		if err := s.episodes.Upsert(ctx, ep); err != nil {
			s.logger.Error().Err(err).Int64("episode", ep.ID).Msg("failed to cache episode")
			break
		}
	}
	return fresh, nil
}

// Episode renvoie (nil, nil) quand l'épisode n'existe pas côté distant.
func (s *CatalogService) Episode(ctx context.Context, id int64) (*domain.Episode, error) {
	ep, err := s.remote.Episode(ctx, id)
	if err != nil {
		if !canServeFromCache(err) {
			return nil, err
		}
		cached, cacheErr := s.episodes.Get(ctx, id)
		if cacheErr == nil {
			s.logger.Warn().Err(err).Int64("episode", id).Msg("remote unavailable, serving cached episode")
			return &cached, nil
		}
		return nil, err
	}
	return ep, nil
}

// SearchEpisodes garde le court-circuit ≤ 2 caractères puis interroge le
// distant; en repli, LIKE sur le cache avec le terme brut et sa variante
// sans diacritiques.
func (s *CatalogService) SearchEpisodes(ctx context.Context, term string) ([]domain.Episode, error) {
	trimmed := strings.TrimSpace(term)
	if len([]rune(trimmed)) < MinSearchLength {
		return []domain.Episode{}, nil
	}

	fresh, err := s.remote.Search(ctx, trimmed)
	if err != nil {
		if !canServeFromCache(err) {
			return nil, err
		}
		cached, cacheErr := s.fallbackSearch(ctx, trimmed)
		if cacheErr != nil {
			return nil, err
		}
		s.logger.Warn().Err(err).Str("term", trimmed).Int("cached", len(cached)).Msg("remote unavailable, searching cache")
		return cached, nil
	}
	return fresh, nil
}

func (s *CatalogService) fallbackSearch(ctx context.Context, term string) ([]domain.Episode, error) {
	out, err := s.episodes.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	folded := foldSearchTerm(term)
	if folded == strings.ToLower(term) {
		return out, nil
	}
	more, err := s.episodes.Search(ctx, folded)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(out))
	for _, ep := range out {
		seen[ep.ID] = struct{}{}
	}
	for _, ep := range more {
		if _, ok := seen[ep.ID]; !ok {
			out = append(out, ep)
		}
	}
	return out, nil
}

func (s *CatalogService) publish(topic string, payload map[string]any) {
	if s.bus == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	s.bus.Publish(topic, b)
}
