package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
)

// RemoteCatalog est la source distante (API WordPress).
// Episode renvoie (nil, nil) quand la ressource n'existe pas côté distant (404).
type RemoteCatalog interface {
	Programs(ctx context.Context) ([]domain.Program, error)
	EpisodesByProgram(ctx context.Context, programID int64, page, perPage int) ([]domain.Episode, error)
	Episodes(ctx context.Context, page, perPage int) ([]domain.Episode, error)
	Episode(ctx context.Context, id int64) (*domain.Episode, error)
	Search(ctx context.Context, term string) ([]domain.Episode, error)
}

type ProgramRepository interface {
	Upsert(ctx context.Context, program domain.Program) error
	// ReplaceAll vide la table puis insère, dans une seule transaction.
	ReplaceAll(ctx context.Context, programs []domain.Program) error
	List(ctx context.Context) ([]domain.Program, error)
	Get(ctx context.Context, id int64) (domain.Program, error)
}

type EpisodeRepository interface {
	Upsert(ctx context.Context, episode domain.Episode) error
	// ReplaceForProgram supprime les épisodes du programme puis insère la page
	// fraîche, dans une seule transaction: un lecteur concurrent voit l'ancien
	// jeu complet ou le nouveau, jamais un état partiel.
	ReplaceForProgram(ctx context.Context, programID int64, episodes []domain.Episode) error
	ListByProgram(ctx context.Context, programID int64) ([]domain.Episode, error)
	DeleteByProgram(ctx context.Context, programID int64) error
	Get(ctx context.Context, id int64) (domain.Episode, error)
	Search(ctx context.Context, term string) ([]domain.Episode, error)
}
