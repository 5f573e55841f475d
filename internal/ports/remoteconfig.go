package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
)

type ConfigRepository interface {
	// Get renvoie DefaultRemoteConfig tant qu'aucun fetch n'a abouti.
	Get(ctx context.Context) (domain.RemoteConfig, error)
	Put(ctx context.Context, cfg domain.RemoteConfig) (domain.RemoteConfig, error)
}
