package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
	"github.com/Guilhem-Bonnet/radioteca/internal/ports"
)

// RemoteConfigService expose la dernière configuration distante connue.
// Get est synchrone et ne touche jamais le réseau; Refresh fait un seul
// fetch et, en cas d'échec, laisse la valeur en cache intacte.
type RemoteConfigService struct {
	logger zerolog.Logger
	repo   ports.ConfigRepository
	url    string
	client *http.Client
	bus    ports.EventBus
}

func NewRemoteConfigService(logger zerolog.Logger, repo ports.ConfigRepository, configURL string, timeout time.Duration, bus ports.EventBus) *RemoteConfigService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteConfigService{
		logger: logger,
		repo:   repo,
		url:    configURL,
		client: &http.Client{Timeout: timeout},
		bus:    bus,
	}
}

func (s *RemoteConfigService) Get(ctx context.Context) (domain.RemoteConfig, error) {
	return s.repo.Get(ctx)
}

// APIBaseURL est le getter branché sur WordPressCatalog.
func (s *RemoteConfigService) APIBaseURL(ctx context.Context) (string, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	return cfg.APIBaseURL, nil
}

func (s *RemoteConfigService) Refresh(ctx context.Context) (domain.RemoteConfig, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return domain.RemoteConfig{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "radioteca-server")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.RemoteConfig{}, wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.RemoteConfig{}, statusToError(resp.StatusCode)
	}

	var cfg domain.RemoteConfig
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.RemoteConfig{}, err
		}
		return domain.RemoteConfig{}, &ServerError{Status: resp.StatusCode}
	}
	if cfg.APIBaseURL == "" {
		// Document incomplet: on ne remplace pas une config valide par du vide.
		return domain.RemoteConfig{}, &ServerError{Status: resp.StatusCode}
	}

	stored, err := s.repo.Put(ctx, cfg)
	if err != nil {
		return domain.RemoteConfig{}, err
	}
	if s.bus != nil {
		if b, err := json.Marshal(stored); err == nil {
			s.bus.Publish("config.refreshed", b)
		}
	}
	return stored, nil
}

// RefreshInBackground est le refresh best-effort du démarrage: détaché,
// l'échec est loggé et jamais remonté.
func (s *RemoteConfigService) RefreshInBackground(ctx context.Context) {
	go func() {
		if _, err := s.Refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup config refresh failed, keeping last known config")
			return
		}
		s.logger.Info().Msg("remote config refreshed")
	}()
}
