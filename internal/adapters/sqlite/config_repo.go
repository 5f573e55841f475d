package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
)

const remoteConfigKey = "remote"

// ConfigRepository persiste la dernière configuration distante connue dans la
// table clé/valeur. Lecture synchrone, jamais de réseau ici.
type ConfigRepository struct {
	db *sql.DB
}

func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) Get(ctx context.Context) (domain.RemoteConfig, error) {
	b, err := r.getRaw(ctx, remoteConfigKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Pas encore de fetch réussi → valeurs par défaut.
			return domain.DefaultRemoteConfig(), nil
		}
		return domain.RemoteConfig{}, err
	}
	var cfg domain.RemoteConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		// Si corrompu : fallback safe.
		return domain.DefaultRemoteConfig(), nil
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = domain.DefaultRemoteConfig().APIBaseURL
	}
	return cfg, nil
}

func (r *ConfigRepository) Put(ctx context.Context, cfg domain.RemoteConfig) (domain.RemoteConfig, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return domain.RemoteConfig{}, err
	}
	if err := r.setRaw(ctx, remoteConfigKey, b); err != nil {
		return domain.RemoteConfig{}, err
	}
	return r.Get(ctx)
}

func (r *ConfigRepository) getRaw(ctx context.Context, key string) ([]byte, error) {
	var b []byte
	err := r.db.QueryRowContext(ctx, `SELECT value_json FROM config WHERE key = ?`, key).Scan(&b)
	return b, err
}

func (r *ConfigRepository) setRaw(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config(key, value_json, updated_at)
		VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value_json = excluded.value_json, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}
