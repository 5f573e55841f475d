package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
	"github.com/Guilhem-Bonnet/radioteca/internal/ports"
)

type EpisodesRepository struct {
	db *sql.DB
}

func NewEpisodesRepository(db *sql.DB) *EpisodesRepository {
	return &EpisodesRepository{db: db}
}

const upsertEpisodeSQL = `
	INSERT INTO episodes(id, title, content, archive_url, image_url, published_at, duration, program_id)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		content = excluded.content,
		archive_url = excluded.archive_url,
		image_url = excluded.image_url,
		published_at = excluded.published_at,
		duration = excluded.duration,
		program_id = excluded.program_id
`

const selectEpisodeCols = `id, title, content, archive_url, image_url, published_at, duration, program_id`

func (r *EpisodesRepository) Upsert(ctx context.Context, episode domain.Episode) error {
	row, err := episodeRowFromDomain(episode)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertEpisodeSQL,
		row.ID, row.Title, row.Content, row.ArchiveURL, row.ImageURL, row.Published, row.Duration, row.ProgramID)
	return err
}

// ReplaceForProgram fait delete + inserts dans une transaction unique:
// jamais de jeu partiellement vidé visible, rollback si le contexte tombe.
func (r *EpisodesRepository) ReplaceForProgram(ctx context.Context, programID int64, episodes []domain.Episode) error {
	// On convertit avant d'ouvrir la transaction: une appartenance vide doit
	// échouer sans toucher au cache existant.
	rows := make([]episodeRow, 0, len(episodes))
	for _, ep := range episodes {
		row, err := episodeRowFromDomain(ep)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM episodes WHERE program_id = ?`, programID); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, upsertEpisodeSQL,
			row.ID, row.Title, row.Content, row.ArchiveURL, row.ImageURL, row.Published, row.Duration, row.ProgramID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *EpisodesRepository) ListByProgram(ctx context.Context, programID int64) ([]domain.Episode, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectEpisodeCols+`
		FROM episodes
		WHERE program_id = ?
		ORDER BY published_at DESC
	`, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEpisodes(rows)
}

func (r *EpisodesRepository) DeleteByProgram(ctx context.Context, programID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM episodes WHERE program_id = ?`, programID)
	return err
}

func (r *EpisodesRepository) Get(ctx context.Context, id int64) (domain.Episode, error) {
	var row episodeRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+selectEpisodeCols+`
		FROM episodes
		WHERE id = ?
	`, id).Scan(&row.ID, &row.Title, &row.Content, &row.ArchiveURL, &row.ImageURL, &row.Published, &row.Duration, &row.ProgramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Episode{}, ports.ErrNotFound
		}
		return domain.Episode{}, err
	}
	return row.toDomain(), nil
}

// Search fait un LIKE '%term%' sur titre OU contenu. Sensibilité à la casse:
// celle de SQLite (NOCASE pour l'ASCII seulement).
func (r *EpisodesRepository) Search(ctx context.Context, term string) ([]domain.Episode, error) {
	pattern := "%" + term + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+selectEpisodeCols+`
		FROM episodes
		WHERE title LIKE ? OR content LIKE ?
		ORDER BY published_at DESC
	`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEpisodes(rows)
}

func collectEpisodes(rows *sql.Rows) ([]domain.Episode, error) {
	out := make([]domain.Episode, 0)
	for rows.Next() {
		var row episodeRow
		if err := rows.Scan(&row.ID, &row.Title, &row.Content, &row.ArchiveURL, &row.ImageURL, &row.Published, &row.Duration, &row.ProgramID); err != nil {
			return nil, err
		}
		out = append(out, row.toDomain())
	}
	return out, rows.Err()
}
