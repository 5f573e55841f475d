package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
	"github.com/Guilhem-Bonnet/radioteca/internal/ports"
)

type ProgramsRepository struct {
	db *sql.DB
}

func NewProgramsRepository(db *sql.DB) *ProgramsRepository {
	return &ProgramsRepository{db: db}
}

const upsertProgramSQL = `
	INSERT INTO programs(id, name, slug, description, image_url, episode_count)
	VALUES(?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		slug = excluded.slug,
		description = excluded.description,
		image_url = excluded.image_url,
		episode_count = excluded.episode_count
`

func (r *ProgramsRepository) Upsert(ctx context.Context, program domain.Program) error {
	row := programRowFromDomain(program)
	_, err := r.db.ExecContext(ctx, upsertProgramSQL,
		row.ID, row.Name, row.Slug, row.Description, row.ImageURL, row.EpisodeCount)
	return err
}

// ReplaceAll repeuple la table en bloc: c'est la politique de refresh des
// programmes (pas de merge, pas de soft-delete).
func (r *ProgramsRepository) ReplaceAll(ctx context.Context, programs []domain.Program) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM programs`); err != nil {
		return err
	}
	for _, p := range programs {
		row := programRowFromDomain(p)
		if _, err := tx.ExecContext(ctx, upsertProgramSQL,
			row.ID, row.Name, row.Slug, row.Description, row.ImageURL, row.EpisodeCount); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *ProgramsRepository) List(ctx context.Context) ([]domain.Program, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, slug, description, image_url, episode_count
		FROM programs
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Program, 0)
	for rows.Next() {
		var row programRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Slug, &row.Description, &row.ImageURL, &row.EpisodeCount); err != nil {
			return nil, err
		}
		out = append(out, row.toDomain())
	}
	return out, rows.Err()
}

func (r *ProgramsRepository) Get(ctx context.Context, id int64) (domain.Program, error) {
	var row programRow
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, slug, description, image_url, episode_count
		FROM programs
		WHERE id = ?
	`, id).Scan(&row.ID, &row.Name, &row.Slug, &row.Description, &row.ImageURL, &row.EpisodeCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Program{}, ports.ErrNotFound
		}
		return domain.Program{}, err
	}
	return row.toDomain(), nil
}
