package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
)

// episodeRow est la forme aplatie d'un épisode telle que stockée.
// Conversions pures, sans I/O.
type episodeRow struct {
	ID         int64
	Title      string
	Content    sql.NullString
	ArchiveURL sql.NullString
	ImageURL   sql.NullString
	Published  string
	Duration   string
	ProgramID  int64
}

// episodeRowFromDomain ne garde que la première appartenance et la première
// image: simplification assumée du cache (le chemin offline n'a pas besoin de
// plus), documentée dans DESIGN.md. Une liste d'appartenances vide est une
// erreur: l'appelant doit garantir au moins un programme avant de persister.
func episodeRowFromDomain(ep domain.Episode) (episodeRow, error) {
	if len(ep.ProgramIDs) == 0 {
		return episodeRow{}, fmt.Errorf("episode %d: no program membership", ep.ID)
	}
	row := episodeRow{
		ID:        ep.ID,
		Title:     ep.Title,
		Published: ep.Published,
		Duration:  ep.Duration,
		ProgramID: ep.ProgramIDs[0],
	}
	if ep.Content != "" {
		row.Content = sql.NullString{String: ep.Content, Valid: true}
	}
	if ep.ArchiveURL != "" {
		row.ArchiveURL = sql.NullString{String: ep.ArchiveURL, Valid: true}
	}
	if len(ep.Images) > 0 && ep.Images[0].URL != "" {
		row.ImageURL = sql.NullString{String: ep.Images[0].URL, Valid: true}
	}
	return row, nil
}

func (r episodeRow) toDomain() domain.Episode {
	ep := domain.Episode{
		ID:         r.ID,
		Title:      r.Title,
		Content:    r.Content.String,
		ArchiveURL: r.ArchiveURL.String,
		Published:  r.Published,
		Duration:   r.Duration,
		ProgramIDs: []int64{r.ProgramID},
	}
	if r.ImageURL.Valid {
		ep.Images = []domain.Image{{URL: r.ImageURL.String}}
	}
	return ep
}

type programRow struct {
	ID           int64
	Name         string
	Slug         string
	Description  sql.NullString
	ImageURL     sql.NullString
	EpisodeCount sql.NullInt64
}

func programRowFromDomain(p domain.Program) programRow {
	row := programRow{ID: p.ID, Name: p.Name, Slug: p.Slug}
	if p.Description != "" {
		row.Description = sql.NullString{String: p.Description, Valid: true}
	}
	if p.ImageURL != "" {
		row.ImageURL = sql.NullString{String: p.ImageURL, Valid: true}
	}
	if p.EpisodeCount != 0 {
		row.EpisodeCount = sql.NullInt64{Int64: int64(p.EpisodeCount), Valid: true}
	}
	return row
}

func (r programRow) toDomain() domain.Program {
	return domain.Program{
		ID:           r.ID,
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description.String,
		ImageURL:     r.ImageURL.String,
		EpisodeCount: int(r.EpisodeCount.Int64),
	}
}
