package app

import (
	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
)

// Formes JSON de l'API WordPress. Les listes sont demandées avec _embed pour
// récupérer média mis en avant et termes de taxonomie en un seul aller-retour.

const programTaxonomy = "radio"

type wpProgram struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	Image       string `json:"image"`
}

func (p wpProgram) toDomain() domain.Program {
	return domain.Program{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		ImageURL:     p.Image,
		EpisodeCount: p.Count,
	}
}

type wpRendered struct {
	Rendered string `json:"rendered"`
}

type wpMedia struct {
	SourceURL    string `json:"source_url"`
	MediaDetails struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"media_details"`
}

type wpTerm struct {
	ID       int64  `json:"id"`
	Taxonomy string `json:"taxonomy"`
}

type wpEmbedded struct {
	FeaturedMedia []wpMedia  `json:"wp:featuredmedia"`
	Terms         [][]wpTerm `json:"wp:term"`
}

type wpPost struct {
	ID      int64      `json:"id"`
	Date    string     `json:"date"`
	Title   wpRendered `json:"title"`
	Content wpRendered `json:"content"`
	Meta    struct {
		Audio    string `json:"audio"`
		Duration string `json:"duration"`
	} `json:"meta"`
	Embedded wpEmbedded `json:"_embedded"`
}

func (p wpPost) toDomain() domain.Episode {
	ep := domain.Episode{
		ID:         p.ID,
		Title:      p.Title.Rendered,
		Content:    p.Content.Rendered,
		ArchiveURL: p.Meta.Audio,
		Published:  p.Date,
		Duration:   p.Meta.Duration,
	}
	for _, m := range p.Embedded.FeaturedMedia {
		if m.SourceURL == "" {
			continue
		}
		ep.Images = append(ep.Images, domain.Image{
			URL:    m.SourceURL,
			Width:  m.MediaDetails.Width,
			Height: m.MediaDetails.Height,
		})
	}
	for _, group := range p.Embedded.Terms {
		for _, t := range group {
			if t.Taxonomy == programTaxonomy {
				ep.ProgramIDs = append(ep.ProgramIDs, t.ID)
			}
		}
	}
	return ep
}

func postsToDomain(posts []wpPost) []domain.Episode {
	out := make([]domain.Episode, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.toDomain())
	}
	return out
}
