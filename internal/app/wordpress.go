package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Guilhem-Bonnet/radioteca/internal/domain"
)

const (
	// Tailles de page par défaut, alignées sur ce que demande l'app mobile.
	ProgramsPerPage        = 100
	EpisodesPerProgramPage = 100
	EpisodesPerPage        = 20

	// En dessous de 3 caractères on ne lance pas de recherche: garde-fou
	// contre les requêtes bruyantes à faible valeur.
	MinSearchLength = 3
)

// WordPressCatalog interroge l'API REST WordPress. Sans état: chaque appel
// résout l'URL de base via baseURL (pattern getter, branché sur la config
// distante), mappe la réponse et classe les échecs dans la taxonomie d'app.
type WordPressCatalog struct {
	baseURL func(ctx context.Context) (string, error)
	client  *http.Client
	limiter *rate.Limiter
}

type WordPressOptions struct {
	Timeout           time.Duration
	RequestsPerSecond float64
}

func NewWordPressCatalog(baseURL func(ctx context.Context) (string, error), opts WordPressOptions) *WordPressCatalog {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}
	return &WordPressCatalog{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

func (c *WordPressCatalog) Programs(ctx context.Context) ([]domain.Program, error) {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(ProgramsPerPage))

	var terms []wpProgram
	if err := c.get(ctx, "/radio", q, &terms); err != nil {
		return nil, err
	}
	out := make([]domain.Program, 0, len(terms))
	for _, t := range terms {
		out = append(out, t.toDomain())
	}
	return out, nil
}

func (c *WordPressCatalog) EpisodesByProgram(ctx context.Context, programID int64, page, perPage int) ([]domain.Episode, error) {
	if perPage <= 0 {
		perPage = EpisodesPerProgramPage
	}
	q := listQuery(page, perPage)
	q.Set("radio", strconv.FormatInt(programID, 10))

	var posts []wpPost
	if err := c.get(ctx, "/posts", q, &posts); err != nil {
		return nil, err
	}
	return postsToDomain(posts), nil
}

func (c *WordPressCatalog) Episodes(ctx context.Context, page, perPage int) ([]domain.Episode, error) {
	if perPage <= 0 {
		perPage = EpisodesPerPage
	}
	var posts []wpPost
	if err := c.get(ctx, "/posts", listQuery(page, perPage), &posts); err != nil {
		return nil, err
	}
	return postsToDomain(posts), nil
}

// Episode renvoie (nil, nil) sur un 404: l'absence n'est pas une erreur ici.
func (c *WordPressCatalog) Episode(ctx context.Context, id int64) (*domain.Episode, error) {
	q := url.Values{}
	q.Set("_embed", "1")

	var post wpPost
	if err := c.get(ctx, fmt.Sprintf("/posts/%d", id), q, &post); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	ep := post.toDomain()
	return &ep, nil
}

func (c *WordPressCatalog) Search(ctx context.Context, term string) ([]domain.Episode, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < MinSearchLength {
		// Court-circuit sans appel réseau.
		return []domain.Episode{}, nil
	}

	q := listQuery(1, EpisodesPerPage)
	q.Set("search", term)

	var posts []wpPost
	if err := c.get(ctx, "/posts", q, &posts); err != nil {
		return nil, err
	}
	return postsToDomain(posts), nil
}

func listQuery(page, perPage int) url.Values {
	if page <= 0 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	// Tri demandé au serveur, le client ne re-trie pas.
	q.Set("orderby", "date")
	q.Set("order", "desc")
	q.Set("_embed", "1")
	return q
}

func (c *WordPressCatalog) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	base, err := c.baseURL(ctx)
	if err != nil {
		return err
	}

	u := strings.TrimRight(base, "/") + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "radioteca-server")

	resp, err := c.client.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return statusToError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// Corps tronqué ou invalide: on le range côté serveur.
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &ServerError{Status: resp.StatusCode}
	}
	return nil
}
