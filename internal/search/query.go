package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/chromafy/chromafy-server/internal/color"
	"github.com/chromafy/chromafy-server/internal/normalize"
)

// Sort orders.
const (
	SortRelevance = "relevance"
	SortRecent    = "recent"
)

var hexQueryRe = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// SearchParams configures a search query.
type SearchParams struct {
	Query  string // Free text: a name, a hex colour or a mode
	UserID string // Restrict to one owner (empty = all)
	Mode   string // Exact mode filter (empty = any)

	Limit  int
	Offset int

	SortBy        string // SortRelevance or SortRecent
	IncludeFacets bool   // Count hits per mode
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:  20,
		SortBy: SortRelevance,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets []FacetCount `json:"facets,omitempty"`
}

// SearchHit is one matching palette.
type SearchHit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Name       string            `json:"name"`
	Mode       string            `json:"mode"`
	Colors     []string          `json:"colors"`
	CreatedAt  int64             `json:"created_at"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// FacetCount is a mode and how many hits have it.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultSearchParams().Limit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.IncludeFacets {
		searchRequest.AddFacet("mode", bleve.NewFacetRequest("mode", len(color.Modes())))
	}

	if strings.TrimSpace(params.Query) != "" {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
	}

	searchRequest.Fields = []string{"name", "mode", "colors", "created_at"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:     hit.ID,
			Score:  hit.Score,
			Colors: storedStrings(hit.Fields["colors"]),
		}

		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if m, ok := hit.Fields["mode"].(string); ok {
			searchHit.Mode = m
		}
		if c, ok := hit.Fields["created_at"].(float64); ok {
			searchHit.CreatedAt = int64(c)
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	if params.IncludeFacets {
		if modeFacet, ok := searchResult.Facets["mode"]; ok && modeFacet.Terms != nil {
			for _, term := range modeFacet.Terms.Terms() {
				result.Facets = append(result.Facets, FacetCount{Value: term.Term, Count: term.Count})
			}
		}
	}

	return result, nil
}

// storedStrings reads a stored multi-value field. Bleve returns a bare string when
// only one value was indexed.
func storedStrings(v interface{}) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// buildSearchQuery constructs the Bleve query from params.
//
// The text part is a disjunction of name matches, plus an exact colour term when the
// query looks like a hex code and a mode term when it names a mode. Owner and mode
// filters are ANDed on top.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		folded := normalize.Fold(q)
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(q)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		foldedMatch := bleve.NewMatchQuery(folded)
		foldedMatch.SetField("name_folded")
		foldedMatch.SetBoost(2.0)
		textQueries = append(textQueries, foldedMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(folded)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name_folded")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix for type-ahead (minimum 2 chars)
		if len([]rune(folded)) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(folded)
			prefixQuery.SetField("name_folded")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		if hexQueryRe.MatchString(q) {
			colorQuery := bleve.NewTermQuery(color.NormalizeHex(q))
			colorQuery.SetField("colors")
			colorQuery.SetBoost(5.0)
			textQueries = append(textQueries, colorQuery)
		}

		if mode := color.ParseMode(q); mode.Known() {
			modeQuery := bleve.NewTermQuery(mode.String())
			modeQuery.SetField("mode")
			modeQuery.SetBoost(2.0)
			textQueries = append(textQueries, modeQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.UserID != "" {
		userQuery := bleve.NewTermQuery(params.UserID)
		userQuery.SetField("user_id")
		queries = append(queries, userQuery)
	}

	if params.Mode != "" {
		modeQuery := bleve.NewTermQuery(color.ParseMode(params.Mode).String())
		modeQuery.SetField("mode")
		queries = append(queries, modeQuery)
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order. Without a text query results are newest first.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	if params.SortBy == SortRecent || strings.TrimSpace(params.Query) == "" {
		req.SortBy([]string{"-created_at", "-_id"})
		return
	}
	req.SortBy([]string{"-_score", "-created_at"})
}
