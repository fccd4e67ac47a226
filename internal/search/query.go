package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string

	// Filters
	FeaturedOnly bool
	MinPrice     float64
	MaxPrice     float64 // 0 means no upper bound

	// Pagination
	Limit  int
	Offset int

	// SortBy is "relevance", "title" or "price"; SortOrder is "asc" or "desc".
	SortBy    string
	SortOrder string

	Highlight bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		SortBy:    "relevance",
		SortOrder: "desc",
		Highlight: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID               string            `json:"id"`
	Slug             string            `json:"slug"`
	Title            string            `json:"title"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	Price            float64           `json:"price"`
	Featured         bool              `json:"isFeatured,omitempty"`
	Score            float64           `json:"score"`
	Highlights       map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query.
func (x *Index) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultSearchParams().Limit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	addSorting(searchRequest, params)

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
	}

	searchRequest.Fields = []string{"id", "slug", "title", "short_description", "price", "featured"}

	searchResult, err := x.bleve.SearchInContext(ctx, searchRequest)
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
			ID:    hit.ID,
			Score: hit.Score,
		}

		if v, ok := hit.Fields["slug"].(string); ok {
			searchHit.Slug = v
		}
		if v, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = v
		}
		if v, ok := hit.Fields["short_description"].(string); ok {
			searchHit.ShortDescription = v
		}
		if v, ok := hit.Fields["price"].(float64); ok {
			searchHit.Price = v
		}
		if v, ok := hit.Fields["featured"].(string); ok {
			searchHit.Featured = v == "true"
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

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
// Text matches are OR-ed across fields; filters are AND-ed on top.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		titleMatch := bleve.NewMatchQuery(q)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)

		shortMatch := bleve.NewMatchQuery(q)
		shortMatch.SetField("short_description")
		shortMatch.SetBoost(1.5)

		descMatch := bleve.NewMatchQuery(q)
		descMatch.SetField("description")

		// ASINs are matched exactly, case-insensitively.
		asinMatch := bleve.NewTermQuery(strings.ToLower(q))
		asinMatch.SetField("asin")
		asinMatch.SetBoost(5.0)

		fuzzyQuery := bleve.NewFuzzyQuery(strings.ToLower(q))
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)

		textQueries := []query.Query{titleMatch, shortMatch, descMatch, asinMatch, fuzzyQuery}

		// Prefix query for autocomplete (minimum 2 chars)
		if len(q) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(q))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if params.FeaturedOnly {
		fq := bleve.NewTermQuery("true")
		fq.SetField("featured")
		queries = append(queries, fq)
	}

	if params.MinPrice > 0 || params.MaxPrice > 0 {
		minPrice := params.MinPrice
		maxPrice := params.MaxPrice
		if maxPrice == 0 {
			maxPrice = math.MaxFloat64
		}
		inclusive := true
		rangeQuery := bleve.NewNumericRangeInclusiveQuery(&minPrice, &maxPrice, &inclusive, &inclusive)
		rangeQuery.SetField("price")
		queries = append(queries, rangeQuery)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	desc := params.SortOrder == "desc"
	switch params.SortBy {
	case "title":
		if desc {
			req.SortBy([]string{"-title"})
		} else {
			req.SortBy([]string{"title"})
		}
	case "price":
		if desc {
			req.SortBy([]string{"-price", "_id"})
		} else {
			req.SortBy([]string{"price", "_id"})
		}
	default:
		req.SortBy([]string{"-_score", "_id"})
	}
}
