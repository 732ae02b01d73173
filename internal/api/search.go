package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// DefaultSearchLimit caps search results per request; the selects replace
// their whole option list per settled term, so a large cap is fine.
const DefaultSearchLimit = 999

// searchQuery builds the query for the entity search endpoints. A
// non-empty term hits `/search?query=&limit=`; an empty term falls back
// to the default-paged plain listing.
func searchQuery(term string, limit int) (path string, query url.Values) {
	query = url.Values{}
	if term != "" {
		if limit <= 0 {
			limit = DefaultSearchLimit
		}
		query.Set("query", term)
		query.Set("limit", strconv.Itoa(limit))
		return "/search", query
	}
	query.Set("size", "10")
	query.Set("page", "0")
	return "", query
}

// SearchConsultants searches consultants by free text.
func (c *Client) SearchConsultants(ctx context.Context, term string, limit int) ([]model.Consultant, error) {
	path, query := searchQuery(term, limit)
	var out []model.Consultant
	if err := c.get(ctx, "/consultants"+path, query, &out, requestOptions{skipLoader: true}); err != nil {
		return nil, fmt.Errorf("consultant search failed: %w", err)
	}
	return out, nil
}

// SearchLitigants searches litigants by free text.
func (c *Client) SearchLitigants(ctx context.Context, term string, limit int) ([]model.Litigant, error) {
	path, query := searchQuery(term, limit)
	var out []model.Litigant
	if err := c.get(ctx, "/litigants"+path, query, &out, requestOptions{skipLoader: true}); err != nil {
		return nil, fmt.Errorf("litigant search failed: %w", err)
	}
	return out, nil
}

// SearchUsers searches system users by free text.
func (c *Client) SearchUsers(ctx context.Context, term string, limit int) ([]model.Consultant, error) {
	path, query := searchQuery(term, limit)
	var out []model.Consultant
	if err := c.get(ctx, "/users"+path, query, &out, requestOptions{skipLoader: true}); err != nil {
		return nil, fmt.Errorf("user search failed: %w", err)
	}
	return out, nil
}
