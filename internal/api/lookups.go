package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fbugraovat68/Judicial-Regulatory-Support-System/internal/model"
)

// GetLookups fetches the items of one reference-data category.
func (c *Client) GetLookups(ctx context.Context, category model.LookupCategory) ([]model.LookupItem, error) {
	query := url.Values{}
	query.Set("types", string(category))

	var items []model.LookupItem
	if err := c.get(ctx, "/lookups", query, &items, requestOptions{skipLoader: true}); err != nil {
		return nil, fmt.Errorf("failed to fetch %s lookups: %w", category, err)
	}
	return items, nil
}

// GetCitiesByDistrict fetches the cities of one district; a nil district
// id fetches the unscoped city list.
func (c *Client) GetCitiesByDistrict(ctx context.Context, districtID *int) ([]model.LookupItem, error) {
	query := url.Values{}
	query.Set("types", string(model.LookupCity))
	if districtID != nil {
		query.Set("districtId", strconv.Itoa(*districtID))
	}

	var items []model.LookupItem
	if err := c.get(ctx, "/lookups", query, &items, requestOptions{skipLoader: true}); err != nil {
		return nil, fmt.Errorf("failed to fetch cities: %w", err)
	}
	return items, nil
}
