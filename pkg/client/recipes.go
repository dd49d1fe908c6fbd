package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/quantecresearch/easydata-go/pkg/cache"
	"github.com/quantecresearch/easydata-go/pkg/tabular"
)

// RecipesResult holds the available recipes: Frame for csv response format,
// JSON for everything else.
type RecipesResult struct {
	Frame *tabular.Frame
	JSON  any
}

// GetRecipes fetches the recipes available to the authenticated user.
func (c *Client) GetRecipes(ctx context.Context) (*RecipesResult, error) {
	body, err := c.get(ctx, "/recipes/", url.Values{})
	if err != nil {
		return nil, err
	}

	if c.config.RespFormat == cache.FormatCSV {
		var records []map[string]any
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("parse recipes response: %w", err)
		}
		frame := tabular.FromRecords(records)
		frame.DropEmptyColumns()
		c.logger.Debug().Int("recipes", frame.NumRows()).Msg("Fetched recipes")
		return &RecipesResult{Frame: frame}, nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse json response: %w", err)
	}
	return &RecipesResult{JSON: parsed}, nil
}
