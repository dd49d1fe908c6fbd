package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// SelectionsRequest filters the saved selections listing.
type SelectionsRequest struct {
	// Status filters by combined status flags:
	// U=Unsaved, P=Private, S=Shared, O=Open (e.g. "PSO").
	Status string

	// Show restricts to specific selection types ("shared" or "open").
	Show string

	// Filter applies additional filters (e.g. "active").
	Filter string
}

// Selection is one saved selection, with fields transformed from the raw
// listing payload.
type Selection struct {
	Item        int    `json:"item"`
	PK          int64  `json:"pk"`
	Title       string `json:"title"`
	CodeCount   int    `json:"code_count"`
	IsOwner     bool   `json:"is_owner"`
	Owner       string `json:"owner"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Modified    string `json:"modified"`
}

// selectionItem is the raw wire shape of one selection.
type selectionItem struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	TimeSeriesCodes []string `json:"timeseriescodes"`
	IsOwner         bool     `json:"is_owner"`
	Owner           struct {
		Username string `json:"username"`
	} `json:"owner"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Modified    string `json:"modified"`
}

// GetSelections fetches the user's saved selections.
func (c *Client) GetSelections(ctx context.Context, req SelectionsRequest) ([]Selection, error) {
	query := url.Values{}
	query.Set("format", "json")
	if req.Status != "" {
		query.Set("status", req.Status)
	}
	if req.Show != "" {
		query.Set("show", req.Show)
	}
	if req.Filter != "" {
		query.Set("filter", req.Filter)
	}

	c.logger.Debug().
		Str("status", req.Status).
		Str("show", req.Show).
		Str("filter", req.Filter).
		Msg("Querying selections")

	body, err := c.get(ctx, "/selections/", query)
	if err != nil {
		return nil, err
	}

	if len(body) == 0 {
		return nil, nil
	}

	var items []selectionItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse selections response: %w", err)
	}

	selections := make([]Selection, len(items))
	for i, item := range items {
		selections[i] = Selection{
			Item:        i + 1,
			PK:          item.ID,
			Title:       item.Title,
			CodeCount:   len(item.TimeSeriesCodes),
			IsOwner:     item.IsOwner,
			Owner:       item.Owner.Username,
			Status:      item.Status,
			Description: item.Description,
			Modified:    item.Modified,
		}
	}

	c.logger.Debug().Int("selections", len(selections)).Msg("Fetched selections")
	return selections, nil
}
