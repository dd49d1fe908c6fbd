package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/quantecresearch/easydata-go/pkg/cache"
	"github.com/quantecresearch/easydata-go/pkg/tabular"
)

// DataRequest describes a time series download.
type DataRequest struct {
	// TimeSeriesCodes is a comma-separated list of series codes.
	TimeSeriesCodes string

	// SelectionPK identifies a saved selection. Takes precedence over
	// TimeSeriesCodes when set.
	SelectionPK *int64

	// Freq is the data frequency (M, Q, ...). Defaults to M.
	Freq string

	// StartYear and EndYear bound the range (YYYY-MM-DD, optional).
	StartYear string
	EndYear   string

	// Analysis includes the analysis parameter.
	Analysis bool
}

// DataResult holds a time series response: Frame for csv responses, JSON for
// everything else.
type DataResult struct {
	Frame *tabular.Frame
	JSON  any
}

// GetData fetches time series data from the EasyData download endpoint.
// Either TimeSeriesCodes or SelectionPK must be provided.
func (c *Client) GetData(ctx context.Context, req DataRequest) (*DataResult, error) {
	if req.TimeSeriesCodes == "" && req.SelectionPK == nil {
		return nil, fmt.Errorf("either time series codes or a selection pk must be provided")
	}

	freq := req.Freq
	if freq == "" {
		freq = "M"
	}

	query := url.Values{}
	query.Set("respFormat", string(c.config.RespFormat))
	query.Set("freqs", freq)
	query.Set("startYear", req.StartYear)
	query.Set("endYear", req.EndYear)
	query.Set("isTidy", strconv.FormatBool(c.config.IsTidy))
	query.Set("analysis", strconv.FormatBool(req.Analysis))

	var logKey string
	if req.SelectionPK != nil {
		query.Set("selectionPk", strconv.FormatInt(*req.SelectionPK, 10))
		logKey = strconv.FormatInt(*req.SelectionPK, 10)
	} else {
		query.Set("timeSeriesCodes", req.TimeSeriesCodes)
		logKey = req.TimeSeriesCodes
	}

	c.logger.Debug().Str("request", logKey).Msg("Querying time series download")

	body, err := c.get(ctx, "/download/", query)
	if err != nil {
		return nil, err
	}

	if c.config.RespFormat == cache.FormatCSV {
		frame, err := tabular.FromCSV(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("parse csv response: %w", err)
		}
		frame.DropNullRows()
		c.logger.Debug().Str("request", logKey).Int("rows", frame.NumRows()).Msg("Download complete")
		return &DataResult{Frame: frame}, nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse json response: %w", err)
	}
	return &DataResult{JSON: parsed}, nil
}
