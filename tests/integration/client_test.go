package integration

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/quantecresearch/easydata-go/internal/testutil"
	"github.com/quantecresearch/easydata-go/pkg/client"
	"github.com/quantecresearch/easydata-go/pkg/filter"
)

type gridRow struct {
	D1    string  `parquet:"d1"`
	Value float64 `parquet:"value"`
}

func gridParquet(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := parquet.Write(&buf, []gridRow{
		{D1: "GDP", Value: 42},
		{D1: "CPI", Value: 7.5},
	}); err != nil {
		t.Fatalf("write parquet fixture: %v", err)
	}
	return buf.Bytes()
}

func setupClient(t *testing.T, mock *testutil.MockEasyData) (*client.Client, string) {
	t.Helper()

	cacheDir := t.TempDir()
	cfg := client.DefaultConfig("integration-key")
	cfg.BaseURL = mock.URL()
	cfg.UseCache = true
	cfg.CacheDir = cacheDir
	cfg.InitialBackoff = time.Millisecond

	c, err := client.New(cfg)
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	return c, cacheDir
}

// TestFullGridFlow tests the complete grid flow: validate filters, miss the
// cache, fetch, write back, then serve the repeat request from disk.
func TestFullGridFlow(t *testing.T) {
	mock := testutil.NewMockEasyData()
	defer mock.Close()

	payload := gridParquet(t)
	mock.Handle("/download/recipes/540/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})

	c, cacheDir := setupClient(t, mock)

	req := client.NewGridRequest(540)
	req.Filters = filter.Set{{Dimension: "d1", Codes: []string{"GDP", "CPI"}}}

	ctx := context.Background()

	first, err := c.GetGridData(ctx, req)
	if err != nil {
		t.Fatalf("first GetGridData() error = %v", err)
	}
	if first.Frame == nil || first.Frame.NumRows() != 2 {
		t.Fatalf("unexpected first result: %+v", first)
	}
	if mock.Requests() != 1 {
		t.Fatalf("requests = %d, want 1", mock.Requests())
	}

	// Exactly one parquet file must be on disk now.
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatalf("read cache dir: %v", err)
	}
	if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".parquet" {
		t.Fatalf("cache dir entries = %v", entries)
	}

	second, err := c.GetGridData(ctx, req)
	if err != nil {
		t.Fatalf("second GetGridData() error = %v", err)
	}
	if mock.Requests() != 1 {
		t.Errorf("requests = %d, repeat request must be served from disk", mock.Requests())
	}
	if second.Frame.NumRows() != first.Frame.NumRows() {
		t.Errorf("cached rows = %d, want %d", second.Frame.NumRows(), first.Frame.NumRows())
	}
}

// TestCacheClearFlow verifies that clearing the cache forces a refetch.
func TestCacheClearFlow(t *testing.T) {
	mock := testutil.NewMockEasyData()
	defer mock.Close()

	payload := gridParquet(t)
	mock.Handle("/download/recipes/540/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	})

	c, _ := setupClient(t, mock)
	ctx := context.Background()

	if _, err := c.GetGridData(ctx, client.NewGridRequest(540)); err != nil {
		t.Fatalf("GetGridData() error = %v", err)
	}

	if deleted := c.Cache().Clear(); deleted != 1 {
		t.Errorf("Clear() = %d, want 1", deleted)
	}

	if _, err := c.GetGridData(ctx, client.NewGridRequest(540)); err != nil {
		t.Fatalf("GetGridData() after clear error = %v", err)
	}
	if mock.Requests() != 2 {
		t.Errorf("requests = %d, cleared cache must refetch", mock.Requests())
	}
}

// TestEndToEndDataAndListings exercises the download, recipes and
// selections endpoints against the mock server defaults.
func TestEndToEndDataAndListings(t *testing.T) {
	mock := testutil.NewMockEasyData()
	defer mock.Close()
	c, _ := setupClient(t, mock)
	ctx := context.Background()

	data, err := c.GetData(ctx, client.DataRequest{TimeSeriesCodes: "GDP"})
	if err != nil {
		t.Fatalf("GetData() error = %v", err)
	}
	if data.Frame.NumRows() != 2 {
		t.Errorf("data rows = %d, want 2", data.Frame.NumRows())
	}

	recipes, err := c.GetRecipes(ctx)
	if err != nil {
		t.Fatalf("GetRecipes() error = %v", err)
	}
	if recipes.Frame.NumRows() != 2 {
		t.Errorf("recipe rows = %d, want 2", recipes.Frame.NumRows())
	}

	selections, err := c.GetSelections(ctx, client.SelectionsRequest{})
	if err != nil {
		t.Fatalf("GetSelections() error = %v", err)
	}
	if len(selections) != 1 || selections[0].Owner != "analyst" {
		t.Errorf("selections = %+v", selections)
	}
}

// TestServerErrorRecovery verifies the retry path end to end.
func TestServerErrorRecovery(t *testing.T) {
	mock := testutil.NewMockEasyData()
	defer mock.Close()

	failures := 1
	mock.Handle("/download/", func(w http.ResponseWriter, r *http.Request) {
		if failures > 0 {
			failures--
			http.Error(w, "temporary", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(testutil.DefaultDownloadCSV))
	})

	c, _ := setupClient(t, mock)

	if _, err := c.GetData(context.Background(), client.DataRequest{TimeSeriesCodes: "GDP"}); err != nil {
		t.Fatalf("GetData() should recover from a transient 503, got %v", err)
	}
	if mock.Requests() != 2 {
		t.Errorf("requests = %d, want 2", mock.Requests())
	}
}

// TestInvalidFilterNeverTouchesNetworkOrDisk pins the validation order.
func TestInvalidFilterNeverTouchesNetworkOrDisk(t *testing.T) {
	mock := testutil.NewMockEasyData()
	defer mock.Close()
	c, cacheDir := setupClient(t, mock)

	req := client.NewGridRequest(540)
	req.Filters = filter.Set{{Dimension: "d1"}} // no selection criteria

	_, err := c.GetGridData(context.Background(), req)
	if !errors.Is(err, filter.ErrInvalidFilter) {
		t.Fatalf("error = %v, want ErrInvalidFilter", err)
	}
	if mock.Requests() != 0 {
		t.Errorf("requests = %d, want 0", mock.Requests())
	}

	entries, _ := os.ReadDir(cacheDir)
	if len(entries) != 0 {
		t.Errorf("cache dir should be untouched, got %v", entries)
	}
}
