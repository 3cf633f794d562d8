package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance_dashboard/internal/shared/fetcherr"
)

const aaplIntradayBody = `{
	"Meta Data": {
		"1. Information": "Intraday (1min) open, high, low, close prices and volume",
		"2. Symbol": "AAPL",
		"3. Last Refreshed": "2024-01-01 10:01:00",
		"4. Interval": "1min",
		"5. Output Size": "Compact",
		"6. Time Zone": "US/Eastern"
	},
	"Time Series (1min)": {
		"2024-01-01 10:01:00": {"1. open": "101.0", "2. high": "101.5", "3. low": "100.5", "4. close": "101.2", "5. volume": "1200"},
		"2024-01-01 10:00:00": {"1. open": "100.0", "2. high": "101.0", "3. low": "99.5", "4. close": "100.8", "5. volume": "1000"}
	}
}`

func newTestServer(t *testing.T, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewAlphaVantageMarket(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "test-key", BaseURL: "https://api.test.com", Timeout: 10 * time.Second}
	market := NewAlphaVantageMarket(cfg, &http.Client{})

	require.NotNil(t, market)
	assert.Equal(t, "test-key", market.cfg.APIKey)
}

func TestAlphaVantageMarket_GetIntraday_Success(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, aaplIntradayBody, func(r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "TIME_SERIES_INTRADAY", q.Get("function"))
		assert.Equal(t, "AAPL", q.Get("symbol"))
		assert.Equal(t, "1min", q.Get("interval"))
		assert.Equal(t, "test-key", q.Get("apikey"))
		assert.Empty(t, q.Get("outputsize"))
	})

	market := NewAlphaVantageMarket(Config{APIKey: "test-key", BaseURL: server.URL}, server.Client())
	table, err := market.GetIntraday(context.Background(), "AAPL", "1min")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", table.Symbol)
	assert.Equal(t, "1min", table.Interval)
	assert.Equal(t, []string{"open", "high", "low", "close", "volume"}, table.Columns)
	require.Equal(t, 2, table.Len())

	// upstreamの順序を保つ（新しい順）
	open, ok := table.Rows[0].Value("open")
	require.True(t, ok)
	assert.Equal(t, "101.0", open)
	assert.Equal(t, "1200", table.Rows[0].Values["volume"])
	assert.Equal(t, "100.8", table.Rows[1].Values["close"])
	_, ok = table.Rows[0].Value("dividend")
	assert.False(t, ok)
	assert.True(t, table.Rows[0].Time.After(table.Rows[1].Time))

	assert.Equal(t, "US/Eastern", table.Meta.TimeZone)
	assert.Equal(t, "2024-01-01 10:01:00", table.Meta.LastRefreshed)
	assert.Equal(t, "AAPL", table.Meta.Symbol)
}

func TestAlphaVantageMarket_GetIntraday_OutputSize(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, aaplIntradayBody, func(r *http.Request) {
		assert.Equal(t, "full", r.URL.Query().Get("outputsize"))
	})

	market := NewAlphaVantageMarket(Config{APIKey: "k", BaseURL: server.URL, OutputSize: "full"}, server.Client())
	_, err := market.GetIntraday(context.Background(), "AAPL", "1min")
	require.NoError(t, err)
}

func TestAlphaVantageMarket_GetIntraday_FetchFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		interval   string
		body       string
		wantDetail string
	}{
		{
			name:       "error message",
			interval:   "1min",
			body:       `{"Error Message": "Invalid API call."}`,
			wantDetail: "Invalid API call.",
		},
		{
			name:       "rate limit note",
			interval:   "1min",
			body:       `{"Note": "Thank you for using Alpha Vantage!"}`,
			wantDetail: "Thank you for using Alpha Vantage!",
		},
		{
			name:       "information",
			interval:   "1min",
			body:       `{"Information": "premium endpoint"}`,
			wantDetail: "premium endpoint",
		},
		{
			name:       "empty object",
			interval:   "1min",
			body:       `{}`,
			wantDetail: "",
		},
		{
			name:     "series present under another interval",
			interval: "5min",
			body:     aaplIntradayBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, tt.body, nil)
			market := NewAlphaVantageMarket(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

			table, err := market.GetIntraday(context.Background(), "AAPL", tt.interval)
			require.Error(t, err)
			assert.True(t, errors.Is(err, fetcherr.ErrQuoteUnavailable))
			assert.True(t, table.Empty())

			var ff *fetcherr.FetchFailure
			require.True(t, errors.As(err, &ff))
			assert.Equal(t, tt.wantDetail, ff.Detail)
		})
	}
}

func TestAlphaVantageMarket_GetIntraday_EmptySeries(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, `{"Time Series (1min)": {}}`, nil)
	market := NewAlphaVantageMarket(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

	table, err := market.GetIntraday(context.Background(), "AAPL", "1min")
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Columns)
}

func TestAlphaVantageMarket_GetIntraday_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, `<html>oops</html>`, nil)
	market := NewAlphaVantageMarket(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

	_, err := market.GetIntraday(context.Background(), "AAPL", "1min")
	require.Error(t, err)
	assert.False(t, fetcherr.IsFetchFailure(err))
	assert.Contains(t, err.Error(), "alphavantage decode (http 200)")
}

func TestAlphaVantageMarket_GetIntraday_BadTimestamp(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, `{"Time Series (1min)": {"yesterday": {"1. open": "1"}}}`, nil)
	market := NewAlphaVantageMarket(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

	_, err := market.GetIntraday(context.Background(), "AAPL", "1min")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parse time "yesterday"`)
}

func TestAlphaVantageMarket_GetIntraday_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, aaplIntradayBody, nil)
	market := NewAlphaVantageMarket(Config{APIKey: "k", BaseURL: server.URL}, server.Client())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := market.GetIntraday(ctx, "AAPL", "1min")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, fetcherr.IsFetchFailure(err))
}

func TestAlphaVantageMarket_GetIntraday_ServerDown(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	market := NewAlphaVantageMarket(Config{APIKey: "secret-key", BaseURL: url}, &http.Client{Timeout: time.Second})
	_, err := market.GetIntraday(context.Background(), "AAPL", "1min")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "alphavantage request"))
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestColumnName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1. open", "open"},
		{"5. volume", "volume"},
		{"close", "close"},
		{"7. dividend amount", "dividend amount"},
		{"1. a. b", "a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ColumnName(tt.in), tt.in)
	}
}

func TestSeriesKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Time Series (15min)", SeriesKey("15min"))
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tm, err := parseTimestamp("2024-01-01 10:00:00", ny)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, ny), tm)

	tm, err = parseTimestamp("2024-01-02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), tm)
}
