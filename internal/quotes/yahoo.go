package quotes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"portfolioAdvisor/internal/models"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"

// yahooQuoteResp mirrors Yahoo v8 chart response (trimmed to the meta
// fields the advisor needs).
type yahooQuoteResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// Client fetches point-in-time quotes from Yahoo Finance. Hosts and the
// HTTP client are injectable for tests.
type Client struct {
	hosts    []string
	backoffs []time.Duration
	http     *http.Client
}

func NewClient() *Client {
	return &Client{
		hosts: []string{
			"https://query1.finance.yahoo.com",
			"https://query2.finance.yahoo.com",
		},
		backoffs: []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second},
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithHosts builds a client against explicit base URLs, used by
// tests to point at a local server.
func NewClientWithHosts(hosts ...string) *Client {
	c := NewClient()
	c.hosts = hosts
	c.backoffs = nil
	return c
}

// Fetch returns quotes for the requested tickers. Tickers whose fetch
// fails are logged and omitted; a partial map is normal, not an error.
func (c *Client) Fetch(tickers []string) map[string]models.PriceQuote {
	out := make(map[string]models.PriceQuote, len(tickers))
	for _, t := range tickers {
		q, err := c.fetchOne(t)
		if err != nil {
			log.Printf("quotes: failed to fetch %s, skipping: %v", t, err)
			continue
		}
		out[t] = q
	}
	return out
}

// Current returns the current price for a single ticker, used by the add
// command to default the cost basis.
func (c *Client) Current(ticker string) (float64, bool) {
	q, err := c.fetchOne(ticker)
	if err != nil {
		log.Printf("quotes: failed to fetch %s: %v", ticker, err)
		return 0, false
	}
	return q.CurrentPrice, true
}

func (c *Client) fetchOne(symbol string) (models.PriceQuote, error) {
	var yc yahooQuoteResp
	var lastErr error
	for attempt := 0; attempt < len(c.backoffs)+1; attempt++ {
		for _, host := range c.hosts {
			url := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", host, symbol)
			req, _ := http.NewRequest("GET", url, nil)
			req.Header.Set("User-Agent", userAgent)
			req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
			resp, err := c.http.Do(req)
			if err != nil {
				lastErr = err
				continue
			}
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("failed to read yahoo response: %w", readErr)
				continue
			}
			if resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests") {
				lastErr = fmt.Errorf("yahoo %s returned 429", host)
				continue
			}
			if resp.StatusCode != http.StatusOK {
				lastErr = fmt.Errorf("yahoo %s returned %d: %s", host, resp.StatusCode, preview(body))
				continue
			}
			if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
				lastErr = fmt.Errorf("yahoo returned non-json body: %s", preview(body))
				continue
			}
			if err := json.Unmarshal(body, &yc); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo json: %v; body: %s", err, preview(body))
				continue
			}
			lastErr = nil
			break
		}
		if lastErr == nil {
			break
		}
		if attempt < len(c.backoffs) {
			time.Sleep(c.backoffs[attempt])
		}
	}
	if lastErr != nil {
		return models.PriceQuote{}, lastErr
	}
	if len(yc.Chart.Result) == 0 {
		return models.PriceQuote{}, errors.New("no data")
	}

	meta := yc.Chart.Result[0].Meta
	current := meta.RegularMarketPrice
	prev := meta.PreviousClose
	if prev == 0 {
		prev = meta.ChartPreviousClose
	}
	if current == 0 {
		return models.PriceQuote{}, errors.New("missing price data")
	}

	change := 0.0
	if prev != 0 {
		change = (current - prev) / prev * 100
	}
	return models.PriceQuote{
		Ticker:        symbol,
		CurrentPrice:  models.Round2(current),
		PreviousClose: models.Round2(prev),
		DayChangePct:  models.Round2(change),
	}, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
