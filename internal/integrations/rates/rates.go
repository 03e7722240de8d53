package rates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/finanzas-app/finanzas-service/internal/config"
)

// Rate is one entry of the ECB daily reference feed, quoted against
// the euro.
type Rate struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// DailyRates is the parsed ECB daily document.
type DailyRates struct {
	Date  string `json:"date"`
	Base  string `json:"base"`
	Rates []Rate `json:"rates"`
}

// Client fetches daily exchange rates from the ECB reference feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("ECB XML response: %s", string(body))

	return body, nil
}

// parseXML extracts the dated Cube entries from the ECB document. The
// feed nests three Cube levels: envelope, date, and one per currency.
func parseXML(rawBody []byte) (*DailyRates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	dateCube := doc.FindElement("//Cube/Cube")
	if dateCube == nil {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	result := &DailyRates{
		Date: dateCube.SelectAttrValue("time", ""),
		Base: "EUR",
	}

	for _, el := range dateCube.FindElements("./Cube") {
		currency := el.SelectAttrValue("currency", "")
		raw := el.SelectAttrValue("rate", "")
		if currency == "" || raw == "" {
			continue
		}
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		result.Rates = append(result.Rates, Rate{Currency: currency, Rate: rate})
	}

	if len(result.Rates) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}
	return result, nil
}

// GetDailyRates retrieves the current ECB daily reference rates
func (c *Client) GetDailyRates(ctx context.Context) (*DailyRates, error) {
	body, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	rates, err := parseXML(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Fetched %d ECB rates for %s", len(rates.Rates), rates.Date)
	return rates, nil
}
