// Package catalog reads products from the catalog service over HTTP. Calls go
// through a circuit breaker so an unhealthy catalog fails checkouts fast.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/sony/gobreaker/v2"
)

const dependency = "catalog"

var _ ports.Catalog = (*Client)(nil)

var errProductNotFound = errors.New("product not found")

type productResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Stock     int    `json:"stock"`
	Merchant  struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Address string `json:"address"`
	} `json:"merchant"`
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[ports.Product]
}

// NewClient opens the breaker after five consecutive failures and probes the
// catalog again after thirty seconds. A missing product is not a failure.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker[ports.Product](gobreaker.Settings{
		Name:        dependency,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errProductNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		breaker: breaker,
	}
}

func (c *Client) GetProduct(ctx context.Context, productID string) (ports.Product, error) {
	product, err := c.breaker.Execute(func() (ports.Product, error) {
		return c.fetch(ctx, productID)
	})
	switch {
	case err == nil:
		return product, nil
	case errors.Is(err, errProductNotFound):
		return ports.Product{}, errs.NewObjectNotFoundError("product", productID)
	default:
		return ports.Product{}, errs.NewDependencyFailedError(dependency, err)
	}
}

func (c *Client) fetch(ctx context.Context, productID string) (ports.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/products/"+url.PathEscape(productID), nil)
	if err != nil {
		return ports.Product{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.Product{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.Product{}, errProductNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.Product{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var body productResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Product{}, fmt.Errorf("decode product: %w", err)
	}

	price, err := kernel.NewMoney(body.UnitPrice)
	if err != nil {
		return ports.Product{}, fmt.Errorf("product %s: %w", productID, err)
	}

	return ports.Product{
		ID:              body.ID,
		Name:            body.Name,
		UnitPrice:       price,
		Stock:           body.Stock,
		MerchantID:      body.Merchant.ID,
		MerchantName:    body.Merchant.Name,
		MerchantAddress: body.Merchant.Address,
	}, nil
}
