package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const accessTokenHeader = "X-Platform-Access-Token"

// ErrNotFound is returned when the platform reports 404 for a resource
// lookup. Deletes swallow it - removing something already gone is fine.
var ErrNotFound = errors.New("platform: resource not found")

// APIError is any non-2xx platform response other than a tolerated 404.
type APIError struct {
	StatusCode int
	Body       string
}

func (e APIError) Error() string {
	return fmt.Sprintf("platform: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the hosted commerce platform. Every request first waits
// on a fixed-interval limiter so the store's rate limit is respected no
// matter how the caller loops. No adaptive backoff, no jitter.
type Client struct {
	baseURL     string
	accessToken string
	http        *http.Client
	limiter     *rate.Limiter
}

func NewClient(baseURL, accessToken string, requestDelay time.Duration) *Client {
	if requestDelay <= 0 {
		requestDelay = 600 * time.Millisecond
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		http:        &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(requestDelay), 1),
	}
}

func (c *Client) CreateProduct(ctx context.Context, product Product) (Product, error) {
	var envelope productEnvelope
	err := c.do(ctx, http.MethodPost, "/admin/products.json", productEnvelope{Product: product}, &envelope)
	if err != nil {
		return Product{}, err
	}

	return envelope.Product, nil
}

// DeleteProduct removes a product by its platform identifier. A 404 is not
// an error.
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	path := fmt.Sprintf("/admin/products/%s.json", productID)

	err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}

	return err
}

func (c *Client) ListProducts(ctx context.Context, limit, page int) ([]Product, error) {
	path := fmt.Sprintf("/admin/products.json?limit=%d&page=%d", limit, page)

	var envelope productListEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}

	return envelope.Products, nil
}

func (c *Client) CountProducts(ctx context.Context) (int, error) {
	var envelope countEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/products/count.json", nil, &envelope); err != nil {
		return 0, err
	}

	return envelope.Count, nil
}

func (c *Client) CreateCart(ctx context.Context) (Cart, error) {
	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/carts.json", nil, &envelope); err != nil {
		return Cart{}, err
	}

	return envelope.Cart, nil
}

func (c *Client) GetCart(ctx context.Context, cartID string) (Cart, error) {
	path := fmt.Sprintf("/carts/%s.json", cartID)

	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return Cart{}, err
	}

	return envelope.Cart, nil
}

func (c *Client) AddCartItem(ctx context.Context, cartID string, item CartItemInput) (Cart, error) {
	path := fmt.Sprintf("/carts/%s/items.json", cartID)

	var envelope cartEnvelope
	if err := c.do(ctx, http.MethodPost, path, cartItemEnvelope{Item: item}, &envelope); err != nil {
		return Cart{}, err
	}

	return envelope.Cart, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("platform: failed to serialize request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set(accessTokenHeader, c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return APIError{StatusCode: resp.StatusCode, Body: snippet(responseBody)}
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(responseBody, out)
}

func snippet(body []byte) string {
	const max = 256
	if len(body) > max {
		body = body[:max]
	}
	return string(body)
}
