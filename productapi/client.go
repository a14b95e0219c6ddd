package productapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-product-admin/catalog"
	"github.com/jrsteele09/go-product-admin/internal/errors"
)

// Client is a typed client for the remote product-manager REST API. One
// method per endpoint, all sharing the same error mapping so the handlers
// never inspect raw status codes themselves.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the given API base URL. The default http.Client
// carries no timeout; a hung request hangs the browser request that caused
// it.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// NewWithHTTPClient allows tests to inject a transport.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	c := New(baseURL)
	c.httpClient = httpClient
	return c
}

// LoginResult is the login endpoint's success payload.
type LoginResult struct {
	Token    string `json:"token"`
	IsAdmin  bool   `json:"isAdmin"`
	Username string `json:"username"`
}

// Login exchanges credentials for a bearer token and role flag. Both fields
// must be non-empty; the check runs before any network call. A non-200
// response, or a 200 without a token field, is a failed login attempt
// without distinguishing bad credentials from server error.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, errors.ErrMissingCredentials
	}

	body := map[string]string{"username": username, "password": password}
	resp, err := c.postJSON(ctx, "/login", "", body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Login] request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return nil, errors.ErrFailedLogin
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrapf(err, "[Login] decoding response")
	}
	if result.Token == "" {
		return nil, errors.ErrFailedLogin
	}
	return &result, nil
}

// registrationConflict is the 400 payload of the registration endpoint.
type registrationConflict struct {
	ErrorType string `json:"errorType"`
}

// RegisterAccount creates a new account. A 400 response carries an
// errorType of "both", "userName" or "email" naming the colliding unique
// field; it is surfaced as a ConflictError.
func (c *Client) RegisterAccount(ctx context.Context, reg catalog.Registration) error {
	resp, err := c.postJSON(ctx, "/login/register-account", "", reg)
	if err != nil {
		return errors.Wrapf(err, "[RegisterAccount] request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		drain(resp.Body)
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		var conflict registrationConflict
		if err := json.NewDecoder(resp.Body).Decode(&conflict); err != nil {
			return errors.Wrapf(err, "[RegisterAccount] decoding conflict response")
		}
		return &errors.ConflictError{Field: errors.ConflictField(conflict.ErrorType)}
	default:
		drain(resp.Body)
		return statusError(resp.StatusCode)
	}
}

// SearchProductsByName returns all products matching the given name.
// A 404 means no product matched.
func (c *Client) SearchProductsByName(ctx context.Context, token, name string) ([]catalog.Product, error) {
	path := "/products?name=" + url.QueryEscape(name)
	resp, err := c.get(ctx, path, token)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "[SearchProductsByName] %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		drain(resp.Body)
		return nil, errors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return nil, statusError(resp.StatusCode)
	}

	var products []catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, errors.Wrapf(err, "[SearchProductsByName] decoding response")
	}
	return products, nil
}

// ProductBySKU fetches a single product by its SKU.
func (c *Client) ProductBySKU(ctx context.Context, token, sku string) (*catalog.Product, error) {
	resp, err := c.get(ctx, "/products/"+url.PathEscape(sku), token)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "[ProductBySKU] %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		drain(resp.Body)
		return nil, errors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return nil, statusError(resp.StatusCode)
	}

	var product catalog.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, errors.Wrapf(err, "[ProductBySKU] decoding response")
	}
	return &product, nil
}

// CreateProduct registers a new product. A conflicting SKU maps to
// ErrConflict regardless of whether the deployed API reports it as 400 or
// 409.
func (c *Client) CreateProduct(ctx context.Context, token string, product catalog.Product) error {
	resp, err := c.postJSON(ctx, "/products", token, product)
	if err != nil {
		return errors.Wrapf(errors.ErrUnauthorized, "[CreateProduct] %v", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)
	return conflictMappedStatus(resp.StatusCode)
}

// UpdateProduct replaces the product addressed by its SKU.
func (c *Client) UpdateProduct(ctx context.Context, token string, product catalog.Product) error {
	resp, err := c.sendJSON(ctx, http.MethodPut, "/products/"+url.PathEscape(product.SKU), token, product)
	if err != nil {
		return errors.Wrapf(errors.ErrUnauthorized, "[UpdateProduct] %v", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return errors.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode)
	}
	return nil
}

// DeleteProduct removes the product addressed by its SKU.
func (c *Client) DeleteProduct(ctx context.Context, token, sku string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/products/"+url.PathEscape(sku), token, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrUnauthorized, "[DeleteProduct] %v", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return errors.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode)
	}
	return nil
}

// Categories returns every category with its nested product list.
func (c *Client) Categories(ctx context.Context, token string) ([]catalog.Category, error) {
	return c.fetchCategories(ctx, "/categories", token)
}

// CategoriesOnly returns the bare category list (id and name), sorted by ID.
func (c *Client) CategoriesOnly(ctx context.Context, token string) ([]catalog.Category, error) {
	categories, err := c.fetchCategories(ctx, "/categories/categories-only", token)
	if err != nil {
		return nil, err
	}
	return catalog.CategoriesByID(categories), nil
}

// CreateCategory registers a new category. A duplicate name maps to
// ErrConflict (400 or 409, depending on the deployed API revision).
func (c *Client) CreateCategory(ctx context.Context, token, name string) error {
	resp, err := c.postJSON(ctx, "/categories", token, catalog.Category{Name: name})
	if err != nil {
		return errors.Wrapf(errors.ErrUnauthorized, "[CreateCategory] %v", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)
	return conflictMappedStatus(resp.StatusCode)
}

// AssignProduct associates a product with a category. Re-assigning an
// already associated product maps to ErrConflict.
func (c *Client) AssignProduct(ctx context.Context, token string, categoryID, productID int64) error {
	path := fmt.Sprintf("/categories/%d/products/%d", categoryID, productID)
	resp, err := c.postJSON(ctx, path, token, nil)
	if err != nil {
		return errors.Wrapf(errors.ErrUnauthorized, "[AssignProduct] %v", err)
	}
	defer resp.Body.Close()
	drain(resp.Body)
	return conflictMappedStatus(resp.StatusCode)
}

func (c *Client) fetchCategories(ctx context.Context, path, token string) ([]catalog.Category, error) {
	resp, err := c.get(ctx, path, token)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "[Categories] %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return nil, statusError(resp.StatusCode)
	}

	var categories []catalog.Category
	if err := json.NewDecoder(resp.Body).Decode(&categories); err != nil {
		return nil, errors.Wrapf(err, "[Categories] decoding response")
	}
	return categories, nil
}

func (c *Client) get(ctx context.Context, path, token string) (*http.Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return c.httpClient.Do(req)
}

func (c *Client) postJSON(ctx context.Context, path, token string, body any) (*http.Response, error) {
	return c.sendJSON(ctx, http.MethodPost, path, token, body)
}

func (c *Client) sendJSON(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "[Client sendJSON] encoding body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, token, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client newRequest] %s %s", method, path)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// conflictMappedStatus maps a create/assign response status to an error.
// Deployed API revisions disagree on whether "already exists" is 400 or
// 409, so both map to ErrConflict.
func conflictMappedStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest || status == http.StatusConflict:
		return &errors.ConflictError{}
	default:
		return statusError(status)
	}
}

func statusError(status int) error {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return errors.ErrUnauthorized
	}
	return errors.Wrapf(errors.ErrUnexpectedStatus, "HTTP %d", status)
}

// drain consumes the remainder of a response body so the underlying
// connection can be reused.
func drain(body io.Reader) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		log.Debug().Err(err).Msg("draining response body")
	}
}
