// Package client es el cliente HTTP de la API de estoque (usado por estoquectl).
package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

// APIError respuesta de error de la API ({code, message}) con el status HTTP.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d %s: %s", e.Status, e.Code, e.Message)
}

// Client envuelve un resty.Client apuntando a la base URL de la API.
type Client struct {
	http *resty.Client
}

// New construye el cliente. token vacío no envía Authorization.
func New(baseURL, token string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

func (c *Client) req(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(&dto.ErrorResponse{})
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	apiErr := &APIError{Status: resp.StatusCode()}
	if e, ok := resp.Error().(*dto.ErrorResponse); ok && e != nil {
		apiErr.Code, apiErr.Message = e.Code, e.Message
	}
	return apiErr
}

// Login POST /auth/login; devuelve el token del operador.
func (c *Client) Login(ctx context.Context, operator, password string) (dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := check(c.req(ctx).SetBody(dto.LoginRequest{Operator: operator, Password: password}).
		SetResult(&out).Post("/auth/login"))
	return out, err
}

// ListProducts GET /api/products.
func (c *Client) ListProducts(ctx context.Context) (dto.ProductListResponse, error) {
	var out dto.ProductListResponse
	err := check(c.req(ctx).SetResult(&out).Get("/api/products"))
	return out, err
}

// CreateProduct POST /api/products.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (dto.ProductRow, error) {
	var out dto.ProductRow
	err := check(c.req(ctx).SetBody(in).SetResult(&out).Post("/api/products"))
	return out, err
}

// UpdateProduct PUT /api/products/{index}.
func (c *Client) UpdateProduct(ctx context.Context, index int, in dto.UpdateProductRequest) (dto.ProductRow, error) {
	var out dto.ProductRow
	err := check(c.req(ctx).SetBody(in).SetResult(&out).
		SetPathParam("index", strconv.Itoa(index)).
		Put("/api/products/{index}"))
	return out, err
}

// ListMovements GET /api/movements?q=.
func (c *Client) ListMovements(ctx context.Context, q string) (dto.MovementListResponse, error) {
	var out dto.MovementListResponse
	r := c.req(ctx).SetResult(&out)
	if q != "" {
		r.SetQueryParam("q", q)
	}
	err := check(r.Get("/api/movements"))
	return out, err
}

// CreateMovement POST /api/movements.
func (c *Client) CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (dto.MovementRow, error) {
	var out dto.MovementRow
	err := check(c.req(ctx).SetBody(in).SetResult(&out).Post("/api/movements"))
	return out, err
}

// DeleteMovement DELETE /api/movements/{index}.
func (c *Client) DeleteMovement(ctx context.Context, index int) (dto.MovementRow, error) {
	var out dto.MovementRow
	err := check(c.req(ctx).SetResult(&out).
		SetPathParam("index", strconv.Itoa(index)).
		Delete("/api/movements/{index}"))
	return out, err
}

// Summary GET /api/summary.
func (c *Client) Summary(ctx context.Context) (dto.Summary, error) {
	var out dto.Summary
	err := check(c.req(ctx).SetResult(&out).Get("/api/summary"))
	return out, err
}

// ExportCSV descarga el CSV de movimientos.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.download(ctx, "/api/export/csv", "")
}

// ExportPDF descarga el reporte PDF; q filtra los movimientos.
func (c *Client) ExportPDF(ctx context.Context, q string) ([]byte, error) {
	return c.download(ctx, "/api/export/pdf", q)
}

func (c *Client) download(ctx context.Context, path, q string) ([]byte, error) {
	r := c.req(ctx).SetHeader("Accept", "*/*")
	if q != "" {
		r.SetQueryParamsFromValues(url.Values{"q": []string{q}})
	}
	resp, err := r.Get(path)
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return resp.Body(), nil
}
