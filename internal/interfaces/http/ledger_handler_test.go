package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/export"
	"github.com/jhoicas/estoque-api/internal/application/ledger"
	"github.com/jhoicas/estoque-api/internal/application/projection"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/kvstore"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubPDF struct{ err error }

func (g stubPDF) GenerateReportPDF(_ context.Context, data export.ReportData) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3 stub"), nil
}

type brokenKV struct{ *kvstore.MemoryStore }

func (brokenKV) Put(context.Context, ...repository.Entry) error {
	return errors.New("disco lleno")
}

type testAPI struct {
	app   *fiber.App
	store *ledger.Store
	kv    repository.KeyValueStore
}

func newTestAPI(t *testing.T, kv repository.KeyValueStore, secret string, gen export.PDFGenerator) testAPI {
	t.Helper()
	now := time.Date(2024, 5, 10, 9, 30, 0, 0, time.UTC)
	store := ledger.NewStore(kv, ledger.WithClock(func() time.Time { return now }))
	require.NoError(t, store.Load(context.Background()))

	formatter := projection.NewFormatter(time.UTC)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:    store,
		Reports:   export.NewReportUseCase(store, gen, formatter),
		Formatter: formatter,
		Logger:    logger.Nop(),
		JWTSecret: secret,
		JWTIssuer: testIssuer,
	})
	return testAPI{app: app, store: store, kv: kv}
}

func (a testAPI) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func seed(t *testing.T, a testAPI) {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": "Café", "sku": "CF-1", "qty": "10", "unitCost": 2.5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), testJWTSecret, stubPDF{})
	resp := a.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health no exige token")
}

func TestCreateProduct_CoercionYListado(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), "", stubPDF{})

	resp := a.do(t, http.MethodPost, "/api/products", map[string]any{
		"name": "Açúcar", "qty": "abc", "unitCost": "x",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	row := decode[dto.ProductRow](t, resp)
	assert.Equal(t, 0, row.Index)
	assert.Equal(t, int64(0), row.Qty, "cantidad no numérica se guarda como 0")
	assert.Equal(t, "-", row.SKU)

	list := decode[dto.ProductListResponse](t, a.do(t, http.MethodGet, "/api/products", nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Summary.ProductCount)
}

func TestUpdateProduct(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), "", stubPDF{})
	seed(t, a)

	resp := a.do(t, http.MethodPut, "/api/products/0", map[string]any{"name": "Café Especial", "qty": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	row := decode[dto.ProductRow](t, resp)
	assert.Equal(t, "Café Especial", row.Name)
	assert.Equal(t, int64(4), row.Qty)
}

func TestUpdateProduct_Errores(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), "", stubPDF{})
	seed(t, a)

	resp := a.do(t, http.MethodPut, "/api/products/7", map[string]any{"name": "x", "qty": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "INDEX_OUT_OF_RANGE", decode[dto.ErrorResponse](t, resp).Code)

	resp = a.do(t, http.MethodPut, "/api/products/abc", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateMovement_EntradaYSaida(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), "", stubPDF{})
	seed(t, a)

	resp := a.do(t, http.MethodPost, "/api/movements", map[string]any{
		"product": "Café", "type": "Entrada", "qty": 5, "unitCost": "2.5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mv := decode[dto.MovementRow](t, resp)
	assert.Equal(t, int64(15), mv.FinalQty)
	assert.Equal(t, "row-entrada", mv.RowClass)

	resp = a.do(t, http.MethodPost, "/api/movements", map[string]any{
		"product": "Café", "type": "saida", "qty": "3", "unitCost": 2.5, "description": "venda",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mv = decode[dto.MovementRow](t, resp)
	assert.Equal(t, "Saída", mv.Type)
	assert.Equal(t, int64(12), mv.FinalQty)
	assert.Equal(t, "7.5", mv.TotalCost.String())
	assert.Equal(t, 0, mv.Index, "el movimiento nuevo queda primero")

	list := decode[dto.MovementListResponse](t, a.do(t, http.MethodGet, "/api/movements", nil))
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, int64(12), list.Summary.TotalQty)
}

func TestCreateMovement_Errores(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), "", stubPDF{})
	seed(t, a)

	resp := a.do(t, http.MethodPost, "/api/movements", map[string]any{"product": "Chá", "type": "Entrada", "qty": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = a.do(t, http.MethodPost, "/api/movements", map[string]any{"product": "Café", "type": "Ajuste", "qty": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/movements", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	raw, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, raw).Code)
}

func TestListMovements_FiltroConservaIndice(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), "", stubPDF{})
	seed(t, a)
	for _, d := range []string{"compra", "venda balcão", "ajuste"} {
		resp := a.do(t, http.MethodPost, "/api/movements", map[string]any{
			"product": "Café", "type": "Entrada", "qty": 1, "description": d,
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	list := decode[dto.MovementListResponse](t, a.do(t, http.MethodGet, "/api/movements?q=VENDA", nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Items[0].Index, "índice en la secuencia completa")
	assert.Equal(t, "VENDA", list.Filter)

	resp := a.do(t, http.MethodDelete, "/api/movements/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "venda balcão", decode[dto.MovementRow](t, resp).Description)

	summary := decode[dto.Summary](t, a.do(t, http.MethodGet, "/api/summary", nil))
	assert.Equal(t, 2, summary.MovementCount)
	assert.Equal(t, int64(12), summary.TotalQty)
}

func TestDeleteMovement_FueraDeRango(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), "", stubPDF{})
	resp := a.do(t, http.MethodDelete, "/api/movements/0", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "INDEX_OUT_OF_RANGE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCreateProduct_FallaPersistencia(t *testing.T) {
	a := newTestAPI(t, brokenKV{kvstore.NewMemoryStore()}, "", stubPDF{})

	resp := a.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Café", "qty": 1})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "PERSIST_FAILED", decode[dto.ErrorResponse](t, resp).Code)
	assert.Len(t, a.store.Products(), 1, "el estado en memoria ya fue modificado")
}

func TestAPI_ConSecretExigeToken(t *testing.T) {
	a := newTestAPI(t, kvstore.NewMemoryStore(), testJWTSecret, stubPDF{})

	resp := a.do(t, http.MethodGet, "/api/summary", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	req.Header.Set("Authorization", bearer(t))
	ok, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ok.StatusCode)
}
