package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stockuc "github.com/ecovale/recicla-api/internal/application/stock"
	"github.com/ecovale/recicla-api/internal/domain"
	"github.com/ecovale/recicla-api/internal/domain/entity"
	apphttp "github.com/ecovale/recicla-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stub do coordenador: devolve o erro configurado ou uma entidade plausível,
// e captura a última entrada recebida para inspeção.
// ──────────────────────────────────────────────────────────────────────────────

type stubStock struct {
	err          error
	lastReceipt  stockuc.ReceiptInput
	lastShipment stockuc.ShipmentInput
	lastOrder    stockuc.OrderInput
	lastRetract  string
}

func (s *stubStock) RegisterReceipt(_ context.Context, in stockuc.ReceiptInput) (*entity.Receipt, error) {
	s.lastReceipt = in
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Receipt{
		ID:         "receipt-1",
		MaterialID: in.MaterialID,
		StaffID:    "staff-1",
		Weight:     in.Weight,
		Volume:     in.Volume,
		CreatedAt:  time.Now(),
	}, nil
}

func (s *stubStock) RegisterShipment(_ context.Context, in stockuc.ShipmentInput) (*entity.Shipment, error) {
	s.lastShipment = in
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Shipment{
		ID:         "shipment-1",
		MaterialID: in.MaterialID,
		PartnerID:  "partner-1",
		Weight:     in.Weight,
		Volume:     in.Volume,
		Status:     entity.ShipmentStatusActive,
		CreatedAt:  time.Now(),
	}, nil
}

func (s *stubStock) RetractShipment(_ context.Context, id string) (*entity.Shipment, error) {
	s.lastRetract = id
	if s.err != nil {
		return nil, s.err
	}
	now := time.Now()
	return &entity.Shipment{
		ID:          id,
		MaterialID:  "material-1",
		PartnerID:   "partner-1",
		Weight:      decimal.NewFromInt(20),
		Volume:      decimal.NewFromInt(10),
		Status:      entity.ShipmentStatusRetracted,
		CreatedAt:   now,
		RetractedAt: &now,
	}, nil
}

func (s *stubStock) RegisterOrder(_ context.Context, in stockuc.OrderInput) (*entity.CollectionOrder, error) {
	s.lastOrder = in
	if s.err != nil {
		return nil, s.err
	}
	return &entity.CollectionOrder{
		ID:         "order-1",
		MaterialID: in.MaterialID,
		ClientID:   "client-1",
		StaffID:    "staff-1",
		Weight:     in.Weight,
		Volume:     in.Volume,
		Type:       in.Type,
		CreatedAt:  time.Now(),
	}, nil
}

func buildTestApp(stub *stubStock) *fiber.App {
	app := fiber.New()
	h := apphttp.NewStockHandler(stub, nil)
	app.Post("/api/receipts", h.CreateReceipt)
	app.Post("/api/shipments", h.CreateShipment)
	app.Delete("/api/shipments/:id", h.RetractShipment)
	app.Post("/api/collection-orders", h.CreateOrder)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "resposta deve ser JSON: %s", raw)
	}
	return resp, parsed
}

// ──────────────────────────────────────────────────────────────────────────────
// Caminhos felizes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateReceipt_Retorna201(t *testing.T) {
	stub := &stubStock{}
	app := buildTestApp(stub)

	resp, body := doJSON(t, app, http.MethodPost, "/api/receipts", fiber.Map{
		"material_id": "material-1",
		"staff_cpf":   "111.222.333-44",
		"weight":      "10",
		"volume":      "5",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "receipt-1", body["id"])
	assert.Equal(t, "material-1", stub.lastReceipt.MaterialID)
	assert.Equal(t, "111.222.333-44", stub.lastReceipt.StaffCPF)
	assert.True(t, stub.lastReceipt.Weight.Equal(decimal.NewFromInt(10)))
}

func TestCreateShipment_Retorna201Ativa(t *testing.T) {
	stub := &stubStock{}
	app := buildTestApp(stub)

	resp, body := doJSON(t, app, http.MethodPost, "/api/shipments", fiber.Map{
		"material_id":  "material-1",
		"partner_cnpj": "12.345.678/0001-90",
		"weight_sent":  "20",
		"volume_sent":  "10",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.ShipmentStatusActive, body["status"])
	assert.Equal(t, "12.345.678/0001-90", stub.lastShipment.PartnerCNPJ)
}

func TestRetractShipment_Retorna200Retratada(t *testing.T) {
	stub := &stubStock{}
	app := buildTestApp(stub)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/shipments/shipment-1", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.ShipmentStatusRetracted, body["status"])
	assert.NotNil(t, body["retracted_at"])
	assert.Equal(t, "shipment-1", stub.lastRetract)
}

func TestCreateOrder_Retorna201(t *testing.T) {
	stub := &stubStock{}
	app := buildTestApp(stub)

	resp, body := doJSON(t, app, http.MethodPost, "/api/collection-orders", fiber.Map{
		"material_id": "material-1",
		"client_cpf":  "555.666.777-88",
		"staff_cpf":   "111.222.333-44",
		"weight":      "12",
		"volume":      "6",
		"type":        "residencial",
	})

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "order-1", body["id"])
	assert.Equal(t, "residencial", stub.lastOrder.Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrada malformada
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateReceipt_CorpoInvalido(t *testing.T) {
	app := buildTestApp(&stubStock{})

	req := httptest.NewRequest(http.MethodPost, "/api/receipts", bytes.NewBufferString("{corpo quebrado"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeamento erro de domínio -> status HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateShipment_MapeamentoDeErros(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"material inexistente", domain.ErrMaterialNotFound, http.StatusNotFound, "MATERIAL_NOT_FOUND"},
		{"parceira inexistente", domain.ErrPartnerNotFound, http.StatusNotFound, "PARTNER_NOT_FOUND"},
		{"quantidade inválida", domain.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{"remessa duplicada no dia", domain.ErrDuplicateDailyShipment, http.StatusBadRequest, "DUPLICATE_DAILY_SHIPMENT"},
		{
			"abaixo do piso operacional",
			&domain.InsufficientStockError{
				Rule:      domain.ErrInsufficientBaseStock,
				Resource:  "peso",
				Available: decimal.NewFromInt(80),
				Requested: decimal.NewFromInt(100),
			},
			http.StatusBadRequest, "INSUFFICIENT_BASE_STOCK",
		},
		{
			"estoque insuficiente",
			&domain.InsufficientStockError{
				Rule:      domain.ErrInsufficientStock,
				Resource:  "peso",
				Available: decimal.NewFromInt(150),
				Requested: decimal.NewFromInt(200),
			},
			http.StatusBadRequest, "INSUFFICIENT_STOCK",
		},
		{"lock esgotado", domain.ErrLockTimeout, http.StatusConflict, "LOCK_TIMEOUT"},
		{
			"invariante violada",
			&domain.StockInvariantError{MaterialID: "material-1"},
			http.StatusInternalServerError, "STOCK_INVARIANT",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp(&stubStock{err: tc.err})

			resp, body := doJSON(t, app, http.MethodPost, "/api/shipments", fiber.Map{
				"material_id":  "material-1",
				"partner_cnpj": "12.345.678/0001-90",
				"weight_sent":  "20",
				"volume_sent":  "10",
			})

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, tc.wantCode, body["code"])
			assert.NotEmpty(t, body["message"], "a mensagem do domínio deve chegar íntegra ao caller")
		})
	}
}

func TestCreateReceipt_TetoMensalDetalhado(t *testing.T) {
	capErr := &domain.CapExceededError{
		Rule:    domain.ErrMonthlyCapExceeded,
		Limit:   decimal.NewFromInt(100),
		Current: decimal.NewFromFloat(105.5),
	}
	app := buildTestApp(&stubStock{err: capErr})

	resp, body := doJSON(t, app, http.MethodPost, "/api/receipts", fiber.Map{
		"material_id": "material-1",
		"staff_cpf":   "111.222.333-44",
		"weight":      "10",
		"volume":      "5",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MONTHLY_CAP_EXCEEDED", body["code"])
	assert.Contains(t, body["message"], "105.5", "a mensagem deve trazer o total corrente")
}

func TestRetractShipment_Inexistente(t *testing.T) {
	app := buildTestApp(&stubStock{err: domain.ErrMovementNotFound})

	resp, body := doJSON(t, app, http.MethodDelete, "/api/shipments/desconhecida", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "MOVEMENT_NOT_FOUND", body["code"])
}
