package currency

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/Skenwise/Loan-Management-System/internal/transport"
)

type ServiceAPI interface {
	CreateCurrency(ctx context.Context, dto *CreateCurrencyDTO) (*Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*Currency, error)
	ListCurrencies(ctx context.Context) (*CurrenciesResponse, error)
	CreateRate(ctx context.Context, dto *CreateExchangeRateDTO) (*ExchangeRate, error)
	ListRates(ctx context.Context, base, quote string) (*ExchangeRatesResponse, error)
	LatestRate(ctx context.Context, base, quote string) (*ExchangeRate, error)
	Convert(ctx context.Context, amount float64, base, quote string) (*ConversionResponse, error)
	RevalueBalance(balance, oldRate, newRate float64) (*RevaluationResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var dto CreateCurrencyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	currency, err := h.Service.CreateCurrency(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateCurrency: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, currency)
}

func (h *Handler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		h.WriteError(w, http.StatusBadRequest, "missing currency code")
		return
	}

	currency, err := h.Service.GetCurrencyByCode(r.Context(), code)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, currency)
}

func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	response, err := h.Service.ListCurrencies(r.Context())
	if err != nil {
		h.Logger.Error("ListCurrencies: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) CreateExchangeRate(w http.ResponseWriter, r *http.Request) {
	var dto CreateExchangeRateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rate, err := h.Service.CreateRate(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateExchangeRate: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, rate)
}

// ListExchangeRates supports optional ?base= and ?quote= pair filters.
func (h *Handler) ListExchangeRates(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	quote := r.URL.Query().Get("quote")

	response, err := h.Service.ListRates(r.Context(), base, quote)
	if err != nil {
		h.Logger.Error("ListExchangeRates: service error", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) GetLatestRate(w http.ResponseWriter, r *http.Request) {
	base := chi.URLParam(r, "base")
	quote := chi.URLParam(r, "quote")

	rate, err := h.Service.LatestRate(r.Context(), base, quote)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rate)
}

// Convert handles GET /currencies/convert?amount=&base=&quote=.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	amountStr := r.URL.Query().Get("amount")
	base := r.URL.Query().Get("base")
	quote := r.URL.Query().Get("quote")

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	response, svcErr := h.Service.Convert(r.Context(), amount, base, quote)
	if svcErr != nil {
		h.WriteAppError(w, svcErr)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) RevalueBalance(w http.ResponseWriter, r *http.Request) {
	var dto RevalueDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.Service.RevalueBalance(dto.Balance, dto.OldRate, dto.NewRate)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, response)
}
