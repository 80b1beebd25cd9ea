package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bizhub/erp-system/internal/core/domain"
	"github.com/bizhub/erp-system/internal/core/ports"
)

// FinanceHandler handles HTTP requests for the finance widget.
type FinanceHandler struct {
	service ports.FinanceService
}

func NewFinanceHandler(service ports.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: service}
}

type recordTransactionRequest struct {
	Type        string    `json:"type" validate:"required,oneof=income expense"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Currency    string    `json:"currency,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	OccurredAt  time.Time `json:"occurred_at,omitempty"`
}

type transactionListResponse struct {
	Transactions []*domain.Transaction `json:"transactions"`
}

// List handles GET /v1/finance/transactions.
//
// @Summary      List my transactions
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  transactionListResponse
// @Router       /v1/finance/transactions [get]
func (h *FinanceHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Transaction{}
	}
	return c.JSON(http.StatusOK, transactionListResponse{Transactions: list})
}

// Record handles POST /v1/finance/transactions.
//
// @Summary      Record a ledger transaction
// @Tags         finance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordTransactionRequest  true  "Transaction details"
// @Success      201   {object}  domain.Transaction
// @Failure      400   {object}  map[string]string
// @Router       /v1/finance/transactions [post]
func (h *FinanceHandler) Record(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req recordTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := h.service.Record(c.Request().Context(), ports.RecordTransactionInput{
		UserID:      userID,
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Category:    req.Category,
		Description: req.Description,
		OccurredAt:  req.OccurredAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Summary handles GET /v1/finance/summary — the aggregated widget payload.
//
// @Summary      Finance summary widget
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FinanceSummary
// @Router       /v1/finance/summary [get]
func (h *FinanceHandler) Summary(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Summary(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
