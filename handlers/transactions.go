package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"fintrack/models"
)

// listLimit caps how many rows the list endpoint returns.
const listLimit = 10

type transactionRequest struct {
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
}

// CreateTransaction inserts a new ledger entry. Fields are stored
// verbatim, without range or type validation.
func (h *Handler) CreateTransaction(c echo.Context) error {
	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tx := &models.Transaction{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
		Description: req.Description,
	}
	if _, err := h.db.NewInsert().Model(tx).Exec(c.Request().Context()); err != nil {
		zap.L().Error("transaction insert failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	h.metrics.TransactionsCreatedTotal.Inc()
	return c.String(http.StatusOK, fmt.Sprintf("Created new Transaction with ID: %d", tx.ID))
}

// ListTransactions returns up to ten entries in storage order. The
// external contract has no ORDER BY and no pagination.
func (h *Handler) ListTransactions(c echo.Context) error {
	txs := make([]models.Transaction, 0, listLimit)
	err := h.db.NewSelect().Model(&txs).
		Limit(listLimit).
		Scan(c.Request().Context())
	if err != nil {
		zap.L().Error("transaction list failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, txs)
}

// GetTransaction returns a single entry by id, or an empty 200 body when
// no row matches. Clients depend on the miss not being a 404.
func (h *Handler) GetTransaction(c echo.Context) error {
	id := c.Param("id")

	tx := &models.Transaction{}
	err := h.db.NewSelect().Model(tx).
		Where("id = ?", id).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.NoContent(http.StatusOK)
		}
		zap.L().Error("transaction lookup failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.JSON(http.StatusOK, tx)
}

// UpdateTransaction replaces all five fields of an entry. Partial
// updates are not supported. Store errors map to 404 like the original
// API contract, not 500.
func (h *Handler) UpdateTransaction(c echo.Context) error {
	id := c.Param("id")

	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.db.NewUpdate().Model((*models.Transaction)(nil)).
		Set("type = ?", req.Type).
		Set("category = ?", req.Category).
		Set("amount = ?", req.Amount).
		Set("date = ?", req.Date).
		Set("description = ?", req.Description).
		Where("id = ?", id).
		Exec(c.Request().Context())
	if err != nil {
		zap.L().Error("transaction update failed", zap.Error(err))
		return c.String(http.StatusNotFound, "Internal Server Error")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		zap.L().Error("transaction update rows affected", zap.Error(err))
		return c.String(http.StatusNotFound, "Internal Server Error")
	}
	if rows == 0 {
		return c.String(http.StatusNotFound, "Transaction not found")
	}

	return c.String(http.StatusOK, "Transaction Updated Successfully")
}

// DeleteTransaction removes an entry by id. The response does not
// distinguish a deleted row from an id that never existed.
func (h *Handler) DeleteTransaction(c echo.Context) error {
	id := c.Param("id")

	_, err := h.db.NewDelete().Model((*models.Transaction)(nil)).
		Where("id = ?", id).
		Exec(c.Request().Context())
	if err != nil {
		zap.L().Error("transaction delete failed", zap.Error(err))
		return c.String(http.StatusInternalServerError, "Internal Server Error")
	}

	return c.String(http.StatusOK, "Transaction Deleted Successfully")
}
