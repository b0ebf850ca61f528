package handler

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"fledger/internal/modules/ledger/dto"
	"fledger/internal/modules/ledger/model"
	"fledger/internal/modules/ledger/oracle"
	"fledger/internal/modules/ledger/usecase"
	"fledger/pkg/logger"
	"fledger/pkg/response"
	"fledger/pkg/validation"
)

var validate = validator.New()

type LedgerHandler struct {
	accounts  *usecase.AccountUsecase
	transfers *usecase.TransferUsecase
	trades    *usecase.TradeUsecase
	valuation *usecase.ValuationUsecase
	prices    usecase.PriceSource
}

func NewLedgerHandler(
	accounts *usecase.AccountUsecase,
	transfers *usecase.TransferUsecase,
	trades *usecase.TradeUsecase,
	valuation *usecase.ValuationUsecase,
	prices usecase.PriceSource,
) *LedgerHandler {
	return &LedgerHandler{
		accounts:  accounts,
		transfers: transfers,
		trades:    trades,
		valuation: valuation,
		prices:    prices,
	}
}

func (h *LedgerHandler) CreateAccount(c *fiber.Ctx) error {
	var req dto.CreateAccountInput
	if err := c.BodyParser(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Validation error", validation.FormatValidationError(err))
	}

	acc, err := h.accounts.CreateAccount(c.Context(), req)
	if err != nil {
		return h.writeDomainError(c, "LedgerHandler.CreateAccount", req, err)
	}
	logger.WriteLogToFile("success", "LedgerHandler.CreateAccount", req, nil)
	return response.WriteSuccess(c, fiber.StatusCreated, "Account created", acc)
}

func (h *LedgerHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.accounts.ListAccounts(c.Context())
	if err != nil {
		return h.writeDomainError(c, "LedgerHandler.ListAccounts", nil, err)
	}
	return response.WriteSuccess(c, fiber.StatusOK, "Active accounts", accounts)
}

func (h *LedgerHandler) GetAccount(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
	}
	detail, err := h.accounts.AccountDetail(c.Context(), id)
	if err != nil {
		return h.writeDomainError(c, "LedgerHandler.GetAccount", id, err)
	}
	return response.WriteSuccess(c, fiber.StatusOK, "Account detail", detail)
}

func (h *LedgerHandler) DeactivateAccount(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
	}
	if err := h.accounts.DeactivateAccount(c.Context(), id); err != nil {
		return h.writeDomainError(c, "LedgerHandler.DeactivateAccount", id, err)
	}
	logger.WriteLogToFile("success", "LedgerHandler.DeactivateAccount", id, nil)
	return response.WriteSuccess(c, fiber.StatusOK, "Account deactivated", nil)
}

func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	var req dto.TransferInput
	if err := c.BodyParser(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Validation error", validation.FormatValidationError(err))
	}

	receipt, err := h.transfers.Transfer(c.Context(), req)
	if err != nil {
		return h.writeDomainError(c, "LedgerHandler.Transfer", req, err)
	}
	logger.WriteLogToFile("success", "LedgerHandler.Transfer", req, nil)
	return response.WriteSuccess(c, fiber.StatusCreated, "Transfer committed", receipt)
}

func (h *LedgerHandler) Trade(c *fiber.Ctx) error {
	var req dto.TradeInput
	if err := c.BodyParser(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Validation error", validation.FormatValidationError(err))
	}

	receipt, err := h.trades.Trade(c.Context(), req)
	if err != nil {
		return h.writeDomainError(c, "LedgerHandler.Trade", req, err)
	}
	logger.WriteLogToFile("success", "LedgerHandler.Trade", req, nil)
	return response.WriteSuccess(c, fiber.StatusCreated, "Trade committed", receipt)
}

func (h *LedgerHandler) RecordIncome(c *fiber.Ctx) error {
	return h.recordHandler(c, model.TxIncome)
}

func (h *LedgerHandler) RecordExpense(c *fiber.Ctx) error {
	return h.recordHandler(c, model.TxExpense)
}

func (h *LedgerHandler) recordHandler(c *fiber.Ctx, txType string) error {
	var req dto.RecordInput
	if err := c.BodyParser(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Validation error", validation.FormatValidationError(err))
	}

	var receipt *dto.RecordReceipt
	var err error
	if txType == model.TxIncome {
		receipt, err = h.accounts.RecordIncome(c.Context(), req)
	} else {
		receipt, err = h.accounts.RecordExpense(c.Context(), req)
	}
	if err != nil {
		return h.writeDomainError(c, "LedgerHandler.Record", req, err)
	}
	logger.WriteLogToFile("success", "LedgerHandler.Record", req, nil)
	return response.WriteSuccess(c, fiber.StatusCreated, "Recorded", receipt)
}

func (h *LedgerHandler) NetWorth(c *fiber.Ctx) error {
	nw, err := h.valuation.NetWorth(c.Context(), c.Query("currency"))
	if err != nil {
		return h.writeDomainError(c, "LedgerHandler.NetWorth", c.Query("currency"), err)
	}
	return response.WriteSuccess(c, fiber.StatusOK, "Net worth", nw)
}

func (h *LedgerHandler) Cashflow(c *fiber.Ctx) error {
	req := dto.CashflowInput{From: c.Query("from"), To: c.Query("to")}
	if err := validate.Struct(&req); err != nil {
		return response.WriteError(c, fiber.StatusBadRequest, "Validation error", validation.FormatValidationError(err))
	}

	cf, err := h.accounts.Cashflow(c.Context(), req)
	if err != nil {
		return h.writeDomainError(c, "LedgerHandler.Cashflow", req, err)
	}
	return response.WriteSuccess(c, fiber.StatusOK, "Cashflow summary", cf)
}

func (h *LedgerHandler) Price(c *fiber.Ctx) error {
	symbol := c.Params("symbol")
	price, err := h.prices.GetPrice(c.Context(), symbol)
	if err != nil {
		if errors.Is(err, oracle.ErrPriceNotFound) {
			return response.WriteError(c, fiber.StatusNotFound, "No price available", symbol)
		}
		return h.writeDomainError(c, "LedgerHandler.Price", symbol, err)
	}
	return response.WriteSuccess(c, fiber.StatusOK, "Current price", fiber.Map{
		"symbol": symbol,
		"price":  price,
	})
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Business-rule
// failures come back 4xx with their message intact; storage failures are a
// generic retryable 500.
func (h *LedgerHandler) writeDomainError(c *fiber.Ctx, source string, payload any, err error) error {
	errMsg := err.Error()
	logger.WriteLogToFile("failed", source, payload, &errMsg)

	var policyErr *model.PolicyError
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return response.WriteError(c, fiber.StatusBadRequest, "Invalid input", errMsg)
	case errors.Is(err, model.ErrAccountNotFound):
		return response.WriteError(c, fiber.StatusNotFound, "Account not found", errMsg)
	case errors.As(err, &policyErr):
		return response.WriteError(c, fiber.StatusUnprocessableEntity, "Transfer denied by policy", policyErr.Reason)
	case errors.Is(err, model.ErrCurrencyMismatch),
		errors.Is(err, model.ErrInsufficientFunds),
		errors.Is(err, model.ErrPriceUnavailable):
		return response.WriteError(c, fiber.StatusUnprocessableEntity, "Operation rejected", errMsg)
	case errors.Is(err, model.ErrStorage):
		return response.WriteError(c, fiber.StatusInternalServerError, "Storage failure, please retry", errMsg)
	default:
		logger.Errorf("unexpected error in %s: %v", source, err)
		return response.WriteError(c, fiber.StatusInternalServerError, "Internal error", errMsg)
	}
}
