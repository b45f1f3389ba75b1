package handlers

import (
	"palenque/internal/models"
	"palenque/internal/repositories"
	"palenque/internal/services/ledger"
	"palenque/internal/utils"
	"palenque/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// WalletHandler serves the account owner's surface: wallet lookup, deposit
// and withdrawal requests, and history.
type WalletHandler struct {
	ledgerService ledger.Service
}

func NewWalletHandler(ledgerService ledger.Service) *WalletHandler {
	return &WalletHandler{
		ledgerService: ledgerService,
	}
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	wallet, err := h.ledgerService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"wallet": wallet,
	})
}

type operationInput struct {
	Amount          decimal.Decimal `json:"amount"`
	PaymentProofURL string          `json:"payment_proof_url"`
}

func (h *WalletHandler) RequestDeposit(c *fiber.Ctx) error {
	return h.createOperation(c, models.OperationTypeDeposit)
}

func (h *WalletHandler) RequestWithdrawal(c *fiber.Ctx) error {
	return h.createOperation(c, models.OperationTypeWithdrawal)
}

func (h *WalletHandler) createOperation(c *fiber.Ctx, opType models.OperationType) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input operationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	op, err := h.ledgerService.CreateOperation(c.Context(), ledger.CreateOperationRequest{
		UserID:          claims.UserID,
		Type:            opType,
		Amount:          input.Amount,
		PaymentProofURL: input.PaymentProofURL,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"operation": op,
	})
}

func (h *WalletHandler) ListMyOperations(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)
	filter := repositories.OperationFilter{
		UserID: claims.UserID,
		Type:   models.OperationType(c.Query("type")),
		Status: models.OperationStatus(c.Query("status")),
	}

	ops, total, err := h.ledgerService.ListOperations(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list operations")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, ops))
}

func (h *WalletHandler) GetTransactionHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c)
	entries, total, err := h.ledgerService.GetTransactionHistory(c.Context(), claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}
