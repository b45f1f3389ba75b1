package handlers

import (
	"strconv"
	"time"

	"palenque/internal/models"
	"palenque/internal/repositories"
	"palenque/internal/services/ledger"
	"palenque/internal/services/limits"
	"palenque/internal/utils"
	"palenque/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AdminHandler serves the administrator surface: the operation approval
// workflow, direct balance adjustments, statistics, and limit settings.
type AdminHandler struct {
	ledgerService ledger.Service
	limitsService limits.Service
}

func NewAdminHandler(ledgerService ledger.Service, limitsService limits.Service) *AdminHandler {
	return &AdminHandler{
		ledgerService: ledgerService,
		limitsService: limitsService,
	}
}

func (h *AdminHandler) adminClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil || !claims.HasPermission(models.PermissionWriteAdmin) {
		return nil, fiber.ErrForbidden
	}
	return claims, nil
}

func operationID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

func (h *AdminHandler) ListOperations(c *fiber.Ctx) error {
	if _, err := h.adminClaims(c); err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}

	p := pagination.ParseFromRequest(c)
	filter := repositories.OperationFilter{
		Type:   models.OperationType(c.Query("type")),
		Status: models.OperationStatus(c.Query("status")),
	}
	if userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32); err == nil {
		filter.UserID = uint(userID)
	}
	if from, err := time.Parse(time.RFC3339, c.Query("from")); err == nil {
		filter.From = from
	}
	if to, err := time.Parse(time.RFC3339, c.Query("to")); err == nil {
		filter.To = to
	}

	ops, total, err := h.ledgerService.ListOperations(c.Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list operations")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, ops))
}

func (h *AdminHandler) GetOperationStats(c *fiber.Ctx) error {
	if _, err := h.adminClaims(c); err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}

	stats, err := h.ledgerService.GetOperationStats(c.Context())
	if err != nil {
		return utils.InternalError(c, "Failed to get operation stats")
	}

	return utils.Success(c, fiber.Map{
		"stats": stats,
	})
}

func (h *AdminHandler) ApproveOperation(c *fiber.Ctx) error {
	claims, err := h.adminClaims(c)
	if err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}
	id, err := operationID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid operation id")
	}

	var input struct {
		AdminNotes string `json:"admin_notes"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return utils.BadRequest(c, "Invalid request format")
	}

	op, err := h.ledgerService.ApproveOperation(c.Context(), id, claims.UserID, input.AdminNotes)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"operation": op,
	})
}

func (h *AdminHandler) CompleteOperation(c *fiber.Ctx) error {
	claims, err := h.adminClaims(c)
	if err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}
	id, err := operationID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid operation id")
	}

	var input struct {
		AdminProofURL string `json:"admin_proof_url"`
		AdminNotes    string `json:"admin_notes"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return utils.BadRequest(c, "Invalid request format")
	}

	op, err := h.ledgerService.CompleteOperation(c.Context(), id, claims.UserID, input.AdminProofURL, input.AdminNotes)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"operation": op,
	})
}

func (h *AdminHandler) RejectOperation(c *fiber.Ctx) error {
	claims, err := h.adminClaims(c)
	if err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}
	id, err := operationID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid operation id")
	}

	var input struct {
		RejectionReason string `json:"rejection_reason"`
		AdminNotes      string `json:"admin_notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	op, err := h.ledgerService.RejectOperation(c.Context(), id, claims.UserID, input.RejectionReason, input.AdminNotes)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"operation": op,
	})
}

func (h *AdminHandler) AttachWithdrawalProof(c *fiber.Ctx) error {
	claims, err := h.adminClaims(c)
	if err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}
	id, err := operationID(c)
	if err != nil {
		return utils.BadRequest(c, "Invalid operation id")
	}

	var input struct {
		AdminProofURL string `json:"admin_proof_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	op, err := h.ledgerService.AttachWithdrawalProof(c.Context(), id, claims.UserID, input.AdminProofURL)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"operation": op,
	})
}

func (h *AdminHandler) AdjustBalance(c *fiber.Ctx) error {
	claims, err := h.adminClaims(c)
	if err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}

	var input struct {
		UserID uint            `json:"user_id"`
		Type   string          `json:"type"`
		Amount decimal.Decimal `json:"amount"`
		Reason string          `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	result, err := h.ledgerService.AdjustBalance(c.Context(), ledger.AdjustmentRequest{
		TargetUserID: input.UserID,
		AdminID:      claims.UserID,
		Type:         ledger.AdjustmentType(input.Type),
		Amount:       input.Amount,
		Reason:       input.Reason,
	})
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, result)
}

func (h *AdminHandler) ReconcileWallet(c *fiber.Ctx) error {
	if _, err := h.adminClaims(c); err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}

	userID, err := strconv.ParseUint(c.Params("userID"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}

	report, err := h.ledgerService.Reconcile(c.Context(), uint(userID))
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.Success(c, fiber.Map{
		"reconciliation": report,
	})
}

func (h *AdminHandler) GetLimitSetting(c *fiber.Ctx) error {
	if _, err := h.adminClaims(c); err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}

	key := c.Params("key")
	value, err := h.limitsService.Get(c.Context(), key)
	if err != nil {
		return utils.NotFound(c, "Setting not found")
	}

	return utils.Success(c, fiber.Map{
		"key":   key,
		"value": value,
	})
}

func (h *AdminHandler) UpdateLimitSetting(c *fiber.Ctx) error {
	if _, err := h.adminClaims(c); err != nil {
		return utils.Forbidden(c, "Access denied. Admin privileges required.")
	}

	key := c.Params("key")
	var input struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.limitsService.Set(c.Context(), key, input.Value); err != nil {
		return utils.BadRequest(c, "Setting value must be numeric")
	}

	return utils.Success(c, fiber.Map{
		"key":   key,
		"value": input.Value,
	})
}
