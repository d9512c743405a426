package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"expirygenie/domain"
	"expirygenie/internal/api/presenters"
	"expirygenie/pkg/scan"
)

type (
	ScanHandler interface {
		ProcessVoiceText(c *fiber.Ctx) error
		UploadReceipt(c *fiber.Ctx) error
		GetReceiptScan(c *fiber.Ctx) error
		SaveScannedItems(c *fiber.Ctx) error
		AnalyzeFoodPhoto(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
		validator   *validator.Validate
	}
)

func NewScanHandler(scanService scan.ScanService, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanService: scanService,
		validator:   validator,
	}
}

func (h *scanHandler) ProcessVoiceText(c *fiber.Ctx) error {
	req := new(domain.ProcessVoiceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessVoice, err)
	}

	res, err := h.scanService.ProcessVoiceText(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessVoice, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessProcessVoice)
}

func (h *scanHandler) UploadReceipt(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UploadReceiptRequest)

	file, err := c.FormFile("receipt_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.ReceiptImage = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	res, err := h.scanService.UploadReceipt(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusAccepted, domain.MessageSuccessUploadReceipt)
}

func (h *scanHandler) GetReceiptScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")

	res, err := h.scanService.GetReceiptScan(c.Context(), scanID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReceiptScan) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetReceiptScan, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceiptScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceiptScan)
}

func (h *scanHandler) SaveScannedItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SaveScannedItemsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveScannedItems, err)
	}

	res, err := h.scanService.SaveScannedItems(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveScannedItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveScannedItems)
}

func (h *scanHandler) AnalyzeFoodPhoto(c *fiber.Ctx) error {
	req := new(domain.AnalyzeFoodPhotoRequest)

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Image = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzePhoto, err)
	}

	res, err := h.scanService.AnalyzeFoodPhoto(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzePhoto, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalyzePhoto)
}
