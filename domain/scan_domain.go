package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessProcessVoice     = "voice input processed successfully"
	MessageSuccessUploadReceipt    = "receipt uploaded successfully"
	MessageSuccessGetReceiptScan   = "receipt scan retrieved successfully"
	MessageSuccessSaveScannedItems = "scanned items saved successfully"
	MessageSuccessAnalyzePhoto     = "food photo analyzed successfully"

	MessageFailedProcessVoice     = "failed to process voice input"
	MessageFailedUploadReceipt    = "failed to upload receipt"
	MessageFailedGetReceiptScan   = "failed to retrieve receipt scan"
	MessageFailedSaveScannedItems = "failed to save scanned items"
	MessageFailedAnalyzePhoto     = "failed to analyze food photo"

	ErrInvalidImageFormat     = errors.New("invalid image format")
	ErrInvalidReceiptScan     = errors.New("invalid receipt scan ID")
	ErrReceiptNotProcessed    = errors.New("receipt scan is not processed yet")
	ErrGeminiProcessingFailed = errors.New("gemini processing failed")
)

type (
	ProcessVoiceRequest struct {
		Text string `json:"text" validate:"required"`
	}

	// ExtractedItem is a candidate food item produced by an upstream
	// extractor (voice transcript, receipt OCR, photo or barcode).
	// How the name was obtained is irrelevant downstream.
	ExtractedItem struct {
		Name         string `json:"name"`
		Quantity     string `json:"quantity,omitempty"`
		Category     string `json:"category,omitempty"`
		PurchaseDate string `json:"purchase_date,omitempty"`
		ExpiryDate   string `json:"expiry_date,omitempty"`
	}

	ProcessVoiceResponse struct {
		Items []ExtractedItem `json:"items"`
	}

	UploadReceiptRequest struct {
		ReceiptImage *multipart.FileHeader `json:"receipt_image" form:"receipt_image" validate:"required"`
	}

	UploadReceiptResponse struct {
		ScanID   string `json:"scan_id"`
		ImageURL string `json:"image_url"`
		Status   string `json:"status"`
	}

	ReceiptScanResponse struct {
		ScanID   string          `json:"scan_id"`
		ImageURL string          `json:"image_url"`
		Status   string          `json:"status"`
		Items    []ExtractedItem `json:"items,omitempty"`
	}

	SaveScannedItemsRequest struct {
		ScanID string               `json:"scan_id" validate:"required,uuid"`
		Items  []AddFoodItemRequest `json:"items" validate:"required,dive"`
	}

	AnalyzeFoodPhotoRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	// FoodPhotoAnalysis mirrors the JSON the vision model returns.
	FoodPhotoAnalysis struct {
		FoodType     string  `json:"foodType"`
		EstimatedAge int     `json:"estimatedAgeDays"`
		Confidence   float64 `json:"confidenceScore"`
	}

	AnalyzeFoodPhotoResponse struct {
		FoodType        string  `json:"food_type"`
		EstimatedAge    int     `json:"estimated_age_days"`
		EstimatedExpiry string  `json:"estimated_expiry"`
		Confidence      float64 `json:"confidence"`
	}
)
