package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expirygenie/domain"
	"expirygenie/entities"
	"expirygenie/internal/utils/gemini"
	"expirygenie/internal/utils/storage"
	"expirygenie/pkg/expiry"
	"expirygenie/pkg/food"
)

// ocrTimeout bounds the background Gemini call for a receipt scan.
const ocrTimeout = 2 * time.Minute

const voicePromptFormat = `Extract food items from this user voice input. For each item, return:
- name
- quantity
- category
- purchase_date: today unless the user says otherwise
- expiry_date: based on typical shelf life, "YYYY-MM-DD"
Respond as a JSON array only.
Current date: %s
Voice input: %s`

const receiptPrompt = `Extract food items from this receipt. For each item, return:
- name
- quantity
Ignore non-food lines (tax, totals, bags). Respond as a JSON array only.`

const photoPromptFormat = `Analyze the food in this photo. Return a JSON object with:
- foodType: what the food is
- estimatedAgeDays: how many days old it looks
- confidenceScore: 0.0 to 1.0
Current date: %s. Respond with the JSON object only.`

type (
	ScanService interface {
		ProcessVoiceText(ctx context.Context, req domain.ProcessVoiceRequest) (domain.ProcessVoiceResponse, error)
		UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error)
		GetReceiptScan(ctx context.Context, scanID, userID string) (domain.ReceiptScanResponse, error)
		SaveScannedItems(ctx context.Context, req domain.SaveScannedItemsRequest, userID string) ([]domain.FoodItemResponse, error)
		AnalyzeFoodPhoto(ctx context.Context, req domain.AnalyzeFoodPhotoRequest) (domain.AnalyzeFoodPhotoResponse, error)
	}

	scanService struct {
		scanRepository ScanRepository
		foodService    food.FoodService
		geminiClient   *gemini.Client
		awsS3          storage.AwsS3
		now            func() time.Time
	}
)

func NewScanService(scanRepository ScanRepository, foodService food.FoodService, geminiClient *gemini.Client, awsS3 storage.AwsS3) ScanService {
	return &scanService{
		scanRepository: scanRepository,
		foodService:    foodService,
		geminiClient:   geminiClient,
		awsS3:          awsS3,
		now:            time.Now,
	}
}

func (s *scanService) ProcessVoiceText(ctx context.Context, req domain.ProcessVoiceRequest) (domain.ProcessVoiceResponse, error) {
	today := expiry.Date(s.now()).Format("2006-01-02")
	prompt := fmt.Sprintf(voicePromptFormat, today, req.Text)

	responseText, err := s.geminiClient.GenerateFromText(ctx, prompt)
	if err != nil {
		return domain.ProcessVoiceResponse{}, domain.ErrGeminiProcessingFailed
	}

	items, err := parseExtractedItems(responseText)
	if err != nil {
		return domain.ProcessVoiceResponse{}, domain.ErrGeminiProcessingFailed
	}

	for i := range items {
		if items[i].Category == "" {
			items[i].Category = food.Categorize(items[i].Name)
		}
		if items[i].PurchaseDate == "" {
			items[i].PurchaseDate = today
		}
	}
	return domain.ProcessVoiceResponse{Items: items}, nil
}

func parseExtractedItems(responseText string) ([]domain.ExtractedItem, error) {
	var items []domain.ExtractedItem
	if err := json.Unmarshal([]byte(gemini.CleanJSON(responseText)), &items); err != nil {
		return nil, err
	}

	valid := items[:0]
	for _, item := range items {
		if strings.TrimSpace(item.Name) != "" {
			valid = append(valid, item)
		}
	}
	return valid, nil
}

func (s *scanService) UploadReceipt(ctx context.Context, req domain.UploadReceiptRequest, userID string) (domain.UploadReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.UploadReceiptResponse{}, domain.ErrParseUUID
	}

	scanID := uuid.New()
	objectKey, err := s.awsS3.UploadFile(scanID.String(), req.ReceiptImage, "receipts", storage.AllowImage...)
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	// Read the image up front; the multipart file is gone once the
	// request finishes and the OCR runs in the background.
	src, err := req.ReceiptImage.Open()
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	imageData, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return domain.UploadReceiptResponse{}, err
	}
	mimeType := req.ReceiptImage.Header.Get("Content-Type")

	receiptScan := &entities.ReceiptScan{
		ID:       scanID,
		UserID:   userUUID,
		ImageURL: s.awsS3.GetPublicLinkKey(objectKey),
		Status:   entities.ScanStatusPending,
	}
	if err := s.scanRepository.CreateReceiptScan(ctx, receiptScan); err != nil {
		return domain.UploadReceiptResponse{}, err
	}

	go s.runReceiptOCR(scanID.String(), mimeType, imageData)

	return domain.UploadReceiptResponse{
		ScanID:   receiptScan.ID.String(),
		ImageURL: receiptScan.ImageURL,
		Status:   receiptScan.Status,
	}, nil
}

func (s *scanService) runReceiptOCR(scanID, mimeType string, imageData []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), ocrTimeout)
	defer cancel()

	status := entities.ScanStatusProcessed
	var ocrResults string

	responseText, err := s.geminiClient.GenerateFromImage(ctx, receiptPrompt, mimeType, imageData)
	if err == nil {
		var items []domain.ExtractedItem
		items, err = parseExtractedItems(responseText)
		if err == nil {
			var encoded []byte
			encoded, err = json.Marshal(items)
			ocrResults = string(encoded)
		}
	}
	if err != nil {
		log.Printf("receipt scan %s: ocr failed: %v", scanID, err)
		status = entities.ScanStatusFailed
	}

	receiptScan, err := s.scanRepository.GetReceiptScanByID(ctx, scanID)
	if err != nil {
		log.Printf("receipt scan %s: reload failed: %v", scanID, err)
		return
	}
	receiptScan.Status = status
	receiptScan.OcrResults = ocrResults
	if err := s.scanRepository.UpdateReceiptScan(ctx, receiptScan); err != nil {
		log.Printf("receipt scan %s: update failed: %v", scanID, err)
	}
}

func (s *scanService) getOwnedScan(ctx context.Context, scanID, userID string) (*entities.ReceiptScan, error) {
	receiptScan, err := s.scanRepository.GetReceiptScanByID(ctx, scanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidReceiptScan
		}
		return nil, err
	}
	if receiptScan.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return receiptScan, nil
}

func (s *scanService) GetReceiptScan(ctx context.Context, scanID, userID string) (domain.ReceiptScanResponse, error) {
	receiptScan, err := s.getOwnedScan(ctx, scanID, userID)
	if err != nil {
		return domain.ReceiptScanResponse{}, err
	}

	response := domain.ReceiptScanResponse{
		ScanID:   receiptScan.ID.String(),
		ImageURL: receiptScan.ImageURL,
		Status:   receiptScan.Status,
	}
	if receiptScan.OcrResults != "" {
		if err := json.Unmarshal([]byte(receiptScan.OcrResults), &response.Items); err != nil {
			return domain.ReceiptScanResponse{}, err
		}
	}
	return response, nil
}

func (s *scanService) SaveScannedItems(ctx context.Context, req domain.SaveScannedItemsRequest, userID string) ([]domain.FoodItemResponse, error) {
	receiptScan, err := s.getOwnedScan(ctx, req.ScanID, userID)
	if err != nil {
		return nil, err
	}
	if receiptScan.Status != entities.ScanStatusProcessed {
		return nil, domain.ErrReceiptNotProcessed
	}

	saved := make([]domain.FoodItemResponse, 0, len(req.Items))
	for _, item := range req.Items {
		item.AddedMethod = entities.MethodReceipt
		item.ReceiptScanID = req.ScanID
		response, err := s.foodService.AddFoodItem(ctx, item, userID)
		if err != nil {
			return nil, err
		}
		saved = append(saved, response)
	}

	receiptScan.Status = entities.ScanStatusCompleted
	if err := s.scanRepository.UpdateReceiptScan(ctx, receiptScan); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *scanService) AnalyzeFoodPhoto(ctx context.Context, req domain.AnalyzeFoodPhotoRequest) (domain.AnalyzeFoodPhotoResponse, error) {
	src, err := req.Image.Open()
	if err != nil {
		return domain.AnalyzeFoodPhotoResponse{}, err
	}
	imageData, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return domain.AnalyzeFoodPhotoResponse{}, err
	}

	today := expiry.Date(s.now())
	prompt := fmt.Sprintf(photoPromptFormat, today.Format("2006-01-02"))

	responseText, err := s.geminiClient.GenerateFromImage(ctx, prompt, req.Image.Header.Get("Content-Type"), imageData)
	if err != nil {
		return domain.AnalyzeFoodPhotoResponse{}, domain.ErrGeminiProcessingFailed
	}

	var analysis domain.FoodPhotoAnalysis
	if err := json.Unmarshal([]byte(gemini.CleanJSON(responseText)), &analysis); err != nil {
		return domain.AnalyzeFoodPhotoResponse{}, domain.ErrGeminiProcessingFailed
	}

	// Remaining life is the food's shelf life minus how old it looks,
	// floored at zero so a stale item reads "expires today".
	remaining := expiry.ShelfLifeDays(analysis.FoodType) - analysis.EstimatedAge
	if remaining < 0 {
		remaining = 0
	}

	return domain.AnalyzeFoodPhotoResponse{
		FoodType:        analysis.FoodType,
		EstimatedAge:    analysis.EstimatedAge,
		EstimatedExpiry: today.AddDate(0, 0, remaining).Format("2006-01-02"),
		Confidence:      analysis.Confidence,
	}, nil
}
