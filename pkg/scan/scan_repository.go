package scan

import (
	"context"

	"gorm.io/gorm"

	"expirygenie/entities"
)

type (
	ScanRepository interface {
		CreateReceiptScan(ctx context.Context, scan *entities.ReceiptScan) error
		GetReceiptScanByID(ctx context.Context, id string) (*entities.ReceiptScan, error)
		UpdateReceiptScan(ctx context.Context, scan *entities.ReceiptScan) error
	}

	scanRepository struct {
		db *gorm.DB
	}
)

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) CreateReceiptScan(ctx context.Context, scan *entities.ReceiptScan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *scanRepository) GetReceiptScanByID(ctx context.Context, id string) (*entities.ReceiptScan, error) {
	var scan entities.ReceiptScan
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&scan).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *scanRepository) UpdateReceiptScan(ctx context.Context, scan *entities.ReceiptScan) error {
	return r.db.WithContext(ctx).Save(scan).Error
}
