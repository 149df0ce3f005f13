package repository

import (
	"time"

	"ricemill/models"
)

type ProcessingRepository interface {
	// CreateBatch validates stock, prices consumption at the pre-batch
	// average unit weight, and commits header, items, and ledger deductions
	// atomically. Batches cannot be edited afterwards.
	CreateBatch(date time.Time, items []models.BatchItemRequest) (*models.ProcessingBatch, error)
	NextBatchNo(date time.Time) (string, error)
	ListBatches(start, end string) ([]*models.ProcessingBatch, error)
	GetBatchItems(batchNo string) ([]models.ProcessingBatchItem, error)
}
