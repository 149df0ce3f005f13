package repository

import "ricemill/models"

// PurchaseBillRepository commits fully-derived purchase bills. The bill
// number is assigned inside the transaction at commit time, so an abandoned
// entry form never burns a number.
type PurchaseBillRepository interface {
	CreatePurchaseBill(partyName string, bill *models.PurchaseBill) (int64, error)
	ReplacePurchaseBill(billNo int64, partyName string, bill *models.PurchaseBill) error
	GetPurchaseBill(billNo int64) (*models.PurchaseBill, error)
	ListPurchaseBills(start, end string) ([]*models.PurchaseBill, error)
	NextBillNumber() (int64, error)
}

// SalesBillRepository commits sales bills after the stock check. Sales
// bills are immutable once committed.
type SalesBillRepository interface {
	CreateSalesBill(partyName string, bill *models.SalesBill) (int64, error)
	GetSalesBill(billNo int64) (*models.SalesBill, error)
	ListSalesBills(start, end string) ([]*models.SalesBill, error)
	NextBillNumber() (int64, error)
}
