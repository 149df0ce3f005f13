package repository

import "ricemill/models"

// LedgerRepository is the authoritative signed inventory per variety.
// Entries are only ever appended inside bill/batch transactions or wiped
// and regenerated by Rebuild.
type LedgerRepository interface {
	CurrentStock(variety string) (models.StockLevel, error)
	AllStockLevels() ([]models.StockLevel, error)
	Entries(variety string) ([]models.StockLedgerEntry, error)

	// Rebuild wipes the ledger and replays every purchase, sale, and
	// processing item from their stored historical rows. Idempotent; runs
	// at startup before any mutating operation is accepted.
	Rebuild() error
}
