package routes

import (
	"net/http"

	"ricemill/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	jwtSecret string,
	userHandler *handlers.UserHandler,
	masterHandler *handlers.MasterHandler,
	billHandler *handlers.BillHandler,
	salesHandler *handlers.SalesHandler,
	processingHandler *handlers.ProcessingHandler,
	inventoryHandler *handlers.InventoryHandler,
	reportHandler *handlers.ReportHandler,
) {
	mount := func(pattern string, h http.HandlerFunc) {
		http.Handle(pattern, withCORS(http.HandlerFunc(handlers.RecoverWrapper(h))))
	}
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return handlers.RequireAuth(jwtSecret, h)
	}

	// User routes
	mount("/signup", userHandler.Signup)
	mount("/login", userHandler.Login)

	// Master data
	mount("/parties", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Query().Get("id") != "" {
				masterHandler.GetParty(w, r)
			} else {
				masterHandler.GetAllParties(w, r)
			}
		case http.MethodPost:
			auth(masterHandler.CreateParty)(w, r)
		case http.MethodPut:
			auth(masterHandler.UpdateParty)(w, r)
		case http.MethodDelete:
			auth(masterHandler.DeleteParty)(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mount("/varieties", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			masterHandler.GetAllVarieties(w, r)
		case http.MethodPost:
			auth(masterHandler.CreateVariety)(w, r)
		case http.MethodPut:
			auth(masterHandler.UpdateVariety)(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// Purchase bills
	mount("/purchase-bills", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			billHandler.ListBills(w, r)
		case http.MethodPost:
			auth(billHandler.CreateBill)(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mount("/purchase-bills/next-number", billHandler.NextNumber)
	mount("/purchase-bills/", func(w http.ResponseWriter, r *http.Request) {
		billNo := r.URL.Path[len("/purchase-bills/"):]
		if billNo == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			billHandler.GetBill(w, r, billNo)
		case http.MethodPut:
			auth(func(w http.ResponseWriter, r *http.Request) {
				billHandler.ReplaceBill(w, r, billNo)
			})(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	// Sales bills
	mount("/sales-bills", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			salesHandler.ListBills(w, r)
		case http.MethodPost:
			auth(salesHandler.CreateBill)(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mount("/sales-bills/next-number", salesHandler.NextNumber)
	mount("/sales-bills/", func(w http.ResponseWriter, r *http.Request) {
		billNo := r.URL.Path[len("/sales-bills/"):]
		if billNo == "" || r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		salesHandler.GetBill(w, r, billNo)
	})

	// Processing batches. Batch numbers carry a slash ("7/25-26"), so item
	// lookups take the number as a query parameter.
	mount("/processing-batches", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			processingHandler.ListBatches(w, r)
		case http.MethodPost:
			auth(processingHandler.CreateBatch)(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mount("/processing-batches/next-number", processingHandler.NextNumber)
	mount("/processing-batches/items", func(w http.ResponseWriter, r *http.Request) {
		batchNo := r.URL.Query().Get("batch_no")
		if batchNo == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		processingHandler.GetBatchItems(w, r, batchNo)
	})

	// Inventory
	mount("/inventory/stock", inventoryHandler.GetAllStock)
	mount("/inventory/stock/", func(w http.ResponseWriter, r *http.Request) {
		variety := r.URL.Path[len("/inventory/stock/"):]
		if variety == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		inventoryHandler.GetStock(w, r, variety)
	})
	mount("/inventory/ledger", inventoryHandler.GetLedger)
	mount("/inventory/rebuild", auth(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		inventoryHandler.Rebuild(w, r)
	}))

	// Reports
	mount("/reports/purchase-register", auth(reportHandler.PurchaseRegister))
	mount("/reports/inventory-summary", auth(reportHandler.InventorySummary))
	mount("/reports/processing-varieties", auth(reportHandler.ProcessingVarieties))
	mount("/reports/price-history", auth(reportHandler.PriceHistory))
	mount("/reports/latest-prices", auth(reportHandler.LatestPrices))
	mount("/reports/moisture-insights", auth(reportHandler.MoistureInsights))
	mount("/reports/supplier-rankings", auth(reportHandler.SupplierRankings))
	mount("/reports/seasonal-buying", auth(reportHandler.SeasonalBuying))
}
