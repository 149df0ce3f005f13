package main

import (
	"fmt"
	"log"
	"net/http"

	"ricemill/config"
	"ricemill/db"
	"ricemill/db/mongo"
	"ricemill/db/postgres"
	"ricemill/handlers"
	"ricemill/repository"
	"ricemill/routes"
)

func main() {
	// Load config from .env or environment
	cfg := config.LoadConfig()

	var (
		partyRepo      repository.PartyRepository
		varietyRepo    repository.VarietyRepository
		purchaseRepo   repository.PurchaseBillRepository
		salesRepo      repository.SalesBillRepository
		ledgerRepo     repository.LedgerRepository
		processingRepo repository.ProcessingRepository
		userRepo       repository.UserRepository
		reportRepo     repository.ReportRepository
	)

	switch cfg.DBType {
	case string(db.Postgres):
		// Migrations only apply to the relational backend
		db.RunMigrations()

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		partyRepo = repository.NewPostgresPartyRepo(pg.Conn)
		varietyRepo = repository.NewPostgresVarietyRepo(pg.Conn)
		purchaseRepo = repository.NewPostgresPurchaseBillRepo(pg.Conn)
		salesRepo = repository.NewPostgresSalesBillRepo(pg.Conn)
		ledgerRepo = repository.NewPostgresLedgerRepo(pg.Conn)
		processingRepo = repository.NewPostgresProcessingRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		reportRepo = repository.NewPostgresReportRepo(pg.Conn)

	case string(db.Mongo):
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		partyRepo = repository.NewMongoPartyRepo(mg.Client)
		varietyRepo = repository.NewMongoVarietyRepo(mg.Client)
		purchaseRepo = repository.NewMongoPurchaseBillRepo(mg.Client)
		salesRepo = repository.NewMongoSalesBillRepo(mg.Client)
		ledgerRepo = repository.NewMongoLedgerRepo(mg.Client)
		processingRepo = repository.NewMongoProcessingRepo(mg.Client)
		userRepo = repository.NewMongoUserRepo(mg.Client)
		reportRepo = repository.NewMongoReportRepo(mg.Client)

	default:
		panic("DB_TYPE not supported")
	}

	// The ledger is derived state. Rebuild it from the stored bills and
	// batches before accepting any traffic.
	log.Println("Rebuilding stock ledger...")
	if err := ledgerRepo.Rebuild(); err != nil {
		panic(err)
	}

	userHandler := &handlers.UserHandler{Repo: userRepo, JWTSecret: cfg.JWTSecret}
	masterHandler := &handlers.MasterHandler{Parties: partyRepo, Varieties: varietyRepo}
	billHandler := &handlers.BillHandler{Repo: purchaseRepo}
	salesHandler := &handlers.SalesHandler{Repo: salesRepo}
	processingHandler := &handlers.ProcessingHandler{Repo: processingRepo}
	inventoryHandler := &handlers.InventoryHandler{Repo: ledgerRepo}
	reportHandler := &handlers.ReportHandler{Repo: reportRepo}

	routes.SetupRoutes(cfg.JWTSecret,
		userHandler, masterHandler, billHandler, salesHandler,
		processingHandler, inventoryHandler, reportHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		panic(err)
	}
}
