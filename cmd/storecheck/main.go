package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"pedidos-tracker/internal/common"
	"pedidos-tracker/internal/repository"
)

// storecheck opens the configured store and reports what is in it. Useful
// for verifying a workbook or database before a batch run.
func main() {
	_ = godotenv.Load()
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Println("ERROR: invalid configuration:", err)
		log.Println("  set STORE_BACKEND to excel|sqlite|postgres, and")
		log.Println("  WORKBOOK_PATH (excel) or STORE_DSN (sqlite/postgres)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := repository.NewStore(cfg.Store, nil)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	if es, ok := store.(*repository.ExcelStore); ok {
		if err := es.Init(); err != nil {
			log.Fatalf("initializing workbook: %v", err)
		}
	}

	orders, err := store.ListOrders(ctx)
	if err != nil {
		log.Fatalf("store health: FAIL (%v)", err)
	}
	log.Println("store health: OK")

	nextID, err := store.NextOrderID(ctx)
	if err != nil {
		log.Fatalf("reading next order id: %v", err)
	}
	shifts, err := store.ListShifts(ctx)
	if err != nil {
		log.Fatalf("listing shifts: %v", err)
	}

	log.Printf("backend: %s", cfg.Store.Backend)
	log.Printf("orders recorded: %d (next id %d)", len(orders), nextID)
	log.Printf("shifts recorded: %d", len(shifts))
	for _, s := range shifts {
		log.Printf("- [%d] %s %s-%s", s.ID,
			s.Date.Format("02/01/2006"),
			s.Start.Format("15:04"),
			s.End.Format("15:04"))
	}
}
