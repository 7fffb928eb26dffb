package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"bootstore-backoffice/internal/catalog"
	"bootstore-backoffice/internal/config"
	"bootstore-backoffice/internal/db"
	"bootstore-backoffice/internal/media"
	"bootstore-backoffice/internal/orders"
	"bootstore-backoffice/internal/policy"
	"bootstore-backoffice/internal/products"
	"bootstore-backoffice/internal/store"
	"bootstore-backoffice/session"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB migrations and seed, then exit")
	loginFlag       = flag.String("login", "", "Act as this user; empty means guest")
	passwordFlag    = flag.String("password", "", "Password for -login")
	supplierFlag    = flag.String("supplier", catalog.AllSuppliers, "Filter catalog by supplier name")
	searchFlag      = flag.String("search", "", "Search catalog by name or description")
	ordersFlag      = flag.Bool("orders", false, "List orders instead of the catalog")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if *migrateOnlyFlag {
		log.Println("migrations completed; exiting as requested")
		return
	}
	if err := db.Seed(conn); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	if *seedOnlyFlag {
		log.Println("seed completed; exiting as requested")
		return
	}

	ctx := context.Background()
	if *loginFlag != "" {
		sess, err := session.Authenticate(conn, *loginFlag, *passwordFlag)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		ctx = session.WithSession(ctx, sess)
		log.Printf("Acting as %s (%s)", sess.FullName, sess.RoleName)
	}

	st := store.New(conn)
	access := policy.NewAccess()
	photos := media.NewDirStore(cfg.MediaRoot)

	if *ordersFlag {
		listOrders(ctx, orders.NewService(st, access))
		return
	}
	browseCatalog(ctx, products.NewService(st, access, catalog.NewEngine(photos), photos))
}

func browseCatalog(ctx context.Context, svc *products.Service) {
	views, err := svc.Browse(ctx, catalog.QueryOptions{
		Supplier: *supplierFlag,
		Search:   *searchFlag,
	})
	if err != nil {
		log.Fatalf("Failed to browse catalog: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ARTICLE\tNAME\tSUPPLIER\tPRICE\tFINAL\tSTOCK")
	for _, v := range views {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%d\n",
			v.Article, v.Name, v.SupplierName, v.Price, v.FinalPrice, v.QuantityInStock)
	}
	w.Flush()
}

func listOrders(ctx context.Context, svc *orders.Service) {
	views, err := svc.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list orders: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tARTICLE\tSTATUS\tPICKUP\tORDERED\tDELIVERY")
	for _, v := range views {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.ReceiptCode, v.Article, v.StatusName, v.PickupAddress,
			v.OrderDate.Format("2006-01-02"), v.DeliveryDate.Format("2006-01-02"))
	}
	w.Flush()
}
