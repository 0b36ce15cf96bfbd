package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vendralabs/vendra/app/store"
	"github.com/vendralabs/vendra/config"
	"github.com/vendralabs/vendra/pkg/database"
	"github.com/vendralabs/vendra/pkg/logger"
)

type seedProduct struct {
	name     string
	quantity int
	price    float64
}

var demoProducts = []seedProduct{
	{"Wireless Mouse", 40, 24.99},
	{"Mechanical Keyboard", 25, 89.00},
	{"27\" Monitor", 12, 229.50},
	{"USB-C Hub", 60, 34.95},
	{"Laptop Stand", 18, 42.00},
}

// seed fills the SQL store with a demo catalogue. The memory store lives
// and dies with one process, so seeding it from a separate command is
// pointless.
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo products into the SQL store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}

			driver := config.StoreDriver()
			if driver == "" || driver == "memory" {
				return fmt.Errorf("seed requires a SQL store; set STORE_DRIVER (got %q)", driver)
			}

			if err := database.Connect(driver, config.DatabaseDSN()); err != nil {
				return err
			}
			st, err := store.NewGormStore(database.DB)
			if err != nil {
				return err
			}

			for _, sp := range demoProducts {
				p, err := st.AddProduct(sp.name, sp.quantity, sp.price)
				if err != nil {
					return fmt.Errorf("seed %q: %w", sp.name, err)
				}
				logger.Info("seeded", "id", p.ID, "name", p.Name)
			}
			return nil
		},
	}
}
