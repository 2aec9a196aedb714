package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-catalog-sync/pkg/di"
	"github.com/goliatone/go-catalog-sync/pkg/testsupport"
)

var seedCmd = &cobra.Command{
	Use:     "seed",
	Short:   "Seed the catalog with sample categories and items",
	Long:    `Seed the configured store with a sample coffee-shop catalog. Use the redis engine to seed a store the server can read; the memory engine only lives for the duration of this command.`,
	PreRunE: bindContainerFlags,
	RunE:    runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	container, err := buildContainer(cmd.Context())
	if err != nil {
		return err
	}
	defer container.Close()

	log := container.Logger()
	if strings.EqualFold(container.Config().Engine, di.EngineMemory) {
		log.Warnf("seeding the memory engine; data is discarded when this command exits")
	}

	categories, items, err := testsupport.Seed(cmd.Context(), container.Catalog())
	if err != nil {
		return err
	}

	log.Infof("seeded %d categories and %d items", categories, items)
	return nil
}
