package cli

import (
	"fmt"

	"github.com/eleven-am/listkeeper/internal/aggregate"
	"github.com/eleven-am/listkeeper/internal/domain"
	"github.com/eleven-am/listkeeper/internal/logger"
	"github.com/eleven-am/listkeeper/internal/seed"
	"github.com/eleven-am/listkeeper/internal/service"
	"github.com/eleven-am/listkeeper/internal/store"
	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset the database and load demo data",
		Long: `Deletes every list item, list, item and user, then recreates them from
the fixture file (or the built-in fixtures). Refuses to run when the
environment is production.`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	log := logger.CLI()

	if appConfig.IsProduction() {
		return domain.Denied("seed", "seeding is not allowed in production")
	}

	seedCfg, err := appConfig.SeedConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	db, err := connect(ctx, databaseURL, appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	st, err := store.New(db, logger.DB())
	if err != nil {
		return err
	}

	svc := service.New(st, service.Config{BcryptCost: appConfig.Security.BcryptCost}, logger.Service())
	orchestrator, err := seed.New(seedCfg, seed.Dependencies{
		Users:     svc.Users,
		Items:     svc.Items,
		Lists:     svc.Lists,
		ListItems: svc.ListItems,
		Clearer:   st,
		Logger:    logger.Seed(),
	})
	if err != nil {
		return err
	}

	result, err := orchestrator.Execute(ctx)
	if err != nil {
		log.WithError(err).Error("seed failed; rerun seed to start over from a clean state")
		return err
	}

	totals, err := aggregate.NewCounter(st).All(ctx)
	if err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Seed completed\n")
	fmt.Fprintf(out, "  users:      %d created (%d in table)\n", result.Users, totals.Users)
	fmt.Fprintf(out, "  items:      %d created (%d in table)\n", result.Items, totals.Items)
	fmt.Fprintf(out, "  lists:      %d created (%d in table)\n", result.Lists, totals.Lists)
	fmt.Fprintf(out, "  list items: %d created (%d in table)\n", result.ListItems, totals.ListItems)
	return nil
}
