package cmd

import (
	"fmt"

	"github.com/moneta-finance/moneta/internal/config"
	"github.com/moneta-finance/moneta/internal/database"
	"github.com/spf13/cobra"
)

var dbStatsCmd = &cobra.Command{
	Use:   "db-stats",
	Short: "Show database statistics",
	Long:  `Display the number of registered users and stored assets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.New(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close() //nolint: errcheck

		stats, err := db.GetStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get database stats: %w", err)
		}

		fmt.Println("Database Statistics:")
		fmt.Printf("Database: %s\n", cfg.Database.Path)
		fmt.Printf("Users: %d\n", stats.Users)
		fmt.Printf("Assets: %d\n", stats.Assets)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbStatsCmd)
}
