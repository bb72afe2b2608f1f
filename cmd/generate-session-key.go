package cmd

import (
	"fmt"

	"github.com/moneta-finance/moneta/internal/config"
	"github.com/spf13/cobra"
)

var generateSessionKeyCmd = &cobra.Command{
	Use:   "generate-session-key",
	Short: "Generate a key for signing session cookies",
	Long: `Generate a random key for signing session cookies.

Without a configured key a new one is generated on every start and all users are logged out on restart.
Add the generated key to your configuration file as session_key.`,
	RunE: generateSessionKey,
}

func init() {
	rootCmd.AddCommand(generateSessionKeyCmd)
}

func generateSessionKey(cmd *cobra.Command, args []string) error {
	key, err := config.GenerateSessionKey()
	if err != nil {
		return err
	}

	fmt.Println("Generated session key:")
	fmt.Println()
	fmt.Println(key)
	fmt.Println()
	fmt.Println("Add it to your configuration file:")
	fmt.Println()
	fmt.Printf("session_key: \"%s\"\n", key)
	fmt.Println()
	fmt.Println("Note: Keep the key secret, anyone who knows it can forge sessions!")
	return nil
}
