package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(deleteCmd)
}

var deleteCmd = &cobra.Command{
	Use:   "delete <file-id>",
	Short: "Delete a file from the server",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.Token == "" {
			fmt.Println("Not logged in. Run 'privafile login' first.")
			return
		}

		api := NewAPI(cfg.ServerURL, cfg.Token)
		if err := api.Delete(args[0]); err != nil {
			fmt.Println("Delete failed:", err)
			return
		}
		fmt.Println("Deleted", args[0])
	},
}
