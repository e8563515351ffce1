package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("mime", "", "filter by mime type")
	listCmd.Flags().Int("limit", 0, "maximum number of results (1-1000)")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your files",
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.Token == "" {
			fmt.Println("Not logged in. Run 'privafile login' first.")
			return
		}

		mimeFilter, _ := cmd.Flags().GetString("mime")
		limit, _ := cmd.Flags().GetInt("limit")

		api := NewAPI(cfg.ServerURL, cfg.Token)
		files, err := api.List(mimeFilter, limit)
		if err != nil {
			fmt.Println("Listing failed:", err)
			return
		}

		if len(files) == 0 {
			fmt.Println("No files found.")
			return
		}
		for _, f := range files {
			fmt.Printf("%s  %-30s  %s\n", f.ID, f.Mime, f.Hash)
		}
	},
}
