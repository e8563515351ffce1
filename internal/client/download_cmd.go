package client

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(downloadCmd)
	downloadCmd.Flags().StringP("output", "o", "", "output file path (default the file id)")
}

var downloadCmd = &cobra.Command{
	Use:   "download <file-id>",
	Short: "Download a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.Token == "" {
			fmt.Println("Not logged in. Run 'privafile login' first.")
			return
		}

		api := NewAPI(cfg.ServerURL, cfg.Token)
		data, mimeType, err := api.Download(args[0])
		if err != nil {
			fmt.Println("Download failed:", err)
			return
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = args[0]
		}

		if err := os.WriteFile(output, data, 0600); err != nil {
			fmt.Println("Error writing file:", err)
			return
		}
		fmt.Printf("Downloaded %s (%d bytes, %s) to %s\n", args[0], len(data), mimeType, output)
	},
}
