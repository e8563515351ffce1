package client

import (
	"fmt"
	"mime"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().String("mime", "", "mime type (default guessed from extension)")
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a file in chunks",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.Token == "" {
			fmt.Println("Not logged in. Run 'privafile login' first.")
			return
		}

		mimeType, _ := cmd.Flags().GetString("mime")
		if mimeType == "" {
			mimeType = mime.TypeByExtension(filepath.Ext(args[0]))
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}
		}

		fileID := uuid.NewString()
		api := NewAPI(cfg.ServerURL, cfg.Token)
		hash, err := api.Upload(fileID, args[0], mimeType)
		if err != nil {
			fmt.Println("Upload failed:", err)
			return
		}

		fmt.Println("Uploaded", args[0])
		fmt.Println("  id:  ", fileID)
		fmt.Println("  hash:", hash)
	},
}
