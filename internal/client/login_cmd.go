package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(loginCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Authenticate with the server",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		api := NewAPI(cfg.ServerURL, "")
		token, err := api.Login(args[0], args[1])
		if err != nil {
			fmt.Println("Login failed:", err)
			return
		}

		cfg.Username = args[0]
		cfg.Token = token
		if err := saveConfigGlobal(); err != nil {
			fmt.Println("Warning: failed to save config:", err)
		}
		fmt.Println("Logged in as", args[0])
	},
}
