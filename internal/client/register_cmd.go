package client

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register <username> <password>",
	Short: "Create an account on the server",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		api := NewAPI(cfg.ServerURL, "")
		token, err := api.Register(args[0], args[1])
		if err != nil {
			fmt.Println("Registration failed:", err)
			return
		}

		cfg.Username = args[0]
		cfg.Token = token
		if err := saveConfigGlobal(); err != nil {
			fmt.Println("Warning: failed to save config:", err)
		}
		fmt.Println("Registered and logged in as", args[0])
	},
}
