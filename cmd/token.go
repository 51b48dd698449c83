package cmd

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user_id>",
	Short: "issue a session token of the user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := args[0]
		if !govalidator.IsPrintableASCII(userID) {
			return fmt.Errorf("invalid user id %q", userID)
		}

		token, err := provideSession().Issue(cmd.Context(), userID)
		if err != nil {
			return err
		}

		cmd.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
