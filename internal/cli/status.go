package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the pet's status",
		Run:   runStatus,
	}

	RootCmd.AddCommand(cmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	s := openSession(cmd.Context())
	defer s.Close()

	if jsonOutput() {
		printJSON(s.pet.Snapshot())
		return
	}
	fmt.Println(s.pet.Status())
}
