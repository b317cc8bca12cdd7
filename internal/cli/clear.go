package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the chat transcript",
		Long:  "Empty the chat transcript. The pet keeps its mood, level and memories.",
		Run:   runClear,
	}

	RootCmd.AddCommand(cmd)
}

func runClear(cmd *cobra.Command, args []string) {
	if err := openTranscript().Clear(); err != nil {
		exitErr("clear", err)
	}
	fmt.Println(`{"ok":true}`)
}
