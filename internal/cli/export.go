package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the chat transcript as JSON",
		Long:  "Write the chat transcript as an indented JSON array of {role, content}. Writes to stdout without a file.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	t := openTranscript()

	if len(args) == 0 {
		if err := t.Export(os.Stdout); err != nil {
			exitErr("export", err)
		}
		return
	}

	f, err := os.Create(args[0])
	if err != nil {
		exitErr("export", err)
	}
	if err := t.Export(f); err != nil {
		f.Close()
		exitErr("export", err)
	}
	if err := f.Close(); err != nil {
		exitErr("export", err)
	}
	fmt.Printf(`{"ok":true,"path":%q}`+"\n", args[0])
}
