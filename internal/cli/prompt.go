package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-pet/internal/pet"
)

func init() {
	cmd := &cobra.Command{
		Use:   "prompt [message]",
		Short: "Print the system prompt a chat turn would send",
		Long: `Print the system prompt without calling the model or changing the pet.
With a message, the prompt reflects the mood that message would put the pet in,
and includes search results if the message asks for them.`,
		Run: runPrompt,
	}

	RootCmd.AddCommand(cmd)
}

func runPrompt(cmd *cobra.Command, args []string) {
	s := openSession(cmd.Context())
	defer s.Close()

	text := strings.Join(args, " ")
	var prompt string
	if strings.TrimSpace(text) == "" {
		prompt = s.pet.Prompt(time.Now().Format(pet.DateLayout), "")
	} else {
		prompt = s.pet.Preview(cmd.Context(), text, newSearcher()).Prompt
	}

	if jsonOutput() {
		printJSON(map[string]string{"prompt": prompt})
		return
	}
	fmt.Print(prompt)
}
