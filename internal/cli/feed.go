package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-pet/internal/model"
	"github.com/rcliao/agent-pet/internal/pet"
)

func init() {
	cmd := &cobra.Command{
		Use:       "feed <food>",
		Short:     "Feed the pet",
		Long:      fmt.Sprintf("Feed the pet. Known foods: %s. Anything else is worth a little experience too.", strings.Join(pet.FoodNames, ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: pet.FoodNames,
		Run:       runFeed,
	}

	RootCmd.AddCommand(cmd)
}

func runFeed(cmd *cobra.Command, args []string) {
	s := openSession(cmd.Context())
	defer s.Close()

	msg, err := s.pet.Feed(cmd.Context(), args[0])
	if err != nil {
		exitErr("feed", err)
	}
	s.record(model.Turn{Role: model.RolePet, Content: msg})

	if jsonOutput() {
		printJSON(map[string]any{
			"message": msg,
			"state":   s.pet.Snapshot(),
		})
		return
	}
	fmt.Println(msg)
	fmt.Println(s.pet.Status())
}
