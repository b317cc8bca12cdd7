package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/agent-pet/internal/model"
)

func init() {
	var labels []string
	for _, m := range model.Moods {
		labels = append(labels, string(m))
	}

	cmd := &cobra.Command{
		Use:       "mood <mood>",
		Short:     "Put the pet in a mood",
		Long:      "Set the pet's mood directly, by id (happy, sad, ...) or Chinese label (开心, 难过, ...). Counts as an interaction.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: labels,
		Run:       runMood,
	}

	RootCmd.AddCommand(cmd)
}

func runMood(cmd *cobra.Command, args []string) {
	m, err := model.ParseMood(args[0])
	if err != nil {
		exitErr("mood", err)
	}

	s := openSession(cmd.Context())
	defer s.Close()

	if err := s.pet.ApplyMood(cmd.Context(), m); err != nil {
		exitErr("mood", err)
	}
	st := s.pet.Snapshot()
	msg := fmt.Sprintf("%s现在是【%s】心情～", st.Name, m.Label())
	s.record(model.Turn{Role: model.RolePet, Content: msg})

	if jsonOutput() {
		printJSON(map[string]any{
			"message": msg,
			"state":   st,
		})
		return
	}
	fmt.Println(msg)
}
