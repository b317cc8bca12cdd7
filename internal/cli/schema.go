package cli

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/rcliao/agent-pet/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the stored pet document",
		Run:   runSchema,
	}

	RootCmd.AddCommand(cmd)
}

func runSchema(cmd *cobra.Command, args []string) {
	b, err := stateSchema()
	if err != nil {
		exitErr("schema", err)
	}
	fmt.Println(string(b))
}

func stateSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&model.PetState{})
	schema.Title = "agent-pet state"
	return schema.MarshalJSON()
}
