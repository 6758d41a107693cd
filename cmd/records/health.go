package records

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/libremedic_admin/internal/screen"
)

func NewHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the clinical records backend answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cmd)
			if err != nil {
				return err
			}

			env := c.Health(cmd.Context())
			if !env.Success {
				return fmt.Errorf("%s: %s", c.BaseURL(), screen.RequestMessage(env.Error, "backend no disponible"))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s OK\n", c.BaseURL())
			return nil
		},
	}
}
