package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-bootstrap/admin"
	"github.com/onflow/flow-bootstrap/cmd/bootstrap/command"
)

func newMaintenanceCmd(log func() zerolog.Logger, root *rootFlags) *cobra.Command {
	var (
		flagNodeConfig string
		flagDBPath     string
		flagAction     string
	)

	actions := make([]string, 0, len(admin.Actions()))
	for _, action := range admin.Actions() {
		actions = append(actions, action.String())
	}

	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Perform a maintenance action on the storage of a stopped node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			action, err := admin.ParseAction(flagAction)
			if err != nil {
				return err
			}

			result, err := command.Execute(cmd.Context(), log(), command.Maintenance{
				NodeConfigPath: flagNodeConfig,
				DBPath:         flagDBPath,
				Action:         action,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, root.json)
		},
	}

	cmd.Flags().StringVarP(&flagNodeConfig, "node-config", "c", "", "path to the node config")
	_ = cmd.MarkFlagRequired("node-config")
	cmd.Flags().StringVarP(&flagDBPath, "db-path", "d", "", "path to the node storage directory")
	_ = cmd.MarkFlagRequired("db-path")
	cmd.Flags().StringVar(&flagAction, "action", "", fmt.Sprintf("action to perform, one of: %s", strings.Join(actions, ", ")))
	_ = cmd.MarkFlagRequired("action")

	return cmd
}
