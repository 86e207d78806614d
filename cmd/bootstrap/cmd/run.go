package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	nodecmd "github.com/onflow/flow-bootstrap/cmd"
	"github.com/onflow/flow-bootstrap/cmd/bootstrap/command"
	"github.com/onflow/flow-bootstrap/module/keys"
)

func newRunCmd(log func() zerolog.Logger, root *rootFlags) *cobra.Command {
	var (
		flagNodeConfig        string
		flagDBPath            string
		flagPublicAPIAddress  string
		flagPrivateAPIAddress string
		flagConsensusKeyPass  string
		flagServiceKeyPass    string
		flagDryRun            bool
		flagProfile           profileFlags
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the node with the given node config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			consensusPass, err := parsePasswordFlag(flagConsensusKeyPass, keys.EnvConsensusPassword)
			if err != nil {
				return err
			}
			servicePass, err := parsePasswordFlag(flagServiceKeyPass, keys.EnvServicePassword)
			if err != nil {
				return err
			}

			result, err := command.Execute(cmd.Context(), log(), command.Run{
				NodeConfigPath:    flagNodeConfig,
				DBPath:            flagDBPath,
				PublicAPIAddress:  flagPublicAPIAddress,
				PrivateAPIAddress: flagPrivateAPIAddress,
				ConsensusKeyPass:  consensusPass,
				ServiceKeyPass:    servicePass,
			})
			if err != nil {
				return err
			}
			return startNode(cmd, log(), result, root, flagDryRun, &flagProfile)
		},
	}

	cmd.Flags().StringVarP(&flagNodeConfig, "node-config", "c", "", "path to the node config")
	_ = cmd.MarkFlagRequired("node-config")
	cmd.Flags().StringVarP(&flagDBPath, "db-path", "d", "", "path to the node storage directory")
	_ = cmd.MarkFlagRequired("db-path")
	cmd.Flags().StringVar(&flagPublicAPIAddress, "public-api-address", "", "overrides the public API address of the node config")
	cmd.Flags().StringVar(&flagPrivateAPIAddress, "private-api-address", "", "overrides the private API address of the node config")
	cmd.Flags().StringVar(&flagConsensusKeyPass, "consensus-key-pass", "",
		fmt.Sprintf(passwordSourceUsage, "consensus", keys.EnvConsensusPassword))
	cmd.Flags().StringVar(&flagServiceKeyPass, "service-key-pass", "",
		fmt.Sprintf(passwordSourceUsage, "service", keys.EnvServicePassword))
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "load the node config and keys, print the result and exit")
	flagProfile.register(cmd)

	return cmd
}

// startNode hands a run result to the node runtime, which blocks until the
// node is stopped.
func startNode(cmd *cobra.Command, log zerolog.Logger, result command.Result, root *rootFlags, dryRun bool, prof *profileFlags) error {
	run, ok := result.(command.RunResult)
	if !ok {
		return fmt.Errorf("unexpected result %T", result)
	}
	if dryRun {
		return printResult(cmd.OutOrStdout(), run, root.json)
	}

	stop, err := prof.start(log)
	if err != nil {
		return err
	}
	defer stop()

	return nodecmd.NewNode(log, run.NodeRunConfig).Run(cmd.Context())
}
