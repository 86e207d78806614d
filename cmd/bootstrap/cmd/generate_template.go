package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-bootstrap/cmd/bootstrap/command"
)

func newGenerateTemplateCmd(log func() zerolog.Logger, root *rootFlags) *cobra.Command {
	var (
		flagValidatorsCount int
		flagConsensusConfig string
	)

	cmd := &cobra.Command{
		Use:   "generate-template <template-path>",
		Short: "Generate the template shared by all nodes of the network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := command.Execute(cmd.Context(), log(), command.GenerateTemplate{
				OutputPath:          args[0],
				ValidatorsCount:     flagValidatorsCount,
				ConsensusConfigPath: flagConsensusConfig,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, root.json)
		},
	}

	cmd.Flags().IntVar(&flagValidatorsCount, "validators-count", 0, "number of validators of the network")
	_ = cmd.MarkFlagRequired("validators-count")
	cmd.Flags().StringVar(&flagConsensusConfig, "consensus-config", "",
		"path to a TOML file with consensus parameters, defaults are used for missing parameters")

	return cmd
}
