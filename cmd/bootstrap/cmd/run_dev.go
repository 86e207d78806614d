package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-bootstrap/cmd/bootstrap/command"
)

func newRunDevCmd(log func() zerolog.Logger, root *rootFlags) *cobra.Command {
	var (
		flagArtifactsDir string
		flagDryRun       bool
		flagProfile      profileFlags
	)

	cmd := &cobra.Command{
		Use:   "run-dev",
		Short: "Run a single-validator network with generated configs",
		Long: `Generate a template, keys and a node config for a single validator inside the
artifacts directory and run the node. Artifacts of a previous run are removed.
Keys are stored unprotected; use for development only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := command.Execute(cmd.Context(), log(), command.RunDev{
				ArtifactsDir: flagArtifactsDir,
			})
			if err != nil {
				return err
			}
			return startNode(cmd, log(), result, root, flagDryRun, &flagProfile)
		},
	}

	cmd.Flags().StringVarP(&flagArtifactsDir, "artifacts-dir", "a", "", "directory the configs and storage are generated in")
	_ = cmd.MarkFlagRequired("artifacts-dir")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "generate the configs, print the result and exit")
	flagProfile.register(cmd)

	return cmd
}
