package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-bootstrap/cmd/bootstrap/command"
)

func newFinalizeCmd(log func() zerolog.Logger, root *rootFlags) *cobra.Command {
	var (
		flagPublicConfigs      []string
		flagPublicAPIAddress   string
		flagPrivateAPIAddress  string
		flagPublicAllowOrigin  string
		flagPrivateAllowOrigin string
	)

	cmd := &cobra.Command{
		Use:   "finalize <private-config-path> <output-path>",
		Short: "Merge the public configs of every node into the final node config",
		Long: `Merge the private config of this node with the public configs of every node of the
network, including this one, into the node config. The public configs must have
been generated from the same template.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := command.Execute(cmd.Context(), log(), command.Finalize{
				PrivateConfigPath:  args[0],
				OutputPath:         args[1],
				PublicConfigPaths:  flagPublicConfigs,
				PublicAPIAddress:   flagPublicAPIAddress,
				PrivateAPIAddress:  flagPrivateAPIAddress,
				PublicAllowOrigin:  flagPublicAllowOrigin,
				PrivateAllowOrigin: flagPrivateAllowOrigin,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, root.json)
		},
	}

	cmd.Flags().StringSliceVarP(&flagPublicConfigs, "public-configs", "p", nil,
		"public configs of every node, including this one (repeat the flag or separate with commas)")
	cmd.Flags().StringVar(&flagPublicAPIAddress, "public-api-address", "", "listen address of the public API, host:port")
	cmd.Flags().StringVar(&flagPrivateAPIAddress, "private-api-address", "", "listen address of the private API, host:port")
	cmd.Flags().StringVar(&flagPublicAllowOrigin, "public-allow-origin", "",
		"comma-separated origins allowed by CORS on the public API, * for any")
	cmd.Flags().StringVar(&flagPrivateAllowOrigin, "private-allow-origin", "",
		"comma-separated origins allowed by CORS on the private API, * for any")

	return cmd
}
