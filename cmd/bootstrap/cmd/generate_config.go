package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onflow/flow-bootstrap/cmd/bootstrap/command"
	"github.com/onflow/flow-bootstrap/module/keys"
)

func newGenerateConfigCmd(log func() zerolog.Logger, root *rootFlags) *cobra.Command {
	var (
		flagPeerAddress      string
		flagListenAddress    string
		flagNoPassword       bool
		flagConsensusKeyPass string
		flagServiceKeyPass   string
	)

	cmd := &cobra.Command{
		Use:   "generate-config <template-path> <output-dir>",
		Short: "Generate the keys and the public and private configs of a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			consensusPass, err := parsePasswordFlag(flagConsensusKeyPass, keys.EnvConsensusPassword)
			if err != nil {
				return err
			}
			servicePass, err := parsePasswordFlag(flagServiceKeyPass, keys.EnvServicePassword)
			if err != nil {
				return err
			}

			result, err := command.Execute(cmd.Context(), log(), command.GenerateConfig{
				TemplatePath:     args[0],
				OutputDir:        args[1],
				PeerAddress:      flagPeerAddress,
				ListenAddress:    flagListenAddress,
				NoPassword:       flagNoPassword,
				ConsensusKeyPass: consensusPass,
				ServiceKeyPass:   servicePass,
			})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), result, root.json)
		},
	}

	cmd.Flags().StringVarP(&flagPeerAddress, "peer-address", "a", "", "address other nodes connect to, host:port")
	_ = cmd.MarkFlagRequired("peer-address")
	cmd.Flags().StringVarP(&flagListenAddress, "listen-address", "l", "", "address the node listens on, defaults to the peer address")
	cmd.Flags().BoolVarP(&flagNoPassword, "no-password", "n", false, "store the keys without passphrase protection")
	cmd.Flags().StringVar(&flagConsensusKeyPass, "consensus-key-pass", "",
		fmt.Sprintf(passwordSourceUsage, "consensus", keys.EnvConsensusPassword))
	cmd.Flags().StringVar(&flagServiceKeyPass, "service-key-pass", "",
		fmt.Sprintf(passwordSourceUsage, "service", keys.EnvServicePassword))

	return cmd
}
