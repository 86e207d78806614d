package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/onflow/flow-bootstrap/cmd/bootstrap/command"
)

// printResult writes result to out as indented JSON or as plain text lines.
func printResult(out io.Writer, result command.Result, asJSON bool) error {
	if asJSON {
		bz, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("cannot marshal result: %w", err)
		}
		_, err = fmt.Fprintln(out, string(bz))
		return err
	}

	var err error
	switch r := result.(type) {
	case command.GenerateTemplateResult:
		_, err = fmt.Fprintf(out, "template: %s\n", r.TemplatePath)
	case command.GenerateConfigResult:
		_, err = fmt.Fprintf(out, "public config: %s\nprivate config: %s\n", r.PublicConfigPath, r.PrivateConfigPath)
	case command.FinalizeResult:
		_, err = fmt.Fprintf(out, "node config: %s\n", r.NodeConfigPath)
	case command.RunResult:
		_, err = fmt.Fprintf(out, "node config: %s\ndb: %s\nvalidator index: %d\n",
			r.NodeConfigPath, r.DBPath, r.ValidatorIndex())
	case command.MaintenanceResult:
		_, err = fmt.Fprintf(out, "performed %s on %s (node config %s)\n", r.PerformedAction, r.DBPath, r.NodeConfigPath)
		if err == nil && r.Output != nil {
			_, err = fmt.Fprintf(out, "output: %v\n", r.Output)
		}
	default:
		err = fmt.Errorf("unexpected result %T", result)
	}
	return err
}
