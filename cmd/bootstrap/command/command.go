// Package command implements the node configuration pipeline: template
// generation, per-node key and config generation, finalization of the
// merged node config, node start-up, the single-node development mode and
// storage maintenance.
package command

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Command is one operation of the pipeline together with its parameters.
// The set of commands is closed: GenerateTemplate, GenerateConfig,
// Finalize, Run, RunDev and Maintenance.
type Command interface {
	// Name returns the CLI name of the operation.
	Name() string
	execute(ctx context.Context, log zerolog.Logger) (Result, error)
}

// Result is the outcome of a successfully executed Command. The concrete
// type tells which operation ran.
type Result interface {
	isResult()
}

// GenerateTemplateResult is returned by GenerateTemplate.
type GenerateTemplateResult struct {
	TemplatePath string `json:"template_path"`
}

// GenerateConfigResult is returned by GenerateConfig.
type GenerateConfigResult struct {
	PublicConfigPath  string `json:"public_config_path"`
	PrivateConfigPath string `json:"private_config_path"`
}

// FinalizeResult is returned by Finalize.
type FinalizeResult struct {
	NodeConfigPath string `json:"node_config_path"`
}

// RunResult is returned by Run and RunDev. It carries everything the node
// runtime needs to start.
type RunResult struct {
	*NodeRunConfig
}

// MaintenanceResult is returned by Maintenance.
type MaintenanceResult struct {
	NodeConfigPath  string      `json:"node_config_path"`
	DBPath          string      `json:"db_path"`
	PerformedAction string      `json:"performed_action"`
	Output          interface{} `json:"output,omitempty"`
}

func (GenerateTemplateResult) isResult() {}
func (GenerateConfigResult) isResult()   {}
func (FinalizeResult) isResult()         {}
func (RunResult) isResult()              {}
func (MaintenanceResult) isResult()      {}

// Execute runs cmd. Errors of the operation are returned wrapped with the
// operation name and are otherwise unchanged.
func Execute(ctx context.Context, log zerolog.Logger, cmd Command) (Result, error) {
	log = log.With().Str("command", cmd.Name()).Logger()

	result, err := cmd.execute(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Name(), err)
	}
	return result, nil
}
