package command

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
)

// GenerateTemplate writes the template shared by all nodes of a deployment.
type GenerateTemplate struct {
	// OutputPath is overwritten if it exists.
	OutputPath      string
	ValidatorsCount int
	// ConsensusConfigPath optionally points to a TOML document with consensus
	// parameters. Missing parameters keep their defaults.
	ConsensusConfigPath string
}

func (GenerateTemplate) Name() string { return "generate-template" }

func (c GenerateTemplate) execute(_ context.Context, log zerolog.Logger) (Result, error) {
	if c.ValidatorsCount < 1 {
		return nil, bootstrap.NewInvalidConfigErrorf("validators count must be at least 1, got %d", c.ValidatorsCount)
	}

	consensus := bootstrap.DefaultConsensusConfig()
	if c.ConsensusConfigPath != "" {
		var err error
		consensus, err = bootstrap.LoadConsensusConfig(c.ConsensusConfigPath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", c.ConsensusConfigPath).Msg("read consensus parameters")
	}

	template, err := bootstrap.NewTemplate(uint(c.ValidatorsCount), consensus, time.Now())
	if err != nil {
		return nil, err
	}
	err = template.Validate(c.OutputPath)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(filepath.Dir(c.OutputPath), 0755)
	if err != nil {
		return nil, err
	}
	err = bootstrap.WriteTemplate(c.OutputPath, template)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", c.OutputPath).
		Uint("validators_count", template.ValidatorsCount).
		Str("hash", template.Hash).
		Msg("wrote template")

	return GenerateTemplateResult{TemplatePath: c.OutputPath}, nil
}
