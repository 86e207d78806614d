package command

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/module/keys"
)

// Fixed parameters of the development mode.
const (
	DevPeerAddress        = "127.0.0.1:6200"
	DevPublicAPIAddress   = "127.0.0.1:8080"
	DevPrivateAPIAddress  = "127.0.0.1:8081"
	DevPublicAllowOrigin  = "http://127.0.0.1:8080, http://localhost:8080"
	DevPrivateAllowOrigin = "http://127.0.0.1:8081, http://localhost:8081"
)

// RunDev generates a single-validator deployment inside ArtifactsDir and
// prepares the node to run on it. Artifacts of a previous run are removed
// first.
type RunDev struct {
	ArtifactsDir string
}

func (RunDev) Name() string { return "run-dev" }

func (c RunDev) artifactPath(name string) string {
	return filepath.Join(c.ArtifactsDir, name)
}

// artifactNames are the entries a development run creates in its artifacts
// directory.
var artifactNames = []string{
	bootstrap.FilenameTemplate,
	bootstrap.FilenamePublicConfig,
	bootstrap.FilenamePrivateConfig,
	bootstrap.FilenameConsensusKey,
	bootstrap.FilenameServiceKey,
	bootstrap.FilenameNodeConfig,
	bootstrap.DirnameDB,
}

// cleanup removes the artifacts directory. A missing or empty directory is
// not an error. A non-empty directory is only removed if it holds at least
// one generated artifact.
func (c RunDev) cleanup() error {
	entries, err := os.ReadDir(c.ArtifactsDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return NewCleanupError(c.ArtifactsDir, err)
	}
	if len(entries) == 0 {
		return nil
	}
	if !c.holdsArtifacts(entries) {
		return NewCleanupError(c.ArtifactsDir, ErrNotArtifactsDir)
	}

	err = os.RemoveAll(c.ArtifactsDir)
	if err != nil {
		return NewCleanupError(c.ArtifactsDir, err)
	}
	return nil
}

func (c RunDev) holdsArtifacts(entries []os.DirEntry) bool {
	for _, entry := range entries {
		for _, name := range artifactNames {
			if entry.Name() == name {
				return true
			}
		}
	}
	return false
}

func (c RunDev) execute(ctx context.Context, log zerolog.Logger) (Result, error) {
	err := c.cleanup()
	if err != nil {
		return nil, err
	}
	log.Debug().Str("dir", c.ArtifactsDir).Msg("removed previous artifacts")

	templatePath := c.artifactPath(bootstrap.FilenameTemplate)
	nodeConfigPath := c.artifactPath(bootstrap.FilenameNodeConfig)

	steps := []Command{
		GenerateTemplate{
			OutputPath:      templatePath,
			ValidatorsCount: 1,
		},
		GenerateConfig{
			TemplatePath: templatePath,
			OutputDir:    c.ArtifactsDir,
			PeerAddress:  DevPeerAddress,
			NoPassword:   true,
		},
		Finalize{
			PrivateConfigPath:  c.artifactPath(bootstrap.FilenamePrivateConfig),
			OutputPath:         nodeConfigPath,
			PublicConfigPaths:  []string{c.artifactPath(bootstrap.FilenamePublicConfig)},
			PublicAPIAddress:   DevPublicAPIAddress,
			PrivateAPIAddress:  DevPrivateAPIAddress,
			PublicAllowOrigin:  DevPublicAllowOrigin,
			PrivateAllowOrigin: DevPrivateAllowOrigin,
		},
		Run{
			NodeConfigPath:   nodeConfigPath,
			DBPath:           c.artifactPath(bootstrap.DirnameDB),
			ConsensusKeyPass: keys.LiteralPassword{},
			ServiceKeyPass:   keys.LiteralPassword{},
		},
	}

	var result Result
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err = Execute(ctx, log, step)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}
