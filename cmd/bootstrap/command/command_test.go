package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
	"github.com/onflow/flow-bootstrap/module/keys"
	"github.com/onflow/flow-bootstrap/utils/unittest"
)

func execute(t *testing.T, cmd Command) Result {
	result, err := Execute(context.Background(), unittest.Logger(), cmd)
	require.NoError(t, err)
	return result
}

func generateTemplate(t *testing.T, dir string, validators int) string {
	path := filepath.Join(dir, bootstrap.FilenameTemplate)
	result := execute(t, GenerateTemplate{OutputPath: path, ValidatorsCount: validators})
	require.Equal(t, GenerateTemplateResult{TemplatePath: path}, result)
	return path
}

// generateNodes generates n unprotected node configs, each in its own
// directory below dir.
func generateNodes(t *testing.T, dir string, templatePath string, n int) []GenerateConfigResult {
	results := make([]GenerateConfigResult, 0, n)
	for i := 0; i < n; i++ {
		result := execute(t, GenerateConfig{
			TemplatePath: templatePath,
			OutputDir:    filepath.Join(dir, fmt.Sprintf("node%d", i)),
			PeerAddress:  unittest.AddressFixture(i),
			NoPassword:   true,
		})
		results = append(results, result.(GenerateConfigResult))
	}
	return results
}

func publicConfigPaths(nodes []GenerateConfigResult) []string {
	paths := make([]string, 0, len(nodes))
	for _, node := range nodes {
		paths = append(paths, node.PublicConfigPath)
	}
	return paths
}

func TestExecute_WrapsErrorsWithOperation(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		_, err := Execute(context.Background(), unittest.Logger(), Finalize{
			PrivateConfigPath: filepath.Join(dir, bootstrap.FilenamePrivateConfig),
			OutputPath:        filepath.Join(dir, bootstrap.FilenameNodeConfig),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "finalize: ")
		assert.True(t, bootstrap.IsInvalidConfigError(err))
	})
}

func TestPipeline(t *testing.T) {
	for _, n := range []int{1, 2, 4} {
		t.Run(fmt.Sprintf("%d validators", n), func(t *testing.T) {
			unittest.RunWithTempDir(t, func(dir string) {
				templatePath := generateTemplate(t, dir, n)
				nodes := generateNodes(t, dir, templatePath, n)

				for i, node := range nodes {
					output := filepath.Join(dir, fmt.Sprintf("node%d", i), bootstrap.FilenameNodeConfig)
					result := execute(t, Finalize{
						PrivateConfigPath: node.PrivateConfigPath,
						OutputPath:        output,
						PublicConfigPaths: publicConfigPaths(nodes),
					})
					require.Equal(t, FinalizeResult{NodeConfigPath: output}, result)

					conf, err := bootstrap.LoadNodeConfig(output)
					require.NoError(t, err)
					require.Len(t, conf.Validators, n)
					require.Len(t, conf.ConnectList, n-1)

					distinct := make(map[string]struct{})
					for _, v := range conf.Validators {
						distinct[v.ConsensusKey.String()] = struct{}{}
					}
					assert.Len(t, distinct, n)
					for _, peer := range conf.ConnectList {
						assert.False(t, peer.PublicKey.Equals(conf.ConsensusPublicKey))
					}

					// no API requested
					assert.Empty(t, conf.API.PublicAPIAddress)
					assert.Empty(t, conf.API.PrivateAPIAddress)

					run := execute(t, Run{
						NodeConfigPath: output,
						DBPath:         filepath.Join(dir, fmt.Sprintf("node%d", i), bootstrap.DirnameDB),
					}).(RunResult)
					assert.True(t, run.ConsensusKey.PublicKey().Equals(conf.ConsensusPublicKey.PublicKey))
					assert.True(t, run.ServiceKey.PublicKey().Equals(conf.ServicePublicKey.PublicKey))
				}
			})
		})
	}
}

func TestPipeline_AllNodesAgreeOnValidators(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		templatePath := generateTemplate(t, dir, 3)
		nodes := generateNodes(t, dir, templatePath, 3)

		var lists [][]bootstrap.Validator
		for i, node := range nodes {
			output := filepath.Join(dir, fmt.Sprintf("final%d.toml", i))
			execute(t, Finalize{
				PrivateConfigPath: node.PrivateConfigPath,
				OutputPath:        output,
				PublicConfigPaths: publicConfigPaths(nodes),
			})
			conf, err := bootstrap.LoadNodeConfig(output)
			require.NoError(t, err)
			lists = append(lists, conf.Validators)
			assert.Equal(t, indexOfNode(t, conf.Validators, node), conf.ValidatorIndex())
		}
		for _, list := range lists[1:] {
			require.Len(t, list, len(lists[0]))
			for i := range list {
				assert.True(t, list[i].ConsensusKey.Equals(lists[0][i].ConsensusKey))
			}
		}
	})
}

// indexOfNode returns the position of node in validators.
func indexOfNode(t *testing.T, validators []bootstrap.Validator, node GenerateConfigResult) int {
	pub, err := bootstrap.LoadNodeInfoPub(node.PublicConfigPath)
	require.NoError(t, err)
	for i, v := range validators {
		if v.ConsensusKey.Equals(pub.ConsensusKey) {
			return i
		}
	}
	t.Fatalf("node %s is not among the validators", node.PublicConfigPath)
	return -1
}

func TestRunResultCarriesNodeConfig(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		result := execute(t, RunDev{ArtifactsDir: dir})
		run, ok := result.(RunResult)
		require.True(t, ok)
		assert.Equal(t, 0, run.ValidatorIndex())
		assert.Equal(t, filepath.Join(dir, bootstrap.DirnameDB), run.DBPath)
	})
}

func TestGenerateConfig_Protected(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		templatePath := generateTemplate(t, dir, 1)
		node := execute(t, GenerateConfig{
			TemplatePath:     templatePath,
			OutputDir:        dir,
			PeerAddress:      unittest.AddressFixture(0),
			ListenAddress:    "0.0.0.0:6200",
			ConsensusKeyPass: keys.LiteralPassword{Value: "consensus secret"},
			ServiceKeyPass:   keys.LiteralPassword{Value: "service secret"},
		}).(GenerateConfigResult)

		for _, name := range []string{bootstrap.FilenameConsensusKey, bootstrap.FilenameServiceKey} {
			encrypted, err := keys.IsKeyFileEncrypted(filepath.Join(dir, name))
			require.NoError(t, err)
			assert.True(t, encrypted, name)
		}

		priv, err := bootstrap.LoadNodeInfoPriv(node.PrivateConfigPath)
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:6200", priv.ListenAddress)
		assert.Equal(t, unittest.AddressFixture(0), priv.ExternalAddress)

		nodeConfigPath := filepath.Join(dir, "final", bootstrap.FilenameNodeConfig)
		execute(t, Finalize{
			PrivateConfigPath: node.PrivateConfigPath,
			OutputPath:        nodeConfigPath,
			PublicConfigPaths: []string{node.PublicConfigPath},
		})

		// key paths are rewritten relative to the node config
		conf, err := bootstrap.LoadNodeConfig(nodeConfigPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("..", bootstrap.FilenameConsensusKey), conf.ConsensusSecretKey)

		_, err = Execute(context.Background(), unittest.Logger(), Run{
			NodeConfigPath:   nodeConfigPath,
			DBPath:           filepath.Join(dir, bootstrap.DirnameDB),
			ConsensusKeyPass: keys.LiteralPassword{Value: "wrong"},
			ServiceKeyPass:   keys.LiteralPassword{Value: "service secret"},
		})
		require.Error(t, err)

		execute(t, Run{
			NodeConfigPath:   nodeConfigPath,
			DBPath:           filepath.Join(dir, bootstrap.DirnameDB),
			ConsensusKeyPass: keys.LiteralPassword{Value: "consensus secret"},
			ServiceKeyPass:   keys.LiteralPassword{Value: "service secret"},
		})
	})
}

func TestGenerateConfig_Failures(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		templatePath := generateTemplate(t, dir, 1)

		t.Run("invalid peer address", func(t *testing.T) {
			out := filepath.Join(dir, "bad-address")
			_, err := Execute(context.Background(), unittest.Logger(), GenerateConfig{
				TemplatePath: templatePath,
				OutputDir:    out,
				PeerAddress:  "not an address",
				NoPassword:   true,
			})
			require.True(t, bootstrap.IsInvalidConfigError(err))
			assert.NoDirExists(t, out)
		})

		t.Run("empty passphrase", func(t *testing.T) {
			out := filepath.Join(dir, "empty-pass")
			_, err := Execute(context.Background(), unittest.Logger(), GenerateConfig{
				TemplatePath:     templatePath,
				OutputDir:        out,
				PeerAddress:      unittest.AddressFixture(0),
				ConsensusKeyPass: keys.LiteralPassword{},
				ServiceKeyPass:   keys.LiteralPassword{},
			})
			require.True(t, bootstrap.IsInvalidConfigError(err))
			assert.NoDirExists(t, out)
		})

		t.Run("missing template", func(t *testing.T) {
			_, err := Execute(context.Background(), unittest.Logger(), GenerateConfig{
				TemplatePath: filepath.Join(dir, "missing.toml"),
				OutputDir:    filepath.Join(dir, "missing-template"),
				PeerAddress:  unittest.AddressFixture(0),
				NoPassword:   true,
			})
			require.True(t, bootstrap.IsNotExist(err))
		})

		t.Run("corrupt template", func(t *testing.T) {
			corrupt := filepath.Join(dir, "corrupt.toml")
			require.NoError(t, os.WriteFile(corrupt, []byte("validators_count = ["), 0644))
			_, err := Execute(context.Background(), unittest.Logger(), GenerateConfig{
				TemplatePath: corrupt,
				OutputDir:    filepath.Join(dir, "corrupt-template"),
				PeerAddress:  unittest.AddressFixture(0),
				NoPassword:   true,
			})
			require.True(t, bootstrap.IsParseError(err))
		})
	})
}

func TestGenerateConfig_KeysAreIndependentOfTemplate(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		templatePath := generateTemplate(t, dir, 2)
		nodes := generateNodes(t, dir, templatePath, 2)

		a, err := bootstrap.LoadNodeInfoPub(nodes[0].PublicConfigPath)
		require.NoError(t, err)
		b, err := bootstrap.LoadNodeInfoPub(nodes[1].PublicConfigPath)
		require.NoError(t, err)

		assert.Equal(t, a.TemplateHash, b.TemplateHash)
		assert.False(t, a.ConsensusKey.Equals(b.ConsensusKey))
		assert.False(t, a.ServiceKey.Equals(b.ServiceKey))
	})
}
