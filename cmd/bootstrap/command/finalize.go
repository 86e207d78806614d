package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/onflow/flow-bootstrap/model/bootstrap"
)

// Finalize merges the private config of the local node with the public
// configs of every participant into the node config.
type Finalize struct {
	PrivateConfigPath string
	OutputPath        string
	// PublicConfigPaths must include the public config of the local node.
	// Their order does not affect the result.
	PublicConfigPaths []string
	// An empty API address leaves that side of the API unexposed.
	PublicAPIAddress   string
	PrivateAPIAddress  string
	PublicAllowOrigin  string
	PrivateAllowOrigin string
}

func (Finalize) Name() string { return "finalize" }

type loadedPublicConfig struct {
	path string
	info bootstrap.NodeInfoPub
}

func (c Finalize) execute(_ context.Context, log zerolog.Logger) (Result, error) {
	publics, err := c.loadPublicConfigs()
	if err != nil {
		return nil, err
	}

	err = checkTemplateHashes(publics)
	if err != nil {
		return nil, err
	}

	infos, err := uniqueNodeInfos(publics)
	if err != nil {
		return nil, err
	}
	infos = bootstrap.SortNodeInfos(infos)

	if uint(len(infos)) != infos[0].ValidatorsCount {
		log.Warn().
			Int("public_configs", len(infos)).
			Uint("validators_count", infos[0].ValidatorsCount).
			Msg("number of public configs differs from the template validators count")
	}

	priv, err := bootstrap.LoadNodeInfoPriv(c.PrivateConfigPath)
	if err != nil {
		return nil, err
	}

	own := -1
	for i, info := range infos {
		if info.ConsensusKey.Equals(priv.ConsensusPublicKey) {
			own = i
			break
		}
	}
	if own < 0 {
		return nil, bootstrap.NewInvalidConfigErrorf(
			"consensus key %s of %s not found: local node's own public config must be included among peer configs",
			priv.ConsensusPublicKey, c.PrivateConfigPath)
	}
	if !infos[own].ServiceKey.Equals(priv.ServicePublicKey) {
		return nil, bootstrap.NewInvalidConfigErrorf(
			"service key %s of %s does not match the public config with the same consensus key",
			priv.ServicePublicKey, c.PrivateConfigPath)
	}

	for name, address := range map[string]string{
		"public API address":  c.PublicAPIAddress,
		"private API address": c.PrivateAPIAddress,
	} {
		if address == "" {
			continue
		}
		err = bootstrap.ValidateAddress(name, address)
		if err != nil {
			return nil, err
		}
	}

	consensusKeyPath, err := bootstrap.RelativePath(c.OutputPath, bootstrap.ResolvePath(c.PrivateConfigPath, priv.ConsensusSecretKey))
	if err != nil {
		return nil, err
	}
	serviceKeyPath, err := bootstrap.RelativePath(c.OutputPath, bootstrap.ResolvePath(c.PrivateConfigPath, priv.ServiceSecretKey))
	if err != nil {
		return nil, err
	}

	conf := &bootstrap.NodeConfig{
		ListenAddress:      priv.ListenAddress,
		ExternalAddress:    priv.ExternalAddress,
		ConsensusPublicKey: priv.ConsensusPublicKey,
		ConsensusSecretKey: consensusKeyPath,
		ServicePublicKey:   priv.ServicePublicKey,
		ServiceSecretKey:   serviceKeyPath,
		Consensus:          infos[own].Consensus,
		API: bootstrap.NodeAPIConfig{
			PublicAPIAddress:   c.PublicAPIAddress,
			PrivateAPIAddress:  c.PrivateAPIAddress,
			PublicAllowOrigin:  c.PublicAllowOrigin,
			PrivateAllowOrigin: c.PrivateAllowOrigin,
		},
		Validators:  make([]bootstrap.Validator, 0, len(infos)),
		ConnectList: make([]bootstrap.ConnectInfo, 0, len(infos)-1),
	}
	for i, info := range infos {
		conf.Validators = append(conf.Validators, bootstrap.Validator{
			ConsensusKey: info.ConsensusKey,
			ServiceKey:   info.ServiceKey,
		})
		if i == own {
			continue
		}
		conf.ConnectList = append(conf.ConnectList, bootstrap.ConnectInfo{
			Address:   info.Address,
			PublicKey: info.ConsensusKey,
		})
	}

	err = conf.Validate(c.OutputPath)
	if err != nil {
		return nil, err
	}

	err = os.MkdirAll(filepath.Dir(c.OutputPath), 0755)
	if err != nil {
		return nil, err
	}
	err = bootstrap.WriteNodeConfig(c.OutputPath, conf)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", c.OutputPath).
		Int("validators", len(conf.Validators)).
		Int("validator_index", own).
		Msg("wrote node config")

	return FinalizeResult{NodeConfigPath: c.OutputPath}, nil
}

// loadPublicConfigs reads every public config once. A file given more than
// once, under any spelling of its path, is read once.
func (c Finalize) loadPublicConfigs() ([]loadedPublicConfig, error) {
	if len(c.PublicConfigPaths) == 0 {
		return nil, bootstrap.NewInvalidConfigErrorf("no public configs given, at least the local node's own public config is required")
	}

	seen := make(map[string]struct{}, len(c.PublicConfigPaths))
	publics := make([]loadedPublicConfig, 0, len(c.PublicConfigPaths))
	for _, path := range c.PublicConfigPaths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("could not resolve public config path %s: %w", path, err)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}

		info, err := bootstrap.LoadNodeInfoPub(path)
		if err != nil {
			return nil, err
		}
		publics = append(publics, loadedPublicConfig{path: path, info: *info})
	}
	return publics, nil
}

// checkTemplateHashes verifies that every public config was generated from
// the same template. The hash shared by most public configs is taken as the
// reference and the files deviating from it are reported.
func checkTemplateHashes(publics []loadedPublicConfig) error {
	counts := make(map[string]int, len(publics))
	reference := publics[0].info.TemplateHash
	for _, public := range publics {
		hash := public.info.TemplateHash
		counts[hash]++
		if counts[hash] > counts[reference] {
			reference = hash
		}
	}
	if len(counts) == 1 {
		return nil
	}

	var deviating []string
	for _, public := range publics {
		if public.info.TemplateHash != reference {
			deviating = append(deviating, fmt.Sprintf("%s (template %s)", public.path, public.info.TemplateHash))
		}
	}
	return bootstrap.NewInvalidConfigErrorf(
		"public configs generated from a different template than the others (template %s): %s",
		reference, strings.Join(deviating, ", "))
}

// uniqueNodeInfos rejects consensus keys used by more than one public config.
func uniqueNodeInfos(publics []loadedPublicConfig) ([]bootstrap.NodeInfoPub, error) {
	byKey := make(map[string]string, len(publics))
	infos := make([]bootstrap.NodeInfoPub, 0, len(publics))
	for _, public := range publics {
		key := public.info.ConsensusKey.String()
		if other, ok := byKey[key]; ok {
			return nil, bootstrap.NewInvalidConfigErrorf(
				"duplicate validator: %s and %s share the consensus key %s",
				other, public.path, key)
		}
		byKey[key] = public.path
		infos = append(infos, public.info)
	}
	return infos, nil
}
