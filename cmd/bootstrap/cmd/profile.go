package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var profileModes = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"trace":     profile.TraceProfile,
}

// profileFlags configure profiling of the node runtime.
type profileFlags struct {
	mode string
	dir  string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.mode, "profile", "",
		fmt.Sprintf("profile the node while it runs, one of %s", strings.Join(profileModeNames(), ", ")))
	cmd.Flags().StringVar(&f.dir, "profile-dir", ".", "directory the profile is written to")
}

func profileModeNames() []string {
	names := make([]string, 0, len(profileModes))
	for name := range profileModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// start starts profiling if a mode is set. The returned function stops the
// profile and writes it to the profile directory.
func (f *profileFlags) start(log zerolog.Logger) (func(), error) {
	if f.mode == "" {
		return func() {}, nil
	}
	mode, ok := profileModes[f.mode]
	if !ok {
		return nil, fmt.Errorf("invalid profile %q, expected one of %s", f.mode, strings.Join(profileModeNames(), ", "))
	}

	log.Info().Str("profile", f.mode).Str("dir", f.dir).Msg("profiling node")
	p := profile.Start(mode, profile.ProfilePath(f.dir), profile.NoShutdownHook, profile.Quiet)
	return p.Stop, nil
}
