package cmd

import (
	"fmt"

	"github.com/onflow/flow-bootstrap/module/keys"
)

const passwordSourceUsage = "passphrase source of the %s key: pass:<text>, env, env:<NAME>, file:<path> or stdin (env reads %s)"

// parsePasswordFlag parses a password source flag. An empty value yields a
// nil source so that the command applies its default.
func parsePasswordFlag(value string, defaultEnv string) (keys.PasswordSource, error) {
	if value == "" {
		return nil, nil
	}
	src, err := keys.ParsePasswordSource(value, defaultEnv)
	if err != nil {
		return nil, fmt.Errorf("invalid password source: %w", err)
	}
	return src, nil
}
