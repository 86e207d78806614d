package keys

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Default environment variables holding key passphrases.
const (
	EnvConsensusPassword = "NODECFG_CONSENSUS_PASS"
	EnvServicePassword   = "NODECFG_SERVICE_PASS"
)

// PasswordSource describes where the passphrase of a protected key comes
// from. It is one of LiteralPassword, EnvPassword, FilePassword or
// PromptPassword.
type PasswordSource interface {
	fmt.Stringer
	isPasswordSource()
}

// LiteralPassword is a passphrase given verbatim. Intended for
// non-interactive and development use only.
type LiteralPassword struct {
	Value string
}

// EnvPassword reads the passphrase from the environment variable Name.
type EnvPassword struct {
	Name string
}

// FilePassword reads the passphrase from the file at Path. Surrounding
// whitespace is trimmed.
type FilePassword struct {
	Path string
}

// PromptPassword asks for the passphrase on the terminal.
type PromptPassword struct{}

func (LiteralPassword) isPasswordSource() {}
func (EnvPassword) isPasswordSource()     {}
func (FilePassword) isPasswordSource()    {}
func (PromptPassword) isPasswordSource()  {}

func (LiteralPassword) String() string { return "pass:***" }
func (s EnvPassword) String() string   { return "env:" + s.Name }
func (s FilePassword) String() string  { return "file:" + s.Path }
func (PromptPassword) String() string  { return "stdin" }

// ParsePasswordSource parses a password source specification:
//
//	pass:<text>   literal passphrase (may be empty)
//	env           passphrase from defaultEnv
//	env:<NAME>    passphrase from the environment variable NAME
//	file:<path>   passphrase from a file
//	stdin         interactive prompt; also used for an empty specification
func ParsePasswordSource(spec string, defaultEnv string) (PasswordSource, error) {
	switch {
	case spec == "" || spec == "stdin":
		return PromptPassword{}, nil
	case strings.HasPrefix(spec, "pass:"):
		return LiteralPassword{Value: strings.TrimPrefix(spec, "pass:")}, nil
	case spec == "env":
		if defaultEnv == "" {
			return nil, fmt.Errorf("no default environment variable for password source %q", spec)
		}
		return EnvPassword{Name: defaultEnv}, nil
	case strings.HasPrefix(spec, "env:"):
		name := strings.TrimPrefix(spec, "env:")
		if name == "" {
			return nil, fmt.Errorf("empty environment variable name in password source %q", spec)
		}
		return EnvPassword{Name: name}, nil
	case strings.HasPrefix(spec, "file:"):
		path := strings.TrimPrefix(spec, "file:")
		if path == "" {
			return nil, fmt.Errorf("empty file path in password source %q", spec)
		}
		return FilePassword{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown password source %q, expected one of pass:<text>, env[:<NAME>], file:<path>, stdin", spec)
	}
}

// PasswordMode tells a prompt whether the passphrase is being chosen (and
// must be confirmed) or entered to unlock an existing key.
type PasswordMode int

const (
	PasswordModeNew PasswordMode = iota
	PasswordModeExisting
)

// Terminal I/O used by PromptPassword; replaced in tests.
var (
	promptOutput io.Writer = os.Stderr
	readPassword           = func() ([]byte, error) { return term.ReadPassword(int(os.Stdin.Fd())) }
)

// ResolvePassword obtains the passphrase for the key named keyName from src.
func ResolvePassword(src PasswordSource, keyName string, mode PasswordMode) (string, error) {
	switch s := src.(type) {
	case LiteralPassword:
		return s.Value, nil
	case EnvPassword:
		value, ok := os.LookupEnv(s.Name)
		if !ok {
			return "", fmt.Errorf("environment variable %s with the %s key passphrase is not set", s.Name, keyName)
		}
		return value, nil
	case FilePassword:
		data, err := os.ReadFile(s.Path)
		if err != nil {
			return "", fmt.Errorf("could not read %s key passphrase: %w", keyName, err)
		}
		return string(bytes.TrimSpace(data)), nil
	case PromptPassword:
		return promptPassword(keyName, mode)
	default:
		return "", fmt.Errorf("unsupported password source %T", src)
	}
}

func promptPassword(keyName string, mode PasswordMode) (string, error) {
	fmt.Fprintf(promptOutput, "Enter %s key passphrase: ", keyName)
	first, err := readPassword()
	fmt.Fprintln(promptOutput)
	if err != nil {
		return "", fmt.Errorf("could not read %s key passphrase: %w", keyName, err)
	}
	if mode == PasswordModeExisting {
		return string(first), nil
	}

	fmt.Fprintf(promptOutput, "Enter the same passphrase again: ")
	second, err := readPassword()
	fmt.Fprintln(promptOutput)
	if err != nil {
		return "", fmt.Errorf("could not read %s key passphrase: %w", keyName, err)
	}
	if !bytes.Equal(first, second) {
		return "", fmt.Errorf("%s key passphrases do not match", keyName)
	}
	return string(first), nil
}

// DefaultPasswordSource returns the source used to unlock a key when none
// was given: the environment variable envName when it is set, the
// interactive prompt otherwise.
func DefaultPasswordSource(envName string) PasswordSource {
	if _, ok := os.LookupEnv(envName); ok {
		return EnvPassword{Name: envName}
	}
	return PromptPassword{}
}
