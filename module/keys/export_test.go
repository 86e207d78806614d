package keys

import "io"

// SetScryptWorkFactor lowers the scrypt cost so tests run quickly.
func SetScryptWorkFactor(logN int) (restore func()) {
	prev := scryptWorkFactor
	scryptWorkFactor = logN
	return func() { scryptWorkFactor = prev }
}

// SetTerminal replaces the terminal used by prompts.
func SetTerminal(out io.Writer, read func() ([]byte, error)) (restore func()) {
	prevOut, prevRead := promptOutput, readPassword
	promptOutput, readPassword = out, read
	return func() { promptOutput, readPassword = prevOut, prevRead }
}
