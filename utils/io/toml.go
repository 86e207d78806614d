package io

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ReadTOML reads the TOML document at path into target. Unknown keys are
// rejected so that typos in hand-edited files surface as errors.
func ReadTOML(path string, target interface{}) error {
	data, err := ReadFile(path)
	if err != nil {
		return err
	}
	return DecodeTOML(data, target)
}

// DecodeTOML decodes a TOML document into target, rejecting unknown keys.
func DecodeTOML(data []byte, target interface{}) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(target)
	if err != nil {
		return fmt.Errorf("could not decode toml: %w", err)
	}
	return nil
}

// EncodeTOML encodes value as a TOML document.
func EncodeTOML(value interface{}) ([]byte, error) {
	data, err := toml.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("could not encode toml: %w", err)
	}
	return data, nil
}

// WriteTOML encodes value as TOML and writes it to path.
func WriteTOML(path string, value interface{}) error {
	data, err := EncodeTOML(value)
	if err != nil {
		return err
	}
	return WriteFile(path, data)
}

// WriteSecretTOML encodes value as TOML and writes it to path with owner-only permissions.
func WriteSecretTOML(path string, value interface{}) error {
	data, err := EncodeTOML(value)
	if err != nil {
		return err
	}
	return WriteSecretFile(path, data)
}
