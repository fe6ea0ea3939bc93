package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
)

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current value; unknown keys are rejected.
func LoadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("read config file: %v", err)
	}
	return decodeYAML(data, cfg)
}

func decodeYAML(data []byte, cfg *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewConfigError("parse config file: %v", err)
	}
	return nil
}
