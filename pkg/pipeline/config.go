package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	gerrors "github.com/matzehuels/gentree/pkg/errors"
)

// LoadConfig reads pipeline options from a .toml, .yaml/.yml or .json file.
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Options{}, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return Options{}, err
	}
	opts, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Options{}, gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return opts, nil
}

// ParseConfig decodes options in the format given by ext (".toml",
// ".yaml", ".yml" or ".json").
func ParseConfig(data []byte, ext string) (Options, error) {
	var opts Options
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &opts)
		if err != nil {
			return Options{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Options{}, gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return Options{}, err
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return Options{}, err
		}
	default:
		return Options{}, gerrors.New(gerrors.ErrCodeUnsupported, "config format %q (want .toml, .yaml or .json)", ext)
	}
	return opts, nil
}
