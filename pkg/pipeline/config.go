package pipeline

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/doorpanels/pkg/errors"
)

// LoadOptions reads a TOML input file on top of [DefaultOptions]. Keys absent
// from the file keep their defaults; unknown keys are an error.
func LoadOptions(path string) (Options, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Options{}, errors.New(errors.ErrCodeFileNotFound, "input file not found: %s", path)
	}
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open %s", path)
	}
	defer f.Close()

	opts := DefaultOptions()
	if err := DecodeOptions(f, &opts); err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return opts, nil
}

// DecodeOptions decodes TOML from r into opts, leaving fields the document
// does not mention untouched.
func DecodeOptions(r io.Reader, opts *Options) error {
	md, err := toml.NewDecoder(r).Decode(opts)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// EncodeOptions writes opts as a TOML input file.
func EncodeOptions(w io.Writer, opts Options) error {
	return toml.NewEncoder(w).Encode(opts)
}

// SaveOptions writes opts to path as TOML.
func SaveOptions(path string, opts Options) error {
	var buf bytes.Buffer
	if err := EncodeOptions(&buf, opts); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode options")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
