package scene

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrInvalidDefinition = errors.New("scene: invalid definition")

//go:embed defs/*.yaml
var defs embed.FS

// Definition is a scene file.
type Definition struct {
	Variant string `yaml:"variant" validate:"omitempty,oneof=keyboard constellation"`
	Nodes   []Node `yaml:"nodes" validate:"required,min=1,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse decodes and validates a YAML scene definition. Unknown keys are rejected.
func Parse(r io.Reader) (Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := validate.Struct(def); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	return def, nil
}

func LoadFile(path string) (Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return Definition{}, err
	}
	defer f.Close()
	def, err := Parse(f)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Builtin returns the bundled definition for a variant.
func Builtin(variant string) (Definition, error) {
	switch variant {
	case VariantKeyboard, VariantConstellation:
	default:
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	data, err := defs.ReadFile("defs/" + variant + ".yaml")
	if err != nil {
		return Definition{}, err
	}
	return Parse(bytes.NewReader(data))
}

// Load reads path if set, otherwise the builtin definition for variant. An
// empty variant falls back to the file's own variant, then to keyboard.
func Load(path, variant string) (Definition, string, error) {
	if path == "" {
		if variant == "" {
			variant = VariantKeyboard
		}
		def, err := Builtin(variant)
		return def, variant, err
	}
	def, err := LoadFile(path)
	if err != nil {
		return Definition{}, "", err
	}
	switch {
	case variant != "":
	case def.Variant != "":
		variant = def.Variant
	default:
		variant = VariantKeyboard
	}
	return def, variant, nil
}
