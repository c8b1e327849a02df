package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/erraggy/tsreqgen/typegen"
	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v4"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = "tsreqgen.yaml"

// fileConfig mirrors the tsreqgen.yaml configuration file. Every field is
// optional; explicit command-line flags always override file values.
type fileConfig struct {
	// Spec is the OAS document to generate from, used when no positional
	// argument is given.
	Spec string `yaml:"spec"`
	// Output is the directory the generated module is written to.
	Output string `yaml:"output"`
	// BaseType names the request-options interface in the generated module.
	BaseType string `yaml:"base-type" validate:"omitempty,ts_identifier"`
	// LazyRefs resolves references on demand instead of dereferencing the
	// whole document up front.
	LazyRefs bool `yaml:"lazy-refs"`
	// StrictRefs fails generation on unresolvable references.
	StrictRefs bool `yaml:"strict-refs"`
	// Strict fails generation on any issues, even warnings.
	Strict bool `yaml:"strict"`
	// NoInfo suppresses informational messages.
	NoInfo bool `yaml:"no-info"`
	// Formats overrides schema type/format to TypeScript type mappings.
	// Keys are schema types, inner keys are format names ("" for the
	// type's default), values are the TypeScript types to emit.
	Formats map[string]map[string]string `yaml:"formats" validate:"omitempty,dive,dive,required"`
}

// formatMap overlays the configured format overrides onto the defaults,
// so a config file only has to name the mappings it changes.
func (c *fileConfig) formatMap() typegen.FormatMap {
	formats := typegen.DefaultFormats()
	for schemaType, byFormat := range c.Formats {
		if formats[schemaType] == nil {
			formats[schemaType] = make(map[string]string, len(byFormat))
		}
		for format, tsType := range byFormat {
			formats[schemaType][format] = tsType
		}
	}
	return formats
}

// typeNamePattern limits base-type names to plain TypeScript identifiers.
// Must stay in sync with what generator.WithBaseRequestType accepts.
var typeNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var validate = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	// Report yaml keys instead of Go field names in validation errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// RegisterValidation only fails on an empty tag or a nil function.
	_ = v.RegisterValidation("ts_identifier", func(fl validator.FieldLevel) bool {
		return typeNamePattern.MatchString(fl.Field().String())
	})
	return v
}

// resolveFileConfig loads the config file named by path, or discovers
// tsreqgen.yaml in the working directory when path is empty. A missing
// discovered file is not an error; a missing explicit file is.
func resolveFileConfig(path string) (*fileConfig, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return nil, nil
		}
		path = defaultConfigFile
	}
	return loadFileConfig(path)
}

// loadFileConfig reads, parses, and validates one config file.
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &cfg, nil
}

func validateConfig(cfg *fileConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) {
		msgs := make([]string, 0, len(valErrs))
		for _, ve := range valErrs {
			msgs = append(msgs, fmt.Sprintf("%s %s", ve.Field(), formatValidationError(ve)))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return err
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "must not be empty"
	case "ts_identifier":
		return fmt.Sprintf("must be a valid TypeScript identifier (got %q)", ve.Value())
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
