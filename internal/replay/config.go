package replay

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-ta/pkg/errors"
)

// Config describes one replay job: which candle series to stream and which
// strategy file to drive with it.
type Config struct {
	DataPath     string `yaml:"data_path" json:"data_path" jsonschema:"title=Data Path,description=Path to the candle CSV file,required" validate:"required"`
	StrategyPath string `yaml:"strategy_path" json:"strategy_path" jsonschema:"title=Strategy Path,description=Path to the serialized strategy document,required" validate:"required"`
	// MaxWarmUp caps how many observations the strategy may spend warming up
	// before the run is rejected. Zero means no cap.
	MaxWarmUp int `yaml:"max_warm_up" json:"max_warm_up" jsonschema:"title=Max Warm-Up,description=Maximum observations allowed before the first verdict (0 disables the cap),minimum=0" validate:"gte=0"`
}

// Validate checks the config fields.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, "invalid replay config", err)
	}

	return nil
}

// LoadConfig reads a replay config file and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfig, err, "cannot read %s", path)
	}

	return ParseConfig(data)
}

// ParseConfig loads a config from YAML content and validates it.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, "malformed replay config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GenerateSchema generates a JSON schema for the replay config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(c)
	schema.Title = "replay-config"
	schema.Description = "Configuration schema for the historical replay runner"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates a JSON schema string for the replay config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
