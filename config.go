package restdb

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/restdb/restdb/schema"
)

// Config holds all application configuration. Everything an API instance
// needs is carried here explicitly; nothing is read from process-wide state.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Hashids  HashidsConfig  `mapstructure:"hashids"`
	Tables   []TableConfig  `mapstructure:"tables"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type ServerConfig struct {
	Listen   string `mapstructure:"listen"`
	LogLevel string `mapstructure:"log_level"`
	Locale   string `mapstructure:"locale"`
}

type HashidsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Salt      string `mapstructure:"salt"`
	MinLength int    `mapstructure:"min_length"`
}

// TableConfig describes one table exposed as a REST resource. Name is the
// resource name; the backing table name defaults to its pluralized
// snake_case form unless Table overrides it.
type TableConfig struct {
	Name            string        `mapstructure:"name"`
	Table           string        `mapstructure:"table"`
	TablePrefix     string        `mapstructure:"table_prefix"`
	SingularTable   bool          `mapstructure:"singular_table"`
	IncludeFields   []string      `mapstructure:"include_fields"`
	ExcludeFields   []string      `mapstructure:"exclude_fields"`
	UseHashids      bool          `mapstructure:"use_hashids"`
	DatesAsString   bool          `mapstructure:"dates_as_string"`
	SkipInvalidRows bool          `mapstructure:"skip_invalid_rows"`
	Fields          []FieldConfig `mapstructure:"fields"`
}

// FieldConfig describes one column when the schema is declared in the
// config file instead of introspected from the backend.
type FieldConfig struct {
	Name          string `mapstructure:"name"`
	Kind          string `mapstructure:"kind"`
	SQLType       string `mapstructure:"sql_type"`
	MaxLength     int    `mapstructure:"max_length"`
	PrimaryKey    bool   `mapstructure:"primary_key"`
	ForeignKey    bool   `mapstructure:"foreign_key"`
	AutoIncrement bool   `mapstructure:"auto_increment"`
	NotNull       bool   `mapstructure:"not_null"`
}

// GetDefaults returns a Config with all default values.
func GetDefaults() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite3", DSN: ":memory:"},
		Server:   ServerConfig{Listen: ":8080", LogLevel: "warn"},
		Hashids:  HashidsConfig{MinLength: 12},
	}
}

// LoadConfig loads configuration from a file, falling back to the usual
// search paths when path is empty. Environment variables override file
// values under the RESTDB prefix.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("restdb")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "restdb"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("RESTDB")
	v.AutomaticEnv()

	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", ":memory:")
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.log_level", "warn")
	v.SetDefault("hashids.min_length", 12)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// TableByName returns the config of one exposed table.
func (c *Config) TableByName(name string) (TableConfig, bool) {
	for _, table := range c.Tables {
		if table.Name == name {
			return table, true
		}
	}
	return TableConfig{}, false
}

// BuildModel turns one table config with declared fields into a data model.
func (tc TableConfig) BuildModel() (*schema.Model, error) {
	if len(tc.Fields) == 0 {
		return nil, fmt.Errorf("table %q declares no fields", tc.Name)
	}
	fields := make([]schema.Field, 0, len(tc.Fields))
	for _, fc := range tc.Fields {
		kind, err := schema.ParseFieldKind(fc.Kind)
		if err != nil {
			return nil, fmt.Errorf("table %q field %q: %w", tc.Name, fc.Name, err)
		}
		fields = append(fields, schema.Field{
			Name:      fc.Name,
			Kind:      kind,
			SQLType:   fc.SQLType,
			MaxLength: fc.MaxLength,
			Params: schema.FieldParams{
				PrimaryKey:    fc.PrimaryKey,
				ForeignKey:    fc.ForeignKey,
				AutoIncrement: fc.AutoIncrement,
				NotNull:       fc.NotNull,
			},
		})
	}
	table := tc.Table
	if table == "" {
		ns := schema.NamingStrategy{TablePrefix: tc.TablePrefix, SingularTable: tc.SingularTable}
		table = ns.TableName(tc.Name)
	}
	return schema.NewModel(table, fields, schema.ModelOptions{
		IncludeFields: tc.IncludeFields,
		ExcludeFields: tc.ExcludeFields,
		UseHashids:    tc.UseHashids,
		DatesAsString: tc.DatesAsString,
	}), nil
}
