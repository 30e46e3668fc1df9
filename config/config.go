package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Formation and evaluation strategy values recognized by AppConfiguration.
const (
	FormationPartial = "partial"
	FormationFull    = "full"

	EvaluationDepth   = "depth"
	EvaluationBreadth = "breadth"
)

// execDirToken is the placeholder §6 says file-parameter paths may carry,
// resolved against the running executable's directory.
const execDirToken = "${EXECDIR}"

// AppConfiguration is app_configuration from the control file (§6).
type AppConfiguration struct {
	StateFormat            string   `mapstructure:"state_format"`
	FormationStrategy      string   `mapstructure:"formation_strategy"`
	EvaluationStrategy     string   `mapstructure:"evaluation_strategy"`
	RunModes               []string `mapstructure:"run_modes"`
	OutputContainerFormats []string `mapstructure:"output_container_formats"`
}

// RawGenerator is the decoded form of one events node of a
// simulation_instructions entry: an event leaf names a treatment, a
// sequence/alternatives node carries children.
type RawGenerator struct {
	Type           string            `mapstructure:"type"`
	Treatment      string            `mapstructure:"treatment"`
	Parameters     map[string]any    `mapstructure:"parameters"`
	FileParameters map[string]string `mapstructure:"file_parameters"`
	Conditions     []string          `mapstructure:"conditions"`
	Children       []RawGenerator    `mapstructure:"children"`
}

// RawInstruction is one entry of simulation_instructions.
type RawInstruction struct {
	TimePoints []int        `mapstructure:"time_points"`
	Events     RawGenerator `mapstructure:"events"`
}

// Config is the fully decoded control structure (§6).
type Config struct {
	AppConfiguration        AppConfiguration `mapstructure:"app_configuration"`
	PreprocessingOperations []string         `mapstructure:"preprocessing_operations"`
	PreprocessingParams     map[string]any   `mapstructure:"preprocessing_params"`
	SimulationInstructions  []RawInstruction `mapstructure:"simulation_instructions"`
	PostProcessing          map[string]any   `mapstructure:"post_processing"`
	Export                  map[string]any   `mapstructure:"export"`
	ExportPrepro            map[string]any   `mapstructure:"export_prepro"`

	// StandsFile, PersistencePath and PersistenceBackend are not part of
	// spec.md's §6 control structure (file readers and persisted-state
	// layout choice are external collaborators there); they are this CLI's
	// own minimal wiring so `simulate` has somewhere concrete to read
	// stands from and write results to.
	StandsFile         string `mapstructure:"stands_file"`
	PersistencePath    string `mapstructure:"persistence_path"`
	PersistenceBackend string `mapstructure:"persistence_backend"`
}

// LoadConfig reads and decodes the control file at path, expands
// ${EXECDIR} tokens in every generator's file parameters, and validates
// app_configuration's enumerated fields.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "config: read control file %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: decode control file")
	}

	dir, err := executableDir()
	if err != nil {
		return nil, errors.Wrap(err, "config: resolve ${EXECDIR}")
	}
	for i := range cfg.SimulationInstructions {
		expandGeneratorExecDir(&cfg.SimulationInstructions[i].Events, dir)
	}
	cfg.StandsFile = ExpandExecDir(cfg.StandsFile, dir)
	cfg.PersistencePath = ExpandExecDir(cfg.PersistencePath, dir)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.AppConfiguration.FormationStrategy {
	case "", FormationPartial, FormationFull:
	default:
		return errors.Wrapf(ErrInvalidFormationStrategy, "got %q", c.AppConfiguration.FormationStrategy)
	}
	switch c.AppConfiguration.EvaluationStrategy {
	case "", EvaluationDepth, EvaluationBreadth:
	default:
		return errors.Wrapf(ErrInvalidEvaluationStrategy, "got %q", c.AppConfiguration.EvaluationStrategy)
	}
	for _, mode := range c.AppConfiguration.RunModes {
		if !validRunModes[mode] {
			return errors.Wrapf(ErrUnknownRunMode, "got %q", mode)
		}
	}
	return nil
}

// ExpandExecDir replaces every ${EXECDIR} token in path with dir.
func ExpandExecDir(path, dir string) string {
	if path == "" {
		return path
	}
	return strings.ReplaceAll(path, execDirToken, dir)
}

func expandGeneratorExecDir(g *RawGenerator, dir string) {
	for k, v := range g.FileParameters {
		g.FileParameters[k] = ExpandExecDir(v, dir)
	}
	for i := range g.Children {
		expandGeneratorExecDir(&g.Children[i], dir)
	}
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
