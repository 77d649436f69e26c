// Package config is for app wide settings that are unmarshalled from
// viper. Values come, in increasing precedence, from defaults, an optional
// YAML file, a .env file, PHYLOFLOW_* environment variables and bound
// command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aria-lang/phyloflow/internal/alignment"
	"github.com/aria-lang/phyloflow/internal/cluster"
	"github.com/aria-lang/phyloflow/internal/distance"
	"github.com/aria-lang/phyloflow/internal/kmer"
	"github.com/aria-lang/phyloflow/internal/logging"
	"github.com/aria-lang/phyloflow/internal/sequence"
)

// EnvPrefix prefixes every environment variable read, e.g.
// PHYLOFLOW_SERVER_PORT for server.port.
const EnvPrefix = "PHYLOFLOW"

// ScoringConfig describes the alignment scoring scheme.
type ScoringConfig struct {
	Match        int `mapstructure:"match" json:"match"`
	Mismatch     int `mapstructure:"mismatch" json:"mismatch"`
	GapExistence int `mapstructure:"gap_existence" json:"gap_existence"`
	GapExtension int `mapstructure:"gap_extension" json:"gap_extension"`
	// Alphabet is nucleotide or amino-acid.
	Alphabet string `mapstructure:"alphabet" json:"alphabet"`
	// Matrix names a substitution matrix preset; only blosum62 is known.
	// Empty means match/mismatch scoring.
	Matrix string `mapstructure:"matrix" json:"matrix,omitempty"`
}

// AlignmentConfig holds alignment defaults.
type AlignmentConfig struct {
	Mode string `mapstructure:"mode"`
	// MaxAlignments caps enumeration; 0 means every co-optimal alignment.
	MaxAlignments int `mapstructure:"max_alignments"`
}

// ClusterConfig holds tree building defaults.
type ClusterConfig struct {
	Method   string `mapstructure:"method"`
	Distance string `mapstructure:"distance"`
	KMer     int    `mapstructure:"kmer"`
	Metric   string `mapstructure:"metric"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
	// MaxAlignments is the most alignments one request may enumerate,
	// whatever the request asks for. 0 disables the ceiling.
	MaxAlignments int `mapstructure:"max_alignments"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Config is the root-level settings struct.
type Config struct {
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Alignment AlignmentConfig `mapstructure:"alignment"`
	Cluster   ClusterConfig   `mapstructure:"cluster"`
	Server    ServerConfig    `mapstructure:"server"`
	Log       logging.Config  `mapstructure:"log"`
}

// SetDefaults registers every known key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scoring.match", 1)
	v.SetDefault("scoring.mismatch", -1)
	v.SetDefault("scoring.gap_existence", -2)
	v.SetDefault("scoring.gap_extension", -1)
	v.SetDefault("scoring.alphabet", "nucleotide")
	v.SetDefault("scoring.matrix", "")

	v.SetDefault("alignment.mode", "global")
	v.SetDefault("alignment.max_alignments", 0)

	v.SetDefault("cluster.method", "upgma")
	v.SetDefault("cluster.distance", "alignment")
	v.SetDefault("cluster.kmer", 3)
	v.SetDefault("cluster.metric", "jaccard")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_body_bytes", int64(10<<20))
	v.SetDefault("server.max_alignments", 1000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.development", false)
}

// Load populates a Config from v. When path is empty, phyloflow.yaml is
// looked up in the working directory and $HOME/.phyloflow and may be
// absent; an explicit path must exist. A .env file in the working
// directory is loaded first when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("phyloflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.phyloflow")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadDotEnv exports the variables of each file that exists. Variables
// already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Validate checks that every enumerated setting names a known value.
func (c *Config) Validate() error {
	if _, err := c.Scheme(); err != nil {
		return err
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	if _, err := c.ClusterMethod(); err != nil {
		return err
	}
	if _, err := c.DistanceMethod(); err != nil {
		return err
	}
	if _, err := c.KMerMetric(); err != nil {
		return err
	}
	if c.Cluster.KMer <= 0 {
		return fmt.Errorf("cluster.kmer must be positive, got %d", c.Cluster.KMer)
	}
	if c.Alignment.MaxAlignments < 0 {
		return fmt.Errorf("alignment.max_alignments must not be negative")
	}
	if c.Server.MaxAlignments < 0 {
		return fmt.Errorf("server.max_alignments must not be negative")
	}
	return nil
}

// Scheme builds the configured scoring scheme.
func (c *Config) Scheme() (*alignment.Scheme, error) {
	return c.Scoring.Scheme()
}

// Scheme builds a scoring scheme from s.
func (s ScoringConfig) Scheme() (*alignment.Scheme, error) {
	switch strings.ToLower(s.Matrix) {
	case "":
	case "blosum62":
		return alignment.BLOSUM62(s.GapExistence, s.GapExtension)
	default:
		return nil, fmt.Errorf("unknown substitution matrix %q", s.Matrix)
	}

	alphabet, ok := sequence.ParseAlphabet(s.Alphabet)
	if !ok {
		return nil, fmt.Errorf("unknown alphabet %q", s.Alphabet)
	}
	return alignment.NewScheme(s.Match, s.Mismatch, s.GapExistence, s.GapExtension, alphabet)
}

// Mode returns the configured alignment mode.
func (c *Config) Mode() (alignment.Mode, error) {
	return alignment.ParseMode(c.Alignment.Mode)
}

// ClusterMethod returns the configured tree building method.
func (c *Config) ClusterMethod() (cluster.Method, error) {
	return cluster.ParseMethod(c.Cluster.Method)
}

// DistanceMethod returns the configured sequence distance.
func (c *Config) DistanceMethod() (distance.Method, error) {
	return distance.ParseMethod(c.Cluster.Distance)
}

// KMerMetric returns the configured k-mer profile metric.
func (c *Config) KMerMetric() (kmer.Metric, error) {
	return kmer.ParseMetric(c.Cluster.Metric)
}

// DistanceOptions returns builder options for the configured distance.
func (c *Config) DistanceOptions() ([]distance.Option, error) {
	scheme, err := c.Scheme()
	if err != nil {
		return nil, err
	}
	metric, err := c.KMerMetric()
	if err != nil {
		return nil, err
	}
	return []distance.Option{
		distance.WithScheme(scheme),
		distance.WithK(c.Cluster.KMer),
		distance.WithMetric(metric),
	}, nil
}
