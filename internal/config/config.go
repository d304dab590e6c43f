package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/bikeshare-cli/internal/tripdata"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Window  WindowConfig  `yaml:"window" mapstructure:"window"`
	Geo     GeoConfig     `yaml:"geo" mapstructure:"geo"`
	Cluster ClusterConfig `yaml:"cluster" mapstructure:"cluster"`
	Charts  ChartsConfig  `yaml:"charts" mapstructure:"charts"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig lists the input files and the cleaned CSV cache.
type DataConfig struct {
	BikePath           string `yaml:"bike_path" mapstructure:"bike_path"`
	StationPath        string `yaml:"station_path" mapstructure:"station_path"`
	CleanedBikePath    string `yaml:"cleaned_bike_path" mapstructure:"cleaned_bike_path"`
	CleanedStationPath string `yaml:"cleaned_station_path" mapstructure:"cleaned_station_path"`
	BoundaryPath       string `yaml:"boundary_path" mapstructure:"boundary_path"`
	Encoding           string `yaml:"encoding" mapstructure:"encoding"`
}

// WindowConfig bounds the trips kept by cleaning: start inclusive, end exclusive.
type WindowConfig struct {
	Layout string `yaml:"layout" mapstructure:"layout"`
	Start  string `yaml:"start" mapstructure:"start"`
	End    string `yaml:"end" mapstructure:"end"`
}

// GeoConfig selects the source and projected coordinate reference systems.
type GeoConfig struct {
	SourceEPSG  int `yaml:"source_epsg" mapstructure:"source_epsg"`
	ProjectEPSG int `yaml:"project_epsg" mapstructure:"project_epsg"`
	CacheSize   int `yaml:"cache_size" mapstructure:"cache_size"`
}

// ClusterConfig holds the DBSCAN parameters. Eps is in projected CRS units.
type ClusterConfig struct {
	Eps        float64 `yaml:"eps" mapstructure:"eps"`
	MinSamples int     `yaml:"min_samples" mapstructure:"min_samples"`
}

// HourRange is a highlighted band on the hourly trend chart.
type HourRange struct {
	Start int `yaml:"start" mapstructure:"start"`
	End   int `yaml:"end" mapstructure:"end"`
}

// ChartsConfig configures chart rendering.
type ChartsConfig struct {
	OutputDir string      `yaml:"output_dir" mapstructure:"output_dir"`
	RushHours []HourRange `yaml:"rush_hours" mapstructure:"rush_hours"`
	KDEPoints int         `yaml:"kde_points" mapstructure:"kde_points"`
}

// ReportConfig configures statistic report output.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	Format    string `yaml:"format" mapstructure:"format"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. An empty path searches
// the working directory for config.yaml.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix("BIKESHARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.bike_path", "./data_raw/chicago_data.csv")
	v.SetDefault("data.station_path", "./data_raw/station.csv")
	v.SetDefault("data.cleaned_bike_path", "./data_cleaned/chicago_data_cleaned.csv")
	v.SetDefault("data.cleaned_station_path", "./data_cleaned/station_cleaned.csv")
	v.SetDefault("data.boundary_path", "./data_raw/chicago.geojson")
	v.SetDefault("data.encoding", "utf-8")
	v.SetDefault("window.layout", "2006-01-02 15:04:05")
	v.SetDefault("window.start", "2019-07-25 00:00:00")
	v.SetDefault("window.end", "2019-07-26 00:00:00")
	v.SetDefault("geo.source_epsg", 4326)
	v.SetDefault("geo.project_epsg", 26916)
	v.SetDefault("geo.cache_size", 4096)
	v.SetDefault("cluster.eps", 600.0)
	v.SetDefault("cluster.min_samples", 3)
	v.SetDefault("charts.output_dir", "./charts")
	v.SetDefault("charts.rush_hours", []map[string]int{
		{"start": 7, "end": 9},
		{"start": 16, "end": 18},
	})
	v.SetDefault("charts.kde_points", 200)
	v.SetDefault("report.output_dir", "./reports")
	v.SetDefault("report.format", "table")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings every command relies on.
func (c *Config) Validate() error {
	var errs []string

	if _, err := tripdata.NewWindow(c.Window.Start, c.Window.End, c.Window.Layout); err != nil {
		errs = append(errs, "window: "+err.Error())
	}

	if c.Geo.SourceEPSG <= 0 || c.Geo.ProjectEPSG <= 0 {
		errs = append(errs, "geo.source_epsg and geo.project_epsg must be positive")
	}
	if c.Cluster.Eps <= 0 {
		errs = append(errs, "cluster.eps must be positive")
	}
	if c.Cluster.MinSamples < 1 {
		errs = append(errs, "cluster.min_samples must be at least 1")
	}
	for _, r := range c.Charts.RushHours {
		if r.Start < 0 || r.End > 24 || r.Start >= r.End {
			errs = append(errs, "charts.rush_hours entries must satisfy 0 <= start < end <= 24")
			break
		}
	}

	switch c.Report.Format {
	case "table", "yaml", "xlsx":
	default:
		errs = append(errs, "report.format must be one of table, yaml, xlsx")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
