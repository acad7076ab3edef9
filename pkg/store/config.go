package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultRowHeight      = 360
	DefaultViewportHeight = 720
	DefaultWidth          = 1024
)

// Config is everything the CLI needs to find data and lay out the catalog.
type Config interface {
	BasePath() string
	DataPath() string
	RowHeight() int
	ViewportHeight() int
	Width() int
}

// LoadConfig reads .tourcatalog.yaml from TOURCATALOG_CONFIG_PATH or the
// working directory. Every key can be overridden by a TOURCATALOG_ variable.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.tourcatalog.db")
	v.SetDefault("data", "")
	v.SetDefault("row_height", DefaultRowHeight)
	v.SetDefault("viewport_height", DefaultViewportHeight)
	v.SetDefault("width", DefaultWidth)
	v.SetConfigName(".tourcatalog") // .yaml is implicit
	v.SetEnvPrefix("TOURCATALOG")
	v.AutomaticEnv()

	if override := os.Getenv("TOURCATALOG_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	base, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	data, err := homedir.Expand(v.GetString("data"))
	if err != nil {
		return nil, fmt.Errorf("store: expand data: %w", err)
	}

	return &fileConfig{
		Path:        base,
		Data:        data,
		RowHeightPx: v.GetInt("row_height"),
		ViewportPx:  v.GetInt("viewport_height"),
		WidthPx:     v.GetInt("width"),
	}, nil
}

type fileConfig struct {
	Path        string `json:"path"`
	Data        string `json:"data"`
	RowHeightPx int    `json:"row_height"`
	ViewportPx  int    `json:"viewport_height"`
	WidthPx     int    `json:"width"`
}

func (f *fileConfig) BasePath() string    { return f.Path }
func (f *fileConfig) DataPath() string    { return f.Data }
func (f *fileConfig) RowHeight() int      { return f.RowHeightPx }
func (f *fileConfig) ViewportHeight() int { return f.ViewportPx }
func (f *fileConfig) Width() int          { return f.WidthPx }
