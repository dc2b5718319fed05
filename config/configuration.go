package config

import (
	"strings"

	"github.com/spf13/viper"
)

type WatcherConfiguration struct {
	// Dir is the directory BenchVue exports into.
	Dir           string  `json:"dir" mapstructure:"dir"`
	Backfill      bool    `json:"backfill" mapstructure:"backfill"`
	PollIntervalS float64 `json:"poll_interval_s" mapstructure:"poll_interval_s"`
	AliasFile     string  `json:"alias_file" mapstructure:"alias_file"`
}

type SinkConfiguration struct {
	DBPath        string `json:"db_path" mapstructure:"db_path"`
	FlushRows     int    `json:"flush_rows" mapstructure:"flush_rows"`
	FlushTimeoutS int    `json:"flush_timeout_s" mapstructure:"flush_timeout_s"`
}

type Configuration struct {
	Watcher WatcherConfiguration `json:"watcher" mapstructure:"watcher"`
	Sink    SinkConfiguration    `json:"sink" mapstructure:"sink"`
	Host    string               `json:"host" mapstructure:"host"`
	Port    string               `json:"port" mapstructure:"port"`
}

var Config *Configuration

// InitConfig populates the Config singleton from the optional config file,
// environment (BENCHPIPE_* variables) and defaults, in that order of
// precedence from lowest to highest.
func InitConfig(file string) {
	viper.SetDefault("watcher.dir", "")
	viper.SetDefault("watcher.backfill", false)
	viper.SetDefault("watcher.poll_interval_s", 1.0)
	viper.SetDefault("watcher.alias_file", "")
	viper.SetDefault("sink.db_path", "benchvue.db")
	viper.SetDefault("sink.flush_rows", 250)
	viper.SetDefault("sink.flush_timeout_s", 2)
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", "8123")

	viper.SetEnvPrefix("BENCHPIPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			panic(err)
		}
	}
	Config = &Configuration{}
	if err := viper.Unmarshal(Config); err != nil {
		panic(err)
	}
}
