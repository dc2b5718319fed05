package model

// params for Flags
type CommandLineFlags struct {
	Config   *string  `json:"config"`
	Dir      *string  `json:"dir"`
	DBPath   *string  `json:"dbpath"`
	Interval *float64 `json:"interval"`
	Backfill *bool    `json:"backfill"`
	Host     *string  `json:"host"`
	Port     *string  `json:"port"`
	Stdin    *bool    `json:"stdin"`
}
