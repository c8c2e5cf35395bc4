package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultResultsFile = "results.csv"
	DefaultFormatFile  = "LABEL/MODRDR6.FMT"
	DefaultMaxRows     = -1
)

var (
	DefaultColumns     = []string{"TIMESTAMP", "PRESSURE"}
	DefaultLabelFields = []string{
		"SPACECRAFT_CLOCK_START_TIME",
		"SPACECRAFT_CLOCK_STOP_TIME",
		"SOLAR_LONGITUDE",
	}
)

type Config struct {
	ArchiveRoot string
	FormatFile  string
	ResultsFile string
	MaxRows     int
	Columns     []string
	LabelFields []string
	Archive     ArchiveConfig
}

// ArchiveConfig locates a remote copy of the archive in S3-compatible storage.
type ArchiveConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// Load reads .env when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ArchiveRoot: firstNonEmpty(strings.TrimSpace(os.Getenv("ROVER_ARCHIVE_ROOT")), "."),
		FormatFile:  firstNonEmpty(strings.TrimSpace(os.Getenv("ROVER_FORMAT_FILE")), DefaultFormatFile),
		ResultsFile: firstNonEmpty(strings.TrimSpace(os.Getenv("ROVER_RESULTS_FILE")), DefaultResultsFile),
		MaxRows:     envInt("ROVER_MAX_ROWS", DefaultMaxRows),
		Columns:     envList("ROVER_COLUMNS", DefaultColumns),
		LabelFields: envList("ROVER_LABEL_FIELDS", DefaultLabelFields),
		Archive:     loadArchiveConfig(),
	}
}

func loadArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		Endpoint:  strings.TrimSpace(os.Getenv("ARCHIVE_S3_ENDPOINT")),
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARCHIVE_S3_REGION")), "us-east-1"),
		AccessKey: strings.TrimSpace(os.Getenv("ARCHIVE_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("ARCHIVE_S3_SECRET_KEY")),
		Bucket:    strings.TrimSpace(os.Getenv("ARCHIVE_S3_BUCKET")),
		Prefix:    strings.TrimSpace(os.Getenv("ARCHIVE_S3_PREFIX")),
		UseSSL:    envBool("ARCHIVE_S3_USE_SSL", true),
	}
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// envList splits a comma separated variable. Set but empty means an empty list.
func envList(key string, def []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return append([]string(nil), def...)
	}
	return SplitList(raw)
}

// SplitList splits on commas and drops blank entries.
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
