package deliveryrecorder

import (
	"os"
	"strconv"
)

const defaultBatchSize = 50

type Config struct {
	Disabled bool
	RunID    string

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID string
	BigQueryDataset   string
	BigQueryTable     string
	BatchSize         int
}

func LoadConfig() *Config {
	cfg := &Config{
		Disabled: os.Getenv("DELIVERY_RECORDS_DISABLED") == "true",
		RunID:    os.Getenv("LOADTEST_RUN_ID"),

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "notification_deliveries"),

		BigQueryProjectID: getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:   getEnvOrDefault("BIGQUERY_DATASET", "notifications"),
		BigQueryTable:     getEnvOrDefault("BIGQUERY_TABLE", "deliveries"),
		BatchSize:         defaultBatchSize,
	}

	if v, err := strconv.Atoi(os.Getenv("DELIVERY_RECORDS_BATCH_SIZE")); err == nil && v > 0 {
		cfg.BatchSize = v
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
