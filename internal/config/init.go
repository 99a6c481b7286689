package config

import (
	"log"

	"github.com/spf13/viper"
)

// Init binds environment variables and unmarshals them into the given
// AppConfigs. Defaults cover local development so the service starts on a
// laptop with no env file at all.
func Init(appConfigs *AppConfigs) {
	setDefaults()
	bindEnvVars()

	if err := viper.Unmarshal(&appConfigs.Configs); err != nil {
		log.Fatalf("Failed to unmarshal config from environment: %v", err)
	}

	log.Println("Configuration loaded from environment variables")
}

func setDefaults() {
	viper.SetDefault("app_env", "dev")
	viper.SetDefault("app_log_level", "INFO")
	viper.SetDefault("app_name", "revenue-predictor")
	viper.SetDefault("app_port", 8080)

	viper.SetDefault("pipeline_name", "xgboost_model")

	viper.SetDefault("artifactStore_backend", "fs")
	viper.SetDefault("artifactStore_dir", "models")

	viper.SetDefault("metrics_sampling_rate", 1.0)
	viper.SetDefault("statsd_host", "localhost")
	viper.SetDefault("statsd_port", "8125")

	viper.SetDefault("cors_allowedOrigins", "*")

	viper.SetDefault("mysql_host", "localhost")
	viper.SetDefault("mysql_port", 3306)

	viper.SetDefault("trainer_splitSeed", 42)
	viper.SetDefault("trainer_evalFraction", 0.2)
	viper.SetDefault("trainer_boostRounds", 100)
	viper.SetDefault("trainer_learningRate", 0.3)
	viper.SetDefault("trainer_maxTreeDepth", 6)
}

// Manually bind environment variables to mapstructure keys. This ensures
// proper mapping from env vars to struct fields.
func bindEnvVars() {
	// Application config
	viper.BindEnv("app_env", "APP_ENV")
	viper.BindEnv("app_log_level", "APP_LOG_LEVEL")
	viper.BindEnv("app_name", "APP_NAME")
	viper.BindEnv("app_port", "APP_PORT")

	// Pipeline config
	viper.BindEnv("pipeline_name", "PIPELINE_NAME")

	// Artifact store config
	viper.BindEnv("artifactStore_backend", "ARTIFACT_STORE_BACKEND")
	viper.BindEnv("artifactStore_dir", "ARTIFACT_STORE_DIR")
	viper.BindEnv("artifactStore_bucket", "ARTIFACT_STORE_BUCKET")
	viper.BindEnv("artifactStore_region", "ARTIFACT_STORE_REGION")
	viper.BindEnv("artifactStore_accessKeyId", "ARTIFACT_STORE_ACCESS_KEY_ID")
	viper.BindEnv("artifactStore_secretAccessKey", "ARTIFACT_STORE_SECRET_ACCESS_KEY")
	viper.BindEnv("artifactStore_prefix", "ARTIFACT_STORE_PREFIX")
	viper.BindEnv("artifactStore_endpoint", "ARTIFACT_STORE_ENDPOINT")

	// Metrics / statsd config
	viper.BindEnv("metrics_sampling_rate", "METRIC_SAMPLING_RATE")
	viper.BindEnv("statsd_host", "STATSD_HOST")
	viper.BindEnv("statsd_port", "STATSD_PORT")

	// CORS config
	viper.BindEnv("cors_allowedOrigins", "CORS_ALLOWED_ORIGINS")

	// MySQL config
	viper.BindEnv("mysql_host", "MYSQL_HOST")
	viper.BindEnv("mysql_port", "MYSQL_PORT")
	viper.BindEnv("mysql_dbName", "MYSQL_DB_NAME")
	viper.BindEnv("mysql_username", "MYSQL_USERNAME")
	viper.BindEnv("mysql_password", "MYSQL_PASSWORD")

	// Trainer config
	viper.BindEnv("trainer_splitSeed", "TRAINER_SPLIT_SEED")
	viper.BindEnv("trainer_evalFraction", "TRAINER_EVAL_FRACTION")
	viper.BindEnv("trainer_boostRounds", "TRAINER_BOOST_ROUNDS")
	viper.BindEnv("trainer_learningRate", "TRAINER_LEARNING_RATE")
	viper.BindEnv("trainer_maxTreeDepth", "TRAINER_MAX_TREE_DEPTH")
}
