package config

// Configs holds every static configuration knob of the service, bound from
// environment variables through viper.
type Configs struct {
	ApplicationEnv      string `mapstructure:"app_env"`
	ApplicationLogLevel string `mapstructure:"app_log_level"`
	ApplicationName     string `mapstructure:"app_name"`
	ApplicationPort     int    `mapstructure:"app_port"`

	//pipeline-config
	PipelineName string `mapstructure:"pipeline_name"`

	//artifact-store-config
	ArtifactStoreBackend  string `mapstructure:"artifactStore_backend"`
	ArtifactStoreDir      string `mapstructure:"artifactStore_dir"`
	ArtifactStoreBucket   string `mapstructure:"artifactStore_bucket"`
	ArtifactStoreRegion   string `mapstructure:"artifactStore_region"`
	ArtifactStoreAccess   string `mapstructure:"artifactStore_accessKeyId"`
	ArtifactStoreSecret   string `mapstructure:"artifactStore_secretAccessKey"`
	ArtifactStorePrefix   string `mapstructure:"artifactStore_prefix"`
	ArtifactStoreEndpoint string `mapstructure:"artifactStore_endpoint"`

	//statsd-config
	MetricsSamplingRate float64 `mapstructure:"metrics_sampling_rate"`
	StatsdHost          string  `mapstructure:"statsd_host"`
	StatsdPort          string  `mapstructure:"statsd_port"`

	//cors-config
	CorsAllowedOrigins string `mapstructure:"cors_allowedOrigins"`

	//mysql-config, used by the trainer only
	MySQLHost     string `mapstructure:"mysql_host"`
	MySQLPort     int    `mapstructure:"mysql_port"`
	MySQLDBName   string `mapstructure:"mysql_dbName"`
	MySQLUsername string `mapstructure:"mysql_username"`
	MySQLPassword string `mapstructure:"mysql_password"`

	//trainer-config
	TrainerSplitSeed    int64   `mapstructure:"trainer_splitSeed"`
	TrainerEvalFraction float64 `mapstructure:"trainer_evalFraction"`
	TrainerBoostRounds  int     `mapstructure:"trainer_boostRounds"`
	TrainerLearningRate float64 `mapstructure:"trainer_learningRate"`
	TrainerMaxTreeDepth int     `mapstructure:"trainer_maxTreeDepth"`
}

type AppConfigs struct {
	Configs Configs
}
