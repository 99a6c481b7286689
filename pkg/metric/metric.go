package metric

import (
	"fmt"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rs/zerolog/log"

	"github.com/salesmlstack/revenue-predictor/pkg/logger"
)

var (
	// It is safe to use one Client from multiple goroutines simultaneously
	statsDClient *statsd.Client = getDefaultClient()

	// by default full sampling
	samplingRate float64 = 0.0
)

// Config carries the statsd agent address and the global tags attached to
// every metric emitted by the service.
type Config struct {
	Host         string
	Port         string
	Env          string
	ServiceName  string
	SamplingRate float64
}

func Init(conf Config) {
	samplingRate = conf.SamplingRate
	address := conf.Host + ":" + conf.Port
	globalTags := []string{
		"env:" + conf.Env,
		"service:" + conf.ServiceName,
	}

	client, err := statsd.New(
		address,
		statsd.WithTags(globalTags),
	)
	if err != nil {
		// In local/dev environments the statsd agent may not be running; log
		// and continue with the default client instead of crashing the service.
		logger.Error("StatsD client initialization failed, metrics will be unavailable", err)
		return
	}
	statsDClient = client
	logger.Info(fmt.Sprintf("Metrics client initialized with statsd address - %s, global tags - %v, and sampling rate - %f",
		address, globalTags, samplingRate))
}

func getDefaultClient() *statsd.Client {
	client, err := statsd.New("localhost:8125")
	if err != nil {
		client, _ = statsd.New("localhost:8125", statsd.WithoutTelemetry())
	}
	return client
}

func Timing(name string, value time.Duration, tags []string) {
	err := statsDClient.Timing(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().Err(err).Msg("Error occurred while doing statsd timing")
	}
}

func Count(name string, value int64, tags []string) {
	err := statsDClient.Count(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().Err(err).Msg("Error occurred while doing statsd count")
	}
}

func Gauge(name string, value float64, tags []string) {
	err := statsDClient.Gauge(name, value, tags, samplingRate)
	if err != nil {
		log.Warn().Err(err).Msg("Error occurred while doing statsd gauge")
	}
}
