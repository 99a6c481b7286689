package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/salesmlstack/revenue-predictor/internal/artifact"
	"github.com/salesmlstack/revenue-predictor/internal/config"
	"github.com/salesmlstack/revenue-predictor/internal/predictor"
	httpserver "github.com/salesmlstack/revenue-predictor/internal/server/http"
	"github.com/salesmlstack/revenue-predictor/pkg/logger"
	"github.com/salesmlstack/revenue-predictor/pkg/metric"
)

var appConfigs config.AppConfigs

func main() {
	viper.AutomaticEnv()
	viper.SetConfigName("application") // file name without .env
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No application.env found, relying on environment variables")
	}
	config.Init(&appConfigs)
	conf := &appConfigs.Configs

	logger.Init(conf.ApplicationLogLevel, conf.ApplicationName)
	metric.Init(metric.Config{
		Host:         conf.StatsdHost,
		Port:         conf.StatsdPort,
		Env:          conf.ApplicationEnv,
		ServiceName:  conf.ApplicationName,
		SamplingRate: conf.MetricsSamplingRate,
	})

	ctx := context.Background()
	store, err := artifact.NewFromConfig(ctx, conf)
	if err != nil {
		logger.Panic("Failed to initialize artifact store", err)
	}

	// The pipeline loads exactly once, before the server accepts traffic.
	// A failed load is a startup failure, never a per-request retry.
	svc := predictor.New(store)
	if err := svc.Init(ctx, conf.PipelineName); err != nil {
		logger.Panic(fmt.Sprintf("Failed to load pipeline %s, refusing to serve", conf.PipelineName), err)
	}

	router := httpserver.New(conf, svc)
	if err := httpserver.Run(router, conf.ApplicationPort); err != nil {
		logger.Panic("HTTP server exited", err)
	}
}
