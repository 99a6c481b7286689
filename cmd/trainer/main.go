package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/salesmlstack/revenue-predictor/internal/artifact"
	"github.com/salesmlstack/revenue-predictor/internal/config"
	"github.com/salesmlstack/revenue-predictor/internal/model"
	"github.com/salesmlstack/revenue-predictor/internal/repositories/sql/sales"
	"github.com/salesmlstack/revenue-predictor/internal/training"
	"github.com/salesmlstack/revenue-predictor/pkg/infra"
	"github.com/salesmlstack/revenue-predictor/pkg/logger"
)

var appConfigs config.AppConfigs

func main() {
	viper.AutomaticEnv()
	viper.SetConfigName("application")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No application.env found, relying on environment variables")
	}
	config.Init(&appConfigs)
	conf := &appConfigs.Configs

	logger.Init(conf.ApplicationLogLevel, conf.ApplicationName+"-trainer")

	connection, err := infra.NewSQLConnection(infra.SQLConfig{
		Host:     conf.MySQLHost,
		Port:     conf.MySQLPort,
		DBName:   conf.MySQLDBName,
		Username: conf.MySQLUsername,
		Password: conf.MySQLPassword,
	})
	if err != nil {
		logger.Panic("Failed to connect to the sales warehouse", err)
	}
	repo, err := sales.NewRepository(connection)
	if err != nil {
		logger.Panic("Failed to build sales repository", err)
	}

	ctx := context.Background()
	store, err := artifact.NewFromConfig(ctx, conf)
	if err != nil {
		logger.Panic("Failed to initialize artifact store", err)
	}

	params := training.Params{
		SplitSeed:    conf.TrainerSplitSeed,
		EvalFraction: conf.TrainerEvalFraction,
		Model: model.TrainParams{
			Rounds:         conf.TrainerBoostRounds,
			LearningRate:   conf.TrainerLearningRate,
			MaxDepth:       conf.TrainerMaxTreeDepth,
			MinSamplesLeaf: 1,
		},
	}

	orchestrator := training.NewOrchestrator(repo, store, params)
	report, err := orchestrator.Run(ctx, conf.PipelineName)
	if err != nil {
		logger.Panic("Training run failed", err)
	}
	logger.Info(fmt.Sprintf("Training complete: %d rows (%d train / %d eval), eval R2=%.4f",
		report.TotalRows, report.TrainRows, report.EvalRows, report.Eval.R2))
}
