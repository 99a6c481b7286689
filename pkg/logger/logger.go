package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger with the given level and tags
// every line with the service name.
func Init(level, serviceName string) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "INFO":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "FATAL":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "DISABLED":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	default:
		Panic(fmt.Sprintf("Incorrect log level %s", level), nil)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().
		Str("service", serviceName).Logger()
	Info("Logger initialized!")
}

func Debug(message string) {
	log.Debug().Msg(message)
}

func Info(message string) {
	log.Info().Msg(message)
}

func Warn(message string, err error) {
	log.Warn().Err(err).Msg(message)
}

func Error(message string, err error) {
	log.Error().Err(err).Msg(message)
}

func Panic(message string, err error) {
	log.Panic().Err(err).Msg(message)
}
