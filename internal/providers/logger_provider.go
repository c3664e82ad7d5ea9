package providers

import (
	"fmt"
	"os"
	"path/filepath"
	"sld/internal/structures"

	"github.com/rs/zerolog"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeMessage
	TypeCommand
	TypeHttp
	TypeStore
)

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

var typeFiles = map[TypeEnum]string{
	TypeApp:     "app.log",
	TypeMessage: "message.log",
	TypeCommand: "command.log",
	TypeHttp:    "http.log",
	TypeStore:   "store.log",
}

type LogProvider struct {
	loggers map[TypeEnum]zerolog.Logger
	files   []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	if info, err := os.Stat(conf.Logger.Dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("log dir %s is not usable", conf.Logger.Dir)
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]zerolog.Logger, len(typeFiles))}
	for t, name := range typeFiles {
		file, err := os.OpenFile(
			filepath.Join(conf.Logger.Dir, name),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			os.FileMode(conf.Logger.Mode),
		)
		if err != nil {
			lp.Close()
			return nil, err
		}
		lp.files = append(lp.files, file)

		var logger zerolog.Logger
		if conf.Debug {
			multi := zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
			logger = zerolog.New(multi)
		} else {
			logger = zerolog.New(file)
		}
		lp.loggers[t] = logger.Level(level).With().Timestamp().Logger()
	}

	return lp, nil
}

func (lp *LogProvider) log(t TypeEnum) zerolog.Logger {
	if logger, ok := lp.loggers[t]; ok {
		return logger
	}
	return lp.loggers[TypeApp]
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	logger := lp.log(t)
	logger.Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	logger := lp.log(t)
	logger.Warn().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	logger := lp.log(t)
	logger.Info().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	logger := lp.log(t)
	logger.Debug().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	logger := lp.log(t)
	logger.Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
}
