package log

import (
	"io"

	"github.com/rs/zerolog"
)

type zeroLogger struct {
	log *zerolog.Logger
}

func newZeroLogger(level zerolog.Level, w io.Writer) *zeroLogger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()

	return &zeroLogger{
		&zl,
	}
}

func (zl *zeroLogger) Trace(msg string) {
	zl.log.Trace().Msg(msg)
}

func (zl *zeroLogger) Tracef(format string, args ...interface{}) {
	zl.log.Trace().Msgf(format, args...)
}

func (zl *zeroLogger) Debug(msg string) {
	zl.log.Debug().Msg(msg)
}

func (zl *zeroLogger) Debugf(format string, args ...interface{}) {
	zl.log.Debug().Msgf(format, args...)
}

func (zl *zeroLogger) Info(msg string) {
	zl.log.Info().Msg(msg)
}

func (zl *zeroLogger) Infof(format string, args ...interface{}) {
	zl.log.Info().Msgf(format, args...)
}

func (zl *zeroLogger) Warn(msg string) {
	zl.log.Warn().Msg(msg)
}

func (zl *zeroLogger) Warnf(format string, args ...interface{}) {
	zl.log.Warn().Msgf(format, args...)
}

func (zl *zeroLogger) Error(msg string) {
	zl.log.Error().Msg(msg)
}

func (zl *zeroLogger) Errorf(format string, args ...interface{}) {
	zl.log.Error().Msgf(format, args...)
}

func (zl *zeroLogger) Fatal(msg string) {
	zl.log.Fatal().Msg(msg)
}

func (zl *zeroLogger) Fatalf(format string, args ...interface{}) {
	zl.log.Fatal().Msgf(format, args...)
}

func (zl *zeroLogger) Panic(msg string) {
	zl.log.Panic().Msg(msg)
}

func (zl *zeroLogger) Panicf(format string, args ...interface{}) {
	zl.log.Panic().Msgf(format, args...)
}

func (zl *zeroLogger) UpdateLoggerLevel(level LogLevel) {
	zlNew := zl.log.Level(ToZerologLevel(level))
	zl.log = &zlNew
}

func (zl *zeroLogger) createModuleLogger(level zerolog.Level, module string) *zeroLogger {
	mLog := zl.log.With().Str("module", module).Logger().Level(level)

	return &zeroLogger{
		&mLog,
	}
}
