package logger

import (
	"os"
	"time"

	"github.com/petify/reservation-slots-service/internal/core/ports/out"
	"github.com/rs/zerolog"
)

type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger builds the root logger. Timestamps use the configured
// timezone; local runs get the pretty console writer.
func NewZerologLogger(timezone string, pretty bool) (*ZerologLogger, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}

	l := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if pretty {
		l = l.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02 15:04:05.000"})
	}

	return &ZerologLogger{logger: l}, nil
}

// Nop returns a logger that discards everything; used in tests.
func Nop() *ZerologLogger {
	return &ZerologLogger{logger: zerolog.Nop()}
}

func (l *ZerologLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return &ZerologLogger{
		logger: l.logger.With().Fields(map[string]interface{}(fields)).Logger(),
	}
}

func (l *ZerologLogger) WithModule(module string) out.LoggerPort {
	return &ZerologLogger{
		logger: l.logger.With().Str("module", module).Logger(),
	}
}

func (l *ZerologLogger) Debug(event string, fields out.LogFields) {
	l.logger.Debug().Fields(map[string]interface{}(fields)).Msg(event)
}

func (l *ZerologLogger) Info(event string, fields out.LogFields) {
	l.logger.Info().Fields(map[string]interface{}(fields)).Msg(event)
}

func (l *ZerologLogger) Warn(event string, fields out.LogFields) {
	l.logger.Warn().Fields(map[string]interface{}(fields)).Msg(event)
}

func (l *ZerologLogger) Error(event string, fields out.LogFields) {
	l.logger.Error().Fields(map[string]interface{}(fields)).Msg(event)
}
