package sqlstore

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// slowQuery is the duration above which a statement is logged as a warning.
const slowQuery = 200 * time.Millisecond

// queryLogger writes gorm's output to zerolog.
//
// Every statement is logged at trace level with its duration and the number
// of rows it affected. Statements slower than slowQuery are warnings. Failed
// statements are errors, except for lookups of missing records: the storage
// reports those as absent, not as failures.
type queryLogger struct {
	log   zerolog.Logger
	level gorm_logger.LogLevel
}

func newQueryLogger(log zerolog.Logger) *queryLogger {
	return &queryLogger{log: log, level: gorm_logger.Info}
}

func (l *queryLogger) LogMode(level gorm_logger.LogLevel) gorm_logger.Interface {
	changed := *l
	changed.level = level
	return &changed
}

func (l *queryLogger) Info(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Info {
		l.log.Info().Msgf(s, args...)
	}
}

func (l *queryLogger) Warn(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Warn {
		l.log.Warn().Msgf(s, args...)
	}
}

func (l *queryLogger) Error(_ context.Context, s string, args ...any) {
	if l.level >= gorm_logger.Error {
		l.log.Error().Msgf(s, args...)
	}
}

func (l *queryLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gorm_logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("query failed")
	case elapsed > slowQuery && l.level >= gorm_logger.Warn:
		l.log.Warn().Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("slow query")
	case l.level >= gorm_logger.Info:
		l.log.Trace().Str("sql", sql).Int64("rows", rows).Dur("duration", elapsed).Msg("query")
	}
}
