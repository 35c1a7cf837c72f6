package rxload

import "github.com/sirupsen/logrus"

type Logger interface {
	WithField(string, interface{}) Logger
	With(map[string]interface{}) Logger

	Debugf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Errorf(string, ...interface{})

	Debug(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Error(...interface{})

	Debugln(...interface{})
	Infoln(...interface{})
	Warnln(...interface{})
	Errorln(...interface{})
}

// NewLogger returns a Logger backed by the standard logrus logger.
func NewLogger() Logger {
	return &logrusLoggerWrapper{
		logrus.StandardLogger(),
	}
}

type logrusLoggerWrapper struct {
	*logrus.Logger
}

func (l *logrusLoggerWrapper) WithField(field string, value interface{}) Logger {
	return &logrusEntryWrapper{l.Logger.WithField(field, value)}
}

func (l *logrusLoggerWrapper) With(fields map[string]interface{}) Logger {
	return &logrusEntryWrapper{l.Logger.WithFields(fields)}
}

type logrusEntryWrapper struct {
	*logrus.Entry
}

func (e *logrusEntryWrapper) WithField(field string, value interface{}) Logger {
	return &logrusEntryWrapper{e.Entry.WithField(field, value)}
}

func (e *logrusEntryWrapper) With(fields map[string]interface{}) Logger {
	return &logrusEntryWrapper{e.Entry.WithFields(fields)}
}

func parseLevel(name string) logrus.Level {
	switch name {
	case "DEBUG":
		return logrus.DebugLevel
	case "WARN":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	case "FATAL":
		return logrus.FatalLevel
	case "PANIC":
		return logrus.PanicLevel
	default:
		return logrus.InfoLevel
	}
}

func formatter(name string) logrus.Formatter {
	switch name {
	case "json":
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		}
	default:
		return &logrus.TextFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FullTimestamp:   true,
		}
	}
}

// ConfigureLogging applies "rxload.log.level" and "rxload.log.formatter"
// from conf to the standard logrus logger. It runs once at init against
// Settings(); call it again after changing the configuration.
func ConfigureLogging(conf Config) {
	logrus.SetLevel(parseLevel(conf.GetStringDefault("rxload.log.level", "INFO")))
	logrus.SetFormatter(formatter(conf.GetStringDefault("rxload.log.formatter", "text")))
}

func init() {
	ConfigureLogging(config())
}
