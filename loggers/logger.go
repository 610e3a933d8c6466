package logger

import "github.com/sirupsen/logrus"

// Init builds the process logger. Components receive it (or an Entry derived
// from it) through their constructors instead of reaching for a global.
func Init(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.DebugLevel
	}
	log.SetLevel(parsed)
	return log
}
