package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New собирает настроенный logrus-логгер. JSON используется по умолчанию,
// текстовый формат предназначен для локальной разработки.
func New(logLevel, logFormat string) *logrus.Logger {
	log := logrus.New()

	switch strings.ToLower(logFormat) {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	log.SetOutput(os.Stdout)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)
	return log
}
