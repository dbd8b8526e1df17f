package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New создает JSON-логгер сервиса, пишущий в stdout
func New(logLevel string) *logrus.Logger {
	return NewWithOutput(logLevel, os.Stdout, &logrus.JSONFormatter{})
}

// NewCLI - логгер для консольного клиента: текст в stderr, stdout остается для вывода команд
func NewCLI(logLevel string) *logrus.Logger {
	return NewWithOutput(logLevel, os.Stderr, &logrus.TextFormatter{FullTimestamp: true})
}

func NewWithOutput(logLevel string, out io.Writer, formatter logrus.Formatter) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(formatter)
	log.SetOutput(out)

	// Уровень логирования
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel // Уровень по умолчанию, если передан некорректный
	}
	log.SetLevel(level)
	return log
}
