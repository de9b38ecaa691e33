package startup

import (
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"

	"github.com/Mazharul-Islam-2046/bnBreeze-server/startup/config"
)

// NewLogger writes to stdout and, when LOG_FILE is set, to a daily rotated file as well.
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	if cfg.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	}

	if cfg.LogFile == "" {
		logger.SetOutput(os.Stdout)
		return logger, nil
	}

	writer, err := rotatelogs.New(
		cfg.LogFile+"_%Y%m%d",
		rotatelogs.WithLinkName(cfg.LogFile),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(7*24*time.Hour),
	)
	if err != nil {
		return nil, err
	}
	logger.SetOutput(io.MultiWriter(os.Stdout, writer))
	return logger, nil
}
