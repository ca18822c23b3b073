package log

import (
	"os"

	"github.com/Luismorlan/postboard/utils/dotenv"
	"github.com/Luismorlan/postboard/utils/flag"
	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Send log to stderr. In prod use the JSON formatter so the log collector
	// can parse fields, in development keep the plain text formatter for
	// better readability.
	logger.SetOutput(os.Stderr)
	if os.Getenv("POSTBOARD_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	Log = logger.WithFields(
		logrus.Fields{"service": flag.ServiceName, "is_development": os.Getenv("POSTBOARD_ENV") != dotenv.ProdEnv},
	)
}
