package config

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

func initLogger() {
	logConf := AppConfig.Log

	log.SetOutput(os.Stdout)
	if strings.EqualFold(logConf.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(logConf.Level)
	if err != nil {
		log.WithField("level", logConf.Level).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
