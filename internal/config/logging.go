package config

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// Logging sends log output to w at the given level.
func Logging(w io.Writer, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(lvl)
	return nil
}
