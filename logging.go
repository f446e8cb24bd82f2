// logging.go - structured control-thread logging

package main

import (
	log "github.com/sirupsen/logrus"
)

// configureLogging sets the global logrus level from a config string.
// Unrecognized levels fall back to Info.
func configureLogging(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}
