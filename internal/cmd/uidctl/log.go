package uidctl

import (
	"os"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkglog"
)

func setLogLevel(level string) error {
	if level == "" {
		level = os.Getenv("JSRUID_LOG_LEVEL")
	}
	return pkglog.SetLevel(level)
}
