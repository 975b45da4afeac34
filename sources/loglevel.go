package sources

import (
	"fmt"
	"strings"

	ffms "github.com/GreatValueCreamSoda/goffms2"
)

var logLevels = map[string]ffms.LogLevel{
	"quiet":   ffms.LogQuiet,
	"panic":   ffms.LogPanic,
	"fatal":   ffms.LogFatal,
	"error":   ffms.LogError,
	"warning": ffms.LogWarning,
	"info":    ffms.LogInfo,
	"verbose": ffms.LogVerbose,
	"debug":   ffms.LogDebug,
	"trace":   ffms.LogTrace,
}

// ParseLogLevel resolves a libav log level name.
func ParseLogLevel(name string) (ffms.LogLevel, error) {
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ffms.LogQuiet, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// SetLogLevel sets the verbosity of ffms2 and the libav libraries under it.
func SetLogLevel(name string) error {
	level, err := ParseLogLevel(name)
	if err != nil {
		return err
	}
	ffms.SetLogLevel(level)
	return nil
}
