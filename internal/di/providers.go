package di

import (
	"codetrack/internal/providers"
	"codetrack/internal/structures"
)

// ProvideLogger opens the log files and hands their closing to the injector
// cleanup.
func ProvideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}
