package commands

import (
	"fmt"

	"github.com/RBSystems/vcpanel-go/pkg/log"
)

// RunFilter copies the events matching filter into a new log file and
// returns how many were written.
func RunFilter(path, output string, filter log.Filter) (int, error) {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := log.NewFileLogger(output)
	if err != nil {
		return 0, fmt.Errorf("failed to create output logger: %w", err)
	}

	count := 0
	err = reader.Each(func(event log.Event) error {
		logger.Log(event)
		count++
		return nil
	})
	if err != nil {
		_ = logger.Close()
		return count, fmt.Errorf("failed to read event: %w", err)
	}

	if err := logger.Close(); err != nil {
		return count, fmt.Errorf("failed to close output: %w", err)
	}
	if n := logger.Stats().Dropped; n > 0 {
		return count, fmt.Errorf("%d events could not be written", n)
	}
	return count, nil
}
