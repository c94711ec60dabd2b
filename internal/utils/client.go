package utils

import "github.com/MrSnakeDoc/altcat/internal/logger"

func Try(f func() error) {
	if err := f(); err != nil {
		logger.Debug("deferred cleanup failed: %v", err)
	}
}
