package usecase

import "github.com/runoshun/idraft/internal/domain"

type nopLogger struct{}

func (nopLogger) Debug(string, string) {}
func (nopLogger) Info(string, string) {}
func (nopLogger) Warn(string, string) {}
func (nopLogger) Error(string, string) {}

func loggerOrNop(logger domain.Logger) domain.Logger {
	if logger == nil {
		return nopLogger{}
	}
	return logger
}
