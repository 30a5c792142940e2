package config

import "go.uber.org/zap"

// setLogger builds the zap logger for the given environment name. Anything
// other than development or production gets the example logger so local runs
// and tests stay deterministic.
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		return zap.NewDevelopment()
	case "production":
		return zap.NewProduction()
	default:
		return zap.NewExample(), nil
	}
}
