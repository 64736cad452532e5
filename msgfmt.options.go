package msgfmt

import (
	"go.uber.org/zap"
)

// ParseOption is a functional option for Parse.
type ParseOption func(*parseConfig)

// parseConfig holds the configuration for one Parse call.
type parseConfig struct {
	classifier PluralClassifier
	maxDepth   int
	logger     *zap.Logger
}

// defaultParseConfig returns the default parse configuration.
func defaultParseConfig() *parseConfig {
	return &parseConfig{
		classifier: EnglishCardinal,
		maxDepth:   DefaultMaxDepth,
		logger:     nil,
	}
}

// WithClassifier sets the plural classifier given to every plural node of the message.
// Default: EnglishCardinal
func WithClassifier(classifier PluralClassifier) ParseOption {
	return func(c *parseConfig) {
		if classifier != nil {
			c.classifier = classifier
		}
	}
}

// WithMaxDepth sets the maximum nesting depth of plural/select branches.
// Use 0 for unlimited depth.
// Default: 32
func WithMaxDepth(depth int) ParseOption {
	return func(c *parseConfig) {
		c.maxDepth = depth
	}
}

// WithLogger sets the logger used while parsing.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) ParseOption {
	return func(c *parseConfig) {
		c.logger = logger
	}
}
