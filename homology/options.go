package homology

// Copyright (c) 2025 Colin McRae

import "go.uber.org/zap"

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger that receives a debug entry per computed
// dimension. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithVerification makes the extractor check every Smith normal form it
// computes with snf.Decomposition.Verify before using it.
func WithVerification() Option {
	return func(e *Extractor) {
		e.verify = true
	}
}
