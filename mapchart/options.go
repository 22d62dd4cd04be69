package mapchart

import (
	log "github.com/sirupsen/logrus"
)

// Drop is the default LOD drop-off from the threshold that bounds a QTL
// interval, giving the LOD-2 interval.
const Drop = 2.0

type config struct {
	layout         Layout
	drop           float64
	legacyTrailing bool
	log            log.FieldLogger
}

// Option configures Generate.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{
		layout: Layouts[DefaultLayout],
		drop:   Drop,
		log:    log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLayout reads the matrix with a different column layout.
func WithLayout(l Layout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithDrop sets how far below the LOD threshold an interval may extend.
func WithDrop(drop float64) Option {
	return func(c *config) {
		c.drop = drop
	}
}

// WithLegacyTrailingGroup leaves the last linkage group of the matrix without
// QTLs, as MQ2 did: it only computed QTLs when the group key changed.
func WithLegacyTrailingGroup() Option {
	return func(c *config) {
		c.legacyTrailing = true
	}
}

// WithLogger sends log output to l instead of the standard logrus logger.
func WithLogger(l log.FieldLogger) Option {
	return func(c *config) {
		c.log = l
	}
}
