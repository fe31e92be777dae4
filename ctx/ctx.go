package ctx

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Context is a context.Context that carries a logger with the fields
// attached along the call chain.
type Context interface {
	context.Context
	Log() *logrus.Entry
}

func New(parent context.Context) Context {
	if c, ok := parent.(Context); ok {
		return c
	}
	return &ctx{
		Context: parent,
		log:     logrus.WithContext(parent),
	}
}

// With returns a child context whose logger has the field set.
func With(parent context.Context, key string, value interface{}) Context {
	c := New(parent)
	return &ctx{
		Context: c,
		log:     c.Log().WithField(key, value),
	}
}

type ctx struct {
	context.Context
	log *logrus.Entry
}

func (c *ctx) Log() *logrus.Entry {
	return c.log
}

func Background() Context {
	return New(context.Background())
}
