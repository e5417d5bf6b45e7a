// Package agroseries splits, reshapes and joins the IBGE agricultural
// production workbook.
package agroseries

import (
	"github.com/ukaji3/agroseries-go/pkg/agroseries/parser"
	"go.uber.org/zap"
)

// Options configures reading and logging.
type Options struct {
	// Layout locates the header rows of the wide sheets.
	Layout parser.Layout
	// Logger receives progress messages. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultOptions returns options for the default SIDRA layout.
func DefaultOptions() Options {
	return Options{
		Layout: parser.DefaultLayout(),
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
