/*
Package lvtile converts trees of raster map tiles into LVGL binary image
files suitable for embedded map displays.

Tiles are expected in the usual slippy map layout, <root>/<zoom>/<x>/<y>.png,
and are written to the same layout under a separate root with a .bin
extension. Image decoders must be registered by the caller, typically by
blank importing the relevant standard library packages.
*/
package lvtile

import "log"

// Config carries the settings for one conversion run and is immutable once
// constructed.
type Config struct {
	// InputRoot is the directory holding the zoom/x/y source tiles.
	InputRoot string

	// OutputRoot is the directory the .bin tiles are written under,
	// mirroring the input layout. Directories are created on demand.
	OutputRoot string

	// Jobs is the number of concurrent workers. Values below two run
	// the batch serially.
	Jobs int

	// Force rewrites tiles whose output file already exists.
	Force bool
}

// Converter runs tile conversion batches.
type Converter struct {
	config Config
	logger *log.Logger
}

// New returns a Converter using the given configuration and logger.
func New(config Config, logger *log.Logger) *Converter {
	return &Converter{
		config: config,
		logger: logger,
	}
}
