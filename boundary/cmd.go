package boundary

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// DefaultPath is the SikSik site shapefile, relative to the working directory.
const DefaultPath = "SikSik_shp/SikSik.shp"

// Main prints the Summary of a site shapefile.
type Main struct {
	Boundary string `help:"Shapefile holding the site polygon. The first feature is used."`

	Stdout io.Writer `flag:"-"`
}

// NewMain gets a new Main with the default configuration.
func NewMain() *Main {
	return &Main{
		Boundary: DefaultPath,
		Stdout:   os.Stdout,
	}
}

// Run loads the boundary and prints its summary.
func (m *Main) Run() error {
	b, err := Load(m.Boundary)
	if err != nil {
		return errors.Wrap(err, "loading boundary")
	}
	s, err := b.Summary()
	if err != nil {
		return errors.Wrap(err, "summarizing boundary")
	}
	_, err = fmt.Fprint(m.Stdout, s)
	return errors.Wrap(err, "writing summary")
}
