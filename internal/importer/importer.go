package importer

import (
	"io"

	"github.com/MrJamesThe3rd/haggle/internal/product"
)

// Format identifies a supported upload layout.
type Format string

const (
	FormatListings Format = "listings"
)

type Importer interface {
	Parse(r io.Reader) ([]product.CreateParams, error)
}
