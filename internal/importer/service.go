package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/importer/listings"
	"github.com/MrJamesThe3rd/haggle/internal/product"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatListings: listings.NewParser(),
		},
	}
}

// Import parses r in the given format. An empty format means listings.
func (s *Service) Import(format Format, r io.Reader) ([]product.CreateParams, error) {
	if format == "" {
		format = FormatListings
	}

	imp, ok := s.importers[format]
	if !ok {
		return nil, apperr.Validation("unknown import format: %s", format)
	}

	params, err := imp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrValidation, err)
	}

	return params, nil
}
