package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/haggle/internal/apperr"
	"github.com/MrJamesThe3rd/haggle/internal/auth"
	productv1 "github.com/MrJamesThe3rd/haggle/internal/http/product"
	"github.com/MrJamesThe3rd/haggle/internal/http/middleware"
	"github.com/MrJamesThe3rd/haggle/internal/http/respond"
	"github.com/MrJamesThe3rd/haggle/internal/importer"
	"github.com/MrJamesThe3rd/haggle/internal/product"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc  *importer.Service
	productSvc *product.Service
}

func NewHandler(importSvc *importer.Service, productSvc *product.Service) *Handler {
	return &Handler{
		importSvc:  importSvc,
		productSvc: productSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(middleware.RequireIdentity)
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int                  `json:"imported"`
	Products []productv1.Response `json:"products"`
}

// importCSV creates every listing of the uploaded file, or none of them.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)

	if err := r.ParseMultipartForm(maxUpload); err != nil {
		respond.Error(w, r, apperr.Validation("failed to parse form: %s", err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, r, apperr.Validation("file field is required"))
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	ps, err := h.productSvc.ImportBatch(r.Context(), auth.FromContext(r.Context()), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported: len(ps),
		Products: productv1.ToResponseList(ps),
	})
}
