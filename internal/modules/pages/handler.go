package pages

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/MousScales/Momsites/internal/pkg/response"
)

// Routes maps each served path to its file in the static directory.
var Routes = map[string]string{
	"/":                     "index.html",
	"/booking.html":         "booking.html",
	"/booking-success.html": "booking-success.html",
	"/catalog.html":         "catalog.html",
	"/product.html":         "product.html",
	"/admin.html":           "admin.html",
}

type Handler struct {
	dir string
}

func NewHandler(staticDir string) *Handler {
	return &Handler{dir: staticDir}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	for path, file := range Routes {
		r.GET(path, h.serve(file))
	}
}

func (h *Handler) serve(file string) gin.HandlerFunc {
	full := filepath.Join(h.dir, file)
	return func(c *gin.Context) {
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			response.Error(c, http.StatusNotFound, "page not found")
			return
		}
		c.File(full)
	}
}
