package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"almacen/internal/domain/catalogs/dependency"
	"almacen/internal/infrastructure/http/v1/dto"
)

// DependencyCatalogHandler is a type alias to shorten signatures.
type DependencyCatalogHandler = CatalogHandler[
	*dependency.Dependency,
	dto.CreateDependencyRequest,
	dto.UpdateDependencyRequest,
]

// DependencyHandler extends the generic catalog handler with
// dependency-specific endpoints.
type DependencyHandler struct {
	*DependencyCatalogHandler
	service *dependency.Service
}

// NewDependencyHandler wires the generic catalog handler for dependencies.
func NewDependencyHandler(
	base *BaseHandler,
	service *dependency.Service,
) *DependencyHandler {

	config := CatalogHandlerConfig[
		*dependency.Dependency,
		dto.CreateDependencyRequest,
		dto.UpdateDependencyRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "dependency",

		MapCreateDTO: func(req dto.CreateDependencyRequest) *dependency.Dependency {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateDependencyRequest, existing *dependency.Dependency) *dependency.Dependency {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *dependency.Dependency) any {
			return dto.FromDependency(entity)
		},
	}

	return &DependencyHandler{
		DependencyCatalogHandler: NewCatalogHandler(base, config),
		service:                  service,
	}
}

// GetCentral handles GET /dependencies/central - the central warehouse
// that receives all receptions.
func (h *DependencyHandler) GetCentral(c *gin.Context) {
	dep, err := h.service.FindCentral(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDependency(dep))
}
