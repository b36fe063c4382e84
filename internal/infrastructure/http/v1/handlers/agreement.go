package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/agreement"
	"almacen/internal/infrastructure/http/v1/dto"
)

// AgreementCatalogHandler is a type alias to shorten signatures.
type AgreementCatalogHandler = CatalogHandler[
	*agreement.Agreement,
	dto.CreateAgreementRequest,
	dto.UpdateAgreementRequest,
]

// AgreementHandler extends the generic catalog handler with
// agreement-specific endpoints.
type AgreementHandler struct {
	*AgreementCatalogHandler
	service *agreement.Service
}

// NewAgreementHandler wires the generic catalog handler for agreements.
func NewAgreementHandler(
	base *BaseHandler,
	service *agreement.Service,
) *AgreementHandler {

	config := CatalogHandlerConfig[
		*agreement.Agreement,
		dto.CreateAgreementRequest,
		dto.UpdateAgreementRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "agreement",

		MapCreateDTO: func(req dto.CreateAgreementRequest) *agreement.Agreement {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateAgreementRequest, existing *agreement.Agreement) *agreement.Agreement {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *agreement.Agreement) any {
			return dto.FromAgreement(entity)
		},
	}

	return &AgreementHandler{
		AgreementCatalogHandler: NewCatalogHandler(base, config),
		service:                 service,
	}
}

// ListBySupplier handles GET /agreements/by-supplier/:supplierId
func (h *AgreementHandler) ListBySupplier(c *gin.Context) {
	supplierID, err := id.Parse(c.Param("supplierId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid supplierId format"))
		return
	}

	items, err := h.service.FindBySupplier(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]*dto.AgreementResponse, len(items))
	for i, a := range items {
		dtos[i] = dto.FromAgreement(a)
	}

	c.JSON(http.StatusOK, gin.H{"items": dtos})
}
