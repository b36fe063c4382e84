package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"almacen/internal/core/apperror"
	"almacen/internal/core/id"
	"almacen/internal/domain/catalogs/annex"
	"almacen/internal/infrastructure/http/v1/dto"
)

// AnnexCatalogHandler is a type alias to shorten signatures.
type AnnexCatalogHandler = CatalogHandler[
	*annex.Annex,
	dto.CreateAnnexRequest,
	dto.UpdateAnnexRequest,
]

// AnnexHandler extends the generic catalog handler with
// annex-specific endpoints.
type AnnexHandler struct {
	*AnnexCatalogHandler
	service *annex.Service
}

// NewAnnexHandler wires the generic catalog handler for annexes.
func NewAnnexHandler(
	base *BaseHandler,
	service *annex.Service,
) *AnnexHandler {

	config := CatalogHandlerConfig[
		*annex.Annex,
		dto.CreateAnnexRequest,
		dto.UpdateAnnexRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "annex",

		MapCreateDTO: func(req dto.CreateAnnexRequest) *annex.Annex {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateAnnexRequest, existing *annex.Annex) *annex.Annex {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *annex.Annex) any {
			return dto.FromAnnex(entity)
		},
	}

	return &AnnexHandler{
		AnnexCatalogHandler: NewCatalogHandler(base, config),
		service:             service,
	}
}

// ListByAgreement handles GET /annexes/by-agreement/:agreementId
func (h *AnnexHandler) ListByAgreement(c *gin.Context) {
	agreementID, err := id.Parse(c.Param("agreementId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid agreementId format"))
		return
	}

	items, err := h.service.FindByAgreement(c.Request.Context(), agreementID)
	if err != nil {
		h.Error(c, err)
		return
	}

	dtos := make([]*dto.AnnexResponse, len(items))
	for i, a := range items {
		dtos[i] = dto.FromAnnex(a)
	}

	c.JSON(http.StatusOK, gin.H{"items": dtos})
}
