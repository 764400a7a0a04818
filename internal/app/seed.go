package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/cashdesk-api/internal/application/service"
	"github.com/sangkips/cashdesk-api/internal/config"
	"github.com/sangkips/cashdesk-api/internal/domain/enum"
	"github.com/sangkips/cashdesk-api/internal/logger"
	"github.com/shopspring/decimal"
)

type sampleService struct {
	typeName    string
	description string
	cost        string
}

var sampleCatalog = []sampleService{
	{"Fotocopias", "Fotocopia blanco y negro", "5"},
	{"Fotocopias", "Fotocopia a color", "15"},
	{"Impresiones", "Impresión carta", "10"},
	{"Trámites", "Gestión de documentos", "500"},
}

// Seed creates the default admin and, when the catalog is empty, a small
// sample catalog.
func Seed(ctx context.Context, cfg *config.Config, svc *Services, withCatalog bool) error {
	log := logger.WithComponent("seed")

	if _, err := svc.Users.EnsureDefaultAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return err
	}
	if !withCatalog {
		return nil
	}

	types, err := svc.Catalog.ListServiceTypes(ctx, false)
	if err != nil {
		return err
	}
	if len(types) > 0 {
		log.Info().Int("types", len(types)).Msg("catalog already present, skipping sample data")
		return nil
	}

	typeIDs := make(map[string]uuid.UUID)
	for _, s := range sampleCatalog {
		id, ok := typeIDs[s.typeName]
		if !ok {
			st, err := svc.Catalog.CreateServiceType(ctx, &service.ServiceTypeInput{Name: s.typeName, Status: enum.StatusActive})
			if err != nil {
				return err
			}
			id = st.ID
			typeIDs[s.typeName] = id
		}
		if _, err := svc.Catalog.CreateService(ctx, &service.ServiceInput{
			Description: s.description,
			Cost:        decimal.RequireFromString(s.cost),
			Status:      enum.StatusActive,
			TypeID:      &id,
		}); err != nil {
			return err
		}
	}
	log.Info().Int("services", len(sampleCatalog)).Msg("sample catalog created")
	return nil
}
