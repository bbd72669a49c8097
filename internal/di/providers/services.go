package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelftalk/shelftalk-server/internal/logger"
	"github.com/shelftalk/shelftalk-server/internal/service"
)

// ProvideRecommendationService provides the recommendation service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogHandle := do.MustInvoke[*CatalogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendationService(storeHandle.Store, catalogHandle.Client, log.Logger), nil
}
