package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelftalk/shelftalk-server/internal/config"
	"github.com/shelftalk/shelftalk-server/internal/logger"
	"github.com/shelftalk/shelftalk-server/internal/metadata/openlibrary"
)

// CatalogHandle wraps the catalog client with shutdown capability.
type CatalogHandle struct {
	*openlibrary.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCatalogClient provides the Open Library catalog client.
func ProvideCatalogClient(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := openlibrary.New(cfg.Catalog.BaseURL, cfg.Catalog.CoversBaseURL, log.Logger)

	log.Info("Catalog client ready", "base_url", cfg.Catalog.BaseURL)

	return &CatalogHandle{Client: client}, nil
}
