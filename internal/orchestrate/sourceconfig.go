package orchestrate

import (
	"encoding/json"

	"github.com/troeske/spiritswise-web-crawler-sub003/internal/fetchrouter"
	"github.com/troeske/spiritswise-web-crawler-sub003/internal/models"
)

// fetchConfig narrows a Source row down to the fields the Fetch Router
// needs, the same shape internal/api's ingestion pipeline would build if it
// fetched a known Source instead of an arbitrary discovered URL.
func fetchConfig(src *models.Source) fetchrouter.SourceConfig {
	cfg := fetchrouter.SourceConfig{
		RequiresJS:           src.RequiresJS,
		RequiresProxy:        src.RequiresProxy,
		RequiresManagedProxy: src.RequiresManagedProxy,
		AgeGateMechanism:     src.AgeGateMechanism,
	}
	if len(src.AgeGateCookies) > 0 {
		var cookies map[string]string
		if err := json.Unmarshal(src.AgeGateCookies, &cookies); err == nil {
			cfg.AgeGateCookies = cookies
		}
	}
	return cfg
}
