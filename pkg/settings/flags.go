package settings

import (
	"context"
	"encoding/json"
	"log"
	"net/url"

	"github.com/folio-org/mod-patron-sub000/pkg/gateway"
	"github.com/folio-org/mod-patron-sub000/pkg/models"
)

const (
	ecsTlrScope = "circulation"
	ecsTlrKey   = "ecsTlrFeature"
)

// FeatureFlags answers routing-mode questions by consulting the
// circulation-settings and TLR endpoints, falling back to the locally
// stored default when neither backend carries the flag.
type FeatureFlags struct {
	gw    *gateway.Client
	store *Store
}

func NewFeatureFlags(gw *gateway.Client, store *Store) *FeatureFlags {
	return &FeatureFlags{gw: gw, store: store}
}

// EcsTlrEnabled reports whether title-level holds route through the central
// aggregation ("ECS") endpoint. Settings reads use the extended timeout.
func (f *FeatureFlags) EcsTlrEnabled(ctx context.Context, headers map[string]string) bool {
	query := url.Values{
		"query": {"name==" + ecsTlrKey},
		"limit": {"1"},
	}
	data, err := f.gw.GetExtended(ctx, "/circulation/settings", query, headers)
	if err == nil && data != nil {
		var circSettings models.CirculationSettings
		if decodeErr := json.Unmarshal(data, &circSettings); decodeErr == nil && circSettings.TotalRecords > 0 {
			return circSettings.Settings[0].Value.Enabled
		}
	}

	data, err = f.gw.GetExtended(ctx, "/tlr/settings", nil, headers)
	if err == nil && data != nil {
		var tlr models.TlrSettings
		if decodeErr := json.Unmarshal(data, &tlr); decodeErr == nil {
			return tlr.EcsTlrFeatureEnabled
		}
	}
	if err != nil {
		log.Printf("ECS-TLR flag lookup failed, using stored default: %v", err)
	}

	return f.storedDefault()
}

func (f *FeatureFlags) storedDefault() bool {
	if f.store == nil {
		return false
	}
	return f.store.BoolValue(ecsTlrScope, ecsTlrKey, false)
}
