package models

// Provider is a streaming service a movie can be watched on.
type Provider struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
	LogoURL     string `json:"logo_url,omitempty"`
	Region      Region `json:"region"`
}

// WatchProviders groups a movie's providers in one region by offer type.
type WatchProviders struct {
	Flatrate []Provider `json:"flatrate,omitempty"`
	Rent     []Provider `json:"rent,omitempty"`
	Buy      []Provider `json:"buy,omitempty"`
}

// HasAny reports whether the movie can be watched in any form.
func (w WatchProviders) HasAny() bool {
	return len(w.Flatrate) > 0 || len(w.Rent) > 0 || len(w.Buy) > 0
}

// Merged returns flatrate, rent and buy providers in that order,
// keeping the first occurrence of each provider id.
func (w WatchProviders) Merged() []Provider {
	seen := make(map[int]struct{})
	out := make([]Provider, 0, len(w.Flatrate)+len(w.Rent)+len(w.Buy))
	for _, group := range [][]Provider{w.Flatrate, w.Rent, w.Buy} {
		for _, p := range group {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// RegionAvailability maps an upper-case region code to its providers.
type RegionAvailability map[string]WatchProviders

// In returns the providers for a region, or the zero value when absent.
func (r RegionAvailability) In(region Region) WatchProviders {
	if r == nil {
		return WatchProviders{}
	}
	return r[string(region)]
}
