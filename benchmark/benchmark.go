// Package benchmark resolves industry reference values for the diagnostic
// metrics. Resolution falls through three levels: an engagement override
// for a specific channel and intent, a channel-level value, then the
// built-in industry default. Lookups repeat for every profile in a run, so
// resolved values sit behind a small LRU.
package benchmark

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const cacheSize = 512

// Channel-level industry defaults per metric. AHT is seconds, fcr and
// csat and escalation are 0-1 rates, cpc is currency per contact.
var channelDefaults = map[string]map[string]float64{
	"aht": {
		"voice": 360, "chat": 420, "email": 600, "ivr": 120,
		"web": 180, "app": 180, "social": 300, "retail": 600,
	},
	"fcr": {
		"voice": 0.75, "chat": 0.72, "email": 0.65, "ivr": 0.80,
		"web": 0.85, "app": 0.85, "social": 0.65, "retail": 0.80,
	},
	"csat": {
		"voice": 0.80, "chat": 0.76, "email": 0.70, "ivr": 0.70,
		"web": 0.80, "app": 0.80, "social": 0.70, "retail": 0.84,
	},
	"escalation": {
		"voice": 0.12, "chat": 0.10, "email": 0.08, "ivr": 0.05,
		"web": 0.03, "app": 0.03, "social": 0.10, "retail": 0.15,
	},
	"cpc": {
		"voice": 8.50, "chat": 5.00, "email": 4.00, "ivr": 1.50,
		"web": 0.50, "app": 0.50, "social": 4.00, "retail": 15.00,
	},
}

// globalDefaults cover channels outside the benchmark set.
var globalDefaults = map[string]float64{
	"aht":        360,
	"fcr":        0.75,
	"csat":       0.78,
	"escalation": 0.10,
	"cpc":        7.50,
}

// Resolver answers benchmark lookups with engagement overrides layered over
// the built-in defaults. Override keys are lowercase dotted paths:
// "voice.billing.aht" pins one intent, "voice.aht" a channel, "aht" the
// global fallback.
type Resolver struct {
	overrides map[string]float64
	cache     *lru.Cache[string, float64]
}

// NewResolver builds a resolver over the given overrides, which may be nil.
func NewResolver(overrides map[string]float64) *Resolver {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, float64](cacheSize)
	normalized := make(map[string]float64, len(overrides))
	for k, v := range overrides {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Resolver{overrides: normalized, cache: cache}
}

// Lookup resolves the benchmark for one metric on a channel and intent.
// The boolean is false only for metrics outside the known set.
func (r *Resolver) Lookup(channel, intent, metric string) (float64, bool) {
	channel = strings.ToLower(strings.TrimSpace(channel))
	intent = strings.ToLower(strings.TrimSpace(intent))
	metric = strings.ToLower(strings.TrimSpace(metric))

	key := channel + "|" + intent + "|" + metric
	if v, ok := r.cache.Get(key); ok {
		return v, true
	}

	v, ok := r.resolve(channel, intent, metric)
	if ok {
		r.cache.Add(key, v)
	}
	return v, ok
}

func (r *Resolver) resolve(channel, intent, metric string) (float64, bool) {
	if v, ok := r.overrides[channel+"."+intent+"."+metric]; ok {
		return v, true
	}
	if v, ok := r.overrides[channel+"."+metric]; ok {
		return v, true
	}
	if v, ok := r.overrides[metric]; ok {
		return v, true
	}
	if v, ok := channelDefaults[metric][channel]; ok {
		return v, true
	}
	v, ok := globalDefaults[metric]
	return v, ok
}
