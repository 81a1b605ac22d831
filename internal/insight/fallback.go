package insight

import "strings"

// defaultBucket is used when the investor type is missing or unrecognized.
const defaultBucket = "hodler"

// fallbackInsights is the static insight table, keyed by normalized
// investor-type bucket. Three entries per bucket.
var fallbackInsights = map[string][]string{
	"hodler": {
		"Long-term holding strategies are showing positive trends with increased institutional adoption.",
		"DCA (Dollar Cost Averaging) remains the most effective strategy for HODLers during market volatility.",
		"Staking rewards are providing additional yield opportunities for long-term holders.",
	},
	"day trader": {
		"High volatility periods present both opportunities and risks for day trading strategies.",
		"Technical analysis indicators suggest key support and resistance levels to watch.",
		"Volume patterns indicate potential breakout opportunities in the next 24-48 hours.",
	},
	"nft collector": {
		"NFT marketplace activity is showing signs of consolidation with quality projects gaining traction.",
		"Utility-based NFTs are outperforming profile picture collections in recent weeks.",
		"New blockchain ecosystems are launching innovative NFT use cases.",
	},
}

// fallbackBucket resolves an investor type to its insight bucket.
func fallbackBucket(investorType string) []string {
	key := strings.ToLower(strings.TrimSpace(investorType))
	if bucket, ok := fallbackInsights[key]; ok {
		return bucket
	}
	return fallbackInsights[defaultBucket]
}
