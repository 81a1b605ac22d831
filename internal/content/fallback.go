package content

// Hand-authored canned data returned when every live source fails. The news
// set carries MaxNewsItems entries so any requested limit can be satisfied.

func fallbackNews() []ContentItem {
	return []ContentItem{
		{ID: "fb-1", Title: "Bitcoin maintains consolidation above $60,000 as institutional interest grows",
			URL: "https://cointelegraph.com", PublishedAt: "2 hours ago", Source: "Cointelegraph"},
		{ID: "fb-2", Title: "Ethereum's Shanghai upgrade shows strong network adoption metrics",
			URL: "https://coindesk.com", PublishedAt: "4 hours ago", Source: "CoinDesk"},
		{ID: "fb-3", Title: "Major cryptocurrency exchange announces new DeFi integration features",
			URL: "https://decrypt.co", PublishedAt: "6 hours ago", Source: "Decrypt"},
		{ID: "fb-4", Title: "Regulatory clarity emerges for crypto derivatives in European markets",
			URL: "https://theblock.co", PublishedAt: "8 hours ago", Source: "TheBlock"},
		{ID: "fb-5", Title: "Layer 2 scaling solutions see record transaction volumes this quarter",
			URL: "https://blockworks.co", PublishedAt: "10 hours ago", Source: "Blockworks"},
		{ID: "fb-6", Title: "Central bank digital currency pilots expand across multiple regions",
			URL: "https://coinbase.com", PublishedAt: "12 hours ago", Source: "Coinbase"},
	}
}

func fallbackMemes() []Meme {
	return []Meme{
		{
			URL:       "https://i.imgflip.com/2/1bij.jpg",
			Title:     "HODL Strong",
			Alt:       "Crypto HODL meme",
			Source:    "Static",
			Author:    "System",
			Score:     100,
			RedditURL: "https://reddit.com/r/CryptoCurrencyMemes",
		},
		{
			URL:       "https://i.imgflip.com/2/30b1gx.jpg",
			Title:     "Bitcoin Price Goes Brrr",
			Alt:       "Bitcoin price meme",
			Source:    "Static",
			Author:    "System",
			Score:     150,
			RedditURL: "https://reddit.com/r/CryptoMemes",
		},
		{
			URL:       "https://i.imgflip.com/2/1ur9b0.jpg",
			Title:     "Crypto Trading Life",
			Alt:       "Crypto trading meme",
			Source:    "Static",
			Author:    "System",
			Score:     200,
			RedditURL: "https://reddit.com/r/CryptoCurrencyMemes",
		},
	}
}
