package news

// DefaultCategoryRules is the built-in keyword knowledge base. It is
// tunable data, not contract: edit or override via keywords.yaml
// without touching the scoring mechanics. Some keywords carry
// deliberate spaces (" ai ", "mp ") so short tokens don't match
// inside longer words.
var DefaultCategoryRules = []CategoryRule{
	{
		Name: "politics",
		Strong: []string{
			"election", "parliament", "president", "prime minister", "government",
			"minister", "ndc", "npp", "senator", "akufo-addo", "mahama", "ballot",
			"constituency", "lawmaker", "legislature", "coup", "cabinet", "policy",
			"referendum", "democratic", "opposition", "ruling party", "mp ", "mps ",
			"member of parliament", "speaker of parliament", "attorney general",
			"political", "petition mahama", "petition akufo",
		},
		Weak: []string{
			"vote", "campaign", "governance", "regulation", "law", "bill passed",
			"corruption", "accountability", "protest", "demonstration", "judiciary",
		},
	},
	{
		Name: "business",
		Strong: []string{
			"economy", "cedi", "ghana stock exchange", "gse", "investment",
			"gdp", "inflation", "bank of ghana", "imf", "world bank", "trade",
			"revenue", "tax", "fiscal", "monetary", "interest rate", "stock",
			"bond", "finance minister", "budget", "debt", "forex", "export",
			"import", "cocoa board", "ghana cocoa", "trade surplus", "trade deficit",
			"entrepreneur", "startup funding", "series a", "series b", "ipo",
		},
		Weak: []string{
			"business", "market", "profit", "loss", "revenue", "growth",
			"economic", "financial", "quarter", "annual", "billion", "million",
			"fund", "donation", "investment drive",
		},
	},
	{
		Name: "sports",
		Strong: []string{
			"black stars", "ghana football", "gfa", "premier league ghana",
			"afcon", "world cup", "olympics", "commonwealth games",
			"asante kotoko", "hearts of oak", "accra lions",
			"athletics", "marathon", "boxing", "wrestling", "swimming",
			"cricket", "rugby", "basketball", "tennis", "volleyball",
			"transfer", "signed", "manager sacked", "coach appointed",
			"goal", "match", "tournament", "champion", "trophy",
			"fifa", "caf ", "uefa",
		},
		Weak: []string{
			"sports", "football", "soccer", "league", "club", "player",
			"team", "score", "fixture", "squad", "game", "defeat", "win", "draw",
		},
	},
	{
		Name: "tech",
		Strong: []string{
			"artificial intelligence", " ai ", "machine learning", "blockchain",
			"cryptocurrency", "bitcoin", "fintech", "cybersecurity", "data breach",
			"5g", "software launch", "app launch", "tech startup", "google",
			"apple ", "microsoft", "meta ", "amazon web", "cloud computing",
			"robotics", "drone", "satellite", "programming", "developer",
			"open source", "silicon", "semiconductor", "data centre", "iso/iec",
		},
		Weak: []string{
			"technology", "digital", "mobile", "internet", "innovation",
			"platform", "online", "website", "cyber", "software",
		},
	},
	{
		Name: "health",
		Strong: []string{
			"hospital", "disease", "covid", "malaria", "clinic", "vaccine",
			"outbreak", "epidemic", "pandemic", "surgery", "diagnosis",
			"treatment", "medicine", "doctor", "nurse", "patient",
			"ghana health service", "ministry of health", "who ", "world health",
			"nhis", "national health", "public health", "mortality",
			"hiv", "aids", "tuberculosis", "cancer", "diabetes",
			"mental health", "ambulance", "emergency care", "no bed",
			"dialysis", "hpv", "immunization", "vaccination programme",
		},
		Weak: []string{
			"health", "medical", "wellness", "nutrition", "drug",
			"pharmacy", "research", "clinical", "therapy",
		},
	},
	{
		Name: "entertainment",
		Strong: []string{
			"music video", "album", "concert", "award show", "grammy",
			"ghana music awards", "vgma", "afrobeats", "hiplife", "highlife",
			"movie", "film", "nollywood", "actor", "actress", "celebrity",
			"fashion week", "runway", "reality show", "tv series",
			"spotify ghana", "youtube", "black sherif", "sarkodie", "stonebwoy",
			"kuami eugene", "shatta wale", "medikal",
		},
		Weak: []string{
			"entertainment", "music", "arts", "culture", "festival",
			"performance", "tour", "release", "single", "fan",
		},
	},
	{
		Name: "world",
		Strong: []string{
			"united nations", "un security council", "nato", "european union",
			"white house", "us president", "russia", "ukraine", "israel",
			"palestin", "iran", "china ", "north korea", "trump", "biden",
			"sanctions", "treaty", "diplomacy", "foreign minister",
			"g7", "g20", "imf ", "world bank", "refugee", "war crimes",
			"ceasefire", "military strike", "nuclear", "coup d'etat",
			"africom", "un delegates",
		},
		Weak: []string{
			"international", "global", "world", "usa", "europe",
			"washington", "london", "paris", "beijing", "overseas",
		},
	},
}
