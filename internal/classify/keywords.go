// internal/classify/keywords.go
// Keyword tiers and weights for the deterministic scorer. These tables are
// the categorization contract: changing a weight reshuffles every stored
// corpus, so they stay immutable package data.
package classify

var strongEventKeywords = []string{
	"conference", "summit", "webinar", "workshop", "symposium", "expo", "exhibition",
	"rsvp", "register now", "register today", "early bird", "tickets", "agenda",
	"keynote speaker", "call for papers", "cfp", "submit abstract",
	"conference report", "event report", "conference coverage", "event coverage",
}

var mediumEventKeywords = []string{
	"event", "meetup", "training", "bootcamp", "session", "presentation",
	"virtual event", "online event", "live event", "networking",
	"announcement", "announcing", "upcoming event",
}

var eventPhrases = []string{
	"save the date", "join us", "don't miss", "coming soon",
	"speaker lineup", "event schedule", "conference program",
}

var eventURLHints = []string{"/event", "/conference", "/webinar", "/workshop", "/summit", "/training"}

var strongResearchKeywords = []string{
	"research paper", "whitepaper", "technical research", "academic paper",
	"published research", "peer-reviewed", "research findings", "scientific study",
	"latest research", "new research", "research publication",
}

var mediumResearchKeywords = []string{
	"research", "study", "findings", "discovered",
	"deep dive", "technical analysis", "threat analysis", "malware analysis",
	"reverse engineering", "vulnerability research", "security research",
}

var researchPhrases = []string{
	"our research shows", "we discovered", "we found that", "analysis reveals",
	"according to our research", "research indicates", "study shows",
	"research reveals", "findings show",
}

var researchURLHints = []string{"/research", "/study", "/whitepaper", "/paper"}

var researchSourceHints = []string{"research", "lab", "citizen lab", "check point research"}

var strongAlertKeywords = []string{
	"threat alert", "attack alert", "threat advisory", "attack advisory",
	"active attack", "ongoing attack", "attack campaign", "threat campaign",
	"malware campaign", "ransomware alert", "phishing alert", "apt alert",
	"threat actor", "attack group", "threat group", "call attention",
	"be aware of", "watch out for", "new attack", "emerging threat",
}

var mediumAlertKeywords = []string{
	"alert", "advisory", "warning", "threat warning", "attack warning",
	"security alert", "critical alert", "urgent alert",
	"newsletter", "threat intelligence", "threat update",
}

var alertPhrases = []string{
	"calls attention", "draws attention", "highlights threat", "warns about",
	"alert about", "advisory about", "threat targeting", "attack targeting",
	"be on the lookout", "be vigilant", "exercise caution",
}

var vulnerabilityTerms = []string{"cve-", "vulnerability", "exploit", "zero-day", "0-day"}

var alertURLHints = []string{"/alert", "/advisory", "/warning", "/threat", "/newsletter"}

var alertSourceHints = []string{"cisa", "us-cert", "ncsc", "cert", "enisa", "cccs"}

var newsKeywords = []string{
	"incident", "breach", "data breach", "cyber attack", "hacked", "hacking",
	"compromised", "leak", "data leak", "ransomware attack", "malware attack",
	"latest news", "breaking news", "reported", "announced", "disclosed",
	"victim", "affected", "impacted", "stolen", "exposed",
}

var newsPhrases = []string{
	"has been breached", "has been hacked", "was compromised", "fell victim",
	"reported a breach", "announced an incident", "disclosed an attack",
}

var newsURLHints = []string{"/news", "/article", "/post", "/blog"}
