// internal/feed/catalog.go
package feed

import "sort"

// catalog is the built-in feed list. Names repeat across publisher types when
// the same outlet serves more than one role (e.g. WeLiveSecurity is ESET's
// industry blog and its research outlet).
var catalog = []Source{
	// Industry
	{Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews", PublisherType: PublisherIndustry},
	{Name: "BleepingComputer", URL: "https://www.bleepingcomputer.com/feed/", PublisherType: PublisherIndustry},
	{Name: "Krebs on Security", URL: "https://krebsonsecurity.com/feed/", PublisherType: PublisherIndustry},
	{Name: "Dark Reading", URL: "https://www.darkreading.com/rss.xml", PublisherType: PublisherIndustry},
	{Name: "SC Magazine", URL: "https://www.scmagazine.com/home/feed/", PublisherType: PublisherIndustry},
	{Name: "SecurityWeek", URL: "https://www.securityweek.com/feed/", PublisherType: PublisherIndustry},
	{Name: "Threatpost", URL: "https://threatpost.com/feed/", PublisherType: PublisherIndustry},
	{Name: "CSO Online", URL: "https://www.csoonline.com/index.rss", PublisherType: PublisherIndustry},
	{Name: "InfoSecurity Magazine", URL: "https://www.infosecurity-magazine.com/rss/news/", PublisherType: PublisherIndustry},
	{Name: "Help Net Security", URL: "https://www.helpnetsecurity.com/feed/", PublisherType: PublisherIndustry},
	{Name: "IT Security Guru", URL: "https://www.itsecurityguru.org/feed/", PublisherType: PublisherIndustry},
	{Name: "Security Boulevard", URL: "https://securityboulevard.com/feed/", PublisherType: PublisherIndustry},
	{Name: "CyberScoop", URL: "https://www.cyberscoop.com/feed/", PublisherType: PublisherIndustry},
	{Name: "Security Affairs", URL: "https://securityaffairs.com/feed", PublisherType: PublisherIndustry},
	{Name: "Schneier on Security", URL: "https://www.schneier.com/feed/atom/", PublisherType: PublisherIndustry},
	{Name: "Graham Cluley", URL: "https://grahamcluley.com/feed/", PublisherType: PublisherIndustry},
	{Name: "Ars Technica Security", URL: "https://feeds.arstechnica.com/arstechnica/security", PublisherType: PublisherIndustry},
	{Name: "The Register Security", URL: "https://www.theregister.com/security/headlines.atom", PublisherType: PublisherIndustry},
	{Name: "ZDNet Security", URL: "https://www.zdnet.com/topic/security/rss.xml", PublisherType: PublisherIndustry},
	{Name: "Packet Storm Security", URL: "https://rss.packetstormsecurity.com/", PublisherType: PublisherIndustry},
	{Name: "WeLiveSecurity", URL: "https://www.welivesecurity.com/feed/", PublisherType: PublisherIndustry},
	{Name: "Naked Security", URL: "https://nakedsecurity.sophos.com/feed/", PublisherType: PublisherIndustry},
	{Name: "Computer Weekly Security", URL: "https://www.computerweekly.com/rss/Security.xml", PublisherType: PublisherIndustry},
	{Name: "Heise Security", URL: "https://www.heise.de/security/rss/news.rdf", PublisherType: PublisherIndustry},
	{Name: "Security.nl", URL: "https://www.security.nl/rss", PublisherType: PublisherIndustry},
	{Name: "Niebezpiecznik", URL: "https://niebezpiecznik.pl/feed/", PublisherType: PublisherIndustry},
	{Name: "The Hacker News", URL: "https://thehackernews.com/feeds/posts/default", PublisherType: PublisherIndustry},
	{Name: "CSO Australia", URL: "https://www.cso.com.au/index.rss", PublisherType: PublisherIndustry},
	{Name: "IT News Australia", URL: "https://www.itnews.com.au/RSS/rss.ashx", PublisherType: PublisherIndustry},

	// Government / CERT
	{Name: "CISA", URL: "https://www.cisa.gov/news.xml", PublisherType: PublisherGovernment},
	{Name: "US-CERT Alerts", URL: "https://www.us-cert.gov/ncas/alerts.xml", PublisherType: PublisherGovernment},
	{Name: "US-CERT Bulletins", URL: "https://www.us-cert.gov/ncas/bulletins.xml", PublisherType: PublisherGovernment},
	{Name: "CCCS Advisories", URL: "https://cyber.gc.ca/en/rss/advisories.xml", PublisherType: PublisherGovernment},
	{Name: "CCCS Alerts", URL: "https://cyber.gc.ca/en/rss/alerts.xml", PublisherType: PublisherGovernment},
	{Name: "CCCS News", URL: "https://cyber.gc.ca/en/rss/news.xml", PublisherType: PublisherGovernment},
	{Name: "ENISA", URL: "https://www.enisa.europa.eu/news/enisa-news/RSS", PublisherType: PublisherGovernment},
	{Name: "CERT-EU", URL: "https://cert.europa.eu/public/news.rss", PublisherType: PublisherGovernment},
	{Name: "NCSC UK", URL: "https://www.ncsc.gov.uk/api/1/services/v1/news-rss-feed.xml", PublisherType: PublisherGovernment},
	{Name: "BSI Germany", URL: "https://www.bsi.bund.de/SiteGlobals/Functions/RSSFeed/RSSNewsfeed/RSSNewsfeed.xml", PublisherType: PublisherGovernment},
	{Name: "ANSSI France", URL: "https://www.ssi.gouv.fr/feed/", PublisherType: PublisherGovernment},
	{Name: "NCSC Netherlands", URL: "https://www.ncsc.nl/rss", PublisherType: PublisherGovernment},
	{Name: "CSA Singapore", URL: "https://www.csa.gov.sg/rss", PublisherType: PublisherGovernment},
	{Name: "JPCERT", URL: "https://www.jpcert.or.jp/english/rss/jpcert_en.rdf", PublisherType: PublisherGovernment},
	{Name: "ACSC Australia", URL: "https://www.cyber.gov.au/rss.xml", PublisherType: PublisherGovernment},
	{Name: "CERT NZ", URL: "https://www.cert.govt.nz/rss.xml", PublisherType: PublisherGovernment},
	{Name: "CSIRT Italia", URL: "https://csirt.gov.it/data/indexer/rss", PublisherType: PublisherGovernment},
	{Name: "NCSC-FI Finland", URL: "https://www.kyberturvallisuuskeskus.fi/feed/rss/en", PublisherType: PublisherGovernment},
	{Name: "CERT-SE Sweden", URL: "https://www.cert.se/feed.rss", PublisherType: PublisherGovernment},
	{Name: "CFCS Denmark", URL: "https://www.cert.dk/nyheder/rss", PublisherType: PublisherGovernment},
	{Name: "NSM Norway", URL: "https://nsm.no/fagomrader/digital-sikkerhet/nasjonalt-cybersikkerhetssenter/varsler-fra-ncsc/rss/", PublisherType: PublisherGovernment},
	{Name: "CERT.at Austria", URL: "https://cert.at/cert-at.en.blog.rss_2.0.xml", PublisherType: PublisherGovernment},
	{Name: "CCB Belgium", URL: "https://cert.be/en/rss", PublisherType: PublisherGovernment},
	{Name: "GovCERT Switzerland", URL: "https://www.govcert.ch/blog/rss.xml", PublisherType: PublisherGovernment},
	{Name: "NUKIB Czech", URL: "https://nukib.gov.cz/rss.xml", PublisherType: PublisherGovernment},
	{Name: "CERT.PL Poland", URL: "https://cert.pl/en/rss.xml", PublisherType: PublisherGovernment},
	{Name: "SK-CERT Slovakia", URL: "https://www.sk-cert.sk/index.html?feed=rss", PublisherType: PublisherGovernment},
	{Name: "NCSC Hungary", URL: "https://nki.gov.hu/figyelmeztetesek/riasztas/feed/", PublisherType: PublisherGovernment},
	{Name: "CERT.LV Latvia", URL: "https://cert.lv/en/feed/rss/all", PublisherType: PublisherGovernment},
	{Name: "SI-CERT Slovenia", URL: "https://www.cert.si/en/category/news/feed/", PublisherType: PublisherGovernment},
	{Name: "CERT.hr Croatia", URL: "https://www.cert.hr/feed/", PublisherType: PublisherGovernment},
	{Name: "CERT-RO Romania", URL: "https://dnsc.ro/feed", PublisherType: PublisherGovernment},
	{Name: "CERT-UA Ukraine", URL: "https://cert.gov.ua/api/articles/rss", PublisherType: PublisherGovernment},
	{Name: "CCN-CERT Spain", URL: "https://www.ccn-cert.cni.es/component/obrss/rss-noticias.feed", PublisherType: PublisherGovernment},
	{Name: "CNCS Portugal", URL: "https://www.cncs.gov.pt/docs/noticias/feed-rss/index.xml", PublisherType: PublisherGovernment},
	{Name: "GR-CERT Greece", URL: "https://cert.grnet.gr/feed/", PublisherType: PublisherGovernment},
	{Name: "GovCERT.HK", URL: "https://www.govcert.gov.hk/en/rss_security_alerts.xml", PublisherType: PublisherGovernment},
	{Name: "HKCERT", URL: "https://www.hkcert.org/getrss/security-bulletin", PublisherType: PublisherGovernment},
	{Name: "BGD e-GOV CIRT", URL: "https://www.cirt.gov.bd/feed/", PublisherType: PublisherGovernment},
	{Name: "EG-CERT Egypt", URL: "https://www.egcert.eg/feed/", PublisherType: PublisherGovernment},
	{Name: "CERT-IL Israel", URL: "https://www.gov.il/he/api/PublicationApi/rss/4bcc13f5-fed6-4b8c-b8ee-7bf4a6bc81c8", PublisherType: PublisherGovernment},
	{Name: "AusCERT", URL: "https://auscert.org.au/rss/bulletins/", PublisherType: PublisherGovernment},

	// Vendor
	{Name: "Microsoft Security", URL: "https://www.microsoft.com/en-us/security/blog/feed/", PublisherType: PublisherVendor},
	{Name: "Google Security", URL: "https://security.googleblog.com/feeds/posts/default", PublisherType: PublisherVendor},
	{Name: "Cisco Talos", URL: "https://blog.talosintelligence.com/feed/", PublisherType: PublisherVendor},
	{Name: "Cloudflare Blog", URL: "https://blog.cloudflare.com/rss/", PublisherType: PublisherVendor},
	{Name: "Palo Alto Unit42", URL: "https://unit42.paloaltonetworks.com/feed/", PublisherType: PublisherVendor},
	{Name: "CrowdStrike", URL: "https://www.crowdstrike.com/blog/feed/", PublisherType: PublisherVendor},
	{Name: "Mandiant", URL: "https://www.mandiant.com/resources/blog/rss.xml", PublisherType: PublisherVendor},
	{Name: "Proofpoint", URL: "https://www.proofpoint.com/us/rss.xml", PublisherType: PublisherVendor},
	{Name: "Zscaler", URL: "https://www.zscaler.com/blogs/security-research/rss.xml", PublisherType: PublisherVendor},
	{Name: "IBM Security", URL: "https://www.ibm.com/security/blog/feed", PublisherType: PublisherVendor},
	{Name: "Rapid7", URL: "https://www.rapid7.com/blog/feed/", PublisherType: PublisherVendor},
	{Name: "Tenable", URL: "https://www.tenable.com/blog/rss.xml", PublisherType: PublisherVendor},
	{Name: "Qualys", URL: "https://blog.qualys.com/feed", PublisherType: PublisherVendor},
	{Name: "Okta", URL: "https://www.okta.com/blog/feed/", PublisherType: PublisherVendor},
	{Name: "SentinelOne", URL: "https://www.sentinelone.com/blog/feed/", PublisherType: PublisherVendor},
	{Name: "Cybereason", URL: "https://www.cybereason.com/blog/feed", PublisherType: PublisherVendor},
	{Name: "Varonis", URL: "https://www.varonis.com/blog/feed/", PublisherType: PublisherVendor},
	{Name: "FireEye", URL: "https://www.fireeye.com/blog/feed", PublisherType: PublisherVendor},
	{Name: "Symantec", URL: "https://symantec-enterprise-blogs.security.com/blogs/feed", PublisherType: PublisherVendor},
	{Name: "McAfee", URL: "https://www.mcafee.com/blogs/feed/", PublisherType: PublisherVendor},
	{Name: "Bitdefender", URL: "https://www.bitdefender.com/blog/feed/", PublisherType: PublisherVendor},
	{Name: "Malwarebytes", URL: "https://www.malwarebytes.com/blog/feed/", PublisherType: PublisherVendor},
	{Name: "Fortinet", URL: "https://www.fortinet.com/blog/rss.xml", PublisherType: PublisherVendor},
	{Name: "AWS Security", URL: "https://aws.amazon.com/blogs/security/feed/", PublisherType: PublisherVendor},
	{Name: "GitHub Security", URL: "https://github.blog/security/feed/", PublisherType: PublisherVendor},
	{Name: "Sophos", URL: "https://news.sophos.com/en-us/feed/", PublisherType: PublisherVendor},
	{Name: "Darktrace", URL: "https://www.darktrace.com/en/blog/feed/", PublisherType: PublisherVendor},
	{Name: "Kaspersky SecureList", URL: "https://securelist.com/feed/", PublisherType: PublisherVendor},
	{Name: "F-Secure", URL: "https://blog.f-secure.com/feed/", PublisherType: PublisherVendor},
	{Name: "Avast", URL: "https://blog.avast.com/rss.xml", PublisherType: PublisherVendor},
	{Name: "ESET", URL: "https://www.welivesecurity.com/feed/", PublisherType: PublisherVendor},
	{Name: "Trend Micro", URL: "https://www.trendmicro.com/en_us/research/rss.xml", PublisherType: PublisherVendor},
	{Name: "Check Point", URL: "https://blog.checkpoint.com/feed/", PublisherType: PublisherVendor},
	{Name: "CyberArk", URL: "https://www.cyberark.com/resources/blog/feed/", PublisherType: PublisherVendor},

	// Research
	{Name: "SANS ISC", URL: "https://isc.sans.edu/rssfeed.xml", PublisherType: PublisherResearch},
	{Name: "Mandiant Research", URL: "https://www.mandiant.com/resources/research/rss.xml", PublisherType: PublisherResearch},
	{Name: "Secureworks Research", URL: "https://www.secureworks.com/rss?feed=research", PublisherType: PublisherResearch},
	{Name: "Malwarebytes Labs", URL: "https://www.malwarebytes.com/blog/feed/", PublisherType: PublisherResearch},
	{Name: "NIST Cybersecurity", URL: "https://www.nist.gov/blogs/cybersecurity-insights/rss.xml", PublisherType: PublisherResearch},
	{Name: "Citizen Lab", URL: "https://citizenlab.ca/feed/", PublisherType: PublisherResearch},
	{Name: "Check Point Research", URL: "https://research.checkpoint.com/feed/", PublisherType: PublisherResearch},
	{Name: "F-Secure Labs", URL: "https://labs.f-secure.com/feed/", PublisherType: PublisherResearch},
	{Name: "Avast Threat Labs", URL: "https://blog.avast.com/rss.xml", PublisherType: PublisherResearch},
	{Name: "ESET Research", URL: "https://www.welivesecurity.com/feed/", PublisherType: PublisherResearch},
	{Name: "NCC Group Research", URL: "https://research.nccgroup.com/feed/", PublisherType: PublisherResearch},
	{Name: "Trend Micro Research", URL: "https://www.trendmicro.com/en_us/research/rss.xml", PublisherType: PublisherResearch},
	{Name: "Kaspersky Research", URL: "https://securelist.com/feed/", PublisherType: PublisherResearch},
}

// sourceCountry maps feed names to the country of their publisher. Used only
// for country-scoped fetches and the sources-by-country listing; article-level
// attribution is content based.
var sourceCountry = map[string]string{
	"The Hacker News":          "United States",
	"BleepingComputer":         "United States",
	"Krebs on Security":        "United States",
	"Dark Reading":             "United States",
	"SC Magazine":              "United States",
	"SecurityWeek":             "United States",
	"Threatpost":               "United States",
	"CSO Online":               "United States",
	"InfoSecurity Magazine":    "United States",
	"Help Net Security":        "United States",
	"IT Security Guru":         "United States",
	"Security Boulevard":       "United States",
	"CyberScoop":               "United States",
	"Security Affairs":         "United States",
	"Schneier on Security":     "United States",
	"Graham Cluley":            "United Kingdom",
	"Ars Technica Security":    "United States",
	"The Register Security":    "United Kingdom",
	"ZDNet Security":           "United States",
	"Packet Storm Security":    "United States",
	"WeLiveSecurity":           "Slovakia",
	"Naked Security":           "United Kingdom",
	"Computer Weekly Security": "United Kingdom",
	"Heise Security":           "Germany",
	"Security.nl":              "Netherlands",
	"Niebezpiecznik":           "Poland",
	"CSO Australia":            "Australia",
	"IT News Australia":        "Australia",

	"CISA":                "United States",
	"US-CERT Alerts":      "United States",
	"US-CERT Bulletins":   "United States",
	"CCCS Advisories":     "Canada",
	"CCCS Alerts":         "Canada",
	"CCCS News":           "Canada",
	"ENISA":               "European Union",
	"CERT-EU":             "European Union",
	"NCSC UK":             "United Kingdom",
	"BSI Germany":         "Germany",
	"ANSSI France":        "France",
	"NCSC Netherlands":    "Netherlands",
	"CSA Singapore":       "Singapore",
	"JPCERT":              "Japan",
	"ACSC Australia":      "Australia",
	"CERT NZ":             "New Zealand",
	"AusCERT":             "Australia",
	"CSIRT Italia":        "Italy",
	"NCSC-FI Finland":     "Finland",
	"CERT-SE Sweden":      "Sweden",
	"CFCS Denmark":        "Denmark",
	"NSM Norway":          "Norway",
	"CERT.at Austria":     "Austria",
	"CCB Belgium":         "Belgium",
	"GovCERT Switzerland": "Switzerland",
	"NUKIB Czech":         "Czech Republic",
	"CERT.PL Poland":      "Poland",
	"SK-CERT Slovakia":    "Slovakia",
	"NCSC Hungary":        "Hungary",
	"CERT.LV Latvia":      "Latvia",
	"SI-CERT Slovenia":    "Slovenia",
	"CERT.hr Croatia":     "Croatia",
	"CERT-RO Romania":     "Romania",
	"CERT-UA Ukraine":     "Ukraine",
	"CCN-CERT Spain":      "Spain",
	"CNCS Portugal":       "Portugal",
	"GR-CERT Greece":      "Greece",
	"GovCERT.HK":          "Hong Kong",
	"HKCERT":              "Hong Kong",
	"BGD e-GOV CIRT":      "Bangladesh",
	"EG-CERT Egypt":       "Egypt",
	"CERT-IL Israel":      "Israel",

	"Microsoft Security":   "United States",
	"Google Security":      "United States",
	"Cisco Talos":          "United States",
	"Cloudflare Blog":      "United States",
	"Palo Alto Unit42":     "United States",
	"CrowdStrike":          "United States",
	"Mandiant":             "United States",
	"Proofpoint":           "United States",
	"Zscaler":              "United States",
	"IBM Security":         "United States",
	"Rapid7":               "United States",
	"Tenable":              "United States",
	"Qualys":               "United States",
	"Okta":                 "United States",
	"SentinelOne":          "United States",
	"Cybereason":           "United States",
	"Varonis":              "United States",
	"FireEye":              "United States",
	"Symantec":             "United States",
	"McAfee":               "United States",
	"Bitdefender":          "Romania",
	"Malwarebytes":         "United States",
	"Fortinet":             "United States",
	"AWS Security":         "United States",
	"GitHub Security":      "United States",
	"Sophos":               "United Kingdom",
	"Darktrace":            "United Kingdom",
	"Kaspersky SecureList": "Russia",
	"F-Secure":             "Finland",
	"Avast":                "Czech Republic",
	"ESET":                 "Slovakia",
	"Trend Micro":          "Japan",
	"Check Point":          "Israel",
	"CyberArk":             "Israel",

	"SANS ISC":             "United States",
	"Mandiant Research":    "United States",
	"Secureworks Research": "United States",
	"Malwarebytes Labs":    "United States",
	"NIST Cybersecurity":   "United States",
	"Citizen Lab":          "Canada",
	"Check Point Research": "Israel",
	"F-Secure Labs":        "Finland",
	"Avast Threat Labs":    "Czech Republic",
	"ESET Research":        "Slovakia",
	"NCC Group Research":   "United Kingdom",
	"Trend Micro Research": "Japan",
	"Kaspersky Research":   "Russia",
}

// Catalog returns a copy of the built-in feed list.
func Catalog() []Source {
	out := make([]Source, len(catalog))
	copy(out, catalog)
	return out
}

// CountryFor returns the publisher country for a feed name, or "" when the
// name is not in the catalog.
func CountryFor(name string) string {
	return sourceCountry[name]
}

// SourcesByCountry returns the number of catalog feed names per country.
func SourcesByCountry() map[string]int {
	counts := make(map[string]int, 32)
	for _, country := range sourceCountry {
		counts[country]++
	}
	return counts
}

// CountriesWithSources lists the countries that have at least one feed.
func CountriesWithSources() []string {
	counts := SourcesByCountry()
	out := make([]string, 0, len(counts))
	for country := range counts {
		out = append(out, country)
	}
	sort.Strings(out)
	return out
}

// FilterByCountries keeps only sources whose publisher country is in the
// selection. An empty selection means no filtering.
func FilterByCountries(sources []Source, countries []string) []Source {
	if len(countries) == 0 {
		return sources
	}
	selected := make(map[string]bool, len(countries))
	for _, c := range countries {
		selected[c] = true
	}
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if selected[sourceCountry[s.Name]] {
			out = append(out, s)
		}
	}
	return out
}
