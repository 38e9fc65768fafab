// internal/geo/tables.go
// Static lookup tables for country attribution. Loaded once, never mutated.
package geo

// tldToCountry maps a country-code TLD to the country it belongs to. A TLD
// only matches when it is the true suffix of the host, never as a substring
// of a longer label.
var tldToCountry = map[string]string{
	".us": "United States",
	".uk": "United Kingdom",
	".ca": "Canada",
	".au": "Australia",
	".de": "Germany",
	".fr": "France",
	".it": "Italy",
	".es": "Spain",
	".nl": "Netherlands",
	".se": "Sweden",
	".no": "Norway",
	".fi": "Finland",
	".dk": "Denmark",
	".pl": "Poland",
	".jp": "Japan",
	".cn": "China",
	".kr": "South Korea",
	".in": "India",
	".sg": "Singapore",
	".nz": "New Zealand",
	".ie": "Ireland",
	".ch": "Switzerland",
	".at": "Austria",
	".be": "Belgium",
	".il": "Israel",
	".ru": "Russia",
	".br": "Brazil",
	".mx": "Mexico",
	".za": "South Africa",
	".ae": "United Arab Emirates",
	".sa": "Saudi Arabia",
	".ar": "Argentina",
	".cl": "Chile",
	".co": "Colombia",
	".pe": "Peru",
	".ve": "Venezuela",
	".uy": "Uruguay",
	".py": "Paraguay",
	".bo": "Bolivia",
	".ec": "Ecuador",
	".id": "Indonesia",
	".tr": "Turkey",
	".bg": "Bulgaria",
	".hr": "Croatia",
	".cy": "Cyprus",
	".cz": "Czech Republic",
	".ee": "Estonia",
	".gr": "Greece",
	".hu": "Hungary",
	".lv": "Latvia",
	".lt": "Lithuania",
	".lu": "Luxembourg",
	".mt": "Malta",
	".pt": "Portugal",
	".ro": "Romania",
	".sk": "Slovakia",
	".si": "Slovenia",
	".th": "Thailand",
	".vn": "Vietnam",
	".ph": "Philippines",
	".my": "Malaysia",
	".tw": "Taiwan",
	".eg": "Egypt",
	".ng": "Nigeria",
	".ke": "Kenya",
	".ma": "Morocco",
	".tn": "Tunisia",
	".dz": "Algeria",
	".pk": "Pakistan",
	".bd": "Bangladesh",
	".lk": "Sri Lanka",
	".mm": "Myanmar",
	".kh": "Cambodia",
	".la": "Laos",
}

// govRule matches national CERT/agency sources by name fragment or domain
// fragment. Any hit attributes the article to that country.
type govRule struct {
	country     string
	sourceFrags []string
	urlFrags    []string
}

var govRules = []govRule{
	{country: "United States", sourceFrags: []string{"cisa", "us-cert"}},
	{country: "United Kingdom", sourceFrags: []string{"ncsc"}, urlFrags: []string{".gov.uk"}},
	{country: "European Union", sourceFrags: []string{"enisa", "cert-eu"}, urlFrags: []string{"europa.eu"}},
	{country: "Canada", sourceFrags: []string{"cccs"}, urlFrags: []string{"cyber.gc.ca", ".gc.ca"}},
	{country: "Italy", sourceFrags: []string{"csirt italia"}, urlFrags: []string{"csirt.gov.it"}},
	{country: "Finland", sourceFrags: []string{"ncsc-fi"}, urlFrags: []string{"kyberturvallisuuskeskus"}},
	{country: "Sweden", sourceFrags: []string{"cert-se"}, urlFrags: []string{"cert.se"}},
	{country: "Denmark", sourceFrags: []string{"cfcs"}, urlFrags: []string{"cert.dk"}},
	{country: "Norway", sourceFrags: []string{"nsm norway"}, urlFrags: []string{"nsm.no"}},
	{country: "Austria", sourceFrags: []string{"cert.at"}, urlFrags: []string{"cert.at"}},
	{country: "Belgium", sourceFrags: []string{"ccb belgium"}, urlFrags: []string{"cert.be"}},
	{country: "Switzerland", sourceFrags: []string{"govcert switzerland"}, urlFrags: []string{"govcert.ch"}},
	{country: "Czech Republic", sourceFrags: []string{"nukib"}, urlFrags: []string{"nukib.gov.cz"}},
	{country: "Poland", sourceFrags: []string{"cert.pl"}, urlFrags: []string{"cert.pl"}},
	{country: "Slovakia", sourceFrags: []string{"sk-cert"}, urlFrags: []string{"sk-cert.sk"}},
	{country: "Hungary", sourceFrags: []string{"ncsc hungary"}, urlFrags: []string{"nki.gov.hu"}},
	{country: "Latvia", sourceFrags: []string{"cert.lv"}, urlFrags: []string{"cert.lv"}},
	{country: "Slovenia", sourceFrags: []string{"si-cert"}, urlFrags: []string{"cert.si"}},
	{country: "Croatia", sourceFrags: []string{"cert.hr"}, urlFrags: []string{"cert.hr"}},
	{country: "Romania", sourceFrags: []string{"cert-ro"}, urlFrags: []string{"dnsc.ro"}},
	{country: "Ukraine", sourceFrags: []string{"cert-ua"}, urlFrags: []string{"cert.gov.ua"}},
	{country: "Spain", sourceFrags: []string{"ccn-cert"}, urlFrags: []string{"ccn-cert.cni.es"}},
	{country: "Portugal", sourceFrags: []string{"cncs portugal"}, urlFrags: []string{"cncs.gov.pt"}},
	{country: "Greece", sourceFrags: []string{"gr-cert"}, urlFrags: []string{"cert.grnet.gr"}},
	{country: "Hong Kong", sourceFrags: []string{"govcert.hk", "hkcert"}, urlFrags: []string{"govcert.gov.hk", "hkcert.org"}},
	{country: "Bangladesh", sourceFrags: []string{"bgd"}, urlFrags: []string{"cirt.gov.bd"}},
	{country: "Egypt", sourceFrags: []string{"eg-cert"}, urlFrags: []string{"egcert.eg"}},
	{country: "Israel", sourceFrags: []string{"cert-il"}},
	{country: "Australia", sourceFrags: []string{"auscert"}, urlFrags: []string{"auscert.org.au"}},
}

// vendorCountries maps security vendor trade names (matched against the
// source name) to headquarters country.
var vendorCountries = map[string][]string{
	"United States": {
		"microsoft", "google", "cisco", "palo alto", "crowdstrike", "cloudflare",
		"fireeye", "mandiant", "proofpoint", "zscaler", "okta", "splunk",
		"rapid7", "tenable", "qualys", "fortinet", "trend micro", "symantec",
		"mcafee", "ibm security", "oracle security", "salesforce", "aws",
		"azure", "github security", "twitter security", "meta security", "facebook security",
	},
	"United Kingdom": {"sophos", "darktrace", "bae systems"},
	"Israel":         {"check point", "cyberark", "sentinelone", "cybereason"},
	"Russia":         {"kaspersky"},
	"Japan":          {"trend micro", "jpcert"},
}

// labRule matches known research lab names.
type labRule struct {
	country     string
	sourceFrags []string
	urlFrags    []string
}

var labRules = []labRule{
	{country: "Canada", sourceFrags: []string{"citizenlab"}, urlFrags: []string{"citizenlab.ca"}},
	{country: "Israel", sourceFrags: []string{"check point research"}},
}

// countryPatterns lists name/demonym/capital patterns searched in lowercased
// title+description. A match only counts when a contextual cue appears within
// 50 characters on either side.
var countryPatterns = map[string][]string{
	"United States":  {"united states", "usa", "u.s.", "u.s.a.", "america", "american", "us government", "fbi", "cia", "nsa", "dhs"},
	"Canada":         {"canada", "canadian", "canadian government", "rcmp"},
	"United Kingdom": {"united kingdom", "uk", "u.k.", "britain", "british", "uk government", "gchq"},
	"Australia":      {"australia", "australian", "australian government", "acsc"},
	"Germany":        {"germany", "german", "bsi"},
	"France":         {"france", "french", "anssi"},
	"Japan":          {"japan", "japanese", "japan government"},
	"China":          {"china", "chinese", "beijing"},
	"Russia":         {"russia", "russian", "moscow", "kremlin"},
	"Israel":         {"israel", "israeli", "tel aviv"},
	"Singapore":      {"singapore", "singaporean"},
	"South Korea":    {"south korea", "korean", "seoul"},
	"India":          {"india", "indian", "new delhi"},
	"Netherlands":    {"netherlands", "dutch", "amsterdam"},
	"Sweden":         {"sweden", "swedish", "stockholm"},
	"Norway":         {"norway", "norwegian", "oslo"},
	"Finland":        {"finland", "finnish", "helsinki"},
	"Denmark":        {"denmark", "danish", "copenhagen"},
	"Poland":         {"poland", "polish", "warsaw"},
	"Italy":          {"italy", "italian", "rome"},
	"Spain":          {"spain", "spanish", "madrid"},
	"Switzerland":    {"switzerland", "swiss", "bern"},
	"New Zealand":    {"new zealand", "nz", "wellington"},
	"Ireland":        {"ireland", "irish", "dublin"},
	"South Africa":   {"south africa", "south african"},
	"European Union": {"european union", "eu", "europe", "european commission", "brussels"},
	"Argentina":      {"argentina", "argentine", "argentinian", "buenos aires"},
	"Brazil":         {"brazil", "brazilian", "brasil", "são paulo", "rio de janeiro"},
	"Chile":          {"chile", "chilean", "santiago"},
	"Colombia":       {"colombia", "colombian", "bogota"},
	"Mexico":         {"mexico", "mexican", "mexico city"},
	"Peru":           {"peru", "peruvian", "lima"},
	"Indonesia":      {"indonesia", "indonesian", "jakarta"},
	"Turkey":         {"turkey", "turkish", "türkiye", "ankara", "istanbul"},
	"Bulgaria":       {"bulgaria", "bulgarian", "sofia"},
	"Croatia":        {"croatia", "croatian", "zagreb"},
	"Cyprus":         {"cyprus", "cypriot", "nicosia"},
	"Czech Republic": {"czech republic", "czech", "prague"},
	"Estonia":        {"estonia", "estonian", "tallinn"},
	"Greece":         {"greece", "greek", "athens"},
	"Hungary":        {"hungary", "hungarian", "budapest"},
	"Latvia":         {"latvia", "latvian", "riga"},
	"Lithuania":      {"lithuania", "lithuanian", "vilnius"},
	"Luxembourg":     {"luxembourg", "luxembourgish", "luxembourg city"},
	"Malta":          {"malta", "maltese", "valletta"},
	"Portugal":       {"portugal", "portuguese", "lisbon"},
	"Romania":        {"romania", "romanian", "bucharest"},
	"Slovakia":       {"slovakia", "slovak", "bratislava"},
	"Slovenia":       {"slovenia", "slovenian", "ljubljana"},
	"Thailand":       {"thailand", "thai", "bangkok"},
	"Vietnam":        {"vietnam", "vietnamese", "hanoi", "ho chi minh"},
	"Philippines":    {"philippines", "filipino", "manila"},
	"Malaysia":       {"malaysia", "malaysian", "kuala lumpur"},
	"Taiwan":         {"taiwan", "taiwanese", "taipei"},
	"Egypt":          {"egypt", "egyptian", "cairo"},
	"Nigeria":        {"nigeria", "nigerian", "lagos", "abuja"},
	"Kenya":          {"kenya", "kenyan", "nairobi"},
	"Morocco":        {"morocco", "moroccan", "rabat"},
	"Tunisia":        {"tunisia", "tunisian", "tunis"},
	"Algeria":        {"algeria", "algerian", "algiers"},
	"Pakistan":       {"pakistan", "pakistani", "islamabad", "karachi"},
	"Bangladesh":     {"bangladesh", "bangladeshi", "dhaka"},
	"Sri Lanka":      {"sri lanka", "sri lankan", "colombo"},
	"Myanmar":        {"myanmar", "burma", "burmese", "yangon"},
	"Cambodia":       {"cambodia", "cambodian", "phnom penh"},
	"Laos":           {"laos", "laotian", "vientiane"},
	"Venezuela":      {"venezuela", "venezuelan", "caracas"},
	"Uruguay":        {"uruguay", "uruguayan", "montevideo"},
	"Paraguay":       {"paraguay", "paraguayan", "asuncion"},
	"Bolivia":        {"bolivia", "bolivian", "la paz"},
	"Ecuador":        {"ecuador", "ecuadorian", "quito"},
}

// contextWords are the cues that must appear near a country pattern for a
// content-layer match to count. Incidental mentions are rejected.
var contextWords = []string{
	"government", "authorities", "officials", "agency", "ministry",
	"targeted", "attacked", "breach", "incident", "cyber", "security",
}

// urlPatterns matches country-specific path/domain substrings independent of
// the TLD layer.
var urlPatterns = map[string][]string{
	"United States":  {".gov/", "cisa.gov", "us-cert.gov", "fbi.gov", "cia.gov", "nsa.gov"},
	"United Kingdom": {".gov.uk", "ncsc.gov.uk", "gchq.gov.uk"},
	"Canada":         {".gc.ca", "cyber.gc.ca", "canada.ca"},
	"Australia":      {".gov.au", "cyber.gov.au", "acsc.gov.au"},
	"Germany":        {".de/", "bsi.bund.de"},
	"France":         {".fr/", "ssi.gouv.fr"},
	"Japan":          {".go.jp", ".jp/"},
	"Singapore":      {".gov.sg", "csa.gov.sg"},
	"Israel":         {".gov.il", ".il/"},
	"European Union": {"europa.eu", "enisa.europa.eu"},
}

// multiWordNames fixes title-casing for proper names that strings.Title-style
// casing would mangle.
var multiWordNames = map[string]string{
	"united states":        "United States",
	"united kingdom":       "United Kingdom",
	"european union":       "European Union",
	"south korea":          "South Korea",
	"new zealand":          "New Zealand",
	"south africa":         "South Africa",
	"united arab emirates": "United Arab Emirates",
	"saudi arabia":         "Saudi Arabia",
}
