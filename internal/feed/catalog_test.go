// internal/feed/catalog_test.go
package feed

import "testing"

func TestCatalogEntriesComplete(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Catalog() {
		if s.Name == "" || s.URL == "" {
			t.Errorf("catalog entry missing name or url: %+v", s)
		}
		switch s.PublisherType {
		case PublisherIndustry, PublisherGovernment, PublisherVendor, PublisherResearch:
		default:
			t.Errorf("%s: unknown publisher type %q", s.Name, s.PublisherType)
		}
		seen[s.Name] = true
	}
	// every catalog feed should have a publisher country
	for name := range seen {
		if CountryFor(name) == "" {
			t.Errorf("%s: no country mapping", name)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	a := Catalog()
	a[0].Name = "mutated"
	if Catalog()[0].Name == "mutated" {
		t.Error("Catalog must not expose internal state")
	}
}

func TestSourcesByCountry(t *testing.T) {
	counts := SourcesByCountry()
	if counts["United States"] == 0 {
		t.Error("expected United States sources")
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total != len(sourceCountry) {
		t.Errorf("counts sum %d != mapped names %d", total, len(sourceCountry))
	}
}

func TestFilterByCountries(t *testing.T) {
	all := Catalog()

	if got := FilterByCountries(all, nil); len(got) != len(all) {
		t.Errorf("empty filter must keep all sources, got %d of %d", len(got), len(all))
	}

	japanese := FilterByCountries(all, []string{"Japan"})
	if len(japanese) == 0 {
		t.Fatal("expected Japanese sources")
	}
	for _, s := range japanese {
		if CountryFor(s.Name) != "Japan" {
			t.Errorf("%s leaked into Japan filter (country %q)", s.Name, CountryFor(s.Name))
		}
	}
}
