package news

import "testing"

func TestAffiliateMatchSingleTrigger(t *testing.T) {
	tagger := NewAffiliateTagger(nil)

	got := tagger.Match("iPhone 15 launch draws crowds in Accra")
	if _, ok := got["iphone"]; !ok {
		t.Fatalf("expected iphone trigger in %v", got)
	}
	if len(got) != 1 {
		t.Errorf("expected only iphone trigger, got %v", got)
	}
}

func TestAffiliateMatchMultipleTriggers(t *testing.T) {
	tagger := NewAffiliateTagger(map[string]string{
		"laptop":  "https://example.com/laptop",
		"samsung": "https://example.com/samsung",
		"book":    "https://example.com/book",
	})

	got := tagger.Match("Samsung laptop deals this week")
	if len(got) != 2 {
		t.Fatalf("expected 2 triggers, got %v", got)
	}
	if got["laptop"] != "https://example.com/laptop" {
		t.Errorf("laptop URL = %q", got["laptop"])
	}
	if got["samsung"] != "https://example.com/samsung" {
		t.Errorf("samsung URL = %q", got["samsung"])
	}
}

func TestAffiliateMatchNoTriggers(t *testing.T) {
	tagger := NewAffiliateTagger(nil)

	got := tagger.Match("Parliament debates the budget")
	if got == nil {
		t.Fatal("Match must return an empty map, not nil")
	}
	if len(got) != 0 {
		t.Errorf("expected no triggers, got %v", got)
	}
}

func TestAffiliateMatchCaseInsensitive(t *testing.T) {
	tagger := NewAffiliateTagger(nil)

	got := tagger.Match("JUMIA announces flash sale")
	if _, ok := got["jumia"]; !ok {
		t.Errorf("expected jumia trigger, got %v", got)
	}
}
