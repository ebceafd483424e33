package news

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAffiliateTriggers maps trigger keywords to affiliate URLs.
// Tunable data; override via affiliates.yaml.
var DefaultAffiliateTriggers = map[string]string{
	"iphone":  "https://amzn.to/ghana-iphone",
	"samsung": "https://amzn.to/ghana-samsung",
	"laptop":  "https://amzn.to/ghana-laptop",
	"tickets": "https://www.eventbrite.com/?aff=ghana_news",
	"book":    "https://amzn.to/ghana-books",
	"jumia":   "https://www.jumia.com.gh/?utm_source=ghananews&utm_medium=affiliate",
}

// AffiliatesConfig is the YAML override structure
// triggers:
//   iphone: https://...
type AffiliatesConfig struct {
	Triggers map[string]string `yaml:"triggers"`
}

// LoadAffiliateTriggers reads trigger mappings from a YAML file,
// falling back to the built-in set when the file is absent.
func LoadAffiliateTriggers(path string) (map[string]string, error) {
	if path == "" {
		return DefaultAffiliateTriggers, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAffiliateTriggers, nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg AffiliatesConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Triggers) == 0 {
		return DefaultAffiliateTriggers, nil
	}
	return cfg.Triggers, nil
}

// AffiliateTagger matches configured trigger keywords against article
// text.
type AffiliateTagger struct {
	triggers map[string]string
}

func NewAffiliateTagger(triggers map[string]string) *AffiliateTagger {
	if triggers == nil {
		triggers = DefaultAffiliateTriggers
	}
	return &AffiliateTagger{triggers: triggers}
}

// Match returns the triggers present in the text (case-insensitive
// substring) mapped to their URLs. Non-matches are simply absent; the
// result is never nil.
func (t *AffiliateTagger) Match(text string) map[string]string {
	lower := strings.ToLower(text)

	matched := make(map[string]string)
	for trigger, url := range t.triggers {
		if strings.Contains(lower, strings.ToLower(trigger)) {
			matched[trigger] = url
		}
	}
	return matched
}
