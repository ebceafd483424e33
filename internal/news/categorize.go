package news

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CategoryGeneral is the fallback when no category scores above the
// minimum threshold.
const CategoryGeneral = "general"

// minScoreThreshold guards against a single weak keyword classifying
// an unrelated article.
const minScoreThreshold = 2

const (
	strongKeywordPoints = 3
	weakKeywordPoints   = 1
)

// CategoryRule holds the keyword lists for one category. Strong
// keywords score 3 points, weak keywords 1 point. Rule order matters:
// the first declared category wins score ties.
type CategoryRule struct {
	Name   string   `yaml:"name"`
	Strong []string `yaml:"strong"`
	Weak   []string `yaml:"weak"`
}

// KeywordsConfig is the YAML override structure for the keyword
// knowledge base.
type KeywordsConfig struct {
	Categories []CategoryRule `yaml:"categories"`
}

// LoadCategoryRules reads keyword lists from a YAML file. A missing
// file is not an error; the built-in lists are used instead.
func LoadCategoryRules(path string) ([]CategoryRule, error) {
	if path == "" {
		return DefaultCategoryRules, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultCategoryRules, nil
		}
		return nil, err
	}
	defer f.Close()

	var cfg KeywordsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Categories) == 0 {
		return DefaultCategoryRules, nil
	}
	return cfg.Categories, nil
}

// Categorizer assigns exactly one category to a title+summary pair.
// It is a pure function of its input: same text, same category.
type Categorizer struct {
	rules []CategoryRule
}

func NewCategorizer(rules []CategoryRule) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultCategoryRules
	}
	return &Categorizer{rules: rules}
}

// Categorize scores every category against the lower-cased
// title+summary text. Keywords match by substring containment and
// count once each (presence, not frequency). The highest score wins;
// ties go to the earlier-declared category; anything under the
// threshold falls back to general.
func (c *Categorizer) Categorize(title, summary string) string {
	text := strings.ToLower(title + " " + summary)

	best := CategoryGeneral
	bestScore := 0

	for _, rule := range c.rules {
		score := 0
		for _, kw := range rule.Strong {
			if strings.Contains(text, strings.ToLower(kw)) {
				score += strongKeywordPoints
			}
		}
		for _, kw := range rule.Weak {
			if strings.Contains(text, strings.ToLower(kw)) {
				score += weakKeywordPoints
			}
		}
		if score > bestScore {
			best = rule.Name
			bestScore = score
		}
	}

	if bestScore < minScoreThreshold {
		return CategoryGeneral
	}
	return best
}
