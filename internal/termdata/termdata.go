// Package termdata supplies term dictionaries: the embedded defaults or a
// YAML file with top-level types, countries and industries mappings.
package termdata

import (
	_ "embed"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cleancorp/internal/terms"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var defaults = sync.OnceValue(func() terms.Dictionaries {
	d, err := Parse(defaultsYAML)
	if err != nil {
		panic(eris.Wrap(err, "termdata: embedded defaults"))
	}
	return d
})

// Default returns the embedded dictionaries.
func Default() terms.Dictionaries { return defaults() }

// Load reads and parses a dictionary file.
func Load(path string) (terms.Dictionaries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return terms.Dictionaries{}, eris.Wrapf(err, "termdata: read %s", path)
	}
	d, err := Parse(data)
	if err != nil {
		return terms.Dictionaries{}, eris.Wrapf(err, "termdata: parse %s", path)
	}
	return d, nil
}

// Parse decodes dictionaries from YAML. Category order and term order are
// kept as written. Terms must be string scalars.
func Parse(data []byte) (terms.Dictionaries, error) {
	var doc struct {
		Types      yaml.Node `yaml:"types"`
		Countries  yaml.Node `yaml:"countries"`
		Industries yaml.Node `yaml:"industries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return terms.Dictionaries{}, eris.Wrapf(terms.ErrInvalidDictionary, "termdata: %v", err)
	}

	var (
		d   terms.Dictionaries
		err error
	)
	if d.Types, err = dictionary("types", &doc.Types); err != nil {
		return terms.Dictionaries{}, err
	}
	if d.Countries, err = dictionary("countries", &doc.Countries); err != nil {
		return terms.Dictionaries{}, err
	}
	if d.Industries, err = dictionary("industries", &doc.Industries); err != nil {
		return terms.Dictionaries{}, err
	}
	return d, nil
}

func dictionary(name string, n *yaml.Node) (terms.Dictionary, error) {
	if n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null") {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, eris.Wrapf(terms.ErrInvalidDictionary, "termdata: %s must be a mapping (line %d)", name, n.Line)
	}

	d := make(terms.Dictionary, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.SequenceNode {
			return nil, eris.Wrapf(terms.ErrInvalidDictionary, "termdata: %s.%s must be a list of terms (line %d)", name, key.Value, val.Line)
		}

		c := terms.Category{Key: key.Value, Terms: make([]string, 0, len(val.Content))}
		for _, item := range val.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
				return nil, eris.Wrapf(terms.ErrInvalidDictionary, "termdata: %s.%s has a non-string term at line %d", name, key.Value, item.Line)
			}
			c.Terms = append(c.Terms, item.Value)
		}
		d = append(d, c)
	}
	return d, nil
}
