// Package catalog holds the invoices shown on the display and the loop and
// bot that pick which one is drawn.
package catalog

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var ErrNoSelection = errors.New("no such selection")

type Selection struct {
	FirstLine  string  `yaml:"first_line"`
	SecondLine string  `yaml:"second_line"`
	Price      float64 `yaml:"price"`
	Invoice    string  `yaml:"invoice"`
}

// PriceText is the third label line.
func (s Selection) PriceText() string {
	return fmt.Sprintf("%.03f satoshis", s.Price)
}

type Catalog struct {
	Selections []Selection `yaml:"selections"`
}

func Parse(bs []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(bs, &c); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}

	for i, s := range c.Selections {
		if s.Invoice == "" {
			return nil, errors.Errorf("selection %d has no invoice", i)
		}
	}

	return &c, nil
}

func Load(fs afero.Fs, name string) (*Catalog, error) {
	bs, err := afero.ReadFile(fs, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", name)
	}
	return Parse(bs)
}

func (c *Catalog) Len() int {
	return len(c.Selections)
}

// Get returns the selection at index i.
func (c *Catalog) Get(i int) (Selection, error) {
	if i < 0 || i >= len(c.Selections) {
		return Selection{}, errors.Wrapf(ErrNoSelection, "index %d of %d", i, len(c.Selections))
	}
	return c.Selections[i], nil
}

// Find looks a selection up by its first line.
func (c *Catalog) Find(name string) (Selection, error) {
	s, ok := lo.Find(c.Selections, func(s Selection) bool {
		return s.FirstLine == name
	})
	if !ok {
		return Selection{}, errors.Wrapf(ErrNoSelection, "name %q", name)
	}
	return s, nil
}

func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
