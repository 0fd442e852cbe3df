package dataset

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ahm16/progcheck/pkg/integrity"
)

// MaxNodes bounds the number of values produced from one document, counting
// every expansion of an alias.
const MaxNodes = 1 << 20

// Parse decodes a single YAML document into a Value. Mapping order and
// non-string keys are preserved. An empty document is null. Recursive
// aliases, duplicate mapping keys and documents expanding past MaxNodes are
// errors.
func Parse(r io.Reader) (integrity.Value, error) {
	dec := yaml.NewDecoder(r)

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return integrity.Null(), nil
		}
		return integrity.Null(), err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return integrity.Null(), err
		}
		return integrity.Null(), fmt.Errorf("line %d: expected a single document", extra.Line)
	}

	c := &converter{active: make(map[*yaml.Node]bool)}
	return c.convert(&doc)
}

// converter turns a node tree into Values. Aliases are expanded in place, so
// it tracks the anchors being expanded and the total output size.
type converter struct {
	active map[*yaml.Node]bool
	nodes  int
}

func (c *converter) count(n *yaml.Node) error {
	c.nodes++
	if c.nodes > MaxNodes {
		return fmt.Errorf("line %d: document expands to more than %d values", n.Line, MaxNodes)
	}
	return nil
}

func (c *converter) alias(n *yaml.Node) (*yaml.Node, error) {
	if n.Alias == nil {
		return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
	}
	if c.active[n.Alias] {
		return nil, fmt.Errorf("line %d: anchor %q references itself", n.Line, n.Value)
	}
	return n.Alias, nil
}

func (c *converter) convert(n *yaml.Node) (integrity.Value, error) {
	if n.Kind == yaml.AliasNode {
		target, err := c.alias(n)
		if err != nil {
			return integrity.Null(), err
		}
		return c.convert(target)
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return integrity.Null(), nil
		}
		return c.convert(n.Content[0])
	}

	if err := c.count(n); err != nil {
		return integrity.Null(), err
	}

	switch n.Kind {
	case 0:
		return integrity.Null(), nil
	case yaml.ScalarNode:
		return convertScalar(n)
	case yaml.SequenceNode:
		c.active[n] = true
		defer delete(c.active, n)

		items := make([]integrity.Value, 0, len(n.Content))
		for _, child := range n.Content {
			v, err := c.convert(child)
			if err != nil {
				return integrity.Null(), err
			}
			items = append(items, v)
		}
		return integrity.Seq(items...), nil
	case yaml.MappingNode:
		c.active[n] = true
		defer delete(c.active, n)

		return c.convertMapping(n)
	default:
		return integrity.Null(), fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func convertScalar(n *yaml.Node) (integrity.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return integrity.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return integrity.Null(), err
		}
		return integrity.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return integrity.Null(), err
		}
		return integrity.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return integrity.Null(), err
		}
		return integrity.Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return integrity.Null(), err
		}
		return integrity.Timestamp(t, n.Value), nil
	default:
		return integrity.String(n.Value), nil
	}
}

// convertMapping rejects keys defined twice in the same mapping. Keys pulled
// in through "<<" merges are overridden by explicit keys instead.
func (c *converter) convertMapping(n *yaml.Node) (integrity.Value, error) {
	entries := make([]integrity.Entry, 0, len(n.Content)/2)
	lines := make(map[string]int, len(n.Content)/2)
	var merged []integrity.Entry

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]

		if keyNode.ShortTag() == "!!merge" {
			m, err := c.mergeEntries(valueNode)
			if err != nil {
				return integrity.Null(), err
			}
			merged = append(merged, m...)
			continue
		}

		key, err := c.convert(keyNode)
		if err != nil {
			return integrity.Null(), err
		}
		id := entryKey(key)
		if line, dup := lines[id]; dup {
			return integrity.Null(), fmt.Errorf("line %d: mapping key %s already defined at line %d",
				keyNode.Line, key.Repr(), line)
		}
		lines[id] = keyNode.Line

		value, err := c.convert(valueNode)
		if err != nil {
			return integrity.Null(), err
		}
		entries = append(entries, integrity.Entry{Key: key, Value: value})
	}

	for _, m := range merged {
		if _, explicit := lines[entryKey(m.Key)]; !explicit {
			lines[entryKey(m.Key)] = 0
			entries = append(entries, m)
		}
	}
	return integrity.Map(entries...), nil
}

func (c *converter) mergeEntries(n *yaml.Node) ([]integrity.Entry, error) {
	if n.Kind == yaml.AliasNode {
		target, err := c.alias(n)
		if err != nil {
			return nil, err
		}
		n = target
	}
	switch n.Kind {
	case yaml.MappingNode:
		v, err := c.convert(n)
		if err != nil {
			return nil, err
		}
		return v.Entries(), nil
	case yaml.SequenceNode:
		var out []integrity.Entry
		seen := make(map[string]bool)
		for _, child := range n.Content {
			m, err := c.mergeEntries(child)
			if err != nil {
				return nil, err
			}
			for _, e := range m {
				if !seen[entryKey(e.Key)] {
					seen[entryKey(e.Key)] = true
					out = append(out, e)
				}
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: merge value must be a mapping or a list of mappings", n.Line)
	}
}

// entryKey identifies a mapping key by kind and rendering, so 1 and '1'
// stay distinct.
func entryKey(key integrity.Value) string {
	return key.Kind().String() + ":" + key.Repr()
}
