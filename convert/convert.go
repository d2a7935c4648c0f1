// Package convert turns JSON (and YAML) documents into ADN.
//
// Documents are decoded into yaml.v3 node trees rather than Go maps so that
// object keys keep their source order in the resulting map elements.
package convert

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/alttpo/adn"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedNode = errors.New("unsupported document node")
	ErrBadScalar       = errors.New("scalar cannot be represented")
)

// FromJSON converts every document in data. An empty input yields no
// elements.
func FromJSON(data []byte) ([]adn.Element, error) {
	return FromReader(bytes.NewReader(data))
}

// FromReader converts every document read from r.
func FromReader(r io.Reader) (elements []adn.Element, err error) {
	dec := yaml.NewDecoder(r)
	for i := 0; ; i++ {
		var doc yaml.Node
		err = dec.Decode(&doc)
		if err == io.EOF {
			return elements, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "decoding document %d", i)
		}

		var e adn.Element
		e, err = FromNode(&doc)
		if err != nil {
			return nil, errors.Wrapf(err, "converting document %d", i)
		}
		elements = append(elements, e)
	}
}

// ToText converts data and renders the result, one form per document.
func ToText(data []byte) (string, error) {
	elements, err := FromJSON(data)
	if err != nil {
		return "", err
	}
	return adn.Format(elements), nil
}

// FromNode converts a decoded node tree.
func FromNode(n *yaml.Node) (e adn.Element, err error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return e, errors.Wrapf(ErrUnsupportedNode, "document with %d roots", len(n.Content))
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.SequenceNode:
		children := make([]adn.Element, 0, len(n.Content))
		for i, c := range n.Content {
			var ce adn.Element
			ce, err = FromNode(c)
			if err != nil {
				return e, errors.Wrapf(err, "index %d", i)
			}
			children = append(children, ce)
		}
		return adn.Vector(children...), nil
	case yaml.MappingNode:
		pairs := make([]adn.Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			var p adn.Pair
			p.Key, err = FromNode(n.Content[i])
			if err != nil {
				return e, errors.Wrapf(err, "key at line %d", n.Content[i].Line)
			}
			p.Value, err = FromNode(n.Content[i+1])
			if err != nil {
				return e, errors.Wrapf(err, "value of %q", n.Content[i].Value)
			}
			pairs = append(pairs, p)
		}
		return adn.Map(pairs...), nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return e, errors.Wrapf(ErrUnsupportedNode, "node kind %d at line %d", n.Kind, n.Line)
}

func fromScalar(n *yaml.Node) (e adn.Element, err error) {
	switch n.ShortTag() {
	case "!!null":
		return adn.Ident("null"), nil
	case "!!bool":
		var b bool
		if err = n.Decode(&b); err != nil {
			return e, errors.Wrap(ErrBadScalar, err.Error())
		}
		return adn.Ident(strconv.FormatBool(b)), nil
	case "!!int":
		var i int64
		if err = n.Decode(&i); err == nil {
			return adn.Int(i), nil
		}
		// out of int64 range; keep the magnitude as a float
		var f float64
		if err = n.Decode(&f); err != nil {
			return e, errors.Wrapf(ErrBadScalar, "integer %q", n.Value)
		}
		return adn.Float(f), nil
	case "!!float":
		var f float64
		if err = n.Decode(&f); err != nil {
			return e, errors.Wrapf(ErrBadScalar, "float %q", n.Value)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return e, errors.Wrapf(ErrBadScalar, "float %q has no ADN form", n.Value)
		}
		return adn.Float(f), nil
	case "!!str":
		// yaml.v3 resolves plain numbers beyond float64 range as strings
		if n.Style == 0 {
			if _, perr := strconv.ParseFloat(n.Value, 64); errors.Is(perr, strconv.ErrRange) {
				return e, errors.Wrapf(ErrBadScalar, "number %q out of range", n.Value)
			}
		}
		return adn.Str(n.Value), nil
	case "!!binary", "!!timestamp":
		return adn.Str(n.Value), nil
	}
	return e, errors.Wrapf(ErrBadScalar, "tag %s", n.ShortTag())
}
