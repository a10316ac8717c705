package serialize

import (
	"encoding/json"

	"github.com/outlinelabs/richedit/doc"
)

// jsonNode is a flat, sparse record shared by every node variant, with
// Type naming which of the other fields are meaningful — the same
// pattern the printer package uses for its jsonKey/jsonValue records,
// just with more variants.
type jsonNode struct {
	Type string `json:"type"`

	// element
	Tag       string     `json:"tag,omitempty"`
	Align     uint8      `json:"align,omitempty"`
	Indent    int        `json:"indent,omitempty"`
	Direction string     `json:"direction,omitempty"`
	Children  []jsonNode `json:"children,omitempty"`

	// text
	Text   string `json:"text,omitempty"`
	Format uint16 `json:"format,omitempty"`
	Mode   uint8  `json:"mode,omitempty"`
	Style  string `json:"style,omitempty"`
	Detail uint8  `json:"detail,omitempty"`

	// decorator
	DecoratorType string `json:"decorator_type,omitempty"`
	Payload       any    `json:"payload,omitempty"`

	// unknown
	RawType  string         `json:"raw_type,omitempty"`
	RawAttrs map[string]any `json:"raw_attrs,omitempty"`
}

// ToJSON renders state as an indented JSON tree rooted at doc.RootKey.
func ToJSON(state *doc.EditorState) ([]byte, error) {
	root, err := buildJSONNode(state, doc.RootKey)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(root, "", "  ")
}

// FromJSON parses data as a JSON tree previously produced by ToJSON
// and builds a fresh EditorState from it. Every node is assigned a new
// NodeKey from a KeyAllocator private to this call; the returned
// state's keys bear no relation to whatever state originally produced
// data.
func FromJSON(data []byte) (*doc.EditorState, error) {
	var root jsonNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Type != "root" {
		return nil, ErrNotRootNode
	}

	state := doc.NewEmptyState()
	keys := doc.NewKeyAllocator()
	children, err := buildChildren(state, keys, root.Children, doc.RootKey)
	if err != nil {
		return nil, err
	}
	state.Root().Children = children
	return state, nil
}

func buildJSONChildren(state *doc.EditorState, children []doc.NodeKey) ([]jsonNode, error) {
	out := make([]jsonNode, 0, len(children))
	for _, c := range children {
		jn, err := buildJSONNode(state, c)
		if err != nil {
			return nil, err
		}
		out = append(out, jn)
	}
	return out, nil
}

func buildJSONNode(state *doc.EditorState, key doc.NodeKey) (jsonNode, error) {
	n, ok := state.Get(key)
	if !ok {
		return jsonNode{}, doc.ErrKeyNotFound
	}

	switch v := n.(type) {
	case *doc.RootNode:
		children, err := buildJSONChildren(state, v.Children)
		if err != nil {
			return jsonNode{}, err
		}
		return jsonNode{Type: "root", Children: children}, nil

	case *doc.ElementNode:
		children, err := buildJSONChildren(state, v.Children)
		if err != nil {
			return jsonNode{}, err
		}
		jn := jsonNode{
			Type:     "element",
			Tag:      string(v.Tag),
			Align:    uint8(v.Format),
			Indent:   v.Indent,
			Children: children,
		}
		if v.Direction != nil {
			jn.Direction = directionString(*v.Direction)
		}
		return jn, nil

	case *doc.TextNode:
		return jsonNode{
			Type:   "text",
			Text:   v.Text,
			Format: uint16(v.Format),
			Mode:   uint8(v.Mode),
			Style:  v.Style,
			Detail: uint8(v.Detail),
		}, nil

	case *doc.LineBreakNode:
		return jsonNode{Type: "linebreak"}, nil

	case *doc.DecoratorNode:
		return jsonNode{Type: "decorator", DecoratorType: v.Type, Payload: v.Payload}, nil

	case *doc.UnknownNode:
		children, err := buildJSONChildren(state, v.Children)
		if err != nil {
			return jsonNode{}, err
		}
		return jsonNode{Type: "unknown", RawType: v.RawType, RawAttrs: v.RawAttrs, Children: children}, nil

	default:
		return jsonNode{}, doc.ErrKeyNotFound
	}
}

// buildChildren (FromJSON side) instantiates children's nodes under
// parent and returns their freshly allocated keys in order.
func buildChildren(state *doc.EditorState, keys *doc.KeyAllocator, children []jsonNode, parent doc.NodeKey) ([]doc.NodeKey, error) {
	out := make([]doc.NodeKey, 0, len(children))
	for _, c := range children {
		key, err := buildNode(state, keys, c, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, nil
}

func buildNode(state *doc.EditorState, keys *doc.KeyAllocator, jn jsonNode, parent doc.NodeKey) (doc.NodeKey, error) {
	key := keys.Next()

	switch jn.Type {
	case "element":
		el := doc.NewElement(key, doc.ElementTag(jn.Tag))
		el.Format = doc.ElementFormat(jn.Align)
		el.Indent = jn.Indent
		if jn.Direction != "" {
			d, err := parseDirection(jn.Direction)
			if err != nil {
				return 0, err
			}
			el.Direction = &d
		}
		doc.SetParent(el, parent)
		children, err := buildChildren(state, keys, jn.Children, key)
		if err != nil {
			return 0, err
		}
		el.Children = children
		state.NodeMap[key] = el
		return key, nil

	case "text":
		t := doc.NewText(key, jn.Text)
		t.Format = doc.TextFormat(jn.Format)
		t.Mode = doc.TextMode(jn.Mode)
		t.Style = jn.Style
		t.Detail = doc.DetailFlag(jn.Detail)
		doc.SetParent(t, parent)
		state.NodeMap[key] = t
		return key, nil

	case "linebreak":
		lb := doc.NewLineBreak(key)
		doc.SetParent(lb, parent)
		state.NodeMap[key] = lb
		return key, nil

	case "decorator":
		dn := doc.NewDecorator(key, jn.DecoratorType, jn.Payload)
		doc.SetParent(dn, parent)
		state.NodeMap[key] = dn
		return key, nil

	case "unknown":
		u := doc.NewUnknown(key, jn.RawType, jn.RawAttrs)
		doc.SetParent(u, parent)
		children, err := buildChildren(state, keys, jn.Children, key)
		if err != nil {
			return 0, err
		}
		u.Children = children
		state.NodeMap[key] = u
		return key, nil

	case "root":
		return 0, ErrNestedRoot

	default:
		return 0, ErrUnknownNodeType
	}
}

func directionString(d doc.Direction) string {
	if d == doc.DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

func parseDirection(s string) (doc.Direction, error) {
	switch s {
	case "ltr":
		return doc.DirectionLTR, nil
	case "rtl":
		return doc.DirectionRTL, nil
	default:
		return 0, ErrUnknownDirection
	}
}
