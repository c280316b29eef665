package parser

// Minimal schemas used across the package tests.

type shelf struct {
	Base
	Title string
	Items Sequence
}

func (s *shelf) Children() []Node { return Collect(s.Items) }

type item struct {
	Base
	ID    string
	Badge Node
}

func (i *item) Children() []Node { return Collect(i.Badge) }

type badge struct {
	Base
	Label string
}

func (*badge) Children() []Node { return nil }

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(Schema{Type: "Shelf", Build: func(b *Builder, body Raw) (Node, error) {
		f := b.Fields(body)
		s := &shelf{Title: body.String("title"), Items: f.Sequence("items")}
		return s, f.Err()
	}})
	reg.Register(Schema{Type: "Item", Build: func(b *Builder, body Raw) (Node, error) {
		f := b.Fields(body)
		i := &item{ID: body.String("id"), Badge: f.Node("badge", "Badge")}
		return i, f.Err()
	}})
	reg.Register(Schema{Type: "Badge", Build: func(_ *Builder, body Raw) (Node, error) {
		return &badge{Label: body.String("label")}, nil
	}})
	reg.Freeze()
	return reg
}

func mustRaw(t interface{ Fatalf(string, ...any) }, doc string) Raw {
	raw, err := DecodeRaw([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return raw
}
