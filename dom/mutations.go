package dom

import (
	"golang.org/x/net/html"
	"time"
)

type MutationType int

const (
	Value  = 1
	ChAttr = 2
	RmAttr = 3
	Rm     = 4
	Swap   = 5
	Insert = 6
)

func (t MutationType) String() string {
	switch t {
	case Value:
		return "Value"
	case ChAttr:
		return "Attr"
	case RmAttr:
		return "RmAttr"
	case Rm:
		return "Rm"
	case Swap:
		return "Swap"
	case Insert:
		return "Insert"
	}
	return ""
}

// Mutation describes one change applied to the live tree, observable
// through Tree.Mutations. Attrs snapshots the changed node's attributes
// at mutation time.
type Mutation struct {
	Time  time.Time
	Type  MutationType
	Tag   string
	Attrs map[string]string
}

// Mutations is the change feed. Records are dropped rather than block
// patching when nobody drains the channel.
func (t *Tree) Mutations() <-chan Mutation {
	return t.mutations
}

func (t *Tree) addMutation(typ MutationType, n *html.Node) {
	m := Mutation{
		Time:  time.Now(),
		Type:  typ,
		Attrs: map[string]string{},
	}
	if n != nil {
		if n.Type == html.ElementNode {
			m.Tag = n.Data
		}
		for _, a := range n.Attr {
			m.Attrs[a.Key] = a.Val
		}
	}
	select {
	case t.mutations <- m:
	default:
	}
}
