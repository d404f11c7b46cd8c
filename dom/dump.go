package dom

import (
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"fenced/utils/debug"
)

// String returns a readable tree dump of the whole document. It exists solely
// for manual inspection during debugging.
func (d *Document) String() string {
	if d == nil {
		return "<nil Document>"
	}
	tw := debug.NewTreeWriter()
	dumpNode(tw, 0, d.root)
	return tw.String()
}

func dumpNode(tw *debug.TreeWriter, depth int, n *Node) {
	if n.typ == NodeText {
		tw.Text(depth, "text", n.text)
		return
	}
	var b strings.Builder
	b.WriteString(string(n.typ))
	for _, k := range attrKeys(n.attrs) {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(strconv.Quote(n.attrs[k]))
	}
	tw.Node(depth, "%s", b.String())
	for _, c := range n.children {
		dumpNode(tw, depth+1, c)
	}
}

// attrKeys returns attribute names in natural order for stable output.
func attrKeys(attrs map[string]string) []string {
	if len(attrs) == 0 {
		return nil
	}
	keys := slices.Collect(maps.Keys(attrs))
	sort.Sort(natural.StringSlice(keys))
	return keys
}
