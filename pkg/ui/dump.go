package ui

import (
	"bufio"
	"io"

	"github.com/Dicklesworthstone/goterm_viewer/pkg/tree"
)

// Dump writes the whole tree as plain text with branch drawing, one node
// per line in pre-order. Used when stdout is not a terminal.
func Dump(w io.Writer, tm *tree.Model) error {
	bw := bufio.NewWriter(w)
	var err error
	tm.Walk(func(n *tree.Node) bool {
		_, err = bw.WriteString(treePrefix(n) + n.Label() + "\n")
		return err == nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}
