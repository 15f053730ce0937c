/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/stringutil"
)

/*
prettyPrinterMap holds one template per NodeKind, keyed the same way
ecal keys its node-to-template map: by the node's own name. halc nodes
don't carry a variable child count the way ECAL expressions do, so there
is no "_<n>" arity suffix here - each kind has exactly one shape.
*/
var prettyPrinterMap map[NodeKind]*template.Template

func init() {
	prettyPrinterMap = map[NodeKind]*template.Template{
		SegmentLabel: template.Must(template.New("SegmentLabel").Parse(
			`[{{.Label}}]{{if .Comment}} {{.Comment}}{{end}}`)),

		Speech: template.Must(template.New("Speech").Parse(
			`{{.Speaker}}: {{.StoryText}}{{if .Comment}} {{.Comment}}{{end}}`)),

		Selection: template.Must(template.New("Selection").Parse(
			`> {{.StoryText}}{{if .Comment}} {{.Comment}}{{end}}`)),

		Extension: template.Must(template.New("Extension").Parse(
			`: {{.Label}}`)),

		Goto: template.Must(template.New("Goto").Parse(
			`@goto {{.Target}}`)),

		End: template.Must(template.New("End").Parse(
			`@end`)),

		Directive: template.Must(template.New("Directive").Parse(
			`@{{.CommandLabel}}({{.Inner}})`)),
	}
}

/*
PrettyPrint reconstructs halc source text from a Graph, walking its
top-level children in order and recursing into each node's own Children
window (Extension nodes hanging off a Speech/Selection). Indentation is
driven by the node's own TabCount rather than recursion depth, since a
node's recorded indent is the one the parser actually measured off the
source, not merely how deep PrettyPrint happens to recurse.
*/
func PrettyPrint(g *Graph) (string, error) {
	var buf bytes.Buffer

	root := g.Arena.Get(g.Root)
	for _, idx := range g.Index.Slice(root.Children) {
		if err := printNode(g, idx, &buf); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

/*
printNode renders a single node plus its Extension children, if any.
*/
func printNode(g *Graph, idx int32, buf *bytes.Buffer) error {
	n := g.Arena.Get(idx)

	line, err := renderNode(g, n)
	if err != nil {
		return err
	}

	buf.WriteString(stringutil.GenerateRollingString("\t", n.TabCount))
	buf.WriteString(line)
	buf.WriteString("\n")

	for _, childIdx := range g.Index.Slice(n.Children) {
		if err := printNode(g, childIdx, buf); err != nil {
			return err
		}
	}

	return nil
}

/*
renderNode executes the template for n.Kind, filling in the fields the
Directive and Goto kinds can't express through their own struct fields
directly (their rendered forms are token sequences, not single strings).
*/
func renderNode(g *Graph, n *Node) (string, error) {
	temp, ok := prettyPrinterMap[n.Kind]
	errorutil.AssertTrue(ok, fmt.Sprintf("PrettyPrint: no template for node kind %v", n.Kind))

	params := map[string]string{
		"Label":        n.Label,
		"Comment":      n.Comment,
		"Speaker":      n.Speaker,
		"StoryText":    n.StoryText,
		"CommandLabel": n.CommandLabel,
	}

	switch n.Kind {
	case Goto:
		params["Target"] = renderTokenChain(g, n.InnerTokens)
	case Directive:
		params["Inner"] = renderTokenChain(g, n.InnerTokens)
	}

	var buf bytes.Buffer
	errorutil.AssertOk(temp.Execute(&buf, params))

	return buf.String(), nil
}

/*
renderTokenChain joins the raw terminal views spanned by w back together,
reproducing the original text between the parens of a Directive or the
dotted segments of a Goto target.
*/
func renderTokenChain(g *Graph, w Window) string {
	var parts []string
	for _, idx := range g.Index.Slice(w) {
		parts = append(parts, g.Arena.Get(idx).Token.View)
	}
	return strings.Join(parts, "")
}
