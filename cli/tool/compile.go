/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package tool

import (
	"flag"
	"fmt"
	"io"
	"os"

	"devt.de/krotik/common/stringutil"

	"github.com/peterino2/halcyon/config"
	"github.com/peterino2/halcyon/parser"
	"github.com/peterino2/halcyon/util"
)

/*
CLICompiler loads and compiles a single halc entry file, the
batch-compiler replacement for ecal's CLIInterpreter: there is no
expression evaluator to drop into a REPL over, so loading the file and
reporting on its diagnostics is the whole job.
*/
type CLICompiler struct {
	EntryFile string

	Dir    *string
	Dump   *bool
	Pretty *bool

	LogOut io.Writer
}

/*
NewCLICompiler creates a new commandline compiler.
*/
func NewCLICompiler() *CLICompiler {
	return &CLICompiler{"", nil, nil, nil, os.Stdout}
}

/*
ParseArgs parses the command line arguments. Returns true if the program
should exit.
*/
func (c *CLICompiler) ParseArgs() bool {
	if c.Dir != nil {
		return false
	}

	wd, _ := os.Getwd()

	c.Dir = flag.String("dir", wd, "Root directory the entry file is resolved against")
	c.Dump = flag.Bool("dump", false, "Dump the compiled AST as a table")
	c.Pretty = flag.Bool("pretty", false, "Print the pretty-printed reconstruction of the source")
	showHelp := flag.Bool("help", false, "Show this help message")

	verb := "compile"
	if len(osArgs) >= 2 {
		verb = osArgs[1]
	}

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), fmt.Sprintf("Usage of %s %s [options] <file>", osArgs[0], verb))
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])

		if cargs := flag.Args(); len(cargs) > 0 {
			c.EntryFile = flag.Arg(0)
		}

		if *showHelp {
			flag.Usage()
		}
	}

	return *showHelp
}

/*
Compile loads, compiles and reports on a single entry file.
*/
func (c *CLICompiler) Compile() error {
	if c.ParseArgs() {
		return nil
	}
	return c.compileParsed()
}

/*
dumpGraph prints every top-level node of g as a table row.
*/
func dumpGraph(out io.Writer, g *parser.Graph) {
	tabData := []string{"Node", "Detail"}

	root := g.Arena.Get(g.Root)
	for _, idx := range g.Index.Slice(root.Children) {
		n := g.Arena.Get(idx)
		tabData = fillTableRow(tabData, fmt.Sprintf("%v [%v]", n.Kind, n.TabCount), nodeDetail(n))
	}

	if len(tabData) > 2 {
		fmt.Fprint(out, stringutil.PrintGraphicStringTable(tabData, 2, 1, stringutil.SingleDoubleLineTable))
	}
}

/*
nodeDetail returns the one-line dump text for a top-level node, picking
whichever fields are meaningful for its kind.
*/
func nodeDetail(n *parser.Node) string {
	switch n.Kind {
	case parser.SegmentLabel:
		return n.Label
	case parser.Speech:
		return fmt.Sprintf("%v: %v", n.Speaker, n.StoryText)
	case parser.Selection:
		return n.StoryText
	case parser.Goto:
		return n.Label
	case parser.Directive:
		return n.CommandLabel
	default:
		return ""
	}
}

/*
Compile is the package-level entry point for the compile subcommand.
*/
func Compile() error {
	return NewCLICompiler().Compile()
}

/*
Dump is the package-level entry point for the dump subcommand: it
behaves like Compile but always prints the AST table regardless of the
-dump flag.
*/
func Dump() error {
	c := NewCLICompiler()
	if c.ParseArgs() {
		return nil
	}
	forced := true
	c.Dump = &forced
	return c.compileParsed()
}

/*
compileParsed runs the compile step assuming ParseArgs has already been
called, shared by Compile and Dump.
*/
func (c *CLICompiler) compileParsed() error {
	if c.EntryFile == "" {
		flag.Usage()
		return fmt.Errorf("no entry file given")
	}

	parser.Diag().Color = config.Bool(config.ColorDiagnostics)
	parser.SuppressErrors(config.Bool(config.SuppressErrors))
	parser.SetParserVerbose(config.Bool(config.ParserVerbose))
	parser.EnableAllocationTracking(config.Bool(config.TrackAllocations))

	loader := &util.FileSourceLoader{Root: *c.Dir}

	data, err := loader.Load(c.EntryFile)
	if err != nil {
		return err
	}

	before := len(parser.Diag().History.Slice())
	g, err := parser.Compile(data, c.EntryFile)
	if err != nil {
		return err
	}

	if len(parser.Diag().History.Slice()) > before {
		return fmt.Errorf("%v contains malformed lines, see diagnostics above", c.EntryFile)
	}

	if *c.Pretty {
		out, perr := parser.PrettyPrint(g)
		if perr != nil {
			return perr
		}
		fmt.Fprint(c.LogOut, out)
	}

	if *c.Dump {
		dumpGraph(c.LogOut, g)
	}

	return nil
}
