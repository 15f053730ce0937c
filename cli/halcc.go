/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peterino2/halcyon/cli/tool"
	"github.com/peterino2/halcyon/config"
)

func main() {

	// Initialize the default command line parser

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	// Define default usage message

	flag.Usage = func() {

		// Print usage for tool selection

		fmt.Println(fmt.Sprintf("Usage of %s <tool>", os.Args[0]))
		fmt.Println()
		fmt.Println(fmt.Sprintf("halcc %v - halc dialogue-graph compiler", config.ProductVersion))
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    compile   Compile a single halc file and report its diagnostics")
		fmt.Println("    check     Compile every halc file in a directory structure")
		fmt.Println("    dump      Compile a single halc file and print its AST")
		fmt.Println("    format    Reformat every halc file in a directory structure")
		fmt.Println("    pack      Validate and bundle halc files into a single archive")
		fmt.Println()
		fmt.Println(fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Println()
	}

	// Parse the command bit

	if err := flag.CommandLine.Parse(os.Args[1:]); err == nil {

		if len(flag.Args()) > 0 {

			switch flag.Args()[0] {
			case "compile":
				err = tool.Compile()
			case "check":
				err = tool.Check()
			case "dump":
				err = tool.Dump()
			case "format":
				err = tool.Format()
			case "pack":
				err = tool.Pack()
			default:
				flag.Usage()
			}

		} else {
			flag.Usage()
		}

		if err != nil {
			fmt.Println(fmt.Sprintf("Error: %v", err))
			osExit(1)
		}
	}
}

/*
osExit is a local variable pointing to os.Exit (used for unit tests).
*/
var osExit func(int) = os.Exit
