/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

/*
Package runtime specifies, but does not implement, the contracts that an
eventual halcyon runtime exposes to everything upstream of it. The
compiler front end produces a Graph and hands it to a World; what a
World, an Interactor, or a FactDatabase actually do at runtime - ticking
story state, evaluating directives, resolving gotos, querying facts - is
out of scope here. Only the shapes a future implementation would satisfy
are fixed.
*/
package runtime

/*
FactDatabase is queried by directive evaluation to read and write named
facts about the world. It is the contract behind HalcFacts in the
original runtime header.
*/
type FactDatabase interface {

	/*
		GetFact returns the current value of a named fact.
	*/
	GetFact(name string) (interface{}, bool)

	/*
		SetFact assigns a value to a named fact.
	*/
	SetFact(name string, value interface{})
}

/*
Interactor is the collaborator that turns a compiled Graph into a running
conversation: presenting speech and selections, and receiving a choice
back. It is the contract behind HalcyonInteractor.
*/
type Interactor interface {

	/*
		Present displays a line of story text, optionally attributed to a
		speaker, to whatever is driving the conversation.
	*/
	Present(speaker string, text string)

	/*
		Choose presents a set of selection texts and returns the index of
		the one chosen.
	*/
	Choose(options []string) int
}

/*
World owns the compiled graphs, the fact database, and the registered
directive handlers for a running story. It is the contract behind
HalcyonWorld.
*/
type World interface {

	/*
		FactDatabase returns the fact store this world reads and writes.
	*/
	FactDatabase() FactDatabase

	/*
		InstallDirective registers a handler for a named directive command,
		invoked with the directive's raw inner tokens when the compiled
		graph reaches it.
	*/
	InstallDirective(command string, handler func(args []string) error)

	/*
		Tick advances the world by one step, returning false once the
		current story has reached an End node.
	*/
	Tick() bool
}
