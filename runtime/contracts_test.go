/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package runtime

import "testing"

/*
memoryFacts is a trivial in-memory FactDatabase double used to exercise
the contract shape in tests - never a real fact store.
*/
type memoryFacts struct {
	facts map[string]interface{}
}

func newMemoryFacts() *memoryFacts {
	return &memoryFacts{facts: make(map[string]interface{})}
}

func (m *memoryFacts) GetFact(name string) (interface{}, bool) {
	v, ok := m.facts[name]
	return v, ok
}

func (m *memoryFacts) SetFact(name string, value interface{}) {
	m.facts[name] = value
}

/*
nullInteractor is a trivial Interactor double that records what it was
asked to present and always chooses the first option.
*/
type nullInteractor struct {
	presented []string
}

func (n *nullInteractor) Present(speaker string, text string) {
	n.presented = append(n.presented, speaker+": "+text)
}

func (n *nullInteractor) Choose(options []string) int {
	return 0
}

func TestFactDatabaseContract(t *testing.T) {
	var fdb FactDatabase = newMemoryFacts()

	if _, ok := fdb.GetFact("met_hero"); ok {
		t.Error("Expected fact to be absent")
		return
	}

	fdb.SetFact("met_hero", true)

	v, ok := fdb.GetFact("met_hero")
	if !ok || v != true {
		t.Error("Unexpected result:", v, ok)
		return
	}
}

func TestInteractorContract(t *testing.T) {
	var in Interactor = &nullInteractor{}

	in.Present("Narrator", "It begins.")

	if choice := in.Choose([]string{"Go left", "Go right"}); choice != 0 {
		t.Error("Unexpected choice:", choice)
		return
	}
}
