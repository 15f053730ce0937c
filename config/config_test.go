/*
 * halcyon
 *
 * Copyright 2026 The halcyon authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package config

import (
	"testing"
)

func TestConfig(t *testing.T) {

	if res := Str(PackWorkers); res != "1" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(ColorDiagnostics); !res {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Int(PackWorkers); res != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := Bool(SuppressErrors); res {
		t.Error("Unexpected result:", res)
		return
	}
}
