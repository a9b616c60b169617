// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
)

func expectSubstr(t *testing.T, str, substring string) {
	t.Helper()
	if !strings.Contains(str, substring) {
		t.Errorf("expected %v to contain substring %v", str, substring)
	}
}

func TestMemoryFootprintIsFormatable(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("left", NewMemoryFootprint(50*1024))
	fp.AddChild("right", NewMemoryFootprint(10*1024*1024+200*1024))

	print := fmt.Sprintf("%v", fp)
	expectSubstr(t, print, "10.2 MiB .\n")
	expectSubstr(t, print, "50.0 KiB ./left\n")
	expectSubstr(t, print, "10.2 MiB ./right\n")
}

func TestMemoryFootprintSmallAmountsAreBytes(t *testing.T) {
	expectSubstr(t, NewMemoryFootprint(12).String(), "12 B .")
	expectSubstr(t, NewMemoryFootprint(1023).String(), "1023 B .")
	expectSubstr(t, NewMemoryFootprint(1024).String(), "1.0 KiB .")
}

func TestMemoryFootprintValue(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("x", NewMemoryFootprint(30))
	if got, want := fp.Value(), uintptr(12); got != want {
		t.Errorf("value does not match: %d != %d", got, want)
	}
	if got, want := fp.Total(), uintptr(42); got != want {
		t.Errorf("total does not match: %d != %d", got, want)
	}
}

func TestMemoryFootprint_SharedChildIsCountedOnce(t *testing.T) {
	shared := NewMemoryFootprint(10)
	fp := NewMemoryFootprint(1)
	fp.AddChild("a", shared)
	fp.AddChild("b", shared)
	if got, want := fp.Total(), uintptr(11); got != want {
		t.Errorf("total does not match: %d != %d", got, want)
	}
}

func TestMemoryFootprint_ChildNil(t *testing.T) {
	fp := NewMemoryFootprint(12)
	fp.AddChild("x", nil)
	if got, want := fp.Total(), uintptr(12); got != want {
		t.Errorf("value does not match: %d != %d", got, want)
	}
	if strings.Contains(fp.String(), "./x") {
		t.Errorf("nil child should not be printed")
	}
}

func TestMemoryFootprintPrintsComponentsInOrder(t *testing.T) {
	fp := NewMemoryFootprint(4)
	fp.AddChild("b", NewMemoryFootprint(5))
	fp.AddChild("a", NewMemoryFootprint(6))
	fp.AddChild("c", NewMemoryFootprint(7))

	print := fmt.Sprintf("%v", fp)
	match, err := regexp.MatchString(`22 B \.\n6 B \./a\n5 B \./b\n7 B \./c\n`, print)
	if err != nil {
		t.Fatalf("failed to match regex; %s", err)
	}
	if !match {
		t.Errorf("entries not in order:\n%v", print)
	}
}
