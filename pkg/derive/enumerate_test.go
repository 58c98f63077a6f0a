// Copyright (c) 2026, The logicforge Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package derive

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/pkg/config"
	"github.com/logicforge/logicforge/pkg/term"
)

func TestEnumerateTermsDepthZeroIsTerminalsOnly(t *testing.T) {
	f := newPeanoFixture(t)
	terms, err := EnumerateTerms(f.reg, f.nat, 0, config.Default(), nil)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	require.Equal(t, "Z", term.Render(f.reg, terms[0]))
}

func TestEnumerateTermsGrowsWithDepth(t *testing.T) {
	f := newPeanoFixture(t)
	terms, err := EnumerateTerms(f.reg, f.nat, 2, config.Default(), nil)
	require.NoError(t, err)
	rendered := make(map[string]bool, len(terms))
	for _, tm := range terms {
		rendered[term.Render(f.reg, tm)] = true
	}
	require.True(t, rendered["Z"])
	require.True(t, rendered["S(Z)"])
	require.True(t, rendered["S(S(Z))"])
}

func TestEnumerateTermsRespectsPerSortCap(t *testing.T) {
	f := newPeanoFixture(t)
	limits := config.Default()
	limits.EnumerationMaxPerSort = 2
	terms, err := EnumerateTerms(f.reg, f.nat, 5, limits, nil)
	require.NoError(t, err)
	require.LessOrEqual(t, len(terms), 2)
}

func TestEnumerateExamplesClassifiesEvenOdd(t *testing.T) {
	f := newPeanoFixture(t)
	limits := config.Default()
	limits.EnumerationTermDepth = 3
	examples, err := EnumerateExamples(f.reg, f.even, limits, 10, nil)
	require.NoError(t, err)
	require.NotEmpty(t, examples)

	foundPositive, foundNegative := false, false
	for _, ex := range examples {
		rendered := term.Render(f.reg, ex.Terms[0])
		switch rendered {
		case "Z", "S(S(Z))":
			require.Equal(t, ClassPositive, ex.Class)
			foundPositive = true
		case "S(Z)":
			require.Equal(t, ClassNegative, ex.Class)
			foundNegative = true
		}
	}
	require.True(t, foundPositive)
	require.True(t, foundNegative)
}
