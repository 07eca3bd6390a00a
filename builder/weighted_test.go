/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/builder"
	"dirpx.dev/cbx/config"
)

func TestWeighted_DefaultWeights(t *testing.T) {
	b := builder.NewWeighted[Resolved]()
	require.NoError(t, b.Append(r1, r2, r3))

	// Resolved2 declares weight 50, the others get the default.
	w, ok := b.Weight(r2)
	require.True(t, ok)
	assert.Equal(t, 50, w)
	w, _ = b.Weight(r1)
	assert.Equal(t, config.DefaultWeight, w)

	assert.Equal(t, types(r2, r1, r3), materialize(t, b.CreateCollection(newResolver())))
}

func TestWeighted_ConfiguredDefaultWeight(t *testing.T) {
	cfg := config.NewConfig(config.WithDefaultWeight(10))
	b := builder.NewWeighted[Resolved](builder.WithConfig(cfg))
	require.NoError(t, b.Append(r1, r2))

	assert.Equal(t, types(r1, r2), b.Order())
}

func TestWeighted_EqualWeightsKeepInsertionOrder(t *testing.T) {
	b := builder.NewWeighted[Resolved]()
	require.NoError(t, b.Add(r1, 100))
	require.NoError(t, b.Add(r2, 50))
	require.NoError(t, b.Add(r3, 100))

	assert.Equal(t, types(r2, r1, r3), b.Order())
}

func TestWeighted_SetWeight(t *testing.T) {
	b := builder.NewWeighted[Resolved]()
	require.NoError(t, b.Append(r1, r2))
	require.NoError(t, b.SetWeight(r1, 10))

	assert.Equal(t, types(r1, r2), materialize(t, b.CreateCollection(newResolver())))
}

func TestWeighted_SetWeightMissing(t *testing.T) {
	b := builder.NewWeighted[Resolved]()
	require.NoError(t, b.Append(r1))

	err := b.SetWeight(r3, 1)
	require.ErrorIs(t, err, apis.ErrEntryNotFound)

	var ce *apis.ContributionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "set-weight", ce.Op)
	assert.False(t, b.Has(r3))

	_, ok := b.Weight(r3)
	assert.False(t, ok)
}

func TestWeighted_AddExistingIsNoop(t *testing.T) {
	b := builder.NewWeighted[Resolved]()
	require.NoError(t, b.Add(r1, 10))
	require.NoError(t, b.Add(r3, 50))
	require.NoError(t, b.Add(r1, 90))

	assert.Equal(t, 2, b.Len())
	w, _ := b.Weight(r1)
	assert.Equal(t, 10, w)
	assert.Equal(t, types(r1, r3), b.Order())
}

func TestWeighted_AddThenSetWeightMoves(t *testing.T) {
	b := builder.NewWeighted[Resolved]()
	require.NoError(t, b.Add(r1, 10))
	require.NoError(t, b.Add(r3, 50))
	require.NoError(t, b.SetWeight(r1, 90))

	assert.Equal(t, types(r3, r1), b.Order())
}

func TestWeighted_Frozen(t *testing.T) {
	b := builder.NewWeighted[Resolved]()
	require.NoError(t, b.Add(r1, 1))
	require.NoError(t, b.Add(r2, 2))
	_ = b.CreateCollection(newResolver())

	assert.ErrorIs(t, b.SetWeight(r1, 5), apis.ErrFrozen)
	assert.ErrorIs(t, b.Add(r3, 5), apis.ErrFrozen)
	assert.ErrorIs(t, b.Append(r3), apis.ErrFrozen)
	assert.ErrorIs(t, b.Remove(r1), apis.ErrFrozen)
	assert.ErrorIs(t, b.Add(r4, 5), apis.ErrInvalidContribution)

	w, _ := b.Weight(r1)
	assert.Equal(t, 1, w)
	// Entries report the final order once frozen.
	assert.Equal(t, types(r1, r2), entryTypes(b.Entries()))
}

func TestWeighted_NegativeWeights(t *testing.T) {
	b := builder.NewWeighted[Resolved]()
	require.NoError(t, b.Append(r1, r2))
	require.NoError(t, b.Add(r3, -1))

	assert.Equal(t, types(r3, r2, r1), b.Order())
}
