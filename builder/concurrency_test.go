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
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/builder"
	"dirpx.dev/cbx/metrics"
)

// TestConcurrentFirstMaterialization races mutations against the first
// CreateCollection. Every collection must see the same order and the list
// must freeze exactly once.
func TestConcurrentFirstMaterialization(t *testing.T) {
	m := metrics.New("race")
	reg := prometheus.NewRegistry()
	m.MustRegister(reg)

	b := builder.NewWeighted[Resolved](builder.WithName("race"), builder.WithMetrics(m))
	require.NoError(t, b.Append(r1))

	workers := runtime.GOMAXPROCS(0) * 4
	orders := make([][]reflect.Type, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if i%2 == 0 {
				// Either accepted before the freeze or rejected as frozen.
				if err := b.Add(r2, i); err != nil {
					assert.ErrorIs(t, err, apis.ErrFrozen)
				}
			}
			orders[i] = b.CreateCollection(newResolver()).Types()
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, orders[0], orders[i], "worker %d", i)
	}
	assert.Equal(t, b.Order(), orders[0])

	const want = `
# HELP race_freezes_total Number of contribution lists frozen by a first materialization.
# TYPE race_freezes_total counter
race_freezes_total{collection="race"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "race_freezes_total"))
}

func TestBuilder_RecordsContributions(t *testing.T) {
	m := metrics.New("cbx")
	reg := prometheus.NewRegistry()
	m.MustRegister(reg)

	b := builder.NewOrdered[Resolved](builder.WithName("handlers"), builder.WithMetrics(m))
	require.NoError(t, b.Append(r1))
	require.NoError(t, b.Append(r2))
	require.NoError(t, b.InsertBefore(r1, r3))
	// Rejected mutations are not counted.
	require.Error(t, b.Insert(r3, 42))

	const want = `
# HELP cbx_contributions_total Number of accepted builder mutations by collection and operation.
# TYPE cbx_contributions_total counter
cbx_contributions_total{collection="handlers",op="append"} 2
cbx_contributions_total{collection="handlers",op="insert-before"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "cbx_contributions_total"))
}

func TestBuilder_LogsFreeze(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := builder.NewOrdered[Resolved](builder.WithName("handlers"), builder.WithLogger(zap.New(core)))

	require.NoError(t, b.Append(r1, r2))
	require.Error(t, b.Append(r4))
	_ = b.CreateCollection(newResolver())
	_ = b.CreateCollection(newResolver())

	frozen := logs.FilterMessage("contribution list frozen").AllUntimed()
	require.Len(t, frozen, 1)
	assert.Equal(t, zapcore.InfoLevel, frozen[0].Level)
	ctx := frozen[0].ContextMap()
	assert.Equal(t, "handlers", ctx["collection"])
	assert.Equal(t, []interface{}{"*builder_test.Resolved1", "*builder_test.Resolved2"}, ctx["order"])

	assert.Equal(t, 1, logs.FilterMessage("contribution list changed").Len())
	assert.Equal(t, 1, logs.FilterMessage("contribution rejected").Len())
	assert.Equal(t, 2, logs.FilterMessage("collection created").Len())
}
