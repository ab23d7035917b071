// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package pireval

import "github.com/sirupsen/logrus"

// logCacheStats emits one Debug-level line per function the call cache was
// ever queried about, the optional diagnostic channel spec.md §6 allows
// implementations to provide ("cache statistics, per-function invocation
// counts").
func logCacheStats(logger *logrus.Entry, cache *CallCache) {
	for fun, stats := range cache.AllStats() {
		logger.WithFields(logrus.Fields{
			"function":    string(fun),
			"invocations": stats.Invocations,
			"hits":        stats.Hits,
			"misses":      stats.Misses,
		}).Debug("pireval: call cache statistics")
	}
}
