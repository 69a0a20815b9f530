/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package adc

import (
	"sort"
)

// PercWidth returns the width of the central interval spanned by the
// percentile-th and (100-percentile)-th nearest-rank percentiles of
// data. For example with percentile = 30 it is the distance between the
// 30th and the 70th percentile values.
//
// Percentiles outside [10, 90] and empty batches yield 0. The reducer
// never fails, it is total over its input domain. Sorting happens on a
// private copy, the caller's batch is left untouched.
func PercWidth(data []int, percentile int) int {
	if percentile < 10 || percentile > 90 {
		return 0
	}
	if len(data) == 0 {
		return 0
	}

	sorted := make([]int, len(data))
	copy(sorted, data)
	sort.Ints(sorted)

	n := len(sorted)
	lowerIndex := (n - 1) * percentile / 100
	upperIndex := (n - 1) * (100 - percentile) / 100

	if lowerIndex > n-1 {
		lowerIndex = n - 1
	}
	if upperIndex > n-1 {
		upperIndex = n - 1
	}

	return sorted[upperIndex] - sorted[lowerIndex]
}
