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
	"fmt"
)

// ErrAtten returned when an attenuation string can not be parsed
type ErrAtten struct {
	Value string
}

func (e ErrAtten) Error() string {
	return fmt.Sprintf("Unknown attenuation: %s. Must be one of: 0db, 2.5db, 6db, 12db.", e.Value)
}

// ErrSampleCount returned by Read when the requested sample count is not positive
type ErrSampleCount struct {
	Count int
}

func (e ErrSampleCount) Error() string {
	return fmt.Sprintf("Sample count must be positive: %d", e.Count)
}
