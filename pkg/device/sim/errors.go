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

package sim

import (
	"fmt"
)

// ErrUnit returned when an unknown unit id is requested
type ErrUnit struct {
	Unit int
}

func (e ErrUnit) Error() string {
	return fmt.Sprintf("Unknown ADC unit: %d", e.Unit)
}

// ErrBitWidth returned when a conversion width other than 12 bits is requested
type ErrBitWidth struct {
	BitWidth int
}

func (e ErrBitWidth) Error() string {
	return fmt.Sprintf("Unsupported bit width: %d", e.BitWidth)
}

// ErrChannelNotConfigured returned by oneshot reads on channels that were never configured
type ErrChannelNotConfigured struct {
	Channel int
}

func (e ErrChannelNotConfigured) Error() string {
	return fmt.Sprintf("Channel not configured: %d", e.Channel)
}

// ErrAlreadyStarted ...
type ErrAlreadyStarted struct{}

func (e ErrAlreadyStarted) Error() string {
	return "Continuous conversion already started"
}

// ErrNotStarted ...
type ErrNotStarted struct{}

func (e ErrNotStarted) Error() string {
	return "Continuous conversion not started"
}

// ErrClosed ...
type ErrClosed struct{}

func (e ErrClosed) Error() string {
	return "Continuous unit already released"
}
