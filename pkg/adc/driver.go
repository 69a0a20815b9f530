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
	"errors"
)

// ErrNoData is returned by ContinuousHandle.Read when the hardware has
// not produced any new conversion data yet. It is the normal idle state
// of a non-blocking poll, not a failure.
var ErrNoData = errors.New("no conversion data available")

// Defaults of the continuous-mode configuration, matching the
// single-unit pattern the sampler drives.
const (
	ContinuousStoreBufSize = 1024
	ContinuousFrameSize    = 256
	DefaultSampleFreqHz    = 20000
)

// ContinuousConfig describes the conversion pattern of a continuous
// unit. A single channel per pattern is supported.
type ContinuousConfig struct {
	StoreBufSize int
	FrameSize    int
	SampleFreqHz int
	Channel      ChannelID
	Atten        Atten
	BitWidth     int
}

// NewContinuousConfig returns the default single-channel pattern.
func NewContinuousConfig() ContinuousConfig {
	return ContinuousConfig{
		StoreBufSize: ContinuousStoreBufSize,
		FrameSize:    ContinuousFrameSize,
		SampleFreqHz: DefaultSampleFreqHz,
		Channel:      0,
		Atten:        AttenDB12,
		BitWidth:     BitWidth12,
	}
}

// OneshotHandle is the discrete-mode conversion primitive of a unit.
// Read blocks for the duration of a single conversion.
type OneshotHandle interface {
	ConfigureChannel(ch ChannelID, atten Atten, bitWidth int) error
	Read(ch ChannelID) (uint16, error)
}

// ContinuousHandle is the continuous-mode conversion primitive of a
// unit. Read is a non-blocking poll: it copies whatever frame bytes the
// hardware has accumulated into buf and returns ErrNoData when there is
// nothing to deliver. Close releases the hardware resource.
type ContinuousHandle interface {
	Start() error
	Stop() error
	Read(buf []byte) (int, error)
	Close() error
}

// Calibration maps raw codes to millivolts for one
// (unit, channel, attenuation, bit width) configuration. It is created
// once per channel and reused for every sample of that channel.
type Calibration interface {
	RawToMillivolts(raw uint16) int
}

// Driver is the boundary to the ADC peripheral implementation.
type Driver interface {
	NewOneshotUnit(unit UnitID) (OneshotHandle, error)
	NewContinuousUnit(unit UnitID, cfg ContinuousConfig) (ContinuousHandle, error)
	NewCalibration(unit UnitID, ch ChannelID, atten Atten, bitWidth int) (Calibration, error)
}
