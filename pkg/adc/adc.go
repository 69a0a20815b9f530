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

// Package adc implements discrete and continuous sampling of SoC ADC
// channels and the reduction of sample batches into summary statistics
// expressed in calibrated millivolts. The hardware itself is reached
// through the Driver interface, see driver.go.
package adc

import (
	"fmt"
)

// UnitID identifies an ADC unit of the SoC. Unit 1 is the one normally
// used, unit 2 has a single channel and special constraints.
type UnitID int

// ChannelID identifies an ADC channel within a unit.
type ChannelID int

const (
	Unit1 UnitID = 1
	Unit2 UnitID = 2
)

// BitWidth12 is the conversion width used throughout. Raw codes are
// always masked to this domain.
const (
	BitWidth12 = 12
	RawMax     = 0xFFF
)

// Atten is the input attenuation of a channel. Higher attenuation
// trades a wider usable voltage range for a larger measurement error.
type Atten int

const (
	AttenDB0 Atten = iota
	AttenDB2_5
	AttenDB6
	AttenDB12
)

// FullScaleMV returns the upper end of the usable input range for the
// attenuation level.
//
//	AttenDB0      0 – 750 mV   ±10 mV
//	AttenDB2_5    0 – 1050 mV  ±10 mV
//	AttenDB6      0 – 1300 mV  ±10 mV
//	AttenDB12     0 – 2500 mV  ±35 mV
func (a Atten) FullScaleMV() int {
	switch a {
	case AttenDB0:
		return 750
	case AttenDB2_5:
		return 1050
	case AttenDB6:
		return 1300
	case AttenDB12:
		return 2500
	}
	return 0
}

func (a Atten) String() string {
	switch a {
	case AttenDB0:
		return "0db"
	case AttenDB2_5:
		return "2.5db"
	case AttenDB6:
		return "6db"
	case AttenDB12:
		return "12db"
	}
	return fmt.Sprintf("atten(%d)", int(a))
}

// ParseAtten parses the string form used in config files.
func ParseAtten(s string) (Atten, error) {
	attenMapping := map[string]Atten{
		"0db":   AttenDB0,
		"2.5db": AttenDB2_5,
		"6db":   AttenDB6,
		"12db":  AttenDB12,
	}
	atten, ok := attenMapping[s]
	if !ok {
		return 0, ErrAtten{Value: s}
	}
	return atten, nil
}
