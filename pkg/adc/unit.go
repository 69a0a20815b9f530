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
	"jinr.ru/greenlab/go-adcstat/pkg/log"
)

// Unit owns the conversion handles of one ADC unit. The oneshot handle
// is created at construction and shared by all channels of the unit.
// The continuous handle is created on first demand and reused for every
// later acquisition; the unit is responsible for releasing it.
//
// A unit must outlive every channel created from it. At most one
// acquisition per unit may be in flight at a time, serialization is a
// caller obligation.
type Unit struct {
	driver     Driver
	id         UnitID
	oneshot    OneshotHandle
	continuous ContinuousHandle
	contCfg    ContinuousConfig
}

// NewUnit creates the oneshot side of the unit. It returns either a
// fully initialized unit or an error, never a half-built value.
func NewUnit(driver Driver, id UnitID) (*Unit, error) {
	oneshot, err := driver.NewOneshotUnit(id)
	if err != nil {
		log.Error("Failed to create oneshot unit: unit: %d: %s", id, err)
		return nil, err
	}
	return &Unit{
		driver:  driver,
		id:      id,
		oneshot: oneshot,
		contCfg: NewContinuousConfig(),
	}, nil
}

// ID ...
func (u *Unit) ID() UnitID {
	return u.id
}

// OneshotHandle ...
func (u *Unit) OneshotHandle() OneshotHandle {
	return u.oneshot
}

// SetSampleFreq overrides the continuous-mode sample rate. It has no
// effect once the continuous handle has been created.
func (u *Unit) SetSampleFreq(hz int) {
	if hz > 0 {
		u.contCfg.SampleFreqHz = hz
	}
}

// SetContinuousPattern points the continuous conversion pattern at the
// given channel and attenuation. It has no effect once the continuous
// handle has been created.
func (u *Unit) SetContinuousPattern(ch ChannelID, atten Atten) {
	u.contCfg.Channel = ch
	u.contCfg.Atten = atten
}

// ContinuousHandle returns the continuous-mode handle of the unit,
// creating it on the first call. Creation happens once per unit, not
// once per acquisition.
func (u *Unit) ContinuousHandle() (ContinuousHandle, error) {
	if u.continuous != nil {
		return u.continuous, nil
	}
	continuous, err := u.driver.NewContinuousUnit(u.id, u.contCfg)
	if err != nil {
		log.Error("Failed to create continuous unit: unit: %d: %s", u.id, err)
		return nil, err
	}
	u.continuous = continuous
	return u.continuous, nil
}

// Close releases the continuous-mode resource if it was ever created.
func (u *Unit) Close() error {
	if u.continuous == nil {
		return nil
	}
	continuous := u.continuous
	u.continuous = nil
	return continuous.Close()
}
