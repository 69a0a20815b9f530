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

// Package sim is a software implementation of the adc.Driver boundary.
// It produces a DC level with bounded noise and calibrates codes with a
// linear scheme derived from the attenuation range, which makes the
// daemon and the CLI usable without ADC hardware.
package sim

import (
	"math/rand"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-adcstat/pkg/adc"
	"jinr.ru/greenlab/go-adcstat/pkg/layers"
)

// Driver ...
type Driver struct {
	LevelMV int
	NoiseMV int
	rnd     *rand.Rand
}

var _ adc.Driver = &Driver{}

// NewDriver creates a simulated driver producing levelMV with a noise
// band of +/- noiseMV.
func NewDriver(levelMV, noiseMV int) *Driver {
	return &Driver{
		LevelMV: levelMV,
		NoiseMV: noiseMV,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// code returns the raw code a perfect converter would produce for the
// current signal at the given attenuation.
func (d *Driver) code(atten adc.Atten) uint16 {
	mv := d.LevelMV
	if d.NoiseMV > 0 {
		mv += d.rnd.Intn(2*d.NoiseMV+1) - d.NoiseMV
	}
	fullScale := atten.FullScaleMV()
	if mv < 0 {
		mv = 0
	}
	if mv > fullScale {
		mv = fullScale
	}
	return uint16(mv * adc.RawMax / fullScale)
}

// NewOneshotUnit ...
func (d *Driver) NewOneshotUnit(unit adc.UnitID) (adc.OneshotHandle, error) {
	if unit != adc.Unit1 && unit != adc.Unit2 {
		return nil, ErrUnit{Unit: int(unit)}
	}
	return &oneshotUnit{
		driver: d,
		atten:  make(map[adc.ChannelID]adc.Atten),
	}, nil
}

// NewContinuousUnit ...
func (d *Driver) NewContinuousUnit(unit adc.UnitID, cfg adc.ContinuousConfig) (adc.ContinuousHandle, error) {
	if unit != adc.Unit1 && unit != adc.Unit2 {
		return nil, ErrUnit{Unit: int(unit)}
	}
	if cfg.BitWidth != adc.BitWidth12 {
		return nil, ErrBitWidth{BitWidth: cfg.BitWidth}
	}
	return &continuousUnit{
		driver: d,
		cfg:    cfg,
	}, nil
}

// NewCalibration returns a linear scheme over the usable range of the
// attenuation. A real driver would fit the device calibration curve
// here.
func (d *Driver) NewCalibration(unit adc.UnitID, ch adc.ChannelID, atten adc.Atten, bitWidth int) (adc.Calibration, error) {
	if bitWidth != adc.BitWidth12 {
		return nil, ErrBitWidth{BitWidth: bitWidth}
	}
	return &lineCalibration{fullScaleMV: atten.FullScaleMV()}, nil
}

type lineCalibration struct {
	fullScaleMV int
}

func (c *lineCalibration) RawToMillivolts(raw uint16) int {
	return int(raw) * c.fullScaleMV / adc.RawMax
}

type oneshotUnit struct {
	driver *Driver
	atten  map[adc.ChannelID]adc.Atten
}

func (u *oneshotUnit) ConfigureChannel(ch adc.ChannelID, atten adc.Atten, bitWidth int) error {
	if bitWidth != adc.BitWidth12 {
		return ErrBitWidth{BitWidth: bitWidth}
	}
	if atten.FullScaleMV() == 0 {
		return adc.ErrAtten{Value: atten.String()}
	}
	u.atten[ch] = atten
	return nil
}

func (u *oneshotUnit) Read(ch adc.ChannelID) (uint16, error) {
	atten, ok := u.atten[ch]
	if !ok {
		return 0, ErrChannelNotConfigured{Channel: int(ch)}
	}
	return u.driver.code(atten), nil
}

type continuousUnit struct {
	driver   *Driver
	cfg      adc.ContinuousConfig
	started  bool
	closed   bool
	lastPoll time.Time
}

func (u *continuousUnit) Start() error {
	if u.closed {
		return ErrClosed{}
	}
	if u.started {
		return ErrAlreadyStarted{}
	}
	u.started = true
	u.lastPoll = time.Now()
	return nil
}

func (u *continuousUnit) Stop() error {
	if !u.started {
		return ErrNotStarted{}
	}
	u.started = false
	return nil
}

// Read delivers the conversions accumulated at the configured sample
// rate since the previous poll, capped by the frame size and the
// capacity of buf.
func (u *continuousUnit) Read(buf []byte) (int, error) {
	if !u.started {
		return 0, ErrNotStarted{}
	}

	now := time.Now()
	pending := int(now.Sub(u.lastPoll).Seconds() * float64(u.cfg.SampleFreqHz))
	if pending <= 0 {
		return 0, adc.ErrNoData
	}
	if max := u.cfg.FrameSize / layers.WordSize; pending > max {
		pending = max
	}
	if max := len(buf) / layers.WordSize; pending > max {
		pending = max
	}
	if pending == 0 {
		return 0, adc.ErrNoData
	}
	u.lastPoll = now

	frame := &layers.SampleLayer{Codes: make([]uint16, pending)}
	for i := range frame.Codes {
		frame.Codes[i] = u.driver.code(u.cfg.Atten)
	}
	sb := gopacket.NewSerializeBuffer()
	if err := frame.SerializeTo(sb, gopacket.SerializeOptions{}); err != nil {
		return 0, err
	}
	return copy(buf, sb.Bytes()), nil
}

func (u *continuousUnit) Close() error {
	u.started = false
	u.closed = true
	return nil
}
