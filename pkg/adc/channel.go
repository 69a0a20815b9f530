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
	"math"
	"time"

	"github.com/google/gopacket"

	"jinr.ru/greenlab/go-adcstat/pkg/layers"
	"jinr.ru/greenlab/go-adcstat/pkg/log"
)

// ReadResult holds the statistics of one discrete read. All values are
// calibrated millivolts.
type ReadResult struct {
	AverageMV  int `json:"average_mv"`
	MinMV      int `json:"min_mv"`
	MaxMV      int `json:"max_mv"`
	P30WidthMV int `json:"p30_width_mv"`
	P60WidthMV int `json:"p60_width_mv"`
}

// Channel samples one ADC channel. It borrows the conversion handles
// and the unit id from its unit and holds the calibration created for
// its (unit, channel, attenuation, bit width) configuration. The unit
// must outlive the channel.
type Channel struct {
	unitID     UnitID
	id         ChannelID
	atten      Atten
	oneshot    OneshotHandle
	continuous ContinuousHandle
	cali       Calibration
}

// NewChannel configures the channel on the oneshot side of the unit and
// creates its calibration. If any step fails no channel is returned, a
// partially initialized channel is never observable.
func NewChannel(unit *Unit, ch ChannelID, atten Atten) (*Channel, error) {
	oneshot := unit.OneshotHandle()
	if err := oneshot.ConfigureChannel(ch, atten, BitWidth12); err != nil {
		log.Error("Failed to configure oneshot channel: channel: %d: %s", ch, err)
		return nil, err
	}
	unit.SetContinuousPattern(ch, atten)
	continuous, err := unit.ContinuousHandle()
	if err != nil {
		return nil, err
	}
	cali, err := unit.driver.NewCalibration(unit.ID(), ch, atten, BitWidth12)
	if err != nil {
		log.Error("Failed to create calibration scheme: channel: %d: %s", ch, err)
		return nil, err
	}
	return &Channel{
		unitID:     unit.ID(),
		id:         ch,
		atten:      atten,
		oneshot:    oneshot,
		continuous: continuous,
		cali:       cali,
	}, nil
}

// ID ...
func (c *Channel) ID() ChannelID {
	return c.id
}

// Atten ...
func (c *Channel) Atten() Atten {
	return c.atten
}

// Read performs exactly count blocking conversions, calibrating each
// sample immediately and pausing delay between samples but not after
// the last one. Any conversion failure aborts the whole call, partial
// statistics are never returned. The average is a truncating integer
// division.
func (c *Channel) Read(count int, delay time.Duration) (*ReadResult, error) {
	if count <= 0 {
		return nil, ErrSampleCount{Count: count}
	}

	voltages := make([]int, 0, count)
	sum := 0
	min := math.MaxInt
	max := math.MinInt

	for i := 0; i < count; i++ {
		raw, err := c.oneshot.Read(c.id)
		if err != nil {
			log.Error("Oneshot read failed: channel: %d: %s", c.id, err)
			return nil, err
		}

		voltage := c.cali.RawToMillivolts(raw & layers.CodeMask)
		voltages = append(voltages, voltage)
		sum += voltage
		if voltage < min {
			min = voltage
		}
		if voltage > max {
			max = voltage
		}

		if delay > 0 && i < count-1 {
			time.Sleep(delay)
		}
	}

	return &ReadResult{
		AverageMV:  sum / count,
		MinMV:      min,
		MaxMV:      max,
		P30WidthMV: PercWidth(voltages, 30),
		P60WidthMV: PercWidth(voltages, 60),
	}, nil
}

// SampleForDuration drains the continuous stream of the unit for the
// given wall-clock window and returns the calibrated samples gathered
// in it. The batch is empty when the stream can not be started or no
// data ever arrives; transient poll errors are logged and the loop
// keeps trying until the deadline. The loop busy-polls on purpose, it
// trades CPU for minimal latency within a bounded diagnostic window.
func (c *Channel) SampleForDuration(duration time.Duration) []int {
	var voltages []int
	buf := make([]byte, ContinuousStoreBufSize)

	if err := c.continuous.Start(); err != nil {
		log.Error("Failed to start continuous conversion: channel: %d: %s", c.id, err)
		return voltages
	}

	frame := &layers.SampleLayer{}
	start := time.Now()
	for time.Since(start) < duration {
		n, err := c.continuous.Read(buf)
		if err != nil {
			if !errors.Is(err, ErrNoData) {
				log.Warning("Continuous read error: channel: %d: %s", c.id, err)
			}
			continue
		}
		if err := frame.DecodeFromBytes(buf[:n], gopacket.NilDecodeFeedback); err != nil {
			log.Warning("Invalid sample frame: channel: %d: %s", c.id, err)
			continue
		}
		for _, code := range frame.Codes {
			voltages = append(voltages, c.cali.RawToMillivolts(code))
		}
	}

	// The samples gathered so far are returned even if the stop fails.
	if err := c.continuous.Stop(); err != nil {
		log.Error("Failed to stop continuous conversion: channel: %d: %s", c.id, err)
	}

	return voltages
}
