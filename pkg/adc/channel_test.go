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
	"testing"
	"time"
)

// identityCali calibrates a raw code to the same number of millivolts.
type identityCali struct{}

func (identityCali) RawToMillivolts(raw uint16) int {
	return int(raw)
}

// mockOneshot replays a scripted sequence of codes and can be told to
// fail on the n-th read.
type mockOneshot struct {
	codes      []uint16
	failAtRead int // 1-based, 0 means never
	reads      int
	configured map[ChannelID]Atten
}

func (m *mockOneshot) ConfigureChannel(ch ChannelID, atten Atten, bitWidth int) error {
	if m.configured == nil {
		m.configured = make(map[ChannelID]Atten)
	}
	m.configured[ch] = atten
	return nil
}

func (m *mockOneshot) Read(ch ChannelID) (uint16, error) {
	m.reads++
	if m.failAtRead != 0 && m.reads == m.failAtRead {
		return 0, errors.New("conversion failed")
	}
	return m.codes[(m.reads-1)%len(m.codes)], nil
}

// mockContinuous replays scripted poll chunks, then reports ErrNoData.
type mockContinuous struct {
	startErr error
	stopErr  error
	readErrs []error // returned before the chunks are delivered
	chunks   [][]byte
	started  bool
	stopped  bool
	polls    int
}

func (m *mockContinuous) Start() error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started = true
	return nil
}

func (m *mockContinuous) Stop() error {
	m.stopped = true
	return m.stopErr
}

func (m *mockContinuous) Read(buf []byte) (int, error) {
	m.polls++
	if len(m.readErrs) > 0 {
		err := m.readErrs[0]
		m.readErrs = m.readErrs[1:]
		return 0, err
	}
	if len(m.chunks) == 0 {
		return 0, ErrNoData
	}
	chunk := m.chunks[0]
	m.chunks = m.chunks[1:]
	return copy(buf, chunk), nil
}

func (m *mockContinuous) Close() error {
	return nil
}

// mockDriver wires the mocks into the Driver boundary.
type mockDriver struct {
	oneshot    *mockOneshot
	continuous *mockContinuous
	oneshotErr error
	contErr    error
	caliErr    error
}

func (d *mockDriver) NewOneshotUnit(unit UnitID) (OneshotHandle, error) {
	if d.oneshotErr != nil {
		return nil, d.oneshotErr
	}
	return d.oneshot, nil
}

func (d *mockDriver) NewContinuousUnit(unit UnitID, cfg ContinuousConfig) (ContinuousHandle, error) {
	if d.contErr != nil {
		return nil, d.contErr
	}
	return d.continuous, nil
}

func (d *mockDriver) NewCalibration(unit UnitID, ch ChannelID, atten Atten, bitWidth int) (Calibration, error) {
	if d.caliErr != nil {
		return nil, d.caliErr
	}
	return identityCali{}, nil
}

func newTestChannel(t *testing.T, driver *mockDriver) *Channel {
	t.Helper()
	unit, err := NewUnit(driver, Unit1)
	if err != nil {
		t.Fatalf("NewUnit failed: %v", err)
	}
	channel, err := NewChannel(unit, 0, AttenDB6)
	if err != nil {
		t.Fatalf("NewChannel failed: %v", err)
	}
	return channel
}

func TestNewUnitFailure(t *testing.T) {
	driver := &mockDriver{oneshotErr: errors.New("no such unit")}
	unit, err := NewUnit(driver, Unit1)
	if err == nil {
		t.Fatal("NewUnit succeeded, want error")
	}
	if unit != nil {
		t.Fatal("NewUnit returned a unit together with an error")
	}
}

func TestNewChannelCalibrationFailure(t *testing.T) {
	driver := &mockDriver{
		oneshot:    &mockOneshot{},
		continuous: &mockContinuous{},
		caliErr:    errors.New("no calibration scheme"),
	}
	unit, err := NewUnit(driver, Unit1)
	if err != nil {
		t.Fatalf("NewUnit failed: %v", err)
	}
	channel, err := NewChannel(unit, 0, AttenDB6)
	if err == nil {
		t.Fatal("NewChannel succeeded, want error")
	}
	if channel != nil {
		t.Fatal("NewChannel returned a channel together with an error")
	}
}

func TestUnitContinuousHandleCreatedOnce(t *testing.T) {
	driver := &mockDriver{oneshot: &mockOneshot{}, continuous: &mockContinuous{}}
	unit, err := NewUnit(driver, Unit1)
	if err != nil {
		t.Fatalf("NewUnit failed: %v", err)
	}
	first, err := unit.ContinuousHandle()
	if err != nil {
		t.Fatalf("ContinuousHandle failed: %v", err)
	}
	second, err := unit.ContinuousHandle()
	if err != nil {
		t.Fatalf("ContinuousHandle failed: %v", err)
	}
	if first != second {
		t.Fatal("continuous handle not reused")
	}
}

func TestReadStatistics(t *testing.T) {
	driver := &mockDriver{
		oneshot:    &mockOneshot{codes: []uint16{100, 200, 300, 400, 500}},
		continuous: &mockContinuous{},
	}
	channel := newTestChannel(t, driver)

	result, err := channel.Read(5, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if result.AverageMV != 300 {
		t.Errorf("AverageMV = %d, want 300", result.AverageMV)
	}
	if result.MinMV != 100 {
		t.Errorf("MinMV = %d, want 100", result.MinMV)
	}
	if result.MaxMV != 500 {
		t.Errorf("MaxMV = %d, want 500", result.MaxMV)
	}
	// sorted batch [100..500]: p30 spans indices 1..2, p60 spans 2..1
	if result.P30WidthMV != 100 {
		t.Errorf("P30WidthMV = %d, want 100", result.P30WidthMV)
	}
	if result.P60WidthMV != -100 {
		t.Errorf("P60WidthMV = %d, want -100", result.P60WidthMV)
	}
}

func TestReadTruncatingAverage(t *testing.T) {
	driver := &mockDriver{
		oneshot:    &mockOneshot{codes: []uint16{1, 2}},
		continuous: &mockContinuous{},
	}
	channel := newTestChannel(t, driver)

	result, err := channel.Read(2, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	// 3/2 truncates toward zero
	if result.AverageMV != 1 {
		t.Errorf("AverageMV = %d, want 1", result.AverageMV)
	}
}

func TestReadFailFast(t *testing.T) {
	driver := &mockDriver{
		oneshot:    &mockOneshot{codes: []uint16{100, 200, 300, 400, 500}, failAtRead: 3},
		continuous: &mockContinuous{},
	}
	channel := newTestChannel(t, driver)

	result, err := channel.Read(5, 0)
	if err == nil {
		t.Fatal("Read succeeded, want error")
	}
	if result != nil {
		t.Fatal("Read returned a result together with an error")
	}
	if driver.oneshot.reads != 3 {
		t.Errorf("reads = %d, want 3 (no retry, no further samples)", driver.oneshot.reads)
	}
}

func TestReadRejectsNonPositiveCount(t *testing.T) {
	driver := &mockDriver{oneshot: &mockOneshot{codes: []uint16{1}}, continuous: &mockContinuous{}}
	channel := newTestChannel(t, driver)

	for _, count := range []int{0, -1} {
		result, err := channel.Read(count, 0)
		if err == nil || result != nil {
			t.Fatalf("Read(%d, 0) = (%v, %v), want precondition error", count, result, err)
		}
		var errCount ErrSampleCount
		if !errors.As(err, &errCount) {
			t.Errorf("Read(%d, 0) error = %v, want ErrSampleCount", count, err)
		}
	}
	if driver.oneshot.reads != 0 {
		t.Errorf("reads = %d, want 0", driver.oneshot.reads)
	}
}

func TestReadPacesBetweenSamples(t *testing.T) {
	driver := &mockDriver{
		oneshot:    &mockOneshot{codes: []uint16{10}},
		continuous: &mockContinuous{},
	}
	channel := newTestChannel(t, driver)

	delay := 10 * time.Millisecond
	start := time.Now()
	if _, err := channel.Read(3, delay); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	// two inter-sample gaps, none after the last sample
	if elapsed := time.Since(start); elapsed < 2*delay {
		t.Errorf("elapsed = %v, want at least %v", elapsed, 2*delay)
	}
}

func TestSampleForDurationStartFailure(t *testing.T) {
	driver := &mockDriver{
		oneshot:    &mockOneshot{},
		continuous: &mockContinuous{startErr: errors.New("stream busy")},
	}
	channel := newTestChannel(t, driver)

	samples := channel.SampleForDuration(50 * time.Millisecond)
	if len(samples) != 0 {
		t.Errorf("samples = %v, want empty batch", samples)
	}
	if driver.continuous.stopped {
		t.Error("Stop called after failed Start")
	}
}

func TestSampleForDurationDecodesPolledFrames(t *testing.T) {
	driver := &mockDriver{
		oneshot: &mockOneshot{},
		continuous: &mockContinuous{
			chunks: [][]byte{
				{0xFF, 0x0F},
				{0x00, 0x00},
			},
		},
	}
	channel := newTestChannel(t, driver)

	duration := 30 * time.Millisecond
	start := time.Now()
	samples := channel.SampleForDuration(duration)
	elapsed := time.Since(start)

	if len(samples) != 2 || samples[0] != 4095 || samples[1] != 0 {
		t.Errorf("samples = %v, want [4095 0]", samples)
	}
	if elapsed < duration {
		t.Errorf("loop terminated after %v, want at least %v", elapsed, duration)
	}
	if !driver.continuous.stopped {
		t.Error("stream not stopped at deadline")
	}
}

func TestSampleForDurationMasksTo12Bits(t *testing.T) {
	driver := &mockDriver{
		oneshot: &mockOneshot{},
		continuous: &mockContinuous{
			// format bits set in the high nibble must be discarded
			chunks: [][]byte{{0x34, 0xF2}},
		},
	}
	channel := newTestChannel(t, driver)

	samples := channel.SampleForDuration(10 * time.Millisecond)
	if len(samples) != 1 || samples[0] != 0x234 {
		t.Errorf("samples = %v, want [%d]", samples, 0x234)
	}
}

func TestSampleForDurationGuardsOddTrailingByte(t *testing.T) {
	driver := &mockDriver{
		oneshot: &mockOneshot{},
		continuous: &mockContinuous{
			chunks: [][]byte{{0x0A, 0x00, 0x0B}},
		},
	}
	channel := newTestChannel(t, driver)

	samples := channel.SampleForDuration(10 * time.Millisecond)
	if len(samples) != 1 || samples[0] != 0x0A {
		t.Errorf("samples = %v, want [10]", samples)
	}
}

func TestSampleForDurationSurvivesPollErrors(t *testing.T) {
	driver := &mockDriver{
		oneshot: &mockOneshot{},
		continuous: &mockContinuous{
			readErrs: []error{errors.New("dma overrun")},
			chunks:   [][]byte{{0x64, 0x00}},
		},
	}
	channel := newTestChannel(t, driver)

	samples := channel.SampleForDuration(20 * time.Millisecond)
	if len(samples) != 1 || samples[0] != 100 {
		t.Errorf("samples = %v, want [100] despite transient poll error", samples)
	}
}

func TestSampleForDurationKeepsBatchOnStopFailure(t *testing.T) {
	driver := &mockDriver{
		oneshot: &mockOneshot{},
		continuous: &mockContinuous{
			stopErr: errors.New("stop timed out"),
			chunks:  [][]byte{{0x2C, 0x01}},
		},
	}
	channel := newTestChannel(t, driver)

	samples := channel.SampleForDuration(10 * time.Millisecond)
	if len(samples) != 1 || samples[0] != 300 {
		t.Errorf("samples = %v, want [300] even though Stop failed", samples)
	}
}
