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

package srv

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"jinr.ru/greenlab/go-adcstat/pkg/adc"
	"jinr.ru/greenlab/go-adcstat/pkg/config"
)

func newTestState(t *testing.T) *ResultState {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.DBPath = filepath.Join(t.TempDir(), "results.db")
	state, err := NewResultState(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewResultState failed: %v", err)
	}
	t.Cleanup(state.Close)
	return state
}

func TestResultStateRoundTrip(t *testing.T) {
	state := newTestState(t)

	recs := []*Record{
		{
			Channel:     config.DefaultChannelName,
			TimestampMS: 2000,
			Count:       32,
			Result:      &adc.ReadResult{AverageMV: 910, MinMV: 880, MaxMV: 935, P30WidthMV: 14, P60WidthMV: -14},
		},
		{
			Channel:     config.DefaultChannelName,
			TimestampMS: 1000,
			Count:       16,
			Result:      &adc.ReadResult{AverageMV: 900, MinMV: 890, MaxMV: 915, P30WidthMV: 8, P60WidthMV: -8},
		},
	}
	for _, rec := range recs {
		if err := state.SetResult(rec); err != nil {
			t.Fatalf("SetResult failed: %v", err)
		}
	}

	got, err := state.GetResults(config.DefaultChannelName)
	if err != nil {
		t.Fatalf("GetResults failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetResults returned %d records, want 2", len(got))
	}
	// big-endian timestamp keys keep the history chronological
	if got[0].TimestampMS != 1000 || got[1].TimestampMS != 2000 {
		t.Errorf("timestamps = %d, %d, want 1000, 2000", got[0].TimestampMS, got[1].TimestampMS)
	}
	if got[1].Result.AverageMV != 910 {
		t.Errorf("AverageMV = %d, want 910", got[1].Result.AverageMV)
	}
	if got[0].Count != 16 {
		t.Errorf("Count = %d, want 16", got[0].Count)
	}
}

func TestResultStateUnknownChannel(t *testing.T) {
	state := newTestState(t)

	err := state.SetResult(&Record{Channel: "nope", TimestampMS: Now()})
	var errBucket ErrBucketNotFound
	if !errors.As(err, &errBucket) {
		t.Fatalf("SetResult = %v, want ErrBucketNotFound", err)
	}

	_, err = state.GetResults("nope")
	if !errors.As(err, &errBucket) {
		t.Fatalf("GetResults = %v, want ErrBucketNotFound", err)
	}
}
