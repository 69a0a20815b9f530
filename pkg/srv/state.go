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
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-adcstat/pkg/adc"
	"jinr.ru/greenlab/go-adcstat/pkg/config"
	"jinr.ru/greenlab/go-adcstat/pkg/log"
)

const (
	BucketNamePrefix = "results_"
)

// Record is one persisted acquisition.
type Record struct {
	Channel     string          `json:"channel"`
	TimestampMS uint64          `json:"timestamp_ms"`
	Count       int             `json:"count"`
	DelayMS     int             `json:"delay_ms"`
	Result      *adc.ReadResult `json:"result"`
}

// ResultState keeps the acquisition history, one bucket per configured
// channel keyed by acquisition timestamp.
type ResultState struct {
	context.Context
	DB *bbolt.DB
}

func NewResultState(ctx context.Context, cfg *config.Config) (*ResultState, error) {
	// open results database
	db, err := bbolt.Open(cfg.DBPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	// create buckets in the results database for all channels
	if err = db.Update(func(tx *bbolt.Tx) error {
		for _, channel := range cfg.Channels {
			_, err = tx.CreateBucketIfNotExists([]byte(bucketName(channel.Name)))
			if err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &ResultState{
		Context: ctx,
		DB:      db,
	}, nil
}

func uint64ToByte(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func bucketName(channelName string) string {
	return fmt.Sprintf("%s%s", BucketNamePrefix, channelName)
}

// Now returns the wall clock in milliseconds, the key resolution of
// the results buckets.
func Now() uint64 {
	return uint64(time.Now().UnixNano()) * uint64(time.Nanosecond) / uint64(time.Millisecond)
}

// Close ...
func (s *ResultState) Close() {
	s.DB.Close()
}

// SetResult ...
func (s *ResultState) SetResult(rec *Record) error {
	log.Debug("Persisting result: channel: %s timestamp: %d", rec.Channel, rec.TimestampMS)
	if err := s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(rec.Channel)))
		if b == nil {
			return ErrBucketNotFound{Bucket: bucketName(rec.Channel)}
		}
		recBytes, err := yaml.Marshal(rec)
		if err != nil {
			return err
		}
		if err := b.Put(uint64ToByte(rec.TimestampMS), recBytes); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return err
	}
	return nil
}

// GetResults returns the persisted history of a channel in
// chronological order.
func (s *ResultState) GetResults(channelName string) ([]*Record, error) {
	log.Debug("Getting results: channel: %s", channelName)
	var recs []*Record
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketName(channelName)))
		if b == nil {
			return ErrBucketNotFound{Bucket: bucketName(channelName)}
		}
		return b.ForEach(func(_, recBytes []byte) error {
			rec := &Record{}
			if err := yaml.Unmarshal(recBytes, rec); err != nil {
				return err
			}
			recs = append(recs, rec)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return recs, nil
}
