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
)

func TestParseAtten(t *testing.T) {
	cases := map[string]Atten{
		"0db":   AttenDB0,
		"2.5db": AttenDB2_5,
		"6db":   AttenDB6,
		"12db":  AttenDB12,
	}
	for value, want := range cases {
		atten, err := ParseAtten(value)
		if err != nil {
			t.Errorf("ParseAtten(%s) failed: %v", value, err)
			continue
		}
		if atten != want {
			t.Errorf("ParseAtten(%s) = %v, want %v", value, atten, want)
		}
		if atten.String() != value {
			t.Errorf("String() = %s, want %s", atten.String(), value)
		}
	}
}

func TestParseAttenUnknown(t *testing.T) {
	_, err := ParseAtten("3db")
	var errAtten ErrAtten
	if !errors.As(err, &errAtten) {
		t.Fatalf("ParseAtten(3db) = %v, want ErrAtten", err)
	}
}

func TestAttenFullScale(t *testing.T) {
	cases := map[Atten]int{
		AttenDB0:   750,
		AttenDB2_5: 1050,
		AttenDB6:   1300,
		AttenDB12:  2500,
	}
	for atten, want := range cases {
		if fs := atten.FullScaleMV(); fs != want {
			t.Errorf("FullScaleMV(%s) = %d, want %d", atten, fs, want)
		}
	}
}
