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

package layers

import (
	"encoding/binary"
	"errors"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const (
	// SampleLayerNum identifies the layer
	SampleLayerNum = 2001
)

// Continuous-mode frame format: every conversion is a 2-byte
// little-endian word, the 12 low bits carry the code, the 4 high bits
// carry format/channel flags and are discarded on decode.
const (
	CodeBits = 12
	CodeMask = 0xFFF
	WordSize = 2
)

// SampleLayer ...
type SampleLayer struct {
	layers.BaseLayer
	Codes []uint16
}

var SampleLayerType = gopacket.RegisterLayerType(SampleLayerNum,
	gopacket.LayerTypeMetadata{Name: "SampleLayerType", Decoder: gopacket.DecodeFunc(DecodeSampleLayer)})

// LayerType returns the type of the Sample layer in the layer catalog
func (sl *SampleLayer) LayerType() gopacket.LayerType {
	return SampleLayerType
}

// DecodeFromBytes decodes a frame of conversion words. A trailing odd
// byte is reported as truncation and skipped, the complete words before
// it are still decoded.
func (sl *SampleLayer) DecodeFromBytes(data []byte, df gopacket.DecodeFeedback) error {
	sl.BaseLayer = layers.BaseLayer{
		Contents: data,
		Payload:  []byte{},
	}
	sl.Codes = sl.Codes[:0]
	for i := 0; i+WordSize <= len(data); i += WordSize {
		word := binary.LittleEndian.Uint16(data[i : i+WordSize])
		sl.Codes = append(sl.Codes, word&CodeMask)
	}
	if len(data)%WordSize != 0 {
		df.SetTruncated()
	}
	return nil
}

// SerializeTo serializes the Sample layer into bytes and writes the bytes to the SerializeBuffer
func (sl *SampleLayer) SerializeTo(b gopacket.SerializeBuffer, opts gopacket.SerializeOptions) error {
	wordBytes, err := b.AppendBytes(len(sl.Codes) * WordSize)
	if err != nil {
		return err
	}
	for i, code := range sl.Codes {
		if code > CodeMask {
			return errors.New("Invalid sample frame: code out of the 12-bit domain")
		}
		binary.LittleEndian.PutUint16(wordBytes[i*WordSize:(i+1)*WordSize], code)
	}
	return nil
}

// DecodeSampleLayer ...
func DecodeSampleLayer(data []byte, p gopacket.PacketBuilder) error {
	sl := &SampleLayer{}
	err := sl.DecodeFromBytes(data, p)
	if err != nil {
		return err
	}
	p.AddLayer(sl)
	return nil
}
