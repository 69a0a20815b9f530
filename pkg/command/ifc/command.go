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

package ifc

import (
	"jinr.ru/greenlab/go-adcstat/pkg/adc"
	"jinr.ru/greenlab/go-adcstat/pkg/config"
	"jinr.ru/greenlab/go-adcstat/pkg/srv"
)

// ApiClient is the client side of the acquisition control API.
type ApiClient interface {
	Channels() ([]*config.ChannelConfig, error)
	Read(channel string, count, delayMS int) (*adc.ReadResult, error)
	Sample(channel string, durationMS int) (*srv.SampleResponse, error)
	Results(channel string) ([]*srv.Record, error)
}
