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

package command

import (
	"errors"
	"fmt"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-adcstat/pkg/adc"
	"jinr.ru/greenlab/go-adcstat/pkg/command/ifc"
	"jinr.ru/greenlab/go-adcstat/pkg/config"
	"jinr.ru/greenlab/go-adcstat/pkg/srv"
)

type ApiClient struct {
	*config.Config
	ApiPrefix string
}

var _ ifc.ApiClient = &ApiClient{}

func NewApiClient(cfg *config.Config) ifc.ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: fmt.Sprintf("http://%s:%d/api", cfg.Address, srv.ApiPort),
	}
}

// Channels requests the list of configured channels
func (c *ApiClient) Channels() ([]*config.ChannelConfig, error) {
	r, err := req.Get(fmt.Sprintf("%s/channels", c.ApiPrefix))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var channels []*config.ChannelConfig
	err = r.ToJSON(&channels)
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// Read sends request to perform a discrete read on a channel
func (c *ApiClient) Read(channel string, count, delayMS int) (*adc.ReadResult, error) {
	url := fmt.Sprintf("%s/read/%s?count=%d&delay_ms=%d", c.ApiPrefix, channel, count, delayMS)
	r, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	result := &adc.ReadResult{}
	err = r.ToJSON(result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Sample sends request to sample the continuous stream of a channel
func (c *ApiClient) Sample(channel string, durationMS int) (*srv.SampleResponse, error) {
	url := fmt.Sprintf("%s/sample/%s?duration_ms=%d", c.ApiPrefix, channel, durationMS)
	r, err := req.Get(url)
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	response := &srv.SampleResponse{}
	err = r.ToJSON(response)
	if err != nil {
		return nil, err
	}
	return response, nil
}

// Results sends request to get the persisted read history of a channel
func (c *ApiClient) Results(channel string) ([]*srv.Record, error) {
	r, err := req.Get(fmt.Sprintf("%s/results/%s", c.ApiPrefix, channel))
	if err != nil {
		return nil, err
	}
	if r.Response().StatusCode != 200 {
		return nil, errors.New(r.Response().Status)
	}
	var recs []*srv.Record
	err = r.ToJSON(&recs)
	if err != nil {
		return nil, err
	}
	return recs, nil
}
