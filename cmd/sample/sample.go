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

package sample

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-adcstat/pkg/command"
	"jinr.ru/greenlab/go-adcstat/pkg/config"
)

const (
	ChannelOptionName  = "channel"
	DurationOptionName = "duration"
)

// NewCommand creates a cobra command object to sample the continuous stream of a channel
func NewCommand() *cobra.Command {
	var channel string
	var durationMS int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Sample a channel in continuous mode for a duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			response, err := apiClient.Sample(channel, durationMS)
			if err != nil {
				return err
			}
			cmd.Println(fmt.Sprintf("channel: %s duration_ms: %d count: %d", response.Channel, response.DurationMS, response.Count))
			for _, mv := range response.SamplesMV {
				cmd.Println(mv)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&channel, ChannelOptionName, config.DefaultChannelName, "Channel name")
	cmd.Flags().IntVar(&durationMS, DurationOptionName, 1000, "Sampling window in milliseconds")
	return cmd
}
