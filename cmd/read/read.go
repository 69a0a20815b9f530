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

package read

import (
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-adcstat/pkg/command"
	"jinr.ru/greenlab/go-adcstat/pkg/config"
)

const (
	ChannelOptionName = "channel"
	CountOptionName   = "count"
	DelayOptionName   = "delay"
)

// NewCommand creates a cobra command object to run a discrete read on a channel
func NewCommand() *cobra.Command {
	var channel string
	var count, delayMS int
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Perform a discrete read on a channel and print the statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			result, err := apiClient.Read(channel, count, delayMS)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(result)
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&channel, ChannelOptionName, config.DefaultChannelName, "Channel name")
	cmd.Flags().IntVar(&count, CountOptionName, 64, "Number of samples")
	cmd.Flags().IntVar(&delayMS, DelayOptionName, 0, "Delay between samples in milliseconds")
	return cmd
}
