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

package results

import (
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-adcstat/pkg/command"
	"jinr.ru/greenlab/go-adcstat/pkg/config"
)

const (
	ChannelOptionName = "channel"
)

// NewCommand creates a cobra command object to print the persisted read history of a channel
func NewCommand() *cobra.Command {
	var channel string
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show the persisted read history of a channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			recs, err := apiClient.Results(channel)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(recs)
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&channel, ChannelOptionName, config.DefaultChannelName, "Channel name")
	return cmd
}
