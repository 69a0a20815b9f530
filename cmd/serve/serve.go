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

package serve

import (
	"context"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-adcstat/pkg/config"
	"jinr.ru/greenlab/go-adcstat/pkg/device/sim"
	"jinr.ru/greenlab/go-adcstat/pkg/srv"
)

// NewCommand creates a cobra command object to run the acquisition server
func NewCommand() *cobra.Command {
	cfg := config.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the acquisition API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			simCfg := cfg.Sim
			if simCfg == nil {
				simCfg = &config.SimConfig{
					LevelMV: config.DefaultSimLevelMV,
					NoiseMV: config.DefaultSimNoiseMV,
				}
			}
			driver := sim.NewDriver(simCfg.LevelMV, simCfg.NoiseMV)
			server, err := srv.NewAcqServer(context.Background(), cfg, driver)
			if err != nil {
				return err
			}
			defer server.Close()
			return server.Run()
		},
	}
	return cmd
}
