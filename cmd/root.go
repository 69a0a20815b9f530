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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-adcstat/cmd/completion"
	"jinr.ru/greenlab/go-adcstat/cmd/config"
	"jinr.ru/greenlab/go-adcstat/cmd/read"
	"jinr.ru/greenlab/go-adcstat/cmd/results"
	"jinr.ru/greenlab/go-adcstat/cmd/sample"
	"jinr.ru/greenlab/go-adcstat/cmd/serve"
	pkgconfig "jinr.ru/greenlab/go-adcstat/pkg/config"
	"jinr.ru/greenlab/go-adcstat/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel string
	cfg := pkgconfig.NewDefaultConfig()
	cfg.Load()
	cmd := &cobra.Command{
		Use:   "go-adcstat",
		Short: "Tool to sample ADC channels and reduce readings to statistics",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(config.NewCommand())
	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(read.NewCommand())
	cmd.AddCommand(sample.NewCommand())
	cmd.AddCommand(results.NewCommand())
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	return cmd
}
