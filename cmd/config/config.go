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

package config

import (
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	pkgconfig "jinr.ru/greenlab/go-adcstat/pkg/config"
)

const (
	OverwriteOptionName = "overwrite"
)

// NewCommand ...
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the go-adcstat config file",
	}
	cmd.AddCommand(NewNewCommand())
	cmd.AddCommand(NewShowCommand())
	return cmd
}

// NewNewCommand creates a cobra command object to persist the default config
func NewNewCommand() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := pkgconfig.NewDefaultConfig()
			return cfg.Persist(overwrite)
		},
	}
	cmd.Flags().BoolVar(&overwrite, OverwriteOptionName, false, "Overwrite the config file if it exists")
	return cmd
}

// NewShowCommand creates a cobra command object to print the effective config
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := pkgconfig.NewDefaultConfig()
			if err := cfg.Load(); err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	}
	return cmd
}
