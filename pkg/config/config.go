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
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-adcstat/pkg/adc"
)

// ChannelConfig describes one sampled channel. Attenuation is fixed at
// channel construction and selects both the conversion setup and the
// calibration scheme.
type ChannelConfig struct {
	Name    string `json:"name"`
	Channel int    `json:"channel"`
	Atten   string `json:"atten"`
}

// GetAtten ...
func (c *ChannelConfig) GetAtten() (adc.Atten, error) {
	return adc.ParseAtten(c.Atten)
}

// SimConfig holds the signal parameters of the simulated driver.
type SimConfig struct {
	LevelMV int `json:"level_mv"`
	NoiseMV int `json:"noise_mv"`
}

type Config struct {
	Address      string           `json:"address,omitempty"`
	LogLevel     string           `json:"log_level,omitempty"`
	DBPath       string           `json:"db_path,omitempty"`
	Unit         int              `json:"unit"`
	SampleFreqHz int              `json:"sample_freq_hz"`
	Sim          *SimConfig       `json:"sim,omitempty"`
	Channels     []*ChannelConfig `json:"channels"`
	filepath     string
}

// GetChannelByName ...
func (c *Config) GetChannelByName(name string) *ChannelConfig {
	for _, channel := range c.Channels {
		if channel.Name == name {
			return channel
		}
	}
	return nil
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	err = os.WriteFile(c.filepath, data, 0644)
	if err != nil {
		return err
	}

	return nil
}

// Load reads the config file if it exists. A missing file leaves the
// defaults in place.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ResultsDBFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		Address:      DefaultAddress,
		LogLevel:     DefaultLogLevel,
		DBPath:       DefaultDBPath(),
		Unit:         DefaultUnit,
		SampleFreqHz: DefaultSampleFreqHz,
		Sim: &SimConfig{
			LevelMV: DefaultSimLevelMV,
			NoiseMV: DefaultSimNoiseMV,
		},
		Channels: []*ChannelConfig{
			{
				Name:    DefaultChannelName,
				Channel: DefaultChannel,
				Atten:   DefaultAtten,
			},
		},
		filepath: DefaultConfigPath(),
	}
}
