// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cybrota/roster/avl"
)

const configFileName = ".roster.yaml"

type ReportConfig struct {
	IndentWidth int  `yaml:"indent_width"`
	ShowBalance bool `yaml:"show_balance"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type ShellConfig struct {
	Prompt string `yaml:"prompt"`
}

type LoaderConfig struct {
	ShowProgress      bool `yaml:"show_progress"`
	BloomFilterSize   uint `yaml:"bloom_filter_size"`
	BloomFilterHashes uint `yaml:"bloom_filter_hashes"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Log     LogConfig     `yaml:"log"`
	Shell   ShellConfig   `yaml:"shell"`
	Load    LoaderConfig  `yaml:"load"`
	Metrics MetricsConfig `yaml:"metrics"`
}

var defaultConfig = Config{
	Report: ReportConfig{
		IndentWidth: 4,
		ShowBalance: false,
	},
	Log: LogConfig{
		Level: "warn",
	},
	Shell: ShellConfig{
		Prompt: "roster> ",
	},
	Load: LoaderConfig{
		ShowProgress:      true,
		BloomFilterSize:   1 << 20,
		BloomFilterHashes: 5,
	},
}

// ReportFormat converts the report section into the tree's layout options.
func (c *Config) ReportFormat() avl.ReportFormat {
	width := c.Report.IndentWidth
	if width < 0 {
		width = 0
	}
	return avl.ReportFormat{
		Indent:      strings.Repeat(" ", width),
		ShowBalance: c.Report.ShowBalance,
	}
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, configFileName), nil
}

// LoadConfig reads the configuration from path, or from ~/.roster.yaml when
// path is empty. A missing or unreadable file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return defaults(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return defaults(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// unset keys keep their default values
	config := defaults()
	if err := yaml.Unmarshal(data, config); err != nil {
		return defaults(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, nil
}

func defaults() *Config {
	c := defaultConfig
	return &c
}

func createDefaultConfigFile(path string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// displaySettings prints the active configuration, creating the default
// file first when none exists.
func displaySettings(w io.Writer, path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	created := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFile(path); err != nil {
			return err
		}
		created = true
	}

	config, err := LoadConfig(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "🔧 Roster Configuration Settings\n")
	fmt.Fprintf(w, "═══════════════════════════════════\n\n")
	if created {
		fmt.Fprintf(w, "📍 Config file: %s (newly created)\n\n", path)
	} else {
		fmt.Fprintf(w, "📍 Config file: %s\n\n", path)
	}

	fmt.Fprintf(w, "📊 %sReport:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • indent_width: %d\n", config.Report.IndentWidth)
	fmt.Fprintf(w, "  • show_balance: %t\n\n", config.Report.ShowBalance)

	fmt.Fprintf(w, "📝 %sLog:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • level: %s\n\n", config.Log.Level)

	fmt.Fprintf(w, "💻 %sShell:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • prompt: %q\n\n", config.Shell.Prompt)

	fmt.Fprintf(w, "📦 %sLoad:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • show_progress: %t\n", config.Load.ShowProgress)
	fmt.Fprintf(w, "  • bloom_filter_size: %d\n", config.Load.BloomFilterSize)
	fmt.Fprintf(w, "  • bloom_filter_hashes: %d\n\n", config.Load.BloomFilterHashes)

	addr := config.Metrics.Addr
	if addr == "" {
		addr = "(disabled)"
	}
	fmt.Fprintf(w, "📈 %sMetrics:%s\n", Green, Reset)
	fmt.Fprintf(w, "  • addr: %s\n", addr)

	return nil
}
