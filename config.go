//     Copyright (C) 2020, IrineSistiana
//
//     This file is part of tldcheck.
//
//     tldcheck is free software: you can redistribute it and/or modify
//     it under the terms of the GNU General Public License as published by
//     the Free Software Foundation, either version 3 of the License, or
//     (at your option) any later version.
//
//     tldcheck is distributed in the hope that it will be useful,
//     but WITHOUT ANY WARRANTY; without even the implied warranty of
//     MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//     GNU General Public License for more details.
//
//     You should have received a copy of the GNU General Public License
//     along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IrineSistiana/tldcheck/fetcher"
	"github.com/IrineSistiana/tldcheck/registry"
)

// Config is config
type Config struct {
	Source struct {
		URL         string `yaml:"url"`
		Timeout     string `yaml:"timeout"`
		MaxBodySize int    `yaml:"max_body_size"`
	} `yaml:"source"`

	Check struct {
		TTL         string `yaml:"ttl"`
		Concurrency int    `yaml:"concurrency"`
	} `yaml:"check"`

	timeout time.Duration
	ttl     time.Duration
}

func defaultConfig() *Config {
	c := new(Config)
	c.Source.URL = fetcher.DefaultURL
	c.Source.Timeout = fetcher.DefaultTimeout.String()
	c.Source.MaxBodySize = fetcher.DefaultMaxBodySize
	c.Check.TTL = registry.DefaultTTL.String()
	c.Check.Concurrency = 4
	return c
}

// loadConfig loads a yaml config from configFile. Fields that
// are not set keep their default values.
func loadConfig(configFile string) (*Config, error) {
	c := defaultConfig()
	if len(configFile) != 0 {
		b, err := os.ReadFile(configFile)
		if err != nil {
			return nil, err
		}

		d := yaml.NewDecoder(bytes.NewReader(b))
		d.KnownFields(true)
		if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	var err error
	c.timeout, err = time.ParseDuration(c.Source.Timeout)
	if err != nil {
		return fmt.Errorf("invalid source.timeout [%s]: %w", c.Source.Timeout, err)
	}
	if c.timeout <= 0 {
		return fmt.Errorf("source.timeout must be positive, got %s", c.timeout)
	}

	c.ttl, err = time.ParseDuration(c.Check.TTL)
	if err != nil {
		return fmt.Errorf("invalid check.ttl [%s]: %w", c.Check.TTL, err)
	}
	if c.ttl <= 0 {
		return fmt.Errorf("check.ttl must be positive, got %s", c.ttl)
	}

	if c.Source.MaxBodySize < 0 {
		return fmt.Errorf("source.max_body_size must not be negative, got %d", c.Source.MaxBodySize)
	}
	if c.Check.Concurrency <= 0 {
		c.Check.Concurrency = 1
	}
	return nil
}

func genConfig(configFile string) error {
	c := defaultConfig()

	f, err := os.Create(configFile)
	if err != nil {
		return err
	}
	defer f.Close()

	e := yaml.NewEncoder(f)
	e.SetIndent(2)
	if err := e.Encode(c); err != nil {
		return err
	}
	return e.Close()
}
