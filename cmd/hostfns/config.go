package main

import (
	"fmt"
	"os"

	"github.com/tetratelabs/wazero"
	"gopkg.in/yaml.v3"
)

// config is the optional YAML configuration consumed by the run command.
// The zero value is a working default.
type config struct {
	Runtime runtimeSettings `yaml:"runtime"`
}

type runtimeSettings struct {
	// Engine selects the wazero engine: "compiler" (the default) or
	// "interpreter".
	Engine string `yaml:"engine"`
	// CacheDir enables the compilation cache in the given directory.
	// Empty disables caching.
	CacheDir string `yaml:"cache_dir"`
}

// loadConfig reads and validates the config at path. An empty path yields
// defaults.
func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	switch cfg.Runtime.Engine {
	case "", "compiler", "interpreter":
	default:
		return nil, fmt.Errorf("unknown runtime engine %q (want compiler or interpreter)", cfg.Runtime.Engine)
	}
	return cfg, nil
}

// runtimeConfig builds the wazero configuration. The returned cache is nil
// unless cache_dir was set; callers close it after the runtime.
func (c *config) runtimeConfig() (wazero.RuntimeConfig, wazero.CompilationCache, error) {
	var rc wazero.RuntimeConfig
	if c.Runtime.Engine == "interpreter" {
		rc = wazero.NewRuntimeConfigInterpreter()
	} else {
		rc = wazero.NewRuntimeConfig()
	}

	var cache wazero.CompilationCache
	if dir := c.Runtime.CacheDir; dir != "" {
		var err error
		cache, err = wazero.NewCompilationCacheWithDir(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening compilation cache: %w", err)
		}
		rc = rc.WithCompilationCache(cache)
	}
	return rc, cache, nil
}
