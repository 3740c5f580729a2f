// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-fetcher/internal/fetch"
	"github.com/pdiddy/pubmed-fetcher/internal/httputil"
	"github.com/pdiddy/pubmed-fetcher/internal/pipeline"
	"github.com/pdiddy/pubmed-fetcher/internal/search"
	"github.com/pdiddy/pubmed-fetcher/internal/secrets"
	"github.com/pdiddy/pubmed-fetcher/internal/store"
	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := buildConfig()

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		defer logger.Sync()
	}

	client := httputil.NewClient(cfg.Search.HTTPConfig)
	p := &pipeline.Pipeline{
		Search: search.NewClient(client, logger),
		Fetch:  fetch.NewClient(client, logger),
		Log:    logger,
	}

	if cfg.Archive.Enabled {
		st, err := store.Open(cfg.Archive)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		defer st.Close()
		p.Archive = st
	}

	_, err := p.Run(cmd.Context(), args[0], cfg, os.Stdout)
	return err
}

// buildConfig assembles the pipeline configuration from viper (flags, env,
// config file, defaults) plus the secrets directory.
func buildConfig() types.PipelineConfig {
	viper.SetDefault("http.timeout", httputil.DefaultTimeout.String())
	viper.SetDefault("http.user_agent", "pubmed-fetcher/"+version)
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("output.file", "pubmed_results.json")
	viper.SetDefault("archive.dir", "archive")
	viper.SetDefault("archive.max_results", 20)

	httpCfg := types.HTTPConfig{
		Timeout:   viper.GetDuration("http.timeout"),
		UserAgent: viper.GetString("http.user_agent"),
	}
	if httpCfg.Timeout <= 0 {
		httpCfg.Timeout = httputil.DefaultTimeout
	}

	apiKey := viper.GetString("api_key")
	if apiKey == "" {
		apiKey = secrets.APIKey(loadedSecrets)
	}

	return types.PipelineConfig{
		Search: types.SearchConfig{
			HTTPConfig: httpCfg,
			MaxResults: viper.GetInt("search.max_results"),
			APIKey:     apiKey,
		},
		Fetch: types.FetchConfig{
			HTTPConfig: httpCfg,
			APIKey:     apiKey,
		},
		Output: types.OutputConfig{
			File: viper.GetString("output.file"),
		},
		Archive: types.ArchiveConfig{
			Enabled:    viper.GetBool("archive.enabled"),
			Dir:        viper.GetString("archive.dir"),
			MaxResults: viper.GetInt("archive.max_results"),
		},
	}
}
