// Copyright (c) 2026 Cordell Calitz

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cordellcalitz/happner-suite/internal/cache"
	"github.com/cordellcalitz/happner-suite/internal/cli"
	"github.com/cordellcalitz/happner-suite/internal/messaging"
)

// cacheStatsCmd represents the cacheStats command. It assembles the cache
// service exactly as the authorization engine would, including the durable
// strategy when a NATS bucket is configured, and reports per-cache stats.
var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report cache service statistics",
	Run: func(_ *cobra.Command, _ []string) {
		svc := cache.NewService(logger, prometheus.NewRegistry())
		defer svc.Stop()

		maxAge, err := appConfig.Security.Checkpoint.CacheAuthorization.MaxAgeDuration()
		if err != nil {
			cli.LogFatal(logger, "invalid cache configuration", err)
		}

		if _, err := svc.Create("checkpoint_cache_authorization", cache.Options{
			Kind:   cache.KindLRU,
			Max:    appConfig.Security.Checkpoint.CacheAuthorization.Max,
			MaxAge: maxAge,
		}); err != nil {
			cli.LogFatal(logger, "failed to create cache", err)
		}
		if _, err := svc.Create("checkpoint_usage_limit", cache.Options{}); err != nil {
			cli.LogFatal(logger, "failed to create cache", err)
		}

		if appConfig.NATS.URL != "" && appConfig.NATS.CacheBucket != "" {
			client := messaging.NewClient(logger, appConfig.NATS.URL)
			if err := client.Connect(); err != nil {
				cli.LogFatal(logger, "failed to connect to nats", err)
			}
			defer client.Close()

			kv, err := client.Bucket(appConfig.NATS.CacheBucket)
			if err != nil {
				cli.LogFatal(logger, "failed to open cache bucket", err)
			}

			if _, err := svc.Create("checkpoint_durable", cache.Options{
				Kind: cache.KindPersist,
				KV:   kv,
			}); err != nil {
				cli.LogFatal(logger, "failed to create cache", err)
			}
		}

		out, err := json.MarshalIndent(svc.Stats(), "", "  ")
		if err != nil {
			cli.LogFatal(logger, "failed to encode stats", err)
		}

		fmt.Fprintln(os.Stdout, string(out))
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
}
