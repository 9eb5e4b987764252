// Copyright 2025 Poiesic Systems
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
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/taxonomist/ai"
	"github.com/poiesic/taxonomist/ai/openai"
	"github.com/poiesic/taxonomist/convert"
	"github.com/poiesic/taxonomist/server"
	"github.com/poiesic/taxonomist/source"
	"github.com/poiesic/taxonomist/taxonomy"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "taxonomist",
		Usage: "Serve and search hierarchical taxonomies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Load taxonomies from the configured data sources and serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "listen",
						Aliases: []string{"a"},
						Usage:   "Address to listen on",
						Value:   ":8080",
					},
					&cli.StringFlag{
						Name:    "sources",
						Usage:   "Comma-separated list of taxonomy locations (local file, local directory, or gs://bucket/path)",
						EnvVars: []string{source.EnvSources},
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name; empty disables semantic search",
					},
				},
			},
			{
				Name:   "convert",
				Usage:  "Convert a spreadsheet of coded categories to a taxonomy JSON file",
				Action: convertCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the input xlsx file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "tab",
						Usage:    "Name of the sheet to read",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "id-column",
						Usage:    "Name of the column holding the level-coded id",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "name-columns",
						Usage:    "Comma-separated columns holding node names, most general level first",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "metadata-column",
						Usage: "Name of the column holding node metadata",
						Value: "note",
					},
					&cli.StringFlag{
						Name:  "null-char",
						Usage: "Character marking an unset level in the ids",
						Value: "0",
					},
					&cli.IntFlag{
						Name:  "digits-per-level",
						Usage: "Number of id characters per level",
						Value: 2,
					},
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Name of the taxonomy",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "version",
						Usage:    "Version of the taxonomy",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Destination file for the taxonomy JSON",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	spec := c.String("sources")
	if spec == "" {
		return fmt.Errorf("no data sources configured: pass --sources or set %s", source.EnvSources)
	}

	sources, err := source.FromSpec(ctx, spec, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to configure data sources: %w", err)
	}

	// An empty model means lexical-only search.
	var embedder ai.Embedder
	if model := c.String("embedding-model"); model != "" {
		aiConfig := ai.NewConfig(
			ai.WithEmbeddingHost(c.String("embedding-host")),
			ai.WithEmbeddingModel(model),
		)
		if err := aiConfig.Validate(); err != nil {
			return fmt.Errorf("invalid AI configuration: %w", err)
		}
		embedder, err = openai.NewEmbedder(aiConfig)
		if err != nil {
			return fmt.Errorf("failed to create embedder: %w", err)
		}
	}

	registry := taxonomy.NewRegistry(sources, embedder)
	if err := registry.Reload(ctx); err != nil {
		return fmt.Errorf("failed to load taxonomies: %w", err)
	}

	return server.New(registry).Run(c.String("listen"))
}

func convertCommand(c *cli.Context) error {
	raw, err := convert.FromFile(
		c.String("input"),
		c.String("name"),
		c.String("version"),
		convert.Options{
			Sheet:          c.String("tab"),
			IDColumn:       c.String("id-column"),
			NameColumns:    strings.Split(c.String("name-columns"), ","),
			MetadataColumn: c.String("metadata-column"),
			NullChar:       c.String("null-char"),
			DigitsPerLevel: c.Int("digits-per-level"),
		},
		slog.Default(),
	)
	if err != nil {
		return fmt.Errorf("failed to convert spreadsheet: %w", err)
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.String("output"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.String("output"), err)
	}

	slog.Info("wrote taxonomy file", "path", c.String("output"), "nodes", len(raw.Nodes))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
