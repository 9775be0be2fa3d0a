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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/recall"
	"github.com/poiesic/recall/ai"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/ingest"
)

func main() {
	app := &cli.App{
		Name:  "recall",
		Usage: "Hybrid retrieval engine over embedded document chunks",
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
				Name:      "ingest",
				Usage:     "Ingest files or directories into the chunk store",
				ArgsUsage: "PATH [PATH...]",
				Action:    ingestCommand,
				Flags: append(commonFlags(), &cli.IntFlag{
					Name:  "chunk-size",
					Usage: "Chunk window size in runes",
					Value: 800,
				}, &cli.IntFlag{
					Name:  "chunk-overlap",
					Usage: "Chunk window overlap in runes",
					Value: 200,
				}),
			},
			{
				Name:      "search",
				Usage:     "Run a one-shot hybrid search and print ranked chunks",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(commonFlags(), &cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"n"},
					Usage:   "Maximum number of results",
					Value:   5,
				}),
			},
			{
				Name:      "ask",
				Usage:     "Retrieve context for a question and generate an answer",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: append(commonFlags(), &cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"n"},
					Usage:   "Maximum number of context passages",
					Value:   5,
				}),
			},
			{
				Name:   "chat",
				Usage:  "Interactive multi-turn session with follow-up resolution",
				Action: chatCommand,
				Flags: append(commonFlags(), &cli.IntFlag{
					Name:    "limit",
					Aliases: []string{"n"},
					Usage:   "Maximum number of context passages per turn",
					Value:   5,
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "generator-model",
			Usage: "Generation model name",
			Value: "qwen2.5:3b",
		},
	}
}

func openEngine(c *cli.Context) (*recall.Engine, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
	)
	return recall.Open(c.String("db"), recall.WithAIConfig(config))
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one path is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	pipeline, err := engine.NewIngestionPipeline(
		ingest.WithChunking(c.Int("chunk-size"), c.Int("chunk-overlap")))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	total := 0
	for _, root := range c.Args().Slice() {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			count, err := pipeline.IngestDocument(ctx, string(data), map[string]string{"source": path})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s: %d chunks\n", path, count)
			total += count
			return nil
		})
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", root, err)
		}
	}

	pipeline.Wait()
	fmt.Fprintf(os.Stderr, "ingested %d chunks\n", total)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	session := engine.NewSession()
	set, err := session.Retrieve(context.Background(), query, c.Int("limit"))
	if err != nil {
		return err
	}

	printContextSet(set)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	session := engine.NewSession()
	answer, set, err := session.Ask(context.Background(), question, c.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Println(answer)
	fmt.Fprintf(os.Stderr, "\n(confidence %.2f, %d passages)\n", set.Confidence, len(set.Results))
	return nil
}

func chatCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	session := engine.NewSession()
	limit := c.Int("limit")

	fmt.Fprintln(os.Stderr, "recall chat. /reset clears context, /quit exits.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/reset":
			session.Reset()
			fmt.Fprintln(os.Stderr, "context cleared")
			continue
		}

		answer, set, err := session.Ask(context.Background(), line, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Println(answer)
		fmt.Fprintf(os.Stderr, "(confidence %.2f)\n", set.Confidence)
	}
	return scanner.Err()
}

func printContextSet(set *core.ContextSet) {
	if set.Empty() {
		fmt.Println("no results")
		return
	}

	for i, result := range set.Results {
		fmt.Printf("%d. [%.4f] %s\n", i+1, result.FusedScore, result.Content)
		if source, ok := result.Metadata["source"]; ok {
			fmt.Printf("   source: %s\n", source)
		}
	}
	fmt.Printf("\nconfidence: %.2f\n", set.Confidence)
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
