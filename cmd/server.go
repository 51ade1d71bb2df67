package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rootsource-ai/rootsource/internal/config"
	"github.com/rootsource-ai/rootsource/internal/geo"
	"github.com/rootsource-ai/rootsource/internal/llm"
	"github.com/rootsource-ai/rootsource/internal/memory"
	"github.com/rootsource-ai/rootsource/internal/nasa"
	"github.com/rootsource-ai/rootsource/internal/orchestrator"
	"github.com/rootsource-ai/rootsource/internal/research"
	"github.com/rootsource-ai/rootsource/internal/search"
	"github.com/rootsource-ai/rootsource/internal/server"
	"github.com/rootsource-ai/rootsource/internal/translate"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the RootSource chat server",
	Long:  `Starts the RootSource HTTP server: the chat pipeline, NASA dataset integration, language detection and the websocket transport.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = serverPort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		// LLM provider; degrades to the demo provider when the
		// credential is absent so the server always starts.
		provider, err := llm.NewProvider(cfg.Provider, cfg.Model)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		// Conversation memory.
		var store memory.Store
		switch cfg.MemoryBackend {
		case config.MemorySQLite:
			sqliteStore, err := memory.OpenSQLite(cfg.MemoryPath, cfg.MemoryTurns)
			if err != nil {
				return fmt.Errorf("opening memory store: %w", err)
			}
			defer sqliteStore.Close()
			store = sqliteStore
		default:
			store = memory.NewInProcessStore(cfg.MemoryTurns)
		}

		// External gateway clients.
		detector := geo.NewClient(cfg.GeoTimeout())
		translator := translate.NewGoogleTranslator(cfg.TranslateTimeout())
		nasaClient := nasa.NewClient(os.Getenv("NASA_API_KEY"), cfg.SatelliteTimeout())
		searchers := []search.Searcher{
			search.NewWikipediaSearcher(cfg.SearchTimeout()),
			search.NewArxivSearcher(cfg.SearchTimeout()),
			search.NewDuckDuckGoSearcher(cfg.SearchTimeout()),
		}

		aggregator := research.NewAggregator(searchers, nasaClient, detector, cfg.ResearchDeadline())

		orch := orchestrator.New(orchestrator.Options{
			Translator:  translator,
			Researcher:  aggregator,
			Provider:    provider,
			Store:       store,
			Model:       cfg.Model,
			MemoryTurns: cfg.MemoryTurns,
			LLMTimeout:  cfg.LLMTimeout(),
		})

		srv := server.New(server.Config{
			Host:         cfg.Host,
			Port:         cfg.Port,
			AllowOrigins: cfg.AllowOrigins,
			StaticDir:    cfg.StaticDir,
		}, orch, detector)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "rootsource server v%s starting on %s:%d\n", Version, cfg.Host, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Provider: %s (%s)\n", provider.Name(), cfg.Model)
		fmt.Fprintf(os.Stderr, "  Memory: %s (cap %d turns)\n", cfg.MemoryBackend, cfg.MemoryTurns)

		return srv.Start()
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serverCmd)
}
