// Package main provides the AgriAssist command line entry point
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/assistant"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/chunkers"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/config"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/embedders"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/errors"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/farmers"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/insights"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/interfaces"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/llm"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/logger"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/metrics"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/personalize"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/schedulers"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/types"
	"github.com/hemanthcodecrit50/agriAssist-sub000/pkg/vecstore"
)

// Version information (set by build process)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Command line flags
var (
	configFile  = flag.String("config", "", "Path to configuration file")
	logLevel    = flag.String("log-level", "", "Log level (debug, info, warn, error)")
	showVersion = flag.Bool("version", false, "Show version information")
	interactive = flag.Bool("interactive", false, "Run in interactive question mode")
	ownerID     = flag.String("user", "", "Farmer ID for personalized operations")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("AgriAssist %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.NewAppConfig()
	if *configFile != "" {
		ext := strings.TrimPrefix(filepath.Ext(*configFile), ".")
		var err error
		switch ext {
		case "json":
			err = cfg.FromJSONFile(*configFile)
		default:
			err = cfg.FromYAMLFile(*configFile)
		}
		if err != nil {
			return err
		}
	}
	cfg.ApplyEnvOverrides()
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewConsoleLogger(cfg.LogLevel)

	app, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close(ctx)

	if *interactive {
		return runInteractive(ctx, app)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "seed":
		return runSeed(ctx, app)
	case "ask":
		if len(args) < 2 {
			return errors.NewInvalidInputError("usage: agriassist ask <question>")
		}
		return runAsk(ctx, app, strings.Join(args[1:], " "))
	case "profile":
		return runProfile(ctx, app, args[1:])
	case "insights":
		return runInsights(app, args[1:])
	case "farmer":
		return runFarmer(app, args[1:])
	default:
		printUsage()
		return errors.NewInvalidInputError("unknown command: " + args[0])
	}
}

// app wires the long-lived components together
type app struct {
	cfg       *config.AppConfig
	logger    interfaces.Logger
	store     interfaces.VectorStore
	scheduler interfaces.Scheduler
	registry  *farmers.Registry
	profiles  interfaces.ProfileStore
	insights  interfaces.InsightStore
	service   *assistant.Service
	seeder    *assistant.Seeder
}

func buildApp(ctx context.Context, cfg *config.AppConfig, log interfaces.Logger) (*app, error) {
	embedder, err := embedders.NewFromConfig(cfg.Embedder)
	if err != nil {
		return nil, err
	}

	store, err := vecstore.NewFromConfig(cfg.Store, log)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}

	chatModel, err := llm.NewFromConfig(cfg.ChatModel)
	if err != nil {
		return nil, err
	}

	chunker, err := chunkers.NewWindowChunker(cfg.Chunker)
	if err != nil {
		return nil, err
	}

	profiles, err := personalize.NewFileProfileStore(cfg.Personalize.DataDir, log)
	if err != nil {
		return nil, err
	}
	insightStore, err := personalize.NewFileInsightStore(cfg.Personalize.DataDir, log)
	if err != nil {
		return nil, err
	}

	scheduler, err := schedulers.NewFromConfig(cfg.Scheduler, log)
	if err != nil {
		return nil, err
	}
	if err := scheduler.Start(ctx); err != nil {
		return nil, err
	}

	registry, err := farmers.NewRegistry(cfg.Farmers.DBPath)
	if err != nil {
		return nil, err
	}

	service, err := assistant.NewService(assistant.ServiceDeps{
		Embedder:  embedder,
		Store:     store,
		LLM:       chatModel,
		Chunker:   chunker,
		Profiles:  profiles,
		Insights:  insightStore,
		Extractor: insights.NewLLMExtractor(chatModel, log),
		Scheduler: scheduler,
		Seasons:   assistant.NewCalendarSeasonProvider(),
		Logger:    log,
		Metrics:   metrics.NewInMemoryMetrics(),
		Retrieval: cfg.Retrieval,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    log,
		store:     store,
		scheduler: scheduler,
		registry:  registry,
		profiles:  profiles,
		insights:  insightStore,
		service:   service,
		seeder:    assistant.NewSeeder(embedder, store, chunker, log),
	}, nil
}

func (a *app) Close(ctx context.Context) {
	if err := a.scheduler.Stop(ctx); err != nil {
		a.logger.Warn("scheduler shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	a.registry.Close()
	a.store.Close()
	a.service.Close()
}

func runSeed(ctx context.Context, a *app) error {
	count, err := a.seeder.Seed(ctx, assistant.DefaultKnowledge())
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d knowledge entries\n", count)
	return nil
}

func runAsk(ctx context.Context, a *app, question string) error {
	resp, err := a.service.Ask(ctx, &types.AskRequest{Query: question, OwnerID: *ownerID})
	if err != nil {
		return err
	}
	printAnswer(resp)
	return nil
}

func runInteractive(ctx context.Context, a *app) error {
	fmt.Println("AgriAssist interactive mode. Type your question, or 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}

		resp, err := a.service.Ask(ctx, &types.AskRequest{Query: line, OwnerID: *ownerID})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		printAnswer(resp)
	}
}

func runProfile(ctx context.Context, a *app, args []string) error {
	if *ownerID == "" {
		return errors.NewInvalidInputError("profile commands require -user")
	}
	if len(args) == 0 {
		return errors.NewInvalidInputError("usage: agriassist profile <set|show> [text]")
	}

	switch args[0] {
	case "set":
		if len(args) < 2 {
			return errors.NewInvalidInputError("usage: agriassist profile set <text>")
		}
		return a.service.UpdateProfile(ctx, *ownerID, strings.Join(args[1:], " "))
	case "show":
		text, err := a.profiles.Read(*ownerID)
		if err != nil {
			return err
		}
		if text == "" {
			fmt.Println("(no profile)")
		} else {
			fmt.Println(text)
		}
		return nil
	default:
		return errors.NewInvalidInputError("unknown profile command: " + args[0])
	}
}

func runInsights(a *app, args []string) error {
	if *ownerID == "" {
		return errors.NewInvalidInputError("insight commands require -user")
	}
	if len(args) == 0 {
		args = []string{"list"}
	}

	switch args[0] {
	case "list":
		lines, err := a.insights.List(*ownerID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			fmt.Println("(no insights)")
			return nil
		}
		for _, line := range lines {
			if line.Timestamp.IsZero() {
				fmt.Printf("- %s\n", line.Text)
			} else {
				fmt.Printf("- [%s] %s\n", line.Timestamp.Format("2006-01-02 15:04"), line.Text)
			}
		}
		return nil
	case "clear":
		return a.insights.Clear(*ownerID)
	default:
		return errors.NewInvalidInputError("unknown insights command: " + args[0])
	}
}

func runFarmer(a *app, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("usage: agriassist farmer <add|list|show> [args]")
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return errors.NewInvalidInputError("usage: agriassist farmer add <name> [village]")
		}
		farmer := &farmers.Farmer{Name: args[1]}
		if len(args) > 2 {
			farmer.Village = args[2]
		}
		if err := a.registry.Create(farmer); err != nil {
			return err
		}
		fmt.Printf("Registered farmer %s (%s)\n", farmer.Name, farmer.ID)
		return nil
	case "list":
		all, err := a.registry.List()
		if err != nil {
			return err
		}
		for _, f := range all {
			fmt.Printf("%s  %s  %s\n", f.ID, f.Name, f.Village)
		}
		return nil
	case "show":
		if len(args) < 2 {
			return errors.NewInvalidInputError("usage: agriassist farmer show <id>")
		}
		f, err := a.registry.Get(args[1])
		if err != nil {
			return err
		}
		fmt.Printf("ID:       %s\nName:     %s\nVillage:  %s\nDistrict: %s\nCrops:    %s\n",
			f.ID, f.Name, f.Village, f.District, f.Crops)
		return nil
	default:
		return errors.NewInvalidInputError("unknown farmer command: " + args[0])
	}
}

func printAnswer(resp *types.AskResponse) {
	fmt.Printf("\n[%s]\n%s\n", resp.Intent, resp.Answer)
	if len(resp.Sources) > 0 {
		fmt.Printf("\nSources: %s\n", strings.Join(resp.Sources, "; "))
	}
}

func printUsage() {
	fmt.Println(`AgriAssist - retrieval-augmented assistant for farmers

Usage:
  agriassist [flags] <command> [args]

Commands:
  seed                      Load the built-in knowledge base
  ask <question>            Ask a question (use -user for personalization)
  profile set <text>        Overwrite your farm profile (-user required)
  profile show              Print your farm profile (-user required)
  insights [list|clear]     Manage extracted insights (-user required)
  farmer add <name> [vlg]   Register a farmer
  farmer list               List registered farmers
  farmer show <id>          Show one farmer

Flags:
  -config <path>    Configuration file (YAML or JSON)
  -user <id>        Farmer ID for personalized operations
  -interactive      Interactive question loop
  -log-level <lvl>  debug, info, warn or error
  -version          Print version`)
}
