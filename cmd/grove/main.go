package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/verdant-labs/grove/internal/adapters/console"
	"github.com/verdant-labs/grove/internal/cliconfig"
	"github.com/verdant-labs/grove/pkg/grove"
	"github.com/verdant-labs/grove/pkg/log"
)

const helpBanner = `
  ,,,
 (o o)   grove
--m-m--------------------------------
`

const helpDescription = `
Drive a session of placeable growing plants from your terminal.

Select a plant from the catalog, place it, wait for its growth timer to
expire, then tap it to bloom. Placements land on a console rendering surface;
swap in your own renderer when embedding the library.

Commands inside the session:
  select <id>     select a plant and place its sprout
  place <id>      confirm placement; growth timer starts
  tap <id>        tap a plant (blooms only when expired)
  tapat <x> [y]   tap a screen point; resolved via hit-test
  status          print every plant and its state
  quit            end the session
`

var longHelp = strings.TrimSpace(helpBanner) + "\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  grove --seed 42
  grove --catalog ./plants.toml --watch
  grove --growth-min 5s --growth-max 20s
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "grove",
		Short:   "Drive a session of placeable growing plants from your terminal",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.grove/config.toml), then env, then flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			zl.Info().Interface("config", cfg).Msg("configuration")

			catalog := grove.DefaultCatalog()
			if cfg.CatalogPath != "" {
				var err error
				catalog, err = grove.LoadCatalog(cfg.CatalogPath)
				if err != nil {
					return fmt.Errorf("load catalog: %w", err)
				}
			} else {
				catalog.GrowthMin = cfg.GrowthMin
				catalog.GrowthMax = cfg.GrowthMax
			}

			logger := log.NewZerologAdapterWithLogger(zl)
			renderer := console.NewRenderer(logger)

			names := map[string]string{}
			for _, p := range catalog.Plants {
				names[p.ID] = p.Name
			}

			opts := []grove.Option{
				grove.WithLogger(logger),
				grove.WithRenderer(renderer),
				grove.WithEventHandler(&sessionEvents{names: names}),
			}
			if cfg.Watch {
				opts = append(opts, grove.WithCatalogWatcher(
					grove.DefaultCatalogWatcherConfig(cfg.CatalogPath)))
			}

			g, err := grove.New(grove.Config{Catalog: catalog, Seed: cfg.Seed}, opts...)
			if err != nil {
				return fmt.Errorf("create grove: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				zl.Info().Msg("received signal, stopping...")
				cancel()
				os.Stdin.Close()
			}()

			if err := g.Start(ctx); err != nil {
				return fmt.Errorf("start grove: %w", err)
			}

			printStatus(g)
			runSession(ctx, g)

			if err := g.Stop(); err != nil {
				return fmt.Errorf("stop grove: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.grove/config.toml)")
	root.Flags().StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "plant catalog TOML file (default: built-in catalog)")
	root.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "growth duration seed (0 = time-based)")
	root.Flags().DurationVar(&cfg.GrowthMin, "growth-min", cfg.GrowthMin, "minimum randomized growth duration")
	root.Flags().DurationVar(&cfg.GrowthMax, "growth-max", cfg.GrowthMax, "maximum randomized growth duration")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "watch the catalog file for changes during the session")

	if err := root.Execute(); err != nil {
		zl.Error().Err(err).Msg("grove")
		os.Exit(1)
	}
}

// runSession reads commands from stdin until quit, EOF or cancellation.
func runSession(ctx context.Context, g *grove.Grove) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println(`type "help" for commands`)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		if ctx.Err() != nil {
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, args := fields[0], fields[1:]
		switch cmd {
		case "select":
			if len(args) != 1 {
				fmt.Println("usage: select <id>")
				continue
			}
			reportErr(g.Select(ctx, args[0]))
		case "place":
			if len(args) != 1 {
				fmt.Println("usage: place <id>")
				continue
			}
			reportErr(g.Placed(args[0]))
		case "tap":
			if len(args) != 1 {
				fmt.Println("usage: tap <id>")
				continue
			}
			reportErr(g.Tap(ctx, args[0]))
		case "tapat":
			if len(args) < 1 || len(args) > 2 {
				fmt.Println("usage: tapat <x> [y]")
				continue
			}
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				fmt.Println("bad x coordinate:", args[0])
				continue
			}
			var y float64
			if len(args) == 2 {
				if y, err = strconv.ParseFloat(args[1], 64); err != nil {
					fmt.Println("bad y coordinate:", args[1])
					continue
				}
			}
			reportErr(g.TapAt(ctx, x, y))
		case "status":
			printStatus(g)
		case "help":
			fmt.Println("commands: select <id> | place <id> | tap <id> | tapat <x> [y] | status | quit")
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func reportErr(err error) {
	if err != nil {
		fmt.Println("!", err)
	}
}

func printStatus(g *grove.Grove) {
	for _, st := range g.Snapshot() {
		marker := " "
		if st.Selected {
			marker = "*"
		}
		fmt.Printf("%s %-12s %-10s %-8s grows in %s\n", marker, st.ID, st.DisplayName, st.State, st.GrowthDuration)
	}
}

// sessionEvents prints grove notifications for the interactive session.
type sessionEvents struct {
	names map[string]string
}

func (s *sessionEvents) OnEntityStateChanged(ev grove.EntityStateChangedEvent) {
	name := s.names[ev.EntityID]
	if name == "" {
		name = ev.EntityID
	}
	fmt.Printf("%s: %s -> %s\n", name, ev.Previous, ev.Current)
	if ev.Current == grove.StateExpired {
		fmt.Printf("%s is ready, tap it to bloom\n", name)
	}
}

func (s *sessionEvents) OnAssetFailure(ev grove.AssetFailureEvent) {
	fmt.Printf("could not load %s for %s: %v\n", ev.AssetRef, ev.EntityID, ev.Err)
}

func (s *sessionEvents) OnCatalogChanged(ev grove.CatalogChangedEvent) {
	fmt.Printf("catalog %s changed, restart the session to apply\n", ev.Path)
}
