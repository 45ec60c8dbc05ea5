package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Faultbox/rigforge/internal/config"
	"github.com/Faultbox/rigforge/internal/equip"
	"github.com/Faultbox/rigforge/internal/history"
	"github.com/Faultbox/rigforge/internal/logger"
	"github.com/Faultbox/rigforge/internal/presetstore"
	"github.com/Faultbox/rigforge/internal/rigfile"
	"github.com/Faultbox/rigforge/pkg/bonematch"
	"github.com/Faultbox/rigforge/pkg/rigmap"
	"github.com/Faultbox/rigforge/pkg/skeleton"
)

var (
	configPath string
	logLevel   string
	logFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigforge",
		Short: "Skeleton mapping and equipment fitting for humanoid rigs",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")

	rootCmd.AddCommand(mapCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(detectCmd())
	rootCmd.AddCommand(fitCmd())
	rootCmd.AddCommand(presetCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	logger.Sync()
}

// setup loads the configuration and initializes logging. Every
// subcommand calls it first.
func setup() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFile != "" {
		cfg.Logging.LogFile = logFile
	}

	opts := logger.DefaultOptions(cfg.Logging.LogFile)
	opts.Level = cfg.Logging.Level
	if err := logger.Init(opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadIndex(path string) (*skeleton.Index, error) {
	root, err := rigfile.LoadRig(path)
	if err != nil {
		return nil, err
	}
	return skeleton.Build(root)
}

func matcherFrom(cfg *config.Config) *bonematch.Matcher {
	return bonematch.NewMatcher(cfg.Matching.NamespacePrefixes...)
}

func canonicalFrom(cfg *config.Config) []string {
	if len(cfg.Rig.CanonicalJoints) > 0 {
		return cfg.Rig.CanonicalJoints
	}
	return rigmap.CanonicalJoints
}

func mapCmd() *cobra.Command {
	var saveName string

	cmd := &cobra.Command{
		Use:   "map <rig.yaml>",
		Short: "Map a skeleton onto the canonical rig",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			idx, err := loadIndex(args[0])
			if err != nil {
				return err
			}

			m := rigmap.Build(idx, canonicalFrom(cfg), matcherFrom(cfg))

			for _, src := range m.SortedSources() {
				e := m.Entries[src]
				fmt.Printf("%-32s -> %-16s %3d (%s)\n", src, e.Canonical, e.Score, e.Tier)
			}
			if len(m.UnmatchedCanonical) > 0 {
				fmt.Printf("\nunmatched canonical: %v\n", m.UnmatchedCanonical)
			}
			if len(m.UnmatchedSourceJoints) > 0 {
				fmt.Printf("unmatched source joints: %v\n", m.UnmatchedSourceJoints)
			}

			if saveName != "" {
				store, err := presetstore.Open(cfg.Store.AppName, logger.Log)
				if err != nil {
					return fmt.Errorf("opening store: %w", err)
				}
				if err := store.SaveMapping(saveName, &m); err != nil {
					return err
				}
				fmt.Printf("\nsaved mapping %q\n", saveName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&saveName, "save", "", "persist the mapping under this name")
	return cmd
}

func exportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <rig.yaml>",
		Short: "Export the mapping as a declarative bone table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			idx, err := loadIndex(args[0])
			if err != nil {
				return err
			}

			m := rigmap.Build(idx, canonicalFrom(cfg), matcherFrom(cfg))
			code := rigmap.GenerateCode(m)

			if outPath == "" {
				fmt.Print(code)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(code), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Printf("wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write the table to a file instead of stdout")
	return cmd
}

func detectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <rig.yaml>",
		Short: "Detect which known rig family a skeleton belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := setup(); err != nil {
				return err
			}
			idx, err := loadIndex(args[0])
			if err != nil {
				return err
			}

			preset, frac, ok := rigmap.DetectPreset(idx, rigmap.BuiltinPresets)
			if !ok {
				fmt.Printf("no known rig family detected (%d joints)\n", idx.Len())
				return nil
			}
			fmt.Printf("detected %s (%.0f%% signature match, %d joints)\n",
				preset.Name, frac*100, idx.Len())
			for joint, c := range preset.Corrections {
				fmt.Printf("  correction %s: rotation %v, scale %g\n", joint, c.Rotation, c.Scale)
			}
			return nil
		},
	}
}

func fitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fit <rig.yaml> <equip.yaml>",
		Short: "Equip items onto a skeleton and report their fitted transforms",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			idx, err := loadIndex(args[0])
			if err != nil {
				return err
			}
			ef, err := rigfile.LoadEquip(args[1])
			if err != nil {
				return err
			}

			hist := history.NewLog(cfg.History.Depth, logger.Log)
			inv := equip.New(idx, matcherFrom(cfg), hist, logger.Log, nil)

			for _, item := range ef.Items {
				if _, err := inv.LoadIntoSlot(equip.SlotID(item.Slot), item.BuildObject(), args[1]); err != nil {
					return fmt.Errorf("slot %s: %w", item.Slot, err)
				}
			}

			count, err := inv.EquipAll()
			if err != nil {
				fmt.Printf("warning: %v\n", err)
			}
			for _, item := range ef.Items {
				inv.UpdateOffsets(equip.SlotID(item.Slot), item.Offsets())
			}

			fmt.Printf("equipped %d of %d items\n", count, len(ef.Items))
			for _, slot := range inv.Slots() {
				eq := inv.EquippedIn(slot)
				if eq == nil {
					continue
				}
				fmt.Printf("%-8s on %-24s pos %v scale %v\n",
					slot, eq.Joint.Name, eq.Object.Position, eq.Object.Scale)
			}
			return nil
		},
	}
}

func presetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Inspect and manage saved mappings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved mappings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			names := store.ListMappings()
			if len(names) == 0 {
				fmt.Println("no saved mappings")
				return nil
			}
			for _, n := range names {
				fmt.Println(n)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a saved mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			saved, err := store.LoadMapping(args[0])
			if err != nil {
				return err
			}
			if saved == nil {
				return fmt.Errorf("no mapping named %q", args[0])
			}

			fmt.Printf("%s (saved %s)\n", saved.Name, saved.SavedAt.Format("2006-01-02 15:04"))
			srcs := make([]string, 0, len(saved.Entries))
			for src := range saved.Entries {
				srcs = append(srcs, src)
			}
			sort.Strings(srcs)
			for _, src := range srcs {
				e := saved.Entries[src]
				fmt.Printf("%-32s -> %-16s %3d (%s)\n", src, e.Canonical, e.Score, e.Tier)
			}
			if len(saved.Unmatched) > 0 {
				fmt.Printf("unmatched: %v\n", saved.Unmatched)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <name>",
		Short: "Delete a saved mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.ClearMapping(args[0]); err != nil {
				return err
			}
			fmt.Printf("cleared %q\n", args[0])
			return nil
		},
	})

	return cmd
}

func openStore() (*presetstore.Store, error) {
	cfg, err := setup()
	if err != nil {
		return nil, err
	}
	store, err := presetstore.Open(cfg.Store.AppName, logger.Log)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return store, nil
}
