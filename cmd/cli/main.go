package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"quote-simulator/internal/config"
	"quote-simulator/internal/export"
	"quote-simulator/internal/model"
	"quote-simulator/internal/session"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "simctl",
		Short:         "Evaluate, lint and export simulator definitions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd(), exportCmd(), lintCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var (
		cfgPath string
		sets    []string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a simulator with optional value overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cfgPath, sets)
			if err != nil {
				return err
			}
			result := sess.Evaluate()
			sim := sess.Simulator()
			for _, f := range sim.Fields {
				if v, ok := sess.Value(f.Label); ok {
					fmt.Printf("%s: %s\n", f.Label, v.Display())
				} else {
					fmt.Printf("%s: (unset)\n", f.Label)
				}
			}
			fmt.Printf("result: %s\n", result.Display())
			if result.Failed() {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to a simulator YAML file")
	cmd.Flags().StringArrayVar(&sets, "set", nil, `Value override, "Label=value" (repeatable)`)
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		cfgPath string
		sets    []string
		format  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a document or CSV export of a simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cfgPath, sets)
			if err != nil {
				return err
			}
			result := sess.Evaluate()
			snap := export.Take(sess.Simulator(), sess.Values(), result, time.Now())

			out := os.Stdout
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			switch format {
			case "csv":
				return export.WriteCSV(out, snap)
			case "document":
				return export.WriteDocument(out, snap)
			default:
				return fmt.Errorf("unsupported format %q (want csv or document)", format)
			}
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to a simulator YAML file")
	cmd.Flags().StringArrayVar(&sets, "set", nil, `Value override, "Label=value" (repeatable)`)
	cmd.Flags().StringVar(&format, "format", "document", "Export format: csv or document")
	cmd.Flags().StringVar(&outPath, "out", "", "Output path (default stdout)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func lintCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report authoring problems in a simulator definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			problems := config.Lint(sim)
			if len(problems) == 0 {
				fmt.Println("ok")
				return nil
			}
			for _, p := range problems {
				fmt.Println(p.String())
			}
			return fmt.Errorf("%d problem(s)", len(problems))
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to a simulator YAML file")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func loadSession(cfgPath string, sets []string) (*session.Session, error) {
	sim, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	sess := session.NewWithSimulator(sim)
	for _, set := range sets {
		label, raw, found := strings.Cut(set, "=")
		if !found {
			return nil, fmt.Errorf("invalid --set %q, expected Label=value", set)
		}
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			sess.SetValue(label, model.NumberValue(n))
		} else {
			sess.SetValue(label, model.TextValue(raw))
		}
	}
	return sess, nil
}
