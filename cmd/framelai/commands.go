package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/ZaguanLabs/framelai"
	"github.com/ZaguanLabs/framelai/frameio"
	"github.com/ZaguanLabs/framelai/internal/logger"
	"github.com/ZaguanLabs/framelai/notify"
	"github.com/ZaguanLabs/framelai/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const formatText = "text"

func newTranslateCmd(a *app) *cobra.Command {
	var (
		lang     string
		selected []string
		format   string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate the selected frames",
		Long: `Detect the source language of the selected frames, translate every
non-blank text element into --lang, and print the frames.

Without --select every frame is selected. Nothing is written if any
element fails to translate.`,
		Example: `  framelai translate --lang es --select frame1,frame4
  framelai translate --lang ar --frames design.html --format html -o design.ar.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lang == "" {
				return fmt.Errorf("--lang is required")
			}
			var outFormat frameio.Format
			if format != formatText {
				f, err := frameio.ParseFormat(format)
				if err != nil {
					return err
				}
				outFormat = f
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.TranslateTimeout)
			defer cancel()

			s, cleanup, err := a.newSession(ctx, framelai.WithNotifier(stderrNotifier(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			defer cleanup()

			if err := selectFrames(s, selected); err != nil {
				return err
			}

			result, err := s.Translate(ctx, lang)
			if err != nil {
				return err
			}
			a.log.Info("translation committed",
				zap.Int("translated", result.Translated),
				zap.Int("changed", result.Changed),
				zap.String("source", result.SourceLang),
				zap.String("target", result.Target.Name))

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output) // #nosec G304 - CLI tool writes user-specified files
				if err != nil {
					return fmt.Errorf("creating output: %w", err)
				}
				defer f.Close()
				w = f
			}

			snap := s.Snapshot()
			if format == formatText {
				return writeText(w, snap)
			}
			return frameio.Write(w, snap.Frames, outFormat, lang)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Target language code (e.g., es, ja, zh_TW)")
	cmd.Flags().StringSliceVarP(&selected, "select", "s", nil, "Frame IDs to translate (default: all)")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json, yaml or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

// writeText prints the selected frames, one text element per line.
func writeText(w io.Writer, snap framelai.Snapshot) error {
	selected := framelai.NewSelectionSet(snap.Selected...)
	for _, f := range snap.Frames {
		if !selected.Has(f.ID) {
			continue
		}
		if _, err := fmt.Fprintf(w, "# %s (%s)\n", f.Name, f.ID); err != nil {
			return err
		}
		for _, t := range f.Texts {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", t.ID, t.Content); err != nil {
				return err
			}
		}
	}
	return nil
}

func newDetectCmd(a *app) *cobra.Command {
	var selected []string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the source language of the selected frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := a.newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := selectFrames(s, selected); err != nil {
				return err
			}

			detected := s.DetectedLanguage()
			switch detected.State {
			case framelai.DetectionFailed:
				return fmt.Errorf("could not detect the source language")
			case framelai.DetectionUnset:
				return fmt.Errorf("selected frames contain no text")
			}

			fmt.Fprintln(cmd.OutOrStdout(), detected.Label)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&selected, "select", "s", nil, "Frame IDs to inspect (default: all)")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and live notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hub := notify.NewHub(0)
			sink := notify.Multi{hub, notify.NewLogSink(logger.Named("notify"))}

			s, cleanup, err := a.newSession(ctx, framelai.WithNotifier(sink))
			if err != nil {
				return err
			}
			defer cleanup()
			defer logger.Sync()

			srv := server.New(s, hub, logger.Named("server"),
				server.WithTranslateTimeout(a.cfg.TranslateTimeout))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: FRAMELAI_ADDR or :8080)")
	return cmd
}

func newLanguagesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported target languages",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(framelai.SupportedLanguages)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tDIR")
			for _, lang := range framelai.SupportedLanguages {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", lang.Code, lang.Name, framelai.GetDirection(lang.Code))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
