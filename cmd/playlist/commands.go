package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/forestrie/go-playlist/metrics"
	"github.com/forestrie/go-playlist/playlist"
	"github.com/forestrie/go-playlist/script"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Run a script and print one answer per query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (runErr error) {
			s, err := a.readScript(cmd, args, formatText)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			opts := []playlist.Option{}
			if a.cfg.Metrics {
				opts = append(opts, playlist.WithObserver(metrics.NewCollector(reg)))
			}
			store, err := a.newStore(opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer closeInto(f, &runErr)
				out = f
			}

			runErr = script.NewRunner(a.log, store, out).Run(cmd.Context(), s)
			if a.cfg.Metrics {
				if err := metrics.WriteText(cmd.ErrOrStderr(), reg); err != nil && runErr == nil {
					runErr = err
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write answers to this file rather than stdout")
	return cmd
}

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode [file]",
		Short: "Convert a script to CBOR on stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.readScript(cmd, args, formatText)
			if err != nil {
				return err
			}
			codec, err := script.NewCodec()
			if err != nil {
				return err
			}
			data, err := codec.MarshalScript(s)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Convert a CBOR script to the text form on stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.readScript(cmd, args, formatCBOR)
			if err != nil {
				return err
			}
			return script.WriteText(cmd.OutOrStdout(), s)
		},
	}
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Build every version of a script and list their shapes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.readScript(cmd, args, formatText)
			if err != nil {
				return err
			}
			store, err := a.newStore()
			if err != nil {
				return err
			}
			build := &script.Script{Initial: s.Initial, Ops: s.Ops}
			if err := script.NewRunner(a.log, store, io.Discard).Run(cmd.Context(), build); err != nil {
				return err
			}
			return writeVersions(cmd.OutOrStdout(), store)
		},
	}
}

// closeInto closes c, reporting its error through err unless err already
// holds one.
func closeInto(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

func writeVersions(w io.Writer, store *playlist.Store) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tKIND\tLENGTH\tAGGREGATE\tDEPTH")
	for h := playlist.Handle(0); uint64(h) < store.Len(); h++ {
		n, err := store.Node(h)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", h, n.Kind, n.Length, n.Aggregate, n.Depth)
	}
	return tw.Flush()
}

func (a *app) newStore(opts ...playlist.Option) (*playlist.Store, error) {
	return playlist.NewStore(append([]playlist.Option{
		playlist.WithSegmentHeight(a.cfg.SegmentHeight),
		playlist.WithLogger(a.log),
	}, opts...)...)
}

// readScript reads the script named by args, or stdin when there is none.
// The configured format wins, then the file extension, then fallback.
func (a *app) readScript(cmd *cobra.Command, args []string, fallback string) (*script.Script, error) {
	path := ""
	if len(args) > 0 && args[0] != "-" {
		path = args[0]
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	switch a.format(path, fallback) {
	case formatCBOR:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		codec, err := script.NewCodec()
		if err != nil {
			return nil, err
		}
		return codec.UnmarshalScript(data)
	default:
		return script.ReadText(r)
	}
}

func (a *app) format(path, fallback string) string {
	if a.cfg.Format != "" {
		return a.cfg.Format
	}
	switch filepath.Ext(path) {
	case ".cbor":
		return formatCBOR
	case ".txt":
		return formatText
	}
	return fallback
}
