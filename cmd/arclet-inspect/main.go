// arclet-inspect is the CLI companion to the arclet runtime packages: it
// polls a target service's /debug/arclet/snapshot endpoint and prints the
// JSON payload, either as a one-shot dump, a periodic watch, or a pprof
// profile download.
//
// The target Go service is expected to expose:
//   • GET /debug/arclet/snapshot        – JSON payload with cache/kv stats.
//   • GET /debug/pprof/{heap,goroutine} – standard pprof handlers.
//
// The snapshot object is intentionally generic; we decode into map[string]any
// to avoid version skew between the CLI and the library.
//
// Build-time flag: `-ldflags "-X main.version=vX.Y.Z"`.
//
// © 2025 arclet authors. MIT License.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	target           string
	watch            bool
	interval         time.Duration
	json             bool
	heapProfile      string
	goroutineProfile string
}

func main() {
	opts := &options{}
	root := &cobra.Command{
		Use:     "arclet-inspect",
		Short:   "Inspect a running arclet service's cache and kv_engine state",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	root.Flags().StringVar(&opts.target, "target", "http://localhost:6060", "base URL of the target service")
	root.Flags().BoolVar(&opts.watch, "watch", false, "poll the snapshot endpoint repeatedly")
	root.Flags().DurationVar(&opts.interval, "interval", 2*time.Second, "poll interval when --watch is set")
	root.Flags().BoolVar(&opts.json, "json", false, "print the raw JSON payload instead of a table")
	root.Flags().StringVar(&opts.heapProfile, "heap-profile", "", "download a heap pprof snapshot to this path and exit")
	root.Flags().StringVar(&opts.goroutineProfile, "goroutine-profile", "", "download a goroutine pprof snapshot to this path and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "arclet-inspect:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	if opts.heapProfile != "" {
		return downloadProfile(ctx, opts.target, "heap", opts.heapProfile)
	}
	if opts.goroutineProfile != "" {
		return downloadProfile(ctx, opts.target, "goroutine", opts.goroutineProfile)
	}

	if opts.watch {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
		for {
			if err := dumpOnce(ctx, opts); err != nil {
				fmt.Fprintln(os.Stderr, "error:", err)
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return nil
			}
		}
	}

	return dumpOnce(ctx, opts)
}

func dumpOnce(ctx context.Context, opts *options) error {
	snap, err := fetchSnapshot(ctx, opts.target)
	if err != nil {
		return err
	}
	if opts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return prettyPrint(snap)
}

func fetchSnapshot(ctx context.Context, base string) (map[string]any, error) {
	url := base + "/debug/arclet/snapshot"
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", res.Status)
	}
	var data map[string]any
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

// prettyPrint assumes common top-level fields; unknown fields are skipped
// rather than erroring, since different arclet demos expose different
// snapshot shapes (lru_items, kv_keys, tree_height, ...).
func prettyPrint(data map[string]any) error {
	for _, key := range []string{"lru_items", "kv_keys", "bytelru_used_bytes", "tree_height", "tree_size"} {
		if v, ok := data[key]; ok {
			fmt.Printf("%-20s %v\n", key+":", v)
		}
	}
	return nil
}

func downloadProfile(ctx context.Context, base, name, path string) error {
	url := fmt.Sprintf("%s/debug/pprof/%s", base, name)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", res.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, res.Body); err != nil {
		return err
	}
	fmt.Printf("%s profile saved to %s\n", name, path)
	return nil
}
