// Package main implements the vecstore CLI for operating vector store
// backends from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fyrsmithlabs/vecstore/internal/config"
	"github.com/fyrsmithlabs/vecstore/internal/embeddings"
	"github.com/fyrsmithlabs/vecstore/internal/logging"
	"github.com/fyrsmithlabs/vecstore/internal/telemetry"
	"github.com/fyrsmithlabs/vecstore/internal/vectorstore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// configPath is the JSON config file; empty uses the default path
	configPath string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vecstore",
	Short: "CLI for vector store operations",
	Long: `vecstore stores and searches documents in a vector database.

The active backend is selected by store_type in the JSON config file:
an embedded chromem-go store (local) or a Qdrant server (cloud). All
commands work identically against either backend.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to JSON config file (default ~/.config/vecstore/config.json)")
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(useCmd)
}

// session bundles everything a command needs against the active backend.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	tel     *telemetry.Telemetry
	embed   embeddings.Provider
	manager *vectorstore.Manager
}

// openSession loads config and constructs the embedder and manager.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.New(ctx, cfg.Telemetry)
	if err != nil {
		logger.Warn("telemetry disabled", zap.Error(err))
	}

	embed, err := embeddings.NewProvider(cfg.Embeddings)
	if err != nil {
		return nil, fmt.Errorf("creating embedding provider: %w", err)
	}

	manager, err := vectorstore.NewManager(cfg, embed, logger)
	if err != nil {
		_ = embed.Close()
		return nil, err
	}

	return &session{
		cfg:     cfg,
		logger:  logger,
		tel:     tel,
		embed:   embed,
		manager: manager,
	}, nil
}

// close tears the session down in reverse construction order.
func (s *session) close(ctx context.Context) {
	if err := s.manager.Close(); err != nil {
		s.logger.Warn("closing store", zap.Error(err))
	}
	if err := s.embed.Close(); err != nil {
		s.logger.Warn("closing embedder", zap.Error(err))
	}
	if s.tel != nil {
		if err := s.tel.Shutdown(ctx); err != nil {
			s.logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
	_ = logging.Sync(s.logger)
}

var (
	addID   string
	addMeta []string
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add documents to the active store",
	Long: `Add one or more documents to the active vector store backend.

Each argument becomes one document. With --id, a single document gets
that ID; otherwise IDs are generated.

Examples:
  # Add a document with an explicit ID
  vecstore add --id note1 "Qdrant speaks gRPC on port 6334"

  # Add several documents with metadata
  vecstore add --meta topic=infra "first doc" "second doc"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "document ID (single document only)")
	addCmd.Flags().StringArrayVar(&addMeta, "meta", nil, "metadata key=value (repeatable)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if addID != "" && len(args) > 1 {
		return fmt.Errorf("--id applies to a single document, got %d", len(args))
	}

	metadata, err := parseMetadata(addMeta)
	if err != nil {
		return err
	}

	docs := make([]vectorstore.Document, len(args))
	for i, text := range args {
		docs[i] = vectorstore.Document{Content: text, Metadata: metadata}
	}
	if addID != "" {
		docs[0].ID = addID
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	ids, err := s.manager.Add(ctx, docs)
	if err != nil {
		return err
	}

	fmt.Printf("Added %d document(s) to %s:\n", len(ids), s.manager.Active())
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	return nil
}

var loadPattern string

var loadCmd = &cobra.Command{
	Use:   "load <directory>",
	Short: "Load text files from a directory",
	Long: `Load all files matching --pattern from a directory into the active
store. Each file becomes one document with the filename as its ID.

Examples:
  vecstore load ./notes
  vecstore load --pattern "*.md" ./docs`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadPattern, "pattern", "*.txt", "filename glob pattern")
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	count, err := s.manager.LoadDirectory(ctx, args[0], loadPattern)
	if err != nil {
		return err
	}

	fmt.Printf("Loaded %d document(s) from %s into %s\n", count, args[0], s.manager.Active())
	return nil
}

var (
	searchTopK    int
	searchFilters []string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the active store",
	Long: `Search the active store for documents similar to the query.

Examples:
  vecstore search "how does grpc retry work"
  vecstore search --top-k 3 --filter topic=infra "qdrant ports"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 5, "maximum number of results")
	searchCmd.Flags().StringArrayVar(&searchFilters, "filter", nil, "metadata filter key=value (repeatable)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	filters, err := parseMetadata(searchFilters)
	if err != nil {
		return err
	}

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	results, err := s.manager.Store().Query(ctx, args[0], searchTopK, filters)
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, r := range results {
		fmt.Printf("%d. [%.4f] %s\n", i+1, r.Score, r.ID)
		fmt.Printf("   %s\n", truncate(r.Content, 120))
	}
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id...>",
	Short: "Delete documents by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	if err := s.manager.Delete(ctx, args); err != nil {
		return err
	}

	fmt.Printf("Deleted %d document(s) from %s\n", len(args), s.manager.Active())
	return nil
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show collection info for the active store",
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	info, err := s.manager.Info(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}

var useCmd = &cobra.Command{
	Use:   "use <backend>",
	Short: "Switch the configured backend",
	Long: `Switch the configured backend and persist the choice to the config
file. The new backend is constructed first, so an unreachable or
misconfigured backend leaves the configuration unchanged.

Examples:
  vecstore use qdrant
  vecstore use local`,
	Args: cobra.ExactArgs(1),
	RunE: runUse,
}

func runUse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target := args[0]

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close(ctx)

	previous := s.manager.Active()
	if err := s.manager.Switch(ctx, target); err != nil {
		return err
	}

	if err := persistStoreType(configPath, target); err != nil {
		return fmt.Errorf("backend switched but config not saved: %w", err)
	}

	fmt.Printf("Switched backend: %s -> %s\n", previous, s.manager.Active())
	return nil
}

// persistStoreType updates store_type in the JSON config file, creating
// the file if needed. The file is edited as a raw map so stored secrets
// pass through untouched.
func persistStoreType(path, storeType string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		if err := config.EnsureConfigDir(); err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "vecstore", "config.json")
	}

	raw := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	raw["store_type"] = storeType

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// parseMetadata converts key=value pairs into a metadata map.
func parseMetadata(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	metadata := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid metadata %q (expected key=value)", pair)
		}
		metadata[key] = value
	}
	return metadata, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
