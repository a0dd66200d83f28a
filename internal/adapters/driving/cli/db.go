package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var dbClearYes bool

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Inspect and manage the database file",
}

var dbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database statistics",
	Args:  cobra.NoArgs,
	RunE:  runDBInfo,
}

var dbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the database file and its backups",
	Args:  cobra.NoArgs,
	RunE:  runDBList,
}

var dbClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the database file",
	Long: `Deletes the database file and its WAL siblings after confirmation.
Backup files are left in place.`,
	Args: cobra.NoArgs,
	RunE: runDBClear,
}

func init() {
	dbClearCmd.Flags().BoolVarP(&dbClearYes, "yes", "y", false, "skip the confirmation prompt")
	dbCmd.AddCommand(dbInfoCmd)
	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbClearCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBInfo(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	info, err := infoService.Info(context.Background())
	if err != nil {
		return fmt.Errorf("collecting database info: %w", err)
	}

	if flagJSON {
		return outputJSON(cmd, info)
	}

	cmd.Println(styled(titleStyle, "Content"))
	cmd.Printf("  Meetings:            %s\n", formatNumber(info.TotalDocuments))
	cmd.Printf("    with transcript:   %s\n", formatNumber(info.DocumentsWithTranscripts))
	cmd.Printf("    without:           %s\n", formatNumber(info.DocumentsWithoutTranscripts))
	if info.EarliestDocument != nil && info.LatestDocument != nil {
		cmd.Printf("  Date range:          %s to %s\n",
			formatDate(*info.EarliestDocument), formatDate(*info.LatestDocument))
	}
	cmd.Printf("  Utterances:          %s\n", formatNumber(info.TotalUtterances))
	cmd.Printf("  AI note panels:      %s\n", formatNumber(info.TotalPanels))
	cmd.Printf("  People:              %s\n", formatNumber(info.TotalPeople))
	cmd.Printf("  Calendars:           %s\n", formatNumber(info.TotalCalendars))
	cmd.Printf("  Events:              %s\n", formatNumber(info.TotalEvents))
	cmd.Printf("  Templates:           %s\n", formatNumber(info.TotalTemplates))
	cmd.Printf("  Recipes:             %s\n", formatNumber(info.TotalRecipes))

	cmd.Println(styled(titleStyle, "Embeddings"))
	cmd.Printf("  Chunks:              %s\n", formatNumber(info.TotalChunks))
	cmd.Printf("  Vectors:             %s\n", formatNumber(info.TotalEmbeddings))
	if info.EmbeddingModel != nil {
		cmd.Printf("  Model:               %s\n", *info.EmbeddingModel)
	}
	if stats := info.ChunkSizeStats; stats != nil {
		cmd.Printf("  Chunk size:          %d-%d chars (avg %.0f)\n", stats.Min, stats.Max, stats.Avg)
	}

	cmd.Println(styled(titleStyle, "File"))
	cmd.Printf("  Path:                %s\n", info.DBPath)
	cmd.Printf("  Size:                %s\n", formatSize(info.DBSizeBytes))
	cmd.Printf("  Schema version:      %d\n", info.SchemaVersion)
	return nil
}

// dbFile describes one file reported by db list.
type dbFile struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Backup    bool   `json:"backup"`
}

func runDBList(cmd *cobra.Command, _ []string) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}

	var files []dbFile
	if fi, err := os.Stat(path); err == nil {
		files = append(files, dbFile{Path: path, SizeBytes: fi.Size()})
	}

	backups, err := filepath.Glob(path + ".backup.*")
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}
	for _, b := range backups {
		fi, err := os.Stat(b)
		if err != nil {
			continue
		}
		files = append(files, dbFile{Path: b, SizeBytes: fi.Size(), Backup: true})
	}

	if flagJSON {
		return outputJSON(cmd, files)
	}

	if len(files) == 0 {
		cmd.Printf("No database found at %s.\n", path)
		return nil
	}
	for _, f := range files {
		marker := ""
		if f.Backup {
			marker = "  " + styled(dimStyle, "(backup)")
		}
		cmd.Printf("%s  %s%s\n", f.Path, formatSize(f.SizeBytes), marker)
	}
	return nil
}

func runDBClear(cmd *cobra.Command, _ []string) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cmd.Printf("No database found at %s.\n", path)
		return nil
	}

	if !dbClearYes {
		cmd.Printf("Delete %s? [y/N] ", path)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting database: %w", err)
	}
	// WAL siblings are recreated on next open; ignore absence.
	os.Remove(path + "-wal") //nolint:errcheck
	os.Remove(path + "-shm") //nolint:errcheck

	cmd.Printf("Deleted %s.\n", path)
	return nil
}
