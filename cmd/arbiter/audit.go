package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"arbiter-hq/arbiter/pkg/audit/retention"
	"arbiter-hq/arbiter/pkg/audit/storage"
	"arbiter-hq/arbiter/pkg/config"
)

var auditFlags struct {
	timeRange string
	subject   string
	action    string
	decision  string
	policy    string
	limit     int
	offset    int
	format    string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query the decision audit trail",
	Long: `Query and prune the decision audit database.

Subcommands:
  query   - Query decision records with filters
  prune   - Apply retention limits now

Examples:
  # Query recent decisions
  arbiter audit query --limit 50

  # Filter by subject and outcome
  arbiter audit query --subject alice --decision deny

  # Query a time range
  arbiter audit query --time-range "2026-08-30T00:00:00Z/2026-08-31T00:00:00Z"

  # Apply retention limits from config
  arbiter audit prune`,
}

var auditQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query decision records",
	RunE:  auditQuery,
}

var auditPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply retention limits to the audit trail",
	RunE:  auditPrune,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditQueryCmd, auditPruneCmd)

	auditQueryCmd.Flags().StringVar(&auditFlags.timeRange, "time-range", "", "time range (RFC3339 interval: start/end)")
	auditQueryCmd.Flags().StringVar(&auditFlags.subject, "subject", "", "filter by subject ID")
	auditQueryCmd.Flags().StringVar(&auditFlags.action, "action", "", "filter by action")
	auditQueryCmd.Flags().StringVar(&auditFlags.decision, "decision", "", "filter by decision (permit, deny)")
	auditQueryCmd.Flags().StringVar(&auditFlags.policy, "policy", "", "filter by matched policy ID")
	auditQueryCmd.Flags().IntVar(&auditFlags.limit, "limit", 100, "max results")
	auditQueryCmd.Flags().IntVar(&auditFlags.offset, "offset", 0, "pagination offset")
	auditQueryCmd.Flags().StringVar(&auditFlags.format, "format", "text", "output format: text, json")
}

// openStore opens the configured audit store.
func openStore() (*storage.SQLiteStore, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	sqliteCfg := storage.DefaultSQLiteConfig()
	sqliteCfg.Path = cfg.Audit.SQLitePath

	st, err := storage.NewSQLiteStore(sqliteCfg)
	if err != nil {
		return nil, nil, err
	}
	return st, cfg, nil
}

func auditQuery(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	q := &storage.Query{
		SubjectID:       auditFlags.subject,
		Action:          auditFlags.action,
		Decision:        auditFlags.decision,
		MatchedPolicyID: auditFlags.policy,
		Limit:           auditFlags.limit,
		Offset:          auditFlags.offset,
	}

	if auditFlags.timeRange != "" {
		start, end, err := parseTimeRange(auditFlags.timeRange)
		if err != nil {
			return err
		}
		q.StartTime = &start
		q.EndTime = &end
	}

	records, err := st.Query(context.Background(), q)
	if err != nil {
		return err
	}

	if auditFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	fmt.Printf("%-25s %-12s %-12s %-8s %-20s %s\n",
		"TIMESTAMP", "SUBJECT", "ACTION", "EFFECT", "POLICY", "REASON")
	for _, r := range records {
		fmt.Printf("%-25s %-12s %-12s %-8s %-20s %s\n",
			r.Timestamp.Format(time.RFC3339),
			r.SubjectID, r.Action, r.Decision, r.MatchedPolicyID, r.Reason)
	}
	fmt.Printf("\n%d records\n", len(records))
	return nil
}

func auditPrune(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	pruner := retention.NewPruner(st, &retention.Config{
		RetentionDays: cfg.Audit.Retention.Days,
		MaxRecords:    cfg.Audit.Retention.MaxRecords,
	})

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("✓ %d records pruned\n", deleted)
	return nil
}

// parseTimeRange parses an RFC3339 interval of the form "start/end".
func parseTimeRange(s string) (time.Time, time.Time, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("time range must be start/end, got %q", s)
	}
	start, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end time: %w", err)
	}
	return start, end, nil
}
