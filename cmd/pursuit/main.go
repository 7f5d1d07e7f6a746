package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	contactStore "pursuit/internal/adapters/storage/contact"
	interviewStore "pursuit/internal/adapters/storage/interview"
	referralStore "pursuit/internal/adapters/storage/referral"
)

var (
	dbPath     string
	jsonOutput bool

	db        *sql.DB
	contacts  contactStore.Store
	intervs   interviewStore.Store
	referrals referralStore.Store
)

func defaultDBPath() string {
	if p := os.Getenv("PURSUIT_DB_PATH"); p != "" {
		return p
	}
	return "pursuit.db"
}

var rootCmd = &cobra.Command{
	Use:   "pursuit",
	Short: "Inspect the job-search tracker from the command line",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("database %s not found (is the server initialized?)", dbPath)
		}
		dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
		var err error
		db, err = sql.Open("sqlite", dsn)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		contacts = contactStore.NewSQLiteStore(db)
		intervs = interviewStore.NewSQLiteStore(db)
		referrals = referralStore.NewSQLiteStore(db)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "path to the tracker database")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
