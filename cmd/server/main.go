package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "pursuit/internal/adapters/email"
	web "pursuit/internal/adapters/http"
	"pursuit/internal/adapters/storage"
	accountStore "pursuit/internal/adapters/storage/account"
	contactStore "pursuit/internal/adapters/storage/contact"
	interviewStore "pursuit/internal/adapters/storage/interview"
	referralStore "pursuit/internal/adapters/storage/referral"
	"pursuit/internal/application/orchestrators"
	"pursuit/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load("pursuit.toml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// WAL mode, foreign keys, and a busy timeout keep the single-writer
	// SQLite database responsive under concurrent reads.
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	acctStore := accountStore.NewSQLiteStore(db)
	stores := &web.Stores{
		AccountStore:   acctStore,
		ContactStore:   contactStore.NewSQLiteStore(db),
		InterviewStore: interviewStore.NewSQLiteStore(db),
		ReferralStore:  referralStore.NewSQLiteStore(db),
	}

	// Seed the operator account on first start if configured.
	if cfg.SeedEmail != "" {
		seedDeps := orchestrators.CreateAccountDeps{AccountStore: acctStore}
		if err := orchestrators.ExecuteSeedOperator(context.Background(), seedDeps, cfg.SeedEmail, cfg.SeedPassword); err != nil {
			log.Fatalf("failed to seed operator account: %v", err)
		}
	}

	// Configure email sender
	if cfg.ResendAPIKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendAPIKey, cfg.FromAddress), cfg.FromAddress, cfg.ReplyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.FromAddress, cfg.ReplyTo)
		if os.Getenv("PURSUIT_ENV") == "production" {
			log.Println("WARNING: PURSUIT_RESEND_API_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set PURSUIT_RESEND_API_KEY for real delivery)")
		}
	}

	mux := web.NewMux(cfg.StaticDir, stores)

	log.Printf("Pursuit %s starting on %s (env=%s)", version, cfg.Addr, envOrDefault("PURSUIT_ENV", "development"))

	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
