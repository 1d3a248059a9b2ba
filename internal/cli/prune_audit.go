package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/satriadi/perpustakaan/internal/audit"
	"github.com/satriadi/perpustakaan/internal/config"
	"github.com/satriadi/perpustakaan/internal/database"
	auditrepo "github.com/satriadi/perpustakaan/internal/database/audit"
)

// PruneAuditCommand deletes audit events past the retention window.
type PruneAuditCommand struct {
	RetentionDays int
	DatabasePath  string
}

// NewPruneAuditCommand creates a new PruneAuditCommand.
func NewPruneAuditCommand() *PruneAuditCommand {
	return &PruneAuditCommand{}
}

// ParseFlags parses command line flags.
func (cmd *PruneAuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("prune-audit", flag.ExitOnError)

	defaults := config.NewConfig()
	fs.IntVar(&cmd.RetentionDays, "retention-days", defaults.Audit.RetentionDays, "Delete events older than this many days")
	fs.StringVar(&cmd.DatabasePath, "db", defaults.Database.Path, "Path to the application database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s prune-audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete audit events older than the retention window.\n")
		fmt.Fprintf(os.Stderr, "The server runs this on a schedule; the command exists for manual runs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.RetentionDays <= 0 {
		return fmt.Errorf("retention-days must be positive")
	}

	return nil
}

// Run executes the prune-audit command.
func (cmd *PruneAuditCommand) Run() error {
	db, err := database.NewSilentDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	svc := audit.NewService(auditrepo.NewRepository(db.DB))

	retention := time.Duration(cmd.RetentionDays) * 24 * time.Hour
	pruned, err := svc.DeleteOldEvents(retention)
	if err != nil {
		return fmt.Errorf("failed to prune audit events: %w", err)
	}

	fmt.Printf("Pruned %d audit events older than %d days\n", pruned, cmd.RetentionDays)
	return nil
}
