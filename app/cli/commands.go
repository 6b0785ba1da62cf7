// Package cli implements the postboard command line: the API server and the
// maintenance commands for the embedded Badger database.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"postboard/app/config"
	"postboard/app/controllers"
	"postboard/app/logger"
	"postboard/app/repositories"
	"postboard/app/routes"
	"postboard/app/server"
	"postboard/app/services"
)

const Version = "1.0.0"

const helpText = `Usage: postboard <command> [options]

Commands:
  serve                 Run the posts API server
  init                  Initialize a new empty database
  clean [--yes]         Remove the database
  backup                Create a backup of the database
  restore <file> [--yes]
                        Restore the database from a backup
  version               Show version information
  help                  Display this help message

Configuration is read from POSTBOARD_* environment variables and .env.
`

type runner struct {
	out io.Writer
	in  *bufio.Reader
}

// Run executes the command named by args[0] and returns the process exit
// code.
func Run(args []string, stdout io.Writer, stdin io.Reader) int {
	r := &runner{out: stdout, in: bufio.NewReader(stdin)}

	if len(args) < 1 {
		r.printHelp()
		return 1
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "serve":
		return r.serve()
	case "init":
		return r.withConfig(r.initDB)
	case "clean":
		yes := hasFlag(args[1:], "--yes")
		return r.withConfig(func(cfg *config.Config) int { return r.clean(cfg, yes) })
	case "backup":
		return r.withConfig(r.backup)
	case "restore":
		file := firstArg(args[1:])
		if file == "" {
			fmt.Fprintln(r.out, "Error: backup file path required for restore")
			return 1
		}
		yes := hasFlag(args[1:], "--yes")
		return r.withConfig(func(cfg *config.Config) int { return r.restore(cfg, file, yes) })
	case "version":
		fmt.Fprintf(r.out, "postboard version %s\n", Version)
		return 0
	case "help", "-h", "--help":
		r.printHelp()
		return 0
	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n\n", args[0])
		r.printHelp()
		return 1
	}
}

func (r *runner) printHelp() {
	fmt.Fprint(r.out, helpText)
}

// withConfig loads the configuration and rejects maintenance commands for
// backends other than Badger.
func (r *runner) withConfig(fn func(cfg *config.Config) int) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(r.out, "Failed to load configuration: %v\n", err)
		return 1
	}
	if cfg.Storage.Driver != config.DriverBadger {
		fmt.Fprintf(r.out, "This command only supports the %s storage driver (configured: %s)\n", config.DriverBadger, cfg.Storage.Driver)
		return 1
	}
	return fn(cfg)
}

func (r *runner) confirm(prompt string) bool {
	fmt.Fprintf(r.out, "%s [y/N] ", prompt)
	line, _ := r.in.ReadString('\n')
	response := strings.TrimSpace(line)
	return response == "y" || response == "Y"
}

// serve runs the API server until SIGINT or SIGTERM.
func (r *runner) serve() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(r.out, "Failed to load configuration: %v\n", err)
		return 1
	}
	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited")
		return 1
	}
	return 0
}

func runServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := repositories.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer store.Close()

	timeout := cfg.Server.RequestTimeout
	handlers := routes.Handlers{
		Posts:    controllers.NewPostController(services.NewPostService(store, timeout)),
		Comments: controllers.NewCommentController(services.NewCommentService(store, timeout)),
		Health:   controllers.NewHealthController(store, timeout),
	}
	router := routes.SetupRoutes(cfg.Server.BasePath, handlers, log)

	log.Info().
		Str("driver", cfg.Storage.Driver).
		Str("base_path", cfg.Server.BasePath).
		Msg("starting postboard")
	return server.New(cfg.Server, router, log).Run(ctx)
}

// initDB creates an empty database.
func (r *runner) initDB(cfg *config.Config) int {
	path := cfg.Storage.Path
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintln(r.out, "Database already exists. Use 'clean' first if you want to reinitialize.")
		return 1
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		fmt.Fprintf(r.out, "Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(repositories.BadgerOptions(path, logger.New(cfg)))
	if err != nil {
		fmt.Fprintf(r.out, "Failed to initialize database: %v\n", err)
		return 1
	}
	defer db.Close()

	fmt.Fprintln(r.out, "Database initialized successfully")
	return 0
}

// clean removes the database.
func (r *runner) clean(cfg *config.Config, yes bool) int {
	path := cfg.Storage.Path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(r.out, "Database is already clean (does not exist)")
		return 0
	}

	if !yes && !r.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(r.out, "Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(path); err != nil {
		fmt.Fprintf(r.out, "Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Fprintln(r.out, "Database cleaned successfully")
	return 0
}

// backupDir places backups next to the database directory.
func backupDir(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(filepath.Clean(cfg.Storage.Path)), "backups")
}

// backup writes a full backup of the database.
func (r *runner) backup(cfg *config.Config) int {
	path := cfg.Storage.Path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(r.out, "No database exists to backup")
		return 1
	}

	dir := backupDir(cfg)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(r.out, "Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(repositories.BadgerOptions(path, logger.New(cfg)))
	if err != nil {
		fmt.Fprintf(r.out, "Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Fprintf(r.out, "Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Fprintf(r.out, "Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Fprintf(r.out, "Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the database with the contents of backupFile.
func (r *runner) restore(cfg *config.Config, backupFile string, yes bool) int {
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Fprintf(r.out, "Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Fprintf(r.out, "Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Fprintf(r.out, "Backup file is empty: %s\n", backupFile)
		return 1
	}

	path := cfg.Storage.Path
	if _, err := os.Stat(path); err == nil {
		if !yes && !r.confirm("Existing database found. Do you want to replace it?") {
			fmt.Fprintln(r.out, "Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(path); err != nil {
			fmt.Fprintf(r.out, "Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		fmt.Fprintf(r.out, "Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := badger.Open(repositories.BadgerOptions(path, logger.New(cfg)))
	if err != nil {
		fmt.Fprintf(r.out, "Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Fprintf(r.out, "Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	// Load panics on some malformed inputs instead of returning an error.
	err = func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic occurred during restore: %v", rec)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		fmt.Fprintf(r.out, "Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Fprintln(r.out, "Database restored successfully")
	return 0
}

func hasFlag(args []string, flag string) bool {
	return slices.Contains(args, flag)
}

// firstArg returns the first argument that is not a flag.
func firstArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}
