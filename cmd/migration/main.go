package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contact-console/internal/config"
	"gitlab.com/dirk.krummacker/contact-console/internal/logging"
	"gitlab.com/dirk.krummacker/contact-console/internal/repository"
)

// Usage examples on the command line:
// > STORAGE=mysql DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go
// > STORAGE=mysql DBHOST=localhost DBUSER=dirk DBPWD=bullo92 go run main.go -file=../../scripts/database.sql
// > STORAGE=sqlite go run main.go -print
func main() {
	filePtr := flag.String("file", "", "the sql file to execute instead of the built-in schema")
	printPtr := flag.Bool("print", false, "print the built-in schema and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.App.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Database.Storage == config.StorageMemory {
		logger.Fatal("nothing to migrate for memory storage, set STORAGE to mysql or sqlite")
	}
	if *printPtr {
		statements, err := repository.Schema(cfg.Database.Driver())
		if err != nil {
			logger.Fatal("no schema", zap.Error(err))
		}
		for _, statement := range statements {
			fmt.Printf("%s;\n\n", statement)
		}
		return
	}

	ctx := context.Background()
	db, err := repository.Connect(ctx, cfg.Database.Driver(), cfg.Database.DSN())
	if err != nil {
		logger.Fatal("could not connect", zap.Error(err))
	}
	defer db.Close()

	if *filePtr == "" {
		if err := repository.Migrate(ctx, db); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		logger.Info("schema created", zap.String("driver", db.DriverName()))
		return
	}
	count, err := executeFile(ctx, db, *filePtr)
	if err != nil {
		logger.Fatal("migration failed", zap.String("file", *filePtr), zap.Error(err))
	}
	logger.Info("sql file executed", zap.String("file", *filePtr), zap.Int("statements", count))
}

// executeFile runs the statements of an SQL file. A statement ends with the line that contains a
// semicolon.
func executeFile(ctx context.Context, db *sqlx.DB, path string) (int, error) {
	readFile, err := os.Open(path) // nosemgrep
	if err != nil {
		return 0, err
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	count := 0
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			if _, err := db.ExecContext(ctx, builder.String()); err != nil {
				return count, err
			}
			count++
			builder = strings.Builder{}
		}
	}
	return count, fileScanner.Err()
}
