package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/admincli"
	"github.com/dmitrijs2005/gophnotes/internal/cryptox"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	dialect, err := dbx.ParseDialect(cfg.DatabaseDriver)
	if err != nil {
		log.Fatalf("%v", err)
	}

	hasher, err := cryptox.NewPasswordHasher(cryptox.Algorithm(cfg.PasswordHash))
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := repomanager.Open(ctx, dialect, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	rm, err := repomanager.NewRepositoryManager(dialect)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	app := admincli.NewApp(services.NewUserService(db, rm, hasher), os.Stdin, os.Stdout)
	if err := app.Run(ctx, os.Args[1:]); err != nil {
		db.Close()
		log.Fatalf("%v", err)
	}

}
