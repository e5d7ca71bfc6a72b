// Command resetpw performs an administrative password reset from the shell.
// It prints the new plaintext password exactly once on success and exits
// non-zero on authorization or lookup failure.
package main

import (
	"flag"
	"fmt"
	"os"

	auditusecase "taskboard-backend/internal/audit/usecase"
	authrepo "taskboard-backend/internal/auth/repository"
	authusecase "taskboard-backend/internal/auth/usecase"
	"taskboard-backend/pkg/config"
	"taskboard-backend/pkg/database"
	"taskboard-backend/pkg/eventlog"
	"taskboard-backend/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to configuration file")
		actorName  = flag.String("as", "", "username of the acting admin or manager")
		targetName = flag.String("user", "", "username of the account to reset")
		password   = flag.String("password", "", "new password (generated when omitted)")
		forceReset = flag.Bool("force-reset", true, "require the user to change the password on next login")
	)
	flag.Parse()

	if *actorName == "" || *targetName == "" {
		fmt.Fprintln(os.Stderr, "usage: resetpw -as <admin> -user <username> [-password <pw>] [-force-reset=false]")
		os.Exit(2)
	}

	if err := run(*configPath, *actorName, *targetName, *password, *forceReset); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(configPath, actorName, targetName, password string, forceReset bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logg := logger.New("warn", true)
	db, err := database.New(&cfg.Database, logg)
	if err != nil {
		return err
	}
	defer db.Close()

	users := authrepo.NewUserRepository(db.DB())
	actor, err := users.FindByUsername(actorName)
	if err != nil {
		return err
	}
	if actor == nil {
		return fmt.Errorf("acting user %q not found", actorName)
	}
	target, err := users.FindByUsername(targetName)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("user %q not found", targetName)
	}

	sink, err := eventlog.NewFileSink(cfg.EventLog.Path)
	if err != nil {
		return err
	}
	defer sink.Close()

	authUc := authusecase.NewAuthUsecase(db, auditusecase.NewLogger(sink, logg), logg)
	plaintext, err := authUc.AdminResetPassword(actor.ID, target.ID, password, forceReset)
	if err != nil {
		return err
	}

	fmt.Printf("Password for %s reset. Temporary password: %s\n", target.Username, plaintext)
	return nil
}
