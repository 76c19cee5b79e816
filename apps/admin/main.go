package main

import (
	"log"
	"os"

	"github.com/zawyahq/zawya/core"
	"github.com/zawyahq/zawya/core/profile"
	"github.com/zawyahq/zawya/core/space"
	emailsvc "github.com/zawyahq/zawya/services/email"
	logsvc "github.com/zawyahq/zawya/services/logger"
	"github.com/zawyahq/zawya/storage/database"
	sqlxrepos "github.com/zawyahq/zawya/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	core.ParseEmailTemplates(logsvc.NewStdLogger(logger), conf)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	spaceRepo := sqlxrepos.NewSpaceRepository(db)
	profileSvc := profile.NewService(sqlxrepos.NewProfileRepository(db))
	spaceSvc := space.NewService(spaceRepo, profileSvc, emailsvc.NewConsoleService(conf), conf)

	// start CLI
	cli := commandLine{
		db:         db,
		conf:       conf,
		spaceSvc:   spaceSvc,
		profileSvc: profileSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
