package main

import (
	"log"
	"os"

	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
	coursegensvc "github.com/shulehq/shule/services/coursegen"
	logsvc "github.com/shulehq/shule/services/logger"
	inmemdb "github.com/shulehq/shule/storage/inmem"
)

var logger core.Logger

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()
	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger = logsvc.NewRollbarLogger(std, conf)
	logger.Enable(false)

	// set up the store; every process starts from the demo fixtures
	db := inmemdb.NewStore()
	db.Seed()

	usrSvc := user.NewService(inmemdb.NewUserRepository(db), user.AcceptAnyVerifier())
	courseSvc := course.NewService(inmemdb.NewCourseRepository(db))
	gradeSvc := grade.NewService(inmemdb.NewGradeRepository(db))

	var generator core.CourseGenerator
	if conf.Coursegen.APIKey != "" {
		var err error
		if generator, err = coursegensvc.NewGeminiGenerator(conf, logger); err != nil {
			logger.Fatal("setting up course generator", err)
		}
	} else {
		generator = coursegensvc.NewStaticGenerator()
	}

	// start CLI
	cli := commandLine{
		usrSvc:    usrSvc,
		courseSvc: courseSvc,
		gradeSvc:  gradeSvc,
		generator: generator,
		out:       os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("\nerror", err)
		}
		os.Exit(1)
	}
}
