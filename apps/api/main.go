package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/shulehq/shule/apps/api/echo"
	"github.com/shulehq/shule/core"
	"github.com/shulehq/shule/core/course"
	"github.com/shulehq/shule/core/grade"
	"github.com/shulehq/shule/core/user"
	coursegensvc "github.com/shulehq/shule/services/coursegen"
	logsvc "github.com/shulehq/shule/services/logger"
	inmemdb "github.com/shulehq/shule/storage/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the store; collections reinitialize from seed data at every start
	db := inmemdb.NewStore(inmemdb.WithLatency(conf.Store.Latency))
	db.Seed()

	// set up services
	verifier := user.AcceptAnyVerifier() // demo gate: username-only login
	if conf.Auth.VerifyPasswords {
		verifier = user.BcryptVerifier()
	}
	usrSvc := user.NewService(inmemdb.NewUserRepository(db), verifier)
	courseSvc := course.NewService(inmemdb.NewCourseRepository(db))
	gradeSvc := grade.NewService(inmemdb.NewGradeRepository(db))

	var generator core.CourseGenerator
	if conf.Coursegen.APIKey != "" {
		var err error
		if generator, err = coursegensvc.NewGeminiGenerator(conf, logger); err != nil {
			logger.Fatal(fmt.Sprintf("setting up course generator: %v", err), err)
		}
	} else {
		logger.Warn("no course generator credential configured; using static fallback")
		generator = coursegensvc.NewStaticGenerator()
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : env %q", conf.Env))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			CourseSvc:  courseSvc,
			GradeSvc:   gradeSvc,
			Generator:  generator,
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
