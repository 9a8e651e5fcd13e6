package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Jayvieeeee/digital-repositories-sub000/internal/config"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/engine"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/store"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/submission"
	"github.com/Jayvieeeee/digital-repositories-sub000/internal/workspace"
)

type stdoutLogger struct{}

func (stdoutLogger) Log(level, stage, message, detail string) {
	fmt.Printf("%s [%s] [%s] %s: %s\n", time.Now().Format("15:04:05.000"), level, stage, message, detail)
}

func main() {
	base := flag.String("base", "", "workspace base directory (default: ~/RepositorySimilarity)")
	scope := flag.String("scope", "", "institutional scope to recheck")
	flag.Parse()

	if *scope == "" {
		log.Fatal("missing required -scope")
	}

	var info *workspace.Info
	var err error
	if *base == "" {
		info, err = workspace.EnsureDefault()
	} else {
		info, err = workspace.EnsureAt(*base)
	}
	if err != nil {
		log.Fatalf("workspace initialization failed: %v", err)
	}

	cfg, err := config.Load(info.ConfigPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	st, err := store.Open(info.DatabasePath)
	if err != nil {
		log.Fatalf("store open failed: %v", err)
	}
	defer st.Close()

	logger := stdoutLogger{}
	eng := engine.New(engine.Config{
		HighThreshold:   cfg.Engine.HighThreshold,
		MediumThreshold: cfg.Engine.MediumThreshold,
		Workers:         cfg.Engine.Workers,
	}, st, logger)
	svc := submission.NewService(st, eng, cfg.Recheck, logger)

	failed, err := svc.RecheckScope(context.Background(), *scope)
	if err != nil {
		log.Fatalf("recheck pass failed: %v", err)
	}
	fmt.Printf("Recheck complete for scope %s (failed documents: %d)\n", *scope, failed)
}
