package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"sprint2/internal/config"
	"sprint2/internal/registry"
	"sprint2/internal/repository"
	"sprint2/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = "Usage: admin <indexes|stats|deregister>"

var errUsage = errors.New(usage)

func main() {
	if len(os.Args) < 2 {
		log.Fatal(usage)
	}

	_ = godotenv.Load()
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if err := run(cfg, logger, os.Stdout, os.Args[1:]); err != nil {
		logger.Sync()
		log.Fatal(err)
	}
}

func run(cfg *config.Config, logger *zap.Logger, out io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "indexes":
		repos, closeStore, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()
		if err := server.EnsureIndexes(repos); err != nil {
			return fmt.Errorf("index error: %w", err)
		}
		fmt.Fprintln(out, ">> Unique indexes are in place")

	case "stats":
		repos, closeStore, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		counts := []struct {
			name  string
			count func(context.Context) (int64, error)
		}{
			{repository.UsersCollection, func(ctx context.Context) (int64, error) { return repos.Users.Count(ctx, nil) }},
			{repository.StudentsCollection, func(ctx context.Context) (int64, error) { return repos.Students.Count(ctx, nil) }},
			{repository.TeachersCollection, func(ctx context.Context) (int64, error) { return repos.Teachers.Count(ctx, nil) }},
			{repository.TeacherClassesCollection, func(ctx context.Context) (int64, error) { return repos.TeacherClasses.Count(ctx, nil) }},
		}
		for _, c := range counts {
			n, err := c.count(ctx)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.name, err)
			}
			fmt.Fprintf(out, "%-14s %d\n", c.name, n)
		}

	case "deregister":
		// Removes an instance left behind by a crashed server.
		dCmd := flag.NewFlagSet("deregister", flag.ContinueOnError)
		port := dCmd.String("port", cfg.Server.Port, "Port the stale instance was registered with")
		if err := dCmd.Parse(args[1:]); err != nil {
			return err
		}
		cfg.Server.Port = *port

		inst, err := registry.NewInstance(cfg)
		if err != nil {
			return fmt.Errorf("instance error: %w", err)
		}
		reg, err := registry.New(cfg, logger)
		if err != nil {
			return fmt.Errorf("registry error: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := reg.Deregister(ctx, inst); err != nil {
			return fmt.Errorf("deregister error: %w", err)
		}
		fmt.Fprintf(out, ">> Deregistered %s\n", inst.ID)

	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
	return nil
}

func openStore(cfg *config.Config, logger *zap.Logger) (*repository.Repositories, func(), error) {
	repos, client, err := server.InitRepositories(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("store error: %w", err)
	}
	return repos, func() {
		if client != nil {
			_ = client.Disconnect(context.Background())
		}
	}, nil
}
