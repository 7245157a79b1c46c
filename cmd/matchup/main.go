// Command matchup runs one matchup or trainer lookup from the command line,
// either against local set files or a running server over gRPC.
//
//	matchup -data ./data -request req.yaml
//	matchup -data ./data -gen 9 -trainer Cynthia
//	matchup -remote localhost:9090 -request req.yaml
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/matchup-backend/internal/calc"
	"github.com/xtding233/matchup-backend/internal/dataset"
	"github.com/xtding233/matchup-backend/internal/matchup"
	"github.com/xtding233/matchup-backend/internal/rpc"
)

func main() {
	dataDir := flag.String("data", "./data", "data directory containing sets/")
	requestPath := flag.String("request", "", "matchup request file (YAML or JSON)")
	gen := flag.Int("gen", 9, "generation for -trainer lookups")
	trainerName := flag.String("trainer", "", "list every set matching this trainer")
	remote := flag.String("remote", "", "gRPC address of a running server; local sets are used when empty")
	flag.Parse()

	if err := run(*dataDir, *requestPath, *gen, *trainerName, *remote); err != nil {
		fmt.Fprintln(os.Stderr, "matchup:", err)
		os.Exit(1)
	}
}

func run(dataDir, requestPath string, gen int, trainerName, remote string) error {
	if requestPath == "" && trainerName == "" {
		flag.Usage()
		return fmt.Errorf("one of -request or -trainer is required")
	}

	var req matchup.Request
	if requestPath != "" {
		b, err := os.ReadFile(requestPath)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(b, &req); err != nil {
			return fmt.Errorf("parse %s: %w", requestPath, err)
		}
	}

	if remote != "" {
		return runRemote(remote, requestPath != "", req, gen, trainerName)
	}

	idx, err := dataset.NewLoader(dataDir, nil).LoadAll()
	if err != nil {
		return err
	}
	engine, err := calc.New()
	if err != nil {
		return err
	}
	svc := matchup.NewService(idx, engine)

	if requestPath != "" {
		res, err := svc.Calculate(req)
		if err != nil {
			return err
		}
		return printJSON(res)
	}
	matches, err := svc.TrainerSets(gen, trainerName)
	if err != nil {
		return err
	}
	return printJSON(matches)
}

func runRemote(addr string, calculate bool, req matchup.Request, gen int, trainerName string) error {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client := rpc.NewClient(conn)

	if calculate {
		res, err := client.Calculate(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(res)
	}
	matches, err := client.ListTrainerSets(ctx, gen, trainerName)
	if err != nil {
		return err
	}
	return printJSON(matches)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
