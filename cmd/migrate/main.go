package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/sipas-org/sipas-api/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	connectionURL := flag.String("url", os.Getenv("DATABASE_URL"), "connection string of the database to migrate (defaults to DATABASE_URL)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-url URL] up|down|status|version|redo|reset [args]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *connectionURL == "" {
		fmt.Print("missing -url param and DATABASE_URL is not set\n")
		flag.Usage()
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print("expected a subcommand\n")
		flag.Usage()
		os.Exit(1)
	}
	command := args[0]

	conn, err := goose.OpenDBWithDriver("pgx", *connectionURL)
	if err != nil {
		log.Fatalf("failed to connect with database: %v\n", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("failed to close database connection: %v\n", err)
		}
	}()

	goose.SetBaseFS(postgres.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set dialect: %s", err)
	}

	if err := goose.Run(command, conn, postgres.MigrationsDir, args[1:]...); err != nil {
		log.Fatalf("migrate %v: %v", command, err)
	}
}
