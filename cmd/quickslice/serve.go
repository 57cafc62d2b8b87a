package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/db"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/query"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/record"
	"github.com/gamesgamesgamesgamesgames/quickslice-sub000/serv"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quickslice HTTP service",
		Run: func(cmd *cobra.Command, args []string) {
			conf, err := serv.ReadInConfig(afero.NewOsFs(), cfgPath)
			if err != nil {
				log.Fatalf("config: %s", err)
			}
			if err := conf.Validate(); err != nil {
				log.Fatalf("config: %s", err)
			}

			zlog := serv.NewLogger(conf.Server.LogLevel == "json")
			defer zlog.Sync() //nolint:errcheck
			slog := zlog.Sugar()

			conf.WatchAndReload(slog)

			handle, err := openDB(conf)
			if err != nil {
				slog.Fatalf("database: %s", err)
			}

			engine, err := query.New(handle)
			if err != nil {
				slog.Fatalf("engine: %s", err)
			}

			s := serv.New(conf, slog, engine)
			if err := s.Run(context.Background()); err != nil {
				slog.Fatalf("server: %s", err)
			}
		},
	}
}

func openDB(conf *serv.Config) (record.DB, error) {
	switch conf.DB.Type {
	case "sqlite":
		return db.OpenSQLite(conf.DB.ConnString)
	case "postgres":
		return db.OpenPostgres(conf.DB.ConnString, db.PostgresOptions{
			MaxOpenConns:    conf.DB.MaxConnections,
			MaxIdleConns:    conf.DB.MaxConnIdle,
			ConnMaxLifetime: conf.DB.ConnLifetime,
		})
	default:
		return nil, fmt.Errorf("unsupported database.type %q", conf.DB.Type)
	}
}
