package main

import (
	"fmt"
	"log"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/donezo/internal/database"
	"github.com/mdouchement/donezo/internal/password"
	"github.com/mdouchement/donezo/internal/server"
	"github.com/mdouchement/donezo/internal/server/session"
	"github.com/muesli/coral"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const dbname = "donezo.db"

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cfg string
)

func main() {
	c := &coral.Command{
		Use:     "donezo",
		Short:   "Single-user task list server",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    coral.ExactArgs(0),
	}
	serverCmd.Flags().StringVarP(&cfg, "config", "c", "", "Configuration file")
	c.AddCommand(serverCmd)

	if err := c.Execute(); err != nil {
		log.Fatalf("%+v", err)
	}
}

var serverCmd = &coral.Command{
	Use:   "server",
	Short: "Start server",
	Args:  coral.ExactArgs(0),
	RunE: func(_ *coral.Command, _ []string) error {
		konf := koanf.New(".")
		if cfg != "" {
			if err := konf.Load(file.Provider(cfg), yaml.Parser()); err != nil {
				return err
			}
		}

		// DONEZO_PORT, DONEZO_PASSWORD, DONEZO_BASE_PATH, DONEZO_DATABASE_PATH
		// and DONEZO_LOG_FILE override the configuration file.
		err := konf.Load(env.Provider("DONEZO_", ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, "DONEZO_"))
		}), nil)
		if err != nil {
			return err
		}

		setupLogger(konf.String("log_file"))

		if konf.String("password") == "" {
			return errors.New("password not found")
		}
		port := konf.Int("port")
		if port == 0 {
			return errors.New("port not found")
		}

		hash, err := password.Hash(konf.String("password"))
		if err != nil {
			return err
		}

		db, err := database.StormOpen(dbnameWithPath(konf.String("database_path")))
		if err != nil {
			return errors.Wrap(err, "could not open database")
		}
		defer db.Close()

		// Best-effort cleanup, expired sessions are also ignored on read.
		if err := session.NewManager(db).SweepExpired(); err != nil {
			logrus.WithError(err).Warn("could not sweep expired sessions")
		}

		engine := server.EchoEngine(server.Controller{
			Database:     db,
			PasswordHash: hash,
			BasePath:     normalizeBasePath(konf.String("base_path")),
		})
		server.PrintRoutes(engine)

		address := fmt.Sprintf(":%d", port)
		logrus.Infof("server listening on %s", address)
		return errors.Wrap(engine.Start(address), "could not run server")
	},
}

func dbnameWithPath(path string) string {
	if len(path) == 0 {
		return dbname
	}
	return filepath.Join(path, dbname)
}

// normalizeBasePath returns either an empty string or `/prefix` without a
// trailing slash.
func normalizeBasePath(path string) string {
	path = strings.TrimRight(path, "/")
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
