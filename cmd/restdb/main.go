// Command restdb serves the tables of one database as REST resources.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/restdb/restdb"
	"github.com/restdb/restdb/driver"
	"github.com/restdb/restdb/logger"
	"github.com/restdb/restdb/params"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	configPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if err := run(*configPath, zl); err != nil {
		zl.Fatal().Err(err).Msg("startup failed")
	}
}

func run(configPath string, zl zerolog.Logger) error {
	cfg, err := restdb.LoadConfig(configPath)
	if err != nil {
		return err
	}
	log := logger.NewZerologLogger(zl, logger.Config{LogLevel: parseLogLevel(cfg.Server.LogLevel)})

	db, err := driver.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Ping(context.Background()); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}

	var hasher *restdb.HashProvider
	if cfg.Hashids.Enabled {
		hasher = restdb.NewHashProvider(cfg.Hashids.Salt, cfg.Hashids.MinLength)
	}

	mux := http.NewServeMux()
	for _, table := range cfg.Tables {
		model, err := table.BuildModel()
		if err != nil {
			return err
		}
		api, err := restdb.New(db, db.Dialect(), model, restdb.Options{
			Logger:          log,
			Hasher:          hasher,
			Locale:          cfg.Server.Locale,
			SkipInvalidRows: table.SkipInvalidRows,
		})
		if err != nil {
			return err
		}
		mux.Handle("/"+table.Name+"/", &tableHandler{api: api, prefix: "/" + table.Name + "/"})
		mux.Handle("/"+table.Name, &tableHandler{api: api, prefix: "/" + table.Name})
	}

	log.Info(context.Background(), "listening on %s", cfg.Server.Listen)
	return http.ListenAndServe(cfg.Server.Listen, mux)
}

type tableHandler struct {
	api    *restdb.API
	prefix string
}

func (h *tableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, h.prefix), "/")
	query := r.URL.Query()
	p, err := queryParams(query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res := h.api.HandleRequest(r.Context(), r.Method, id, p, r.Header.Get("Content-Type"), r.Body)
	writeResult(w, r, res)
}

func queryParams(query map[string][]string) (params.SQLParams, error) {
	first := func(key string) string {
		if values := query[key]; len(values) > 0 {
			return values[0]
		}
		return ""
	}
	return params.Parse(first("filter"), first("order"), first("limit"), first("aggregate"), first("select"))
}

func writeResult(w http.ResponseWriter, r *http.Request, res *restdb.Result) {
	accept := r.Header.Get("Accept")
	contentType := restdb.ContentTypeJSON
	if ct, _, err := restdb.ParseContentType(accept); err == nil && accept != "" {
		contentType = ct
	}
	if res.Data != nil {
		body, err := res.Data.WriteString(r.Context(), contentType, res)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", string(contentType))
		w.WriteHeader(res.StatusCode)
		fmt.Fprint(w, body)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(res.StatusCode)
	fmt.Fprintln(w, res.StatusMessage)
	for _, message := range res.Messages {
		fmt.Fprintln(w, message)
	}
}

func parseLogLevel(name string) logger.LogLevel {
	switch strings.ToLower(name) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
