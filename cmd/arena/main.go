package main

import (
	"context"
	"os"
	"strings"

	"github.com/Luismorlan/logosarena/app_setting"
	"github.com/Luismorlan/logosarena/auth"
	"github.com/Luismorlan/logosarena/engine"
	"github.com/Luismorlan/logosarena/notify"
	"github.com/Luismorlan/logosarena/revalidate"
	"github.com/Luismorlan/logosarena/server"
	"github.com/Luismorlan/logosarena/server/resolver"
	"github.com/Luismorlan/logosarena/storage"
	"github.com/Luismorlan/logosarena/store"
	. "github.com/Luismorlan/logosarena/utils"
	"github.com/Luismorlan/logosarena/utils/dotenv"
	"github.com/Luismorlan/logosarena/utils/flag"
	. "github.com/Luismorlan/logosarena/utils/log"
	"github.com/spf13/cobra"
)

var addr string

func cleanup() {
	CloseProfiler()
	CloseTracer()
	Log.Info("arena shutdown")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		Log.Errorln(err)
		os.Exit(1)
	}
}

// newRootCmd wires the subcommands. The logger is rebuilt once the dotenv
// files and flags are in, so its env and service fields are the real ones.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "arena",
		Short: "Logos Arena debate api",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := dotenv.LoadDotEnvs(); err != nil {
				return err
			}
			if cmd.Name() == "migrate" && !cmd.Flags().Changed("service") {
				flag.ServiceName = flag.Migrator
			}
			InitLogger()
			return nil
		},
	}
	flag.BindFlags(root.PersistentFlags())

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the http api and its background modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "address the api listens on")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database and migrate the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate()
		},
	}

	root.AddCommand(serveCmd, migrateCmd)
	return root
}

func migrate() error {
	if err := EnsureDatabase(os.Getenv("DB_NAME")); err != nil {
		return err
	}
	db, err := GetDBConnection()
	if err != nil {
		return err
	}
	if err := DatabaseSetupAndMigration(db); err != nil {
		return err
	}
	Log.Info("database migrated")
	return nil
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	if !flag.IsDevelopment {
		StartTracer()
		StartProfiler()
	}
	defer cleanup()

	setting, err := app_setting.ParseArenaAppSetting(flag.SettingPath)
	if err != nil {
		return err
	}

	db, err := GetDBConnection()
	if err != nil {
		return err
	}
	st := store.NewGormStore(db)
	metrics := GetStatsdClient()

	ctx, cancel := context.WithCancel(parent)
	bus := engine.NewEventBus()

	notifier, err := notify.NewNotifierFromEnv(setting.ADMIN_EMAIL)
	if err != nil {
		cancel()
		return err
	}
	modules := []engine.Module{
		engine.NewReportNotifier("report_notifier", bus, notifier, metrics),
	}

	// Every instance serves websocket clients from its own hub. With redis the
	// resolver publishes there and each instance relays into its hub.
	hub := revalidate.NewHub()
	var signal revalidate.Signal = hub
	if RedisConfigured() {
		client, err := GetRedisClient(ctx)
		if err != nil {
			cancel()
			return err
		}
		signal = revalidate.NewRedisPublisher(client)
		modules = append(modules, engine.NewRevalidationRelay("revalidation_relay", client, hub))
	}

	provider, err := auth.NewCognitoProviderFromDefaultConfig(ctx)
	if err != nil {
		cancel()
		return err
	}

	s := &server.Server{
		Resolver: resolver.New(st, signal, bus, metrics, setting),
		Auth:     provider,
		Hub:      hub,
		AppURL:   os.Getenv("APP_URL"),
		Trace:    !flag.IsDevelopment,
	}
	if origins := os.Getenv("ALLOW_ORIGINS"); origins != "" {
		s.AllowOrigins = strings.Split(origins, ",")
	}
	if oauth, err := auth.NewOAuthConfigFromEnv(); err == nil {
		s.OAuth = oauth
	} else {
		Log.Warn("hosted login disabled: ", err)
	}
	if images, err := storage.NewS3ImageStoreFromEnv(); err == nil {
		s.Images = images
	} else {
		Log.Warn("image upload disabled: ", err)
	}

	e := engine.NewEngine(modules, ctx, cancel, bus)
	go e.Run()
	defer e.Shutdown()

	Log.Info("arena api starts up on ", addr)
	return s.Router().Run(addr)
}
