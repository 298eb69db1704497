package app

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/smartpark/parkmobile/internal/cache/sqlite"
	"github.com/smartpark/parkmobile/pkg/cryptox"
	"github.com/smartpark/parkmobile/pkg/parksdk"
	"github.com/smartpark/parkmobile/pkg/slogx"
)

const version = "0.3.0"

// App wires the SDK client to the persistent cache and exposes the CLI
// commands.
type App struct {
	cfg    Config
	logger *slog.Logger
	store  *sqlite.Store
	client *parksdk.Client
}

func New(cfg Config) (*App, error) {
	logger := slogx.New(slogx.Config{
		Service: "parkmobile",
		Version: version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	key, err := cryptox.LoadOrCreateKey(cfg.CacheKeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load cache key: %w", err)
	}
	box, err := cryptox.NewSealBox(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create seal box: %w", err)
	}

	store, err := sqlite.NewStore(cfg.CacheFile, box)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if err := store.ApplyMigrations(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate cache: %w", err)
	}

	client := parksdk.NewClient(cfg.APIBaseURL, store)
	client.HTTPClient.Timeout = cfg.HTTPTimeout
	client.Logger = logger

	return &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
		client: client,
	}, nil
}

func (a *App) Close() error { return a.store.Close() }

// Run dispatches a CLI command. Any locally edited profiles awaiting sync
// are pushed in the background first; the pass never blocks startup.
func (a *App) Run(ctx context.Context, args []string) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.client.SyncPendingProfiles(ctx)
	}()

	if len(args) == 0 {
		return a.usage()
	}

	var err error
	switch args[0] {
	case "register":
		err = a.register(ctx, args[1:])
	case "login":
		err = a.login(ctx, args[1:])
	case "logout":
		err = a.logout(ctx)
	case "profile":
		err = a.profile(ctx, args[1:])
	case "profile-update":
		err = a.profileUpdate(ctx, args[1:])
	case "plates":
		err = a.plates(ctx, args[1:])
	case "plate-add":
		err = a.plateAdd(ctx, args[1:])
	case "plate-del":
		err = a.plateDel(ctx, args[1:])
	case "reserve":
		err = a.reserve(ctx, args[1:])
	case "reservations":
		err = a.reservations(ctx, args[1:])
	case "cancel":
		err = a.cancel(ctx, args[1:])
	default:
		err = a.usage()
	}

	// Let the sync pass finish before the process exits; it is best-effort
	// and short, and abandoning it mid-flight wastes the attempt.
	<-done
	return err
}

func (a *App) usage() error {
	fmt.Fprintln(os.Stderr, `usage: parkmobile <command> [flags]

commands:
  register        create an account
  login           authenticate and store the session token
  logout          clear the stored session token
  profile         show the cached profile and current plates
  profile-update  update name, phone and plates
  plates          list vehicle plates
  plate-add       add a vehicle plate
  plate-del       remove a vehicle plate
  reserve         create a parking reservation
  reservations    list reservations
  cancel          cancel a reservation by id`)
	return fmt.Errorf("unknown or missing command")
}

func (a *App) session(ctx context.Context, email string) (*parksdk.Session, error) {
	return a.client.ResumeSession(ctx, email)
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "password")
	plates := fs.String("plates", "", "comma-separated plate ids")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.client.Register(ctx, parksdk.RegisterRequest{
		Name:        *name,
		Email:       *email,
		Phone:       *phone,
		Password:    *password,
		CarPlateIDs: splitPlates(*plates),
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Message)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s\n", session.Email())
	return nil
}

func (a *App) logout(ctx context.Context) error {
	if err := a.store.ClearCredential(ctx); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := a.client.LoadProfile(ctx, *email)
	if p == nil {
		fmt.Println("no cached profile; login first")
		return nil
	}

	// Cached record renders first, then the plate list is refreshed from
	// the backend (or its cached snapshot when offline).
	p.CarPlateIDs = a.client.FetchPlates(ctx, *email)
	return printJSON(p)
}

func (a *App) profileUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-update", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	plates := fs.String("plates", "", "comma-separated desired plate ids")
	if err := fs.Parse(args); err != nil {
		return err
	}

	desired := splitPlates(*plates)
	profile := parksdk.Profile{
		Name:        *name,
		Email:       *email,
		PhoneNumber: *phone,
		CarPlateIDs: desired,
	}

	session, err := a.session(ctx, *email)
	if err != nil {
		// Offline or logged out: keep the edit as a draft for the pending
		// sync pass instead of losing it.
		if draftErr := a.client.SaveProfileDraft(ctx, profile); draftErr != nil {
			return draftErr
		}
		fmt.Println("not logged in; profile saved locally and will sync after login")
		return nil
	}

	if _, err := session.UpdateProfile(ctx, profile); err != nil {
		return err
	}
	if err := session.Reconcile(ctx, *email, desired); err != nil {
		return err
	}

	fmt.Printf("profile updated, plates now: %s\n",
		strings.Join(a.client.FetchPlates(ctx, *email), ", "))
	return nil
}

func (a *App) plates(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plates", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, plate := range a.client.FetchPlates(ctx, *email) {
		fmt.Println(plate)
	}
	return nil
}

func (a *App) plateAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plate-add", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	plate := fs.String("plate", "", "plate id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, *email)
	if err != nil {
		return err
	}
	if err := session.AddPlate(ctx, *email, *plate); err != nil {
		return err
	}

	fmt.Printf("plates now: %s\n", strings.Join(a.client.FetchPlates(ctx, *email), ", "))
	return nil
}

func (a *App) plateDel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plate-del", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	plate := fs.String("plate", "", "plate id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, *email)
	if err != nil {
		return err
	}

	remaining, err := session.DeletePlate(ctx, *email, *plate)
	if err != nil {
		return err
	}

	fmt.Printf("plates now: %s\n", strings.Join(remaining, ", "))
	return nil
}

func (a *App) reserve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reserve", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	plate := fs.String("plate", "", "plate id")
	spot := fs.String("spot", "", "parking spot id")
	date := fs.String("date", "", "date (YYYY-MM-DD)")
	start := fs.String("start", "", "start time (HH:MM)")
	end := fs.String("end", "", "end time (HH:MM)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, *email)
	if err != nil {
		return err
	}

	created, err := session.CreateReservation(ctx, parksdk.Reservation{
		Email:         *email,
		CarPlate:      *plate,
		ParkingSpotID: *spot,
		Date:          *date,
		HourRange:     [2]string{*start, *end},
	})
	if err != nil {
		return err
	}

	return printJSON(created)
}

func (a *App) reservations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reservations", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, *email)
	if err != nil {
		return err
	}

	reservations, err := session.ListReservations(ctx, *email)
	if err != nil {
		return err
	}

	return printJSON(reservations)
}

func (a *App) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	id := fs.String("id", "", "reservation id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.session(ctx, *email)
	if err != nil {
		return err
	}
	if err := session.DeleteReservation(ctx, *id); err != nil {
		return err
	}

	fmt.Println("reservation cancelled")
	return nil
}

func splitPlates(s string) []string {
	if s == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	plates := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			plates = append(plates, p)
		}
	}
	return plates
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
