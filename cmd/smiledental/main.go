package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/monteroai/smiledental/internal/alerts"
	"github.com/monteroai/smiledental/internal/api"
	"github.com/monteroai/smiledental/internal/app"
	"github.com/monteroai/smiledental/internal/auth"
	"github.com/monteroai/smiledental/internal/config"
	"github.com/monteroai/smiledental/internal/directory"
	"github.com/monteroai/smiledental/internal/models"
	"github.com/monteroai/smiledental/internal/posting"
	"github.com/monteroai/smiledental/internal/registry"
)

const requestTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	//load config
	cfg := config.Load()

	shell, err := app.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to start: %v", err)
	}

	//restore session once at cold start
	if shell.RestoreSession() {
		log.Printf("🔑 Signed in as %s (%s)", shell.User().FullName(), shell.Role())
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "login":
		err = runLogin(shell, args)
	case "register":
		err = runRegister(shell, args)
	case "logout":
		err = runLogout(shell)
	case "whoami":
		err = runWhoami(shell)
	case "jobs":
		err = runJobs(shell, args)
	case "apply":
		err = runApply(shell, args)
	case "post":
		err = runPost(shell, args)
	case "postings":
		err = runPostings(shell)
	case "applications":
		err = runApplications(shell)
	case "watch":
		err = runWatch(shell, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		var verr *auth.ValidationError
		var perr *posting.ValidationError
		switch {
		case errors.As(err, &verr):
			for field, message := range verr.Fields {
				log.Printf("❌ %s: %s", field, message)
			}
		case errors.As(err, &perr):
			for field, message := range perr.Fields {
				log.Printf("❌ %s: %s", field, message)
			}
		default:
			log.Printf("❌ %s", api.UserMessage(err))
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Smile Dental Temps client

Usage:
  smiledental login --email <email> --password <password>
  smiledental register [flags]
  smiledental logout
  smiledental whoami
  smiledental jobs [--search <text>] [--type <job type>]
  smiledental apply --job <job id>
  smiledental post --file <draft.yaml>
  smiledental postings
  smiledental applications
  smiledental watch [--search <text>] [--type <job type>]`)
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func runLogin(shell *app.Shell, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	flow := auth.NewFlow(shell.API, shell.Sessions)
	flow.Fields.Email = *email
	flow.Fields.Password = *password

	ctx, cancel := commandContext()
	defer cancel()
	if err := flow.Submit(ctx); err != nil {
		return err
	}

	shell.SetSession(flow.User())
	log.Printf("✅ Signed in as %s (%s)", flow.User().FullName(), flow.User().Role)
	return nil
}

func runRegister(shell *app.Shell, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	role := fs.String("role", string(models.RoleProfessional), "client or professional")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm", "", "password confirmation")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	phone := fs.String("phone", "", "phone number")
	profession := fs.String("profession", "", "profession type")
	license := fs.String("license", "", "license number")
	experience := fs.String("experience", "", "years of experience")
	office := fs.String("office", "", "dental office name")
	address := fs.String("address", "", "office address")
	city := fs.String("city", "", "office city")
	state := fs.String("state", "", "office state")
	zip := fs.String("zip", "", "office zip")
	fs.Parse(args)

	portal := models.Role(*role)
	if !portal.Valid() {
		return fmt.Errorf("--role must be %s or %s", models.RoleClient, models.RoleProfessional)
	}

	flow := auth.NewFlow(shell.API, shell.Sessions)
	flow.ToggleMode()
	flow.SwitchPortal(portal)
	flow.Fields = auth.Fields{
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
		FirstName:       *first,
		LastName:        *last,
		Phone:           *phone,
		ProfessionType:  models.JobType(*profession),
		LicenseNumber:   *license,
		ExperienceYears: *experience,
		OfficeName:      *office,
		OfficeAddress:   *address,
		OfficeCity:      *city,
		OfficeState:     *state,
		OfficeZip:       *zip,
	}

	ctx, cancel := commandContext()
	defer cancel()
	if err := flow.Submit(ctx); err != nil {
		return err
	}

	shell.SetSession(flow.User())
	log.Printf("✅ Account created for %s (%s)", flow.User().FullName(), flow.User().Role)
	return nil
}

func runLogout(shell *app.Shell) error {
	if err := shell.Logout(); err != nil {
		return err
	}
	log.Println("👋 Signed out")
	return nil
}

func runWhoami(shell *app.Shell) error {
	if !shell.IsAuthenticated() {
		log.Println("🔒 Not signed in")
		return nil
	}
	user := shell.User()
	log.Printf("👤 %s <%s> role=%s", user.FullName(), user.Email, user.Role)
	return nil
}

func runJobs(shell *app.Shell, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	search := fs.String("search", "", "substring match on title/city/state")
	category := fs.String("type", "", "exact job type")
	fs.Parse(args)

	dir := directory.New(shell.API)
	ctx, cancel := commandContext()
	defer cancel()
	if err := dir.Load(ctx); err != nil {
		return err
	}
	dir.SetSearch(*search)
	dir.SetCategory(models.JobType(*category))

	if dir.NoResults() {
		log.Println("🔍 No jobs match the current filters")
		return nil
	}
	for _, job := range dir.Visible() {
		printJob(job)
	}
	return nil
}

func printJob(job models.Job) {
	fmt.Printf("%s  %-28s %-18s %s, %s  $%.2f/hr  %s %s-%s  (%d applicants)\n",
		job.ID, job.Title, job.JobType,
		job.LocationCity, job.LocationState, job.HourlyRate,
		job.JobDate.Format("2006-01-02"), job.StartTime, job.EndTime,
		job.ApplicationsCount)
}

func runApply(shell *app.Shell, args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	jobID := fs.String("job", "", "job id to apply to")
	fs.Parse(args)
	if *jobID == "" {
		return fmt.Errorf("--job is required")
	}

	dir := directory.New(shell.API)
	ctx, cancel := commandContext()
	defer cancel()
	if err := dir.Apply(ctx, *jobID); err != nil {
		return err
	}
	log.Println("✅ Application submitted")
	return nil
}

// jobDraft is the YAML shape `smiledental post --file` accepts. It mirrors
// the posting form fields one to one.
type jobDraft struct {
	Title       string   `yaml:"title"`
	JobType     string   `yaml:"job_type"`
	Description string   `yaml:"description"`
	HourlyRate  string   `yaml:"hourly_rate"`
	Address     string   `yaml:"address"`
	City        string   `yaml:"city"`
	State       string   `yaml:"state"`
	Zip         string   `yaml:"zip"`
	Date        string   `yaml:"date"`
	StartTime   string   `yaml:"start_time"`
	EndTime     string   `yaml:"end_time"`
	Recurring   bool     `yaml:"recurring"`
	Pattern     string   `yaml:"pattern"`
	Weekdays    []string `yaml:"weekdays"`
	EndDate     string   `yaml:"end_date"`
}

func runPost(shell *app.Shell, args []string) error {
	fs := flag.NewFlagSet("post", flag.ExitOnError)
	file := fs.String("file", "", "path to a YAML job draft")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("--file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("failed to read draft: %w", err)
	}
	var draft jobDraft
	if err := yaml.Unmarshal(data, &draft); err != nil {
		return fmt.Errorf("failed to parse draft: %w", err)
	}

	form := posting.NewForm(shell.User())
	form.Title = draft.Title
	form.JobType = models.JobType(draft.JobType)
	form.Description = draft.Description
	form.HourlyRate = draft.HourlyRate
	if draft.Address != "" {
		form.Address = draft.Address
	}
	if draft.City != "" {
		form.City = draft.City
	}
	if draft.State != "" {
		form.State = draft.State
	}
	if draft.Zip != "" {
		form.Zip = draft.Zip
	}
	form.Date = draft.Date
	form.StartTime = draft.StartTime
	form.EndTime = draft.EndTime
	form.Recurring = draft.Recurring
	form.Pattern = models.RecurrencePattern(draft.Pattern)
	form.Weekdays = draft.Weekdays
	form.EndDate = draft.EndDate

	ctx, cancel := commandContext()
	defer cancel()
	job, err := form.Submit(ctx, shell.API)
	if err != nil {
		return err
	}
	log.Printf("✅ Posted %q (%s)", job.Title, job.ID)
	return nil
}

func runPostings(shell *app.Shell) error {
	ctx, cancel := commandContext()
	defer cancel()
	jobs, err := shell.API.MyPostings(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		log.Println("🔍 No postings yet")
		return nil
	}
	for _, job := range jobs {
		printJob(job)
	}
	return nil
}

func runApplications(shell *app.Shell) error {
	if !shell.IsAuthenticated() {
		return fmt.Errorf("sign in first")
	}

	reg := registry.New(shell.API, shell.User())
	ctx, cancel := commandContext()
	defer cancel()
	if err := reg.Load(ctx); err != nil {
		return err
	}

	cards := reg.Cards()
	if len(cards) == 0 {
		log.Println("🔍 No applications yet")
		return nil
	}
	for _, card := range cards {
		fmt.Printf("%-30s %-40s [%s]\n", card.Headline, card.Detail, card.Status)
	}
	return nil
}

func runWatch(shell *app.Shell, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	search := fs.String("search", "", "substring match on title/city/state")
	category := fs.String("type", "", "exact job type")
	fs.Parse(args)

	cfg := shell.Config
	if cfg.TelegramToken == "" || cfg.TelegramChatID == 0 {
		return fmt.Errorf("job alerts need TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
	}

	notifier, err := alerts.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return err
	}
	cache := alerts.NewCache(cfg.CachePath)
	watcher := alerts.NewWatcher(shell.API, cache, notifier, *search, models.JobType(*category), cfg.PollInterval())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("🚀 Watching for new jobs every %s", cfg.PollInterval())
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
