package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/laneline/swimrecords/internal/adapters/render"
	"github.com/laneline/swimrecords/internal/adapters/repository"
	"github.com/laneline/swimrecords/internal/adapters/source"
	"github.com/laneline/swimrecords/internal/app"
	"github.com/laneline/swimrecords/internal/config"
	"github.com/laneline/swimrecords/internal/domain/classify"
	"github.com/laneline/swimrecords/internal/domain/events"
	"github.com/laneline/swimrecords/internal/domain/model"
	"github.com/laneline/swimrecords/internal/domain/records"
	"github.com/laneline/swimrecords/pkg/logger"
	"github.com/laneline/swimrecords/pkg/metrics"
)

// Tool version written into decision files.
const version = "1.2.0"

// Metrics server timeouts.
const (
	metricsReadHeaderTimeout = 5 * time.Second
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Builtin sources, resolved once at startup.
	source.Register(source.CSVDirName, func() (source.Source, error) {
		return source.NewCSVDir(cfg.SwimmersDir), nil
	})

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	if len(os.Args) < 2 {
		usage()
		return 2
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := dispatch(ctx, cfg, cmd, args); err != nil {
		log.Error(ctx, "command failed", logger.String("command", cmd), logger.Error(err))
		return 1
	}
	return 0
}

func dispatch(ctx context.Context, cfg *config.Config, cmd string, args []string) error {
	switch cmd {
	case "classify":
		return runClassify(ctx, cfg, args)
	case "records":
		return runRecords(ctx, cfg, args)
	case "top10":
		return runTopN(ctx, cfg, args)
	case "annual":
		return runAnnual(ctx, cfg, args)
	case "status":
		return runStatus(ctx, cfg)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// newService builds the batch service from configuration. The full
// pipeline (classify + reports) always runs in one process, so every
// command starts by classifying into a fresh in-memory store. A
// non-empty gender restricts report aggregation to that squad.
func newService(cfg *config.Config, decisions classify.DecisionSet, gender string, progress bool) (*app.Service, error) {
	src, err := source.Open(cfg.Source)
	if err != nil {
		return nil, err
	}
	opts := []app.Option{
		app.WithLogger(logger.Named("batch")),
		app.WithSource(src),
		app.WithStore(repository.NewMemStore()),
		app.WithClassifier(classify.New(cfg.TeamNames)),
		app.WithAggregator(records.New(records.WithTopN(cfg.TopN), records.WithGender(gender))),
		app.WithRenderer(render.NewMarkdown(teamTitle(cfg), render.WithGenderTitle(genderTitle(gender)))),
		app.WithDecisions(decisions),
		app.WithTeamName(teamTitle(cfg)),
		app.WithOutputDir(cfg.OutputDir),
		app.WithParallelism(cfg.Parallelism),
	}
	if progress && cfg.Progress {
		opts = append(opts, app.WithProgress(os.Stderr))
	}
	return app.New(opts...), nil
}

// genderFlag registers the squad filter flag and returns a validator
// mapping it to the gender codes sources deliver.
func genderFlag(fs *flag.FlagSet) func() (string, error) {
	val := fs.String("gender", "", "restrict reports to one squad (M or F)")
	return func() (string, error) {
		switch strings.ToUpper(strings.TrimSpace(*val)) {
		case "":
			return "", nil
		case "M", "MALE", "BOYS":
			return "M", nil
		case "F", "FEMALE", "GIRLS":
			return "F", nil
		default:
			return "", fmt.Errorf("flag --gender: want M or F, got %q", *val)
		}
	}
}

// genderTitle maps a gender code to the squad label used in report
// titles.
func genderTitle(gender string) string {
	switch gender {
	case "M":
		return "Boys"
	case "F":
		return "Girls"
	default:
		return ""
	}
}

func teamTitle(cfg *config.Config) string {
	if cfg.TeamName != "" {
		return cfg.TeamName
	}
	if len(cfg.TeamNames) > 0 {
		return cfg.TeamNames[0]
	}
	return "Team Records"
}

// decisionFlags registers the four category flags on fs and returns a
// resolver applying precedence: explicit flag > saved decision file.
func decisionFlags(fs *flag.FlagSet, cfg *config.Config) func() (classify.DecisionSet, error) {
	flags := []struct {
		name  string
		label model.Label
		val   *string
	}{
		{"high-school", model.HighSchool, fs.String("high-school", "", "include|exclude high school swims")},
		{"probationary", model.Probationary, fs.String("probationary", "", "include|exclude probationary swims")},
		{"college", model.College, fs.String("college", "", "include|exclude unattached college swims")},
		{"misc-unattached", model.MiscUnattached, fs.String("misc-unattached", "", "include|exclude misc unattached swims")},
	}
	return func() (classify.DecisionSet, error) {
		decisions, err := classify.LoadDecisions(cfg.DecisionFile)
		if err != nil && !errors.Is(err, classify.ErrNoDecisionFile) {
			return classify.DecisionSet{}, err
		}
		for _, f := range flags {
			if *f.val == "" {
				continue
			}
			d := model.Decision(*f.val)
			if !d.Valid() {
				return classify.DecisionSet{}, fmt.Errorf("flag --%s: want include or exclude, got %q", f.name, *f.val)
			}
			decisions = decisions.With(f.label, d)
		}
		if err := decisions.Validate(); err != nil {
			return classify.DecisionSet{}, fmt.Errorf(
				"%w (set --high-school/--probationary/--college/--misc-unattached or create %s)",
				err, cfg.DecisionFile)
		}
		return decisions, nil
	}
}

func runClassify(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("classify", flag.ContinueOnError)
	resolve := decisionFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	decisions, err := resolve()
	if err != nil {
		return err
	}
	if err := classify.SaveDecisions(cfg.DecisionFile, decisions, version); err != nil {
		return err
	}

	svc, err := newService(cfg, decisions, "", true)
	if err != nil {
		return err
	}
	summary, err := svc.Classify(ctx)
	if err != nil {
		return err
	}
	printSummary(summary)
	return nil
}

func runRecords(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("records", flag.ContinueOnError)
	course := fs.String("course", "", "limit to one course (scy, lcm, scm)")
	squad := genderFlag(fs)
	resolve := decisionFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	decisions, err := resolve()
	if err != nil {
		return err
	}
	gender, err := squad()
	if err != nil {
		return err
	}
	list, err := courses(cfg, *course)
	if err != nil {
		return err
	}
	svc, err := classified(ctx, cfg, decisions, gender)
	if err != nil {
		return err
	}
	for _, c := range list {
		if _, err := svc.Records(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func runTopN(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("top10", flag.ContinueOnError)
	course := fs.String("course", "", "limit to one course (scy, lcm, scm)")
	squad := genderFlag(fs)
	resolve := decisionFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	decisions, err := resolve()
	if err != nil {
		return err
	}
	gender, err := squad()
	if err != nil {
		return err
	}
	list, err := courses(cfg, *course)
	if err != nil {
		return err
	}
	svc, err := classified(ctx, cfg, decisions, gender)
	if err != nil {
		return err
	}
	for _, c := range list {
		if _, err := svc.TopN(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func runAnnual(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("annual", flag.ContinueOnError)
	course := fs.String("course", "", "limit to one course (scy, lcm, scm)")
	season := fs.Int("season", time.Now().Year(), "season calendar year")
	squad := genderFlag(fs)
	resolve := decisionFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	decisions, err := resolve()
	if err != nil {
		return err
	}
	gender, err := squad()
	if err != nil {
		return err
	}
	list, err := courses(cfg, *course)
	if err != nil {
		return err
	}
	svc, err := classified(ctx, cfg, decisions, gender)
	if err != nil {
		return err
	}
	for _, c := range list {
		if _, err := svc.Annual(ctx, c, *season); err != nil {
			return err
		}
	}
	return nil
}

func runStatus(ctx context.Context, cfg *config.Config) error {
	decisions, err := classify.LoadDecisions(cfg.DecisionFile)
	if err != nil {
		if errors.Is(err, classify.ErrNoDecisionFile) {
			fmt.Println("no decisions saved yet; run classify first")
			return nil
		}
		return err
	}
	svc, err := classified(ctx, cfg, decisions, "")
	if err != nil {
		return err
	}
	st := svc.Status(ctx)
	fmt.Printf("swims:     %d\n", st.Swims)
	fmt.Printf("swimmers:  %d\n", st.Swimmers)
	fmt.Printf("official:  %d\n", st.Official)
	fmt.Printf("excluded:  %d\n", st.Excluded)
	return nil
}

// classified builds a service and runs the classification batch, the
// precondition of every report command.
func classified(ctx context.Context, cfg *config.Config, decisions classify.DecisionSet, gender string) (*app.Service, error) {
	svc, err := newService(cfg, decisions, gender, false)
	if err != nil {
		return nil, err
	}
	if _, err := svc.Classify(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// courses resolves the course list for a report command. An override
// must name a known course; an unknown one would render a header-only
// book over an empty catalogue.
func courses(cfg *config.Config, override string) ([]string, error) {
	if override == "" {
		return cfg.Courses, nil
	}
	c := strings.ToLower(override)
	if events.Catalogue(c) == nil {
		return nil, fmt.Errorf("unknown course %q (want scy, lcm or scm)", override)
	}
	return []string{c}, nil
}

func printSummary(summary app.Summary) {
	fmt.Printf("run %s: %d swimmers, %d processed, %d skipped\n",
		summary.RunID, summary.Swimmers, summary.Processed, summary.Skipped)
	fmt.Printf("official swims: %d\nexcluded swims: %d\n", summary.Official, summary.Excluded)
	for label, n := range summary.ByLabel {
		fmt.Printf("  %-15s %d\n", label, n)
	}
}

func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn(ctx, "metrics server stopped", logger.Error(err))
	}
}

func usage() {
	os.Stdout.WriteString(`swimrecords - team swim record books from collected results

Usage:
  swimrecords <command> [flags]

Commands:
  classify   classify unattached swims into official/excluded partitions
  records    generate best-time record books per course
  top10      generate all-time top-N lists per event
  annual     generate a season records summary (--season=YYYY)
  status     show classification counts

Decision flags (classify, records, top10, annual):
  --high-school=include|exclude
  --probationary=include|exclude
  --college=include|exclude
  --misc-unattached=include|exclude

Configuration comes from SWIMREC_* environment variables or a YAML file
named by SWIMREC_CONFIG. SWIMREC_TEAM_NAMES is required.
`)
}
