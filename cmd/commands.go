package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"jobdeck/board-client/internal/applications"
	"jobdeck/board-client/internal/companies"
	"jobdeck/board-client/internal/db"
	"jobdeck/board-client/internal/jobs"
	"jobdeck/board-client/internal/profile"
	"jobdeck/board-client/internal/session"
	"jobdeck/board-client/internal/watch"

	"github.com/redis/go-redis/v9"
)

// ─── Session commands ────────────────────────────────────────────────────────

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("u", "", "username")
	pass := fs.String("p", "", "password")
	fs.Parse(args)
	if *user == "" || *pass == "" {
		return fmt.Errorf("login requires -u and -p")
	}

	me, err := a.sess.Login(ctx, *user, *pass)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			return fmt.Errorf("invalid username or password")
		}
		return err
	}
	fmt.Printf("Logged in as %s (role: %s)\n", me.Username, me.Role)
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.sess.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	user := fs.String("u", "", "username")
	pass := fs.String("p", "", "password")
	email := fs.String("email", "", "email address")
	role := fs.String("role", "candidate", "candidate, recruiter or both")
	fs.Parse(args)
	if *user == "" || *pass == "" {
		return fmt.Errorf("register requires -u and -p")
	}

	created, err := a.sess.Register(ctx, *user, *pass, session.ParseRole(*role), *email)
	if err != nil {
		return err
	}
	fmt.Printf("Registered %s (role: %s). Log in to continue.\n", created.Username, created.Role)
	return nil
}

func (a *app) cmdMe(ctx context.Context) error {
	if !a.sess.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}
	if err := a.sess.EnsureFresh(ctx); err != nil {
		return sessionExpired(a.sess, err)
	}
	me, err := a.sess.FetchMe(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\nrole: %s (candidate=%v recruiter=%v)\n",
		me.Username, me.Email, me.Role, a.sess.IsCandidate(), a.sess.IsRecruiter())
	return nil
}

func (a *app) cmdRefresh(ctx context.Context) error {
	if err := a.sess.Refresh(ctx); err != nil {
		return sessionExpired(a.sess, err)
	}
	fmt.Println("Access token refreshed.")
	return nil
}

// sessionExpired maps an unrecoverable refresh failure to a forced logout.
func sessionExpired(sess *session.Session, err error) error {
	if errors.Is(err, session.ErrNoRefreshToken) {
		_ = sess.Logout()
		return fmt.Errorf("session expired, please log in again")
	}
	return err
}

// ─── Job commands ────────────────────────────────────────────────────────────

func jobFilterFlags(fs *flag.FlagSet) (search, location, company, ordering *string, salaryMin, salaryMax, page *int) {
	search = fs.String("search", "", "free-text search")
	location = fs.String("location", "", "location filter")
	company = fs.String("company", "", "company name filter")
	ordering = fs.String("ordering", jobs.DefaultOrdering, "-created_at, created_at, -salary or salary")
	salaryMin = fs.Int("salary-min", -1, "minimum salary (-1 = no filter)")
	salaryMax = fs.Int("salary-max", -1, "maximum salary (-1 = no filter)")
	page = fs.Int("page", 1, "page number")
	return
}

func buildFilter(search, location, company, ordering string, salaryMin, salaryMax, page int) jobs.Filter {
	f := jobs.Filter{
		Search:   search,
		Location: location,
		Company:  company,
		Ordering: ordering,
	}
	if salaryMin >= 0 {
		f.SalaryMin = &salaryMin
	}
	if salaryMax >= 0 {
		f.SalaryMax = &salaryMax
	}
	return f.WithPage(page)
}

func (a *app) cmdJobs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ExitOnError)
	search, location, company, ordering, salaryMin, salaryMax, page := jobFilterFlags(fs)
	fs.Parse(args)

	result, err := a.jobs.Search(ctx, buildFilter(*search, *location, *company, *ordering, *salaryMin, *salaryMax, *page))
	if err != nil {
		return err
	}

	if len(result.Items) == 0 {
		fmt.Println("No job offers match.")
		return nil
	}
	for _, offer := range result.Items {
		printOffer(offer)
	}
	fmt.Printf("\nPage %d / %d (%d offers)\n", result.CurrentPage, result.TotalPages, result.TotalCount)
	return nil
}

func (a *app) cmdJob(ctx context.Context, args []string) error {
	id, err := idArg("job", args)
	if err != nil {
		return err
	}
	offer, err := a.jobs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			return fmt.Errorf("no job offer with id %d", id)
		}
		return err
	}
	printOffer(offer)
	if offer.Description != "" {
		fmt.Println("\n" + offer.Description)
	}
	return nil
}

func (a *app) cmdTrending(ctx context.Context) error {
	offers, err := a.jobs.Trending(ctx)
	if err != nil {
		return err
	}
	for _, offer := range offers {
		printOffer(offer)
	}
	return nil
}

func printOffer(offer jobs.JobOffer) {
	company := "—"
	if offer.Company != nil {
		company = offer.Company.Name
	}
	salary := ""
	if offer.Salary != nil {
		salary = fmt.Sprintf("  %d", *offer.Salary)
	}
	fmt.Printf("#%-5d %-40s %-24s %s%s\n", offer.ID, offer.Title, company, offer.Location, salary)
}

// ─── Application commands ────────────────────────────────────────────────────

func (a *app) cmdApply(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("apply requires a job offer id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid job offer id %q", args[0])
	}
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	message := fs.String("m", "", "application message")
	fs.Parse(args[1:])

	if !a.sess.IsAuthenticated() || !a.sess.IsCandidate() {
		return fmt.Errorf("applying requires a logged-in candidate")
	}
	if err := a.sess.EnsureFresh(ctx); err != nil {
		return sessionExpired(a.sess, err)
	}

	applied, err := a.apps.HasApplied(ctx, id)
	if err != nil {
		return err
	}
	if applied {
		fmt.Println("You already applied to this offer.")
		return nil
	}

	created, err := a.apps.Apply(ctx, id, *message)
	if err != nil {
		var applyErr *applications.ApplyError
		if errors.As(err, &applyErr) {
			return fmt.Errorf("application rejected: %v", applyErr.Err)
		}
		return err
	}
	fmt.Printf("Applied to %q (status: %s)\n", created.JobOfferTitle, created.Status)
	return nil
}

func (a *app) cmdApplications(ctx context.Context) error {
	if !a.sess.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}
	if err := a.sess.EnsureFresh(ctx); err != nil {
		return sessionExpired(a.sess, err)
	}

	apps, count, err := a.apps.List(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("No applications yet.")
		return nil
	}
	for _, app := range apps {
		fmt.Printf("#%-5d %-40s %-10s %s\n",
			app.ID, app.JobOfferTitle, app.Status, app.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// ─── Company commands ────────────────────────────────────────────────────────

func (a *app) cmdCompanies(ctx context.Context) error {
	list, _, err := a.comps.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range list {
		fmt.Printf("#%-5d %-30s %s\n", c.ID, c.Name, c.Sector)
	}
	return nil
}

func (a *app) cmdCompany(ctx context.Context, args []string) error {
	id, err := idArg("company", args)
	if err != nil {
		return err
	}
	c, err := a.comps.Get(ctx, id)
	if err != nil {
		if errors.Is(err, companies.ErrNotFound) {
			return fmt.Errorf("no company with id %d", id)
		}
		return err
	}
	fmt.Printf("%s\nsector: %s\n%s\n", c.Name, c.Sector, c.Description)
	return nil
}

// ─── Recruiter commands ──────────────────────────────────────────────────────

func (a *app) cmdPostJob(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post-job", flag.ExitOnError)
	title := fs.String("title", "", "job title")
	companyID := fs.Int("company-id", 0, "owning company id")
	location := fs.String("location", "", "location")
	salary := fs.Int("salary", -1, "salary (-1 = unspecified)")
	description := fs.String("description", "", "description")
	fs.Parse(args)

	if !a.sess.IsAuthenticated() || !a.sess.IsRecruiter() {
		return fmt.Errorf("posting a job requires a logged-in recruiter")
	}
	if *title == "" || *companyID == 0 {
		return fmt.Errorf("post-job requires -title and -company-id")
	}
	if err := a.sess.EnsureFresh(ctx); err != nil {
		return sessionExpired(a.sess, err)
	}

	job := jobs.NewJob{
		Title:       *title,
		CompanyID:   *companyID,
		Location:    *location,
		Description: *description,
	}
	if *salary >= 0 {
		job.Salary = salary
	}
	created, err := a.jobs.Create(ctx, job)
	if err != nil {
		return err
	}
	fmt.Printf("Posted job #%d %q\n", created.ID, created.Title)
	return nil
}

func (a *app) cmdPostCompany(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post-company", flag.ExitOnError)
	name := fs.String("name", "", "company name")
	sector := fs.String("sector", "", "sector")
	description := fs.String("description", "", "description")
	fs.Parse(args)

	if !a.sess.IsAuthenticated() || !a.sess.IsRecruiter() {
		return fmt.Errorf("creating a company requires a logged-in recruiter")
	}
	if *name == "" {
		return fmt.Errorf("post-company requires -name")
	}
	if err := a.sess.EnsureFresh(ctx); err != nil {
		return sessionExpired(a.sess, err)
	}

	created, err := a.comps.Create(ctx, companies.NewCompany{
		Name: *name, Sector: *sector, Description: *description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created company #%d %q\n", created.ID, created.Name)
	return nil
}

// ─── Profile command ─────────────────────────────────────────────────────────

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	save := fs.Bool("save", false, "write the given fields instead of reading")
	fullName := fs.String("full-name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	coverLetter := fs.String("cover-letter", "", "cover letter text")
	skills := fs.String("skills", "", "skills")
	experience := fs.String("experience", "", "experience")
	cvPath := fs.String("cv", "", "CV file to attach")
	fs.Parse(args)

	if !a.sess.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}
	if err := a.sess.EnsureFresh(ctx); err != nil {
		return sessionExpired(a.sess, err)
	}

	if !*save {
		p, err := a.profiles.Get(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\nskills: %s\nexperience: %s\n", p.FullName, p.Phone, p.Skills, p.Experience)
		if p.CVURL != nil {
			fmt.Printf("cv: %s\n", *p.CVURL)
		}
		return nil
	}

	changes := profile.Changes{
		FullName:    *fullName,
		Phone:       *phone,
		CoverLetter: *coverLetter,
		Skills:      *skills,
		Experience:  *experience,
	}
	var cv *profile.CV
	if *cvPath != "" {
		f, err := os.Open(*cvPath)
		if err != nil {
			return fmt.Errorf("open cv file: %w", err)
		}
		defer f.Close()
		cv = &profile.CV{FileName: f.Name(), Reader: f}
	}

	saved, err := a.profiles.Update(ctx, changes, cv)
	if err != nil {
		var saveErr *profile.SaveError
		if errors.As(err, &saveErr) {
			// Entered values survive the failure; report and keep them visible.
			return fmt.Errorf("profile not saved (your input was kept): %v", saveErr.Err)
		}
		return err
	}
	fmt.Printf("Profile saved for %s.\n", saved.FullName)
	return nil
}

// ─── Watch command ───────────────────────────────────────────────────────────

func (a *app) cmdWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	search, location, company, ordering, salaryMin, salaryMax, _ := jobFilterFlags(fs)
	name := fs.String("name", "default", "saved search name")
	exclude := fs.String("exclude", "", "comma-separated exclusion terms")
	fs.Parse(args)

	if a.cfg.DatabaseURL == "" {
		return fmt.Errorf("watch requires DATABASE_URL for feed persistence")
	}

	pool, err := db.NewPostgresPool(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	var rdb *redis.Client
	if a.cfg.RedisURL != "" {
		rdb, err = db.NewRedisClient(ctx, a.cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
	}

	var excluded []string
	for _, term := range strings.Split(*exclude, ",") {
		if term = strings.TrimSpace(term); term != "" {
			excluded = append(excluded, term)
		}
	}

	saved := watch.Saved{
		Name:     *name,
		Filter:   buildFilter(*search, *location, *company, *ordering, *salaryMin, *salaryMax, 1),
		Excluded: excluded,
	}

	feed := watch.NewFeedStore(pool)
	if seen, err := feed.Seen(ctx); err == nil {
		fmt.Printf("%d offer(s) in the feed so far.\n", seen)
	}

	watcher := watch.New(a.jobs, feed, rdb, []watch.Saved{saved}, a.cfg.WatchIntervalMinutes)
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Printf("Watching %q every %d minute(s) — Ctrl-C to stop.\n", *name, a.cfg.WatchIntervalMinutes)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	return nil
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func idArg(cmd string, args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("%s requires an id", cmd)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
