// jobdeck — command-line front end for the job-board service.
//
// Each subcommand maps 1:1 onto one core operation; the command layer is
// thin glue that gates on the session predicates and renders results. All
// real behaviour lives under internal/.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"jobdeck/board-client/internal/applications"
	"jobdeck/board-client/internal/companies"
	"jobdeck/board-client/internal/config"
	"jobdeck/board-client/internal/db"
	"jobdeck/board-client/internal/gateway"
	"jobdeck/board-client/internal/jobs"
	"jobdeck/board-client/internal/profile"
	"jobdeck/board-client/internal/session"
	"jobdeck/board-client/internal/tokenstore"
)

const version = "1.0.0"

// app bundles the wired services for the command handlers.
type app struct {
	cfg      *config.Config
	sess     *session.Session
	jobs     *jobs.Service
	apps     *applications.Workflow
	comps    *companies.Service
	profiles *profile.Service
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[jobdeck] Config error: %v", err)
	}

	ctx := context.Background()

	store, err := newTokenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("[jobdeck] Token store: %v", err)
	}

	// The gateway reads the token through a closure so it always sees the
	// session's current value, including rotations mid-process.
	var sess *session.Session
	gw := gateway.New(cfg.APIBaseURL,
		gateway.WithTimeout(time.Duration(cfg.HTTPTimeoutSeconds)*time.Second),
		gateway.WithTokenFunc(func() string {
			if sess == nil {
				return ""
			}
			return sess.AccessToken()
		}),
	)
	sess = session.New(store, gw)

	a := &app{
		cfg:      cfg,
		sess:     sess,
		jobs:     jobs.NewService(gw),
		apps:     applications.NewWorkflow(gw),
		comps:    companies.NewService(gw),
		profiles: profile.NewService(gw),
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := a.run(ctx, cmd, args); err != nil {
		log.Fatalf("[jobdeck] %v", err)
	}
}

func newTokenStore(ctx context.Context, cfg *config.Config) (tokenstore.Store, error) {
	if cfg.SessionBackend == "redis" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return tokenstore.NewRedisStore(ctx, rdb, ""), nil
	}
	return tokenstore.NewFileStore(cfg.StateFile)
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout()
	case "register":
		return a.cmdRegister(ctx, args)
	case "me":
		return a.cmdMe(ctx)
	case "refresh":
		return a.cmdRefresh(ctx)
	case "jobs":
		return a.cmdJobs(ctx, args)
	case "job":
		return a.cmdJob(ctx, args)
	case "trending":
		return a.cmdTrending(ctx)
	case "apply":
		return a.cmdApply(ctx, args)
	case "applications":
		return a.cmdApplications(ctx)
	case "companies":
		return a.cmdCompanies(ctx)
	case "company":
		return a.cmdCompany(ctx, args)
	case "post-job":
		return a.cmdPostJob(ctx, args)
	case "post-company":
		return a.cmdPostCompany(ctx, args)
	case "profile":
		return a.cmdProfile(ctx, args)
	case "watch":
		return a.cmdWatch(ctx, args)
	case "version":
		fmt.Println("jobdeck", version)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: jobdeck <command> [flags]

Session:
  login -u USER -p PASS      authenticate and resolve role
  logout                     clear the stored session
  register -u USER -p PASS   create an account (-role candidate|recruiter|both)
  me                         show the current user
  refresh                    mint a new access token

Jobs:
  jobs                       search listings (-search -location -company
                             -salary-min -salary-max -ordering -page)
  job ID                     show one listing
  trending                   show trending listings

Applications (candidate):
  apply ID [-m MESSAGE]      apply to a listing
  applications               list own applications

Companies:
  companies                  list companies
  company ID                 show one company

Recruiter:
  post-job                   create a listing (-title -company-id -location
                             -salary -description)
  post-company               create a company (-name -sector -description)

Profile:
  profile [-save] [...]      show or update own profile (-cv FILE to attach)

Watch:
  watch -search TERM         poll a saved search for new offers`)
}
