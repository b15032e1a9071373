package app

import (
	"database/sql"

	log "github.com/sirupsen/logrus"
	"github.com/spenttime/spenttime/internal/config"
	"github.com/spenttime/spenttime/internal/eventbus"
	"github.com/spenttime/spenttime/internal/utils"
	"github.com/spenttime/spenttime/pkg/activity"
	"github.com/spenttime/spenttime/pkg/issue"
	"github.com/spenttime/spenttime/pkg/permission"
	"github.com/spenttime/spenttime/pkg/project"
	"github.com/spenttime/spenttime/pkg/report"
	"github.com/spenttime/spenttime/pkg/spenttime"
	"github.com/spenttime/spenttime/pkg/timeentry"
	"github.com/spenttime/spenttime/pkg/user"
	"github.com/spenttime/spenttime/pkg/visibility"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	ProjectService   project.Service
	IssueRepo        issue.Repo
	ActivityRepo     activity.Repo
	PermissionRepo   permission.Repo
	Permissions      permission.Service
	Resolver         *visibility.Resolver
	TimeEntryRepo    timeentry.Repository
	TimeEntryHooks   timeentry.Hooks
	TimeEntries      timeentry.Service
	ReportService    report.Service
	SpentTimeHandler *spenttime.Handler

	EventBus *eventbus.EventBus
	Clock    utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	userRepo := user.NewUserRepo(db)
	deps.UserService = user.NewUserService(userRepo)
	deps.UserHandler = user.NewHandler(deps.UserService)

	projectRepo := project.NewRepo(db)
	deps.ProjectService = project.NewService(projectRepo)
	deps.IssueRepo = issue.NewRepo(db)
	deps.ActivityRepo = activity.NewRepo(db)

	deps.PermissionRepo = permission.NewRepo(db)
	deps.Permissions = permission.NewService(deps.PermissionRepo)
	deps.Resolver = visibility.NewResolver(deps.Permissions, userRepo, projectRepo)

	deps.EventBus = eventbus.NewEventBus()
	deps.EventBus.Subscribe(eventbus.TimeEntryCreatedType, func(e eventbus.Event) error {
		created, ok := e.Data.(eventbus.TimeEntryCreated)
		if !ok {
			return nil
		}
		log.Infof("time entry %d created: user %d logged %.2fh on project %d",
			created.EntryId, created.UserId, created.Hours, created.ProjectId)
		return nil
	})

	deps.TimeEntryRepo = timeentry.NewRepository(db)
	deps.TimeEntryHooks = timeentry.NewBusHooks(deps.EventBus)
	validator := timeentry.NewValidator(deps.ProjectService, deps.IssueRepo, deps.Permissions)
	deps.TimeEntries = timeentry.NewService(deps.TimeEntryRepo, validator, deps.Permissions, deps.TimeEntryHooks)

	deps.ReportService = report.NewService(deps.TimeEntryRepo)

	deps.Clock = &utils.SystemClock{}
	deps.SpentTimeHandler = spenttime.NewHandler(
		deps.UserService,
		deps.Resolver,
		deps.ReportService,
		deps.TimeEntries,
		deps.ProjectService,
		deps.IssueRepo,
		deps.ActivityRepo,
		deps.Clock,
		cfg.Report.DefaultPeriodDays,
	)

	return deps
}
