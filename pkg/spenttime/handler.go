package spenttime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spenttime/spenttime/internal/rest"
	"github.com/spenttime/spenttime/internal/utils"
	"github.com/spenttime/spenttime/pkg/activity"
	"github.com/spenttime/spenttime/pkg/issue"
	"github.com/spenttime/spenttime/pkg/project"
	"github.com/spenttime/spenttime/pkg/report"
	"github.com/spenttime/spenttime/pkg/timeentry"
	"github.com/spenttime/spenttime/pkg/user"
	"github.com/spenttime/spenttime/pkg/visibility"
)

// Handler is the HTTP surface of the spent-time module: the report form,
// the report itself, and single-entry mutations.
type Handler struct {
	users      user.Service
	resolver   *visibility.Resolver
	reports    report.Service
	entries    timeentry.Service
	projects   project.Service
	issues     issue.Repo
	activities activity.Repo
	clock      utils.Clock
	// defaultPeriodDays is the rolling window applied when a request carries
	// no explicit dates. A presentation default, never applied by the builder.
	defaultPeriodDays int
}

func NewHandler(
	users user.Service,
	resolver *visibility.Resolver,
	reports report.Service,
	entries timeentry.Service,
	projects project.Service,
	issues issue.Repo,
	activities activity.Repo,
	clock utils.Clock,
	defaultPeriodDays int,
) *Handler {
	if defaultPeriodDays <= 0 {
		defaultPeriodDays = 7
	}
	return &Handler{
		users:             users,
		resolver:          resolver,
		reports:           reports,
		entries:           entries,
		projects:          projects,
		issues:            issues,
		activities:        activities,
		clock:             clock,
		defaultPeriodDays: defaultPeriodDays,
	}
}

// GetForm godoc
// @Summary Data to bootstrap the spent-time form
// @Description Visible users, loggable projects, activities, and the report for the default period
// @Tags SpentTime
// @Produce json
// @Success 200 {object} FormDTO
// @Failure 403 {object} rest.ErrorResponse "No user in request"
// @Router /api/spenttime/form [get]
func (h *Handler) GetForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requester, err := h.users.GetCurrentUser(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	scope, err := h.resolver.Resolve(ctx, requester)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	visibleUsers, err := h.users.FindUsersByIds(ctx, scope.UserIds)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	projects, err := h.projects.ProjectsOfUser(ctx, requester.Id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	loggable := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if p.LogTimeEnabled {
			loggable = append(loggable, p)
		}
	}

	activities, err := h.activities.GetAll(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	from, to := h.defaultWindow()
	builtReport, err := h.reports.Build(ctx, report.Filter{From: from, To: to, UserIds: scope.UserIds})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, FormDTO{
		Users:      usersToFormDTO(visibleUsers),
		Projects:   projectsToFormDTO(loggable),
		Activities: activitiesToFormDTO(activities),
		Report:     reportToDTO(builtReport),
	})
}

// GetReport godoc
// @Summary Spent-time report for a date range
// @Description Aggregates matching entries grouped by day/project/issue/activity, restricted to the requester's visibility scope
// @Tags SpentTime
// @Produce json
// @Param from query string false "Start date (2006-01-02), defaults to a rolling window"
// @Param to query string false "End date (2006-01-02)"
// @Param userId query int false "Restrict to a single user"
// @Param projectId query int false "Restrict to a single project"
// @Success 200 {object} ReportDTO
// @Failure 400 {object} rest.ErrorResponse "Malformed date range"
// @Router /api/spenttime/report [get]
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requester, err := h.users.GetCurrentUser(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	scope, err := h.resolver.Resolve(ctx, requester)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	from, to, err := h.windowFromQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var requested []int
	if rawUserId := r.URL.Query().Get("userId"); rawUserId != "" {
		userId, err := strconv.Atoi(rawUserId)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid userId", "userId must be an integer")
			return
		}
		requested = []int{userId}
	}

	var projectIds []int
	if rawProjectId := r.URL.Query().Get("projectId"); rawProjectId != "" {
		projectId, err := strconv.Atoi(rawProjectId)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid projectId", "projectId must be an integer")
			return
		}
		projectIds = []int{projectId}
	}

	builtReport, err := h.reports.Build(ctx, report.Filter{
		From:       from,
		To:         to,
		UserIds:    scope.Restrict(requested),
		ProjectIds: projectIds,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, reportToDTO(builtReport))
}

// CreateEntry godoc
// @Summary Log a new time entry
// @Tags SpentTime
// @Accept json
// @Produce json
// @Param entry body NewTimeEntryDTO true "Entry"
// @Success 201 {object} MutationResponseDTO
// @Failure 400 {object} rest.ErrorResponse "Validation failure"
// @Failure 403 {object} rest.ErrorResponse "Project or entry not editable"
// @Failure 404 {object} rest.ErrorResponse "Unknown project or issue"
// @Router /api/spenttime/entry [post]
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var dto NewTimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	entry, err := h.entries.Create(ctx, timeentry.NewEntryInput{
		ProjectId:  dto.ProjectId,
		IssueId:    dto.IssueId,
		ActivityId: dto.ActivityId,
		Hours:      dto.Hours,
		SpentOn:    dto.SpentOn,
		Comments:   dto.Comments,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	from, to, err := h.windowFromQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// The new entry may fall outside the displayed window; shift the nearest
	// boundary so it never silently drops out of view.
	from, to = report.ExtendRange(from, to, entry.SpentOn)

	h.writeMutationResponse(ctx, w, http.StatusCreated, &entry, from, to)
}

// UpdateEntry godoc
// @Summary Update a time entry in place
// @Tags SpentTime
// @Accept json
// @Produce json
// @Param entryId path int true "Entry ID"
// @Param entry body UpdateTimeEntryDTO true "Changed attributes"
// @Success 200 {object} MutationResponseDTO
// @Failure 403 {object} rest.ErrorResponse "Not allowed to edit"
// @Failure 404 {object} rest.ErrorResponse "Unknown entry"
// @Router /api/spenttime/entry/{entryId} [put]
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryId, err := entryIdFromPath(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid entry id", "")
		return
	}

	var dto UpdateTimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	entry, err := h.entries.Update(ctx, entryId, timeentry.UpdateInput{
		Hours:      dto.Hours,
		Comments:   dto.Comments,
		ActivityId: dto.ActivityId,
		SpentOn:    dto.SpentOn,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	from, to, err := h.windowFromQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	from, to = report.ExtendRange(from, to, entry.SpentOn)

	h.writeMutationResponse(ctx, w, http.StatusOK, &entry, from, to)
}

// DeleteEntry godoc
// @Summary Delete a time entry
// @Tags SpentTime
// @Produce json
// @Param entryId path int true "Entry ID"
// @Success 200 {object} MutationResponseDTO
// @Failure 403 {object} rest.ErrorResponse "Not allowed to edit"
// @Failure 404 {object} rest.ErrorResponse "Unknown entry"
// @Router /api/spenttime/entry/{entryId} [delete]
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryId, err := entryIdFromPath(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid entry id", "")
		return
	}

	if _, err := h.entries.Delete(ctx, entryId); err != nil {
		writeDomainError(w, err)
		return
	}

	from, to, err := h.windowFromQuery(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.writeMutationResponse(ctx, w, http.StatusOK, nil, from, to)
}

// NotifyEntry godoc
// @Summary Re-fire the post-create notification for an entry
// @Tags SpentTime
// @Produce json
// @Param entryId path int true "Entry ID"
// @Success 200 {object} NotifyResponseDTO
// @Failure 404 {object} rest.ErrorResponse "Unknown entry"
// @Failure 502 {object} rest.ErrorResponse "Notification failed"
// @Router /api/spenttime/entry/{entryId}/notify [post]
func (h *Handler) NotifyEntry(w http.ResponseWriter, r *http.Request) {
	entryId, err := entryIdFromPath(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid entry id", "")
		return
	}

	externalId, err := h.entries.Notify(r.Context(), entryId)
	if err != nil {
		if errors.Is(err, timeentry.ErrEntryNotFound) {
			writeDomainError(w, err)
			return
		}
		log.Warnf("notification retry failed for entry %d: %v", entryId, err)
		rest.WriteError(w, http.StatusBadGateway, "Notification failed", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, NotifyResponseDTO{EntryId: entryId, ExternalId: externalId})
}

// GetProjectIssues godoc
// @Summary Open issues of a project, for the issue selector
// @Tags SpentTime
// @Produce json
// @Param projectId path int true "Project ID"
// @Success 200 {array} IssueDTO
// @Failure 404 {object} rest.ErrorResponse "Unknown project"
// @Router /api/spenttime/project/{projectId}/issues [get]
func (h *Handler) GetProjectIssues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rawProjectId := mux.Vars(r)["projectId"]
	projectId, err := strconv.Atoi(rawProjectId)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid project id", "")
		return
	}

	p, err := h.projects.GetProject(ctx, projectId)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Project not found", "")
			return
		}
		writeDomainError(w, err)
		return
	}

	issues, err := h.issues.OpenIssuesOfProject(ctx, p.Id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, issuesToDTO(issues))
}

// writeMutationResponse rebuilds the requester's report for the given window
// and writes it together with the mutated entry.
func (h *Handler) writeMutationResponse(ctx context.Context, w http.ResponseWriter, status int, entry *timeentry.TimeEntry, from, to time.Time) {
	requesterId, err := user.CurrentId(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	builtReport, err := h.reports.Build(ctx, report.Filter{From: from, To: to, UserIds: []int{requesterId}})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	response := MutationResponseDTO{Report: reportToDTO(builtReport)}
	if entry != nil {
		dto := entryToDTO(*entry)
		response.Entry = &dto
	}
	rest.WriteJSON(w, status, response)
}

// windowFromQuery reads the displayed date window from the request, falling
// back to the rolling default period when no dates are given. Supplying only
// one boundary is an error.
func (h *Handler) windowFromQuery(r *http.Request) (time.Time, time.Time, error) {
	fromRaw := r.URL.Query().Get("from")
	toRaw := r.URL.Query().Get("to")
	if fromRaw == "" && toRaw == "" {
		from, to := h.defaultWindow()
		return from, to, nil
	}
	return report.NormalizeRange(fromRaw, toRaw)
}

func (h *Handler) defaultWindow() (time.Time, time.Time) {
	to := dateOnly(h.clock.Now())
	from := to.AddDate(0, 0, -(h.defaultPeriodDays - 1))
	return from, to
}

// dateOnly truncates a timestamp to its UTC calendar date, matching how
// spent_on dates are stored and compared.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func entryIdFromPath(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["entryId"])
}

// writeDomainError translates the error taxonomy of the spent-time module
// into a structured HTTP failure.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusForbidden, "No user in request", "")
	case errors.Is(err, timeentry.ErrProjectMandatory):
		rest.WriteError(w, http.StatusBadRequest, "Project is mandatory", "")
	case errors.Is(err, timeentry.ErrInvalidDate):
		rest.WriteError(w, http.StatusBadRequest, "Invalid date", "spentOn must be a valid 2006-01-02 date")
	case errors.Is(err, timeentry.ErrInvalidHours):
		rest.WriteError(w, http.StatusBadRequest, "Invalid hours", "hours must be a plain number")
	case errors.Is(err, report.ErrInvalidDate):
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", "from and to must both be valid 2006-01-02 dates")
	case errors.Is(err, report.ErrInvalidRange):
		rest.WriteError(w, http.StatusBadRequest, "Invalid date range", "from must not be after to")
	case errors.Is(err, timeentry.ErrProjectNotFound):
		rest.WriteError(w, http.StatusNotFound, "Project not found", "")
	case errors.Is(err, timeentry.ErrIssueNotFound):
		rest.WriteError(w, http.StatusNotFound, "Issue not found", "")
	case errors.Is(err, timeentry.ErrEntryNotFound):
		rest.WriteError(w, http.StatusNotFound, "Time entry not found", "")
	case errors.Is(err, timeentry.ErrIssueNotInProject):
		rest.WriteError(w, http.StatusBadRequest, "Issue does not belong to the selected project", "")
	case errors.Is(err, timeentry.ErrProjectNotAllowed):
		rest.WriteError(w, http.StatusForbidden, "Project does not allow logging time", "")
	case errors.Is(err, timeentry.ErrForbidden):
		rest.WriteError(w, http.StatusForbidden, "Not allowed to edit this time entry", "")
	default:
		// Infrastructure failures are logged, never echoed to the client.
		log.Errorf("request failed: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}
