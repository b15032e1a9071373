package spenttime

import (
	"github.com/spenttime/spenttime/pkg/activity"
	"github.com/spenttime/spenttime/pkg/issue"
	"github.com/spenttime/spenttime/pkg/project"
	"github.com/spenttime/spenttime/pkg/report"
	"github.com/spenttime/spenttime/pkg/timeentry"
	"github.com/spenttime/spenttime/pkg/user"
)

type TimeEntryDTO struct {
	Id         int     `json:"id"`
	UserId     int     `json:"userId"`
	ProjectId  int     `json:"projectId"`
	IssueId    int     `json:"issueId,omitempty"`
	ActivityId int     `json:"activityId"`
	Hours      float64 `json:"hours"`
	SpentOn    string  `json:"spentOn"`
	Comments   string  `json:"comments,omitempty"`
}

type ReportGroupDTO struct {
	SpentOn    string         `json:"spentOn"`
	ProjectId  int            `json:"projectId"`
	IssueId    int            `json:"issueId,omitempty"`
	ActivityId int            `json:"activityId"`
	Hours      float64        `json:"hours"`
	Entries    []TimeEntryDTO `json:"entries"`
}

type ReportDTO struct {
	From       string           `json:"from"`
	To         string           `json:"to"`
	Groups     []ReportGroupDTO `json:"groups"`
	TotalHours float64          `json:"totalHours"`
}

type NewTimeEntryDTO struct {
	ProjectId  int    `json:"projectId"`
	IssueId    int    `json:"issueId,omitempty"`
	ActivityId int    `json:"activityId"`
	Hours      string `json:"hours"`
	SpentOn    string `json:"spentOn"`
	Comments   string `json:"comments,omitempty"`
}

type UpdateTimeEntryDTO struct {
	Hours      *string `json:"hours,omitempty"`
	Comments   *string `json:"comments,omitempty"`
	ActivityId *int    `json:"activityId,omitempty"`
	SpentOn    *string `json:"spentOn,omitempty"`
}

// MutationResponseDTO is returned by every successful entry mutation: the
// affected entry (absent for deletes) plus the freshly rebuilt report.
type MutationResponseDTO struct {
	Entry  *TimeEntryDTO `json:"entry,omitempty"`
	Report ReportDTO     `json:"report"`
}

type FormDTO struct {
	Users      []FormUserDTO     `json:"users"`
	Projects   []FormProjectDTO  `json:"projects"`
	Activities []FormActivityDTO `json:"activities"`
	Report     ReportDTO         `json:"report"`
}

type FormUserDTO struct {
	Id          int    `json:"id"`
	DisplayName string `json:"displayName"`
}

type FormProjectDTO struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

type FormActivityDTO struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type IssueDTO struct {
	Id        int    `json:"id"`
	ProjectId int    `json:"projectId"`
	Subject   string `json:"subject"`
}

type NotifyResponseDTO struct {
	EntryId    int    `json:"entryId"`
	ExternalId string `json:"externalId,omitempty"`
}

func entryToDTO(e timeentry.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		Id:         e.Id,
		UserId:     e.UserId,
		ProjectId:  e.ProjectId,
		IssueId:    e.IssueId,
		ActivityId: e.ActivityId,
		Hours:      e.Hours,
		SpentOn:    e.SpentOn.Format(timeentry.DateFormat),
		Comments:   e.Comments,
	}
}

func reportToDTO(r report.Report) ReportDTO {
	groups := make([]ReportGroupDTO, 0, len(r.Groups))
	for _, group := range r.Groups {
		entries := make([]TimeEntryDTO, 0, len(group.Entries))
		for _, entry := range group.Entries {
			entries = append(entries, entryToDTO(entry))
		}
		groups = append(groups, ReportGroupDTO{
			SpentOn:    group.SpentOn.Format(timeentry.DateFormat),
			ProjectId:  group.ProjectId,
			IssueId:    group.IssueId,
			ActivityId: group.ActivityId,
			Hours:      group.Hours,
			Entries:    entries,
		})
	}
	return ReportDTO{
		From:       r.From.Format(timeentry.DateFormat),
		To:         r.To.Format(timeentry.DateFormat),
		Groups:     groups,
		TotalHours: r.TotalHours,
	}
}

func usersToFormDTO(users []user.User) []FormUserDTO {
	dtos := make([]FormUserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, FormUserDTO{Id: u.Id, DisplayName: u.DisplayName})
	}
	return dtos
}

func projectsToFormDTO(projects []project.Project) []FormProjectDTO {
	dtos := make([]FormProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, FormProjectDTO{Id: p.Id, Name: p.Name, Identifier: p.Identifier})
	}
	return dtos
}

func activitiesToFormDTO(activities []activity.Activity) []FormActivityDTO {
	dtos := make([]FormActivityDTO, 0, len(activities))
	for _, a := range activities {
		dtos = append(dtos, FormActivityDTO{Id: a.Id, Name: a.Name})
	}
	return dtos
}

func issuesToDTO(issues []issue.Issue) []IssueDTO {
	dtos := make([]IssueDTO, 0, len(issues))
	for _, i := range issues {
		dtos = append(dtos, IssueDTO{Id: i.Id, ProjectId: i.ProjectId, Subject: i.Subject})
	}
	return dtos
}
