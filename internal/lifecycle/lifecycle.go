package lifecycle

import (
	"errors"
	"sort"

	"github.com/kudagama/job-portal/internal/model"
)

// Transition defines a valid application status change
type Transition struct {
	From string
	To   string
}

// validTransitions is the authoritative state machine definition.
// Pending -> Accepted -> Finished, or Pending -> Rejected.
var validTransitions = []Transition{
	{From: model.ApplicationStatusPending, To: model.ApplicationStatusAccepted},
	{From: model.ApplicationStatusPending, To: model.ApplicationStatusRejected},
	{From: model.ApplicationStatusAccepted, To: model.ApplicationStatusFinished},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next statuses from a given status
func ValidTransitionsFrom(status string) []string {
	var nexts []string
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks whether an application may move between two statuses
func CanTransition(from, to string) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	msg := "invalid transition: " + from + " -> " + to + ". Valid transitions from " + from + " are: " + describeValidFrom(from)
	return errors.New(msg)
}

func describeValidFrom(status string) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += s
	}
	return result
}

// Detailed status values shown on the employer dashboard
const (
	DetailedOpen       = "Open"
	DetailedInProgress = "In Progress"
	DetailedFinished   = "Finished"
	DetailedClosed     = "Closed"
)

// Projection is the read-time view of a job's lifecycle. Status is the
// status to display (Closed whenever an accepted or finished application
// exists, even if the stored job status has drifted). Ambiguous is set when
// more than one application on the job reached Accepted/Finished, which
// indicates a data-integrity problem upstream.
type Projection struct {
	Status         string
	DetailedStatus string
	Ambiguous      bool
}

// ProjectDetailedStatus computes the dashboard view of a job from the job
// and its applications. It is a pure function; nothing is persisted.
// When several applications reached Accepted/Finished the earliest one by
// applied time (then by ID) wins.
func ProjectDetailedStatus(job model.Job, apps []model.Application) Projection {
	var active []model.Application
	for _, a := range apps {
		if a.JobID != job.ID {
			continue
		}
		if a.Status == model.ApplicationStatusAccepted || a.Status == model.ApplicationStatusFinished {
			active = append(active, a)
		}
	}

	if len(active) == 0 {
		if job.Status == model.JobStatusClosed {
			return Projection{Status: model.JobStatusClosed, DetailedStatus: DetailedClosed}
		}
		return Projection{Status: model.JobStatusOpen, DetailedStatus: DetailedOpen}
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].AppliedAt.Equal(active[j].AppliedAt) {
			return active[i].ID < active[j].ID
		}
		return active[i].AppliedAt.Before(active[j].AppliedAt)
	})

	p := Projection{Status: model.JobStatusClosed, Ambiguous: len(active) > 1}
	if active[0].Status == model.ApplicationStatusFinished {
		p.DetailedStatus = DetailedFinished
	} else {
		p.DetailedStatus = DetailedInProgress
	}
	return p
}
