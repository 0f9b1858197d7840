package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kudagama/job-portal/internal/model"
	"github.com/kudagama/job-portal/internal/repository"
)

// In-memory repository fakes used across the service tests.

type fakeJobRepo struct {
	jobs   map[int64]*model.Job
	nextID int64
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[int64]*model.Job)}
}

func (f *fakeJobRepo) put(j model.Job) *model.Job {
	if j.ID == 0 {
		f.nextID++
		j.ID = f.nextID
	} else if j.ID > f.nextID {
		f.nextID = j.ID
	}
	stored := j
	f.jobs[stored.ID] = &stored
	return &stored
}

func (f *fakeJobRepo) Create(ctx context.Context, job *model.Job) error {
	f.nextID++
	job.ID = f.nextID
	job.CreatedAt = time.Now()
	job.UpdatedAt = job.CreatedAt
	stored := *job
	f.jobs[job.ID] = &stored
	return nil
}

func (f *fakeJobRepo) FindByID(ctx context.Context, id int64) (*model.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobRepo) FindOpen(ctx context.Context, filters model.JobFilters) ([]model.Job, error) {
	var jobs []model.Job
	for _, j := range f.jobs {
		if j.Status == model.JobStatusOpen {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

func (f *fakeJobRepo) FindByOwner(ctx context.Context, ownerID int64) ([]model.Job, error) {
	var jobs []model.Job
	for _, j := range f.jobs {
		if j.CreatedBy == ownerID {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

func (f *fakeJobRepo) Update(ctx context.Context, job *model.Job) error {
	existing, ok := f.jobs[job.ID]
	if !ok || existing.CreatedBy != job.CreatedBy {
		return fmt.Errorf("job not found or not owned by user for update")
	}
	stored := *job
	f.jobs[job.ID] = &stored
	return nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.jobs[id]; !ok {
		return fmt.Errorf("job not found for deletion")
	}
	delete(f.jobs, id)
	return nil
}

type fakeAppRepo struct {
	apps    map[int64]*model.Application
	jobRepo *fakeJobRepo
	nextID  int64
}

func newFakeAppRepo(jobRepo *fakeJobRepo) *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[int64]*model.Application), jobRepo: jobRepo}
}

func (f *fakeAppRepo) put(a model.Application) *model.Application {
	if a.ID == 0 {
		f.nextID++
		a.ID = f.nextID
	} else if a.ID > f.nextID {
		f.nextID = a.ID
	}
	stored := a
	f.apps[stored.ID] = &stored
	return &stored
}

func (f *fakeAppRepo) Create(ctx context.Context, app *model.Application) error {
	f.nextID++
	app.ID = f.nextID
	app.AppliedAt = time.Now()
	stored := *app
	f.apps[app.ID] = &stored
	return nil
}

func (f *fakeAppRepo) FindByID(ctx context.Context, id int64) (*model.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppRepo) FindByJobAndApplicant(ctx context.Context, jobID, applicantID int64) (*model.Application, error) {
	for _, a := range f.apps {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAppRepo) FindByApplicant(ctx context.Context, applicantID int64) ([]model.MyApplication, error) {
	var out []model.MyApplication
	for _, a := range f.apps {
		if a.ApplicantID == applicantID {
			out = append(out, model.MyApplication{Application: *a})
		}
	}
	return out, nil
}

func (f *fakeAppRepo) FindByJob(ctx context.Context, jobID int64) ([]model.JobApplication, error) {
	var out []model.JobApplication
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, model.JobApplication{Application: *a})
		}
	}
	return out, nil
}

func (f *fakeAppRepo) FindActiveByJobIDs(ctx context.Context, jobIDs []int64) ([]model.Application, error) {
	ids := make(map[int64]bool, len(jobIDs))
	for _, id := range jobIDs {
		ids[id] = true
	}
	var out []model.Application
	for _, a := range f.apps {
		if ids[a.JobID] && (a.Status == model.ApplicationStatusAccepted || a.Status == model.ApplicationStatusFinished) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppRepo) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	a, ok := f.apps[id]
	if !ok || a.Status != from {
		return repository.ErrStatusConflict
	}
	a.Status = to
	return nil
}

// Accept mirrors the production transaction: the job close is conditional
// on the job still being open.
func (f *fakeAppRepo) Accept(ctx context.Context, appID, jobID int64) error {
	job, ok := f.jobRepo.jobs[jobID]
	if !ok || job.Status != model.JobStatusOpen {
		return repository.ErrJobNotOpen
	}
	a, ok := f.apps[appID]
	if !ok || a.Status != model.ApplicationStatusPending {
		return repository.ErrStatusConflict
	}
	job.Status = model.JobStatusClosed
	a.Status = model.ApplicationStatusAccepted
	return nil
}

type fakeUserRepo struct {
	users map[int64]*model.User
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[int64]*model.User)}
	for _, u := range users {
		cp := u
		f.users[u.ID] = &cp
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = int64(len(f.users) + 1)
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user not found for profile update")
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

type fakeReviewRepo struct {
	reviews map[int64]*model.Review
	nextID  int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[int64]*model.Review)}
}

func (f *fakeReviewRepo) Create(ctx context.Context, review *model.Review) error {
	f.nextID++
	review.ID = f.nextID
	review.CreatedAt = time.Now()
	cp := *review
	f.reviews[review.ID] = &cp
	return nil
}

func (f *fakeReviewRepo) FindByTriple(ctx context.Context, reviewerID, revieweeID, jobID int64) (*model.Review, error) {
	for _, r := range f.reviews {
		if r.ReviewerID == reviewerID && r.RevieweeID == revieweeID && r.JobID == jobID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByReviewee(ctx context.Context, revieweeID int64) ([]model.UserReview, error) {
	var out []model.UserReview
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, model.UserReview{Review: *r})
		}
	}
	return out, nil
}
