package tailors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/startailors/tailorshop/internal/api"
	"github.com/startailors/tailorshop/internal/billing"
	"github.com/startailors/tailorshop/internal/platform/httpx"
	"github.com/startailors/tailorshop/internal/shop"
)

const listLimit = 1000

// Backend is the slice of the API client the workshop flows need.
type Backend interface {
	ListTailors(ctx context.Context, params api.ListParams) ([]shop.Tailor, shop.Pagination, error)
	CreateTailor(ctx context.Context, in api.TailorInput) (shop.Tailor, error)
	UpdateTailorStatus(ctx context.Context, id string, status shop.TailorStatus) (api.Ack, error)
	ListJobs(ctx context.Context, params api.ListParams) ([]shop.Job, shop.Pagination, error)
	GetJob(ctx context.Context, id string) (shop.Job, error)
	CreateJob(ctx context.Context, in api.JobInput) (shop.Job, error)
	UpdateJobStatus(ctx context.Context, id string, status shop.JobStatus) (api.Ack, error)
	GetBill(ctx context.Context, id string) (shop.Bill, error)
	ListBills(ctx context.Context, params api.ListParams) ([]shop.Bill, shop.Pagination, error)
}

// Service implements the workshop operations.
type Service struct {
	backend  Backend
	validate *validator.Validate
	logger   *slog.Logger
}

// NewService constructs the workshop service.
func NewService(backend Backend, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{backend: backend, validate: validator.New(), logger: logger}
}

// JobDraft is a job being assigned. Measurements is JSON object text.
type JobDraft struct {
	BillID        string        `json:"bill_id,omitempty"`
	TailorID      string        `json:"tailor_id" validate:"required"`
	CustomerName  string        `json:"customer_name" validate:"required"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	ItemType      string        `json:"item_type" validate:"required"`
	Description   string        `json:"description,omitempty"`
	Measurements  string        `json:"measurements,omitempty"`
	Instructions  string        `json:"instructions,omitempty"`
	Priority      shop.Priority `json:"priority,omitempty"`
	DueDate       string        `json:"due_date,omitempty"`
}

// PrefillFromBill copies the bill's customer, first garment, combined item
// descriptions, instructions and due date into the draft.
func PrefillFromBill(d JobDraft, b shop.Bill) JobDraft {
	d.BillID = b.ID
	d.CustomerName = b.CustomerName
	d.CustomerPhone = b.CustomerPhone
	d.Instructions = b.SpecialInstructions
	d.DueDate = dateOnly(b.DueDate)
	d.ItemType = ""
	d.Measurements = ""
	if len(b.Items) > 0 {
		first := b.Items[0]
		d.ItemType = first.Type
		if len(first.Measurements) > 0 {
			d.Measurements = encodeMeasurements(first.Measurements)
		}
	}
	parts := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		parts = append(parts, item.Type+": "+item.Description)
	}
	d.Description = strings.Join(parts, "; ")
	return d
}

func dateOnly(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func encodeMeasurements(m map[string]string) string {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return ""
	}
	return string(raw)
}

// Prefill loads a bill and turns it into a job draft.
func (s *Service) Prefill(ctx context.Context, billID string) (JobDraft, error) {
	b, err := s.backend.GetBill(ctx, billID)
	if err != nil {
		return JobDraft{}, fmt.Errorf("load bill %s: %w", billID, err)
	}
	return PrefillFromBill(JobDraft{Priority: shop.PriorityMedium}, b), nil
}

// AssignJob validates the draft and creates a job in status assigned.
func (s *Service) AssignJob(ctx context.Context, d JobDraft) (shop.Job, error) {
	d.TailorID = strings.TrimSpace(d.TailorID)
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.ItemType = strings.TrimSpace(d.ItemType)
	if d.Priority == "" {
		d.Priority = shop.PriorityMedium
	}
	if err := s.validate.Struct(d); err != nil {
		return shop.Job{}, httpx.FromValidator(err)
	}
	if !shop.ValidPriority(d.Priority) {
		return shop.Job{}, httpx.Invalid("priority", "must be one of: low medium high")
	}
	measurements, err := billing.ParseMeasurements(d.Measurements)
	if err != nil {
		return shop.Job{}, httpx.Invalid("measurements", "Invalid measurements format. Please use valid JSON")
	}

	title := d.ItemType
	if g, ok := billing.LookupGarment(d.ItemType); ok {
		title = g.Label
	}
	in := api.JobInput{
		BillID:        d.BillID,
		TailorID:      d.TailorID,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		Items: []api.JobItemInput{{
			Type:         d.ItemType,
			Description:  d.Description,
			Measurements: measurements,
		}},
		Instructions: d.Instructions,
		Priority:     string(d.Priority),
		DueDate:      d.DueDate,
		Title:        title,
		Description:  d.Instructions,
	}
	job, err := s.backend.CreateJob(ctx, in)
	if err != nil {
		return shop.Job{}, fmt.Errorf("create job: %w", err)
	}
	if job.Status == "" {
		job.Status = shop.JobAssigned
	}
	s.logger.Info("job assigned",
		slog.String("job_id", job.ID),
		slog.String("tailor_id", d.TailorID),
		slog.String("bill_id", d.BillID))
	return job, nil
}

// UpdateJobStatus moves a job to status to. When from is empty the current
// status is read from the backend first.
func (s *Service) UpdateJobStatus(ctx context.Context, jobID string, from, to shop.JobStatus) error {
	if !to.Known() {
		return httpx.Invalid("status", "unknown job status "+string(to))
	}
	if from == "" {
		job, err := s.backend.GetJob(ctx, jobID)
		if err != nil {
			return fmt.Errorf("load job %s: %w", jobID, err)
		}
		from = job.Status
		if from == "" {
			from = shop.JobAssigned
		}
	}
	if !CanTransition(from, to) {
		return httpx.Invalid("status", fmt.Sprintf("cannot move job from %s to %s", from, to))
	}
	if _, err := s.backend.UpdateJobStatus(ctx, jobID, to); err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	return nil
}

// AddTailor registers a tailor; new tailors start active.
func (s *Service) AddTailor(ctx context.Context, in api.TailorInput) (shop.Tailor, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Status == "" {
		in.Status = string(shop.TailorActive)
	}
	if err := s.validate.Struct(in); err != nil {
		return shop.Tailor{}, httpx.FromValidator(err)
	}
	t, err := s.backend.CreateTailor(ctx, in)
	if err != nil {
		return shop.Tailor{}, fmt.Errorf("create tailor: %w", err)
	}
	return t, nil
}

// SetTailorStatus activates or deactivates a tailor.
func (s *Service) SetTailorStatus(ctx context.Context, id string, status shop.TailorStatus) error {
	if status != shop.TailorActive && status != shop.TailorInactive {
		return httpx.Invalid("status", "must be one of: active inactive")
	}
	if _, err := s.backend.UpdateTailorStatus(ctx, id, status); err != nil {
		return fmt.Errorf("update tailor status: %w", err)
	}
	return nil
}

// Workload is a tailor with job counters.
type Workload struct {
	shop.Tailor
	CompletionRate float64 `json:"completion_rate"`
}

// Overview is the workshop board.
type Overview struct {
	Tailors      []Workload  `json:"tailors"`
	Jobs         []shop.Job  `json:"jobs"`
	ActiveJobs   int         `json:"active_jobs"`
	DoneJobs     int         `json:"done_jobs"`
	PendingBills []shop.Bill `json:"pending_bills"`
}

// Overview loads tailors, jobs and pending bills concurrently and ranks the
// tailors by completion rate.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var (
		tailors []shop.Tailor
		jobs    []shop.Job
		bills   []shop.Bill
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tailors, _, err = s.backend.ListTailors(gctx, api.ListParams{Limit: listLimit})
		return err
	})
	g.Go(func() error {
		var err error
		jobs, _, err = s.backend.ListJobs(gctx, api.ListParams{Limit: listLimit})
		return err
	})
	g.Go(func() error {
		var err error
		bills, _, err = s.backend.ListBills(gctx, api.ListParams{Status: string(shop.BillPending), Limit: 100})
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("load workshop: %w", err)
	}
	return BuildOverview(tailors, jobs, bills), nil
}

// BuildOverview derives the board from loaded collections. Tailors whose
// backend counters are all zero get counters computed from jobs.
func BuildOverview(tailors []shop.Tailor, jobs []shop.Job, pendingBills []shop.Bill) Overview {
	type counts struct{ total, done, pending int }
	perTailor := map[string]counts{}
	ov := Overview{Jobs: jobs, PendingBills: pendingBills}
	for _, j := range jobs {
		c := perTailor[j.TailorID]
		c.total++
		switch j.Status {
		case shop.JobAssigned, shop.JobInProgress:
			ov.ActiveJobs++
			c.pending++
		case shop.JobCompleted, shop.JobDelivered:
			ov.DoneJobs++
			c.done++
		}
		perTailor[j.TailorID] = c
	}
	ov.Tailors = make([]Workload, 0, len(tailors))
	for _, t := range tailors {
		if t.TotalJobs == 0 && t.CompletedJobs == 0 && t.PendingJobs == 0 {
			c := perTailor[t.ID]
			t.TotalJobs, t.CompletedJobs, t.PendingJobs = c.total, c.done, c.pending
		}
		ov.Tailors = append(ov.Tailors, Workload{Tailor: t, CompletionRate: t.CompletionRate()})
	}
	sort.SliceStable(ov.Tailors, func(i, j int) bool {
		return ov.Tailors[i].CompletionRate > ov.Tailors[j].CompletionRate
	})
	return ov
}
