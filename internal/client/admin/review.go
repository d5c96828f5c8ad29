package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/admissions/internal/client/banner"
	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/reqseq"
	"github.com/dmitrijs2005/admissions/internal/client/services"
	"github.com/dmitrijs2005/admissions/internal/clock"
	"github.com/dmitrijs2005/admissions/internal/logging"
)

// SlotReview is the banner slot used by Review.
const SlotReview = "review"

type ReviewConfig struct {
	Service    services.AdminService
	Clock      clock.Clock
	Logger     logging.Logger
	SuccessTTL time.Duration
	ErrorTTL   time.Duration
}

// Review shows one application. Status updates are merged into the loaded
// aggregate instead of refetching it.
type Review struct {
	svc   services.AdminService
	log   logging.Logger
	board *banner.Board
	seq   reqseq.Sequencer

	mu     sync.Mutex
	userID int64
	detail *models.ApplicationDetail
	err    error
}

func NewReview(cfg ReviewConfig) *Review {
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	return &Review{
		svc:   cfg.Service,
		log:   cfg.Logger.With("component", "admin-review"),
		board: banner.New(cfg.Clock, cfg.SuccessTTL, cfg.ErrorTTL),
	}
}

// Load fetches the application of userID, replacing whatever was shown.
func (r *Review) Load(ctx context.Context, userID int64) error {
	t := r.seq.Next()
	d, err := r.svc.GetApplication(ctx, userID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.seq.Current(t) {
		r.log.Debug(ctx, "dropping stale application", "user_id", userID)
		return nil
	}
	r.userID = userID
	if err != nil {
		r.detail = nil
		r.err = err
		return err
	}
	r.detail = d
	r.err = nil
	return nil
}

// Detail returns a copy of the loaded aggregate, or nil.
func (r *Review) Detail() *models.ApplicationDetail {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detail == nil {
		return nil
	}
	d := *r.detail
	d.Documents = append([]models.AdminDocument(nil), r.detail.Documents...)
	d.AcademicHistory = append([]models.AcademicHistory(nil), r.detail.AcademicHistory...)
	return &d
}

// Err returns the last load failure, or nil.
func (r *Review) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// UpdateDocumentStatus changes one document's status and replaces only
// that document in the loaded aggregate.
func (r *Review) UpdateDocumentStatus(ctx context.Context, documentID int64, status, notes string) error {
	updated, err := r.svc.UpdateDocumentStatus(ctx, documentID, models.DocumentStatusUpdate{NewStatus: status, ValidationNotes: notes})
	if err != nil {
		r.board.Error(SlotReview, err.Error())
		return err
	}

	r.mu.Lock()
	if r.detail != nil {
		for i := range r.detail.Documents {
			if r.detail.Documents[i].ID == updated.ID {
				r.detail.Documents[i] = *updated
				break
			}
		}
	}
	r.mu.Unlock()

	r.log.Info(ctx, "document reviewed", "document_id", documentID, "status", status)
	r.board.Success(SlotReview, fmt.Sprintf("Document successfully %s", services.ReviewOutcome(status)))
	return nil
}

// UpdateApplicationStatus changes the status of the loaded application and
// replaces its user summary.
func (r *Review) UpdateApplicationStatus(ctx context.Context, status string) error {
	r.mu.Lock()
	userID := r.userID
	r.mu.Unlock()

	updated, err := r.svc.UpdateApplicationStatus(ctx, userID, status)
	if err != nil {
		r.board.Error(SlotReview, err.Error())
		return err
	}

	r.mu.Lock()
	if r.detail != nil && r.userID == userID {
		r.detail.UserSummary = *updated
	}
	r.mu.Unlock()

	r.board.Success(SlotReview, fmt.Sprintf("Application status updated to %s", updated.ApplicationStatus))
	return nil
}

func (r *Review) Banner() (banner.Message, bool) {
	return r.board.Get(SlotReview)
}

// Close stops banner timers and discards a load in flight.
func (r *Review) Close() {
	r.seq.Invalidate()
	r.board.Close()
}
