package offer

import (
	"context"
	"errors"
	"strings"
	"testing"

	domainLoan "autolend-backend/internal/domain/loan"
	domain "autolend-backend/internal/domain/offer"
	"autolend-backend/internal/domain/uow"
	"autolend-backend/internal/testutil/loanmock"
	"autolend-backend/internal/testutil/offermock"
	"autolend-backend/internal/testutil/uowmock"

	"gorm.io/gorm"
)

func newUsecaseWith(loans *loanmock.Repo, offers *offermock.Repo) *Usecase {
	tx := uowmock.New(uow.Repos{Loans: loans, Offers: offers})
	return NewUsecase(loans, offers, tx)
}

func TestCreateForLoan_LoanNotFound(t *testing.T) {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	offers := &offermock.Repo{
		CreateFn: func(ctx context.Context, o *domain.Offer) error {
			t.Fatalf("Create must not be called for a missing loan")
			return nil
		},
	}
	uc := newUsecaseWith(loans, offers)

	_, err := uc.CreateForLoan(context.Background(), strings.Repeat("a", 32), CreateInput{
		Amount: 5000, InterestRate: 14.5, TenureMonths: 12,
	})
	if !errors.Is(err, domainLoan.ErrNotFound) {
		t.Fatalf("want loan ErrNotFound, got %v", err)
	}
}

func TestCreateForLoan_DefaultsToPending(t *testing.T) {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			// offers may be created regardless of the loan's own status
			return &domainLoan.Loan{ID: 9, LoanID: loanID, Status: domainLoan.StatusDisbursed}, nil
		},
	}
	var created *domain.Offer
	offers := &offermock.Repo{
		CreateFn: func(ctx context.Context, o *domain.Offer) error {
			created = o
			return nil
		},
	}
	uc := newUsecaseWith(loans, offers)

	dto, err := uc.CreateForLoan(context.Background(), strings.Repeat("a", 32), CreateInput{
		Amount: 5000, InterestRate: 14.5, TenureMonths: 12,
	})
	if err != nil {
		t.Fatalf("CreateForLoan err: %v", err)
	}
	if dto.Status != string(domain.StatusPending) {
		t.Fatalf("status = %s, want pending", dto.Status)
	}
	if len(dto.OfferID) != 32 {
		t.Fatalf("OfferID length: %d", len(dto.OfferID))
	}
	if created == nil || created.LoanID != 9 {
		t.Fatalf("offer not attached to loan's numeric id: %+v", created)
	}
}

func TestAccept_NotFound(t *testing.T) {
	offers := &offermock.Repo{
		GetByOfferIDFn: func(ctx context.Context, offerID string) (*domain.Offer, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := newUsecaseWith(&loanmock.Repo{}, offers)

	if _, err := uc.Accept(context.Background(), strings.Repeat("e", 32)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAccept_CascadesToSiblingsAndLoan(t *testing.T) {
	theOffer := &domain.Offer{
		ID:      4,
		OfferID: strings.Repeat("e", 32),
		LoanID:  9,
		Amount:  5000,
		Status:  domain.StatusPending,
	}
	theLoan := &domainLoan.Loan{ID: 9, LoanID: strings.Repeat("a", 32), Status: domainLoan.StatusOffered}

	var rejectedSiblings bool
	var savedLoan *domainLoan.Loan
	var savedOffer *domain.Offer

	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domainLoan.Loan, error) {
			if id != 9 {
				t.Fatalf("locked wrong loan: %d", id)
			}
			return theLoan, nil
		},
		SaveFn: func(ctx context.Context, l *domainLoan.Loan) error {
			savedLoan = l
			return nil
		},
	}
	offers := &offermock.Repo{
		GetByOfferIDFn: func(ctx context.Context, offerID string) (*domain.Offer, error) {
			return theOffer, nil
		},
		SaveFn: func(ctx context.Context, o *domain.Offer) error {
			savedOffer = o
			return nil
		},
		RejectPendingSiblingsFn: func(ctx context.Context, loanID, keepID uint64) (int64, error) {
			if loanID != 9 || keepID != 4 {
				t.Fatalf("sibling rejection scoped wrong: loan=%d keep=%d", loanID, keepID)
			}
			rejectedSiblings = true
			return 2, nil
		},
	}
	uc := newUsecaseWith(loans, offers)

	dto, err := uc.Accept(context.Background(), theOffer.OfferID)
	if err != nil {
		t.Fatalf("Accept err: %v", err)
	}
	if dto.Status != string(domain.StatusAccepted) {
		t.Fatalf("status = %s, want accepted", dto.Status)
	}
	if savedOffer == nil || savedOffer.Status != domain.StatusAccepted {
		t.Fatalf("offer not persisted as accepted: %+v", savedOffer)
	}
	if !rejectedSiblings {
		t.Fatalf("pending siblings were not rejected")
	}
	if savedLoan == nil || savedLoan.Status != domainLoan.StatusApproved {
		t.Fatalf("loan not moved to approved: %+v", savedLoan)
	}
}

func TestAccept_RefusesTerminalLoan(t *testing.T) {
	offers := &offermock.Repo{
		GetByOfferIDFn: func(ctx context.Context, offerID string) (*domain.Offer, error) {
			return &domain.Offer{ID: 4, OfferID: offerID, LoanID: 9, Status: domain.StatusPending}, nil
		},
		SaveFn: func(ctx context.Context, o *domain.Offer) error {
			t.Fatalf("offer must not be saved when the loan is terminal")
			return nil
		},
	}
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domainLoan.Loan, error) {
			return &domainLoan.Loan{ID: 9, Status: domainLoan.StatusCancelled}, nil
		},
	}
	uc := newUsecaseWith(loans, offers)

	if _, err := uc.Accept(context.Background(), strings.Repeat("e", 32)); !errors.Is(err, domainLoan.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestAccept_RefusesAlreadySettledOffer(t *testing.T) {
	offers := &offermock.Repo{
		GetByOfferIDFn: func(ctx context.Context, offerID string) (*domain.Offer, error) {
			return &domain.Offer{ID: 4, OfferID: offerID, LoanID: 9, Status: domain.StatusRejected}, nil
		},
	}
	loans := &loanmock.Repo{
		GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*domainLoan.Loan, error) {
			return &domainLoan.Loan{ID: 9, Status: domainLoan.StatusOffered}, nil
		},
	}
	uc := newUsecaseWith(loans, offers)

	if _, err := uc.Accept(context.Background(), strings.Repeat("e", 32)); !errors.Is(err, domainLoan.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestListForLoan_EmptyIsNotAnError(t *testing.T) {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return &domainLoan.Loan{ID: 9, LoanID: loanID}, nil
		},
	}
	offers := &offermock.Repo{
		ListByLoanIDFn: func(ctx context.Context, loanID uint64) ([]domain.Offer, error) {
			return nil, nil
		},
	}
	uc := newUsecaseWith(loans, offers)

	got, err := uc.ListForLoan(context.Background(), strings.Repeat("a", 32))
	if err != nil {
		t.Fatalf("ListForLoan err: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d offers, want 0", len(got))
	}
}
