package issuance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/artem13815/captable/pkg/apperr"
	"github.com/artem13815/captable/pkg/auth"
	"github.com/artem13815/captable/pkg/certificate"
	"github.com/artem13815/captable/pkg/mailer"
)

// unknownShareholder is reported when an issuance references a user record
// that no longer resolves. Tolerated inconsistency, not an error.
const unknownShareholder = "Unknown"

// UserDirectory is the subset of the user store the engine needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (auth.User, error)
}

// Renderer produces certificate PDFs.
type Renderer interface {
	Render(d certificate.Data) ([]byte, error)
}

// CreateInput is the payload for a new issuance. IssueDate defaults to the
// creation time when zero.
type CreateInput struct {
	ShareholderID  uuid.UUID
	NumberOfShares int64
	PricePerShare  *float64
	IssueDate      time.Time
}

// CreateResult reports the persisted issuance together with the outcome of
// the advisory email step, so "email failed but issuance succeeded" is a
// first-class result rather than a swallowed condition.
type CreateResult struct {
	Issuance  Issuance
	EmailSent bool
}

// UseCase is the issuance and distribution engine.
type UseCase interface {
	Create(ctx context.Context, in CreateInput) (CreateResult, error)
	List(ctx context.Context, actor auth.User, limit, offset int) ([]Issuance, error)
	Distribution(ctx context.Context) ([]DistributionEntry, error)
	// Certificate re-renders the PDF on demand and returns it with the
	// download filename.
	Certificate(ctx context.Context, actor auth.User, id uuid.UUID) ([]byte, string, error)
}

type service struct {
	repo     Repository
	users    UserDirectory
	renderer Renderer
	sender   mailer.Sender
	log      zerolog.Logger
}

// NewService wires the engine with its persistence, rendering and
// notification ports.
func NewService(repo Repository, users UserDirectory, renderer Renderer, sender mailer.Sender, log zerolog.Logger) UseCase {
	return &service{repo: repo, users: users, renderer: renderer, sender: sender, log: log}
}

// Create persists a new issuance and then runs the side-effect sequence:
// render certificate, email it (best-effort), persist the certificate URL.
// Any unexpected failure after the insert rolls the row back; a failed email
// send is logged and reported via EmailSent only.
func (s *service) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	if in.NumberOfShares <= 0 {
		return CreateResult{}, fmt.Errorf("%w: number of shares must be positive", apperr.ErrValidation)
	}
	if in.PricePerShare != nil && *in.PricePerShare < 0 {
		return CreateResult{}, fmt.Errorf("%w: price per share cannot be negative", apperr.ErrValidation)
	}
	shareholder, err := s.users.GetByID(ctx, in.ShareholderID)
	if err != nil {
		return CreateResult{}, fmt.Errorf("%w: shareholder not found", apperr.ErrNotFound)
	}

	iss := Issuance{
		ID:             uuid.New(),
		ShareholderID:  in.ShareholderID,
		NumberOfShares: in.NumberOfShares,
		PricePerShare:  in.PricePerShare,
		IssueDate:      in.IssueDate,
	}
	if iss.IssueDate.IsZero() {
		iss.IssueDate = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, iss); err != nil {
		return CreateResult{}, err
	}

	s.log.Info().
		Str("issuance_id", iss.ID.String()).
		Str("shareholder_id", iss.ShareholderID.String()).
		Int64("shares", iss.NumberOfShares).
		Msg("creating share issuance")

	result, err := s.finalize(ctx, iss, shareholder)
	if err != nil {
		// Rollback: the issuance is all-or-nothing apart from email delivery.
		if delErr := s.repo.Delete(ctx, iss.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("issuance_id", iss.ID.String()).Msg("rollback delete failed")
		}
		s.log.Error().Err(err).Str("issuance_id", iss.ID.String()).Msg("issuance creation failed")
		return CreateResult{}, fmt.Errorf("%w: failed to create share issuance", apperr.ErrInternal)
	}
	return result, nil
}

func (s *service) finalize(ctx context.Context, iss Issuance, shareholder auth.User) (CreateResult, error) {
	data := certData(iss, shareholder.FullName)

	pdf, err := s.renderer.Render(data)
	if err != nil {
		return CreateResult{}, fmt.Errorf("render certificate: %w", err)
	}

	emailSent := true
	sendErr := s.sender.SendCertificate(ctx, mailer.Message{
		To:              shareholder.Email,
		ShareholderName: shareholder.FullName,
		Certificate:     data,
		Attachment:      pdf,
	})
	if sendErr != nil {
		emailSent = false
		s.log.Error().Err(sendErr).
			Str("issuance_id", iss.ID.String()).
			Str("to", shareholder.Email).
			Msg("failed to send certificate email")
	}

	url := fmt.Sprintf("/api/v1/issuances/%s/certificate", iss.ID)
	if err := s.repo.SetCertificateURL(ctx, iss.ID, url); err != nil {
		return CreateResult{}, fmt.Errorf("persist certificate url: %w", err)
	}
	iss.CertificateURL = url
	return CreateResult{Issuance: iss, EmailSent: emailSent}, nil
}

// List returns issuances role-scoped: admins see all rows, shareholders only
// their own. Ordering is deterministic (issue date, then id).
func (s *service) List(ctx context.Context, actor auth.User, limit, offset int) ([]Issuance, error) {
	if actor.Role == auth.RoleAdmin {
		return s.repo.List(ctx, limit, offset)
	}
	return s.repo.ListByShareholder(ctx, actor.ID, limit, offset)
}

// Distribution aggregates all issuance rows per shareholder and expresses
// each total as a percentage of the company total. With no issuances the
// denominator is treated as 1 and all percentages are zero.
func (s *service) Distribution(ctx context.Context) ([]DistributionEntry, error) {
	totals, err := s.repo.GroupTotals(ctx)
	if err != nil {
		return nil, err
	}

	var companyShares int64
	for _, t := range totals {
		companyShares += t.TotalShares
	}
	denominator := companyShares
	if denominator == 0 {
		denominator = 1
	}

	entries := make([]DistributionEntry, 0, len(totals))
	for _, t := range totals {
		name := t.FullName
		if name == "" {
			name = unknownShareholder
		}
		entries = append(entries, DistributionEntry{
			ShareholderID:   t.ShareholderID,
			ShareholderName: name,
			TotalShares:     t.TotalShares,
			Percentage:      float64(t.TotalShares) / float64(denominator) * 100,
		})
	}
	return entries, nil
}

// Certificate re-renders the PDF from current issuance and shareholder data.
// Only admins and the owning shareholder may retrieve it.
func (s *service) Certificate(ctx context.Context, actor auth.User, id uuid.UUID) ([]byte, string, error) {
	iss, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("%w: issuance not found", apperr.ErrNotFound)
	}
	if actor.Role != auth.RoleAdmin && iss.ShareholderID != actor.ID {
		return nil, "", fmt.Errorf("%w: not authorized to access this certificate", apperr.ErrForbidden)
	}
	shareholder, err := s.users.GetByID(ctx, iss.ShareholderID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: shareholder not found", apperr.ErrNotFound)
	}

	pdf, err := s.renderer.Render(certData(iss, shareholder.FullName))
	if err != nil {
		return nil, "", fmt.Errorf("%w: failed to render certificate", apperr.ErrInternal)
	}

	s.log.Info().
		Str("issuance_id", id.String()).
		Str("user_id", actor.ID.String()).
		Msg("certificate downloaded")

	return pdf, fmt.Sprintf("share_certificate_%s.pdf", iss.ID), nil
}

func certData(iss Issuance, shareholderName string) certificate.Data {
	return certificate.Data{
		CertificateID:   iss.ID,
		ShareholderID:   iss.ShareholderID,
		ShareholderName: shareholderName,
		NumberOfShares:  iss.NumberOfShares,
		PricePerShare:   iss.PricePerShare,
		IssueDate:       iss.IssueDate,
	}
}
