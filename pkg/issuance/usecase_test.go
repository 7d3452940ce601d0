package issuance

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/captable/pkg/apperr"
	"github.com/artem13815/captable/pkg/auth"
	"github.com/artem13815/captable/pkg/certificate"
	"github.com/artem13815/captable/pkg/mailer"
)

type fakeRepo struct {
	rows      map[uuid.UUID]Issuance
	order     []uuid.UUID
	names     map[uuid.UUID]string
	setURLErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[uuid.UUID]Issuance{}, names: map[uuid.UUID]string{}}
}

func (r *fakeRepo) Create(ctx context.Context, iss Issuance) error {
	r.rows[iss.ID] = iss
	r.order = append(r.order, iss.ID)
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("%w: issuance", apperr.ErrNotFound)
	}
	delete(r.rows, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (Issuance, error) {
	iss, ok := r.rows[id]
	if !ok {
		return Issuance{}, fmt.Errorf("%w: issuance", apperr.ErrNotFound)
	}
	return iss, nil
}

func (r *fakeRepo) List(ctx context.Context, limit, offset int) ([]Issuance, error) {
	var out []Issuance
	for _, id := range r.order {
		out = append(out, r.rows[id])
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeRepo) ListByShareholder(ctx context.Context, shareholderID uuid.UUID, limit, offset int) ([]Issuance, error) {
	var out []Issuance
	for _, id := range r.order {
		if r.rows[id].ShareholderID == shareholderID {
			out = append(out, r.rows[id])
		}
	}
	return paginate(out, limit, offset), nil
}

func paginate(in []Issuance, limit, offset int) []Issuance {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

func (r *fakeRepo) SetCertificateURL(ctx context.Context, id uuid.UUID, url string) error {
	if r.setURLErr != nil {
		return r.setURLErr
	}
	iss, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("%w: issuance", apperr.ErrNotFound)
	}
	iss.CertificateURL = url
	r.rows[id] = iss
	return nil
}

func (r *fakeRepo) GroupTotals(ctx context.Context) ([]ShareholderTotal, error) {
	totals := map[uuid.UUID]int64{}
	var ids []uuid.UUID
	for _, id := range r.order {
		iss := r.rows[id]
		if _, seen := totals[iss.ShareholderID]; !seen {
			ids = append(ids, iss.ShareholderID)
		}
		totals[iss.ShareholderID] += iss.NumberOfShares
	}
	var out []ShareholderTotal
	for _, sid := range ids {
		out = append(out, ShareholderTotal{
			ShareholderID: sid,
			FullName:      r.names[sid],
			TotalShares:   totals[sid],
		})
	}
	return out, nil
}

func (r *fakeRepo) TotalByShareholder(ctx context.Context, shareholderID uuid.UUID) (int64, error) {
	var total int64
	for _, iss := range r.rows {
		if iss.ShareholderID == shareholderID {
			total += iss.NumberOfShares
		}
	}
	return total, nil
}

type fakeDirectory struct {
	users map[uuid.UUID]auth.User
}

func (d *fakeDirectory) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	u, ok := d.users[id]
	if !ok {
		return auth.User{}, fmt.Errorf("%w: user", apperr.ErrNotFound)
	}
	return u, nil
}

type fakeRenderer struct {
	err   error
	calls int
}

func (r *fakeRenderer) Render(d certificate.Data) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake " + d.CertificateID.String()), nil
}

type fakeSender struct {
	err  error
	sent []mailer.Message
}

func (s *fakeSender) SendCertificate(ctx context.Context, msg mailer.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type engineFixture struct {
	repo     *fakeRepo
	dir      *fakeDirectory
	renderer *fakeRenderer
	sender   *fakeSender
	svc      UseCase
}

func newFixture() *engineFixture {
	f := &engineFixture{
		repo:     newFakeRepo(),
		dir:      &fakeDirectory{users: map[uuid.UUID]auth.User{}},
		renderer: &fakeRenderer{},
		sender:   &fakeSender{},
	}
	f.svc = NewService(f.repo, f.dir, f.renderer, f.sender, zerolog.Nop())
	return f
}

func (f *engineFixture) addShareholder(name string) auth.User {
	u := auth.User{
		ID:       uuid.New(),
		Email:    name + "@example.com",
		FullName: name,
		Role:     auth.RoleShareholder,
		IsActive: true,
	}
	f.dir.users[u.ID] = u
	f.repo.names[u.ID] = name
	return u
}

func floatPtr(v float64) *float64 { return &v }

func TestCreate_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture()
	s := f.addShareholder("Alice")

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"zero shares", CreateInput{ShareholderID: s.ID, NumberOfShares: 0}},
		{"negative shares", CreateInput{ShareholderID: s.ID, NumberOfShares: -5}},
		{"negative price", CreateInput{ShareholderID: s.ID, NumberOfShares: 10, PricePerShare: floatPtr(-0.01)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.in)
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Empty(t, f.repo.rows, "no row may be persisted on validation failure")
		})
	}
}

func TestCreate_UnknownShareholder(t *testing.T) {
	t.Parallel()

	f := newFixture()
	_, err := f.svc.Create(context.Background(), CreateInput{
		ShareholderID:  uuid.New(),
		NumberOfShares: 100,
	})
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, f.repo.rows)
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	f := newFixture()
	s := f.addShareholder("Alice")

	result, err := f.svc.Create(context.Background(), CreateInput{
		ShareholderID:  s.ID,
		NumberOfShares: 100,
		PricePerShare:  floatPtr(10.5),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), result.Issuance.NumberOfShares)
	assert.True(t, result.EmailSent)
	wantURL := fmt.Sprintf("/api/v1/issuances/%s/certificate", result.Issuance.ID)
	assert.Equal(t, wantURL, result.Issuance.CertificateURL)
	assert.False(t, result.Issuance.IssueDate.IsZero())

	stored, err := f.repo.GetByID(context.Background(), result.Issuance.ID)
	require.NoError(t, err)
	assert.Equal(t, wantURL, stored.CertificateURL)

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, s.Email, f.sender.sent[0].To)
	assert.NotEmpty(t, f.sender.sent[0].Attachment)
}

func TestCreate_EmailFailureIsTolerated(t *testing.T) {
	t.Parallel()

	f := newFixture()
	s := f.addShareholder("Alice")
	f.sender.err = errors.New("smtp: connection refused")

	result, err := f.svc.Create(context.Background(), CreateInput{
		ShareholderID:  s.ID,
		NumberOfShares: 100,
	})
	require.NoError(t, err, "email delivery is advisory, not transactional")
	assert.False(t, result.EmailSent)
	assert.NotEmpty(t, result.Issuance.CertificateURL)
	assert.Len(t, f.repo.rows, 1)
}

func TestCreate_RendererFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture()
	s := f.addShareholder("Alice")
	f.renderer.err = errors.New("font table corrupt")

	_, err := f.svc.Create(context.Background(), CreateInput{
		ShareholderID:  s.ID,
		NumberOfShares: 100,
	})
	require.ErrorIs(t, err, apperr.ErrInternal)
	assert.Empty(t, f.repo.rows, "persisted row must be rolled back")
}

func TestCreate_URLPersistFailureRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture()
	s := f.addShareholder("Alice")
	f.repo.setURLErr = errors.New("connection reset")

	_, err := f.svc.Create(context.Background(), CreateInput{
		ShareholderID:  s.ID,
		NumberOfShares: 100,
	})
	require.ErrorIs(t, err, apperr.ErrInternal)
	assert.Empty(t, f.repo.rows)
}

func TestList_RoleScoping(t *testing.T) {
	t.Parallel()

	f := newFixture()
	alice := f.addShareholder("Alice")
	bob := f.addShareholder("Bob")
	admin := auth.User{ID: uuid.New(), Role: auth.RoleAdmin}

	for _, in := range []CreateInput{
		{ShareholderID: alice.ID, NumberOfShares: 100},
		{ShareholderID: alice.ID, NumberOfShares: 50},
		{ShareholderID: bob.ID, NumberOfShares: 200},
	} {
		_, err := f.svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	all, err := f.svc.List(context.Background(), admin, 100, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := f.svc.List(context.Background(), alice, 100, 0)
	require.NoError(t, err)
	require.Len(t, own, 2)
	for _, iss := range own {
		assert.Equal(t, alice.ID, iss.ShareholderID, "non-admin must never see another shareholder's rows")
	}
}

func TestList_Pagination(t *testing.T) {
	t.Parallel()

	f := newFixture()
	s := f.addShareholder("Alice")
	admin := auth.User{ID: uuid.New(), Role: auth.RoleAdmin}

	for i := 0; i < 5; i++ {
		_, err := f.svc.Create(context.Background(), CreateInput{ShareholderID: s.ID, NumberOfShares: 10})
		require.NoError(t, err)
	}

	page, err := f.svc.List(context.Background(), admin, 2, 3)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestDistribution_Empty(t *testing.T) {
	t.Parallel()

	f := newFixture()
	entries, err := f.svc.Distribution(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDistribution_Percentages(t *testing.T) {
	t.Parallel()

	f := newFixture()
	alice := f.addShareholder("Alice")
	bob := f.addShareholder("Bob")

	for _, in := range []CreateInput{
		{ShareholderID: alice.ID, NumberOfShares: 100},
		{ShareholderID: alice.ID, NumberOfShares: 50},
		{ShareholderID: bob.ID, NumberOfShares: 200},
	} {
		_, err := f.svc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	entries, err := f.svc.Distribution(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byID := map[uuid.UUID]DistributionEntry{}
	var percentageSum float64
	for _, e := range entries {
		byID[e.ShareholderID] = e
		percentageSum += e.Percentage
	}
	assert.Equal(t, int64(150), byID[alice.ID].TotalShares)
	assert.Equal(t, "Alice", byID[alice.ID].ShareholderName)
	assert.InDelta(t, 150.0/350.0*100, byID[alice.ID].Percentage, 1e-9)
	assert.InDelta(t, 200.0/350.0*100, byID[bob.ID].Percentage, 1e-9)
	assert.InDelta(t, 100.0, percentageSum, 1e-9, "percentages must sum to 100")
}

func TestDistribution_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture()
	alice := f.addShareholder("Alice")
	_, err := f.svc.Create(context.Background(), CreateInput{ShareholderID: alice.ID, NumberOfShares: 70})
	require.NoError(t, err)

	first, err := f.svc.Distribution(context.Background())
	require.NoError(t, err)
	second, err := f.svc.Distribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDistribution_UnknownNameFallback(t *testing.T) {
	t.Parallel()

	f := newFixture()
	alice := f.addShareholder("Alice")
	_, err := f.svc.Create(context.Background(), CreateInput{ShareholderID: alice.ID, NumberOfShares: 10})
	require.NoError(t, err)

	// Simulate a dangling shareholder reference.
	delete(f.repo.names, alice.ID)

	entries, err := f.svc.Distribution(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown", entries[0].ShareholderName)
}

func TestCertificate_OwnershipGate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	alice := f.addShareholder("Alice")
	bob := f.addShareholder("Bob")
	admin := auth.User{ID: uuid.New(), Role: auth.RoleAdmin}

	result, err := f.svc.Create(context.Background(), CreateInput{ShareholderID: alice.ID, NumberOfShares: 100})
	require.NoError(t, err)
	id := result.Issuance.ID

	_, _, err = f.svc.Certificate(context.Background(), bob, id)
	require.ErrorIs(t, err, apperr.ErrForbidden)

	pdf, filename, err := f.svc.Certificate(context.Background(), alice, id)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, fmt.Sprintf("share_certificate_%s.pdf", id), filename)

	_, _, err = f.svc.Certificate(context.Background(), admin, id)
	require.NoError(t, err)
}

func TestCertificate_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()
	admin := auth.User{ID: uuid.New(), Role: auth.RoleAdmin}
	_, _, err := f.svc.Certificate(context.Background(), admin, uuid.New())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCertificate_RerendersOnDemand(t *testing.T) {
	t.Parallel()

	f := newFixture()
	alice := f.addShareholder("Alice")
	result, err := f.svc.Create(context.Background(), CreateInput{ShareholderID: alice.ID, NumberOfShares: 100})
	require.NoError(t, err)

	renders := f.renderer.calls
	_, _, err = f.svc.Certificate(context.Background(), alice, result.Issuance.ID)
	require.NoError(t, err)
	assert.Equal(t, renders+1, f.renderer.calls, "certificate is re-rendered, not cached")
}
