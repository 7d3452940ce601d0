package mailer

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/artem13815/captable/pkg/certificate"
)

func TestCertificateHTML(t *testing.T) {
	t.Parallel()

	price := 10.5
	d := certificate.Data{
		CertificateID:  uuid.New(),
		NumberOfShares: 500,
		PricePerShare:  &price,
		IssueDate:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	html := certificateHTML("Acme Corp", "Alice Example", d)

	assert.Contains(t, html, "Alice Example")
	assert.Contains(t, html, d.CertificateID.String())
	assert.Contains(t, html, "500")
	assert.Contains(t, html, "March 15, 2024")
	assert.Contains(t, html, "$10.50")
	assert.Contains(t, html, "Acme Corp")
	assert.Contains(t, html, fmt.Sprintf("&copy; %d", time.Now().UTC().Year()))

	// The literal template escapes verbatim percent signs; none may leak.
	assert.False(t, strings.Contains(html, "%%"), "unexpanded format verbs in template")
	assert.False(t, strings.Contains(html, "%!"), "malformed format expansion")
}

func TestCertificateHTML_NoPrice(t *testing.T) {
	t.Parallel()

	d := certificate.Data{
		CertificateID:  uuid.New(),
		NumberOfShares: 5,
		IssueDate:      time.Now().UTC(),
	}
	html := certificateHTML("Acme Corp", "Bob", d)
	assert.Contains(t, html, "N/A")
}
