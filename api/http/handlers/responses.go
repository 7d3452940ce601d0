package handlers

import (
	"time"

	"github.com/artem13815/captable/pkg/auth"
	"github.com/artem13815/captable/pkg/issuance"
	"github.com/artem13815/captable/pkg/shareholder"
)

type userResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"is_active"`
	IsDisabled bool       `json:"is_disabled"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func newUserResponse(u auth.User) userResponse {
	resp := userResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		IsActive:   u.IsActive,
		IsDisabled: u.IsDisabled,
		CreatedAt:  u.CreatedAt,
	}
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

type issuanceResponse struct {
	ID             string    `json:"id"`
	ShareholderID  string    `json:"shareholder_id"`
	NumberOfShares int64     `json:"number_of_shares"`
	PricePerShare  *float64  `json:"price_per_share"`
	IssueDate      time.Time `json:"issue_date"`
	CertificateURL string    `json:"certificate_url,omitempty"`
}

func newIssuanceResponse(iss issuance.Issuance) issuanceResponse {
	return issuanceResponse{
		ID:             iss.ID.String(),
		ShareholderID:  iss.ShareholderID.String(),
		NumberOfShares: iss.NumberOfShares,
		PricePerShare:  iss.PricePerShare,
		IssueDate:      iss.IssueDate,
		CertificateURL: iss.CertificateURL,
	}
}

func newIssuanceResponses(list []issuance.Issuance) []issuanceResponse {
	out := make([]issuanceResponse, 0, len(list))
	for _, iss := range list {
		out = append(out, newIssuanceResponse(iss))
	}
	return out
}

type profileResponse struct {
	ID      string `json:"id"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type shareholderResponse struct {
	userResponse
	TotalShares        int64            `json:"total_shares"`
	ShareholderProfile *profileResponse `json:"shareholder_profile,omitempty"`
}

func newShareholderResponse(ws shareholder.WithShares) shareholderResponse {
	resp := shareholderResponse{
		userResponse: newUserResponse(ws.User),
		TotalShares:  ws.TotalShares,
	}
	if ws.Profile != nil {
		resp.ShareholderProfile = &profileResponse{
			ID:      ws.Profile.ID.String(),
			Address: ws.Profile.Address,
			Phone:   ws.Profile.Phone,
		}
	}
	return resp
}
