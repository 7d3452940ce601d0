package mailer

import (
	"fmt"
	"time"

	"github.com/artem13815/captable/pkg/certificate"
)

// certificateHTML builds the notification email body. The layout is a fixed
// table-based template safe for most mail clients.
func certificateHTML(companyName, shareholderName string, d certificate.Data) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Share Certificate</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', sans-serif; background-color: #f4f4f4;">
    <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f4f4f4; padding: 40px 0;">
        <tr>
            <td align="center">
                <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 8px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #2d89ef; color: white; padding: 20px; text-align: center;">
                            <h2 style="margin: 0; font-size: 24px;">Your Share Certificate</h2>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            <p style="font-size: 16px; color: #333;">Dear <strong>%s</strong>,</p>
                            <p style="font-size: 16px; color: #333;">
                                We're pleased to inform you that your share certificate is now ready.
                            </p>
                            <table cellpadding="0" cellspacing="0" width="100%%" style="margin-top: 20px; border: 1px solid #ddd; border-radius: 6px;">
                                <tr>
                                    <td colspan="2" style="background-color: #f9f9f9; padding: 10px 15px; border-bottom: 1px solid #ddd;">
                                        <h3 style="margin: 0; font-size: 18px; color: #444;">Certificate Details</h3>
                                    </td>
                                </tr>
                                <tr>
                                    <td style="padding: 12px 15px; font-weight: bold; color: #555;">Certificate ID:</td>
                                    <td style="padding: 12px 15px; color: #333;">%s</td>
                                </tr>
                                <tr style="background-color: #fafafa;">
                                    <td style="padding: 12px 15px; font-weight: bold; color: #555;">Number of Shares:</td>
                                    <td style="padding: 12px 15px; color: #333;">%d</td>
                                </tr>
                                <tr>
                                    <td style="padding: 12px 15px; font-weight: bold; color: #555;">Issue Date:</td>
                                    <td style="padding: 12px 15px; color: #333;">%s</td>
                                </tr>
                                <tr style="background-color: #fafafa;">
                                    <td style="padding: 12px 15px; font-weight: bold; color: #555;">Price Per Share:</td>
                                    <td style="padding: 12px 15px; color: #333;">%s</td>
                                </tr>
                            </table>
                            <p style="margin-top: 25px; font-size: 16px; color: #333;">
                                You can also download your certificate anytime from your account dashboard.
                            </p>
                            <p style="font-size: 16px; color: #333;">
                                Thank you for being a valued shareholder.
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f4f4f4; text-align: center; padding: 20px; font-size: 13px; color: #888;">
                            &copy; %d %s. All rights reserved.
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>`,
		shareholderName,
		d.CertificateID,
		d.NumberOfShares,
		d.IssueDate.Format("January 02, 2006"),
		certificate.FormatPrice(d.PricePerShare),
		time.Now().UTC().Year(),
		companyName,
	)
}
