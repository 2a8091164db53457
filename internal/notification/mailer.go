package notification

import "context"

// Mailer sends the platform's templated emails. Every send is best-effort:
// callers log failures and never fail the primary operation on them.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetLink string) error
	SendBookingConfirmed(ctx context.Context, to, name string, bookingID int64, carLabel string, totalPrice float64) error
	SendBookingStatusChanged(ctx context.Context, to, name string, bookingID int64, newStatus string) error
	SendAgencyApproved(ctx context.Context, to, agencyName string) error
	SendAgencyRejected(ctx context.Context, to, agencyName, reason string) error
	SendNewBookingAlert(ctx context.Context, to, agencyName string, bookingID int64, carLabel string) error
	SendSupportReply(ctx context.Context, to, name string, ticketID int64, subject string) error
}
