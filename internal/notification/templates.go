package notification

import "fmt"

func renderPasswordReset(name, resetLink string) (html, plain string) {
	html = fmt.Sprintf(`<p>Hi %s,</p>
<p>We received a request to reset your password. The link below is valid for 24 hours:</p>
<p><a href="%s">Reset password</a></p>
<p>If you did not request this, you can ignore this email.</p>`, name, resetLink)
	plain = fmt.Sprintf("Hi %s,\n\nReset your password (valid 24 hours): %s\n\nIf you did not request this, ignore this email.", name, resetLink)
	return
}

func renderBookingConfirmed(name string, bookingID int64, carLabel string, totalPrice float64) (html, plain string) {
	html = fmt.Sprintf(`<p>Hi %s,</p>
<p>Your booking <b>#%d</b> for <b>%s</b> is confirmed.</p>
<p>Total: %.2f</p>`, name, bookingID, carLabel, totalPrice)
	plain = fmt.Sprintf("Hi %s,\n\nYour booking #%d for %s is confirmed. Total: %.2f", name, bookingID, carLabel, totalPrice)
	return
}

func renderBookingStatusChanged(name string, bookingID int64, newStatus string) (html, plain string) {
	html = fmt.Sprintf(`<p>Hi %s,</p>
<p>Your booking <b>#%d</b> is now <b>%s</b>.</p>`, name, bookingID, newStatus)
	plain = fmt.Sprintf("Hi %s,\n\nYour booking #%d is now %s.", name, bookingID, newStatus)
	return
}

func renderAgencyApproved(agencyName string) (html, plain string) {
	html = fmt.Sprintf(`<p>Congratulations!</p>
<p>Your agency <b>%s</b> has been approved. You can now list cars and accept bookings.</p>`, agencyName)
	plain = fmt.Sprintf("Congratulations! Your agency %s has been approved. You can now list cars and accept bookings.", agencyName)
	return
}

func renderAgencyRejected(agencyName, reason string) (html, plain string) {
	html = fmt.Sprintf(`<p>Your agency application for <b>%s</b> was not approved.</p>
<p>Reason: %s</p>`, agencyName, reason)
	plain = fmt.Sprintf("Your agency application for %s was not approved.\nReason: %s", agencyName, reason)
	return
}

func renderNewBookingAlert(agencyName string, bookingID int64, carLabel string) (html, plain string) {
	html = fmt.Sprintf(`<p>Hi %s,</p>
<p>You have a new booking <b>#%d</b> for <b>%s</b>. Review it in your dashboard.</p>`, agencyName, bookingID, carLabel)
	plain = fmt.Sprintf("Hi %s,\n\nYou have a new booking #%d for %s. Review it in your dashboard.", agencyName, bookingID, carLabel)
	return
}

func renderSupportReply(name string, ticketID int64, subject string) (html, plain string) {
	html = fmt.Sprintf(`<p>Hi %s,</p>
<p>There is a new reply on your support ticket <b>#%d</b> (%s).</p>`, name, ticketID, subject)
	plain = fmt.Sprintf("Hi %s,\n\nThere is a new reply on your support ticket #%d (%s).", name, ticketID, subject)
	return
}
