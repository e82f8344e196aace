// Package ekdsend is a client for the EKDSend messaging API: transactional email, SMS and
// voice calls.
//
//	client, err := ekdsend.NewClient("ek_live_xxx")
//	if err != nil {
//		return err
//	}
//	email, err := client.Emails.Send(ctx, &ekdsend.SendEmailParams{
//		From:    "hello@example.com",
//		To:      []string{"user@example.com"},
//		Subject: "Welcome",
//		HTML:    "<p>Hi</p>",
//	})
//
// Failed calls return *Error. Its Kind tells validation, authentication, not-found,
// rate-limit, other API and transport failures apart; errors.Is works with the Err* sentinels.
// Transient failures (429, 500, 502, 503, 504 and lost connections) are retried with
// exponential backoff before an error is returned.
package ekdsend
