package cli

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status prints the admin session. When the token is a JWT its subject and
// expiry are shown for information only; they are never enforced here.
func (a *App) Status(ctx context.Context) error {
	info, err := a.session.Info(ctx)
	if err != nil {
		return err
	}

	a.printf("state:     %s\n", a.ctrl.State())
	a.printf("server:    %s (%s)\n", a.config.APIBaseURL, a.Mode())
	if !info.Present() {
		a.println("token:     none")
		return nil
	}

	a.println("token:     present")
	if info.PortfolioID != "" {
		a.printf("issued for: %s\n", info.PortfolioID)
	}
	if !info.SavedAt.IsZero() {
		a.printf("saved at:  %s\n", info.SavedAt.Local().Format(time.RFC1123))
	}

	for _, line := range describeToken(info.Token, a.clock.Now()) {
		a.println(line)
	}
	return nil
}

// describeToken decodes a JWT without verifying it. Opaque tokens yield no
// lines.
func describeToken(token string, now time.Time) []string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}

	var lines []string
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		lines = append(lines, "subject:   "+sub)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		line := "expires:   " + exp.Local().Format(time.RFC1123)
		if exp.Before(now) {
			line += " (expired)"
		}
		lines = append(lines, line)
	}
	return lines
}
