// Copyright (c) 2026 Cordell Calitz

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cordellcalitz/happner-suite/internal/cli"
	"github.com/cordellcalitz/happner-suite/internal/security"
)

// TokenValidator parses and validates session tokens.
type TokenValidator interface {
	Validate(
		tokenString string,
		signingKey string,
		expiryGrace time.Duration,
	) (*security.Session, error)
}

// tokenValidateCmd represents the tokenValidate command.
var tokenValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a session token",
	Long: `Validate a session token by checking its signature and expiry, allowing
the configured expiry grace, and print the session it restores.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.Security.SigningKey
		tokenString, _ := cmd.Flags().GetString("token")

		var tm TokenValidator = security.New(logger)
		session, err := tm.Validate(tokenString, signingKey, appConfig.Security.ExpiryGrace())
		if err != nil {
			cli.LogFatal(logger, "failed to validate token", err)
		}

		logger.Info(
			"validated session token",
			slog.String("session", session.ID),
			slog.String("username", session.Username),
			slog.Int("session_type", session.Type),
			slog.Time("issued", session.Timestamp),
			slog.Duration("ttl", session.TTL),
		)
	},
}

func init() {
	tokenCmd.AddCommand(tokenValidateCmd)

	tokenValidateCmd.PersistentFlags().StringP("token", "t", "", "The token string")

	_ = tokenValidateCmd.MarkPersistentFlagRequired("token")
}
