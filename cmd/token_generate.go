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

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cordellcalitz/happner-suite/internal/cli"
	"github.com/cordellcalitz/happner-suite/internal/security"
)

// TokenGenerator signs session tokens.
type TokenGenerator interface {
	Generate(
		signingKey string,
		session *security.Session,
	) (string, error)
}

// tokenGenerateCmd represents the tokenGenerate command.
var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new session token",
	Long: `Generate a signed session token for a username. The token restores a
session marked as token-derived, so the checkpoint re-fetches the user record
when resolving its permissions.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		signingKey := appConfig.Security.SigningKey
		username, _ := cmd.Flags().GetString("username")
		sessionType, _ := cmd.Flags().GetInt("session-type")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		session := &security.Session{
			ID:        uuid.NewString(),
			Username:  username,
			Type:      sessionType,
			Timestamp: time.Now(),
			TTL:       ttl,
		}

		var tm TokenGenerator = security.New(logger)
		token, err := tm.Generate(signingKey, session)
		if err != nil {
			cli.LogFatal(logger, "failed to generate token", err)
		}

		logger.Info(
			"generated session token",
			slog.String("token", token),
			slog.String("username", username),
			slog.String("session", session.ID),
		)
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd)

	tokenGenerateCmd.PersistentFlags().
		StringP("username", "u", "", "Username the token authenticates as")
	tokenGenerateCmd.PersistentFlags().
		Int("session-type", security.SessionTypeBasic, "Session type the token restores")
	tokenGenerateCmd.PersistentFlags().
		Duration("ttl", time.Hour, "Token validity window (0 = no expiry)")

	_ = tokenGenerateCmd.MarkPersistentFlagRequired("username")
}
