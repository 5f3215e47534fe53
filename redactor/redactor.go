package redactor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/redactwriter"
)

// Redactor is an interface for a structure which removes a fixed set of secrets
// (API tokens) from text before it reaches the logs.
type Redactor interface {
	RedactString(string) (string, error)
}

type redactor struct {
	secrets []string
	logger  log.Logger
}

// New returns a structure that implements the Redactor interface. Blank secrets are ignored.
func New(secrets []string, logger log.Logger) Redactor {
	var nonEmpty []string
	for _, secret := range secrets {
		if strings.TrimSpace(secret) != "" {
			nonEmpty = append(nonEmpty, secret)
		}
	}

	return redactor{
		secrets: nonEmpty,
		logger:  logger,
	}
}

func (r redactor) RedactString(s string) (string, error) {
	if len(r.secrets) == 0 {
		return s, nil
	}

	var buf bytes.Buffer
	redactWriter := redactwriter.New(r.secrets, &buf, r.logger)
	if _, err := io.Copy(redactWriter, strings.NewReader(s)); err != nil {
		return "", fmt.Errorf("failed to redact secrets: %w", err)
	}

	if err := redactWriter.Close(); err != nil {
		return "", fmt.Errorf("failed to close redact writer: %w", err)
	}

	return buf.String(), nil
}
