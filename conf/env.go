package conf

import "strings"

// Credential variables in precedence order. Role-specific names come first,
// generic AWS names after.
var (
	writerAccessKeyIDVars = []string{
		"AWS_WRITER_ACCESS_KEY_ID",
		"AWS_ACCESS_KEY_ID",
	}
	writerSecretAccessKeyVars = []string{
		"AWS_WRITER_SECRET_ACCESS_KEY",
		"AWS_SECRET_ACCESS_KEY",
		"AWS_SECRET_ACESS_KEY", // misspelled name found in older deployments
	}
	writerSessionTokenVars = []string{
		"AWS_WRITER_SESSION_TOKEN",
		"AWS_SESSION_TOKEN",
	}

	readerAccessKeyIDVars = []string{
		"AWS_READER_ACCESS_KEY_ID",
		"AWS_READER_ACCESS_KEY",
		"AWS_ACCESS_KEY_ID",
	}
	readerSecretAccessKeyVars = []string{
		"AWS_READER_SECRET_ACCESS_KEY",
		"AWS_SECRET_ACCESS_KEY",
	}
	readerSessionTokenVars = []string{
		"AWS_READER_SESSION_TOKEN",
		"AWS_SESSION_TOKEN",
	}
)

// FirstEnv returns the first non-blank value among names, trimmed.
func FirstEnv(getenv func(string) string, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
