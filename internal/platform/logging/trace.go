package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags},
// e.g. 00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01.
var traceHeaderRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

func loggerWithTrace(base *zap.Logger, header, projectID, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(header, projectID)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// traceFields builds the Cloud Logging correlation fields. Both a valid
// traceparent header and a resolvable project ID are required; Cloud
// Logging ignores trace fields that lack the project-qualified resource.
func traceFields(header, projectID string) []zap.Field {
	if projectID == "" {
		return nil
	}
	matches := traceHeaderRe.FindStringSubmatch(header)
	if len(matches) != 5 {
		return nil
	}
	traceID, spanID, flags := matches[2], matches[3], matches[4]

	return []zap.Field{
		zap.String("logging.googleapis.com/trace", traceName(projectID, traceID)),
		zap.String("logging.googleapis.com/spanId", spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", flags == "01"),
	}
}

// traceResource returns the project-qualified trace name, or "" when the
// header or project ID is unusable.
func traceResource(header, projectID string) string {
	if projectID == "" {
		return ""
	}
	matches := traceHeaderRe.FindStringSubmatch(header)
	if len(matches) != 5 {
		return ""
	}
	return traceName(projectID, matches[2])
}

func traceName(projectID, traceID string) string {
	return fmt.Sprintf("projects/%s/traces/%s", projectID, traceID)
}

// resolveProjectID probes the usual environment variables once and caches
// the answer for the life of the process.
func resolveProjectID() string {
	projectIDOnce.Do(func() {
		for _, key := range []string{
			"FIREBASE_PROJECT_ID",
			"GOOGLE_CLOUD_PROJECT",
			"GCP_PROJECT",
			"GCLOUD_PROJECT",
			"PROJECT_ID",
		} {
			if v := os.Getenv(key); v != "" {
				cachedProjectID = v
				return
			}
		}
	})
	return cachedProjectID
}
