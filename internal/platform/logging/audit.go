package logging

import (
	"context"

	"go.uber.org/zap"
)

// LogAuditEvent records a structured audit trail entry for writes against
// user-owned data, such as account profile updates and guest-data merges.
//
// action is the verb performed ("update", "insert", "merge"), resourceType
// and resourceID name the target ("account_profile", "routine"), and result
// is "success" or "failure". details carries free-form context such as the
// fields touched.
func LogAuditEvent(
	ctx context.Context,
	action, userID, resourceType, resourceID, result string,
	details map[string]any,
) {
	logger := LoggerFromContext(ctx)

	logger.Info("Audit event",
		zap.String("audit.action", action),
		zap.String("audit.user_id", userID),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", result),
		zap.Any("audit.details", details),
	)
}
