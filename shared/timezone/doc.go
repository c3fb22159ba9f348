// Package timezone provides the application display timezone.
//
// The application timezone only affects how audit timestamps are rendered in
// responses. It is unrelated to the per-rule IANA zones on availability
// rules, which shared/timeslot evaluates rule by rule.
//
// Usage:
//
//	now := timezone.Now()                    // Current time in app timezone
//	formatted := timezone.Format(time.Now(), time.RFC3339)
//
// The timezone is configured via the APP_TIMEZONE environment variable using
// standard IANA names ("UTC", "Asia/Jakarta", "America/New_York") and is
// initialized when the package is imported.
package timezone
