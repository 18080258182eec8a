// Package audit provides audit logging for broker operations.
//
// Events cover the security- and provenance-relevant surface: token
// authentication, bulk imports, submission status transitions, and XML
// exports. Each event is emitted as an RFC5424 syslog line on stdout and,
// when AUDIT_DATABASE_URL is set, persisted to a messages table.
package audit
